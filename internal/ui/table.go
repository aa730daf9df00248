package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// LeaderRow is one "name.....value" line.
type LeaderRow struct {
	Name  string
	Value string
}

// MinLeader is the number of dots after the longest name.
const MinLeader = 5

// DotLeaders aligns values by joining each name to its value with dots,
// so the longest name gets MinLeader dots and shorter names get more.
func DotLeaders(rows []LeaderRow) string {
	longest := 0
	for _, r := range rows {
		if w := lipgloss.Width(r.Name); w > longest {
			longest = w
		}
	}

	var sb strings.Builder
	for _, r := range rows {
		dots := strings.Repeat(".", longest-lipgloss.Width(r.Name)+MinLeader)
		sb.WriteString(Bold.Render(r.Name))
		sb.WriteString(Leader.Render(dots))
		sb.WriteString(r.Value)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Column styles a single column of a Grid.
type Column struct {
	Header string
	Style  lipgloss.Style
}

// Grid renders rows under muted headers with a rule below the header and
// no other borders.
func Grid(columns []Column, rows [][]string) string {
	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = c.Header
	}

	tbl := table.New().
		Border(lipgloss.Border{Bottom: "─", Top: "─", Middle: "─"}).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderRow(false).
		BorderColumn(false).
		BorderHeader(true).
		BorderStyle(Muted).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle()
			if row == table.HeaderRow {
				style = Muted
			} else if col < len(columns) {
				style = columns[col].Style
			}
			if col < len(columns)-1 {
				style = style.PaddingRight(2)
			}
			return style
		}).
		Rows(rows...)

	return tbl.Render() + "\n"
}
