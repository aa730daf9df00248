package cli

import (
	"fmt"
	"io"

	"github.com/coyenn/p/internal/repositories"
	"github.com/coyenn/p/internal/ui"
)

// spinnerReporter shows one spinner per mirror step on a terminal and
// plain "Cloning x..." lines elsewhere.
type spinnerReporter struct {
	w       io.Writer
	current *ui.Spinner
}

func newSpinnerReporter(w io.Writer) *spinnerReporter {
	return &spinnerReporter{w: w}
}

func (r *spinnerReporter) Begin(action repositories.Action, name string) {
	r.current = ui.NewSpinnerTo(r.w, action.Progressive()+" "+name)
	if !r.current.Animated() {
		repositories.TextReporter{W: r.w}.Begin(action, name)
		return
	}
	r.current.Start()
}

func (r *spinnerReporter) End(action repositories.Action, name string, err error) {
	s := r.current
	r.current = nil
	if s == nil {
		return
	}
	if !s.Animated() {
		if err != nil {
			fmt.Fprintln(r.w, ui.Error(fmt.Sprintf("%s %s failed", action.Progressive(), name)))
		}
		return
	}
	if err != nil {
		s.StopWithMessage(ui.Error(fmt.Sprintf("%s %s failed", action.Progressive(), name)))
		return
	}
	s.StopWithMessage(ui.Success(action.Past() + " " + name))
}
