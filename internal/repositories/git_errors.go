package repositories

import (
	"fmt"
	"regexp"
	"strings"
)

// ErrorInfo is a user-facing explanation of a failed git invocation.
type ErrorInfo struct {
	Category    string
	Message     string
	Suggestions []string
}

type gitErrorPattern struct {
	pattern *regexp.Regexp
	info    ErrorInfo
}

// gitErrorPatterns is matched in order; specific patterns come first.
var gitErrorPatterns = []gitErrorPattern{
	{
		pattern: regexp.MustCompile(`(?i)repository .* not found|does not appear to be a git repository`),
		info: ErrorInfo{
			Category: "repository_not_found",
			Message:  "Repository not found",
			Suggestions: []string{
				"Check the URL with 'p repo list'",
				"Private repositories need credentials configured for git",
			},
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)SSL certificate problem|certificate verify failed`),
		info: ErrorInfo{
			Category: "ssl_error",
			Message:  "SSL certificate verification failed",
			Suggestions: []string{
				"Check that your system certificates are up to date",
				"Check whether a proxy is intercepting TLS connections",
			},
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)Authentication failed|could not read (Username|Password)|Permission denied \(publickey`),
		info: ErrorInfo{
			Category: "auth_required",
			Message:  "Authentication required",
			Suggestions: []string{
				"Configure git credentials for this host",
				"Use an SSH URL if you have keys set up",
			},
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)Could not resolve host|Temporary failure in name resolution`),
		info: ErrorInfo{
			Category: "dns_error",
			Message:  "Could not resolve hostname",
			Suggestions: []string{
				"Check your network connection",
				"Check the hostname in the repository URL",
			},
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)Connection timed out|unable to connect|unable to access|Connection refused`),
		info: ErrorInfo{
			Category: "network_error",
			Message:  "Unable to reach the repository",
			Suggestions: []string{
				"Check your network connection",
				"Check whether a proxy or firewall blocks git traffic",
			},
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)Not possible to fast-forward|have diverged|divergent branches`),
		info: ErrorInfo{
			Category: "diverged",
			Message:  "Local mirror has diverged from upstream",
			Suggestions: []string{
				"Delete the mirror directory (see 'p repo go') and run 'p repo sync' again",
			},
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)not a git repository`),
		info: ErrorInfo{
			Category: "not_a_repository",
			Message:  "Mirror directory is not a git repository",
			Suggestions: []string{
				"Delete the mirror directory (see 'p repo go') and run 'p repo sync' again",
			},
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)already exists and is not an empty directory`),
		info: ErrorInfo{
			Category: "destination_exists",
			Message:  "Destination directory already exists",
		},
	},
}

// classifyGitOutput maps git's stderr/stdout to a known failure, or nil.
func classifyGitOutput(output string) *ErrorInfo {
	for _, p := range gitErrorPatterns {
		if p.pattern.MatchString(output) {
			info := p.info
			return &info
		}
	}
	return nil
}

// GitError is a failed git invocation.
type GitError struct {
	Args   []string
	Dir    string
	Output string
	Info   *ErrorInfo
	Err    error
}

func (e *GitError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "git %s failed", strings.Join(e.Args, " "))
	if e.Dir != "" {
		fmt.Fprintf(&sb, " in %s", e.Dir)
	}
	if e.Info != nil {
		fmt.Fprintf(&sb, ": %s", e.Info.Message)
	} else if e.Err != nil {
		fmt.Fprintf(&sb, ": %v", e.Err)
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		fmt.Fprintf(&sb, "\n%s", out)
	}
	return sb.String()
}

func (e *GitError) Unwrap() error { return e.Err }

// Suggestions returns hints for resolving the failure, if any are known.
func (e *GitError) Suggestions() []string {
	if e.Info == nil {
		return nil
	}
	return e.Info.Suggestions
}
