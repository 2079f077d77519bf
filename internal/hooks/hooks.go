package hooks

import (
	"context"
	"errors"
	"strings"

	"github.com/raphi011/treefrog/internal/cmd"
	"github.com/raphi011/treefrog/internal/log"
)

// Context holds the values for placeholder substitution.
type Context struct {
	Path     string // absolute worktree path
	Branch   string // branch name
	Repo     string // repository name
	MainRepo string // main worktree path
}

// shellQuote wraps s in single quotes, escaping embedded single quotes.
// e.g., "it's" becomes 'it'\''s'
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
}

// SubstitutePlaceholders replaces {path}, {branch}, {repo} and {main-repo}
// with shell-quoted values from c.
func SubstitutePlaceholders(command string, c Context) string {
	r := strings.NewReplacer(
		"{path}", shellQuote(c.Path),
		"{branch}", shellQuote(c.Branch),
		"{repo}", shellQuote(c.Repo),
		"{main-repo}", shellQuote(c.MainRepo),
	)
	return r.Replace(command)
}

// Run executes commands in order inside c.Path. Blank commands are skipped.
// Returns the commands that failed; a cancelled context stops the run.
func Run(ctx context.Context, runner cmd.Runner, commands []string, c Context) []string {
	l := log.FromContext(ctx)

	var pending []string
	for _, command := range commands {
		if strings.TrimSpace(command) != "" {
			pending = append(pending, command)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	l.Println("Executing configuration commands...")

	var failed []string
	for i, command := range pending {
		l.Printf("Executing: %s\n", command)
		res, err := runner.Run(ctx, c.Path, "sh", "-c", SubstitutePlaceholders(command, c))
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return append(failed, pending[i:]...)
			}
			l.Warnf("Command failed: %s", command)
			l.Debug("command output", "err", err, "stdout", strings.TrimSpace(string(res.Stdout)))
			failed = append(failed, command)
			if i < len(pending)-1 {
				l.Println("Continuing with remaining commands...")
			}
		}
	}

	l.Println("Configuration commands completed!")
	return failed
}
