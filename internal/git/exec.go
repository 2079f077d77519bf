package git

import (
	"context"
	"errors"

	"github.com/raphi011/treefrog/internal/cmd"
)

// gitArgs prepends -C <dir> to args if dir is non-empty.
func gitArgs(dir string, args []string) []string {
	if dir == "" {
		return args
	}
	return append([]string{"-C", dir}, args...)
}

// run executes a git command in dir and discards stdout.
func (r *Repo) run(ctx context.Context, dir string, args ...string) error {
	_, err := r.runner.Run(ctx, "", "git", gitArgs(dir, args)...)
	return err
}

// output executes a git command in dir and returns stdout.
func (r *Repo) output(ctx context.Context, dir string, args ...string) ([]byte, error) {
	res, err := r.runner.Run(ctx, "", "git", gitArgs(dir, args)...)
	if err != nil {
		return nil, err
	}
	return res.Stdout, nil
}

// exitCode reports the exit status carried by err, or -1.
func exitCode(err error) int {
	var exitErr *cmd.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return -1
}
