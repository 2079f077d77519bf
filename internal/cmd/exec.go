package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/raphi011/treefrog/internal/log"
)

// Result is the outcome of a finished command.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Runner spawns external commands. dir is the working directory; empty
// means the current one.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (Result, error)
}

// ExitError is returned when a command exits with a non-zero status.
type ExitError struct {
	Name   string
	Args   []string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	return fmt.Sprintf("%s %s: exit status %d", e.Name, strings.Join(e.Args, " "), e.Code)
}

// Exec is the os/exec backed Runner.
type Exec struct {
	// Env, if non-nil, is appended to the inherited environment.
	Env []string
}

// Run executes name with args and captures stdout and stderr.
// A cancelled context is reported as ctx.Err().
func (e Exec) Run(ctx context.Context, dir, name string, args ...string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	if e.Env != nil {
		c.Env = append(os.Environ(), e.Env...)
	}
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	done(time.Since(start))

	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err == nil {
		return res, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, &ExitError{
			Name:   name,
			Args:   args,
			Code:   res.ExitCode,
			Stderr: strings.TrimSpace(stderr.String()),
		}
	}
	res.ExitCode = -1
	return res, err
}

// AttachOptions configures an interactive command.
type AttachOptions struct {
	Dir    string
	Env    []string // full environment; nil inherits
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Attach runs a command wired to the given streams (os std streams by
// default) and waits for it to exit. The exit status of the child is not
// treated as an error; only failures to start it are.
func Attach(ctx context.Context, opts AttachOptions, name string, args ...string) error {
	done := log.FromContext(ctx).Command(opts.Dir, name, args...)
	start := time.Now()
	defer func() { done(time.Since(start)) }()

	c := exec.Command(name, args...)
	c.Dir = opts.Dir
	c.Env = opts.Env
	c.Stdin = orReader(opts.Stdin, os.Stdin)
	c.Stdout = orWriter(opts.Stdout, os.Stdout)
	c.Stderr = orWriter(opts.Stderr, os.Stderr)

	if err := c.Start(); err != nil {
		return fmt.Errorf("failed to launch %s: %w", name, err)
	}
	if err := c.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil
		}
		return err
	}
	return nil
}

func orReader(r, def io.Reader) io.Reader {
	if r != nil {
		return r
	}
	return def
}

func orWriter(w, def io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return def
}
