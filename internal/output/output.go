// Package output provides context-aware primary output for treefrog.
// Stdout carries data and results (tables, paths, JSON, success lines).
// Diagnostics go to stderr through the log package.
package output

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/colorprofile"

	"github.com/raphi011/treefrog/internal/ui/styles"
)

type ctxKey struct{}

// Printer writes primary output to stdout.
type Printer struct {
	w io.Writer
}

// New creates a Printer writing to w as is.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// NewTerminal creates a Printer that downsamples or strips ANSI styling to
// what w supports, honouring NO_COLOR and non-terminal outputs.
func NewTerminal(w io.Writer, environ []string) *Printer {
	return &Printer{w: colorprofile.NewWriter(w, environ)}
}

// WithPrinter attaches a Printer writing to w to the context.
func WithPrinter(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, ctxKey{}, New(w))
}

// WithTerminalPrinter attaches a color-aware Printer to the context.
func WithTerminalPrinter(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, ctxKey{}, NewTerminal(w, os.Environ()))
}

// FromContext retrieves the Printer from context.
// Returns a Printer writing to os.Stdout if none is attached.
func FromContext(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return &Printer{w: os.Stdout}
}

// Print writes output without a newline.
func (p *Printer) Print(a ...any) {
	fmt.Fprint(p.w, a...)
}

// Printf writes formatted output.
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.w, format, a...)
}

// Println writes a line of output.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// Info writes a neutral status line.
func (p *Printer) Info(format string, a ...any) {
	fmt.Fprintln(p.w, styles.InfoStyle.Render(fmt.Sprintf(format, a...)))
}

// Success writes a line rendered in the success color.
func (p *Printer) Success(format string, a ...any) {
	fmt.Fprintln(p.w, styles.SuccessStyle.Render(fmt.Sprintf(format, a...)))
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}
