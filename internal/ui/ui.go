package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/papapumpkin/filelink/internal/ansi"
	"github.com/papapumpkin/filelink/internal/filestore"
	"github.com/papapumpkin/filelink/internal/plugin"
	"github.com/papapumpkin/filelink/internal/resolve"
)

// Printer writes leveled, optionally colored status lines. It satisfies
// resolve.Reporter.
type Printer struct {
	w     io.Writer
	color bool
}

// New returns a Printer writing to stderr, colored when stderr is a terminal.
func New() *Printer {
	return &Printer{w: os.Stderr, color: ansi.Enabled(os.Stderr)}
}

// NewWriter returns an uncolored Printer writing to w.
func NewWriter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// style applies codes only when color output is enabled.
func (p *Printer) style(s string, codes ...string) string {
	if !p.color {
		return s
	}
	return ansi.Style(s, codes...)
}

// Info prints a dimmed informational line.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.w, p.style(msg, ansi.Dim))
}

// Warn prints a warning line.
func (p *Printer) Warn(msg string) {
	fmt.Fprintf(p.w, "%s %s\n", p.style("⚠ warn:", ansi.Yellow, ansi.Bold), msg)
}

// Success prints a success line.
func (p *Printer) Success(msg string) {
	fmt.Fprintf(p.w, "%s %s\n", p.style("✓", ansi.Green, ansi.Bold), msg)
}

// Error prints an error line.
func (p *Printer) Error(msg string) {
	fmt.Fprintf(p.w, "%s%s\n", p.style("error: ", ansi.Red, ansi.Bold), msg)
}

// Extensions lists the registered and skipped extensions of a setup run.
func (p *Printer) Extensions(rep plugin.Report) {
	fmt.Fprintln(p.w, p.style("field extensions:", ansi.Bold))
	if len(rep.Registered) == 0 {
		fmt.Fprintln(p.w, p.style("  (none)", ansi.Dim))
	}
	for _, ext := range rep.Registered {
		target := ext.Dir
		if target == "" {
			target = "path argument"
			for _, a := range ext.Args {
				target = fmt.Sprintf("%s: %s", a.Name, a.Type)
			}
		}
		fmt.Fprintf(p.w, "  %s %-24s %s\n", p.style("@", ansi.Cyan), ext.Name, p.style(target, ansi.Dim))
	}
	for _, sk := range rep.Skipped {
		name := sk.Name
		if name == "" {
			name = "(dirs)"
		}
		fmt.Fprintf(p.w, "  %s %-24s %v\n", p.style("✗", ansi.Red), name, sk.Err)
	}
}

// Indexed reports how many files were stored.
func (p *Printer) Indexed(count int, driver, location string) {
	fmt.Fprintf(p.w, "%s indexed %d file(s) into %s store %s\n",
		p.style("✓", ansi.Green, ansi.Bold), count, driver, p.style(location, ansi.Dim))
}

// Resolved prints the outcome of resolving one field of a content file.
func (p *Printer) Resolved(file, field, extension string, res resolve.Result) {
	fmt.Fprintf(p.w, "%s %s %s\n", p.style(file, ansi.Bold), field, p.style("@"+extension, ansi.Cyan))
	switch {
	case !res.List && res.File == nil:
		fmt.Fprintf(p.w, "    %s\n", p.style("(no match)", ansi.Dim))
	case !res.List:
		p.fileLine(res.File)
	default:
		if len(res.Files) == 0 {
			fmt.Fprintf(p.w, "    %s\n", p.style("(empty list)", ansi.Dim))
		}
		for _, f := range res.Files {
			if f == nil {
				fmt.Fprintf(p.w, "    %s\n", p.style("- (no match)", ansi.Yellow))
				continue
			}
			p.fileLine(f)
		}
	}
}

func (p *Printer) fileLine(f *filestore.File) {
	fmt.Fprintf(p.w, "    %s %s %s\n", p.style("→", ansi.Green), f.AbsolutePath, p.style(f.ID, ansi.Dim))
}
