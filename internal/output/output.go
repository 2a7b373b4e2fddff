// Package output renders run results for the terminal.
package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"dateprefix/internal/orchestrator"
	"dateprefix/internal/renamer"
)

// Config holds output configuration.
type Config struct {
	Verbose   bool
	Writer    io.Writer // default os.Stdout
	ErrWriter io.Writer // default os.Stderr
	Color     bool      // ANSI colors; off when stdout is not a terminal
}

// Printer writes human-readable run output.
type Printer struct {
	cfg    Config
	green  *color.Color
	yellow *color.Color
	red    *color.Color
	cyan   *color.Color
}

// DefaultConfig returns a Config with TTY detection.
func DefaultConfig() Config {
	return Config{
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Color:     term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// New creates a Printer with the given configuration.
func New(cfg Config) *Printer {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.ErrWriter == nil {
		cfg.ErrWriter = os.Stderr
	}
	return &Printer{
		cfg:    cfg,
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
		red:    color.New(color.FgRed),
		cyan:   color.New(color.FgCyan),
	}
}

func (p *Printer) paint(c *color.Color, s string) string {
	if !p.cfg.Color {
		return s
	}
	return c.Sprint(s)
}

// Result prints one per-file line: renames, skips, and errors alike.
// Verbose mode adds the matched date format on renames.
func (p *Printer) Result(r orchestrator.Result, dryRun bool) {
	switch {
	case r.Err != nil:
		fmt.Fprintf(p.cfg.ErrWriter, "%s %s: %v\n", p.paint(p.red, "error"), r.Path, r.Err)
	case r.Outcome.Skipped:
		reason := "no date found"
		if r.Outcome.Reason == renamer.AlreadyNormalized {
			reason = "already normalized"
		}
		fmt.Fprintf(p.cfg.Writer, "%s %s (%s)\n", p.paint(p.yellow, "skip"), r.Outcome.OldName, reason)
	default:
		verb := "renamed"
		if dryRun {
			verb = "would rename"
		}
		line := fmt.Sprintf("%s %s -> %s", p.paint(p.green, verb), r.Outcome.OldName, r.Outcome.NewName)
		if p.cfg.Verbose {
			line += fmt.Sprintf(" [%s]", r.Outcome.Format)
		}
		if r.Outcome.Collision {
			line += " " + p.paint(p.yellow, "(collision suffix)")
		}
		fmt.Fprintln(p.cfg.Writer, line)
	}
}

// Summary prints every per-file line followed by the final counts.
func (p *Printer) Summary(s *orchestrator.Summary, dryRun bool) {
	for _, r := range s.Results {
		p.Result(r, dryRun)
	}

	fmt.Fprintln(p.cfg.Writer)
	label := "Done:"
	if dryRun {
		label = "Dry run:"
	}
	fmt.Fprintf(p.cfg.Writer, "%s %s in %s\n",
		p.paint(p.cyan, label), s.String(), s.Duration.Round(time.Millisecond))
	if s.BackedUp > 0 {
		fmt.Fprintf(p.cfg.Writer, "Backed up %d original(s)\n", s.BackedUp)
	}
}
