package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"dateprefix/internal/orchestrator"
	"dateprefix/internal/renamer"
)

func newTestPrinter(verbose bool) (*Printer, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	p := New(Config{Verbose: verbose, Writer: &out, ErrWriter: &errOut, Color: false})
	return p, &out, &errOut
}

func renameResult(old, new string) orchestrator.Result {
	return orchestrator.Result{
		Outcome: &renamer.Outcome{OldName: old, NewName: new},
	}
}

func TestResultRename(t *testing.T) {
	p, out, _ := newTestPrinter(false)
	p.Result(renameResult("report_2024-03-15.pdf", "20240315_report.pdf"), false)

	got := out.String()
	want := "renamed report_2024-03-15.pdf -> 20240315_report.pdf\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestResultDryRun(t *testing.T) {
	p, out, _ := newTestPrinter(false)
	p.Result(renameResult("a_2024-01-02.txt", "20240102_a.txt"), true)

	if !strings.HasPrefix(out.String(), "would rename ") {
		t.Errorf("dry-run output = %q, want 'would rename' prefix", out.String())
	}
}

func TestResultSkipAlwaysListed(t *testing.T) {
	skip := orchestrator.Result{
		Outcome: &renamer.Outcome{OldName: "notes.txt", Skipped: true, Reason: renamer.NoDate},
	}

	// Skipped files are listed even without --verbose.
	p, out, _ := newTestPrinter(false)
	p.Result(skip, false)
	if !strings.Contains(out.String(), "skip notes.txt (no date found)") {
		t.Errorf("default skip output = %q, want the skip line", out.String())
	}

	skip.Outcome.Reason = renamer.AlreadyNormalized
	p, out, _ = newTestPrinter(false)
	p.Result(skip, false)
	if !strings.Contains(out.String(), "already normalized") {
		t.Errorf("skip output = %q, want reason", out.String())
	}
}

func TestResultError(t *testing.T) {
	p, out, errOut := newTestPrinter(false)
	p.Result(orchestrator.Result{
		Path: "/photos/a.jpg",
		Err:  errors.New("permission denied"),
	}, false)

	if out.Len() != 0 {
		t.Errorf("error wrote to stdout: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "permission denied") {
		t.Errorf("stderr = %q, want the error text", errOut.String())
	}
}

func TestResultCollision(t *testing.T) {
	p, out, _ := newTestPrinter(false)
	r := renameResult("b_2024-01-02.txt", "20240102_b_2.txt")
	r.Outcome.Collision = true
	p.Result(r, false)

	if !strings.Contains(out.String(), "(collision suffix)") {
		t.Errorf("output = %q, want collision note", out.String())
	}
}

func TestSummary(t *testing.T) {
	p, out, _ := newTestPrinter(false)
	s := &orchestrator.Summary{
		TotalFiles: 3,
		Renamed:    2,
		Skipped:    1,
		BackedUp:   2,
		Duration:   1500 * time.Millisecond,
		Results: []orchestrator.Result{
			renameResult("a_2024-01-02.txt", "20240102_a.txt"),
			renameResult("b_2024-01-03.txt", "20240103_b.txt"),
		},
	}
	p.Summary(s, false)

	got := out.String()
	if !strings.Contains(got, "Done: 3 files: 2 renamed, 1 skipped, 0 errors in 1.5s") {
		t.Errorf("summary output = %q", got)
	}
	if !strings.Contains(got, "Backed up 2 original(s)") {
		t.Errorf("summary output = %q, want backup count", got)
	}
}

func TestSummaryDryRunLabel(t *testing.T) {
	p, out, _ := newTestPrinter(false)
	p.Summary(&orchestrator.Summary{TotalFiles: 1, Renamed: 1}, true)

	if !strings.Contains(out.String(), "Dry run:") {
		t.Errorf("summary output = %q, want 'Dry run:' label", out.String())
	}
}
