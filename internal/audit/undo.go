package audit

import (
	"fmt"
	"os"
)

// UndoOutcome summarizes a reversal of one rename run.
type UndoOutcome struct {
	RunID    string   // the run that was undone
	Restored int      // renames reversed
	Skipped  []string // per-file reasons for entries that could not be reversed
}

// UndoLastRun reverses the most recent completed rename run, newest rename
// first. A rename is only reversed when its destination still exists and its
// original name is free; anything else is skipped and reported, never
// overwritten. The undo itself is journaled as a new run.
func UndoLastRun(dir string) (*UndoOutcome, error) {
	w, err := NewWriter(dir)
	if err != nil {
		return nil, err
	}
	defer w.Close()

	target, err := LastCompletedRenameRun(dir)
	if err != nil {
		return nil, err
	}

	if _, err := w.BeginUndoRun(target.ID); err != nil {
		return nil, err
	}

	outcome := &UndoOutcome{RunID: target.ID}
	renames := target.Renames()
	for i := len(renames) - 1; i >= 0; i-- {
		ev := renames[i]

		if _, err := os.Stat(ev.DestinationPath); os.IsNotExist(err) {
			outcome.skip(w, ev, "destination no longer exists")
			continue
		}
		if _, err := os.Stat(ev.SourcePath); err == nil {
			outcome.skip(w, ev, "original name is occupied")
			continue
		}

		if err := os.Rename(ev.DestinationPath, ev.SourcePath); err != nil {
			outcome.skip(w, ev, err.Error())
			continue
		}

		outcome.Restored++
		w.Record(Event{
			Type:            EventUndoRename,
			SourcePath:      ev.DestinationPath,
			DestinationPath: ev.SourcePath,
		})
	}

	summary := fmt.Sprintf("undid run %s: %d restored, %d skipped",
		target.ID, outcome.Restored, len(outcome.Skipped))
	if err := w.EndRun(summary); err != nil {
		return outcome, err
	}
	return outcome, nil
}

func (o *UndoOutcome) skip(w *Writer, ev Event, reason string) {
	o.Skipped = append(o.Skipped, fmt.Sprintf("%s: %s", ev.DestinationPath, reason))
	w.Record(Event{
		Type:       EventUndoSkip,
		SourcePath: ev.DestinationPath,
		Reason:     reason,
	})
}
