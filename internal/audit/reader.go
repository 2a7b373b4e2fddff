package audit

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
)

// ErrNoRuns is returned when the journal holds no completed rename run.
var ErrNoRuns = errors.New("no completed rename run found in audit journal")

// ReadEvents loads every journal event in dir, including rotated files, in
// chronological order. Unparseable lines are skipped rather than failing the
// whole read, so a torn final line from a crashed run is harmless.
func ReadEvents(dir string) ([]Event, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "dateprefix-audit*.jsonl"))
	if err != nil {
		return nil, err
	}
	// Rotated names carry a timestamp and sort before the active journal.
	sort.Strings(matches)

	var events []Event
	for _, path := range matches {
		fileEvents, err := readFile(path)
		if err != nil {
			return nil, err
		}
		events = append(events, fileEvents...)
	}
	return events, nil
}

func readFile(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var ev Event
		if err := json.Unmarshal(line, &ev); err != nil {
			continue
		}
		events = append(events, ev)
	}
	return events, scanner.Err()
}

// Runs groups events into runs, preserving journal order.
func Runs(events []Event) []*Run {
	var runs []*Run
	byID := make(map[string]*Run)

	for _, ev := range events {
		if ev.RunID == "" {
			continue
		}
		run, ok := byID[ev.RunID]
		if !ok {
			run = &Run{ID: ev.RunID}
			byID[ev.RunID] = run
			runs = append(runs, run)
		}
		switch ev.Type {
		case EventRunStart:
			run.Type = ev.RunType
			run.StartTime = ev.Timestamp
			run.UndoOf = ev.UndoOf
		case EventRunEnd:
			run.Completed = true
		}
		run.Events = append(run.Events, ev)
	}
	return runs
}

// LastCompletedRenameRun returns the most recent rename run that reached
// RUN_END, performed at least one rename, and has not already been reversed
// by a completed undo run. Interrupted runs are never candidates for undo
// because their journal may be incomplete.
func LastCompletedRenameRun(dir string) (*Run, error) {
	events, err := ReadEvents(dir)
	if err != nil {
		return nil, err
	}

	runs := Runs(events)
	undone := make(map[string]bool)
	for _, run := range runs {
		if run.Type == RunTypeUndo && run.Completed && run.UndoOf != "" {
			undone[run.UndoOf] = true
		}
	}

	for i := len(runs) - 1; i >= 0; i-- {
		run := runs[i]
		if run.Type == RunTypeRename && run.Completed &&
			len(run.Renames()) > 0 && !undone[run.ID] {
			return run, nil
		}
	}
	return nil, ErrNoRuns
}
