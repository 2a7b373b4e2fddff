// Package audit keeps an append-only journal of rename runs so they can be
// inspected and reversed.
package audit

import "time"

// EventType represents the type of journal event.
type EventType string

const (
	// Run lifecycle events.
	EventRunStart EventType = "RUN_START"
	EventRunEnd   EventType = "RUN_END"

	// Per-file events.
	EventRename EventType = "RENAME"
	EventSkip   EventType = "SKIP"
	EventError  EventType = "ERROR"

	// Undo events.
	EventUndoRename EventType = "UNDO_RENAME"
	EventUndoSkip   EventType = "UNDO_SKIP"
)

// RunType distinguishes forward rename runs from undo runs.
type RunType string

const (
	RunTypeRename RunType = "RENAME"
	RunTypeUndo   RunType = "UNDO"
)

// Event is a single journal record, stored as one JSON line.
type Event struct {
	Timestamp       time.Time `json:"timestamp"`
	RunID           string    `json:"runId"`
	Type            EventType `json:"eventType"`
	RunType         RunType   `json:"runType,omitempty"` // set on RUN_START
	SourcePath      string    `json:"sourcePath,omitempty"`
	DestinationPath string    `json:"destinationPath,omitempty"`
	Reason          string    `json:"reason,omitempty"`
	Error           string    `json:"error,omitempty"`
	// UndoOf names the rename run an undo run reverses; set on the undo
	// run's RUN_START so a reversed run is never undone twice.
	UndoOf string `json:"undoOf,omitempty"`
}

// Run groups the events of one execution in journal order.
type Run struct {
	ID        string
	Type      RunType
	StartTime time.Time
	Events    []Event
	Completed bool
	UndoOf    string // for undo runs, the rename run that was reversed
}

// Renames returns the run's successful RENAME events in journal order.
func (r *Run) Renames() []Event {
	var out []Event
	for _, ev := range r.Events {
		if ev.Type == EventRename {
			out = append(out, ev)
		}
	}
	return out
}
