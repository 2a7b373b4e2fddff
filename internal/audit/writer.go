package audit

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

const (
	journalName = "dateprefix-audit.jsonl"
	lockName    = "dateprefix-audit.lock"

	// rotateSize is the journal size above which a new file is started.
	rotateSize = 10 * 1024 * 1024
)

// ErrRunInProgress is returned when another process holds the journal lock.
var ErrRunInProgress = errors.New("another dateprefix run is already in progress")

// Writer appends events to the journal. It holds an advisory file lock for
// its whole lifetime so concurrent runs over the same directory cannot
// interleave their records.
type Writer struct {
	mu      sync.Mutex
	file    *os.File
	w       *bufio.Writer
	logPath string
	lock    *flock.Flock
	runID   string
}

// NewWriter opens (or creates) the journal in dir and acquires the lock.
// An oversized journal is rotated aside before new events are written.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create audit directory: %w", err)
	}

	lock := flock.New(filepath.Join(dir, lockName))
	acquired, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire audit lock: %w", err)
	}
	if !acquired {
		return nil, ErrRunInProgress
	}

	logPath := filepath.Join(dir, journalName)
	if err := rotateIfNeeded(logPath); err != nil {
		lock.Unlock()
		return nil, err
	}

	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		lock.Unlock()
		return nil, fmt.Errorf("open audit journal: %w", err)
	}

	return &Writer{
		file:    file,
		w:       bufio.NewWriter(file),
		logPath: logPath,
		lock:    lock,
	}, nil
}

// rotateIfNeeded moves an oversized journal aside under a timestamped name.
// Rotated files keep the journal prefix so the reader still finds them.
func rotateIfNeeded(logPath string) error {
	info, err := os.Stat(logPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.Size() < rotateSize {
		return nil
	}

	stamp := time.Now().UTC().Format("20060102T150405")
	rotated := fmt.Sprintf("dateprefix-audit-%s.jsonl", stamp)
	return os.Rename(logPath, filepath.Join(filepath.Dir(logPath), rotated))
}

// RunID returns the identifier of the current run, or "" before BeginRun.
func (w *Writer) RunID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.runID
}

// BeginRun writes the RUN_START event and returns the new run's identifier.
func (w *Writer) BeginRun(runType RunType) (string, error) {
	return w.beginRun(runType, "")
}

// BeginUndoRun starts an undo run, recording the rename run it reverses so
// the reader can exclude that run from future undo lookups.
func (w *Writer) BeginUndoRun(targetRunID string) (string, error) {
	return w.beginRun(RunTypeUndo, targetRunID)
}

func (w *Writer) beginRun(runType RunType, undoOf string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.runID = uuid.NewString()
	ev := Event{
		Timestamp: time.Now().UTC(),
		RunID:     w.runID,
		Type:      EventRunStart,
		RunType:   runType,
		UndoOf:    undoOf,
	}
	if err := w.writeLocked(ev); err != nil {
		return "", err
	}
	return w.runID, nil
}

// Record stamps the event with the current run and time, then appends it.
// Writes are flushed immediately so an interrupted run still leaves a
// readable journal.
func (w *Writer) Record(ev Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	ev.Timestamp = time.Now().UTC()
	ev.RunID = w.runID
	return w.writeLocked(ev)
}

// EndRun writes the RUN_END event, optionally carrying a summary line.
func (w *Writer) EndRun(summary string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.writeLocked(Event{
		Timestamp: time.Now().UTC(),
		RunID:     w.runID,
		Type:      EventRunEnd,
		Reason:    summary,
	})
}

func (w *Writer) writeLocked(ev Event) error {
	line, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	if _, err := w.w.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write audit event: %w", err)
	}
	return w.w.Flush()
}

// Close flushes the journal and releases the lock.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var firstErr error
	if err := w.w.Flush(); err != nil {
		firstErr = err
	}
	if err := w.file.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := w.lock.Unlock(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
