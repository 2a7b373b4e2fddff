package orchestrator

import (
	"fmt"
	"time"

	"dateprefix/internal/renamer"
)

// Summary accumulates the results of a run.
type Summary struct {
	TotalFiles int
	Renamed    int
	Skipped    int
	NoDate     int // subset of Skipped
	Errors     int
	Collisions int
	BackedUp   int
	Duration   time.Duration
	Results    []Result
}

func (s *Summary) add(r Result) {
	s.Results = append(s.Results, r)
	switch {
	case r.Err != nil:
		s.Errors++
	case r.Outcome.Skipped:
		s.Skipped++
		if r.Outcome.Reason == renamer.NoDate {
			s.NoDate++
		}
	default:
		s.Renamed++
		if r.Outcome.Collision {
			s.Collisions++
		}
		if r.Outcome.BackedUp {
			s.BackedUp++
		}
	}
}

// HasErrors reports whether any per-file error occurred.
func (s *Summary) HasErrors() bool {
	return s.Errors > 0
}

// String renders the one-line totals.
func (s *Summary) String() string {
	return fmt.Sprintf("%d files: %d renamed, %d skipped, %d errors",
		s.TotalFiles, s.Renamed, s.Skipped, s.Errors)
}
