// Package dateparser locates and normalizes dates embedded in filenames.
//
// A fixed priority-ordered list of patterns is tried at every position of the
// base name; the leftmost valid calendar date wins, with the priority order
// breaking ties at the same offset. Matches with impossible calendar values
// (month 13, April 31) are discarded and scanning continues past them.
package dateparser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"dateprefix/internal/normalizer"
)

// Two-digit years expand around a fixed pivot: 00-79 become 2000-2079 and
// 80-99 become 1980-1999.
const pivotYear = 80

// NoDateError reports that no recognized date pattern produced a valid
// calendar date anywhere in the filename.
type NoDateError struct {
	Filename string
}

func (e *NoDateError) Error() string {
	return fmt.Sprintf("no date found in %q", e.Filename)
}

// IsNoDate reports whether err indicates that extraction found no date.
func IsNoDate(err error) bool {
	var nd *NoDateError
	return errors.As(err, &nd)
}

// Extraction is the result of finding a date in a filename.
type Extraction struct {
	Canonical string // YYYYMMDD, or YYYYMMDDTHHMMSS[.mmm] for timestamps
	Year      int
	Month     int
	Day       int

	HasTime bool
	Hour    int
	Minute  int
	Second  int

	Matched  string // the exact span of the base name that matched
	Start    int    // span offsets into the base name
	End      int
	Format   DateFormat
	Residual string // base name with the span removed and separators cleaned
	Ext      string // extension preserved verbatim, including the dot
}

// candidate is a syntactic match that passed calendar validation.
type candidate struct {
	start, end int
	year       int
	month      int
	day        int
	hasTime    bool
	hour       int
	minute     int
	second     int
	millis     string
	format     DateFormat
}

// Extract scans filename for the first recognized date and returns the
// canonical form together with the cleaned residual name. The extension is
// split off first and never participates in matching. Returns *NoDateError
// when nothing matches.
func Extract(filename string) (*Extraction, error) {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)
	if base == "" {
		// Dotfiles like ".profile" have no usable extension split.
		base, ext = filename, ""
	}

	cand := findCandidate(base)
	if cand == nil {
		return nil, &NoDateError{Filename: filename}
	}

	canonical := fmt.Sprintf("%04d%02d%02d", cand.year, cand.month, cand.day)
	if cand.hasTime {
		canonical += fmt.Sprintf("T%02d%02d%02d", cand.hour, cand.minute, cand.second)
		if cand.millis != "" {
			canonical += "." + cand.millis
		}
	}

	return &Extraction{
		Canonical: canonical,
		Year:      cand.year,
		Month:     cand.month,
		Day:       cand.day,
		HasTime:   cand.hasTime,
		Hour:      cand.hour,
		Minute:    cand.minute,
		Second:    cand.second,
		Matched:   base[cand.start:cand.end],
		Start:     cand.start,
		End:       cand.end,
		Format:    cand.format,
		Residual:  normalizer.Residual(base, cand.start, cand.end),
		Ext:       ext,
	}, nil
}

// findCandidate returns the best candidate in base, or nil. For each pattern
// it takes the leftmost match that survives boundary checks and calendar
// validation, then picks the candidate with the smallest starting offset;
// the priority order decides ties.
func findCandidate(base string) *candidate {
	var best *candidate
	for _, p := range patterns {
		c := firstValidMatch(base, p)
		if c == nil {
			continue
		}
		if best == nil || c.start < best.start {
			best = c
		}
	}
	return best
}

// firstValidMatch finds the leftmost match of p in base that is properly
// bounded and forms a valid date. An invalid match only advances the scan by
// one position, so overlapping later matches are still considered.
func firstValidMatch(base string, p pattern) *candidate {
	pos := 0
	for pos < len(base) {
		loc := p.re.FindStringSubmatchIndex(base[pos:])
		if loc == nil {
			return nil
		}
		start, end := pos+loc[0], pos+loc[1]
		if !bounded(base, start, end, p) {
			pos = start + 1
			continue
		}
		if c := parseMatch(base, pos, loc, p); c != nil {
			return c
		}
		pos = start + 1
	}
	return nil
}

// bounded checks the pattern's digit-boundary requirements against the
// characters surrounding the span.
func bounded(base string, start, end int, p pattern) bool {
	if p.boundedBefore && start > 0 && isDigit(base[start-1]) {
		return false
	}
	if p.boundedAfter && end < len(base) && isDigit(base[end]) {
		return false
	}
	return true
}

// parseMatch interprets the capture groups according to the pattern's format
// and validates the result. Returns nil if the values do not form a real
// calendar date (or time of day).
func parseMatch(base string, pos int, loc []int, p pattern) *candidate {
	group := func(n int) string {
		lo, hi := loc[2*n], loc[2*n+1]
		if lo < 0 {
			return ""
		}
		return base[pos+lo : pos+hi]
	}

	c := &candidate{
		start:  pos + loc[0],
		end:    pos + loc[1],
		format: p.format,
	}

	switch p.format {
	case FormatTimestamp:
		c.year = atoi(group(1))
		c.month = atoi(group(2))
		c.day = atoi(group(3))
		c.hour = atoi(group(4))
		c.minute = atoi(group(5))
		c.second = atoi(group(6))
		c.millis = group(7)
		c.hasTime = true
		if !validTime(c.hour, c.minute, c.second) {
			return nil
		}
	case FormatISO, FormatCompactYearFirst:
		c.year = atoi(group(1))
		c.month = atoi(group(2))
		c.day = atoi(group(3))
	case FormatDayFirst:
		c.day = atoi(group(1))
		c.month = atoi(group(2))
		c.year = atoi(group(3))
	case FormatCompactMonthFirst:
		c.month = atoi(group(1))
		c.day = atoi(group(2))
		c.year = atoi(group(3))
	case FormatDayMonthName:
		c.day = atoi(group(1))
		c.month = monthNumbers[strings.ToLower(group(2))]
		c.year = expandYear(group(3))
	case FormatMonthNameDay:
		c.month = monthNumbers[strings.ToLower(group(1))]
		c.day = atoi(group(2))
		c.year = expandYear(group(3))
	}

	if !validDate(c.year, c.month, c.day) {
		return nil
	}
	return c
}

// expandYear converts a 2- or 4-digit year string to a full year using the
// fixed pivot.
func expandYear(s string) int {
	y := atoi(s)
	if len(s) == 4 {
		return y
	}
	if y < pivotYear {
		return 2000 + y
	}
	return 1900 + y
}

// validDate checks month range and day range for the month, with leap-year
// handling for February.
func validDate(year, month, day int) bool {
	if month < 1 || month > 12 {
		return false
	}
	return day >= 1 && day <= daysInMonth(year, month)
}

func validTime(hour, minute, second int) bool {
	return hour >= 0 && hour <= 23 &&
		minute >= 0 && minute <= 59 &&
		second >= 0 && second <= 59
}

// daysInMonth returns the number of days in the given month for the given year.
func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if isLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

// isLeapYear returns true if the given year is a leap year.
func isLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || (year%400 == 0)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
