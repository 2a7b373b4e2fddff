package dateparser

import "regexp"

// DateFormat identifies which pattern in the priority list produced a match.
type DateFormat int

const (
	// FormatTimestamp is YYYYMMDD_HHMMSS with optional milliseconds
	// (camera-style names such as PXL_20260204_181153683). The canonical
	// YYYYMMDDTHHMMSS[.mmm] spelling matches too, so a normalized name
	// re-extracts to itself instead of being carved up as a plain date.
	FormatTimestamp DateFormat = iota
	// FormatISO is YYYY-MM-DD or YYYY_MM_DD.
	FormatISO
	// FormatDayFirst is DD-MM-YYYY or DD_MM_YYYY.
	FormatDayFirst
	// FormatCompactYearFirst is 8 contiguous digits read as YYYYMMDD
	// (WhatsApp-style names such as IMG-20260204-WA0002).
	FormatCompactYearFirst
	// FormatCompactMonthFirst is 8 contiguous digits read as MMDDYYYY.
	FormatCompactMonthFirst
	// FormatDayMonthName is DD-Mon-YY, DDMonYY, or the same with a 4-digit year.
	FormatDayMonthName
	// FormatMonthNameDay is Mon-DD-YY, Mon_DD_YY, or the same with a 4-digit year.
	FormatMonthNameDay
)

// String returns a short identifier for the format, used in verbose output.
func (f DateFormat) String() string {
	switch f {
	case FormatTimestamp:
		return "YYYYMMDD_HHMMSS"
	case FormatISO:
		return "YYYY-MM-DD"
	case FormatDayFirst:
		return "DD-MM-YYYY"
	case FormatCompactYearFirst:
		return "YYYYMMDD"
	case FormatCompactMonthFirst:
		return "MMDDYYYY"
	case FormatDayMonthName:
		return "DD-Mon-YY"
	case FormatMonthNameDay:
		return "Mon-DD-YY"
	default:
		return "UNKNOWN"
	}
}

// monthNumbers maps lowercase English month abbreviations to month numbers.
var monthNumbers = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4,
	"may": 5, "jun": 6, "jul": 7, "aug": 8,
	"sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

const monthAbbrev = `(?i:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)`

// pattern describes one entry in the priority list. Contiguous-digit formats
// require a non-digit on each side so an 8-digit date is not carved out of a
// longer digit run; the textual-month formats only guard the trailing year so
// a 2-digit year does not truncate a longer number.
type pattern struct {
	format        DateFormat
	re            *regexp.Regexp
	boundedBefore bool
	boundedAfter  bool
}

// patterns is the fixed priority list. At equal starting offsets the earlier
// entry wins.
var patterns = []pattern{
	{
		format:        FormatTimestamp,
		re:            regexp.MustCompile(`(\d{4})(\d{2})(\d{2})[-_T](\d{2})(\d{2})(\d{2})(?:\.?(\d{3}))?`),
		boundedBefore: true,
		boundedAfter:  true,
	},
	{
		format: FormatISO,
		re:     regexp.MustCompile(`(\d{4})[-_](\d{2})[-_](\d{2})`),
	},
	{
		format: FormatDayFirst,
		re:     regexp.MustCompile(`(\d{2})[-_](\d{2})[-_](\d{4})`),
	},
	{
		format:        FormatCompactYearFirst,
		re:            regexp.MustCompile(`(\d{4})(\d{2})(\d{2})`),
		boundedBefore: true,
		boundedAfter:  true,
	},
	{
		format:        FormatCompactMonthFirst,
		re:            regexp.MustCompile(`(\d{2})(\d{2})(\d{4})`),
		boundedBefore: true,
		boundedAfter:  true,
	},
	{
		format:       FormatDayMonthName,
		re:           regexp.MustCompile(`(\d{1,2})[-_]?(` + monthAbbrev + `)[-_]?(\d{4}|\d{2})`),
		boundedAfter: true,
	},
	{
		format:       FormatMonthNameDay,
		re:           regexp.MustCompile(`(` + monthAbbrev + `)[-_]?(\d{1,2})[-,_]?(\d{4}|\d{2})`),
		boundedAfter: true,
	},
}
