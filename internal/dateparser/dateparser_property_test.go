package dateparser

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"dateprefix/internal/normalizer"
)

type calendarDate struct {
	Year  int
	Month int
	Day   int
}

// genWord generates surrounding text for filenames. The pool is deliberately
// free of digits and month abbreviations so the generated date is the only
// match in the name.
func genWord() gopter.Gen {
	return gen.OneConstOf("report", "invoice", "photo", "scan", "notes", "export", "draft", "final")
}

// genValidDate generates real calendar dates; day caps at 28 so every month
// is valid.
func genValidDate() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(1900, 2099), // year
		gen.IntRange(1, 12),      // month
		gen.IntRange(1, 28),      // day
	).Map(func(vals []interface{}) calendarDate {
		return calendarDate{
			Year:  vals[0].(int),
			Month: vals[1].(int),
			Day:   vals[2].(int),
		}
	})
}

func TestIsoDateExtractedAnywhere(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("a valid YYYY-MM-DD substring is always extracted", prop.ForAll(
		func(d calendarDate, prefix, suffix string) bool {
			filename := fmt.Sprintf("%s_%04d-%02d-%02d_%s.txt", prefix, d.Year, d.Month, d.Day, suffix)
			ex, err := Extract(filename)
			if err != nil {
				return false
			}
			return ex.Year == d.Year && ex.Month == d.Month && ex.Day == d.Day &&
				ex.Canonical == fmt.Sprintf("%04d%02d%02d", d.Year, d.Month, d.Day)
		},
		genValidDate(),
		genWord(),
		genWord(),
	))

	properties.TestingRun(t)
}

func TestInvalidCalendarValuesNeverMatch(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("ISO-shaped strings with impossible months are rejected", prop.ForAll(
		func(year, month int, word string) bool {
			filename := fmt.Sprintf("%s_%04d-%02d-40.txt", word, year, month)
			_, err := Extract(filename)
			return IsNoDate(err)
		},
		gen.IntRange(1900, 2099),
		gen.IntRange(13, 99),
		genWord(),
	))

	properties.TestingRun(t)
}

func TestExtractionIsStable(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	// Extracting from an already-normalized name re-derives the same name, so
	// repeated runs never stack prefixes.
	properties.Property("normalized names re-extract to themselves", prop.ForAll(
		func(d calendarDate, word string) bool {
			filename := fmt.Sprintf("%s_%04d-%02d-%02d.txt", word, d.Year, d.Month, d.Day)
			first, err := Extract(filename)
			if err != nil {
				return false
			}
			normalized := normalizer.TargetName(first.Canonical, first.Residual, first.Ext)

			second, err := Extract(normalized)
			if err != nil {
				return false
			}
			return normalizer.TargetName(second.Canonical, second.Residual, second.Ext) == normalized
		},
		genValidDate(),
		genWord(),
	))

	properties.Property("normalized timestamp names re-extract to themselves", prop.ForAll(
		func(d calendarDate, hour, minute, second, millis int, word string) bool {
			filename := fmt.Sprintf("%s_%04d%02d%02d_%02d%02d%02d%03d.mp4",
				word, d.Year, d.Month, d.Day, hour, minute, second, millis)
			first, err := Extract(filename)
			if err != nil {
				return false
			}
			normalized := normalizer.TargetName(first.Canonical, first.Residual, first.Ext)

			second2, err := Extract(normalized)
			if err != nil {
				return false
			}
			return normalizer.TargetName(second2.Canonical, second2.Residual, second2.Ext) == normalized
		},
		genValidDate(),
		gen.IntRange(0, 23),
		gen.IntRange(0, 59),
		gen.IntRange(0, 59),
		gen.IntRange(0, 999),
		genWord(),
	))

	properties.TestingRun(t)
}
