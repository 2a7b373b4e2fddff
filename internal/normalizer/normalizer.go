// Package normalizer builds residual and target filenames once a date span
// has been located.
package normalizer

import "strings"

// FallbackBase is used when removing the date leaves nothing of the name.
const FallbackBase = "file"

const separators = "-_ "

func isSeparator(b byte) bool {
	return b == '-' || b == '_' || b == ' '
}

// Residual removes base[start:end] and cleans up the junction. Separator runs
// touching the removed span are trimmed; when separators were present on both
// sides and both halves survive, they are rejoined with a single underscore,
// otherwise the halves are concatenated directly. Leading and trailing
// separators are stripped from the result.
func Residual(base string, start, end int) string {
	prefix := base[:start]
	suffix := base[end:]

	trimmedLeft := false
	for len(prefix) > 0 && isSeparator(prefix[len(prefix)-1]) {
		prefix = prefix[:len(prefix)-1]
		trimmedLeft = true
	}

	trimmedRight := false
	for len(suffix) > 0 && isSeparator(suffix[0]) {
		suffix = suffix[1:]
		trimmedRight = true
	}

	var joined string
	if prefix != "" && suffix != "" && trimmedLeft && trimmedRight {
		joined = prefix + "_" + suffix
	} else {
		joined = prefix + suffix
	}

	return strings.Trim(joined, separators)
}

// TargetName composes the final filename from the canonical date prefix, the
// residual name, and the verbatim extension. An empty residual falls back to
// FallbackBase so a name that was nothing but a date still gets a base.
func TargetName(canonical, residual, ext string) string {
	if residual == "" {
		residual = FallbackBase
	}
	return canonical + "_" + residual + ext
}
