// Package numbering implements the heading auto-numbering engine of
// spec.md §4.3: a format-string grammar ("%1.", "%1.%2.") validated
// against the placeholder-sequence rule, and a six-counter state
// machine driven by the sequence of heading levels seen in a document.
package numbering

import (
	"fmt"
	"regexp"
	"strconv"
)

// placeholderPattern matches a %N placeholder in a format string for
// any run of digits, grouped the same way internal/regex's
// pattern-table style groups its compiled math-delimiter regexes in
// the teacher repo: one package-level compiled pattern, reused across
// calls. It deliberately does not restrict N to 1..6 itself: the range
// check below needs to see an out-of-range placeholder (e.g. %7) to
// reject it, rather than have the regex silently treat it as literal
// text.
var placeholderPattern = regexp.MustCompile(`%(\d+)`)

// ValidateFormat checks a §4.3 format string for a single heading
// level. A format is valid when it contains at least one %N
// placeholder and the distinct placeholders seen, in first-occurrence
// order, form exactly the sequence 1, 2, ..., k for some k >= 1.
func ValidateFormat(format string) error {
	if format == "" {
		return fmt.Errorf("numbering format is empty")
	}

	matches := placeholderPattern.FindAllStringSubmatch(format, -1)
	if len(matches) == 0 {
		return fmt.Errorf("numbering format %q has no %%N placeholder", format)
	}

	seen := map[int]bool{}
	var order []int
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return fmt.Errorf("numbering format %q has an unparseable placeholder", format)
		}
		if n < 1 || n > 6 {
			return fmt.Errorf("numbering format %q has placeholder %%%d out of range 1..6", format, n)
		}
		if !seen[n] {
			seen[n] = true
			order = append(order, n)
		}
	}

	for i, n := range order {
		if n != i+1 {
			return fmt.Errorf("numbering format %q placeholders must run 1..k in order, got %v", format, order)
		}
	}
	return nil
}

// Render substitutes each %N placeholder in format with the current
// value of counters[N-1], rendered as a plain decimal with no padding.
// Render assumes format has already passed ValidateFormat.
func Render(format string, counters [6]uint32) string {
	return placeholderPattern.ReplaceAllStringFunc(format, func(token string) string {
		n, _ := strconv.Atoi(token[1:])
		return strconv.FormatUint(uint64(counters[n-1]), 10)
	})
}
