// Package dates converts between the two textual date forms found in the
// sheet: ISO 2006-01-02 and Slovak 2.1.2006. All comparisons elsewhere in
// the codebase go through Normalize so the two forms never get compared raw.
package dates

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

const Layout = "2006-01-02"

var (
	isoRe    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	slovakRe = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{4})$`)
)

// Normalize returns the ISO form of a stored date string. ISO input passes
// through unchanged, Slovak day.month.year input is zero-padded and
// reordered. Anything else reports ok=false and callers skip the record.
func Normalize(s string) (string, bool) {
	if isoRe.MatchString(s) {
		return s, true
	}
	m := slovakRe.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	return fmt.Sprintf("%s-%02d-%02d", m[3], month, day), true
}

// Parse normalizes and parses a stored date string.
func Parse(s string) (time.Time, bool) {
	iso, ok := Normalize(s)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(Layout, iso)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DaysLate returns how many whole days (rounded up) the payment date lies
// after the due date, and whether both dates were parseable. Payments on or
// before the due date yield 0.
func DaysLate(due, paid string) (int, bool) {
	d, ok := Parse(due)
	if !ok {
		return 0, false
	}
	p, ok := Parse(paid)
	if !ok {
		return 0, false
	}
	diff := p.Sub(d).Hours() / 24
	if diff <= 0 {
		return 0, true
	}
	return int(math.Ceil(diff)), true
}
