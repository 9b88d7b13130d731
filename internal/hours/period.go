package hours

import (
	"regexp"
	"strconv"
)

var periodPattern = regexp.MustCompile(`^(\d{4})-(0[1-9]|1[0-2])$`)

// ValidPeriod reports whether a period label is a usable "YYYY-MM" key with
// the year in a sane range. Downstream code treats the label as opaque.
func ValidPeriod(period string) bool {
	m := periodPattern.FindStringSubmatch(period)
	if m == nil {
		return false
	}
	year, _ := strconv.Atoi(m[1])
	return year >= 2000 && year <= 2100
}
