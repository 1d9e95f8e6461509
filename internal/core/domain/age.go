package domain

import (
	"strconv"
	"time"
)

// MinEligibleBirthYear is the exclusive lower bound of the promo age window.
const MinEligibleBirthYear = 1960

// centuryOffsets maps the month field ranges of a personal identity to the
// century they encode.
var centuryOffsets = []struct {
	from, to int
	century  int
}{
	{1, 12, 1900},
	{21, 32, 2000},
	{41, 52, 2100},
	{61, 72, 2200},
	{81, 92, 1800},
}

// BirthYear decodes the four digit birth year packed into the first four
// characters of a personal identity.
func BirthYear(id Identity) (int, bool) {
	raw, ok := id.Value()
	if !ok || len(raw) < 4 {
		return 0, false
	}
	year, err := strconv.Atoi(raw[0:2])
	if err != nil {
		return 0, false
	}
	month, err := strconv.Atoi(raw[2:4])
	if err != nil {
		return 0, false
	}
	for _, o := range centuryOffsets {
		if month >= o.from && month <= o.to {
			return o.century + year, true
		}
	}
	return 0, false
}

// IsAgeEligible reports whether the birth year encoded in id falls inside
// (MinEligibleBirthYear, now.Year()].
func IsAgeEligible(id Identity, now time.Time) bool {
	year, ok := BirthYear(id)
	if !ok {
		return false
	}
	return year > MinEligibleBirthYear && year <= now.Year()
}
