package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeOfDay is a clock time without a date or zone, used for the optional
// start and end times of a session. The zero value is midnight.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS" text into a TimeOfDay.
// Components must be zero-padded two-digit numbers within clock range.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		if len(p) != 2 {
			return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
		}
		nums[i] = n
	}
	t := TimeOfDay{Hour: nums[0], Minute: nums[1], Second: nums[2]}
	if t.Hour > 23 || t.Minute > 59 || t.Second > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
	}
	return t, nil
}

// String renders the time as "HH:MM:SS".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}
