package domain

import "fmt"

// Stats is the aggregate view over a set of sessions.
// BySubject maps each subject to its total minutes.
type Stats struct {
	TotalMinutes   int
	SessionCount   int
	AverageMinutes float64
	BySubject      map[string]int
}

// FormatDuration renders a minute count as a compact "Xh Ym" string,
// e.g. 45 → "45m", 120 → "2h", 150 → "2h 30m".
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	hours := minutes / 60
	rem := minutes % 60
	if rem == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, rem)
}
