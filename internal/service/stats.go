package service

import (
	"context"
	"time"

	"github.com/dnwood/study-time-tracker/internal/domain"
)

// Stats aggregates the whole collection: total minutes, session count,
// average minutes per session, and per-subject totals.
func (s *SessionService) Stats(ctx context.Context) domain.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return computeStats(s.sessions)
}

// StatsByDateRange aggregates only the sessions whose date falls within
// [from, to], both bounds inclusive.
func (s *SessionService) StatsByDateRange(ctx context.Context, from, to time.Time) domain.Stats {
	return computeStats(s.ListByDateRange(ctx, from, to))
}

func computeStats(sessions []domain.Session) domain.Stats {
	stats := domain.Stats{
		SessionCount: len(sessions),
		BySubject:    make(map[string]int),
	}
	for _, sess := range sessions {
		stats.TotalMinutes += sess.DurationMinutes
		stats.BySubject[sess.Subject] += sess.DurationMinutes
	}
	if stats.SessionCount > 0 {
		stats.AverageMinutes = float64(stats.TotalMinutes) / float64(stats.SessionCount)
	}
	return stats
}
