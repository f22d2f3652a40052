// Package service contains the business logic for the Study Time Tracker.
// The service validates inputs, enforces business rules, and owns the
// in-memory session collection; every mutation is persisted through the
// store before it returns.
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dnwood/study-time-tracker/internal/domain"
	"github.com/dnwood/study-time-tracker/internal/repo"
)

// SessionService implements all session operations over an in-memory ordered
// list backed by a SessionStore. The store itself provides no isolation, so
// a single mutex serializes every load-mutate-save cycle; all methods are
// safe for concurrent use.
type SessionService struct {
	mu       sync.Mutex
	store    repo.SessionStore
	sessions []domain.Session
}

// NewSessionService constructs a SessionService and loads the existing
// collection from the store.
func NewSessionService(ctx context.Context, store repo.SessionStore) (*SessionService, error) {
	sessions, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.NewSessionService: %w", err)
	}
	return &SessionService{store: store, sessions: sessions}, nil
}

// Create validates and persists a new session. The ID, optional-field
// normalization, and invariants all come from the domain constructor; only
// Subject, DurationMinutes, Date, StartTime, EndTime, and Notes of the input
// are read.
func (s *SessionService) Create(ctx context.Context, input domain.Session) (domain.Session, error) {
	created, err := domain.NewSession(input.Subject, input.DurationMinutes, input.Date)
	if err != nil {
		return domain.Session{}, err
	}
	created.SetStartTime(input.StartTime)
	created.SetEndTime(input.EndTime)
	if input.Notes != nil {
		created.SetNotes(*input.Notes)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = append(s.sessions, created)
	if err := s.persist(ctx); err != nil {
		s.sessions = s.sessions[:len(s.sessions)-1]
		return domain.Session{}, err
	}
	return created, nil
}

// GetByID returns a single session by ID.
// Returns domain.ErrNotFound if no session with that ID exists.
func (s *SessionService) GetByID(ctx context.Context, id string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.sessions[i], nil
	}
	return domain.Session{}, fmt.Errorf("service.SessionService.GetByID: %w", domain.ErrNotFound)
}

// List returns a copy of all sessions in insertion order.
func (s *SessionService) List(ctx context.Context) []domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// ListSortedByDate returns all sessions sorted by date, newest first.
// Sessions on the same date keep their insertion order.
func (s *SessionService) ListSortedByDate(ctx context.Context) []domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.snapshot()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// ListByDateRange returns sessions whose date falls within [from, to],
// both bounds inclusive, in insertion order.
func (s *SessionService) ListByDateRange(ctx context.Context, from, to time.Time) []domain.Session {
	from = domain.NormalizeDate(from)
	to = domain.NormalizeDate(to)

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Session{}
	for _, sess := range s.sessions {
		if !sess.Date.Before(from) && !sess.Date.After(to) {
			out = append(out, sess)
		}
	}
	return out
}

// ListBySubject returns sessions whose subject contains the query,
// case-insensitively, in insertion order.
func (s *SessionService) ListBySubject(ctx context.Context, query string) []domain.Session {
	query = strings.ToLower(query)

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Session{}
	for _, sess := range s.sessions {
		if strings.Contains(strings.ToLower(sess.Subject), query) {
			out = append(out, sess)
		}
	}
	return out
}

// Update applies the non-nil fields of patch to the session with the given
// ID, re-checking the domain invariants, and persists the collection.
// Returns domain.ErrNotFound for an unknown ID and domain.ErrValidation when
// a patched value violates an invariant; on any error the stored session is
// left unchanged.
func (s *SessionService) Update(ctx context.Context, id string, patch domain.SessionPatch) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Session{}, fmt.Errorf("service.SessionService.Update: %w", domain.ErrNotFound)
	}

	updated := s.sessions[i]
	if patch.Subject != nil {
		if err := updated.SetSubject(*patch.Subject); err != nil {
			return domain.Session{}, err
		}
	}
	if patch.DurationMinutes != nil {
		if err := updated.SetDurationMinutes(*patch.DurationMinutes); err != nil {
			return domain.Session{}, err
		}
	}
	if patch.Date != nil {
		if err := updated.SetDate(*patch.Date); err != nil {
			return domain.Session{}, err
		}
	}
	if patch.StartTime != nil {
		updated.SetStartTime(patch.StartTime)
	}
	if patch.EndTime != nil {
		updated.SetEndTime(patch.EndTime)
	}
	if patch.Notes != nil {
		updated.SetNotes(*patch.Notes)
	}

	previous := s.sessions[i]
	s.sessions[i] = updated
	if err := s.persist(ctx); err != nil {
		s.sessions[i] = previous
		return domain.Session{}, err
	}
	return updated, nil
}

// Delete removes a session by ID and persists the collection.
// Returns domain.ErrNotFound if no session with that ID exists.
func (s *SessionService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("service.SessionService.Delete: %w", domain.ErrNotFound)
	}

	removed := s.sessions[i]
	s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
	if err := s.persist(ctx); err != nil {
		s.sessions = append(s.sessions[:i], append([]domain.Session{removed}, s.sessions[i:]...)...)
		return err
	}
	return nil
}

// Clear removes every session and persists the now-empty collection.
func (s *SessionService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.sessions
	s.sessions = []domain.Session{}
	if err := s.persist(ctx); err != nil {
		s.sessions = previous
		return err
	}
	return nil
}

// --- internal ---------------------------------------------------------------

// indexOf returns the position of the session with the given ID, or -1.
// Caller must hold s.mu.
func (s *SessionService) indexOf(id string) int {
	for i, sess := range s.sessions {
		if sess.ID == id {
			return i
		}
	}
	return -1
}

// snapshot copies the session slice so callers never alias internal state.
// Caller must hold s.mu.
func (s *SessionService) snapshot() []domain.Session {
	out := make([]domain.Session, len(s.sessions))
	copy(out, s.sessions)
	return out
}

// persist writes the whole collection through the store.
// Caller must hold s.mu.
func (s *SessionService) persist(ctx context.Context) error {
	if err := s.store.Save(ctx, s.sessions); err != nil {
		return fmt.Errorf("service.SessionService: persist: %w", err)
	}
	return nil
}
