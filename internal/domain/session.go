// Package domain contains the core data types for the Study Time Tracker.
// This package has minimal external dependencies and is imported by every
// other internal package (codec, repo, service, handler).
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Session represents a single study session.
// ID is assigned once at creation and never reassigned; it is the
// equality/lookup key for the whole application.
// StartTime, EndTime, and Notes are optional and independently nil.
type Session struct {
	ID              string
	Subject         string
	DurationMinutes int
	Date            time.Time // date only, normalized to midnight UTC
	StartTime       *TimeOfDay
	EndTime         *TimeOfDay
	Notes           *string
}

// SessionPatch carries optional replacement values for an update.
// Nil fields keep the current value. There is no way to clear an optional
// field through a patch; that mirrors the update semantics of the API.
type SessionPatch struct {
	Subject         *string
	DurationMinutes *int
	Date            *time.Time
	StartTime       *TimeOfDay
	EndTime         *TimeOfDay
	Notes           *string
}

// NewSession validates the required fields and returns a Session with a
// freshly generated ID. Optional fields start out unset.
// Returns ErrValidation when subject is blank, durationMinutes is not
// positive, or date is the zero value.
func NewSession(subject string, durationMinutes int, date time.Time) (Session, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return Session{}, fmt.Errorf("%w: subject is required", ErrValidation)
	}
	if durationMinutes <= 0 {
		return Session{}, fmt.Errorf("%w: durationMinutes must be positive", ErrValidation)
	}
	if date.IsZero() {
		return Session{}, fmt.Errorf("%w: date is required", ErrValidation)
	}
	return Session{
		ID:              uuid.NewString(),
		Subject:         subject,
		DurationMinutes: durationMinutes,
		Date:            NormalizeDate(date),
	}, nil
}

// SetSubject replaces the subject, re-checking the non-empty invariant.
func (s *Session) SetSubject(subject string) error {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return fmt.Errorf("%w: subject is required", ErrValidation)
	}
	s.Subject = subject
	return nil
}

// SetDurationMinutes replaces the duration, re-checking the positive invariant.
func (s *Session) SetDurationMinutes(minutes int) error {
	if minutes <= 0 {
		return fmt.Errorf("%w: durationMinutes must be positive", ErrValidation)
	}
	s.DurationMinutes = minutes
	return nil
}

// SetDate replaces the date, re-checking that it is present.
// The value is normalized to midnight UTC.
func (s *Session) SetDate(date time.Time) error {
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}
	s.Date = NormalizeDate(date)
	return nil
}

// SetStartTime sets or clears the optional start time.
func (s *Session) SetStartTime(t *TimeOfDay) {
	s.StartTime = t
}

// SetEndTime sets or clears the optional end time.
// No ordering constraint against StartTime is enforced; the two are
// independently optional.
func (s *Session) SetEndTime(t *TimeOfDay) {
	s.EndTime = t
}

// SetNotes sets the optional free-text notes.
// A blank string clears the notes.
func (s *Session) SetNotes(notes string) {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		s.Notes = nil
		return
	}
	s.Notes = &notes
}

// NormalizeDate strips the time-of-day and location from a timestamp,
// keeping only the calendar date at midnight UTC. Dates are compared and
// serialized date-only, so every Session.Date goes through this.
func NormalizeDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
