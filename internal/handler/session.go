package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dnwood/study-time-tracker/internal/domain"
)

// dateLayout is the calendar-date form used in request bodies and query
// parameters, matching the file/wire format.
const dateLayout = "2006-01-02"

// createSessionRequest is the body for POST /api/sessions.
type createSessionRequest struct {
	Subject         string  `json:"subject"`
	DurationMinutes int     `json:"durationMinutes"`
	Date            string  `json:"date"`
	StartTime       *string `json:"startTime"`
	EndTime         *string `json:"endTime"`
	Notes           *string `json:"notes"`
}

// updateSessionRequest is the body for PUT /api/sessions/{id}.
// All fields are optional; absent fields keep their current value.
type updateSessionRequest struct {
	Subject         *string `json:"subject"`
	DurationMinutes *int    `json:"durationMinutes"`
	Date            *string `json:"date"`
	StartTime       *string `json:"startTime"`
	EndTime         *string `json:"endTime"`
	Notes           *string `json:"notes"`
}

// ListSessions handles GET /api/sessions.
// Without parameters it returns all sessions sorted by date, newest first.
// Query filters: ?from=YYYY-MM-DD&to=YYYY-MM-DD selects an inclusive date
// range; ?subject= selects by case-insensitive substring match. The date
// range takes precedence when both are supplied.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fromText, toText := q.Get("from"), q.Get("to")

	switch {
	case fromText != "" || toText != "":
		from, to, err := parseDateRange(fromText, toText)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
			return
		}
		writeCollection(w, http.StatusOK, s.sessions.ListByDateRange(r.Context(), from, to))
	case q.Get("subject") != "":
		writeCollection(w, http.StatusOK, s.sessions.ListBySubject(r.Context(), q.Get("subject")))
	default:
		writeCollection(w, http.StatusOK, s.sessions.ListSortedByDate(r.Context()))
	}
}

// CreateSession handles POST /api/sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid request body"))
		return
	}

	input, err := requestToSession(req)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	created, err := s.sessions.Create(r.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
			return
		}
		writeJSON(w, http.StatusInternalServerError, requestBody("internal error"))
		return
	}

	writeRecord(w, http.StatusCreated, created)
}

// GetSession handles GET /api/sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.sessions.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, notFoundBody("session not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, requestBody("internal error"))
		return
	}

	writeRecord(w, http.StatusOK, session)
}

// UpdateSession handles PUT /api/sessions/{id}.
func (s *Server) UpdateSession(w http.ResponseWriter, r *http.Request) {
	var req updateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid request body"))
		return
	}

	patch, err := requestToPatch(req)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	updated, err := s.sessions.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeJSON(w, http.StatusNotFound, notFoundBody("session not found"))
		case errors.Is(err, domain.ErrValidation):
			writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
		default:
			writeJSON(w, http.StatusInternalServerError, requestBody("internal error"))
		}
		return
	}

	writeRecord(w, http.StatusOK, updated)
}

// DeleteSession handles DELETE /api/sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	err := s.sessions.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, notFoundBody("session not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, requestBody("internal error"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// requestToSession converts a create request into the domain input.
// Field-level invariants (non-empty subject, positive duration) are the
// service's concern; this only rejects values that cannot be parsed at all.
func requestToSession(req createSessionRequest) (domain.Session, error) {
	if req.Date == "" {
		return domain.Session{}, errors.New("date is required")
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return domain.Session{}, errors.New("date must be YYYY-MM-DD")
	}

	input := domain.Session{
		Subject:         req.Subject,
		DurationMinutes: req.DurationMinutes,
		Date:            date,
		Notes:           req.Notes,
	}
	if input.StartTime, err = parseOptionalTime("startTime", req.StartTime); err != nil {
		return domain.Session{}, err
	}
	if input.EndTime, err = parseOptionalTime("endTime", req.EndTime); err != nil {
		return domain.Session{}, err
	}
	return input, nil
}

// requestToPatch converts an update request into a domain patch.
func requestToPatch(req updateSessionRequest) (domain.SessionPatch, error) {
	patch := domain.SessionPatch{
		Subject:         req.Subject,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
	}
	if req.Date != nil {
		date, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			return domain.SessionPatch{}, errors.New("date must be YYYY-MM-DD")
		}
		patch.Date = &date
	}
	var err error
	if patch.StartTime, err = parseOptionalTime("startTime", req.StartTime); err != nil {
		return domain.SessionPatch{}, err
	}
	if patch.EndTime, err = parseOptionalTime("endTime", req.EndTime); err != nil {
		return domain.SessionPatch{}, err
	}
	return patch, nil
}

// parseOptionalTime parses an optional HH:MM[:SS] request value. Unlike the
// codec's lenient file decoding, bad input from a client is rejected.
func parseOptionalTime(field string, text *string) (*domain.TimeOfDay, error) {
	if text == nil || *text == "" {
		return nil, nil
	}
	t, err := domain.ParseTimeOfDay(*text)
	if err != nil {
		return nil, errors.New(field + " must be HH:MM or HH:MM:SS")
	}
	return &t, nil
}

// parseDateRange parses the from/to query filter. Both bounds are required
// when either is present.
func parseDateRange(fromText, toText string) (from, to time.Time, err error) {
	if fromText == "" || toText == "" {
		return time.Time{}, time.Time{}, errors.New("from and to must be supplied together")
	}
	if from, err = time.Parse(dateLayout, fromText); err != nil {
		return time.Time{}, time.Time{}, errors.New("from must be YYYY-MM-DD")
	}
	if to, err = time.Parse(dateLayout, toText); err != nil {
		return time.Time{}, time.Time{}, errors.New("to must be YYYY-MM-DD")
	}
	return from, to, nil
}
