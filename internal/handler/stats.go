package handler

import (
	"net/http"

	"github.com/dnwood/study-time-tracker/internal/domain"
)

// statsResponse is the body for GET /api/stats.
type statsResponse struct {
	TotalMinutes   int            `json:"totalMinutes"`
	TotalFormatted string         `json:"totalFormatted"`
	SessionCount   int            `json:"sessionCount"`
	AverageMinutes float64        `json:"averageMinutes"`
	BySubject      map[string]int `json:"bySubject"`
}

// GetStats handles GET /api/stats.
// Without parameters it aggregates the whole collection; with
// ?from=YYYY-MM-DD&to=YYYY-MM-DD it aggregates an inclusive date range.
func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fromText, toText := q.Get("from"), q.Get("to")

	var stats domain.Stats
	if fromText != "" || toText != "" {
		from, to, err := parseDateRange(fromText, toText)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
			return
		}
		stats = s.sessions.StatsByDateRange(r.Context(), from, to)
	} else {
		stats = s.sessions.Stats(r.Context())
	}

	writeJSON(w, http.StatusOK, statsResponse{
		TotalMinutes:   stats.TotalMinutes,
		TotalFormatted: domain.FormatDuration(stats.TotalMinutes),
		SessionCount:   stats.SessionCount,
		AverageMinutes: stats.AverageMinutes,
		BySubject:      stats.BySubject,
	})
}
