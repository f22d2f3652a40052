package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnwood/study-time-tracker/internal/domain"
)

func TestGetStats_200(t *testing.T) {
	svc := &mockSessionServicer{
		stats: func(_ context.Context) domain.Stats {
			return domain.Stats{
				TotalMinutes:   150,
				SessionCount:   2,
				AverageMinutes: 75,
				BySubject:      map[string]int{"Go": 90, "Math": 60},
			}
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var body struct {
		TotalMinutes   int            `json:"totalMinutes"`
		TotalFormatted string         `json:"totalFormatted"`
		SessionCount   int            `json:"sessionCount"`
		AverageMinutes float64        `json:"averageMinutes"`
		BySubject      map[string]int `json:"bySubject"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 150, body.TotalMinutes)
	assert.Equal(t, "2h 30m", body.TotalFormatted)
	assert.Equal(t, 2, body.SessionCount)
	assert.InDelta(t, 75.0, body.AverageMinutes, 0.001)
	assert.Equal(t, map[string]int{"Go": 90, "Math": 60}, body.BySubject)
}

func TestGetStats_DateRange(t *testing.T) {
	var gotFrom, gotTo time.Time
	svc := &mockSessionServicer{
		statsByDateRange: func(_ context.Context, from, to time.Time) domain.Stats {
			gotFrom, gotTo = from, to
			return domain.Stats{BySubject: map[string]int{}}
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/stats?from=2025-10-01&to=2025-10-31", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), gotFrom)
	assert.Equal(t, time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC), gotTo)
}

func TestGetStats_BadRange_422(t *testing.T) {
	svc := &mockSessionServicer{}

	req := httptest.NewRequest(http.MethodGet, "/api/stats?from=2025-10-01", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGetStats_Empty(t *testing.T) {
	svc := &mockSessionServicer{
		stats: func(_ context.Context) domain.Stats {
			return domain.Stats{BySubject: map[string]int{}}
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		TotalFormatted string `json:"totalFormatted"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "0m", body.TotalFormatted)
}
