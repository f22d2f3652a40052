package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/dnwood/study-time-tracker/internal/codec"
	"github.com/dnwood/study-time-tracker/internal/domain"
)

// Session payloads go out through the hand-written codec, the same wire
// format as the data file, so the API and the store never disagree about
// the record shape. Everything else (errors, stats) is plain encoding/json.

// writeRecord writes one session in codec form.
func writeRecord(w http.ResponseWriter, status int, s domain.Session) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := io.WriteString(w, codec.EncodeSession(s)); err != nil {
		slog.Debug("write response", "error", err)
	}
}

// writeCollection writes a session list in codec form.
func writeCollection(w http.ResponseWriter, status int, sessions []domain.Session) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := io.WriteString(w, codec.EncodeSessions(sessions)); err != nil {
		slog.Debug("write response", "error", err)
	}
}

// writeJSON marshals v with encoding/json.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("write response", "error", err)
	}
}
