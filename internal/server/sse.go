package server

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// SSE event names on the streaming parse endpoint.
const (
	EventProgress = "progress"
	EventResult   = "result"
	EventError    = "error"
)

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w  http.ResponseWriter
	rc *http.ResponseController
}

// NewSSEWriter sets the event-stream headers and sends them. Nothing is
// written when w cannot flush, so the caller can still answer with an
// ordinary error response.
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	if !canFlush(w) {
		return nil, fmt.Errorf("streaming not supported: %w", http.ErrNotSupported)
	}
	rc := http.NewResponseController(w)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if err := rc.Flush(); err != nil {
		return nil, fmt.Errorf("streaming not supported: %w", err)
	}
	return &SSEWriter{w: w, rc: rc}, nil
}

// canFlush follows Unwrap the way http.ResponseController does.
func canFlush(w http.ResponseWriter) bool {
	for {
		switch t := w.(type) {
		case http.Flusher:
			return true
		case interface{ Unwrap() http.ResponseWriter }:
			w = t.Unwrap()
		default:
			return false
		}
	}
}

// WriteEvent sends an SSE event
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, jsonData); err != nil {
		return err
	}
	return s.rc.Flush()
}

// WriteError sends an error event carrying the status a plain request would get
func (s *SSEWriter) WriteError(status int, message string) error {
	return s.WriteEvent(EventError, map[string]any{"error": message, "status": status})
}
