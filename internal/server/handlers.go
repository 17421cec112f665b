package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/jonathan/expert-profile/internal/pipeline"
	"github.com/jonathan/expert-profile/internal/rendering"
	"github.com/jonathan/expert-profile/internal/schemas"
	"github.com/jonathan/expert-profile/internal/types"
)

// ProgressMessage is the payload of a progress event
type ProgressMessage struct {
	Step      string `json:"step"`
	Message   string `json:"message"`
	ElapsedMS int64  `json:"elapsed_ms"`
}

// decodeParseRequest reads a ParseRequest body
func decodeParseRequest(r *http.Request) (types.ParseRequest, error) {
	var req types.ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, &ErrBadRequest{Message: "Invalid request body", Cause: err}
	}
	return req, nil
}

// handleParse extracts and validates a profile from resume text
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	req, err := decodeParseRequest(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	resp, err := s.pipeline.Run(ctx, req)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	s.jsonResponse(w, r, http.StatusOK, resp)
}

// handleParseStream runs the same extraction as handleParse, reporting
// progress as Server-Sent Events before the final result event.
func (s *Server) handleParseStream(w http.ResponseWriter, r *http.Request) {
	req, err := decodeParseRequest(r)
	if err == nil {
		err = pipeline.CheckRequest(&req)
	}
	if err != nil {
		s.failure(w, r, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	log := zerolog.Ctx(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	resp, err := s.pipeline.RunWithProgress(ctx, req, func(e pipeline.ProgressEvent) {
		msg := ProgressMessage{Step: e.Step, Message: e.Message, ElapsedMS: e.Elapsed.Milliseconds()}
		if err := sse.WriteEvent(EventProgress, msg); err != nil {
			log.Debug().Err(err).Msg("Progress event dropped")
		}
	})
	if err != nil {
		log.Error().Int("status", HTTPStatus(err)).Msg("Streaming parse failed")
		_ = sse.WriteError(HTTPStatus(err), ErrorMessage(err))
		return
	}

	if err := sse.WriteEvent(EventResult, resp); err != nil {
		log.Warn().Err(err).Msg("Failed to send result event")
	}
}

// handleDownload renders a profile document as an attachment
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	format, err := rendering.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.failure(w, r, err)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.failure(w, r, &ErrBadRequest{Message: "Failed to read request body", Cause: err})
		return
	}
	if err := schemas.ValidateProfileJSON(body); err != nil {
		s.failure(w, r, err)
		return
	}

	profile, err := types.DecodeProfile(body)
	if err != nil {
		s.failure(w, r, &ErrBadRequest{Message: "Invalid request body", Cause: err})
		return
	}

	artifact, err := s.renderer.Render(r.Context(), &profile.Expert, format)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	zerolog.Ctx(r.Context()).Info().
		Str("format", string(format)).
		Int("bytes", len(artifact.Data)).
		Int("experiences", len(profile.Expert.Experiences)).
		Msg("Document generated")

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+artifact.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(artifact.Data); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("Failed to write document")
	}
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
