// Package pipeline composes extraction and validation into a single request-scoped run.
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/jonathan/expert-profile/internal/llm"
	"github.com/jonathan/expert-profile/internal/parsing"
	"github.com/jonathan/expert-profile/internal/types"
	"github.com/jonathan/expert-profile/internal/validation"
)

// Step names reported through ProgressEvent.
const (
	StepExtract  = "extract"
	StepValidate = "validate"
)

// ProgressEvent represents a progress update during a run
type ProgressEvent struct {
	Step    string        `json:"step"`
	Message string        `json:"message"`
	Elapsed time.Duration `json:"elapsed"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Pipeline runs extraction then validation against a model client built per request.
type Pipeline struct {
	NewClient  llm.Factory
	OnProgress ProgressCallback
}

// New creates a Pipeline that builds clients with factory.
func New(factory llm.Factory) *Pipeline {
	return &Pipeline{NewClient: factory}
}

// emit calls the progress callback if configured
func (cb ProgressCallback) emit(step, message string, started time.Time) {
	if cb != nil {
		cb(ProgressEvent{Step: step, Message: message, Elapsed: time.Since(started)})
	}
}

// Run extracts a profile from req.PDFText and validates it. Missing fields are
// rejected before a client is built. An extraction failure aborts the run; a
// validation failure never does.
func (p *Pipeline) Run(ctx context.Context, req types.ParseRequest) (*types.ParseResponse, error) {
	return p.RunWithProgress(ctx, req, p.OnProgress)
}

// RunWithProgress is Run reporting to onProgress instead of p.OnProgress.
func (p *Pipeline) RunWithProgress(ctx context.Context, req types.ParseRequest, onProgress ProgressCallback) (*types.ParseResponse, error) {
	if err := CheckRequest(&req); err != nil {
		return nil, err
	}

	log := zerolog.Ctx(ctx)

	client, err := p.NewClient(ctx, req.APIKey)
	if err != nil {
		return nil, &parsing.APICallError{Message: "failed to create LLM client", Cause: err}
	}
	defer func() { _ = client.Close() }()

	started := time.Now()
	onProgress.emit(StepExtract, "parsing resume", started)
	log.Info().Int("text_chars", len(req.PDFText)).Str("model", client.GetModel(llm.TierAdvanced)).
		Msg("Step 1: starting resume parsing")

	record, err := parsing.ExtractProfile(ctx, client, req.PDFText)
	if err != nil {
		event := log.Error().Dur("elapsed", time.Since(started))
		var parseErr *parsing.ParseError
		if errors.As(err, &parseErr) {
			event = event.Int("raw_chars", len(parseErr.Raw))
		} else {
			event = event.Err(err)
		}
		event.Msg("Step 1: resume parsing failed")
		return nil, err
	}
	log.Info().Int("record_bytes", len(record)).Dur("elapsed", time.Since(started)).
		Msg("Step 1: resume parsing done")
	onProgress.emit(StepExtract, "resume parsed", started)

	started = time.Now()
	onProgress.emit(StepValidate, "verifying extracted profile", started)
	log.Info().Str("model", client.GetModel(llm.TierStandard)).Msg("Step 2: starting verification")

	verdict := validation.Verify(ctx, client, record)

	log.Info().Bool("valid", verdict.Valid).Int("issues", len(verdict.Issues)).Dur("elapsed", time.Since(started)).
		Msg("Step 2: verification done")
	onProgress.emit(StepValidate, "verification done", started)

	return &types.ParseResponse{
		Data:       record,
		Validation: verdict,
	}, nil
}

// CheckRequest reports the first missing field as an InputError.
func CheckRequest(req *types.ParseRequest) error {
	err := req.Validate()
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		field := "pdf_text"
		if fieldErrs[0].Field() == "APIKey" {
			field = "api_key"
		}
		return &parsing.InputError{Field: field, Message: "Missing required data"}
	}
	return &parsing.InputError{Message: err.Error()}
}
