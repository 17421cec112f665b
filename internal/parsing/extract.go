// Package parsing extracts a structured expert profile from raw resume text using an LLM.
package parsing

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/expert-profile/internal/llm"
	"github.com/jonathan/expert-profile/internal/prompts"
	"github.com/rs/zerolog"
)

// ExtractProfile sends resumeText with the fixed extraction prompts to the model
// and returns the JSON record it answers with. There is exactly one model call.
func ExtractProfile(ctx context.Context, client llm.Client, resumeText string) (json.RawMessage, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, &InputError{Field: "pdf_text", Message: "resume text is required"}
	}

	log := zerolog.Ctx(ctx)

	responseText, err := client.GenerateContent(ctx, buildExtractionRequest(resumeText))
	if err != nil {
		return nil, &APICallError{
			Message: "failed to generate content from LLM",
			Cause:   err,
		}
	}
	log.Debug().Int("response_chars", len(responseText)).Msg("extraction response received")

	return ParseProfileResponse(ctx, responseText)
}

// buildExtractionRequest constructs the request for structured extraction
func buildExtractionRequest(resumeText string) llm.Request {
	return llm.Request{
		System: prompts.MustGet(prompts.ExtractionFile, prompts.KeySystem),
		Prompt: prompts.MustGet(prompts.ExtractionFile, prompts.KeyTemplate) + resumeText,
		Tier:   llm.TierAdvanced,
	}
}

// ParseProfileResponse parses a model response in two stages: the whole
// (fence-stripped) text first, then the span between the first '{' and the
// last '}'. The record is returned byte for byte as the model wrote it; its
// shape is not checked. When both stages fail a *ParseError carrying the raw
// text is returned.
func ParseProfileResponse(ctx context.Context, responseText string) (json.RawMessage, error) {
	responseText = strings.TrimSpace(responseText)

	record, err := decodeRecord(llm.CleanJSONBlock(responseText))
	if err == nil {
		return record, nil
	}

	log := zerolog.Ctx(ctx)
	log.Warn().Err(err).Msg("JSON parsing failed, trying to clean response")

	braced, ok := llm.ExtractBraced(responseText)
	if !ok {
		return nil, &ParseError{Raw: responseText, Cause: err}
	}

	record, err = decodeRecord(braced)
	if err != nil {
		log.Warn().Err(err).Msg("JSON parsing failed after brace extraction")
		return nil, &ParseError{Raw: responseText, Cause: err}
	}

	return record, nil
}

// decodeRecord checks that text holds exactly one JSON value and returns it untouched.
func decodeRecord(text string) (json.RawMessage, error) {
	var record json.RawMessage
	if err := json.Unmarshal([]byte(text), &record); err != nil {
		return nil, err
	}
	return record, nil
}
