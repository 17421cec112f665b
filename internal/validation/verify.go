// Package validation asks the model for a consistency verdict over an extracted profile.
package validation

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/expert-profile/internal/llm"
	"github.com/jonathan/expert-profile/internal/prompts"
	"github.com/jonathan/expert-profile/internal/types"
	"github.com/rs/zerolog"
)

// FailedRequestPrefix starts the single issue reported when the model call itself fails.
const FailedRequestPrefix = "validation request failed: "

// Verify sends the extracted record, indented, to the model and returns its
// verdict. It never fails: any response that is not a JSON verdict becomes
// {valid: false, issues: [raw response]}.
func Verify(ctx context.Context, client llm.Client, record json.RawMessage) types.Validation {
	log := zerolog.Ctx(ctx)

	var indented bytes.Buffer
	if err := json.Indent(&indented, record, "", "  "); err != nil {
		return Fallback(FailedRequestPrefix + err.Error())
	}

	responseText, err := client.GenerateContent(ctx, llm.Request{
		System: prompts.MustGet(prompts.ValidationFile, prompts.KeySystem),
		Prompt: prompts.Format(prompts.MustGet(prompts.ValidationFile, prompts.KeyTemplate), map[string]string{
			"Record": indented.String(),
		}),
		Tier: llm.TierStandard,
	})
	if err != nil {
		log.Warn().Err(err).Msg("validation request failed")
		return Fallback(FailedRequestPrefix + err.Error())
	}

	return ParseVerdict(ctx, responseText)
}

// ParseVerdict decodes a {valid, issues} object from a model response.
// Anything without a boolean "valid", JSON null included, is not a verdict.
func ParseVerdict(ctx context.Context, responseText string) types.Validation {
	responseText = strings.TrimSpace(responseText)

	var verdict struct {
		Valid  *bool    `json:"valid"`
		Issues []string `json:"issues"`
	}
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(responseText)), &verdict); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("verification JSON parsing failed")
		return Fallback(responseText)
	}
	if verdict.Valid == nil {
		zerolog.Ctx(ctx).Warn().Msg("verification response carries no verdict")
		return Fallback(responseText)
	}

	issues := verdict.Issues
	if issues == nil {
		issues = []string{}
	}
	return types.Validation{Valid: *verdict.Valid, Issues: issues}
}

// Fallback is the verdict used when no structured verdict is available.
func Fallback(issue string) types.Validation {
	return types.Validation{Valid: false, Issues: []string{issue}}
}
