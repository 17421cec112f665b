package validation

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/jonathan/expert-profile/internal/llm"
	"github.com/jonathan/expert-profile/internal/llm/mocks"
	"github.com/jonathan/expert-profile/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleProfile() json.RawMessage {
	return json.RawMessage(`{"expert": {"last_name": "Doe", "first_name": "Jane", "year_of_birth": 1985,
"professional_experiences": [{"company": "Acme", "tasks": ["R evising reports"]}]}}`)
}

func TestVerify_ValidVerdict(t *testing.T) {
	client := new(mocks.MockClient)
	client.On("GenerateContent", mock.Anything, mock.Anything).
		Return(`{"valid": true, "issues": []}`, nil).Once()

	result := Verify(context.Background(), client, sampleProfile())

	assert.True(t, result.Valid)
	assert.Empty(t, result.Issues)
	assert.NotNil(t, result.Issues)
}

func TestVerify_IssuesReported(t *testing.T) {
	client := new(mocks.MockClient)
	client.On("GenerateContent", mock.Anything, mock.Anything).
		Return("```json\n{\"valid\": false, \"issues\": [\"Missing nationality\", \"Split word: R evising\"]}\n```", nil).Once()

	result := Verify(context.Background(), client, sampleProfile())

	assert.False(t, result.Valid)
	assert.Equal(t, []string{"Missing nationality", "Split word: R evising"}, result.Issues)
}

func TestVerify_RequestCarriesSerializedRecord(t *testing.T) {
	client := new(mocks.MockClient)
	client.On("GenerateContent", mock.Anything, mock.MatchedBy(func(req llm.Request) bool {
		return req.Tier == llm.TierStandard &&
			req.System == "You are a data validator." &&
			strings.Contains(req.Prompt, `"last_name": "Doe"`) &&
			strings.Contains(req.Prompt, `"R evising reports"`) &&
			strings.Contains(req.Prompt, `"year_of_birth": 1985`) &&
			!strings.Contains(req.Prompt, "{{.Record}}")
	})).Return(`{"valid": true, "issues": []}`, nil).Once()

	Verify(context.Background(), client, sampleProfile())
	client.AssertExpectations(t)
}

func TestVerify_NonJSONFallsBack(t *testing.T) {
	client := new(mocks.MockClient)
	raw := "The data looks mostly fine, but the nationality is missing."
	client.On("GenerateContent", mock.Anything, mock.Anything).Return("  "+raw+"\n", nil).Once()

	result := Verify(context.Background(), client, sampleProfile())

	assert.Equal(t, types.Validation{Valid: false, Issues: []string{raw}}, result)
}

func TestVerify_WrongShapeFallsBack(t *testing.T) {
	client := new(mocks.MockClient)
	raw := `{"valid": "yes", "issues": "none"}`
	client.On("GenerateContent", mock.Anything, mock.Anything).Return(raw, nil).Once()

	result := Verify(context.Background(), client, sampleProfile())

	assert.False(t, result.Valid)
	assert.Equal(t, []string{raw}, result.Issues)
}

func TestVerify_UpstreamFailureDegrades(t *testing.T) {
	client := new(mocks.MockClient)
	client.On("GenerateContent", mock.Anything, mock.Anything).Return("", errors.New("rate limited")).Once()

	result := Verify(context.Background(), client, sampleProfile())

	assert.False(t, result.Valid)
	assert.Equal(t, []string{FailedRequestPrefix + "rate limited"}, result.Issues)
}

func TestParseVerdict_MissingIssues(t *testing.T) {
	result := ParseVerdict(context.Background(), `{"valid": true}`)

	assert.True(t, result.Valid)
	assert.Equal(t, []string{}, result.Issues)
}

func TestParseVerdict_NullFallsBack(t *testing.T) {
	result := ParseVerdict(context.Background(), "null")

	assert.Equal(t, types.Validation{Valid: false, Issues: []string{"null"}}, result)
}

func TestParseVerdict_MissingValidFallsBack(t *testing.T) {
	raw := `{"issues": ["Missing nationality"]}`

	result := ParseVerdict(context.Background(), raw)

	assert.Equal(t, types.Validation{Valid: false, Issues: []string{raw}}, result)
}

func TestVerify_InvalidRecordDegrades(t *testing.T) {
	client := new(mocks.MockClient)

	result := Verify(context.Background(), client, json.RawMessage(`{"expert":`))

	assert.False(t, result.Valid)
	require.Len(t, result.Issues, 1)
	assert.True(t, strings.HasPrefix(result.Issues[0], FailedRequestPrefix))
	client.AssertNotCalled(t, "GenerateContent", mock.Anything, mock.Anything)
}

func TestFallback(t *testing.T) {
	assert.Equal(t, types.Validation{Valid: false, Issues: []string{"x"}}, Fallback("x"))
}
