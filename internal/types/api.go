package types

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// ParseRequest is the body of the extraction endpoint.
type ParseRequest struct {
	PDFText string `json:"pdf_text" validate:"required"`
	APIKey  string `json:"api_key" validate:"required"`
}

// Validate checks that both fields are present.
func (r *ParseRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validation is the consistency verdict produced by the validator model.
type Validation struct {
	Valid  bool     `json:"valid"`
	Issues []string `json:"issues"`
}

// ParseResponse carries the extracted record, exactly as the model produced
// it, together with its verdict.
type ParseResponse struct {
	Data       json.RawMessage `json:"data"`
	Validation Validation      `json:"validation"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}
