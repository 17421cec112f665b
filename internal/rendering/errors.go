// Package rendering lays out an expert profile as document directives and writes them as DOCX, HTML or PDF.
package rendering

import "fmt"

// RenderError is any failure while producing a document. No partial
// output accompanies it.
type RenderError struct {
	Format  Format // empty when the failure is not format specific
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	prefix := "render error"
	if e.Format != "" {
		prefix = fmt.Sprintf("render error (%s)", e.Format)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// TemplateError is a RenderError raised while executing the HTML template.
type TemplateError struct {
	Cause error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template error: %v", e.Cause)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// FormatError reports an unsupported output format
type FormatError struct {
	Format string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unsupported document format %q", e.Format)
}
