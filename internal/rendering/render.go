package rendering

import (
	"context"
	"strings"

	"github.com/jonathan/expert-profile/internal/types"
)

// Format is an output document format.
type Format string

// Supported formats.
const (
	FormatDOCX Format = "docx"
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
)

// DefaultFormat is used when no format is requested.
const DefaultFormat = FormatDOCX

// FilenameBase is the download name without extension.
const FilenameBase = "expert_profile"

var contentTypes = map[Format]string{
	FormatDOCX: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	FormatHTML: "text/html; charset=utf-8",
	FormatPDF:  "application/pdf",
}

// ParseFormat maps a case-insensitive format name to a Format. The empty
// string selects DefaultFormat.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultFormat, nil
	}
	f := Format(s)
	if _, ok := contentTypes[f]; !ok {
		return "", &FormatError{Format: s}
	}
	return f, nil
}

// ContentType returns the MIME type served for f.
func (f Format) ContentType() string {
	return contentTypes[f]
}

// Filename returns the attachment name for f.
func (f Format) Filename() string {
	return FilenameBase + "." + string(f)
}

// Artifact is a rendered document ready to be served.
type Artifact struct {
	Data        []byte
	ContentType string
	Filename    string
}

// Renderer lays out experts and writes them in the requested format.
type Renderer struct {
	Options Options
	Printer PDFPrinter
}

// NewRenderer creates a renderer with the given options. A nil printer
// disables PDF output.
func NewRenderer(opts Options, printer PDFPrinter) *Renderer {
	return &Renderer{Options: opts, Printer: printer}
}

// Render produces the expert profile document in format f.
func (r *Renderer) Render(ctx context.Context, expert *types.Expert, f Format) (*Artifact, error) {
	doc := Layout(expert, r.Options)

	var (
		data []byte
		err  error
	)
	switch f {
	case FormatDOCX:
		data, err = WriteDOCX(doc)
	case FormatHTML:
		data, err = WriteHTML(doc, pageTitle(expert))
	case FormatPDF:
		data, err = r.renderPDF(ctx, doc, expert)
	default:
		return nil, &FormatError{Format: string(f)}
	}
	if err != nil {
		return nil, err
	}

	return &Artifact{Data: data, ContentType: f.ContentType(), Filename: f.Filename()}, nil
}

func (r *Renderer) renderPDF(ctx context.Context, doc *Document, expert *types.Expert) ([]byte, error) {
	if r.Printer == nil {
		return nil, &RenderError{Format: FormatPDF, Message: "pdf output is not configured"}
	}
	page, err := WriteHTML(doc, pageTitle(expert))
	if err != nil {
		return nil, err
	}
	return r.Printer.PrintPDF(ctx, string(page))
}

func pageTitle(expert *types.Expert) string {
	if expert != nil {
		if name := expert.FullName(); name != "" {
			return LabelTitle + " - " + name
		}
	}
	return LabelTitle
}
