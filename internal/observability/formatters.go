// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/expert-profile/internal/pipeline"
	"github.com/jonathan/expert-profile/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, ending in "..." when cut.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProgress outputs a single pipeline progress line.
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) PrintProgress(event pipeline.ProgressEvent) {
	fmt.Fprintf(p.out, "[%-8s] %s (%dms)\n", event.Step, event.Message, event.Elapsed.Milliseconds())
}

// PrintProfile outputs a human-readable summary of an extracted expert.
func (p *Printer) PrintProfile(expert *types.Expert) {
	if expert == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:        %s\n", expert.FullName()))
	sb.WriteString(fmt.Sprintf("City:        %s\n", expert.City))
	sb.WriteString(fmt.Sprintf("Nationality: %s\n", expert.Nationality))
	sb.WriteString(fmt.Sprintf("Born:        %s\n", expert.YearOfBirth))
	sb.WriteString(fmt.Sprintf("Languages:   %s\n", expert.Languages))
	sb.WriteString("\n")

	if len(expert.Educations) > 0 {
		sb.WriteString("Education:\n")
		for _, edu := range expert.Educations {
			sb.WriteString(fmt.Sprintf("  • %s", edu.Degree))
			if edu.University != "" {
				sb.WriteString(fmt.Sprintf(", %s", edu.University))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(expert.Courses) > 0 {
		sb.WriteString(fmt.Sprintf("Certifications: %d\n\n", len(expert.Courses)))
	}

	if len(expert.Experiences) > 0 {
		sb.WriteString("Experience:\n")
		count := min(len(expert.Experiences), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := expert.Experiences[i]
			sb.WriteString(fmt.Sprintf("  • %s - %s  %s", exp.From, exp.To, exp.Company))
			if exp.Role != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", exp.Role))
			}
			sb.WriteString("\n")
		}
		if len(expert.Experiences) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(expert.Experiences)-maxItemsToShow))
		}
	}

	p.printBox("EXTRACTED PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintValidation outputs the consistency verdict.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintValidation(verdict types.Validation) {
	if verdict.Valid && len(verdict.Issues) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ PROFILE VERIFIED")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	if verdict.Valid {
		sb.WriteString("Valid with notes:\n\n")
	} else {
		sb.WriteString(fmt.Sprintf("Found %d issues:\n\n", len(verdict.Issues)))
	}

	for i, issue := range verdict.Issues {
		sb.WriteString(fmt.Sprintf("⚠ %s", truncate(strings.ReplaceAll(issue, "\n", " "), 50)))
		if i < len(verdict.Issues)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("VERIFICATION", sb.String())
}
