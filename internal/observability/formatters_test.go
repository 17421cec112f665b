package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/expert-profile/internal/pipeline"
	"github.com/jonathan/expert-profile/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	expert := &types.Expert{
		LastName:    "Doe",
		FirstName:   "Jane",
		City:        "Berlin",
		Nationality: "German",
		Educations: []types.Education{
			{Degree: "M.Sc.", University: "TU Berlin"},
		},
		Courses: []types.Course{{Name: "CKA"}},
		Experiences: []types.Experience{
			{From: "2019", To: "Present", Company: "Acme", Role: "Engineer"},
		},
	}

	p.PrintProfile(expert)
	output := buf.String()

	assert.Contains(t, output, "EXTRACTED PROFILE")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "Berlin")
	assert.Contains(t, output, "M.Sc., TU Berlin")
	assert.Contains(t, output, "Certifications: 1")
	assert.Contains(t, output, "2019 - Present  Acme (Engineer)")
}

func TestPrintProfile_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintProfile(nil)

	assert.Empty(t, buf.String())
}

func TestPrintProfile_ManyExperiences(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	expert := &types.Expert{}
	for i := 0; i < 8; i++ {
		expert.Experiences = append(expert.Experiences, types.Experience{Company: "Co"})
	}

	p.PrintProfile(expert)

	assert.Contains(t, buf.String(), "... and 3 more")
}

func TestPrintValidation_Valid(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintValidation(types.Validation{Valid: true, Issues: []string{}})

	assert.Contains(t, buf.String(), "PROFILE VERIFIED")
}

func TestPrintValidation_Issues(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintValidation(types.Validation{
		Valid:  false,
		Issues: []string{"Birth year missing", "Overlapping dates at Acme"},
	})
	output := buf.String()

	assert.Contains(t, output, "VERIFICATION")
	assert.Contains(t, output, "Found 2 issues")
	assert.Contains(t, output, "Birth year missing")
	assert.Contains(t, output, "Overlapping dates at Acme")
}

func TestPrintProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintProgress(pipeline.ProgressEvent{
		Step:    pipeline.StepExtract,
		Message: "parsing resume",
		Elapsed: 1500 * time.Millisecond,
	})

	assert.Contains(t, buf.String(), "parsing resume (1500ms)")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("ü", 100))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
