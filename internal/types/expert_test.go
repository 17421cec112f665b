//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeProfile_Envelope(t *testing.T) {
	data := `{"expert": {"last_name": "Doe", "first_name": "Jane", "educations": [{"years": "2001-2005", "degree": "BSc"}]}}`

	profile, err := DecodeProfile([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, "Doe", profile.Expert.LastName)
	assert.Equal(t, "Jane", profile.Expert.FirstName)
	require.Len(t, profile.Expert.Educations, 1)
	assert.Equal(t, "BSc", profile.Expert.Educations[0].Degree)
}

func TestDecodeProfile_BareExpert(t *testing.T) {
	data := `{"last_name": "Doe", "professional_experiences": [{"company": "Acme", "tasks": ["Build"]}]}`

	profile, err := DecodeProfile([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, "Doe", profile.Expert.LastName)
	require.Len(t, profile.Expert.Experiences, 1)
	assert.Equal(t, []string{"Build"}, profile.Expert.Experiences[0].Tasks)
}

func TestDecodeProfile_UnrelatedObject(t *testing.T) {
	profile, err := DecodeProfile([]byte(`{"foo": "bar"}`))
	require.NoError(t, err)
	assert.Equal(t, Expert{}, profile.Expert)
}

func TestDecodeProfile_Invalid(t *testing.T) {
	_, err := DecodeProfile([]byte(`not json`))
	assert.Error(t, err)

	_, err = DecodeProfile([]byte(`{"expert": {"educations": "wrong"}}`))
	assert.Error(t, err)
}

func TestProfile_RoundTripKeys(t *testing.T) {
	profile := Profile{Expert: Expert{
		LastName:    "Doe",
		City:        "Berlin",
		Nationality: "German",
		Languages:   "English, German",
		Assessment:  "Strong",
		Experiences: []Experience{{From: "2020", To: "today"}},
	}}

	out, err := json.Marshal(profile)
	require.NoError(t, err)

	var raw map[string]map[string]any
	require.NoError(t, json.Unmarshal(out, &raw))

	expert := raw["expert"]
	assert.Equal(t, "Berlin", expert["city_names"])
	assert.Equal(t, "German", expert["nationality_en"])
	assert.Equal(t, "English, German", expert["languages_list_en"])
	assert.Equal(t, "Strong", expert["ai_assessment"])
	assert.Contains(t, expert, "professional_experiences")
}

func TestDecodeProfile_ScalarLeaves(t *testing.T) {
	data := `{"expert": {"last_name": "Doe", "year_of_birth": 1985, "courses": [{"year": 2019, "name": "CKA"}], "about": true}}`

	profile, err := DecodeProfile([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, "1985", profile.Expert.YearOfBirth)
	assert.Equal(t, "2019", profile.Expert.Courses[0].Year)
	assert.Equal(t, "true", profile.Expert.About)
}

func TestDecodeProfile_NotAnObject(t *testing.T) {
	_, err := DecodeProfile([]byte(`["Doe"]`))
	assert.Error(t, err)
}

func TestExpert_FullName(t *testing.T) {
	assert.Equal(t, "Jane Doe", (&Expert{FirstName: "Jane", LastName: "Doe"}).FullName())
	assert.Equal(t, "Doe", (&Expert{LastName: "Doe"}).FullName())
	assert.Equal(t, "Jane", (&Expert{FirstName: "Jane"}).FullName())
	assert.Equal(t, "", (&Expert{}).FullName())
}

func TestParseRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request ParseRequest
		wantErr bool
	}{
		{name: "valid", request: ParseRequest{PDFText: "text", APIKey: "key"}},
		{name: "missing text", request: ParseRequest{APIKey: "key"}, wantErr: true},
		{name: "missing key", request: ParseRequest{PDFText: "text"}, wantErr: true},
		{name: "empty", request: ParseRequest{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
