// Package types provides type definitions for structured data used throughout the expert profile system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Profile is the envelope exchanged on the wire: {"expert": {...}}.
type Profile struct {
	Expert Expert `json:"expert"`
}

// Expert is the structured representation of a resume.
// All leaf values are opaque strings copied from the source text.
type Expert struct {
	LastName    string       `json:"last_name"`
	FirstName   string       `json:"first_name"`
	City        string       `json:"city_names"`
	Nationality string       `json:"nationality_en"`
	YearOfBirth string       `json:"year_of_birth"`
	About       string       `json:"about"`
	Educations  []Education  `json:"educations"`
	Courses     []Course     `json:"courses"`
	Languages   string       `json:"languages_list_en"`
	Assessment  string       `json:"ai_assessment"`
	Experiences []Experience `json:"professional_experiences"`
}

// Education is a single degree entry.
type Education struct {
	Years        string `json:"years"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	University   string `json:"university_name"`
}

// Course is a single certification or training entry.
type Course struct {
	Year         string `json:"year"`
	Name         string `json:"name"`
	Organization string `json:"organization"`
}

// Experience is a single position held, in resume order.
type Experience struct {
	From         string    `json:"from"`
	To           string    `json:"to"`
	Company      string    `json:"company"`
	Role         string    `json:"role"`
	Tasks        []string  `json:"tasks"`
	Technologies []string  `json:"technologies"`
	Projects     []Project `json:"projects"`
}

// Project is a project carried out within an Experience.
type Project struct {
	Name             string `json:"name"`
	Role             string `json:"role"`
	Description      string `json:"description"`
	Responsibilities string `json:"responsibilities"`
}

// FullName returns "First Last", skipping empty parts.
func (e *Expert) FullName() string {
	switch {
	case e.FirstName == "":
		return e.LastName
	case e.LastName == "":
		return e.FirstName
	default:
		return e.FirstName + " " + e.LastName
	}
}

// DecodeProfile decodes a JSON object into a Profile.
// Objects carrying the expert fields at the top level, without the
// "expert" envelope, are accepted as a bare Expert. Numbers and booleans
// are taken as their literal text, so loosely typed model output still
// fills the string fields.
func DecodeProfile(data []byte) (*Profile, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, err
	}
	obj, ok := tree.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("profile must be a JSON object")
	}

	normalized, err := json.Marshal(stringifyScalars(obj))
	if err != nil {
		return nil, err
	}

	if _, ok := obj["expert"]; ok || !hasExpertKeys(obj) {
		var profile Profile
		if err := json.Unmarshal(normalized, &profile); err != nil {
			return nil, err
		}
		return &profile, nil
	}

	var expert Expert
	if err := json.Unmarshal(normalized, &expert); err != nil {
		return nil, err
	}
	return &Profile{Expert: expert}, nil
}

// stringifyScalars replaces numbers and booleans with their literal text.
func stringifyScalars(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, x := range t {
			t[k] = stringifyScalars(x)
		}
		return t
	case []any:
		for i, x := range t {
			t[i] = stringifyScalars(x)
		}
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return v
	}
}

var expertKeys = []string{
	"last_name", "first_name", "city_names", "nationality_en", "year_of_birth", "about",
	"educations", "courses", "languages_list_en", "ai_assessment", "professional_experiences",
}

func hasExpertKeys(keys map[string]any) bool {
	for _, k := range expertKeys {
		if _, ok := keys[k]; ok {
			return true
		}
	}
	return false
}
