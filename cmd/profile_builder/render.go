package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/expert-profile/internal/rendering"
	"github.com/jonathan/expert-profile/internal/schemas"
	"github.com/jonathan/expert-profile/internal/types"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render an expert profile JSON file as a document",
	Long:  "Render a profile JSON file (a {\"expert\": ...} record or a parse response) as an Expert Profile document.",
	RunE:  runRender,
}

var (
	renderInputFile  string
	renderFormat     string
	renderOutputFile string
)

func init() {
	renderCmd.Flags().StringVarP(&renderInputFile, "input", "i", "", "Path to profile JSON file (required)")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", string(rendering.DefaultFormat), "Output format: docx, html or pdf")
	renderCmd.Flags().StringVarP(&renderOutputFile, "out", "o", "", "Path to output file (default: expert_profile.<format>)")

	_ = renderCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(renderCmd)
}

// profileRecord returns the profile record inside data, unwrapping the
// "data" member of a parse response when present.
func profileRecord(data []byte) []byte {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && len(envelope.Data) > 0 {
		return envelope.Data
	}
	return data
}

// loadProfile reads, checks and decodes a profile file.
func loadProfile(path string) (*types.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	record := profileRecord(data)
	if err := schemas.ValidateProfileJSON(record); err != nil {
		return nil, err
	}

	profile, err := types.DecodeProfile(record)
	if err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return profile, nil
}

func runRender(cmd *cobra.Command, _ []string) error {
	format, err := rendering.ParseFormat(renderFormat)
	if err != nil {
		return err
	}

	profile, err := loadProfile(renderInputFile)
	if err != nil {
		return err
	}

	artifact, err := newRenderer(cfg).Render(cmd.Context(), &profile.Expert, format)
	if err != nil {
		return fmt.Errorf("failed to render profile: %w", err)
	}

	out := renderOutputFile
	if out == "" {
		out = artifact.Filename
	}
	if err := os.WriteFile(out, artifact.Data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully rendered %s profile\n", format)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", out)
	return nil
}
