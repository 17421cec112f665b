package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/expert-profile/internal/llm"
	"github.com/jonathan/expert-profile/internal/observability"
	"github.com/jonathan/expert-profile/internal/pipeline"
	"github.com/jonathan/expert-profile/internal/types"
)

// APIKeyEnv names the environment variable holding the model credential for CLI runs.
const APIKeyEnv = "MODEL_API_KEY"

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Extract a structured expert profile from resume text",
	Long:  "Extract a structured expert profile from a plain-text resume and verify it, printing the parse response JSON.",
	RunE:  runParse,
}

var (
	parseTextFile   string
	parseOutputFile string
	parseAPIKey     string
	parseVerbose    bool
)

func init() {
	parseCmd.Flags().StringVarP(&parseTextFile, "text", "t", "", "Path to resume text file (required)")
	parseCmd.Flags().StringVarP(&parseOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	parseCmd.Flags().StringVar(&parseAPIKey, "api-key", "", "Model API key (overrides "+APIKeyEnv+" env var)")
	parseCmd.Flags().BoolVarP(&parseVerbose, "verbose", "v", false, "Print a summary of the profile and verdict")

	_ = parseCmd.MarkFlagRequired("text")
	rootCmd.AddCommand(parseCmd)
}

// resolveAPIKey prefers the flag over the environment.
func resolveAPIKey(flag string) string {
	if key := strings.TrimSpace(flag); key != "" {
		return key
	}
	return strings.TrimSpace(os.Getenv(APIKeyEnv))
}

func runParse(cmd *cobra.Command, _ []string) error {
	apiKey := resolveAPIKey(parseAPIKey)
	if apiKey == "" {
		return fmt.Errorf("API key is required (set %s environment variable or use --api-key flag)", APIKeyEnv)
	}

	text, err := os.ReadFile(parseTextFile)
	if err != nil {
		return fmt.Errorf("failed to read resume text: %w", err)
	}

	llmCfg, err := cfg.LLMConfig()
	if err != nil {
		return fmt.Errorf("failed to configure model client: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout())
	defer cancel()

	verbose := parseVerbose || cfg.Verbose
	printer := observability.NewPrinter(cmd.ErrOrStderr())

	var onProgress pipeline.ProgressCallback
	if verbose {
		onProgress = printer.PrintProgress
	}

	resp, err := pipeline.New(llm.NewFactory(llmCfg)).RunWithProgress(ctx, types.ParseRequest{
		PDFText: string(text),
		APIKey:  apiKey,
	}, onProgress)
	if err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}

	if verbose {
		if profile, err := types.DecodeProfile(resp.Data); err == nil {
			printer.PrintProfile(&profile.Expert)
		} else {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: record does not fit the expert layout: %v\n", err)
		}
		printer.PrintValidation(resp.Validation)
	}

	return writeParseResponse(cmd, resp, parseOutputFile)
}

// writeParseResponse writes resp as indented JSON to path, or to stdout when path is empty.
func writeParseResponse(cmd *cobra.Command, resp *types.ParseResponse, path string) error {
	jsonBytes, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if path == "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
		return nil
	}

	if err := os.WriteFile(path, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Output: %s\n", path)
	return nil
}
