// Package main provides the entry point for the Expert Profile HTTP API server and its offline commands.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/expert-profile/internal/config"
	"github.com/jonathan/expert-profile/internal/logger"
	"github.com/jonathan/expert-profile/internal/rendering"
)

var (
	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:               "profile_builder",
	Short:             "Expert Profile HTTP API Server",
	Long:              "Expert Profile extracts a structured profile from resume text with a language model and renders it as an Expert Profile document via REST API.",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
}

// loadConfig resolves the configuration and initializes logging before any subcommand runs.
func loadConfig(_ *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Out:    os.Stderr,
	})
	return nil
}

// newRenderer builds the document renderer from the loaded configuration.
func newRenderer(c *config.Config) *rendering.Renderer {
	opts := rendering.DefaultOptions()
	if len(c.ContactLines) > 0 {
		opts.ContactLines = c.ContactLines
	}
	return rendering.NewRenderer(opts, &rendering.ChromedpPrinter{
		ExecPath: c.ChromePath,
		Timeout:  rendering.DefaultPrintTimeout,
	})
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
