package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/expert-profile/internal/llm"
	"github.com/jonathan/expert-profile/internal/pipeline"
	"github.com/jonathan/expert-profile/internal/server"
)

var (
	servePort      int
	serveStaticDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the parse and download endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config and PORT)")
	serveCmd.Flags().StringVar(&serveStaticDir, "static", "", "Directory of front-end files served at /")
	rootCmd.AddCommand(serveCmd)
}

// serverConfig applies serve flags on top of the loaded configuration.
func serverConfig(cmd *cobra.Command) server.Config {
	srvCfg := server.Config{
		Port:           cfg.Port,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		RequestTimeout: cfg.Timeout(),
		StaticDir:      cfg.StaticDir,
	}
	if cmd.Flags().Changed("port") {
		srvCfg.Port = servePort
	}
	if serveStaticDir != "" {
		srvCfg.StaticDir = serveStaticDir
	}
	return srvCfg
}

func runServe(cmd *cobra.Command, _ []string) error {
	llmCfg, err := cfg.LLMConfig()
	if err != nil {
		return fmt.Errorf("failed to configure model client: %w", err)
	}

	srv := server.New(serverConfig(cmd), pipeline.New(llm.NewFactory(llmCfg)), newRenderer(cfg))
	return srv.Start()
}
