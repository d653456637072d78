package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/Ragbaje/FrameMe/internal/config"
	"github.com/Ragbaje/FrameMe/internal/server"
	"github.com/Ragbaje/FrameMe/internal/session"
)

var (
	serveConfigPath string
	servePort       int
	serveAPIKey     string
	serveChromePath string
	serveTTL        string
	serveTemplate   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the CV wizard REST API server",
	Long: `Start an HTTP server that exposes the wizard session endpoints: form
navigation, record editing, AI rewriting and PDF export.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	serveCmd.Flags().StringVar(&serveChromePath, "chrome-path", "", "Path to the Chrome binary for PDF export (optional, defaults to CHROME_PATH env var)")
	serveCmd.Flags().StringVar(&serveTTL, "session-ttl", "", "Idle session lifetime, e.g. 4h")
	serveCmd.Flags().StringVarP(&serveTemplate, "template", "t", "", "Default layout variant (modern or creative)")
	rootCmd.AddCommand(serveCmd)
}

// resolveServeConfig layers the effective configuration: explicit flags
// win, then the optional config file, then environment and built-in
// defaults fill whatever is still empty.
func resolveServeConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = serveAPIKey
	}
	if cmd.Flags().Changed("chrome-path") {
		cfg.ChromePath = serveChromePath
	}
	if cmd.Flags().Changed("session-ttl") {
		cfg.SessionTTL = serveTTL
	}
	if cmd.Flags().Changed("template") {
		cfg.Template = serveTemplate
	}

	if serveConfigPath != "" {
		loaded, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = cfg.MergeWithDefaults(*loaded)
	}

	cfg = cfg.MergeWithDefaults(config.Config{
		Port:       servePort,
		APIKey:     os.Getenv("GEMINI_API_KEY"),
		ChromePath: os.Getenv("CHROME_PATH"),
	})

	return cfg, cfg.Validate()
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveServeConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.APIKey == "" {
		log.Println("No Gemini API key configured; rewriting endpoints will answer 503")
	}

	srv, err := server.New(server.Config{
		Port:            cfg.Port,
		APIKey:          cfg.APIKey,
		ChromePath:      cfg.ChromePath,
		SessionTTL:      cfg.SessionTTLDuration(session.DefaultTTL),
		DefaultTemplate: cfg.Template,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
