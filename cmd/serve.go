package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nikogura/resume-studio/pkg/api"
	"github.com/nikogura/resume-studio/pkg/config"
	"github.com/nikogura/resume-studio/pkg/llm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var listenAddr string

//nolint:gochecknoglobals // Cobra boilerplate
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API used by the web front-end.

Endpoints:
  GET  /health
  POST /generate
  POST /parse-resume
  POST /parse-job-link
  POST /generate-pdf

The server stops gracefully on SIGINT or SIGTERM.

Example:
  resume-studio serve --listen :8787`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) (err error) {
	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return err
	}

	if listenAddr != "" {
		cfg.ListenAddr = listenAddr
	}

	logger := newLogger(cfg.LogLevel)

	var completer llm.Completer
	completer, err = llm.NewCompleter(cfg.Completion)
	if err != nil {
		return err
	}

	service := llm.NewService(completer, nil, logger)
	server := api.NewServer(cfg, service, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting resume-studio",
		"provider", cfg.Completion.Provider,
		"listen", cfg.ListenAddr,
	)

	err = server.Run(ctx)
	return err
}
