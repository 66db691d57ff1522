package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/skill-extractor/internal/knowledge"
	"github.com/jonathan/skill-extractor/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes POST /v1/extract, GET /v1/industries and GET /health.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Server.Port = servePort
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if cfg.Knowledge.RefreshInterval > 0 {
		refresher := knowledge.NewRefresher(a.store, a.source, cfg.Knowledge.RefreshInterval, a.log)
		go refresher.Run(ctx)
		a.log.Info("knowledge refresh enabled",
			zap.String("source", a.source.Name()),
			zap.Duration("interval", cfg.Knowledge.RefreshInterval),
		)
	}

	srv, err := server.New(server.Config{
		Port:      cfg.Server.Port,
		RateLimit: cfg.Server.RateLimit,
	}, a.engine, a.log)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}
