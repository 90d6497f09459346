package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nikogura/career-kit/pkg/config"
	"github.com/nikogura/career-kit/pkg/history"
	"github.com/nikogura/career-kit/pkg/questions"
	"github.com/nikogura/career-kit/pkg/server"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var serveAddr string

//nolint:gochecknoglobals // Cobra boilerplate
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	Long: `Serve resume rendering, ATS scoring, cover letters, the question bank,
mock interviews and application history over a JSON HTTP API.

The server stops gracefully on SIGINT or SIGTERM.

Example:
  career-kit serve
  career-kit serve --addr 127.0.0.1:9000 --seed 42`,
	RunE: runServe,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) (err error) {
	logLevel := slog.LevelInfo
	if getVerbose() {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	var cfg config.Config
	var bank *questions.Bank
	cfg, bank, err = setupBank()
	if err != nil {
		return err
	}

	var store *history.SQLiteStore
	store, err = openHistory(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Deps{
		Bank:    bank,
		History: store,
		Rand:    newRand(cfg),
		Logger:  logger,
	})

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	err = srv.Run(ctx, addr)
	return err
}
