package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"

	"github.com/jdlsoft/it3t-filing/internal/api"
	"github.com/jdlsoft/it3t-filing/internal/config"
	"github.com/jdlsoft/it3t-filing/internal/store"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose file generation and validation over HTTP",
	Long: `The serve command starts the filing API. Capture frontends post trust
aggregates to /api/generate, or reference captured trusts by ID via
/api/trusts/:id/file when a database is configured.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "Address to listen on (defaults to :SERVER_PORT)")
}

func runServe(ctx context.Context) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(envDir)
	if err != nil {
		return err
	}

	h := &api.Handler{Cfg: cfg}
	if cfg.DatabaseURL != "" {
		pool, err := store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()
		h.Repo = store.NewRepository(pool)
		slog.Info("database connected")
	} else {
		slog.Warn("no DATABASE_URL set, trust lookup routes disabled")
	}

	addr := listenAddr
	if addr == "" {
		addr = ":" + cfg.ServerPort
	}

	app := fiber.New(fiber.Config{
		AppName:               "it3t-filing",
		DisableStartupMessage: true,
	})
	h.Register(app)

	slog.Info("filing API listening", "addr", addr, "testDataIndicator", cfg.TestDataIndicator)
	return app.Listen(addr)
}
