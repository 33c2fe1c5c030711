package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yourname/slicebread/internal/app/uploadhttp"
	"github.com/yourname/slicebread/internal/config"
	"github.com/yourname/slicebread/internal/logger"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the upload server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	f := serveCmd.Flags()
	f.String("config", "", "path to YAML config (default $CONFIG_PATH or ./config.yaml)")
	f.String("addr", "", "listen address, overrides listen_addr")
	f.String("data-dir", "", "upload directory, overrides data_dir")
}

// loadServeConfig читает конфиг и накладывает поверх флаги командной строки.
func loadServeConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if v, _ := cmd.Flags().GetString("addr"); v != "" {
		cfg.ListenAddr = v
	}
	if v, _ := cmd.Flags().GetString("data-dir"); v != "" {
		cfg.DataDir = v
	}

	return cfg, cfg.Validate()
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadServeConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.LogLevel != "" {
		if err := logger.SetLevelString(cfg.LogLevel); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	stopGC := uploadhttp.StartGC(cfg.DataDir, cfg.GCTTL, cfg.GCInterval)
	defer stopGC()

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           uploadhttp.New(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		logger.Info().
			Str("addr", cfg.ListenAddr).
			Str("data_dir", cfg.DataDir).
			Dur("gc_ttl", cfg.GCTTL).
			Dur("gc_interval", cfg.GCInterval).
			Bool("strict_paths", cfg.StrictPaths).
			Bool("serialize_uploads", cfg.SerializeUploads).
			Msg("upload server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	// Graceful shutdown по SIGTERM/SIGINT или при падении сервера.
	eg.Go(func() error {
		<-egCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("shutdown error")
			return err
		}
		logger.Info().Msg("upload server stopped")
		return nil
	})

	return eg.Wait()
}
