package main

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/superdoc-dev/superdoc-visual-benchmarks/internal/config"
	"github.com/superdoc-dev/superdoc-visual-benchmarks/internal/logger"
	"github.com/superdoc-dev/superdoc-visual-benchmarks/internal/storage"
	"github.com/superdoc-dev/superdoc-visual-benchmarks/internal/transport"
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the scoring HTTP service",
		Long: `Start an HTTP server exposing the scoring engine.

POST /score takes reference and candidate page render URLs and returns
the document score. Server settings come from the environment (HOST,
PORT, REQUEST_TIMEOUT, IMAGE_FETCH_TIMEOUT, SCORE_WORKERS).`,
		Args:          cobra.NoArgs,
		RunE:          runServe,
		SilenceErrors: true,
	}
	cmd.Flags().String("score-config", "", "YAML file overriding scoring thresholds and weights")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}

	scoreConfigPath, _ := cmd.Flags().GetString("score-config")
	scoreCfg, err := config.LoadScoreConfig(scoreConfigPath)
	if err != nil {
		return err
	}

	fetcher := storage.NewHTTPImageFetcher(cfg.ImageFetchTimeout)
	handler := transport.NewHandler(fetcher, scoreCfg, cfg)

	addr := cfg.ServerAddress()
	logger.WithFields(logrus.Fields{
		"address": addr,
		"workers": cfg.Workers,
	}).Info("Starting scoring service")

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.RequestTimeout,
		WriteTimeout: cfg.RequestTimeout,
	}
	return server.ListenAndServe()
}
