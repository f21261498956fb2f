package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/grocerlens/backend/config"
	httpDelivery "github.com/grocerlens/backend/internal/delivery/http"
	"github.com/grocerlens/backend/internal/infrastructure/ratelimit"
	"github.com/grocerlens/backend/internal/logging"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

var (
	cfg    *config.Config
	logger *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "grocerlens",
	Short: "Cross-storefront grocery price search",
	Long:  "Turns a free-text shopping prompt into a ranked product list aggregated from several grocery storefronts.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional
		_ = godotenv.Load()

		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
		logger = logging.New(cfg.Log.Level, cfg.Log.Format)
		return nil
	},
	SilenceUsage: true,
	RunE:         runServer,
}

var searchCmd = &cobra.Command{
	Use:   "search <prompt>",
	Short: "Run one search and print the JSON response",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	logger.WithFields(logrus.Fields{
		"version":     version,
		"environment": cfg.Server.Environment,
		"addr":        cfg.Server.Addr(),
	}).Info("Starting GrocerLens backend")

	searchService, err := buildSearchService(cfg, logger)
	if err != nil {
		return err
	}

	limiter := ratelimit.NewRegistry(cfg.RateLimit.PerIP, 10*time.Minute)
	defer limiter.Close()

	handler := httpDelivery.NewHandler(searchService, logger)
	router := httpDelivery.SetupRouter(cfg, handler, limiter, logger)

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", srv.Addr).Info("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runSearch(cmd *cobra.Command, args []string) error {
	prompt, err := httpDelivery.ValidatePrompt(strings.Join(args, " "))
	if err != nil {
		return err
	}

	searchService, err := buildSearchService(cfg, logger)
	if err != nil {
		return err
	}

	resp := searchService.Search(cmd.Context(), prompt)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(resp)
}
