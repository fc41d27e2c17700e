package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JakeFAU/wikihop/internal/config"
	"github.com/JakeFAU/wikihop/internal/logging"
	"github.com/JakeFAU/wikihop/internal/search"
	"github.com/JakeFAU/wikihop/internal/wiki"
)

const closeTimeout = 5 * time.Second

func runSearch(cmd *cobra.Command, cfgFile, rawStart string) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	site, err := wiki.ValidateStart(rawStart)
	if errors.Is(err, wiki.ErrInvalidURL) || errors.Is(err, wiki.ErrMissingWikiPath) {
		// Bad input is reported, not treated as a failure.
		fmt.Fprintln(stderr, err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("validate start url: %w", err)
	}

	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	appInstance, err := newApp(cfg, logger)
	if err != nil {
		logging.Sync(logger)
		return fmt.Errorf("failed to initialize application services: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		if cerr := appInstance.Close(ctx); cerr != nil {
			logger.Warn("Failed to close application services", zap.Error(cerr))
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine := appInstance.NewEngine(site)
	stopServer := startStatusServer(ctx, cfg.Server.Listen, appInstance, engine, logger)
	defer stopServer()

	result, err := engine.Run(ctx)
	switch {
	case errors.Is(err, search.ErrNoPath):
		fmt.Fprintln(stderr, "No path found")
		return nil
	case err != nil:
		return fmt.Errorf("run search: %w", err)
	}
	return writeReport(stdout, cfg.Search.TargetLabel, result)
}

// startStatusServer serves the status API on addr until the returned func is
// called. An empty addr disables it.
func startStatusServer(ctx context.Context, addr string, a App, engine *search.Engine, logger *zap.Logger) func() {
	if addr == "" {
		return func() {}
	}
	server, err := a.NewStatusServer(engine)
	if err != nil {
		logger.Warn("Status server disabled", zap.Error(err))
		return func() {}
	}
	serverCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := server.ListenAndServe(serverCtx, addr); err != nil {
			logger.Warn("Status server failed", zap.String("addr", addr), zap.Error(err))
		}
	}()
	return func() {
		cancel()
		<-done
	}
}

// writeReport prints the hop count, the path as an indented JSON array, and
// the elapsed whole seconds.
func writeReport(w io.Writer, label string, result search.Result) error {
	path, err := json.MarshalIndent(result.Path, "", "    ")
	if err != nil {
		return fmt.Errorf("encode path: %w", err)
	}
	seconds := int64(result.Elapsed / time.Second)
	if _, err := fmt.Fprintf(w, "Found %s in %d hop\n%s\nduration: %ds\n", label, result.Path.Hops(), path, seconds); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
