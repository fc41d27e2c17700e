// Package cmd defines the wikihop command line interface.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JakeFAU/wikihop/internal/api"
	"github.com/JakeFAU/wikihop/internal/app"
	"github.com/JakeFAU/wikihop/internal/config"
	"github.com/JakeFAU/wikihop/internal/logging"
	"github.com/JakeFAU/wikihop/internal/search"
	"github.com/JakeFAU/wikihop/internal/wiki"
)

//nolint:staticcheck // printed verbatim to the operator
var errNoStart = errors.New("No starting point")

// App is the slice of the service container the command needs. Tests swap
// the factory below to inject fakes.
type App interface {
	NewEngine(site wiki.SiteURL) *search.Engine
	NewStatusServer(engine *search.Engine) (*api.Server, error)
	Close(ctx context.Context) error
}

var newApp = func(cfg config.Config, logger *zap.Logger) (App, error) {
	return app.New(cfg, logger)
}

// newRootCmd creates the wikihop command. The search itself is the root
// command; there are no subcommands.
func newRootCmd() *cobra.Command {
	var cfgFile string
	cmd := &cobra.Command{
		Use:   "wikihop [flags] <start-url>",
		Short: "Find a chain of Wikipedia links from an article to a target article.",
		Long: `wikihop crawls Wikipedia breadth-first from the given article URL,
following internal /wiki/ links concurrently until it reaches the target
article, then prints the path it found and how long the search took.`,
		Example:       "  wikihop https://en.wikipedia.org/wiki/Philosophy",
		Args:          requireStart,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, cfgFile, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "config file (yaml, json, or toml)")
	flags.String("target", wiki.DefaultTarget, "article identifier to search for")
	flags.Int64("max-in-flight", 0, "maximum concurrent fetches (0 = unbounded)")
	flags.String("listen", "", "status server address, e.g. :9090 (empty disables)")
	flags.Bool("development", false, "human-readable development logging")

	return cmd
}

func requireStart(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		return errNoStart
	}
	return nil
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		logger, lerr := logging.New(false)
		if lerr != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		logger.Fatal("Command execution failed", zap.Error(err))
	}
}
