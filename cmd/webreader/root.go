package main

import (
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leofalp/webreader/core/config"
	"github.com/leofalp/webreader/providers/observability/slogobs"
	"github.com/leofalp/webreader/providers/tool"
	"github.com/leofalp/webreader/providers/tool/webfetch"
	"github.com/leofalp/webreader/providers/tool/websearch"
)

// errToolFailed makes the process exit non-zero after a failure message was
// already printed.
var errToolFailed = errors.New("tool failed")

type rootFlags struct {
	configPath string
	logLevel   string
	logFormat  string
	envFiles   []string
}

// app holds everything a subcommand needs, built once per invocation.
type app struct {
	cfg      config.Config
	observer *slogobs.Observer
	fetcher  *webfetch.Fetcher
	searcher *websearch.Searcher
	catalog  *tool.Catalog
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "webreader",
		Short: "webreader - fetch web pages and search the web as an LLM tool would",
		Long: `webreader runs the web_fetch and web_search tools from the command line.

web_fetch retrieves one URL and returns compact markdown or text as JSON,
falling back to a rendering proxy for script-heavy pages. Failures are
printed as plain text with suggestions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to a YAML config file")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	root.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Log format: compact or json")
	root.PersistentFlags().StringSliceVar(&flags.envFiles, "env-file", nil, "Env files to load (default .env)")

	root.AddCommand(
		newFetchCmd(flags),
		newSearchCmd(flags),
		newCallCmd(flags),
		newToolsCmd(flags),
	)
	return root
}

// newApp loads the configuration and wires the tools. Flags win over the
// config file and the environment.
func newApp(flags *rootFlags, logOutput io.Writer) (*app, error) {
	cfg, err := config.Load(flags.configPath, flags.envFiles...)
	if err != nil {
		return nil, err
	}

	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.Log.Format = flags.logFormat
	}

	level, ok := slogobs.ParseLevel(cfg.Log.Level)
	if !ok && cfg.Log.Level != "" {
		return nil, errors.New("unknown log level " + cfg.Log.Level)
	}
	observer := slogobs.New(
		slogobs.WithFormat(slogobs.ParseFormat(cfg.Log.Format)),
		slogobs.WithLevel(level),
		slogobs.WithOutput(logOutput),
	)
	slog.SetDefault(observer.Logger())

	fetcher := webfetch.New(cfg.Fetch, webfetch.WithObserver(observer))
	searcher := websearch.New(cfg.Search, websearch.WithObserver(observer))

	return &app{
		cfg:      cfg,
		observer: observer,
		fetcher:  fetcher,
		searcher: searcher,
		catalog: tool.NewCatalogWithTools(
			webfetch.NewWebFetchTool(fetcher),
			websearch.NewWebSearchTool(searcher),
		),
	}, nil
}
