package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leofalp/webreader/providers/observability"
	"github.com/leofalp/webreader/providers/tool/webfetch"
	"github.com/leofalp/webreader/providers/tool/websearch"
)

func newFetchCmd(flags *rootFlags) *cobra.Command {
	var (
		mode     string
		maxChars int
		textOnly bool
	)

	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Fetch a URL and print the web_fetch result",
		Example: `  webreader fetch https://go.dev
  webreader fetch https://go.dev/doc --mode text --max-chars 2000 --text-only`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			out := a.fetcher.Run(cmd.Context(), webfetch.Input{URL: args[0], ExtractMode: mode, MaxChars: maxChars})
			if !out.OK() {
				fmt.Fprintln(cmd.OutOrStdout(), out.Message)
				return errToolFailed
			}
			if textOnly {
				fmt.Fprintln(cmd.OutOrStdout(), out.Result.Text)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "markdown", "Extraction mode: markdown or text")
	cmd.Flags().IntVar(&maxChars, "max-chars", 0, "Maximum characters to return (default from config)")
	cmd.Flags().BoolVar(&textOnly, "text-only", false, "Print only the extracted text instead of the JSON result")
	return cmd
}

func newSearchCmd(flags *rootFlags) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the web with the Brave Search API",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			out, _ := a.searcher.Call(cmd.Context(), websearch.Input{Query: strings.Join(args, " "), Count: count})
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 0, "Number of results, 1-10 (default from config)")
	return cmd
}

func newCallCmd(flags *rootFlags) *cobra.Command {
	var showCost bool

	cmd := &cobra.Command{
		Use:   "call <tool> <json-arguments>",
		Short: "Call a tool with raw JSON arguments, as a model would",
		Example: `  webreader call web_fetch '{"url": "https://go.dev", "maxChars": 500}'
  webreader call web_search '{"query": "golang", "count": 2}' --cost`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx, span := a.observer.StartSpan(cmd.Context(), observability.SpanToolExecution,
				observability.String(observability.AttrToolName, args[0]),
			)
			defer span.End()
			ctx = observability.ContextWithObserver(ctx, a.observer)

			out, err := a.catalog.Call(ctx, args[0], args[1])
			if err != nil {
				span.RecordError(err)
				span.SetStatus(observability.StatusError, err.Error())
				return err
			}
			span.SetStatus(observability.StatusOK, "")

			fmt.Fprintln(cmd.OutOrStdout(), out)
			if showCost {
				fmt.Fprintln(cmd.ErrOrStderr(), a.catalog.Summary().String())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showCost, "cost", false, "Print the estimated cost of the call to stderr")
	return cmd
}

func newToolsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Print the tool descriptions and parameter schemas as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return enc.Encode(a.catalog.Descriptions())
		},
	}
}
