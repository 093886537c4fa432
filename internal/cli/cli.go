package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pfrederiksen/city-events/internal/calendar"
	"github.com/pfrederiksen/city-events/internal/logger"
	"github.com/pfrederiksen/city-events/internal/report"
	"github.com/pfrederiksen/city-events/internal/server"
	"github.com/pfrederiksen/city-events/internal/storage"
	"github.com/spf13/cobra"
)

// ExitError is the process status when a command fails
const ExitError = 1

const defaultOutDir = "~/Downloads/city-events"

// options holds flag values for one command tree
type options struct {
	configPath string
	verbose    bool

	city      string
	format    string
	sort      string
	docFormat string
	outDir    string
	addr      string

	uncompressed bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "city-events",
		Short: "Find local events for a city and export them",
		Long: `A tool to look up events for a city, summarize the weekend and export
the listing as a PDF report or an iCalendar file. When no live listing can be
retrieved, demo events are shown instead.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(newServeCmd(opts), newSearchCmd(opts), newExportCmd(opts))
	return cmd
}

func newServeCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts.configPath, opts.verbose, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			addr := a.cfg.ListenAddr
			if opts.addr != "" {
				addr = opts.addr
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(a.source, server.Options{
				DigestSize: a.cfg.DigestSize,
				Builder:    a.builder(nil, true),
				Metrics:    a.metrics,
				Logger:     a.log,
			})
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address (overrides LISTEN_ADDR)")
	return cmd
}

func newSearchCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Print the events and weekend digest for a city",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := OutputFormat(strings.ToLower(opts.format))
			if format != FormatText && format != FormatJSON {
				return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", opts.format)
			}
			order := SortOrder(strings.ToLower(opts.sort))
			if !order.Valid() {
				return fmt.Errorf("invalid sort: %s (must be 'none', 'date', 'title' or 'category')", opts.sort)
			}

			a, err := newApp(opts.configPath, opts.verbose, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			res := a.source.Lookup(commandContext(cmd), opts.city)
			events := sortEvents(res.Events, order)

			result := &OutputResult{
				City:       res.City,
				CheckedAt:  time.Now().UTC(),
				Events:     events,
				EventCount: len(events),
				Digest:     report.Summarize(res.Events, a.cfg.DigestSize),
				Fallback:   res.Fallback,
			}
			if err := WriteOutput(cmd.OutOrStdout(), result, format, opts.verbose); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.city, "city", "", "City to search (defaults to DEFAULT_CITY)")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&opts.sort, "sort", "none", "Sort order: none, date, title or category")
	return cmd
}

func newExportCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the listing for a city as a PDF report or iCalendar file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := strings.ToLower(opts.docFormat)
			if format != "pdf" && format != "ics" {
				return fmt.Errorf("invalid format: %s (must be 'pdf' or 'ics')", opts.docFormat)
			}

			a, err := newApp(opts.configPath, opts.verbose, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			store, err := storage.New(opts.outDir)
			if err != nil {
				return fmt.Errorf("initializing storage: %w", err)
			}

			now := time.Now()
			res := a.source.Lookup(commandContext(cmd), opts.city)

			var data []byte
			switch format {
			case "pdf":
				builder := a.builder(func() time.Time { return now }, !opts.uncompressed)
				data, err = builder.Render(res.City, res.Events, report.Summarize(res.Events, a.cfg.DigestSize))
			case "ics":
				data = []byte(calendar.GenerateBulkICS(res.Events, "Local Events in "+res.City, now))
			}
			a.metrics.ObserveDocument(format, err)
			if err != nil {
				return err
			}

			path, err := store.Write(report.Filename(res.City, now, format), data)
			if err != nil {
				return fmt.Errorf("saving document: %w", err)
			}

			a.log.Info("Document exported", logger.Fields{"city": res.City, "path": path, "events": len(res.Events), "fallback": res.Fallback})
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.city, "city", "", "City to export (defaults to DEFAULT_CITY)")
	cmd.Flags().StringVar(&opts.docFormat, "format", "pdf", "Document format: pdf or ics")
	cmd.Flags().StringVar(&opts.outDir, "out-dir", defaultOutDir, "Directory to write the document to")
	cmd.Flags().BoolVar(&opts.uncompressed, "uncompressed", false, "Write PDF content streams uncompressed")
	return cmd
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
