package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aouiniamine/bookmarks/internal/config"
	"github.com/aouiniamine/bookmarks/internal/features/status/client"
	"github.com/aouiniamine/bookmarks/internal/features/status/terminal"
	"github.com/aouiniamine/bookmarks/internal/features/status/view"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	endpointURL string
	timeout     time.Duration
	colorMode   string
)

var rootCmd = &cobra.Command{
	Use:   "bookmarks-status",
	Short: "Show the Bookmarks API status in the terminal",
	Long: `bookmarks-status mounts a single status view against the configured
endpoint, prints its loading state, and prints the final message or error once
the one request completes. Request failures are displayed, not returned.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		mode := terminal.ColorMode(colorMode)
		switch mode {
		case terminal.ColorAuto, terminal.ColorAlways, terminal.ColorNever:
		default:
			return fmt.Errorf("invalid --color %q: want auto, always or never", colorMode)
		}

		return run(ctx, cmd.OutOrStdout(), client.New(endpointURL, timeout), mode)
	},
}

func init() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env: %v", err)
	}
	cfg := config.Load()

	rootCmd.Flags().StringVar(&endpointURL, "url", cfg.Endpoint.URL, "endpoint to read (API_URL)")
	rootCmd.Flags().DurationVar(&timeout, "timeout", cfg.Endpoint.Timeout, "request timeout (API_TIMEOUT)")
	rootCmd.Flags().StringVar(&colorMode, "color", string(terminal.ColorAuto), "colorize errors: auto, always or never")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// run renders the view before and after its single request. An interrupt
// tears the view down and leaves the loading line as the last output.
func run(ctx context.Context, w io.Writer, fetcher view.Fetcher, mode terminal.ColorMode) error {
	p := terminal.New(w, mode)
	v := view.New(fetcher)

	// the view owns cancellation of its request; see Unmount below
	v.Mount(context.WithoutCancel(ctx))
	if err := p.Heading(v.Render()); err != nil {
		return err
	}
	if err := p.Status(v.Render()); err != nil {
		return err
	}

	select {
	case <-v.Done():
	case <-ctx.Done():
		v.Unmount()
		return nil
	}

	if v.Unmounted() {
		return nil
	}
	return p.Status(v.Render())
}
