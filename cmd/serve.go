package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kozaktomas/photo-selector/internal/web"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the Photo Selector web server.
The server exposes the gallery commands (open, toggle, save, navigate,
filter, clear, export) as a JSON API, streams stats and notices over
server-sent events and serves the catalog images.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 8080, "Port to listen on (overrides WEB_PORT)")
	serveCmd.Flags().String("host", "0.0.0.0", "Host to bind to (overrides WEB_HOST)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	if cmd.Flags().Changed("port") {
		a.cfg.Web.Port = mustGetInt(cmd, "port")
	}
	if cmd.Flags().Changed("host") {
		a.cfg.Web.Host = mustGetString(cmd, "host")
	}

	stats := a.ctrl.Stats()
	a.logger.Info("selections loaded",
		"backend", a.cfg.Storage.Backend,
		"photos", a.ctrl.Catalog().Size(),
		"classified", a.ctrl.Catalog().Size()-stats.Unclassified,
	)

	server := web.NewServer(a.cfg, a.ctrl, a.meta, a.logger)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	done := make(chan struct{})
	go func() {
		defer close(done)
		select {
		case <-sigChan:
		case <-ctx.Done():
		}
		fmt.Println("\nShutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("shutdown failed", "err", err)
		}
	}()

	fmt.Printf("Starting Photo Selector on http://%s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	<-done
	return nil
}
