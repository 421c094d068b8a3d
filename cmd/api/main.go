package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/JEONG99/movieql-server/infrastructure/config"
	"github.com/JEONG99/movieql-server/infrastructure/di"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		log.Fatal(err)
	}
}

func newRootCommand() *cobra.Command {
	var configPath, addr string

	cmd := &cobra.Command{
		Use:           "movieql-server",
		Short:         "Serves the movie and tweet GraphQL API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), configPath, addr)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML configuration file (defaults to $CONFIG_FILE)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides the configured server.address")

	return cmd
}

func run(ctx context.Context, configPath, addr string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if addr != "" {
		cfg.Server.Address = addr
	}

	container, cleanup, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	defer cleanup()

	listener, err := net.Listen("tcp", cfg.Server.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Server.Address, err)
	}

	srv := &http.Server{
		Handler:      container.Router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		container.Logger.Info("Running on "+endpointURL(listener.Addr(), cfg.Server.GraphQLPath),
			zap.String("environment", cfg.Environment),
		)
		serveErr <- srv.Serve(listener)
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	container.Logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		container.Logger.Error("Server shutdown error", zap.Error(err))
		return err
	}

	container.Logger.Info("Server stopped")
	return nil
}

// endpointURL renders the GraphQL endpoint on the bound listener, showing
// unspecified hosts as localhost
func endpointURL(addr net.Addr, path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return "http://" + addr.String() + path
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port) + path
}
