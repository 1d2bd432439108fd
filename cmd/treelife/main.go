// @title			Tree Life API
// @version		1.0
// @description	Persons, trees and tree orders backed by PostgreSQL.
// @BasePath		/

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mtlprog/treelife/internal/config"
	"github.com/mtlprog/treelife/internal/database"
	"github.com/mtlprog/treelife/internal/handler"
	"github.com/mtlprog/treelife/internal/logger"
	"github.com/mtlprog/treelife/internal/middleware"
	"github.com/urfave/cli/v2"
)

func main() {
	// .env only fills in variables the environment does not already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	if err := newApp().Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "treelife",
		Usage: "Tree ordering API over PostgreSQL",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "database-url",
				Aliases: []string{"d"},
				Usage:   "PostgreSQL database URL (default " + config.DefaultDatabaseURL + ")",
				EnvVars: []string{config.EnvDatabaseURL},
			},
		},
		Before: func(c *cli.Context) error {
			logger.Setup(logger.ParseLevel(c.String("log-level")))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the web server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "host",
						Value:   config.DefaultHost,
						Usage:   "HTTP server bind address",
						EnvVars: []string{"HOST"},
					},
					&cli.StringFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Value:   config.DefaultPort,
						Usage:   "HTTP server port",
						EnvVars: []string{"PORT"},
					},
				},
				Action: runServe,
			},
			{
				Name:   "check-db",
				Usage:  "Check that the database is reachable",
				Action: runCheckDB,
			},
		},
		Action: runServe,
	}
}

// serverAddr builds the listen address, falling back to defaults for the
// root action where the serve flags are not defined.
func serverAddr(c *cli.Context) string {
	host := c.String("host")
	if host == "" {
		host = config.DefaultHost
	}
	port := c.String("port")
	if port == "" {
		port = config.DefaultPort
	}
	return net.JoinHostPort(host, port)
}

func runServe(c *cli.Context) error {
	ctx := c.Context

	addr := serverAddr(c)
	databaseURL := config.ResolveDatabaseURL(c.String("database-url"))

	db, err := database.New(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database pool: %w", err)
	}
	defer db.Close()

	// Requests report an unreachable database themselves; startup only warns.
	if err := db.Ping(ctx); err != nil {
		slog.Warn("database not reachable at startup", "error", err)
	}

	h := handler.New(db.Pool())

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	server := &http.Server{
		Addr:              addr,
		Handler:           middleware.Chain(mux),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "server_addr", "http://"+addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-done:
		slog.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func runCheckDB(c *cli.Context) error {
	ctx, cancel := context.WithTimeout(c.Context, 10*time.Second)
	defer cancel()

	db, err := database.New(ctx, config.ResolveDatabaseURL(c.String("database-url")))
	if err != nil {
		return fmt.Errorf("failed to open database pool: %w", err)
	}
	defer db.Close()

	if err := db.Ping(ctx); err != nil {
		return err
	}

	slog.Info("database reachable")
	return nil
}
