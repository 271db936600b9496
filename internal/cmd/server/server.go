// Package server wires configuration into the web service run loop.
package server

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/louisbranch/taskdeck/internal/auth"
	entrypoint "github.com/louisbranch/taskdeck/internal/platform/cmd"
	"github.com/louisbranch/taskdeck/internal/task/service"
	"github.com/louisbranch/taskdeck/internal/task/storage/sqlite"
	"github.com/louisbranch/taskdeck/internal/web"
)

// Config holds server command configuration.
type Config struct {
	Port           int    `env:"TASKDECK_PORT" envDefault:"8080"`
	DBPath         string `env:"TASKDECK_DB_PATH" envDefault:"taskdeck.db"`
	LoginURL       string `env:"TASKDECK_LOGIN_URL" envDefault:"/login"`
	IntrospectURL  string `env:"TASKDECK_INTROSPECT_URL"`
	ResourceSecret string `env:"TASKDECK_RESOURCE_SECRET"`
}

// ParseConfig loads env defaults and applies flag overrides.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The HTTP server port")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "Path to the SQLite database file")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// newIntrospector picks the session validation strategy: a remote
// introspection endpoint when configured, otherwise local token
// verification against the identity provider's public key.
func newIntrospector(cfg Config) (auth.Introspector, error) {
	if url := strings.TrimSpace(cfg.IntrospectURL); url != "" {
		return auth.NewHTTPIntrospector(url, cfg.ResourceSecret, http.DefaultClient), nil
	}
	tokenCfg, err := auth.LoadTokenVerifierConfigFromEnv(nil)
	if err != nil {
		return nil, fmt.Errorf("session validation is not configured: %w", err)
	}
	return auth.NewTokenIntrospector(tokenCfg)
}

// Run starts the web server and blocks until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceServer, func(ctx context.Context) error {
		if strings.TrimSpace(cfg.DBPath) == "" {
			return errors.New("database path is required")
		}
		introspector, err := newIntrospector(cfg)
		if err != nil {
			return err
		}

		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open task store: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.Printf("close task store: %v", err)
			}
		}()

		srv, err := web.NewServer(ctx, web.Config{
			HTTPAddr:     fmt.Sprintf(":%d", cfg.Port),
			LoginURL:     cfg.LoginURL,
			Tasks:        service.New(store),
			Introspector: introspector,
		})
		if err != nil {
			return err
		}
		defer srv.Close()

		log.Printf("listening on :%d", cfg.Port)
		return srv.ListenAndServe(ctx)
	})
}
