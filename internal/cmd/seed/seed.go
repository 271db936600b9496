// Package seed wires configuration into the demo data seeder.
package seed

import (
	"context"
	"flag"
	"io"
	"strings"

	entrypoint "github.com/louisbranch/taskdeck/internal/platform/cmd"
	"github.com/louisbranch/taskdeck/internal/seed"
)

// Config holds seed command configuration.
type Config struct {
	Seed seed.Config
}

// EnvLookup returns the value for a key when present.
type EnvLookup func(string) (string, bool)

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string, lookup EnvLookup) (Config, error) {
	seedCfg := seed.DefaultConfig()
	seedCfg.DBPath = envOrDefault(lookup, []string{"TASKDECK_DB_PATH"}, seedCfg.DBPath)
	seedCfg.OwnerID = envOrDefault(lookup, []string{"TASKDECK_SEED_OWNER"}, seedCfg.OwnerID)

	fs.StringVar(&seedCfg.DBPath, "db-path", seedCfg.DBPath, "Path to the SQLite database file")
	fs.StringVar(&seedCfg.OwnerID, "owner", seedCfg.OwnerID, "User id that owns the seeded tasks")
	fs.BoolVar(&seedCfg.Verbose, "v", false, "verbose output")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return Config{Seed: seedCfg}, nil
}

// Run executes the seed command.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSeed, func(ctx context.Context) error {
		return seed.Run(ctx, cfg.Seed, out)
	})
}

func envOrDefault(lookup EnvLookup, keys []string, fallback string) string {
	for _, key := range keys {
		if lookup == nil {
			break
		}
		value, ok := lookup(key)
		if ok {
			trimmed := strings.TrimSpace(value)
			if trimmed != "" {
				return trimmed
			}
		}
	}
	return fallback
}
