package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/dealcalc/internal/ratecache"
	"github.com/Veraticus/dealcalc/internal/service"
	"github.com/Veraticus/dealcalc/internal/storage"
)

// initStorage opens the reference data stores and runs migrations.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/dealcalc/dealcalc.db"
	}
	dbPath = expandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initRateCache connects to the lender rate cache. Redis is optional; a
// missing address yields an empty in-memory cache so rate commands still
// run (and report no match).
func initRateCache() service.RateCache {
	addr := viper.GetString("redis.addr")
	if addr == "" {
		return ratecache.NewMemoryCache()
	}
	return ratecache.NewRedisCache(addr)
}

// expandPath expands $HOME, other environment variables, and a leading
// tilde in a filesystem path.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return os.ExpandEnv(path)
}
