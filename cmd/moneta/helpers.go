package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/moneta-cli/moneta/internal/api"
	"github.com/moneta-cli/moneta/internal/common"
	"github.com/moneta-cli/moneta/internal/config"
	"github.com/moneta-cli/moneta/internal/session"
	"github.com/moneta-cli/moneta/internal/storage"
)

// apiBaseURL resolves the backend URL from flag, env, or config file.
func apiBaseURL() (string, error) {
	url := viper.GetString("api.url")
	if url == "" {
		return "", common.NewUserError(
			"no backend configured; set api.url in config or pass --api-url",
			common.ErrMissingConfig)
	}
	return url, nil
}

// newClient builds an authenticated API client from the saved session.
func newClient() (*api.Client, *session.Session, error) {
	sess, err := session.Load()
	if err != nil {
		if errors.Is(err, common.ErrNotLoggedIn) {
			return nil, nil, common.NewUserError("run 'moneta login' first", err)
		}
		return nil, nil, err
	}

	url, err := apiBaseURL()
	if err != nil {
		return nil, nil, err
	}

	return api.NewClient(url, sess.Token), sess, nil
}

// openCache opens the local SQLite cache at its configured path.
func openCache() (*storage.SQLiteCache, error) {
	path := viper.GetString("cache.path")
	if path == "" {
		var err error
		path, err = config.DefaultCachePath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve cache path: %w", err)
		}
	} else {
		path = config.ExpandPath(path)
	}
	return storage.NewSQLiteCache(path)
}

// loadCollections fetches all three collections from the backend, or
// from the local cache when offline is set.
func loadCollections(ctx context.Context, offline bool) (*api.Collections, error) {
	if offline {
		cache, err := openCache()
		if err != nil {
			return nil, err
		}
		defer func() { _ = cache.Close() }()

		cols, err := cache.Load(ctx)
		if errors.Is(err, common.ErrCacheEmpty) {
			return nil, common.NewUserError("local cache is empty; run 'moneta sync' while online", err)
		}
		return cols, err
	}

	client, _, err := newClient()
	if err != nil {
		return nil, err
	}
	return api.FetchAll(ctx, client)
}
