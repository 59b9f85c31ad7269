package cli

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tsgraph/tsg/pkg/cache"
	"github.com/tsgraph/tsg/pkg/config"
	"github.com/tsgraph/tsg/pkg/store"
	"github.com/tsgraph/tsg/pkg/tsg/document"
	tsgerrors "github.com/tsgraph/tsg/pkg/tsg/errors"

	"github.com/tsgraph/tsg/internal/httpapi"
)

// serveCommand loads a set of TSG documents and serves the read-only
// query API over them until the process is interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var cacheBackend string
	var mongoURI string
	var redisAddr string
	var configFile string

	cmd := &cobra.Command{
		Use:   "serve <file.tsg>...",
		Short: "Serve a read-only query API over loaded documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			if configFile == "" {
				configFile = configPath()
			}
			cfg, err := config.Load(configFile)
			if err != nil {
				return tsgerrors.Wrap(tsgerrors.CodeIO, err, "loading config %s", configFile)
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}
			if cacheBackend == "" {
				cacheBackend = cfg.Cache.Backend
			}

			backend, err := buildServeCache(cacheBackend, redisAddr, cfg)
			if err != nil {
				return err
			}
			defer backend.Close()

			idx, err := buildServeIndex(cmd.Context(), mongoURI)
			if err != nil {
				return err
			}
			defer idx.Close(cmd.Context())

			srv := httpapi.New(idx, backend, cache.NewDefaultKeyer())

			for _, path := range args {
				doc, err := document.ParseFile(path)
				if err != nil {
					return err
				}
				id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
				if err := srv.LoadDocument(cmd.Context(), id, path, doc); err != nil {
					return err
				}
				logger.Infof("loaded %s as %q", path, id)
			}

			httpSrv := &http.Server{Addr: addr, Handler: srv}
			logger.Infof("serving on %s", addr)

			errCh := make(chan error, 1)
			go func() {
				if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			select {
			case <-cmd.Context().Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return httpSrv.Shutdown(shutdownCtx)
			case err := <-errCh:
				return tsgerrors.Wrap(tsgerrors.CodeIO, err, "serving %s", addr)
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, else :8080)")
	cmd.Flags().StringVar(&cacheBackend, "cache", "", "cache backend: file, redis, or none (default from config)")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "", "redis address, when --cache=redis")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "mongo connection URI; when set, the document index is backed by MongoDB instead of an in-memory index")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (default: $XDG_CONFIG_HOME/tsg/config.toml)")
	return cmd
}

func buildServeCache(backend, redisAddr string, cfg *config.Config) (cache.Cache, error) {
	switch backend {
	case "redis":
		addr := redisAddr
		if addr == "" {
			addr = cfg.Cache.RedisURL
		}
		return cache.NewRedisCache(addr, "", 0)
	case "none":
		return cache.NewNullCache(), nil
	default:
		dir := cfg.Cache.Dir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	}
}

func buildServeIndex(ctx context.Context, mongoURI string) (store.Index, error) {
	if mongoURI == "" {
		return store.NewMemoryIndex(), nil
	}
	idx, err := store.NewMongoIndex(ctx, mongoURI, "tsg")
	if err != nil {
		return nil, tsgerrors.Wrap(tsgerrors.CodeIO, err, "connecting to %s", mongoURI)
	}
	return idx, nil
}
