package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/bunnybot/storefront-api/pkg/logger"
	"github.com/bunnybot/storefront-api/pkg/metrics"
	pkgredis "github.com/bunnybot/storefront-api/pkg/redis"
)

const apiPrefix = "/api/v1"

type pageCache interface {
	GetPage(ctx context.Context, path string) (string, error)
	SetPage(ctx context.Context, path, payload string, ttl time.Duration) error
}

// PageCache serves GET responses from the redis page cache, keyed by the
// storefront page path (the API path without the /api/v1 prefix, which is
// what the revalidation webhook purges). Requests with a query string
// bypass the cache; filtered listings are too fragmented to be worth
// storing.
func PageCache(cache pageCache, stats *metrics.PageCacheMetrics, ttl time.Duration, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cache == nil || r.Method != http.MethodGet || r.URL.RawQuery != "" {
				next.ServeHTTP(w, r)
				return
			}

			path := strings.TrimPrefix(r.URL.Path, apiPrefix)
			if path == "" {
				path = "/"
			}

			if payload, err := cache.GetPage(r.Context(), path); err == nil {
				if stats != nil {
					stats.IncHit(path)
				}
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(payload))
				return
			} else if !errors.Is(err, pkgredis.ErrCacheMiss) && logg != nil {
				logg.Warn(r.Context(), "page cache read failed, serving uncached")
			}
			if stats != nil {
				stats.IncMiss(path)
			}

			rec := &captureRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			if rec.status == 0 {
				rec.status = http.StatusOK
			}
			if rec.status == http.StatusOK && rec.body.Len() > 0 {
				if err := cache.SetPage(r.Context(), path, rec.body.String(), ttl); err != nil && logg != nil {
					logg.Warn(r.Context(), "page cache write failed")
				}
			}
		})
	}
}

// captureRecorder tees the response body so a 200 can be cached after the
// handler runs.
type captureRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (c *captureRecorder) WriteHeader(status int) {
	c.status = status
	c.ResponseWriter.WriteHeader(status)
}

func (c *captureRecorder) Write(p []byte) (int, error) {
	if c.status == 0 || c.status == http.StatusOK {
		c.body.Write(p)
	}
	return c.ResponseWriter.Write(p)
}
