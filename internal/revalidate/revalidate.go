package revalidate

import (
	"context"
	"crypto/subtle"
	"fmt"

	pkgerrors "github.com/bunnybot/storefront-api/pkg/errors"
	"github.com/bunnybot/storefront-api/pkg/logger"
	"github.com/bunnybot/storefront-api/pkg/metrics"
)

// Event is a content-service webhook notification. Model names the changed
// content type; Slug is set for slug-addressed entries.
type Event struct {
	Model string `json:"model"`
	Slug  string `json:"slug,omitempty"`
}

// Outcome reports what a purge touched.
type Outcome struct {
	Model string   `json:"model"`
	Paths []string `json:"paths"`
}

type pageCache interface {
	PurgePage(ctx context.Context, path string) error
}

// Service maps content-change events to the page-cache paths they
// invalidate and purges them.
type Service interface {
	Authorize(secret string) error
	HandleEvent(ctx context.Context, event Event) (*Outcome, error)
	PurgePath(ctx context.Context, path string) error
}

type service struct {
	cache  pageCache
	secret string
	logg   *logger.Logger
	stats  *metrics.PageCacheMetrics
}

func NewService(cache pageCache, secret string, logg *logger.Logger, stats *metrics.PageCacheMetrics) (Service, error) {
	if cache == nil {
		return nil, fmt.Errorf("page cache required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if stats == nil {
		stats = metrics.NewPageCacheMetrics(nil)
	}
	return &service{cache: cache, secret: secret, logg: logg, stats: stats}, nil
}

// Authorize compares the presented secret in constant time. An unset
// configured secret rejects everything.
func (s *service) Authorize(secret string) error {
	if s.secret == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "revalidation disabled: no secret configured")
	}
	if subtle.ConstantTimeCompare([]byte(secret), []byte(s.secret)) != 1 {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid revalidation secret")
	}
	return nil
}

// PathsFor returns the cached response paths invalidated by a change to
// the given model. Paths are the page-cache keys the caching middleware
// writes: the API path without its version prefix. A page change without a
// slug names no cached response and purges nothing; models this service
// does not know fall back to the main listing set.
func PathsFor(event Event) []string {
	switch event.Model {
	case "banner":
		return []string{"/banners"}
	case "product":
		paths := []string{"/products"}
		if event.Slug != "" {
			paths = append(paths, "/products/"+event.Slug)
		}
		return paths
	case "category":
		return []string{"/categories", "/products"}
	case "news":
		paths := []string{"/news"}
		if event.Slug != "" {
			paths = append(paths, "/news/"+event.Slug)
		}
		return paths
	case "page":
		if event.Slug != "" {
			return []string{"/pages/" + event.Slug}
		}
		return nil
	default:
		return []string{"/banners", "/products", "/news", "/pages/about"}
	}
}

func (s *service) HandleEvent(ctx context.Context, event Event) (*Outcome, error) {
	if event.Model == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event model required")
	}

	paths := PathsFor(event)
	for _, path := range paths {
		if err := s.cache.PurgePage(ctx, path); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("purging page %s", path))
		}
	}
	s.stats.IncPurge(event.Model)
	s.logg.Info(s.logg.WithField(ctx, "model", event.Model), fmt.Sprintf("purged %d cached pages", len(paths)))
	if paths == nil {
		paths = []string{}
	}
	return &Outcome{Model: event.Model, Paths: paths}, nil
}

// PurgePath drops a single cached page. Used by the manual GET variant.
func (s *service) PurgePath(ctx context.Context, path string) error {
	if path == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "path required")
	}
	if err := s.cache.PurgePage(ctx, path); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("purging page %s", path))
	}
	s.stats.IncPurge("manual")
	return nil
}
