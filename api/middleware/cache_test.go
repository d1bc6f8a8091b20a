package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bunnybot/storefront-api/pkg/logger"
	"github.com/bunnybot/storefront-api/pkg/metrics"
	pkgredis "github.com/bunnybot/storefront-api/pkg/redis"
)

type memoryPageCache struct {
	pages map[string]string
	sets  []string
}

func (m *memoryPageCache) GetPage(ctx context.Context, path string) (string, error) {
	if payload, ok := m.pages[path]; ok {
		return payload, nil
	}
	return "", pkgredis.ErrCacheMiss
}

func (m *memoryPageCache) SetPage(ctx context.Context, path, payload string, ttl time.Duration) error {
	m.pages[path] = payload
	m.sets = append(m.sets, path)
	return nil
}

func newPageCacheHandler(cache *memoryPageCache, handlerHits *int) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	mw := PageCache(cache, metrics.NewPageCacheMetrics(nil), time.Minute, logg)
	return mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*handlerHits++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":"fresh"}`))
	}))
}

func TestPageCacheServesHit(t *testing.T) {
	cache := &memoryPageCache{pages: map[string]string{"/products": `{"data":"cached"}`}}
	hits := 0
	handler := newPageCacheHandler(cache, &hits)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if hits != 0 {
		t.Fatal("cache hit must not call the handler")
	}
	if rec.Body.String() != `{"data":"cached"}` {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
	if rec.Header().Get("X-Cache") != "HIT" {
		t.Fatal("expected X-Cache header")
	}
}

func TestPageCacheStoresMiss(t *testing.T) {
	cache := &memoryPageCache{pages: map[string]string{}}
	hits := 0
	handler := newPageCacheHandler(cache, &hits)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if hits != 1 {
		t.Fatalf("expected handler call, got %d", hits)
	}
	if cache.pages["/products"] != `{"data":"fresh"}` {
		t.Fatalf("response not cached: %+v", cache.pages)
	}
}

func TestPageCacheBypassesQueriesAndWrites(t *testing.T) {
	cache := &memoryPageCache{pages: map[string]string{}}
	hits := 0
	handler := newPageCacheHandler(cache, &hits)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?category=tools", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/contact", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if hits != 2 {
		t.Fatalf("expected both requests to reach the handler, got %d", hits)
	}
	if len(cache.sets) != 0 {
		t.Fatalf("bypassed requests must not be cached: %v", cache.sets)
	}
}
