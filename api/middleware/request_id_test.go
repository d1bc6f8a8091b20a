package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/bunnybot/storefront-api/pkg/logger"
)

func TestRequestIDEchoesValidInboundID(t *testing.T) {
	t.Parallel()

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	inbound := uuid.NewString()

	handler := RequestID(logg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", inbound)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-Id"); got != inbound {
		t.Fatalf("expected inbound id %q echoed, got %q", inbound, got)
	}
}

func TestRequestIDReplacesMalformedID(t *testing.T) {
	t.Parallel()

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	handler := RequestID(logg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "not-a-uuid'); DROP TABLE logs;--")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	got := rec.Header().Get("X-Request-Id")
	if _, err := uuid.Parse(got); err != nil {
		t.Fatalf("expected a fresh uuid, got %q", got)
	}
	if got == "not-a-uuid'); DROP TABLE logs;--" {
		t.Fatal("malformed inbound id must not be echoed")
	}
}
