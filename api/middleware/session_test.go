package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCartSessionMintsID(t *testing.T) {
	var seen string
	handler := CartSession(false, time.Hour)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CartSessionFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen == "" {
		t.Fatal("expected a minted session id in context")
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "sf_session" || cookies[0].Value != seen {
		t.Fatalf("expected session cookie %q, got %+v", seen, cookies)
	}
	if !cookies[0].HttpOnly {
		t.Fatal("session cookie must be http-only")
	}
	if rec.Header().Get("X-Cart-Session") != seen {
		t.Fatal("session id must echo in the response header")
	}
}

func TestCartSessionReusesCookie(t *testing.T) {
	var seen string
	handler := CartSession(false, time.Hour)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CartSessionFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.AddCookie(&http.Cookie{Name: "sf_session", Value: "sess_existing"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen != "sess_existing" {
		t.Fatalf("expected cookie session, got %q", seen)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("existing session must not set a new cookie")
	}
}

func TestCartSessionHeaderFallback(t *testing.T) {
	var seen string
	handler := CartSession(false, time.Hour)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CartSessionFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Cart-Session", "sess_header")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen != "sess_header" {
		t.Fatalf("expected header session, got %q", seen)
	}
}
