package strapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bunnybot/storefront-api/pkg/config"
	pkgerrors "github.com/bunnybot/storefront-api/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(config.StrapiConfig{
		BaseURL:  server.URL,
		APIToken: "test-token",
		Timeout:  2 * time.Second,
	}, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client, server
}

func TestGetProductBySlug(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/products" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("filters[slug][$eq]"); got != "drill-x1" {
			t.Errorf("unexpected slug filter %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("missing bearer token, got %q", got)
		}
		json.NewEncoder(w).Encode(Response[[]Product]{
			Data: []Product{{ID: 7, Name: "冲击钻 X1", Slug: "drill-x1", MedusaProductID: "prod_01"}},
		})
	})

	product, err := client.GetProductBySlug(context.Background(), "drill-x1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.ID != 7 || product.MedusaProductID != "prod_01" {
		t.Fatalf("unexpected product %+v", product)
	}
}

func TestGetProductBySlugNotFound(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Response[[]Product]{Data: []Product{}})
	})

	_, err := client.GetProductBySlug(context.Background(), "missing")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestGetNewsPassesFilters(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("filters[category][$eq]") != "industry" {
			t.Errorf("missing category filter, query=%v", q)
		}
		if q.Get("sort") != "publishDate:desc" {
			t.Errorf("expected publishDate sort, query=%v", q)
		}
		json.NewEncoder(w).Encode(Response[[]News]{
			Data: []News{{ID: 1, Title: "行业资讯", Slug: "industry-1", Category: "industry"}},
			Meta: Meta{Pagination: &Pagination{Page: 2, PageSize: 10, PageCount: 3, Total: 25}},
		})
	})

	articles, pagination, err := client.GetNews(context.Background(), NewsQuery{Category: "industry", Page: 2, PageSize: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 1 || articles[0].Category != "industry" {
		t.Fatalf("unexpected articles %+v", articles)
	}
	if pagination.Total != 25 || pagination.Page != 2 {
		t.Fatalf("unexpected pagination %+v", pagination)
	}
}

func TestSubmitContactWrapsData(t *testing.T) {
	t.Parallel()

	var received map[string]ContactPayload
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/contacts" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	})

	payload := ContactPayload{Name: "李雷", Phone: "13900001111", Email: "", Message: "你好"}
	if err := client.SubmitContact(context.Background(), payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if received["data"].Name != "李雷" || received["data"].Phone != "13900001111" {
		t.Fatalf("payload not wrapped in data envelope: %+v", received)
	}
}

func TestUpstreamErrorMapsToDependency(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.GetBanners(context.Background())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestResolveMediaURL(t *testing.T) {
	t.Parallel()

	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	if got := client.ResolveMediaURL("/uploads/cover.jpg"); got != server.URL+"/uploads/cover.jpg" {
		t.Fatalf("unexpected resolved url %q", got)
	}
	if got := client.ResolveMediaURL("https://cdn.example.com/a.jpg"); got != "https://cdn.example.com/a.jpg" {
		t.Fatalf("absolute url should pass through, got %q", got)
	}
	if got := client.ResolveMediaURL(""); got != "" {
		t.Fatalf("empty url should stay empty, got %q", got)
	}
}
