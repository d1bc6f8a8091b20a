package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bunnybot/storefront-api/internal/strapi"
)

type stubNewsReader struct {
	articles   []strapi.News
	pagination strapi.Pagination
}

func (s *stubNewsReader) GetNews(ctx context.Context, params strapi.NewsQuery) ([]strapi.News, strapi.Pagination, error) {
	return s.articles, s.pagination, nil
}

func (s *stubNewsReader) GetNewsBySlug(ctx context.Context, slug string) (*strapi.News, error) {
	for i := range s.articles {
		if s.articles[i].Slug == slug {
			return &s.articles[i], nil
		}
	}
	return nil, nil
}

func (s *stubNewsReader) ResolveMediaURL(raw string) string {
	return "https://cdn.example.com" + raw
}

func TestNewsListEnvelope(t *testing.T) {
	t.Parallel()

	content := &stubNewsReader{
		articles: []strapi.News{
			{ID: 1, Title: "新店开业", Slug: "grand-opening", Content: "<p>欢迎光临</p>"},
		},
		pagination: strapi.Pagination{Page: 2, PageSize: 10, PageCount: 3, Total: 25},
	}

	rec := httptest.NewRecorder()
	NewsList(content, testLogger())(rec, httptest.NewRequest(http.MethodGet, "/api/v1/news?page=2", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var envelope struct {
		Data []struct {
			Title   string `json:"title"`
			Summary string `json:"summary"`
		} `json:"data"`
		Meta struct {
			Pagination strapi.Pagination `json:"pagination"`
		} `json:"meta"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].Title != "新店开业" {
		t.Fatalf("unexpected data %+v", envelope.Data)
	}
	if envelope.Data[0].Summary != "欢迎光临" {
		t.Fatalf("summary must be tag-stripped, got %q", envelope.Data[0].Summary)
	}
	if envelope.Meta.Pagination.Total != 25 || envelope.Meta.Pagination.Page != 2 {
		t.Fatalf("pagination must ride under meta, got %+v", envelope.Meta.Pagination)
	}
}
