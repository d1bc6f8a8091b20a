package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bunnybot/storefront-api/api/responses"
	"github.com/bunnybot/storefront-api/api/validators"
	"github.com/bunnybot/storefront-api/internal/news"
	"github.com/bunnybot/storefront-api/internal/strapi"
	pkgerrors "github.com/bunnybot/storefront-api/pkg/errors"
	"github.com/bunnybot/storefront-api/pkg/logger"
)

// summaryRunes is the listing summary length in runes.
const summaryRunes = 100

type newsReader interface {
	GetNews(ctx context.Context, params strapi.NewsQuery) ([]strapi.News, strapi.Pagination, error)
	GetNewsBySlug(ctx context.Context, slug string) (*strapi.News, error)
	ResolveMediaURL(raw string) string
}

// NewsList serves the article listing with stripped, truncated summaries.
func NewsList(content newsReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if content == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "content service unavailable"))
			return
		}

		page, err := validators.ParseQueryInt(r, "page", 1, 1, 10000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		pageSize, err := validators.ParseQueryInt(r, "pageSize", 10, 1, 50)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		articles, pagination, err := content.GetNews(r.Context(), strapi.NewsQuery{
			Category: r.URL.Query().Get("category"),
			Page:     page,
			PageSize: pageSize,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]news.ListItem, 0, len(articles))
		for _, article := range articles {
			items = append(items, news.ToListItem(article, summaryRunes, content.ResolveMediaURL))
		}
		responses.WriteSuccessList(w, items, pagination)
	}
}

// NewsDetail serves a full article by slug.
func NewsDetail(content newsReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if content == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "content service unavailable"))
			return
		}

		article, err := content.GetNewsBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		for i := range article.Cover {
			article.Cover[i].URL = content.ResolveMediaURL(article.Cover[i].URL)
		}
		responses.WriteSuccess(w, article)
	}
}
