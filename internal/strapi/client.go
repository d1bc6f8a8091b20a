package strapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bunnybot/storefront-api/pkg/config"
	pkgerrors "github.com/bunnybot/storefront-api/pkg/errors"
	"github.com/bunnybot/storefront-api/pkg/logger"
)

// Client talks to the content service's REST API.
type Client struct {
	baseURL  string
	apiToken string
	http     *http.Client
	logger   *logger.Logger
}

// NewClient validates the configuration and builds a content-service client.
func NewClient(cfg config.StrapiConfig, logg *logger.Logger) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("strapi base url is required")
	}
	return &Client{
		baseURL:  baseURL,
		apiToken: strings.TrimSpace(cfg.APIToken),
		http:     &http.Client{Timeout: cfg.Timeout},
		logger:   logg,
	}, nil
}

// ResolveMediaURL turns a relative upload path into an absolute URL.
// The content service returns paths like /uploads/xxx.jpg.
func (c *Client) ResolveMediaURL(raw string) string {
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http") {
		return raw
	}
	return c.baseURL + raw
}

// GetBanners returns active banners in display order.
func (c *Client) GetBanners(ctx context.Context) ([]Banner, error) {
	query := url.Values{}
	query.Set("populate", "image")
	query.Set("filters[active][$eq]", "true")
	query.Set("sort", "sort:asc")

	var resp Response[[]Banner]
	if err := c.do(ctx, http.MethodGet, "/banners", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetProducts returns a page of products with category/image relations populated.
func (c *Client) GetProducts(ctx context.Context, params ProductQuery) ([]Product, Pagination, error) {
	query := url.Values{}
	query.Set("populate", "images,category")
	if params.Category != "" {
		query.Set("filters[category][slug][$eq]", params.Category)
	}
	if params.Featured {
		query.Set("filters[featured][$eq]", "true")
	}
	if params.Page > 0 {
		query.Set("pagination[page]", strconv.Itoa(params.Page))
	}
	if params.PageSize > 0 {
		query.Set("pagination[pageSize]", strconv.Itoa(params.PageSize))
	}

	var resp Response[[]Product]
	if err := c.do(ctx, http.MethodGet, "/products", query, nil, &resp); err != nil {
		return nil, Pagination{}, err
	}
	return resp.Data, paginationOrDefault(resp.Meta, len(resp.Data)), nil
}

// GetProductBySlug returns the product with the given slug, or a not-found error.
func (c *Client) GetProductBySlug(ctx context.Context, slug string) (*Product, error) {
	query := url.Values{}
	query.Set("filters[slug][$eq]", slug)
	query.Set("populate", "images,category")

	var resp Response[[]Product]
	if err := c.do(ctx, http.MethodGet, "/products", query, nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return &resp.Data[0], nil
}

// GetCategories returns all categories in display order.
func (c *Client) GetCategories(ctx context.Context) ([]Category, error) {
	query := url.Values{}
	query.Set("populate", "icon,parent")
	query.Set("sort", "sort:asc")

	var resp Response[[]Category]
	if err := c.do(ctx, http.MethodGet, "/categories", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetNews returns a page of news articles, newest first.
func (c *Client) GetNews(ctx context.Context, params NewsQuery) ([]News, Pagination, error) {
	query := url.Values{}
	query.Set("populate", "cover")
	query.Set("sort", "publishDate:desc")
	if params.Category != "" {
		query.Set("filters[category][$eq]", params.Category)
	}
	if params.Page > 0 {
		query.Set("pagination[page]", strconv.Itoa(params.Page))
	}
	if params.PageSize > 0 {
		query.Set("pagination[pageSize]", strconv.Itoa(params.PageSize))
	}

	var resp Response[[]News]
	if err := c.do(ctx, http.MethodGet, "/news", query, nil, &resp); err != nil {
		return nil, Pagination{}, err
	}
	return resp.Data, paginationOrDefault(resp.Meta, len(resp.Data)), nil
}

// GetNewsBySlug returns the article with the given slug, or a not-found error.
func (c *Client) GetNewsBySlug(ctx context.Context, slug string) (*News, error) {
	query := url.Values{}
	query.Set("filters[slug][$eq]", slug)
	query.Set("populate", "cover")

	var resp Response[[]News]
	if err := c.do(ctx, http.MethodGet, "/news", query, nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "news article not found")
	}
	return &resp.Data[0], nil
}

// GetPage returns the static page with the given slug, or a not-found error.
func (c *Client) GetPage(ctx context.Context, slug string) (*Page, error) {
	query := url.Values{}
	query.Set("filters[slug][$eq]", slug)

	var resp Response[[]Page]
	if err := c.do(ctx, http.MethodGet, "/pages", query, nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "page not found")
	}
	return &resp.Data[0], nil
}

// SubmitContact persists a contact submission in the content service.
func (c *Client) SubmitContact(ctx context.Context, payload ContactPayload) error {
	body := map[string]any{"data": payload}
	return c.do(ctx, http.MethodPost, "/contacts", nil, body, nil)
}

// Ping verifies the content service is reachable.
func (c *Client) Ping(ctx context.Context) error {
	query := url.Values{}
	query.Set("pagination[pageSize]", "1")
	var resp Response[[]Category]
	return c.do(ctx, http.MethodGet, "/categories", query, nil, &resp)
}

func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body, dest any) error {
	target := c.baseURL + "/api" + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode strapi request")
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build strapi request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "call content service")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return pkgerrors.New(pkgerrors.CodeNotFound, "content resource not found")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return pkgerrors.New(pkgerrors.CodeDependency,
			fmt.Sprintf("content service returned %d", resp.StatusCode))
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode content service response")
	}
	return nil
}

func paginationOrDefault(meta Meta, count int) Pagination {
	if meta.Pagination != nil {
		return *meta.Pagination
	}
	return Pagination{Page: 1, PageCount: 1, Total: count}
}
