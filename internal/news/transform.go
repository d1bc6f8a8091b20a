package news

import (
	"regexp"
	"strings"

	"github.com/bunnybot/storefront-api/internal/strapi"
)

// ListItem is the compact article shape for listing pages. Summary is the
// stripped, truncated article body.
type ListItem struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Summary     string `json:"summary"`
	CoverURL    string `json:"coverUrl,omitempty"`
	PublishDate string `json:"publishDate"`
	Category    string `json:"category"`
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// StripTags removes HTML tag runs. It does not decode entities; article
// bodies come from a trusted CMS, this is display cleanup, not sanitizing.
func StripTags(html string) string {
	return tagPattern.ReplaceAllString(html, "")
}

// Truncate cuts s to max runes and appends "..." only when something was
// actually cut.
func Truncate(s string, max int) string {
	if max < 0 {
		max = 0
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// ToListItem builds the listing view of an article. The summary is the
// tag-stripped body truncated to summaryLength runes; the cover URL is the
// first cover asset, resolved against the media host, or "" when the
// article has no cover.
func ToListItem(article strapi.News, summaryLength int, resolveMediaURL func(string) string) ListItem {
	item := ListItem{
		ID:          article.ID,
		Title:       article.Title,
		Slug:        article.Slug,
		Summary:     Truncate(strings.TrimSpace(StripTags(article.Content)), summaryLength),
		PublishDate: article.PublishDate,
		Category:    article.Category,
	}
	if len(article.Cover) > 0 {
		url := article.Cover[0].URL
		if resolveMediaURL != nil {
			url = resolveMediaURL(url)
		}
		item.CoverURL = url
	}
	return item
}

// FilterByCategory keeps articles whose flat category key matches, in the
// original order. An empty category keeps everything.
func FilterByCategory(articles []strapi.News, category string) []strapi.News {
	if category == "" {
		return articles
	}
	matched := make([]strapi.News, 0, len(articles))
	for _, article := range articles {
		if article.Category == category {
			matched = append(matched, article)
		}
	}
	return matched
}
