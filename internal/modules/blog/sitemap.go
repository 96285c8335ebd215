package blog

import (
	"context"
	"encoding/xml"
	"strings"
	"time"

	"tutorhub/internal/domain"
)

// staticRoutes are the public pages every sitemap carries, in the
// order crawlers should weigh them.
var staticRoutes = []struct {
	path     string
	priority string
}{
	{"/", "1.0"},
	{"/blog", "0.8"},
	{"/login", "0.5"},
	{"/signup", "0.5"},
}

type sitemapURL struct {
	XMLName  xml.Name `xml:"url"`
	Loc      string   `xml:"loc"`
	LastMod  string   `xml:"lastmod,omitempty"`
	Priority string   `xml:"priority,omitempty"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap renders sitemap.xml: the static pages plus one entry per
// published post, stamped with its last update.
func (s *Service) Sitemap(ctx context.Context, baseURL string) ([]byte, error) {
	posts, err := s.posts.ListNewest(ctx)
	if err != nil {
		return nil, err
	}
	return renderSitemap(baseURL, posts)
}

func renderSitemap(baseURL string, posts []domain.Post) ([]byte, error) {
	base := strings.TrimRight(baseURL, "/")

	set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, r := range staticRoutes {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:      base + r.path,
			Priority: r.priority,
		})
	}
	for _, p := range posts {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:      base + "/blog/" + p.Slug,
			LastMod:  p.UpdatedAt.Format(time.RFC3339),
			Priority: "0.6",
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
