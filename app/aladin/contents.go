package aladin

import (
	"context"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

const descriptionSeparator = "<br/>"

var descriptionPolicy = bluemonday.UGCPolicy()

// JoinDescription combines the publisher description and the table of
// contents. The separator only appears when both parts are present.
func JoinDescription(description, toc string) string {
	switch {
	case description != "" && toc != "":
		return description + descriptionSeparator + toc
	case description != "":
		return description
	default:
		return toc
	}
}

// publisherDescription returns the sanitized inner HTML of every
// description block, or "" when the page has none.
func publisherDescription(doc *goquery.Document) string {
	var sb strings.Builder
	doc.Find("div.Ere_prod_mconts_R").Each(func(_ int, s *goquery.Selection) {
		html, err := s.Html()
		if err != nil {
			return
		}
		sb.WriteString(html)
	})
	return sanitizeFragment(sb.String())
}

// tableOfContents prefers the full listing and falls back to the short one.
func tableOfContents(doc *goquery.Document) string {
	for _, selector := range []string{"div#div_TOC_All", "div#div_TOC_Short"} {
		s := doc.Find(selector).First()
		if s.Length() == 0 {
			continue
		}
		html, err := s.Html()
		if err != nil {
			continue
		}
		if toc := sanitizeFragment(html); toc != "" {
			return toc
		}
	}
	return ""
}

func sanitizeFragment(html string) string {
	return strings.TrimSpace(descriptionPolicy.Sanitize(html))
}

// fetchContents loads one getContents.aspx page and extracts a part from it.
// Failures are logged and reported as an absent part.
func (p *Provider) fetchContents(ctx context.Context, isbn, name string, extract func(*goquery.Document) string) string {
	link := contentsURL(p.contentsURL, isbn, name, p.now())

	doc, err := p.fetchDocument(ctx, link)
	if err != nil {
		slog.Warn("Failed to fetch contents page", "provider", ProviderID, "name", name, "url", link, "error", err)
		return ""
	}
	return extract(doc)
}
