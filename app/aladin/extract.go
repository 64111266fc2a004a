package aladin

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/lysyi3m/aladin-meta/app/metadata"
)

const (
	bookMarker    = "도서"
	foreignMarker = "외국"
	productMarker = "wproduct"
)

// ExtractCandidates returns at most limit book candidates from a search
// results page, in document order. Relative links resolve against base.
func ExtractCandidates(doc *goquery.Document, base *url.URL, limit int) []metadata.Candidate {
	var candidates []metadata.Candidate

	doc.Find("div.ss_book_box").EachWithBreak(func(_ int, box *goquery.Selection) bool {
		if len(candidates) >= limit {
			return false
		}

		label := strings.TrimSpace(box.Find("span.tit_category").First().Text())
		if !strings.Contains(label, bookMarker) {
			return true
		}

		href, ok := productLink(box)
		if !ok {
			return true
		}

		link, err := resolveLink(base, href)
		if err != nil {
			return true
		}

		hint := metadata.HintKorean
		if strings.Contains(label, foreignMarker) {
			hint = metadata.HintEnglish
		}

		candidates = append(candidates, metadata.Candidate{
			Index:    len(candidates),
			URL:      link,
			Language: hint,
		})
		return true
	})

	return candidates
}

func productLink(box *goquery.Selection) (string, bool) {
	var href string
	box.Find("a.bo3").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if h, ok := a.Attr("href"); ok && strings.Contains(h, productMarker) {
			href = h
			return false
		}
		return true
	})
	return href, href != ""
}

func resolveLink(base *url.URL, href string) (string, error) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", err
	}
	if base == nil {
		return ref.String(), nil
	}
	return base.ResolveReference(ref).String(), nil
}

// itemID returns the ItemId query parameter of a product URL.
func itemID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err == nil {
		if id := u.Query().Get("ItemId"); id != "" {
			return id
		}
	}
	if _, after, found := strings.Cut(rawURL, "ItemId="); found {
		id, _, _ := strings.Cut(after, "&")
		return id
	}
	return ""
}
