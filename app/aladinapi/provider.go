package aladinapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/lysyi3m/aladin-meta/app/metadata"
)

const ProviderID = "aladinapi"

var Source = metadata.SourceInfo{
	ID:          ProviderID,
	Description: "Aladin Books",
	Link:        "https://www.aladin.co.kr/",
}

type Options struct {
	TTBKey    string
	UserAgent string
	SearchURL string
}

// Provider queries the Aladin TTB ItemSearch API for domestic and foreign
// books.
type Provider struct {
	client    *http.Client
	cache     *metadata.IdentifierCache
	ttbKey    string
	userAgent string
	searchURL string
}

func NewProvider(client *http.Client, cache *metadata.IdentifierCache, opts Options) *Provider {
	p := &Provider{
		client:    client,
		cache:     cache,
		ttbKey:    opts.TTBKey,
		userAgent: opts.UserAgent,
		searchURL: opts.SearchURL,
	}
	if p.searchURL == "" {
		p.searchURL = DefaultSearchURL
	}
	return p
}

func (p *Provider) ID() string {
	return ProviderID
}

// Search queries the domestic catalog and then the foreign one on the
// calling goroutine. When either request fails the whole search returns an
// empty list and no further catalog is requested.
func (p *Provider) Search(ctx context.Context, query, genericCover, locale string) []metadata.Record {
	query = metadata.NormalizeQuery(query)
	if encodeQuery(query) == "" {
		return []metadata.Record{}
	}
	if p.ttbKey == "" {
		slog.Warn("TTB key not configured", "provider", ProviderID)
		return []metadata.Record{}
	}

	var outcomes []metadata.Result
	for _, c := range catalogs {
		items, err := p.fetchCatalog(ctx, c, query)
		if err != nil {
			slog.Error("Catalog search failed",
				"provider", ProviderID,
				"target", c.Target,
				"error", err)
			return []metadata.Record{}
		}
		for _, it := range items {
			index := len(outcomes)
			rec, err := mapItem(it, c.Language, genericCover)
			if err != nil {
				outcomes = append(outcomes, metadata.Failure(index, err))
				continue
			}
			outcomes = append(outcomes, metadata.Success(index, rec))
		}
	}

	records := metadata.Aggregate(outcomes)
	for _, rec := range records {
		p.cache.Remember(rec)
	}

	slog.Info("Search completed",
		"provider", ProviderID,
		"query", query,
		"locale", locale,
		"records", len(records))

	return records
}

func (p *Provider) fetchCatalog(ctx context.Context, c catalog, query string) ([]item, error) {
	link := searchURL(p.searchURL, p.ttbKey, c.Target, query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", metadata.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP %d: %s", metadata.ErrSourceUnavailable, resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	// output=js bodies may end with a stray ';'
	body = []byte(strings.TrimRight(strings.TrimSpace(string(body)), ";"))

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %w", metadata.ErrSourceUnavailable, err)
	}
	if parsed.ErrorCode != 0 {
		return nil, fmt.Errorf("%w: API error %d: %s", metadata.ErrSourceUnavailable, parsed.ErrorCode, parsed.ErrorMessage)
	}

	return parsed.Items, nil
}

const ratingDivisor = 2

func mapItem(it item, language, genericCover string) (metadata.Record, error) {
	id := it.ItemID.String()

	cover := genericCover
	if it.Cover != "" {
		cover = strings.Replace(it.Cover, "coversum", "cover500", 1)
	}

	var series string
	if it.SeriesInfo != nil {
		series = it.SeriesInfo.SeriesName
	}

	return metadata.NewBuilder(id, Source).
		Title(it.Title).
		Authors(metadata.SplitList(it.Author)...).
		Description(it.Description).
		Publisher(it.Publisher).
		PublishedDate(it.PubDate).
		Rating(it.CustomerReviewRank / ratingDivisor).
		Series(series, 1).
		Tags(metadata.SplitList(it.CategoryName)...).
		Identifier(metadata.IdentifierISBN, it.ISBN13).
		Cover(cover).
		Languages(language).
		URL(bookURL + id).
		Build()
}

var _ metadata.Provider = (*Provider)(nil)
