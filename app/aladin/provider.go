package aladin

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/lysyi3m/aladin-meta/app/metadata"
	"github.com/lysyi3m/aladin-meta/app/prefs"
	"github.com/lysyi3m/aladin-meta/app/tasks"
)

const (
	ProviderID           = "aladin"
	DefaultMaxCandidates = 5
)

var Source = metadata.SourceInfo{
	ID:          ProviderID,
	Description: "Aladin Books",
	Link:        "https://aladin.co.kr/",
}

// PrefsSource supplies the current preferences for each search.
type PrefsSource interface {
	Get() prefs.Prefs
}

type Options struct {
	UserAgent     string
	MaxCandidates int
	SearchURL     string
	ContentsURL   string
	Now           func() time.Time
}

// Provider searches the Aladin web site and resolves each result from its
// product page.
type Provider struct {
	client        *http.Client
	pool          *tasks.Pool
	prefs         PrefsSource
	cache         *metadata.IdentifierCache
	userAgent     string
	maxCandidates int
	searchURL     string
	contentsURL   string
	now           func() time.Time
}

func NewProvider(client *http.Client, pool *tasks.Pool, prefsSource PrefsSource, cache *metadata.IdentifierCache, opts Options) *Provider {
	p := &Provider{
		client:        client,
		pool:          pool,
		prefs:         prefsSource,
		cache:         cache,
		userAgent:     opts.UserAgent,
		maxCandidates: opts.MaxCandidates,
		searchURL:     opts.SearchURL,
		contentsURL:   opts.ContentsURL,
		now:           opts.Now,
	}
	if p.maxCandidates <= 0 {
		p.maxCandidates = DefaultMaxCandidates
	}
	if p.searchURL == "" {
		p.searchURL = DefaultSearchURL
	}
	if p.contentsURL == "" {
		p.contentsURL = DefaultContentsURL
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p
}

func (p *Provider) ID() string {
	return ProviderID
}

// Search returns the resolved records for query in search result order.
// Source failures are logged and yield an empty list.
func (p *Provider) Search(ctx context.Context, query, genericCover, locale string) []metadata.Record {
	query = metadata.NormalizeQuery(query)
	if query == "" {
		return []metadata.Record{}
	}

	current := p.prefs.Get()
	limit := min(p.maxCandidates, current.MaxDownloads)

	link := searchURL(p.searchURL, query)
	doc, err := p.fetchDocument(ctx, link)
	if err != nil {
		slog.Error("Search request failed", "provider", ProviderID, "url", link, "error", err)
		return []metadata.Record{}
	}

	base, err := url.Parse(link)
	if err != nil {
		slog.Error("Invalid search URL", "provider", ProviderID, "url", link, "error", err)
		return []metadata.Record{}
	}

	candidates := ExtractCandidates(doc, base, limit)
	slog.Debug("Extracted candidates", "provider", ProviderID, "query", query, "count", len(candidates))

	results := tasks.Map(ctx, p.pool, tasks.TaskTypeResolveCandidate, candidates,
		func(ctx context.Context, _ int, c metadata.Candidate) metadata.Result {
			rec, err := p.resolve(ctx, c, genericCover, current)
			if err != nil {
				return metadata.Failure(c.Index, fmt.Errorf("%s: %w", c.URL, err))
			}
			return metadata.Success(c.Index, rec)
		})

	records := metadata.Aggregate(results)
	for _, rec := range records {
		p.cache.Remember(rec)
	}

	slog.Info("Search completed",
		"provider", ProviderID,
		"query", query,
		"locale", locale,
		"candidates", len(candidates),
		"records", len(records))

	return records
}

// resolve turns a candidate into a record. Only the product page is
// required; description pages that fail leave their part out.
func (p *Provider) resolve(ctx context.Context, c metadata.Candidate, genericCover string, current prefs.Prefs) (metadata.Record, error) {
	id := itemID(c.URL)
	if id == "" {
		return metadata.Record{}, fmt.Errorf("no ItemId in candidate URL")
	}

	doc, err := p.fetchDocument(ctx, c.URL)
	if err != nil {
		return metadata.Record{}, err
	}

	data, err := parseProductData(doc)
	if err != nil {
		return metadata.Record{}, err
	}

	work := data.firstWork()
	description := data.Description
	if work.ISBN != "" {
		desc := p.fetchContents(ctx, work.ISBN, contentsPublisherDesc, publisherDescription)
		var toc string
		if current.AppendTOC {
			toc = p.fetchContents(ctx, work.ISBN, contentsIntroduce, tableOfContents)
		}
		if joined := JoinDescription(desc, toc); joined != "" {
			description = joined
		}
	}

	return metadata.NewBuilder(id, Source).
		Title(data.title()).
		Authors(current.FilterAuthors(data.authors())...).
		Publisher(data.publisher()).
		PublishedDate(work.DatePublished).
		Tags(current.Tags(data.genres())...).
		Cover(metadata.RewriteCover(data.image(), genericCover, current.CoverSize())).
		Description(current.Comments(description)).
		Rating(data.rating()).
		Languages(metadata.LanguageCode(c.Language)).
		Identifier(metadata.IdentifierISBN, work.ISBN).
		URL(c.URL).
		Build()
}

var _ metadata.Provider = (*Provider)(nil)
