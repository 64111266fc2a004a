package metadata

import (
	"encoding/json"
	"maps"
	"slices"
)

// Identifier schemes stored in Record identifiers.
const (
	IdentifierAladin = "aladin.co.kr"
	IdentifierISBN   = "isbn"
)

type SourceInfo struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// Record is a normalized search result. It is built once through Builder
// and never modified afterwards; accessors hand out copies.
type Record struct {
	id            string
	title         string
	authors       []string
	publisher     string
	publishedDate string
	tags          []string
	cover         string
	description   string
	rating        float64
	languages     []string
	series        string
	seriesIndex   float64
	identifiers   map[string]string
	url           string
	source        SourceInfo
}

func (r Record) ID() string               { return r.id }
func (r Record) Title() string            { return r.title }
func (r Record) Authors() []string        { return slices.Clone(r.authors) }
func (r Record) Publisher() string        { return r.publisher }
func (r Record) PublishedDate() string    { return r.publishedDate }
func (r Record) Tags() []string           { return slices.Clone(r.tags) }
func (r Record) Cover() string            { return r.cover }
func (r Record) Description() string      { return r.description }
func (r Record) Rating() float64          { return r.rating }
func (r Record) Languages() []string      { return slices.Clone(r.languages) }
func (r Record) Series() string           { return r.series }
func (r Record) SeriesIndex() float64     { return r.seriesIndex }
func (r Record) URL() string              { return r.url }
func (r Record) Source() SourceInfo       { return r.source }
func (r Record) Identifier(scheme string) string {
	return r.identifiers[scheme]
}

func (r Record) Identifiers() map[string]string {
	return maps.Clone(r.identifiers)
}

type recordJSON struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Authors       []string          `json:"authors"`
	Publisher     string            `json:"publisher"`
	PublishedDate string            `json:"published_date"`
	Tags          []string          `json:"tags"`
	Cover         string            `json:"cover"`
	Description   string            `json:"description"`
	Rating        float64           `json:"rating"`
	Languages     []string          `json:"languages"`
	Series        string            `json:"series,omitempty"`
	SeriesIndex   float64           `json:"series_index,omitempty"`
	Identifiers   map[string]string `json:"identifiers"`
	URL           string            `json:"url"`
	Source        SourceInfo        `json:"source"`
}

func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordJSON{
		ID:            r.id,
		Title:         r.title,
		Authors:       nonNil(r.authors),
		Publisher:     r.publisher,
		PublishedDate: r.publishedDate,
		Tags:          nonNil(r.tags),
		Cover:         r.cover,
		Description:   r.description,
		Rating:        r.rating,
		Languages:     nonNil(r.languages),
		Series:        r.series,
		SeriesIndex:   r.seriesIndex,
		Identifiers:   r.identifiers,
		URL:           r.url,
		Source:        r.source,
	})
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
