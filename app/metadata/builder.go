package metadata

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
)

// MaxRating is the upper bound of Record ratings.
const MaxRating = 5.0

// Builder accumulates fields for a Record. The zero value is ready to use.
type Builder struct {
	rec Record
}

func NewBuilder(id string, source SourceInfo) *Builder {
	b := &Builder{}
	b.rec.id = strings.TrimSpace(id)
	b.rec.source = source
	return b
}

func (b *Builder) Title(title string) *Builder {
	b.rec.title = strings.TrimSpace(title)
	return b
}

func (b *Builder) Authors(authors ...string) *Builder {
	b.rec.authors = cleanList(authors)
	return b
}

func (b *Builder) Publisher(publisher string) *Builder {
	b.rec.publisher = strings.TrimSpace(publisher)
	return b
}

// PublishedDate keeps the date only when it is a valid YYYY-MM-DD value.
func (b *Builder) PublishedDate(date string) *Builder {
	date = strings.TrimSpace(date)
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		date = ""
	}
	b.rec.publishedDate = date
	return b
}

func (b *Builder) Tags(tags ...string) *Builder {
	b.rec.tags = cleanList(tags)
	return b
}

func (b *Builder) Cover(cover string) *Builder {
	b.rec.cover = strings.TrimSpace(cover)
	return b
}

func (b *Builder) Description(description string) *Builder {
	b.rec.description = description
	return b
}

// Rating is clamped to [0, MaxRating]; NaN becomes zero.
func (b *Builder) Rating(rating float64) *Builder {
	switch {
	case math.IsNaN(rating) || rating < 0:
		rating = 0
	case rating > MaxRating:
		rating = MaxRating
	}
	b.rec.rating = rating
	return b
}

func (b *Builder) Languages(languages ...string) *Builder {
	b.rec.languages = cleanList(languages)
	return b
}

func (b *Builder) Series(name string, index float64) *Builder {
	b.rec.series = strings.TrimSpace(name)
	if b.rec.series == "" {
		index = 0
	}
	b.rec.seriesIndex = index
	return b
}

// Identifier sets one identifier; empty values are ignored.
func (b *Builder) Identifier(scheme, value string) *Builder {
	value = strings.TrimSpace(value)
	if value == "" {
		return b
	}
	if b.rec.identifiers == nil {
		b.rec.identifiers = make(map[string]string)
	}
	b.rec.identifiers[scheme] = value
	return b
}

func (b *Builder) URL(url string) *Builder {
	b.rec.url = strings.TrimSpace(url)
	return b
}

// Build validates the accumulated fields and returns a detached Record.
func (b *Builder) Build() (Record, error) {
	if b.rec.id == "" {
		return Record{}, fmt.Errorf("record id is required")
	}
	if b.rec.title == "" {
		return Record{}, fmt.Errorf("record %s: title is required", b.rec.id)
	}
	if b.rec.source.ID == "" {
		return Record{}, fmt.Errorf("record %s: source id is required", b.rec.id)
	}

	rec := b.rec
	rec.authors = slices.Clone(b.rec.authors)
	rec.tags = slices.Clone(b.rec.tags)
	rec.languages = slices.Clone(b.rec.languages)
	rec.identifiers = map[string]string{IdentifierAladin: rec.id}
	for scheme, value := range b.rec.identifiers {
		if scheme == IdentifierAladin {
			continue
		}
		rec.identifiers[scheme] = value
	}

	return rec, nil
}

// cleanList trims values and drops empty entries and exact duplicates.
func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || slices.Contains(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// SplitList splits a comma separated field into trimmed, non-empty values.
func SplitList(value string) []string {
	return cleanList(strings.Split(value, ","))
}
