package aladin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/lysyi3m/aladin-meta/app/metadata"
)

// oneOrMany decodes either a single JSON value or an array of them.
type oneOrMany[T any] []T

func (o *oneOrMany[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*o = nil
		return nil
	}
	if data[0] == '[' {
		var many []T
		if err := json.Unmarshal(data, &many); err != nil {
			return err
		}
		*o = many
		return nil
	}
	var one T
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*o = []T{one}
	return nil
}

// entity is a schema.org Thing that may also appear as a bare string.
type entity struct {
	Name string
}

func (e *entity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &e.Name)
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	e.Name = obj.Name
	return nil
}

type workExample struct {
	DatePublished string `json:"datePublished"`
	ISBN          string `json:"isbn"`
}

type aggregateRating struct {
	RatingValue json.RawMessage `json:"ratingValue"`
}

// productData is the subset of the product ld+json block we map.
type productData struct {
	Name            string                 `json:"name"`
	Author          oneOrMany[entity]      `json:"author"`
	Publisher       oneOrMany[entity]      `json:"publisher"`
	WorkExample     oneOrMany[workExample] `json:"workExample"`
	Genre           oneOrMany[string]      `json:"genre"`
	Image           oneOrMany[string]      `json:"image"`
	Description     string                 `json:"description"`
	AggregateRating *aggregateRating       `json:"aggregateRating"`
}

// parseProductData decodes the first application/ld+json block of a page.
func parseProductData(doc *goquery.Document) (*productData, error) {
	script := doc.Find(`script[type="application/ld+json"]`).First()
	if script.Length() == 0 {
		return nil, metadata.ErrNoStructuredData
	}

	raw := strings.TrimSpace(script.Text())
	if raw == "" {
		return nil, fmt.Errorf("%w: empty ld+json block", metadata.ErrNoStructuredData)
	}

	var data productData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("%w: %w", metadata.ErrNoStructuredData, err)
	}
	return &data, nil
}

func (d *productData) title() string {
	return strings.ReplaceAll(d.Name, " (Paperback)", "")
}

func (d *productData) authors() []string {
	var out []string
	for _, a := range d.Author {
		out = append(out, metadata.SplitList(a.Name)...)
	}
	return out
}

func (d *productData) publisher() string {
	if len(d.Publisher) == 0 {
		return ""
	}
	return d.Publisher[0].Name
}

func (d *productData) firstWork() workExample {
	if len(d.WorkExample) == 0 {
		return workExample{}
	}
	return d.WorkExample[0]
}

func (d *productData) genres() []string {
	var out []string
	for _, g := range d.Genre {
		out = append(out, metadata.SplitList(g)...)
	}
	return out
}

func (d *productData) image() string {
	if len(d.Image) == 0 {
		return ""
	}
	return d.Image[0]
}

// rating maps the 0-10 site rating to the record scale. Missing or
// malformed values yield 0.
func (d *productData) rating() float64 {
	if d.AggregateRating == nil {
		return 0
	}
	return parseRating(d.AggregateRating.RatingValue)
}

const ratingDivisor = 2

func parseRating(raw json.RawMessage) float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}

	var value float64
	if err := json.Unmarshal(raw, &value); err == nil {
		return value / ratingDivisor
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return 0
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0
	}
	return value / ratingDivisor
}
