package prefs

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/lysyi3m/aladin-meta/app/metadata"
)

// StoreName keys the preference document in the repository.
const StoreName = "Aladin_co_kr"

type Prefs struct {
	GenreMappings  map[string][]string `json:"genreMappings" yaml:"genreMappings"`
	CategoryPrefix string              `json:"categoryPrefix" yaml:"categoryPrefix"`
	ConvertTag     bool                `json:"convertTag" yaml:"convertTag"`
	GetCategory    bool                `json:"getCategory" yaml:"getCategory"`
	SmallCover     bool                `json:"smallCover" yaml:"smallCover"`
	LargeCover     bool                `json:"largeCover" yaml:"largeCover"`
	GetAllAuthors  bool                `json:"getAllAuthors" yaml:"getAllAuthors"`
	AppendTOC      bool                `json:"appendTOC" yaml:"appendTOC"`
	CommentsSuffix string              `json:"commentsSuffix" yaml:"commentsSuffix"`
	MaxDownloads   int                 `json:"maxDownloads" yaml:"maxDownloads"`
}

// overlay mirrors Prefs with optional fields so stored documents and seed
// files only replace the keys they actually contain.
type overlay struct {
	GenreMappings  map[string][]string `json:"genreMappings" yaml:"genreMappings"`
	CategoryPrefix *string             `json:"categoryPrefix" yaml:"categoryPrefix"`
	ConvertTag     *bool               `json:"convertTag" yaml:"convertTag"`
	GetCategory    *bool               `json:"getCategory" yaml:"getCategory"`
	SmallCover     *bool               `json:"smallCover" yaml:"smallCover"`
	LargeCover     *bool               `json:"largeCover" yaml:"largeCover"`
	GetAllAuthors  *bool               `json:"getAllAuthors" yaml:"getAllAuthors"`
	AppendTOC      *bool               `json:"appendTOC" yaml:"appendTOC"`
	CommentsSuffix *string             `json:"commentsSuffix" yaml:"commentsSuffix"`
	MaxDownloads   *int                `json:"maxDownloads" yaml:"maxDownloads"`
}

func (o overlay) applyTo(p Prefs) Prefs {
	if o.GenreMappings != nil {
		p.GenreMappings = cloneMappings(o.GenreMappings)
	}
	if o.CategoryPrefix != nil {
		p.CategoryPrefix = *o.CategoryPrefix
	}
	if o.ConvertTag != nil {
		p.ConvertTag = *o.ConvertTag
	}
	if o.GetCategory != nil {
		p.GetCategory = *o.GetCategory
	}
	if o.SmallCover != nil {
		p.SmallCover = *o.SmallCover
	}
	if o.LargeCover != nil {
		p.LargeCover = *o.LargeCover
	}
	if o.GetAllAuthors != nil {
		p.GetAllAuthors = *o.GetAllAuthors
	}
	if o.AppendTOC != nil {
		p.AppendTOC = *o.AppendTOC
	}
	if o.CommentsSuffix != nil {
		p.CommentsSuffix = *o.CommentsSuffix
	}
	if o.MaxDownloads != nil {
		p.MaxDownloads = *o.MaxDownloads
	}
	return p
}

func (p Prefs) Clone() Prefs {
	p.GenreMappings = cloneMappings(p.GenreMappings)
	return p
}

func cloneMappings(m map[string][]string) map[string][]string {
	out := make(map[string][]string, len(m))
	for k, v := range m {
		out[k] = slices.Clone(v)
	}
	return out
}

// CoverSize picks the cover rewrite. SmallCover wins over LargeCover.
func (p Prefs) CoverSize() metadata.CoverSize {
	switch {
	case p.SmallCover:
		return metadata.CoverSmall
	case p.LargeCover:
		return metadata.CoverLarge
	}
	return metadata.CoverAsIs
}

// ApplyJSON returns a copy of p with the keys present in data replaced.
func (p Prefs) ApplyJSON(data []byte) (Prefs, error) {
	var o overlay
	if err := json.Unmarshal(data, &o); err != nil {
		return Prefs{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return o.applyTo(p.Clone()), nil
}
