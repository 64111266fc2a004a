package metadata

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Language hints as they appear on Aladin category labels.
const (
	HintKorean  = "한국어"
	HintEnglish = "영어"
)

var hintTags = map[string]language.Tag{
	HintKorean:  language.Korean,
	HintEnglish: language.English,
	"korean":    language.Korean,
	"english":   language.English,
}

// LanguageCode maps a language hint or a BCP 47 tag to an ISO 639-2/T code.
// Unknown hints yield an empty string.
func LanguageCode(hint string) string {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return ""
	}

	tag, ok := hintTags[strings.ToLower(hint)]
	if !ok {
		parsed, err := language.Parse(hint)
		if err != nil {
			return ""
		}
		tag = parsed
	}

	base, confidence := tag.Base()
	if confidence == language.No {
		return ""
	}
	return base.ISO3()
}

// NormalizeQuery trims the query and converts it to NFC so decomposed
// Hangul typed on some platforms matches the site's index.
func NormalizeQuery(query string) string {
	return norm.NFC.String(strings.TrimSpace(query))
}
