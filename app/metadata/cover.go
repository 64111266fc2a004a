package metadata

import (
	"regexp"
	"strings"
)

var (
	sizedCoverPattern = regexp.MustCompile(`/cover\d*/`)
	missingCoverHints = []string{"noimg", "img_no.jpg"}
)

type CoverSize int

const (
	CoverAsIs CoverSize = iota
	CoverSmall
	CoverLarge
)

// RewriteCover normalizes an Aladin cover URL. Placeholder images become
// genericCover. Small covers use the /cover/ path, large ones /cover500/.
func RewriteCover(raw, genericCover string, size CoverSize) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return genericCover
	}
	for _, hint := range missingCoverHints {
		if strings.Contains(raw, hint) {
			return genericCover
		}
	}

	switch size {
	case CoverSmall:
		return sizedCoverPattern.ReplaceAllString(raw, "/cover/")
	case CoverLarge:
		return strings.Replace(raw, "/cover/", "/cover500/", 1)
	}
	return raw
}
