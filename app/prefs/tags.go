package prefs

import (
	"regexp"
	"strings"
)

var (
	categoryRootPattern = regexp.MustCompile(`^\s*(국내도서|외국도서)\s*>\s*`)
	categorySepPattern  = regexp.MustCompile(`\s*>\s*`)
	authorRolePattern   = regexp.MustCompile(`^(.*?)\s*\(([^()]*)\)\s*$`)
)

// ConvertGenres maps genres through the genre mappings. Lookup ignores case,
// unmapped genres are dropped and each resulting tag appears once.
func (p Prefs) ConvertGenres(genres []string) []string {
	lookup := make(map[string][]string, len(p.GenreMappings))
	for name, tags := range p.GenreMappings {
		lookup[mappingKey(name)] = tags
	}

	var out []string
	seen := make(map[string]bool)
	for _, genre := range genres {
		for _, tag := range lookup[mappingKey(genre)] {
			if seen[tag] {
				continue
			}
			seen[tag] = true
			out = append(out, tag)
		}
	}
	return out
}

// CategoryTag turns a category path such as "국내도서>소설/시/희곡>한국소설"
// into "☞소설/시/희곡.한국소설". Values without a path separator return "".
func (p Prefs) CategoryTag(path string) string {
	path = strings.ReplaceAll(path, "\u00a0", " ")
	if !strings.Contains(path, ">") {
		return ""
	}

	path = categoryRootPattern.ReplaceAllString(path, "")
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}

	return p.CategoryPrefix + strings.Join(categorySepPattern.Split(path, -1), ".")
}

// Tags applies the tag preferences to the genres reported by a source.
func (p Prefs) Tags(genres []string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(tag string) {
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		out = append(out, tag)
	}

	if p.GetCategory {
		for _, genre := range genres {
			add(p.CategoryTag(genre))
		}
	}

	if p.ConvertTag {
		for _, tag := range p.ConvertGenres(genres) {
			add(tag)
		}
		return out
	}

	for _, genre := range genres {
		if p.GetCategory && strings.Contains(genre, ">") {
			continue
		}
		add(strings.TrimSpace(genre))
	}
	return out
}

// FilterAuthors keeps only names sharing the first author's role and strips
// their "(role)" annotations. With GetAllAuthors set, names pass through.
func (p Prefs) FilterAuthors(authors []string) []string {
	if p.GetAllAuthors {
		return authors
	}

	var out []string
	firstRole := ""
	for i, raw := range authors {
		name, role := splitAuthorRole(raw)
		if name == "" {
			continue
		}
		if i == 0 {
			firstRole = role
		}
		if role != "" && role != firstRole {
			continue
		}
		out = append(out, name)
	}
	return out
}

func splitAuthorRole(raw string) (string, string) {
	raw = strings.TrimSpace(raw)
	if m := authorRolePattern.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return raw, ""
}

// Comments appends the configured suffix to a non-empty description.
func (p Prefs) Comments(description string) string {
	if description == "" {
		return ""
	}
	return description + p.CommentsSuffix
}
