package aladin

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lysyi3m/aladin-meta/app/metadata"
	"github.com/lysyi3m/aladin-meta/app/prefs"
	"github.com/lysyi3m/aladin-meta/app/tasks"
)

type staticPrefs struct {
	p prefs.Prefs
}

func (s staticPrefs) Get() prefs.Prefs {
	return s.p.Clone()
}

// plainPrefs disables tag and comment rewriting so records carry the raw
// source values.
func plainPrefs() prefs.Prefs {
	return prefs.Prefs{
		GenreMappings: map[string][]string{},
		AppendTOC:     true,
		GetAllAuthors: true,
		MaxDownloads:  5,
	}
}

type resultEntry struct {
	label string
	href  string
}

func bookEntry(id int) resultEntry {
	return resultEntry{label: "[국내도서]", href: fmt.Sprintf("/shop/wproduct.aspx?ItemId=%d", id)}
}

func resultsPage(entries ...resultEntry) string {
	var sb strings.Builder
	sb.WriteString("<html><body><div id=\"Search3_Result\">")
	for _, e := range entries {
		fmt.Fprintf(&sb, `<div class="ss_book_box">
  <table><tr><td>
    <div class="ss_book_list"><ul><li>
      <span class="tit_category">%s</span>
      <a class="bo3" href="/search/wsearchresult.aspx?AuthorSearch=x">author</a>
      <a class="bo3" href="%s"><b>title</b></a>
    </li></ul></div>
  </td></tr></table>
</div>`, e.label, e.href)
	}
	sb.WriteString("</div></body></html>")
	return sb.String()
}

func productPage(t *testing.T, data map[string]any) string {
	t.Helper()
	encoded, err := json.Marshal(data)
	if err != nil {
		t.Fatal(err)
	}
	return fmt.Sprintf(`<html><head>
<script type="application/ld+json">%s</script>
<script type="application/ld+json">{"@type":"BreadcrumbList"}</script>
</head><body></body></html>`, encoded)
}

func productFields(id int) map[string]any {
	return map[string]any{
		"@type":       "Book",
		"name":        fmt.Sprintf("Book %d (Paperback)", id),
		"author":      map[string]any{"@type": "Person", "name": fmt.Sprintf("Author %d, Translator %d", id, id)},
		"publisher":   map[string]any{"@type": "Organization", "name": "Publisher"},
		"workExample": []any{map[string]any{"datePublished": "2005-05-25", "isbn": fmt.Sprintf("97800000000%02d", id)}},
		"genre":       "국내도서>소설/시/희곡>한국소설, 국내도서>에세이",
		"image":       fmt.Sprintf("https://image.aladin.co.kr/product/%d/cover/%d.jpg", id, id),
		"description": fmt.Sprintf("ld description %d", id),
		"aggregateRating": map[string]any{
			"ratingValue": 8,
		},
	}
}

// fakeSite serves search, product and contents pages for one test.
type fakeSite struct {
	srv *httptest.Server

	mu          sync.Mutex
	results     string
	products    map[string]string
	failing     map[string]int
	delays      map[string]time.Duration
	descs       map[string]string
	tocs        map[string]string
	hits        map[string]int
	searchQuery []string
	userAgents  []string
}

func newFakeSite(t *testing.T) *fakeSite {
	t.Helper()

	f := &fakeSite{
		products: make(map[string]string),
		failing:  make(map[string]int),
		delays:   make(map[string]time.Duration),
		descs:    make(map[string]string),
		tocs:     make(map[string]string),
		hits:     make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/search/wsearchresult.aspx", f.handleSearch)
	mux.HandleFunc("/shop/wproduct.aspx", f.handleProduct)
	mux.HandleFunc("/shop/product/getContents.aspx", f.handleContents)

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeSite) addBooks(t *testing.T, ids ...int) {
	for _, id := range ids {
		f.products[fmt.Sprint(id)] = productPage(t, productFields(id))
	}
}

func (f *fakeSite) hit(key string) {
	f.mu.Lock()
	f.hits[key]++
	f.mu.Unlock()
}

func (f *fakeSite) hitCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[key]
}

func (f *fakeSite) handleSearch(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.searchQuery = append(f.searchQuery, r.URL.RawQuery)
	f.userAgents = append(f.userAgents, r.Header.Get("User-Agent"))
	results := f.results
	f.mu.Unlock()

	f.hit("search")
	if results == "" {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, results)
}

func (f *fakeSite) handleProduct(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("ItemId")
	f.hit("product:" + id)

	if d := f.delays[id]; d > 0 {
		time.Sleep(d)
	}
	if status := f.failing[id]; status != 0 {
		http.Error(w, "failure", status)
		return
	}
	page, ok := f.products[id]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, page)
}

func (f *fakeSite) handleContents(w http.ResponseWriter, r *http.Request) {
	isbn := r.URL.Query().Get("ISBN")
	name := r.URL.Query().Get("name")
	f.hit(name + ":" + isbn)

	var body string
	var ok bool
	switch name {
	case contentsPublisherDesc:
		body, ok = f.descs[isbn]
	case contentsIntroduce:
		body, ok = f.tocs[isbn]
	}
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, body)
}

func (f *fakeSite) provider(p prefs.Prefs) *Provider {
	return NewProvider(f.srv.Client(), tasks.NewPool(5, 5*time.Second), staticPrefs{p: p}, metadata.NewIdentifierCache(), Options{
		UserAgent:   "test-agent",
		SearchURL:   f.srv.URL + "/search/wsearchresult.aspx",
		ContentsURL: f.srv.URL + "/shop/product/getContents.aspx",
		Now:         func() time.Time { return time.Date(2026, 1, 1, 15, 0, 0, 0, time.UTC) },
	})
}

func recordIDs(records []metadata.Record) []string {
	ids := make([]string, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID())
	}
	return ids
}

func (f *fakeSite) searchQueries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.searchQuery)
}

func (f *fakeSite) searchUserAgents() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.userAgents)
}
