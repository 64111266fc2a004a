package aladinapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/lysyi3m/aladin-meta/app/metadata"
)

const domesticBody = `{
  "version": "20131101",
  "totalResults": 2,
  "item": [
    {
      "itemId": 123,
      "title": "체 게바라 평전",
      "author": "장 코르미에 (지은이), 김미선 (옮긴이)",
      "pubDate": "2005-05-25",
      "description": "혁명가의 삶",
      "isbn13": "9788939205109",
      "cover": "https://image.aladin.co.kr/product/12/34/coversum/8939205109_1.jpg",
      "categoryName": "국내도서>역사>세계사, 국내도서>인물",
      "publisher": "실천문학사",
      "customerReviewRank": 9,
      "seriesInfo": {"seriesId": 1, "seriesName": "평전 시리즈"}
    },
    {
      "itemId": 124,
      "title": "두번째 책",
      "author": "작가",
      "pubDate": "2005",
      "description": "",
      "isbn13": "",
      "cover": "",
      "categoryName": "",
      "publisher": "출판사",
      "customerReviewRank": 0
    }
  ]
};`

const foreignBody = `{
  "version": "20131101",
  "item": [
    {
      "itemId": "900",
      "title": "Killing Floor",
      "author": "Lee Child",
      "pubDate": "2012-01-01",
      "isbn13": "9780515153651",
      "cover": "https://image.aladin.co.kr/product/9/90/coversum/0515153651_1.jpg",
      "publisher": "Jove",
      "customerReviewRank": 8
    }
  ]
}`

type fakeAPI struct {
	srv *httptest.Server

	mu       sync.Mutex
	bodies   map[string]string
	statuses map[string]int
	queries  []string
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()

	f := &fakeAPI{
		bodies:   map[string]string{"Book": domesticBody, "Foreign": foreignBody},
		statuses: make(map[string]int),
	}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		target := r.URL.Query().Get("SearchTarget")

		f.mu.Lock()
		f.queries = append(f.queries, r.URL.RawQuery)
		status := f.statuses[target]
		body := f.bodies[target]
		f.mu.Unlock()

		if status != 0 {
			http.Error(w, "failure", status)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeAPI) rawQueries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.queries)
}

func (f *fakeAPI) provider(ttbKey string) *Provider {
	return NewProvider(f.srv.Client(), metadata.NewIdentifierCache(), Options{
		TTBKey:    ttbKey,
		SearchURL: f.srv.URL + "/ttb/api/ItemSearch.aspx",
	})
}

func TestSearchMapsItems(t *testing.T) {
	api := newFakeAPI(t)

	records := api.provider("ttbkey").Search(context.Background(), "체 게바라", "generic.jpg", "ko")

	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}

	ids := []string{records[0].ID(), records[1].ID(), records[2].ID()}
	if !slices.Equal(ids, []string{"123", "124", "900"}) {
		t.Errorf("Expected domestic results before foreign ones, got %v", ids)
	}

	rec := records[0]
	if rec.Title() != "체 게바라 평전" {
		t.Errorf("Expected title '체 게바라 평전', got '%s'", rec.Title())
	}
	if !slices.Equal(rec.Authors(), []string{"장 코르미에 (지은이)", "김미선 (옮긴이)"}) {
		t.Errorf("Expected two authors, got %v", rec.Authors())
	}
	if rec.PublishedDate() != "2005-05-25" {
		t.Errorf("Expected date '2005-05-25', got '%s'", rec.PublishedDate())
	}
	if rec.Rating() != 4.5 {
		t.Errorf("Expected rating 4.5, got %v", rec.Rating())
	}
	if rec.Series() != "평전 시리즈" || rec.SeriesIndex() != 1 {
		t.Errorf("Expected series '평전 시리즈' #1, got '%s' #%v", rec.Series(), rec.SeriesIndex())
	}
	if !slices.Equal(rec.Tags(), []string{"국내도서>역사>세계사", "국내도서>인물"}) {
		t.Errorf("Expected category tags, got %v", rec.Tags())
	}
	if rec.Identifier(metadata.IdentifierISBN) != "9788939205109" {
		t.Errorf("Expected isbn, got '%s'", rec.Identifier(metadata.IdentifierISBN))
	}
	if rec.Cover() != "https://image.aladin.co.kr/product/12/34/cover500/8939205109_1.jpg" {
		t.Errorf("Expected cover500 URL, got '%s'", rec.Cover())
	}
	if rec.URL() != "https://www.aladin.co.kr/shop/wproduct.aspx?ItemId=123" {
		t.Errorf("Expected product URL, got '%s'", rec.URL())
	}
	if !slices.Equal(rec.Languages(), []string{"kor"}) {
		t.Errorf("Expected [kor], got %v", rec.Languages())
	}
	if rec.Source().ID != ProviderID {
		t.Errorf("Expected source '%s', got '%s'", ProviderID, rec.Source().ID)
	}

	second := records[1]
	if second.PublishedDate() != "" {
		t.Errorf("Expected invalid date dropped, got '%s'", second.PublishedDate())
	}
	if second.Cover() != "generic.jpg" {
		t.Errorf("Expected generic cover, got '%s'", second.Cover())
	}
	if second.Series() != "" {
		t.Errorf("Expected no series, got '%s'", second.Series())
	}

	if !slices.Equal(records[2].Languages(), []string{"eng"}) {
		t.Errorf("Expected [eng] for foreign item, got %v", records[2].Languages())
	}
}

func TestSearchEncodesTokens(t *testing.T) {
	api := newFakeAPI(t)

	api.provider("my key").Search(context.Background(), "해리 포터 & stone", "", "ko")

	queries := api.rawQueries()
	if len(queries) != 2 {
		t.Fatalf("Expected 2 requests, got %d", len(queries))
	}
	for _, q := range queries {
		if !strings.HasSuffix(q, "Query=%ED%95%B4%EB%A6%AC+%ED%8F%AC%ED%84%B0+%26+stone") {
			t.Errorf("Expected tokens percent-encoded and joined with '+', got '%s'", q)
		}
		if !strings.Contains(q, "ttbkey=my+key") {
			t.Errorf("Expected encoded ttb key, got '%s'", q)
		}
		if !strings.Contains(q, "MaxResults=5") || !strings.Contains(q, "output=js") {
			t.Errorf("Expected fixed API parameters, got '%s'", q)
		}
	}
}

func TestSearchEitherFailureReturnsEmpty(t *testing.T) {
	for _, target := range []string{"Book", "Foreign"} {
		t.Run(target, func(t *testing.T) {
			api := newFakeAPI(t)
			api.statuses[target] = http.StatusBadGateway

			records := api.provider("ttbkey").Search(context.Background(), "q", "", "ko")

			if records == nil || len(records) != 0 {
				t.Errorf("Expected empty non-nil list, got %v", records)
			}
		})
	}
}

func TestSearchRequestsCatalogsInOrder(t *testing.T) {
	api := newFakeAPI(t)

	api.provider("ttbkey").Search(context.Background(), "q", "", "ko")

	queries := api.rawQueries()
	if len(queries) != 2 {
		t.Fatalf("Expected 2 requests, got %d", len(queries))
	}
	if !strings.Contains(queries[0], "SearchTarget=Book") || !strings.Contains(queries[1], "SearchTarget=Foreign") {
		t.Errorf("Expected domestic then foreign request, got %v", queries)
	}
}

func TestSearchStopsAfterDomesticFailure(t *testing.T) {
	api := newFakeAPI(t)
	api.statuses["Book"] = http.StatusBadGateway

	api.provider("ttbkey").Search(context.Background(), "q", "", "ko")

	if queries := api.rawQueries(); len(queries) != 1 {
		t.Errorf("Expected foreign catalog skipped, got %d requests", len(queries))
	}
}

func TestSearchAPIErrorBody(t *testing.T) {
	api := newFakeAPI(t)
	api.bodies["Book"] = `{"errorCode": 100, "errorMessage": "잘못된 TTBKey 입니다."}`

	records := api.provider("bad").Search(context.Background(), "q", "", "ko")
	if len(records) != 0 {
		t.Errorf("Expected no records, got %d", len(records))
	}
}

func TestSearchMalformedBody(t *testing.T) {
	api := newFakeAPI(t)
	api.bodies["Foreign"] = `<html>error</html>`

	records := api.provider("ttbkey").Search(context.Background(), "q", "", "ko")
	if len(records) != 0 {
		t.Errorf("Expected no records, got %d", len(records))
	}
}

func TestSearchWithoutKey(t *testing.T) {
	api := newFakeAPI(t)

	records := api.provider("").Search(context.Background(), "q", "", "ko")

	if len(records) != 0 {
		t.Errorf("Expected no records, got %d", len(records))
	}
	if n := len(api.rawQueries()); n != 0 {
		t.Errorf("Expected no requests, got %d", n)
	}
}

func TestSearchFillsIdentifierCache(t *testing.T) {
	api := newFakeAPI(t)
	provider := api.provider("ttbkey")

	provider.Search(context.Background(), "q", "", "ko")

	if id, ok := provider.cache.AladinID("9780515153651"); !ok || id != "900" {
		t.Errorf("Expected cached id '900', got '%s' (ok=%v)", id, ok)
	}
}

func TestTitleTokens(t *testing.T) {
	tests := []struct {
		query    string
		expected []string
	}{
		{"harry potter", []string{"harry", "potter"}},
		{"  \"quoted\"  (title) ", []string{"quoted", "title"}},
		{"...", nil},
		{"", nil},
	}

	for _, tt := range tests {
		if got := titleTokens(tt.query); !slices.Equal(got, tt.expected) {
			t.Errorf("titleTokens(%q): expected %v, got %v", tt.query, tt.expected, got)
		}
	}
}
