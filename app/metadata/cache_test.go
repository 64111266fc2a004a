package metadata

import (
	"fmt"
	"sync"
	"testing"
)

func TestIdentifierCache(t *testing.T) {
	cache := NewIdentifierCache()

	rec, err := NewBuilder("123", SourceInfo{ID: "aladin"}).
		Title("책").
		Cover("https://image.aladin.co.kr/product/1/cover500/x.jpg").
		Identifier(IdentifierISBN, "9788970122648").
		Build()
	if err != nil {
		t.Fatal(err)
	}
	cache.Remember(rec)

	id, ok := cache.AladinID("9788970122648")
	if !ok || id != "123" {
		t.Errorf("Expected aladin id '123', got '%s' (ok=%v)", id, ok)
	}

	cover, ok := cache.CoverURL("123")
	if !ok || cover != "https://image.aladin.co.kr/product/1/cover500/x.jpg" {
		t.Errorf("Expected cached cover, got '%s' (ok=%v)", cover, ok)
	}

	if _, ok := cache.AladinID("unknown"); ok {
		t.Error("Expected unknown ISBN to miss")
	}
}

func TestIdentifierCacheConcurrent(t *testing.T) {
	cache := NewIdentifierCache()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec, err := NewBuilder(fmt.Sprintf("id-%d", i), SourceInfo{ID: "aladin"}).
				Title("t").
				Cover(fmt.Sprintf("https://example.com/%d.jpg", i)).
				Build()
			if err != nil {
				t.Error(err)
				return
			}
			cache.Remember(rec)
			cache.CoverURL(rec.ID())
		}(i)
	}
	wg.Wait()

	if cache.Len() != 20 {
		t.Errorf("Expected 20 cached covers, got %d", cache.Len())
	}
}

func TestRewriteCover(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		size     CoverSize
		expected string
	}{
		{"as is", "https://image.aladin.co.kr/product/1/2/cover/89701.jpg", CoverAsIs, "https://image.aladin.co.kr/product/1/2/cover/89701.jpg"},
		{"large", "https://image.aladin.co.kr/product/1/2/cover/89701.jpg", CoverLarge, "https://image.aladin.co.kr/product/1/2/cover500/89701.jpg"},
		{"already large", "https://image.aladin.co.kr/product/1/2/cover500/89701.jpg", CoverLarge, "https://image.aladin.co.kr/product/1/2/cover500/89701.jpg"},
		{"small", "https://image.aladin.co.kr/product/1/2/cover500/89701.jpg", CoverSmall, "https://image.aladin.co.kr/product/1/2/cover/89701.jpg"},
		{"placeholder", "https://image.aladin.co.kr/img/noimg_b.gif", CoverLarge, "generic.jpg"},
		{"img_no", "https://image.aladin.co.kr/img/img_no.jpg", CoverSmall, "generic.jpg"},
		{"empty", "", CoverAsIs, "generic.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RewriteCover(tt.raw, "generic.jpg", tt.size); got != tt.expected {
				t.Errorf("Expected '%s', got '%s'", tt.expected, got)
			}
		})
	}
}
