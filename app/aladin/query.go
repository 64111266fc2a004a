package aladin

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

const (
	DefaultSearchURL   = "https://www.aladin.co.kr/search/wsearchresult.aspx"
	DefaultContentsURL = "http://www.aladin.co.kr/shop/product/getContents.aspx"
)

// Content page names served by getContents.aspx.
const (
	contentsPublisherDesc = "PublisherDesc"
	contentsIntroduce     = "Introduce"
)

// searchURL form-encodes query, so every space becomes a literal '+'.
func searchURL(base, query string) string {
	return fmt.Sprintf("%s?SearchTarget=All&SearchWord=%s", base, url.QueryEscape(query))
}

// contentsURL carries the hour of day as a cache buster, as the site does.
func contentsURL(base, isbn, name string, now time.Time) string {
	return fmt.Sprintf("%s?ISBN=%s&name=%s&type=0&date=%s",
		base, url.QueryEscape(isbn), name, strconv.Itoa(now.Hour()))
}
