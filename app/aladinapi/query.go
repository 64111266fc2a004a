package aladinapi

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

const (
	DefaultSearchURL = "https://www.aladin.co.kr/ttb/api/ItemSearch.aspx"
	bookURL          = "https://www.aladin.co.kr/shop/wproduct.aspx?ItemId="
	maxResults       = 5
)

// titleTokens splits a title query into words, trimming punctuation around
// each word.
func titleTokens(query string) []string {
	var tokens []string
	for _, field := range strings.Fields(query) {
		token := strings.TrimFunc(field, func(r rune) bool {
			return unicode.IsPunct(r) && r != '#' && r != '&'
		})
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// encodeQuery percent-encodes each token and joins the tokens with '+'.
func encodeQuery(query string) string {
	tokens := titleTokens(query)
	encoded := make([]string, 0, len(tokens))
	for _, token := range tokens {
		encoded = append(encoded, url.QueryEscape(token))
	}
	return strings.Join(encoded, "+")
}

func searchURL(base, ttbKey, target, query string) string {
	return fmt.Sprintf("%s?ttbkey=%s&MaxResults=%d&start=1&QueryType=Title&SearchTarget=%s&output=js&Version=20131101&Query=%s",
		base, url.QueryEscape(ttbKey), maxResults, target, encodeQuery(query))
}
