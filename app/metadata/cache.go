package metadata

import "sync"

// IdentifierCache remembers ISBN to Aladin id and Aladin id to cover URL
// pairs for records returned by earlier searches. It lives as long as the
// process and is safe for concurrent use.
type IdentifierCache struct {
	mu     sync.RWMutex
	byISBN map[string]string
	covers map[string]string
}

func NewIdentifierCache() *IdentifierCache {
	return &IdentifierCache{
		byISBN: make(map[string]string),
		covers: make(map[string]string),
	}
}

// Remember stores the identifiers and cover of rec.
func (c *IdentifierCache) Remember(rec Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if isbn := rec.Identifier(IdentifierISBN); isbn != "" {
		c.byISBN[isbn] = rec.ID()
	}
	if cover := rec.Cover(); cover != "" {
		c.covers[rec.ID()] = cover
	}
}

func (c *IdentifierCache) AladinID(isbn string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.byISBN[isbn]
	return id, ok
}

func (c *IdentifierCache) CoverURL(aladinID string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cover, ok := c.covers[aladinID]
	return cover, ok
}

func (c *IdentifierCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.covers)
}
