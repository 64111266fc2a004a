package api

import (
	"github.com/lysyi3m/aladin-meta/app/metadata"
	"github.com/lysyi3m/aladin-meta/app/prefs"
)

type PrefsService interface {
	Get() prefs.Prefs
	Save(p prefs.Prefs) error
	AddMapping(name string, tags []string) error
	UpdateMapping(name string, newName *string, tags []string) (string, error)
	DeleteMapping(name string) error
}

var _ PrefsService = (*prefs.Service)(nil)

type Handler struct {
	providers       map[string]metadata.Provider
	defaultProvider string
	prefs           PrefsService
	cache           *metadata.IdentifierCache
	version         string
}

type mappingRequest struct {
	Name string   `json:"name" binding:"required"`
	Tags []string `json:"tags"`
}

type mappingUpdateRequest struct {
	Name *string  `json:"name"`
	Tags []string `json:"tags"`
}

type searchResponse struct {
	SearchID string            `json:"search_id"`
	Provider string            `json:"provider"`
	Query    string            `json:"query"`
	Count    int               `json:"count"`
	Records  []metadata.Record `json:"records"`
}
