package api

import (
	"errors"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lysyi3m/aladin-meta/app/metadata"
	"github.com/lysyi3m/aladin-meta/app/prefs"
)

// NewHandler registers providers by ID. The first provider is used when a
// search names none.
func NewHandler(prefsService PrefsService, cache *metadata.IdentifierCache, version string, providers ...metadata.Provider) *Handler {
	h := &Handler{
		providers: make(map[string]metadata.Provider, len(providers)),
		prefs:     prefsService,
		cache:     cache,
		version:   version,
	}
	for _, p := range providers {
		if h.defaultProvider == "" {
			h.defaultProvider = p.ID()
		}
		h.providers[p.ID()] = p
	}
	return h
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"timestamp":     time.Now().In(time.Local).Format(time.RFC3339),
		"version":       h.version,
		"providers":     slices.Sorted(maps.Keys(h.providers)),
		"cached_covers": h.cache.Len(),
	})
}

func (h *Handler) ListProviders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"providers": slices.Sorted(maps.Keys(h.providers)),
		"default":   h.defaultProvider,
	})
}

func (h *Handler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query parameter 'q'"})
		return
	}

	providerID := c.DefaultQuery("provider", h.defaultProvider)
	provider, ok := h.providers[providerID]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown provider", "provider": providerID})
		return
	}

	searchID := uuid.NewString()
	slog.Debug("Search started", "search_id", searchID, "provider", providerID, "query", query)

	records := provider.Search(c.Request.Context(), query, c.Query("generic_cover"), c.DefaultQuery("locale", "ko"))

	c.JSON(http.StatusOK, searchResponse{
		SearchID: searchID,
		Provider: providerID,
		Query:    query,
		Count:    len(records),
		Records:  records,
	})
}

func (h *Handler) GetCover(c *gin.Context) {
	aladinID := c.Query("aladin_id")
	if isbn := c.Query("isbn"); aladinID == "" && isbn != "" {
		id, ok := h.cache.AladinID(isbn)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "ISBN not found in cache"})
			return
		}
		aladinID = id
	}

	if aladinID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'aladin_id' or 'isbn' parameter"})
		return
	}

	cover, ok := h.cache.CoverURL(aladinID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cover not found in cache"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"aladin_id": aladinID,
		"cover":     cover,
	})
}

func (h *Handler) GetPrefs(c *gin.Context) {
	c.JSON(http.StatusOK, h.prefs.Get())
}

func (h *Handler) PutPrefs(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	updated, err := h.prefs.Get().ApplyJSON(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid preferences", "details": err.Error()})
		return
	}

	if err := h.prefs.Save(updated); err != nil {
		h.writePrefsError(c, err, "save_prefs")
		return
	}

	c.JSON(http.StatusOK, h.prefs.Get())
}

func (h *Handler) AddMapping(c *gin.Context) {
	var req mappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if err := h.prefs.AddMapping(req.Name, req.Tags); err != nil {
		h.writePrefsError(c, err, "add_mapping")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"name": strings.TrimSpace(req.Name),
		"tags": h.prefs.Get().GenreMappings[strings.TrimSpace(req.Name)],
	})
}

func (h *Handler) UpdateMapping(c *gin.Context) {
	name := c.Param("name")

	var req mappingUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	if req.Tags == nil && req.Name == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	name, err := h.prefs.UpdateMapping(name, req.Name, req.Tags)
	if err != nil {
		h.writePrefsError(c, err, "update_mapping")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name": name,
		"tags": h.prefs.Get().GenreMappings[name],
	})
}

func (h *Handler) DeleteMapping(c *gin.Context) {
	if err := h.prefs.DeleteMapping(c.Param("name")); err != nil {
		h.writePrefsError(c, err, "delete_mapping")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writePrefsError(c *gin.Context, err error, operation string) {
	switch {
	case errors.Is(err, prefs.ErrDuplicateMapping):
		status := http.StatusConflict
		if operation == "save_prefs" {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": "Duplicate genre mapping", "details": err.Error()})
	case errors.Is(err, prefs.ErrMappingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Genre mapping not found", "details": err.Error()})
	case errors.Is(err, prefs.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid preferences", "details": err.Error()})
	default:
		slog.Error("Preferences error", "operation", operation, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store preferences"})
	}
}
