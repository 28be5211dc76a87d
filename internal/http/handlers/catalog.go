package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/porsenia/sportreg/internal/cache"
	"github.com/porsenia/sportreg/internal/catalog"
)

// CatalogHandler serves the read-only reference data. Everything here is a
// pure lookup; a miss is a normal 404, never a 500.
type CatalogHandler struct {
	listCache *cache.Cache[gin.H]
}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{
		// the catalog is static; the TTL only bounds memory
		listCache: cache.New[gin.H](5 * time.Minute),
	}
}

func (h *CatalogHandler) ListSports(ctx *gin.Context) {
	const key = "sports:all"

	if payload, ok := h.listCache.Get(key); ok {
		RespondJSONWithETag(ctx, http.StatusOK, payload)
		return
	}

	payload := gin.H{
		"items": catalog.Sports,
		"count": len(catalog.Sports),
	}

	h.listCache.Set(key, payload)

	RespondJSONWithETag(ctx, http.StatusOK, payload)
}

func (h *CatalogHandler) GetSport(ctx *gin.Context) {
	id := ctx.Param("id")

	s, ok := catalog.SportByID(id)

	if !ok {
		RespondNotFound(ctx, "Sport not found")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, s)
}

func (h *CatalogHandler) GetCategory(ctx *gin.Context) {
	id := ctx.Param("id")

	c, ok := catalog.CategoryByID(id)

	if !ok {
		RespondNotFound(ctx, "Category not found")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, gin.H{
		"category":  c,
		"typeLabel": catalog.CategoryTypeLabel(c.Type),
	})
}

// GetParameters returns the effective technical parameter set for a
// (sport, category) pair: sport-level first, category-level after.
func (h *CatalogHandler) GetParameters(ctx *gin.Context) {
	sportID := ctx.Param("id")
	categoryID := ctx.Param("categoryId")

	if _, ok := catalog.SportByID(sportID); !ok {
		RespondNotFound(ctx, "Sport not found")
		return
	}

	params := catalog.TechnicalParameters(sportID, categoryID)

	RespondJSONWithETag(ctx, http.StatusOK, gin.H{
		"items": params,
		"count": len(params),
	})
}

// ListEducationLevels exposes the eligibility tiers with display labels.
func (h *CatalogHandler) ListEducationLevels(ctx *gin.Context) {
	type levelItem struct {
		ID    catalog.EducationLevel `json:"id"`
		Label string                 `json:"label"`
	}

	items := make([]levelItem, 0, len(catalog.EducationLevels))

	for _, l := range catalog.EducationLevels {
		items = append(items, levelItem{ID: l, Label: catalog.EducationLevelLabel(l)})
	}

	RespondJSONWithETag(ctx, http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}
