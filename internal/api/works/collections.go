package works

import (
	"net/http"

	"portfolio-admin/internal/api/apiutil"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListCollections(c *gin.Context) {
	list, err := h.curation.Collections(c.Request.Context(), apiutil.IncludeDrafts(c, true))
	if err != nil {
		apiutil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"collections": list})
}

// ListSeries returns collection names for autocomplete.
func (h *Handler) ListSeries(c *gin.Context) {
	names, err := h.curation.ArtworkSeries(c.Request.Context())
	if err != nil {
		apiutil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": names})
}

func (h *Handler) AddToCollection(c *gin.Context) {
	var req CollectionArtworksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiutil.BindError(c, err)
		return
	}

	n, err := h.curation.UpdateArtworksCollection(c.Request.Context(), req.IDs, req.Name)
	if err != nil {
		apiutil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}

func (h *Handler) RenameCollection(c *gin.Context) {
	var req RenameCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiutil.BindError(c, err)
		return
	}

	n, err := h.curation.RenameCollection(c.Request.Context(), req.OldName, req.NewName)
	if err != nil {
		apiutil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}

func (h *Handler) RemoveFromCollection(c *gin.Context) {
	var req ArtworkIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiutil.BindError(c, err)
		return
	}

	n, err := h.curation.RemoveArtworksFromCollection(c.Request.Context(), req.IDs)
	if err != nil {
		apiutil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}

func (h *Handler) DeleteCollection(c *gin.Context) {
	n, err := h.curation.DeleteCollection(c.Request.Context(), c.Param("name"))
	if err != nil {
		apiutil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}
