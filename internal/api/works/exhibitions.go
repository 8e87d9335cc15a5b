package works

import (
	"net/http"

	"portfolio-admin/internal/api/apiutil"
	"portfolio-admin/internal/curation"

	"github.com/gin-gonic/gin"
)

// respondBulk answers 207 when some artworks could not be written, so clients notice partial
// success without parsing the body.
func respondBulk(c *gin.Context, res curation.BulkResult, err error) {
	if err != nil {
		apiutil.Error(c, err)
		return
	}
	status := http.StatusOK
	if res.Partial() {
		status = http.StatusMultiStatus
	}
	c.JSON(status, res)
}

func (h *Handler) ListExhibitions(c *gin.Context) {
	list, err := h.curation.Exhibitions(c.Request.Context(), apiutil.IncludeDrafts(c, true))
	if err != nil {
		apiutil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exhibitions": list})
}

func (h *Handler) LookupExhibition(c *gin.Context) {
	var req ExhibitionKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiutil.BindError(c, err)
		return
	}

	ex, err := h.curation.Exhibition(c.Request.Context(), req.Key, apiutil.IncludeDrafts(c, true))
	if err != nil {
		apiutil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, ex)
}

func (h *Handler) AddExhibition(c *gin.Context) {
	var req AddExhibitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiutil.BindError(c, err)
		return
	}
	res, err := h.curation.AddExhibitionToArtworks(c.Request.Context(), req.IDs, req.Entry)
	respondBulk(c, res, err)
}

func (h *Handler) UpdateExhibition(c *gin.Context) {
	var req UpdateExhibitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiutil.BindError(c, err)
		return
	}
	res, err := h.curation.UpdateExhibition(c.Request.Context(), req.Key, req.Entry)
	respondBulk(c, res, err)
}

func (h *Handler) SplitExhibition(c *gin.Context) {
	var req SplitExhibitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiutil.BindError(c, err)
		return
	}
	res, err := h.curation.SplitExhibition(c.Request.Context(), req.Key, req.IDs, req.Entry)
	respondBulk(c, res, err)
}

func (h *Handler) DeleteExhibition(c *gin.Context) {
	var req ExhibitionKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiutil.BindError(c, err)
		return
	}
	res, err := h.curation.DeleteExhibition(c.Request.Context(), req.Key)
	respondBulk(c, res, err)
}

func (h *Handler) RemoveFromExhibition(c *gin.Context) {
	var req RemoveFromExhibitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiutil.BindError(c, err)
		return
	}
	res, err := h.curation.RemoveArtworksFromExhibition(c.Request.Context(), req.IDs, req.Key)
	respondBulk(c, res, err)
}
