package works

import (
	"encoding/json"
	"net/http"

	"portfolio-admin/internal/api/apiutil"
	"portfolio-admin/internal/content"
	"portfolio-admin/internal/curation"
	"portfolio-admin/internal/domain/works"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	artworks       *content.Service[works.Artwork, *works.Artwork]
	curation       *curation.Service
	maxUploadBytes int64
}

func NewHandler(artworks *content.Service[works.Artwork, *works.Artwork], cur *curation.Service, maxUploadBytes int64) *Handler {
	apiutil.RegisterValidators()
	return &Handler{artworks: artworks, curation: cur, maxUploadBytes: maxUploadBytes}
}

// ---------- artworks

func (h *Handler) ListArtworks(c *gin.Context) {
	list, err := h.artworks.List(c.Request.Context(), apiutil.IncludeDrafts(c, true))
	if err != nil {
		apiutil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"artworks": list})
}

func (h *Handler) GetArtwork(c *gin.Context) {
	a, err := h.artworks.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		apiutil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *Handler) CreateArtwork(c *gin.Context) {
	var req CreateArtworkRequest
	up, done, err := apiutil.ReadBody(c, &req, h.maxUploadBytes)
	defer done()
	if err != nil {
		apiutil.BindError(c, err)
		return
	}

	a, err := h.artworks.Create(c.Request.Context(), req.toModel(), up)
	if err != nil {
		apiutil.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *Handler) UpdateArtwork(c *gin.Context) {
	var patch map[string]json.RawMessage
	up, done, err := apiutil.ReadBody(c, &patch, h.maxUploadBytes)
	defer done()
	if err != nil {
		apiutil.BindError(c, err)
		return
	}

	a, err := h.artworks.Update(c.Request.Context(), c.Param("id"), patch, up)
	if err != nil {
		apiutil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *Handler) DeleteArtwork(c *gin.Context) {
	if err := h.artworks.Delete(c.Request.Context(), c.Param("id")); err != nil {
		apiutil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Artwork deleted"})
}

// ---------- public

func (h *Handler) PublicArtworks(c *gin.Context) {
	list, err := h.artworks.List(c.Request.Context(), false)
	if err != nil {
		apiutil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"artworks": list})
}

func (h *Handler) PublicArtwork(c *gin.Context) {
	a, err := h.artworks.Published(c.Request.Context(), c.Param("slug"))
	if err != nil {
		apiutil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *Handler) PublicCollections(c *gin.Context) {
	list, err := h.curation.Collections(c.Request.Context(), false)
	if err != nil {
		apiutil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"collections": list})
}

func (h *Handler) PublicExhibitions(c *gin.Context) {
	list, err := h.curation.Exhibitions(c.Request.Context(), false)
	if err != nil {
		apiutil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exhibitions": list})
}
