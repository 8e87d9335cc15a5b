package media

import (
	"encoding/json"
	"net/http"
	"strings"

	"portfolio-admin/internal/api/apiutil"
	"portfolio-admin/internal/apperr"
	"portfolio-admin/internal/content"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	lib            *content.MediaLibrary
	maxUploadBytes int64
}

func NewHandler(lib *content.MediaLibrary, maxUploadBytes int64) *Handler {
	return &Handler{lib: lib, maxUploadBytes: maxUploadBytes}
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.lib.List(c.Request.Context())
	if err != nil {
		apiutil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"media": list})
}

// Upload takes a multipart form with "file" and optional "alt" and "caption".
func (h *Handler) Upload(c *gin.Context) {
	if !apiutil.IsMultipart(c) {
		apiutil.Error(c, apperr.New(apperr.KindValidation, "Expected a multipart form upload"))
		return
	}
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+1<<20)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		apiutil.Error(c, &apperr.Error{Kind: apperr.KindRequiredField, Message: "file is required", Field: "file", Detail: err.Error(), Err: err})
		return
	}
	up, done, err := apiutil.OpenUpload(fh)
	defer done()
	if err != nil {
		apiutil.Error(c, apperr.Wrap(err, apperr.KindCreateFailed, "Could not read uploaded file"))
		return
	}

	m, err := h.lib.Upload(c.Request.Context(), up, optional(c.PostForm("alt")), optional(c.PostForm("caption")))
	if err != nil {
		apiutil.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *Handler) Update(c *gin.Context) {
	var patch map[string]json.RawMessage
	if err := c.ShouldBindJSON(&patch); err != nil {
		apiutil.BindError(c, err)
		return
	}
	m, err := h.lib.UpdateMeta(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		apiutil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.lib.Delete(c.Request.Context(), c.Param("id")); err != nil {
		apiutil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Media deleted"})
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
