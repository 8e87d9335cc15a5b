// Package resource serves CRUD routes for the slugged content kinds that have no behavior of
// their own: performances, pages and blog posts.
package resource

import (
	"encoding/json"
	"net/http"

	"portfolio-admin/internal/api/apiutil"
	"portfolio-admin/internal/content"

	"github.com/gin-gonic/gin"
)

type Handler[T any, PT interface {
	*T
	content.Record
}] struct {
	svc            *content.Service[T, PT]
	plural         string
	maxUploadBytes int64
}

// NewHandler wraps svc. plural is the key list responses are returned under.
func NewHandler[T any, PT interface {
	*T
	content.Record
}](svc *content.Service[T, PT], plural string, maxUploadBytes int64) *Handler[T, PT] {
	apiutil.RegisterValidators()
	return &Handler[T, PT]{svc: svc, plural: plural, maxUploadBytes: maxUploadBytes}
}

func (h *Handler[T, PT]) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), apiutil.IncludeDrafts(c, true))
	if err != nil {
		apiutil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{h.plural: list})
}

func (h *Handler[T, PT]) Get(c *gin.Context) {
	rec, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		apiutil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *Handler[T, PT]) Create(c *gin.Context) {
	rec := new(T)
	up, done, err := apiutil.ReadBody(c, rec, h.maxUploadBytes)
	defer done()
	if err != nil {
		apiutil.BindError(c, err)
		return
	}
	resetServerFields(rec)

	created, err := h.svc.Create(c.Request.Context(), rec, up)
	if err != nil {
		apiutil.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler[T, PT]) Update(c *gin.Context) {
	var patch map[string]json.RawMessage
	up, done, err := apiutil.ReadBody(c, &patch, h.maxUploadBytes)
	defer done()
	if err != nil {
		apiutil.BindError(c, err)
		return
	}

	rec, err := h.svc.Update(c.Request.Context(), c.Param("id"), patch, up)
	if err != nil {
		apiutil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *Handler[T, PT]) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		apiutil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

func (h *Handler[T, PT]) PublicList(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), false)
	if err != nil {
		apiutil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{h.plural: list})
}

func (h *Handler[T, PT]) PublicGet(c *gin.Context) {
	rec, err := h.svc.Published(c.Request.Context(), c.Param("slug"))
	if err != nil {
		apiutil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}
