package resource

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"portfolio-admin/internal/auth"
	"portfolio-admin/internal/content"
	"portfolio-admin/internal/domain/pages"
	"portfolio-admin/internal/domain/performances"
	"portfolio-admin/internal/infra/store"
	"portfolio-admin/internal/infra/store/storetest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := storetest.Open(t)

	perfSvc := content.NewService[performances.Performance, *performances.Performance](
		store.NewRepo[performances.Performance](db, "performance", true, "sort_order ASC, date DESC"),
		nil,
		content.Options{What: "Performance"},
	)
	pageSvc := content.NewService[pages.Page, *pages.Page](
		store.NewRepo[pages.Page](db, "page", true, "sort_order ASC, title ASC"),
		nil,
		content.Options{What: "Page"},
	)
	perfH := NewHandler(perfSvc, "performances", 1<<20)
	pageH := NewHandler(pageSvc, "pages", 1<<20)

	r := gin.New()
	r.GET("/public/performances", perfH.PublicList)
	r.GET("/public/performances/:slug", perfH.PublicGet)

	authed := r.Group("/", func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			id := &auth.Identity{Subject: "1", Email: "editor@example.com", Role: "editor"}
			c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), id))
		}
		c.Next()
	})
	authed.GET("/performances", perfH.List)
	authed.POST("/performances", perfH.Create)
	authed.GET("/performances/:id", perfH.Get)
	authed.PUT("/performances/:id", perfH.Update)
	authed.DELETE("/performances/:id", perfH.Delete)
	authed.POST("/pages", pageH.Create)
	authed.PUT("/pages/:id", pageH.Update)
	return r
}

func call(t *testing.T, r *gin.Engine, method, path, body string, signedIn bool) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if signedIn {
		req.Header.Set("Authorization", "Bearer test")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w, out
}

func TestPerformanceLifecycle(t *testing.T) {
	r := newRouter(t)

	w, out := call(t, r, http.MethodPost, "/performances", `{"title":"Night Piece","venue":"Hall 2","status":"published","version":7,"id":"chosen"}`, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "night-piece", out["slug"])
	assert.EqualValues(t, 1, out["version"])
	assert.NotEqual(t, "chosen", out["id"])
	id := out["id"].(string)

	w, out = call(t, r, http.MethodGet, "/performances", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, out["performances"], 1)

	w, out = call(t, r, http.MethodGet, "/public/performances/night-piece", "", false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Hall 2", out["venue"])

	w, out = call(t, r, http.MethodPut, "/performances/"+id, `{"status":"draft","venue":"Hall 3"}`, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Hall 3", out["venue"])
	assert.EqualValues(t, 2, out["version"])

	w, out = call(t, r, http.MethodGet, "/public/performances/night-piece", "", false)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", out["code"])

	_, out = call(t, r, http.MethodGet, "/public/performances", "", false)
	assert.Empty(t, out["performances"])

	w, _ = call(t, r, http.MethodDelete, "/performances/"+id, "", true)
	require.Equal(t, http.StatusOK, w.Code)

	w, out = call(t, r, http.MethodGet, "/performances/"+id, "", true)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", out["code"])
}

func TestResourceRejectsBadInput(t *testing.T) {
	r := newRouter(t)

	w, out := call(t, r, http.MethodPost, "/performances", `{"title":"Odd","status":"bogus"}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", out["code"])

	w, out = call(t, r, http.MethodPost, "/pages", `{"status":"draft"}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "REQUIRED_FIELD", out["code"])

	w, out = call(t, r, http.MethodPost, "/pages", `{"title":"About"}`, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", out["code"])

	w, out = call(t, r, http.MethodPost, "/pages", `{"title":"About","content":"<p>Hi</p><script>x()</script>"}`, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "<p>Hi</p>", out["content"])
	id := out["id"].(string)

	w, out = call(t, r, http.MethodPut, "/pages/"+id, `{"status":"bogus"}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", out["code"])
	assert.Equal(t, "status", out["field"])

	w, out = call(t, r, http.MethodPut, "/pages/"+id, `{"version":5,"title":"Stale"}`, true)
	assert.Equal(t, "UPDATE_FAILED", out["code"])
	assert.NotEqual(t, http.StatusOK, w.Code)

	w, out = call(t, r, http.MethodPut, "/performances/not-a-uuid", `{"title":"Gone"}`, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", out["code"])
}
