// Package apiutil holds the request and response plumbing shared by the API handlers.
package apiutil

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"portfolio-admin/internal/apperr"
	"portfolio-admin/internal/content"
	"portfolio-admin/internal/domain/works"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// Error writes err as {"error", "code", "details", "field"} with the status of its kind.
func Error(c *gin.Context, err error) {
	var e *apperr.Error
	if !errors.As(err, &e) {
		e = &apperr.Error{Kind: apperr.KindUnknown, Message: "Something went wrong", Detail: err.Error(), Err: err}
	}
	status := apperr.HTTPStatus(e.Kind)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("code", string(e.Kind)).Str("route", c.FullPath()).Msg("request failed")
	}

	body := gin.H{"error": e.Message, "code": e.Kind}
	if e.Detail != "" {
		body["details"] = e.Detail
	}
	if e.Field != "" {
		body["field"] = e.Field
	}
	c.AbortWithStatusJSON(status, body)
}

// BindError reports a request body that failed to decode or validate, using the same kinds
// the services use for the same mistakes.
func BindError(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		switch fe.Tag() {
		case "required":
			Error(c, apperr.Required(fe.Field()))
		case "slug":
			Error(c, apperr.InvalidFormat(fe.Field(), "Slug may only contain lowercase letters, numbers and single hyphens"))
		default:
			Error(c, &apperr.Error{Kind: apperr.KindValidation, Message: "Invalid value for " + fe.Field(), Field: fe.Field(), Detail: err.Error(), Err: err})
		}
		return
	}
	Error(c, &apperr.Error{Kind: apperr.KindValidation, Message: "Invalid input", Detail: err.Error(), Err: err})
}

var registerOnce sync.Once

// RegisterValidators adds the custom binding tags used by request structs.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "" || works.ValidSlug(s)
		})
	})
}

// IncludeDrafts reads ?includeDrafts=, defaulting to fallback.
func IncludeDrafts(c *gin.Context, fallback bool) bool {
	switch strings.ToLower(c.Query("includeDrafts")) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	}
	return fallback
}

// IsMultipart reports whether the request carries a multipart form.
func IsMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// ReadBody decodes the JSON object of a create or update request into dst. Multipart requests
// carry it in the "data" field next to an optional "file". The returned close func must be
// called once the upload has been consumed.
func ReadBody(c *gin.Context, dst any, maxUploadBytes int64) (*content.Upload, func(), error) {
	noop := func() {}

	if !IsMultipart(c) {
		if err := c.ShouldBindJSON(dst); err != nil {
			return nil, noop, err
		}
		return nil, noop, nil
	}

	if maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes+1<<20)
	}
	if data := c.PostForm("data"); data != "" {
		if err := json.Unmarshal([]byte(data), dst); err != nil {
			return nil, noop, err
		}
	}
	if err := binding.Validator.ValidateStruct(dst); err != nil {
		return nil, noop, err
	}

	fh, err := c.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, err
	}
	return OpenUpload(fh)
}

// OpenUpload opens a multipart file for a content workflow.
func OpenUpload(fh *multipart.FileHeader) (*content.Upload, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}
	up := &content.Upload{Filename: fh.Filename, Size: fh.Size, Body: f}
	return up, func() { _ = f.Close() }, nil
}
