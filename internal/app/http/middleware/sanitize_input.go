package middleware

import (
	"bytes"
	"encoding/json"
	"html"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// richTextKeys hold HTML that is kept, minus anything unsafe.
var richTextKeys = map[string]bool{"content": true}

// secretKeys are compared or hashed, never rendered.
var secretKeys = map[string]bool{"password": true, "oldPassword": true, "newPassword": true}

// SanitizeAndCleanInputMiddleware strips markup from every string of a JSON body. Rich-text
// fields keep safe HTML instead.
func SanitizeAndCleanInputMiddleware() gin.HandlerFunc {
	strict := bluemonday.StrictPolicy()
	ugc := bluemonday.UGCPolicy()

	return func(c *gin.Context) {
		// Only for JSON requests
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}
		if !strings.HasPrefix(c.ContentType(), "application/json") {
			c.Next()
			return
		}

		buf, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid body", "code": "VALIDATION_ERROR"})
			return
		}
		if len(bytes.TrimSpace(buf)) == 0 {
			c.Request.Body = io.NopCloser(bytes.NewReader(buf))
			c.Next()
			return
		}

		dec := json.NewDecoder(bytes.NewReader(buf))
		dec.UseNumber()
		var body any
		if err := dec.Decode(&body); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON", "code": "VALIDATION_ERROR"})
			return
		}

		body = clean(body, "", strict, ugc)

		newBody, _ := json.Marshal(body)
		c.Request.Body = io.NopCloser(bytes.NewReader(newBody))
		c.Request.ContentLength = int64(len(newBody))

		c.Next()
	}
}

func clean(v any, key string, strict, ugc *bluemonday.Policy) any {
	switch t := v.(type) {
	case string:
		if secretKeys[key] {
			return t
		}
		if richTextKeys[key] {
			return ugc.Sanitize(t)
		}
		// The strict policy escapes what it keeps; plain-text fields are stored unescaped.
		return html.UnescapeString(strict.Sanitize(t))
	case map[string]any:
		for k, inner := range t {
			t[k] = clean(inner, k, strict, ugc)
		}
		return t
	case []any:
		for i, inner := range t {
			t[i] = clean(inner, key, strict, ugc)
		}
		return t
	default:
		return v
	}
}
