package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sanitizeRouter() (*gin.Engine, *map[string]interface{}) {
	gin.SetMode(gin.TestMode)
	var captured map[string]interface{}
	r := gin.New()
	r.Use(SanitizeAndCleanInputMiddleware())
	r.POST("/echo", func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		_ = json.Unmarshal(body, &captured)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r, &captured
}

func postJSON(r *gin.Engine, payload string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSanitizeStripsMarkupFromPlainFields(t *testing.T) {
	r, captured := sanitizeRouter()

	w := postJSON(r, `{"title":"<script>alert(1)</script>Pump"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Pump", (*captured)["title"])
}

func TestSanitizeKeepsRichTextInDescription(t *testing.T) {
	r, captured := sanitizeRouter()

	w := postJSON(r, `{"description":"<p>Full <strong>program</strong></p><script>x()</script>"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<p>Full <strong>program</strong></p>", (*captured)["description"])
}

func TestSanitizeRejectsMalformedJSON(t *testing.T) {
	r, _ := sanitizeRouter()

	w := postJSON(r, `{"title": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSanitizeSkipsNonJSONBodies(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var got []byte
	r := gin.New()
	r.Use(SanitizeAndCleanInputMiddleware())
	r.POST("/binary", func(c *gin.Context) {
		got, _ = io.ReadAll(c.Request.Body)
		c.Status(http.StatusOK)
	})

	raw := []byte{0x00, 0x01, 0x3c, 0x73}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/binary", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/octet-stream")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, raw, got)
}
