package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/kelime/internal/http/middleware"
	"github.com/mrlokans/kelime/internal/readonly"
)

func TestNewRouter_HealthOnlyWithoutStore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(RouterConfig{Version: "1.0.0"})

	w := doJSON(router, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))

	w = doJSON(router, "GET", "/api/words", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNewRouter_ReadOnly(t *testing.T) {
	router, _, cleanup := setupWordsTestRouter(t)
	defer cleanup()

	ro := NewRouter(RouterConfig{
		WordStore: brokenStore{},
		ReadOnly:  readonly.NewMiddleware(true),
	})

	w := doJSON(ro, "POST", "/api/words", map[string]any{"english_word": "hello", "turkish_meanings": []string{"merhaba"}})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "read_only")

	// The same request goes through on a writable router.
	w = doJSON(router, "POST", "/api/words", map[string]any{"english_word": "hello", "turkish_meanings": []string{"merhaba"}})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestNewRouter_CORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(RouterConfig{WordStore: brokenStore{}, CORSAllowOrigins: []string{"*"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/words", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
