package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealpress/mealpress/utils"
)

func TestSessionLoader(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(SessionLoader())
	r.GET("/", func(ctx *gin.Context) {
		id, ok := CurrentUserID(ctx)
		if !ok {
			ctx.String(http.StatusOK, "anonymous")
			return
		}
		ctx.String(http.StatusOK, "user:%d:%s", id, CurrentUserName(ctx))
	})

	t.Run("no cookie means anonymous", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "anonymous", w.Body.String())
	})

	t.Run("valid cookie resolves the user", func(t *testing.T) {
		token, err := utils.SignSession(7, "Ada")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: token})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "user:7:Ada", w.Body.String())
	})

	t.Run("tampered cookie falls back to anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: "tampered"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "anonymous", w.Body.String())
	})
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	t.Run("generates an id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("honors inbound id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
	})
}
