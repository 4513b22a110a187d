package middleware

import (
	"bitwise74/auth-api/pkg/security"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestSigner(t *testing.T) *security.Signer {
	t.Helper()

	s, err := security.NewSigner(security.SignerConfig{
		AccessSecret:  "access-test",
		RefreshSecret: "refresh-test",
	})
	require.NoError(t, err)

	return s
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	return body
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(NewRequestIDMiddleware())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("requestID"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Len(t, w.Body.String(), 10)
	assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))
}

func TestRefreshGuard(t *testing.T) {
	s := newTestSigner(t)

	r := gin.New()
	r.Use(NewRequestIDMiddleware())
	r.POST("/refresh", NewRefreshGuard(s), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userID":       c.GetString("userID"),
			"refreshToken": c.GetString("refreshToken"),
		})
	})

	refresh, err := s.SignRefresh(security.Identity{ID: "user123", Email: "a@x.com"})
	require.NoError(t, err)

	access, err := s.SignAccess(security.Identity{ID: "user123", Email: "a@x.com"})
	require.NoError(t, err)

	do := func(auth string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		return w
	}

	t.Run("valid refresh token", func(t *testing.T) {
		w := do("Bearer " + refresh)
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, "user123", body["userID"])
		assert.Equal(t, refresh, body["refreshToken"])
	})

	for name, auth := range map[string]string{
		"no header":     "",
		"wrong scheme":  "Basic " + refresh,
		"empty token":   "Bearer ",
		"access token":  "Bearer " + access,
		"garbage token": "Bearer not.a.jwt",
	} {
		t.Run(name, func(t *testing.T) {
			w := do(auth)
			require.Equal(t, http.StatusForbidden, w.Code)

			body := decodeBody(t, w)
			assert.Equal(t, "accessDenied", body["message"])
			assert.NotEmpty(t, body["requestID"])
		})
	}
}

func TestBodySizeLimiter(t *testing.T) {
	r := gin.New()
	r.POST("/", BodySizeLimiter(16), func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.Error(err)
			return
		}

		c.Status(http.StatusOK)
	})

	t.Run("small body", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("tiny")))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("declared too large", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("a", 64))))
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Equal(t, "bodyTooLarge", decodeBody(t, w)["message"])
	})

	t.Run("undeclared too large", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", io.NopCloser(strings.NewReader(strings.Repeat("a", 64))))
		req.ContentLength = -1

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}
