package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"sportarea/internal/pkg/jwt"
)

func setupAuthRouter(jwtService *jwt.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWTAuth(jwtService), func(c *gin.Context) {
		userID := c.GetInt64("user_id")
		role := c.GetString("role")
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "role": role})
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_ValidToken(t *testing.T) {
	jwtService := jwt.New("test-secret", time.Hour)
	r := setupAuthRouter(jwtService)

	token, err := jwtService.GenerateToken(7, "user")
	assert.NoError(t, err)

	w := doRequest(r, "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
	assert.Contains(t, w.Body.String(), `"role":"user"`)
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	r := setupAuthRouter(jwt.New("test-secret", time.Hour))

	w := doRequest(r, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_HEADER_MISSING")
}

func TestJWTAuth_WrongFormat(t *testing.T) {
	r := setupAuthRouter(jwt.New("test-secret", time.Hour))

	for _, header := range []string{"token-without-scheme", "Basic abc", "Bearer "} {
		w := doRequest(r, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
		assert.Contains(t, w.Body.String(), "INVALID_AUTH_FORMAT", header)
	}
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	r := setupAuthRouter(jwt.New("test-secret", time.Hour))

	w := doRequest(r, "Bearer not-a-jwt")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
}

func TestJWTAuth_WrongSecret(t *testing.T) {
	other := jwt.New("other-secret", time.Hour)
	token, err := other.GenerateToken(7, "user")
	assert.NoError(t, err)

	r := setupAuthRouter(jwt.New("test-secret", time.Hour))
	w := doRequest(r, "Bearer "+token)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	jwtService := jwt.New("test-secret", -time.Hour)
	token, err := jwtService.GenerateToken(7, "user")
	assert.NoError(t, err)

	r := setupAuthRouter(jwtService)
	w := doRequest(r, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
}
