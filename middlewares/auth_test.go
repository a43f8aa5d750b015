package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakery-service/utils"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		email, _ := c.Get("email")
		c.JSON(http.StatusOK, gin.H{"email": email})
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

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	w := doRequest(setupRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	w := doRequest(setupRouter(), "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	w := doRequest(setupRouter(), "Bearer not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	token, err := utils.GenerateToken("jane@example.com")
	require.NoError(t, err)

	w := doRequest(setupRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "jane@example.com")
}
