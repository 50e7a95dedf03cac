package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", UserRequired(), func(c *gin.Context) {
		c.String(http.StatusOK, GetUserID(c))
	})
	return r
}

func TestUserRequired(t *testing.T) {
	r := newEngine()
	id := "3f2b5c1e-8d4a-4b7e-9c3a-1f6e2d8b7a90"

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"Valid", id, http.StatusOK, id},
		{"UpperCaseNormalized", strings.ToUpper(id), http.StatusOK, id},
		{"Missing", "", http.StatusBadRequest, "missing"},
		{"NotUUID", "42", http.StatusBadRequest, "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set(UserIDHeader, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

func TestGetUserIDEmpty(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, "", GetUserID(c))

	SetUserID(c, "abc")
	assert.Equal(t, "abc", GetUserID(c))
}
