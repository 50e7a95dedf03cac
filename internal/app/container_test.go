package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/shareit-backend/internal/auth"
	"github.com/nekogravitycat/shareit-backend/internal/db"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/clock"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/ratelimit"
	userHttp "github.com/nekogravitycat/shareit-backend/internal/user/http"
)

var epoch = time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

type testApp struct {
	router *gin.Engine
	clock  *clock.Manual
}

func newTestApp(t *testing.T, limiter ratelimit.Limiter) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	database, err := db.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, database.Migrate(ctx))

	clk := clock.NewManual(epoch)
	container := NewContainer(Config{
		DB:      database,
		Limiter: limiter,
		Clock:   clk,
	})
	return &testApp{router: container.Router, clock: clk}
}

func (a *testApp) executeRequest(method, path string, body any, userID string) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req, _ := http.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(auth.UserIDHeader, userID)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) createTestUser(t *testing.T, name string) userHttp.UserResponse {
	t.Helper()
	w := a.executeRequest("POST", "/v1/users", userHttp.CreateUserRequest{Name: name, Email: name + "@share.it"}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp userHttp.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
