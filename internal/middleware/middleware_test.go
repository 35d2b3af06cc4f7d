package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/services"
)

func newTestRouter(tokens *services.TokenService, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	handlers := append([]gin.HandlerFunc{RequireAuth(tokens)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		actor, _ := GetActor(c)
		c.JSON(http.StatusOK, gin.H{"user_id": actor.UserID, "roles": actor.Roles})
	})
	r.GET("/protected", handlers...)
	return r
}

func doRequest(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set(constants.HeaderAuthorization, authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

func TestRequireAuth(t *testing.T) {
	tokens := services.NewTokenService("secret", time.Minute, time.Hour)
	r := newTestRouter(tokens)

	pair, err := tokens.IssuePair(5, []models.Role{models.RoleDeveloper})
	require.NoError(t, err)

	t.Run("valid access token", func(t *testing.T) {
		w := doRequest(r, constants.BearerPrefix+pair.Access)
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			UserID uint64        `json:"user_id"`
			Roles  []models.Role `json:"roles"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, uint64(5), body.UserID)
		assert.Equal(t, []models.Role{models.RoleDeveloper}, body.Roles)
	})

	t.Run("missing header", func(t *testing.T) {
		w := doRequest(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, apierrors.ErrCodeUnauthorized, errorCode(t, w))
	})

	t.Run("wrong scheme", func(t *testing.T) {
		w := doRequest(r, "Basic dXNlcjpwYXNz")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, apierrors.ErrCodeInvalidToken, errorCode(t, w))
	})

	t.Run("refresh token", func(t *testing.T) {
		w := doRequest(r, constants.BearerPrefix+pair.Refresh)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, apierrors.ErrCodeInvalidToken, errorCode(t, w))
	})

	t.Run("garbage", func(t *testing.T) {
		w := doRequest(r, constants.BearerPrefix+"not.a.jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	tokens := services.NewTokenService("secret", time.Minute, time.Hour)
	r := newTestRouter(tokens, RequireRole(models.RoleProjectManager))

	dev, err := tokens.IssueAccess(1, []models.Role{models.RoleDeveloper})
	require.NoError(t, err)
	pm, err := tokens.IssueAccess(2, []models.Role{models.RoleProjectManager})
	require.NoError(t, err)

	w := doRequest(r, constants.BearerPrefix+dev)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, apierrors.ErrCodeForbidden, errorCode(t, w))

	w = doRequest(r, constants.BearerPrefix+pm)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/tasks/:id", RequireIDParam("task"), func(c *gin.Context) {
		id, ok := GetIDParam(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	tests := []struct {
		path string
		want int
	}{
		{"/tasks/12", http.StatusOK},
		{"/tasks/abc", http.StatusBadRequest},
		{"/tasks/0", http.StatusBadRequest},
		{"/tasks/-1", http.StatusBadRequest},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
		assert.Equal(t, tt.want, w.Code, tt.path)
	}
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	generated := w.Header().Get(constants.HeaderRequestID)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(constants.HeaderRequestID, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(constants.HeaderRequestID))
}
