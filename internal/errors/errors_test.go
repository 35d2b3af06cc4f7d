package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldErrors(t *testing.T) {
	type request struct {
		UserName string `validate:"required"`
		Password string `validate:"min=8"`
	}

	err := validator.New().Struct(request{Password: "short"})
	require.Error(t, err)

	assert.Equal(t, map[string]string{
		"user_name": "required",
		"password":  "min=8",
	}, FieldErrors(err))

	assert.Nil(t, FieldErrors(assert.AnError))
}

func TestRespondWithErrorAborts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	NotFound(c, "")

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, ErrCodeNotFound, body.Code)
	assert.Equal(t, "Resource not found", body.Message)
}
