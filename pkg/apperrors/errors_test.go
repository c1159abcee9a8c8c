package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(cause, CodeDatabaseError, "category", "Failed to load", http.StatusInternalServerError)

	assert.Equal(t, "[category:DATABASE_ERROR] Failed to load (connection reset)", err.Error())
	assert.ErrorIs(t, err, cause)

	plain := New(CodeNotFound, "category", "Category not found", http.StatusNotFound)
	assert.Equal(t, "[category:NOT_FOUND] Category not found", plain.Error())
}

func TestAppError_MarshalJSONHidesCause(t *testing.T) {
	err := Wrap(errors.New("secret dsn"), CodeInternalError, "system", "Internal server error", 500).
		WithDetails(map[string]string{"name": "required"})

	raw, mErr := json.Marshal(err)
	require.NoError(t, mErr)
	assert.NotContains(t, string(raw), "secret dsn")
	assert.Contains(t, string(raw), `"details":{"name":"required"}`)
}

func TestWithDetails_DoesNotMutateSentinel(t *testing.T) {
	detailed := ErrNoFieldsToUpdate.WithDetails("x")

	assert.Nil(t, ErrNoFieldsToUpdate.Details)
	assert.Equal(t, "x", detailed.Details)
}

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("app error keeps status and message", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/categories/1", nil)

		HandleError(c, ErrCategoryNotFound)

		assert.Equal(t, http.StatusNotFound, w.Code)
		var body map[string]map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Category not found", body["error"]["message"])
		assert.Equal(t, "NOT_FOUND", body["error"]["code"])
	})

	t.Run("unknown error becomes generic 500", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/categories", nil)

		HandleError(c, errors.New("pq: relation does not exist"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Internal server error")
		assert.NotContains(t, w.Body.String(), "relation does not exist")
	})
}
