package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fooddash/marketplace/internal/service/models/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	body := map[string]string{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", apperror.NotFound("order 7 not found"), http.StatusNotFound},
		{"forbidden", apperror.Forbidden("not yours"), http.StatusForbidden},
		{"conflict", apperror.Conflict("payment already exists"), http.StatusBadRequest},
		{"invalid", apperror.Invalid("bad quantity"), http.StatusBadRequest},
		{"unavailable", apperror.Unavailable("sold out"), http.StatusBadRequest},
		{"insufficient stock", apperror.InsufficientStock("not enough"), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Error(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.err.Error(), decode(t, rec)["detail"])
		})
	}
}

func TestErrorHidesInternals(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", decode(t, rec)["detail"])
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]int{"id": 7})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":7}`, rec.Body.String())
}
