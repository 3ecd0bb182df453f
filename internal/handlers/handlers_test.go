package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/whittakeragency/agency-api/internal/services"
)

func TestRespondError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: quote request 9", services.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: bad status", services.ErrInvalidArgument), http.StatusBadRequest},
		{fmt.Errorf("%w: not yours", services.ErrPermissionDenied), http.StatusForbidden},
		{fmt.Errorf("%w: already worked", services.ErrConflict), http.StatusConflict},
		{fmt.Errorf("%w: taken", services.ErrDuplicate), http.StatusConflict},
		{services.ErrInvalidPassword, http.StatusUnauthorized},
		{fmt.Errorf("database exploded"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		respondError(c, tt.err)
		assert.Equal(t, tt.status, w.Code, "error: %v", tt.err)
	}

	// Internal errors never leak details
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondError(c, fmt.Errorf("pq: connection refused"))
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestPaginated_Envelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	paginated(c, []string{"a", "b"}, 45, 2, 20)

	var body map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.JSONEq(t, `45`, string(body["total"]))
	assert.JSONEq(t, `2`, string(body["page"]))
	assert.JSONEq(t, `20`, string(body["limit"]))
	assert.JSONEq(t, `3`, string(body["pages"]))
}

func TestListQueryFromParams_Clamping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request, _ = http.NewRequest("GET", "/admin/quotes?page=0&limit=9999&search=fox", nil)

	query := listQueryFromParams(c)
	assert.Equal(t, 1, query.Page)
	assert.Equal(t, 20, query.PerPage)
	assert.Equal(t, "fox", query.Search)
}
