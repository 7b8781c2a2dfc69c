package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIErrorInterface(t *testing.T) {
	e := New(http.StatusNotFound, "NOT_FOUND", "report not found")
	assert.Equal(t, "report not found", e.Error())
	assert.Equal(t, http.StatusNotFound, e.StatusCode)
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/report", nil)

	WriteError(w, r, InvalidParameter("date", fmt.Errorf("bad date")))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "INVALID_PARAMETER", body.ErrorCode)
	details, ok := body.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "date", details["parameter"])
}

func TestWithTraceIDDoesNotMutate(t *testing.T) {
	base := ErrNotFound
	withTrace := base.WithTraceID("trace-1")
	assert.Equal(t, "trace-1", withTrace.TraceID)
	assert.Empty(t, base.TraceID)
}
