package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceUnavailable_SetsRetryAfter(t *testing.T) {
	rec := httptest.NewRecorder()
	ServiceUnavailable(rec, "Store unavailable")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "5", rec.Header().Get("Retry-After"))

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "STORE_UNAVAILABLE", body.Error.Code)
}

func TestPartialSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	PartialSuccess(rec, "1 employee failed", []string{"ok"}, map[string]string{"emp-2": "no rate"})

	assert.Equal(t, http.StatusMultiStatus, rec.Code)

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.NotNil(t, body.Data)
	require.NotNil(t, body.Error)
	assert.Equal(t, "PARTIAL_FAILURE", body.Error.Code)
	assert.Equal(t, "no rate", body.Error.Details["emp-2"])
}

func TestCSV(t *testing.T) {
	rec := httptest.NewRecorder()
	CSV(rec, "payroll_2026-02-16_2026-02-22.csv", []byte("a,b\n"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=payroll_2026-02-16_2026-02-22.csv", rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "a,b\n", rec.Body.String())
}
