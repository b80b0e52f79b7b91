package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/hiring-pipeline-api/pkg/errors"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestOKOmitsEmptyMeta(t *testing.T) {
	c, w := newContext()
	OK(c, gin.H{"id": "app-1"}, map[string]interface{}{})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"data":{"id":"app-1"}}`, w.Body.String())
}

func TestErrorUsesTypedStatus(t *testing.T) {
	c, w := newContext()
	Error(c, appErrors.Clone(appErrors.ErrConcurrentModification, "stale"))

	assert.Equal(t, http.StatusConflict, w.Code)
	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "CONCURRENT_MODIFICATION", env.Error.Code)
	assert.Empty(t, c.Errors)
}

func TestErrorRecordsInternalFailures(t *testing.T) {
	c, w := newContext()
	Error(c, errors.New("db down"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Len(t, c.Errors, 1)
}

func TestAttachment(t *testing.T) {
	c, w := newContext()
	Attachment(c, "funnel.csv", "text/csv", []byte("a,b\n"))

	assert.Equal(t, `attachment; filename="funnel.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "a,b\n", w.Body.String())
}
