package errors

import (
	"database/sql"
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneMatchesOriginalCode(t *testing.T) {
	err := Clone(ErrInvalidStage, `unknown stage "archived"`)
	assert.True(t, stdErrors.Is(err, ErrInvalidStage))
	assert.False(t, stdErrors.Is(err, ErrInvalidRange))
	assert.Equal(t, `unknown stage "archived"`, err.Error())
	assert.Equal(t, "invalid pipeline stage", ErrInvalidStage.Message)
}

func TestIsThroughFmtWrapping(t *testing.T) {
	wrapped := fmt.Errorf("update stage: %w", ErrConcurrentModification)
	assert.ErrorIs(t, wrapped, ErrConcurrentModification)
	assert.Equal(t, http.StatusConflict, FromError(wrapped).Status)
}

func TestFromErrorDefaultsToInternal(t *testing.T) {
	appErr := FromError(sql.ErrConnDone)
	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.ErrorIs(t, appErr, sql.ErrConnDone)
	assert.Nil(t, FromError(nil))
}
