package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	appErrors "github.com/noah-isme/hiring-pipeline-api/pkg/errors"
)

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, "hiring", nil)
	ctx := context.Background()

	var dest map[string]int
	assert.ErrorIs(t, repo.Get(ctx, "report:funnel", &dest), appErrors.ErrCacheMiss)
	assert.NoError(t, repo.Set(ctx, "report:funnel", map[string]int{"a": 1}, time.Minute))

	n, err := repo.DeleteByPattern(ctx, "report:*")
	assert.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, repo.Ping(ctx))
	assert.NoError(t, repo.Close())
}

func TestCacheRepositoryKeyNamespace(t *testing.T) {
	assert.Equal(t, "hiring:report:x", NewCacheRepository(nil, "hiring", nil).key("report:x"))
	assert.Equal(t, "report:x", NewCacheRepository(nil, "", nil).key("report:x"))
}
