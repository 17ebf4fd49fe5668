package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/community-service/internal/config"
	"github.com/spec-kit/community-service/internal/persistence"
)

func TestNewPostgres_WithoutDSN(t *testing.T) {
	ctx := context.Background()

	pg, err := persistence.NewPostgres(ctx, config.PostgresConfig{}, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, pg)

	assert.Nil(t, pg.PoolHandle())
	assert.Error(t, pg.Ping(ctx))
	assert.NotPanics(t, pg.Close)
}

func TestRunMigrations_WithoutPool(t *testing.T) {
	err := persistence.RunMigrations(context.Background(), nil, zap.NewNop())
	assert.NoError(t, err)
}

func TestRedis_NilClient(t *testing.T) {
	r := &persistence.Redis{}

	assert.Error(t, r.Ping(context.Background()))
	assert.NotPanics(t, r.Close)
}
