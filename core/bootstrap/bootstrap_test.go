package bootstrap

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreconfig "github.com/m3rciful/swapstream/core/config"
)

func noLogger(*coreconfig.Config) error { return nil }

func TestRunMemoryOnlySkipsInfrastructure(t *testing.T) {
	cfg := &coreconfig.Config{Storage: coreconfig.StorageConfig{Sessions: "memory", Orders: "memory"}}
	res, err := Run(context.Background(), Options{
		Config:     cfg,
		LoggerInit: noLogger,
		Connect: func(coreconfig.DatabaseConfig) (*sqlx.DB, error) {
			t.Fatal("unexpected database connect")
			return nil, nil
		},
	})
	require.NoError(t, err)
	assert.Nil(t, res.DB)
	assert.Nil(t, res.Redis)
	assert.NoError(t, res.Close())
}

func TestRunMigratesBeforeConnecting(t *testing.T) {
	cfg := &coreconfig.Config{Storage: coreconfig.StorageConfig{Sessions: "postgres", Orders: "memory"}}
	var order []string
	_, err := Run(context.Background(), Options{
		Config:     cfg,
		LoggerInit: noLogger,
		Migrate: func(coreconfig.DatabaseConfig) error {
			order = append(order, "migrate")
			return errors.New("dirty database")
		},
		Connect: func(coreconfig.DatabaseConfig) (*sqlx.DB, error) {
			order = append(order, "connect")
			return nil, nil
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrations failed")
	assert.Equal(t, []string{"migrate"}, order)
}

func TestRunConnectsRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &coreconfig.Config{
		Storage: coreconfig.StorageConfig{Sessions: "redis", Orders: "memory"},
		Redis:   coreconfig.RedisConfig{Addr: mr.Addr()},
	}
	res, err := Run(context.Background(), Options{Config: cfg, LoggerInit: noLogger})
	require.NoError(t, err)
	require.NotNil(t, res.Redis)
	assert.NoError(t, res.Redis.Ping(context.Background()).Err())
	assert.NoError(t, res.Close())
}

func TestRunRedisFailure(t *testing.T) {
	cfg := &coreconfig.Config{
		Storage: coreconfig.StorageConfig{Sessions: "redis"},
		Redis:   coreconfig.RedisConfig{Addr: "127.0.0.1:1"},
	}
	_, err := Run(context.Background(), Options{
		Config:     cfg,
		LoggerInit: noLogger,
		ConnectRedis: func(context.Context, coreconfig.RedisConfig) (*redis.Client, error) {
			return nil, errors.New("refused")
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis initialization failed")
}
