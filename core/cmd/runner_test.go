package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreconfig "github.com/m3rciful/swapstream/core/config"
	coretelegram "github.com/m3rciful/swapstream/core/telegram"
)

type stubApp struct {
	closed bool
	start  func(context.Context, coretelegram.Runtime) error
}

func (s *stubApp) TelegramRunOptions() (coretelegram.RunOptions, error) {
	return coretelegram.RunOptions{OnStart: s.start}, nil
}

func (s *stubApp) Close() error {
	s.closed = true
	return nil
}

func TestRunWrapsLifecycleHooks(t *testing.T) {
	var started bool
	app := &stubApp{start: func(context.Context, coretelegram.Runtime) error {
		started = true
		return nil
	}}
	var loggerClosed bool

	err := Run(context.Background(), Options{
		Config: &coreconfig.Config{},
		Bootstrap: func(context.Context, *coreconfig.Config) (TelegramApp, error) {
			return app, nil
		},
		ShutdownLogger: func() error { loggerClosed = true; return nil },
		RunTelegram: func(ctx context.Context, opts coretelegram.RunOptions) error {
			if err := opts.OnStart(ctx, coretelegram.Runtime{}); err != nil {
				return err
			}
			return opts.OnStop(ctx, coretelegram.Runtime{})
		},
	})
	require.NoError(t, err)
	assert.True(t, started)
	assert.True(t, app.closed)
	assert.True(t, loggerClosed)
}

func TestRunBootstrapFailure(t *testing.T) {
	err := Run(context.Background(), Options{
		Config: &coreconfig.Config{},
		Bootstrap: func(context.Context, *coreconfig.Config) (TelegramApp, error) {
			return nil, errors.New("no db")
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bootstrap failed")
	assert.Error(t, Run(context.Background(), Options{}))
}
