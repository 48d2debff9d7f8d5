package state

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testSession struct {
	Step string  `json:"step"`
	N    float64 `json:"n"`
}

func TestMemoryStoreRoundTripAndClear(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore[testSession](0)

	_, ok, err := s.Load(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Save(ctx, 1, testSession{Step: "a", N: 2}))
	got, ok, err := s.Load(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, testSession{Step: "a", N: 2}, got)

	_, ok, _ = s.Load(ctx, 2)
	assert.False(t, ok, "users must not share sessions")

	require.NoError(t, s.Clear(ctx, 1))
	_, ok, _ = s.Load(ctx, 1)
	assert.False(t, ok)
}

func TestMemoryStoreExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore[testSession](time.Minute)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Save(ctx, 7, testSession{Step: "x"}))
	now = now.Add(2 * time.Minute)

	_, ok, err := s.Load(ctx, 7)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	s := NewRedisStore[testSession](client, "swap", time.Hour)
	require.NoError(t, s.Save(ctx, 42, testSession{Step: "enter_amount", N: 0.5}))

	assert.True(t, mr.Exists("swap:42"))
	assert.Equal(t, time.Hour, mr.TTL("swap:42"))

	got, ok, err := s.Load(ctx, 42)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "enter_amount", got.Step)

	mr.FastForward(2 * time.Hour)
	_, ok, err = s.Load(ctx, 42)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStoreCorrupt(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, mr.Set("session:1", "{not json"))
	s := NewRedisStore[testSession](client, "", 0)
	_, ok, err := s.Load(ctx, 1)
	assert.False(t, ok)
	assert.True(t, errors.Is(err, ErrCorrupt))
}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestPostgresStoreLoad(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewPostgresStore[testSession](db, time.Hour)
	s.now = func() time.Time { return now }

	mock.ExpectQuery(regexp.QuoteMeta(selectSessionSQL)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"data", "updated_at"}).
			AddRow([]byte(`{"step":"select_to","n":1}`), now.Add(-time.Minute)))

	got, ok, err := s.Load(ctx, 5)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, testSession{Step: "select_to", N: 1}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreLoadMissingAndExpired(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewPostgresStore[testSession](db, time.Hour)
	s.now = func() time.Time { return now }

	mock.ExpectQuery(regexp.QuoteMeta(selectSessionSQL)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"data", "updated_at"}))
	mock.ExpectQuery(regexp.QuoteMeta(selectSessionSQL)).
		WithArgs(int64(6)).
		WillReturnRows(sqlmock.NewRows([]string{"data", "updated_at"}).
			AddRow([]byte(`{}`), now.Add(-2*time.Hour)))

	_, ok, err := s.Load(ctx, 5)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = s.Load(ctx, 6)
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreSaveAndClear(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewPostgresStore[testSession](db, 0)
	s.now = func() time.Time { return now }

	mock.ExpectExec(regexp.QuoteMeta(upsertSessionSQL)).
		WithArgs(int64(9), []byte(`{"step":"enter_wallet","n":3}`), now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(deleteSessionSQL)).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Save(ctx, 9, testSession{Step: "enter_wallet", N: 3}))
	require.NoError(t, s.Clear(ctx, 9))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreWrapsErrors(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	s := NewPostgresStore[testSession](db, 0)

	boom := errors.New("boom")
	mock.ExpectExec(regexp.QuoteMeta(deleteSessionSQL)).WithArgs(int64(1)).WillReturnError(boom)

	err := s.Clear(ctx, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}
