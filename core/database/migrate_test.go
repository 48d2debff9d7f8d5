package database

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreconfig "github.com/m3rciful/swapstream/core/config"
	"github.com/m3rciful/swapstream/migrations"
)

func TestListMigrationFilesSortsUpOnly(t *testing.T) {
	fsys := fstest.MapFS{
		"000002_b.up.sql":   {Data: []byte("select 2")},
		"000001_a.up.sql":   {Data: []byte("select 1")},
		"000001_a.down.sql": {Data: []byte("select 0")},
		"README.md":         {Data: []byte("x")},
	}
	assert.Equal(t, []string{"000001_a.up.sql", "000002_b.up.sql"}, listMigrationFiles(fsys))
}

func TestEmbeddedMigrationsPresent(t *testing.T) {
	files := listMigrationFiles(migrations.FS)
	require.NotEmpty(t, files)
	assert.Equal(t, uint64(1), parseVersion(files[0]))
}

func TestSelectApplied(t *testing.T) {
	files := []string{"000001_a.up.sql", "000002_b.up.sql", "000003_c.up.sql"}
	assert.Equal(t, []string{"000002_b.up.sql", "000003_c.up.sql"}, selectApplied(files, 1, 3))
	assert.Nil(t, selectApplied(files, 3, 3))
}

func TestURLEscapesCredentials(t *testing.T) {
	cfg := coreconfig.DatabaseConfig{
		Host: "db", Port: "5432", User: "swap", Password: "p@ss word", Name: "swapstream", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://swap:p%40ss%20word@db:5432/swapstream?sslmode=disable", URL(cfg))
	assert.Contains(t, DSN(cfg), "dbname=swapstream")
}
