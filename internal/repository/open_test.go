package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Static(t *testing.T) {
	repo, err := Open(context.Background(), OpenConfig{Source: SourceStatic})
	require.NoError(t, err)
	defer repo.Close()

	stores, err := repo.Stores(context.Background())
	require.NoError(t, err)
	assert.Len(t, stores, len(DefaultFixture()))

	_, isWriter := repo.(CatalogWriter)
	assert.False(t, isWriter, "static catalog must be read-only")
}

func TestOpen_SQLiteRunsMigrations(t *testing.T) {
	ctx := context.Background()
	repo, err := Open(ctx, OpenConfig{
		Source:      SourceSQLite,
		DBPath:      filepath.Join(t.TempDir(), "catalog.db"),
		Credentials: Credentials{MigrationsDirPath: "./migrations"},
	})
	require.NoError(t, err)
	defer repo.Close()

	writer, ok := repo.(CatalogWriter)
	require.True(t, ok)
	_, err = writer.ReplaceCatalog(ctx, DefaultFixture())
	require.NoError(t, err)

	names, err := repo.Suggest(ctx, "b", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"bananas", "bread"}, names)
}

func TestOpen_UnknownSource(t *testing.T) {
	_, err := Open(context.Background(), OpenConfig{Source: "csv"})

	assert.ErrorIs(t, err, ErrUnknownSource)
}
