package db

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationResultApplied(t *testing.T) {
	assert.False(t, MigrationResult{FromVersion: 3, ToVersion: 3}.Applied())
	assert.True(t, MigrationResult{FromVersion: 0, ToVersion: 3}.Applied())
}

func TestEmbeddedMigrations(t *testing.T) {
	names, err := fs.Glob(migrationsFS, migrationsDir+"/*.sql")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"migrations/00001_create_products.sql",
		"migrations/00002_create_transactions.sql",
		"migrations/00003_create_outbox_messages.sql",
	}, names)
}
