package database

import (
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"002_second.sql": {Data: []byte("SELECT 2;")},
		"001_first.sql":  {Data: []byte("SELECT 1;")},
		"README.md":      {Data: []byte("notes")},
		"old/000.sql":    {Data: []byte("SELECT 0;")},
	}

	files, err := migrationFiles(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_first.sql", "002_second.sql"}, files)
}

func TestUpSection(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "NoMarkers", content: "CREATE TABLE a ();", want: "CREATE TABLE a ();"},
		{name: "UpOnly", content: "-- +migrate Up\nCREATE TABLE a ();", want: "CREATE TABLE a ();"},
		{name: "UpAndDown", content: "-- +migrate Up\nCREATE TABLE a ();\n-- +migrate Down\nDROP TABLE a;", want: "CREATE TABLE a ();"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, strings.TrimSpace(upSection(tt.content)))
		})
	}
}

func TestEmbeddedSchema(t *testing.T) {
	sub, err := fs.Sub(migrationFS, "migrations")
	require.NoError(t, err)

	files, err := migrationFiles(sub)
	require.NoError(t, err)
	require.NotEmpty(t, files)

	content, err := fs.ReadFile(sub, files[0])
	require.NoError(t, err)

	up := upSection(string(content))
	assert.Contains(t, up, "transactions_one_pending_per_requester")
	assert.Contains(t, up, "WHERE status = 'pending'")
	assert.NotContains(t, up, "DROP TABLE")
}
