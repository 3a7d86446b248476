package tokens

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateLegacy(t *testing.T) {
	dir := t.TempDir()
	legacy := filepath.Join(dir, "nsping.json")
	content := `{"testlandia": "old", "maxtopia": "m1", "Bad Name!": "x", "AGENT": "Maxtopia admin"}`
	require.NoError(t, os.WriteFile(legacy, []byte(content), 0600))

	s := New()
	s.Set("testlandia", "new")

	n, err := MigrateLegacy(legacy, s)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "Maxtopia admin", s.Agent())

	token, _ := s.Get("testlandia")
	assert.Equal(t, "new", token, "existing entries win")
	token, ok := s.Get("maxtopia")
	require.True(t, ok)
	assert.Equal(t, "m1", token)
	assert.Equal(t, 2, s.Len())
}

func TestMigrateLegacyKeepsFileLoadable(t *testing.T) {
	dir := t.TempDir()
	legacy := filepath.Join(dir, "nsping.json")
	content := `{"testlandia": "abc\nmaxtopia:stolen", "maxtopia": "m1", "AGENT": "Maxtopia\nadmin"}`
	require.NoError(t, os.WriteFile(legacy, []byte(content), 0600))

	s := New()
	n, err := MigrateLegacy(legacy, s)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	path := filepath.Join(dir, ".tokens")
	require.NoError(t, s.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Maxtopia admin", loaded.Agent())
	assert.Equal(t, []string{"maxtopia"}, loaded.Nations())
}

func TestMigrateLegacyMissing(t *testing.T) {
	s := New()
	n, err := MigrateLegacy(filepath.Join(t.TempDir(), "nsping.json"), s)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMigrateLegacyInvalid(t *testing.T) {
	legacy := filepath.Join(t.TempDir(), "nsping.json")
	require.NoError(t, os.WriteFile(legacy, []byte("{"), 0600))

	_, err := MigrateLegacy(legacy, New())
	assert.Error(t, err)
}
