package tokens

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissing(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), ".tokens"))
	require.ErrorIs(t, err, ErrNotExist)
	require.NotNil(t, s)
	assert.Zero(t, s.Len())
	assert.False(t, s.Changed())
}

func TestLoadCorrupt(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantLine int
	}{
		{name: "no separator", content: "testlandia:abc\ngarbage\n", wantLine: 2},
		{name: "invalid nation", content: "Test Landia:abc\n", wantLine: 1},
		{name: "empty token", content: "testlandia:\n", wantLine: 1},
		{name: "json", content: `{"testlandia": "abc"}`, wantLine: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ".tokens")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0600))

			s, err := Load(path)
			require.NotNil(t, s)
			assert.Zero(t, s.Len())

			var corrupt *CorruptError
			require.True(t, errors.As(err, &corrupt), "got %v", err)
			assert.Equal(t, tt.wantLine, corrupt.Line)
			assert.False(t, errors.Is(err, ErrNotExist))
		})
	}
}

func TestLoadParsesRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".tokens")
	content := "AGENT:Testlandia https://example.com\n\n  testlandia : abc123 \nthe_grand_duchy:def:456\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Testlandia https://example.com", s.Agent())
	assert.Equal(t, []string{"testlandia", "the_grand_duchy"}, s.Nations())

	token, ok := s.Get("the_grand_duchy")
	require.True(t, ok)
	assert.Equal(t, "def:456", token)

	// whitespace differences alone do not count as a change
	assert.False(t, s.Changed())
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".tokens")

	s := New()
	s.SetAgent("Testlandia admin@example.com")
	s.Set("testlandia", "abc123")
	s.Set("maxtopia", "zzz")
	s.Set("a_nation", "tok")
	require.True(t, s.Changed())
	require.NoError(t, s.Save(path))
	assert.False(t, s.Changed())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s.Nations(), loaded.Nations())
	assert.Equal(t, s.Agent(), loaded.Agent())
	for _, n := range s.Nations() {
		want, _ := s.Get(n)
		got, ok := loaded.Get(n)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}

	require.NoError(t, loaded.Save(path))
	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, loaded.Nations(), again.Nations())
}

func TestSetDelete(t *testing.T) {
	s := New()
	s.Set("a", "1")
	s.Set("b", "2")
	s.Set("a", "3")

	assert.Equal(t, []string{"a", "b"}, s.Nations())
	token, _ := s.Get("a")
	assert.Equal(t, "3", token)

	assert.True(t, s.Delete("a"))
	assert.False(t, s.Delete("a"))
	assert.Equal(t, []string{"b"}, s.Nations())
	assert.Equal(t, 1, s.Len())
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".tokens")

	s := New()
	s.Set("testlandia", "abc123")
	require.NoError(t, s.Save(path))
	s.Set("testlandia", "def456")
	require.NoError(t, s.Save(path))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".tokens", entries[0].Name())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "testlandia:def456\n", string(data))
}

func TestSaveIfChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".tokens")
	require.NoError(t, os.WriteFile(path, []byte("testlandia:abc123\n"), 0600))

	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(path, old, old))

	s, err := Load(path)
	require.NoError(t, err)

	saved, err := s.SaveIfChanged(path)
	require.NoError(t, err)
	assert.False(t, saved)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old), "mtime preserved")

	s.Set("testlandia", "abc123")
	saved, err = s.SaveIfChanged(path)
	require.NoError(t, err)
	assert.False(t, saved, "same token is not a change")

	s.Set("maxtopia", "zzz")
	saved, err = s.SaveIfChanged(path)
	require.NoError(t, err)
	assert.True(t, saved)
}

func TestSaveMissingDirectory(t *testing.T) {
	s := New()
	s.Set("testlandia", "abc123")
	err := s.Save(filepath.Join(t.TempDir(), "missing", ".tokens"))
	assert.Error(t, err)
}

func TestSetRejectsInvalidRecords(t *testing.T) {
	tests := []struct {
		name   string
		nation string
		token  string
	}{
		{name: "invalid nation", nation: "test.landia", token: "abc"},
		{name: "empty nation", nation: "  ", token: "abc"},
		{name: "empty token", nation: "testlandia", token: " "},
		{name: "newline in token", nation: "testlandia", token: "abc\nmaxtopia:stolen"},
		{name: "carriage return in token", nation: "testlandia", token: "abc\rdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			err := s.Set(tt.nation, tt.token)
			require.ErrorIs(t, err, ErrInvalidRecord)
			assert.Zero(t, s.Len())
			assert.False(t, s.Changed())
		})
	}
}

func TestSetNormalizesNation(t *testing.T) {
	s := New()
	require.NoError(t, s.Set("The Grand  Duchy", " abc123 "))

	assert.Equal(t, []string{"the_grand_duchy"}, s.Nations())
	token, ok := s.Get("the_grand_duchy")
	require.True(t, ok)
	assert.Equal(t, "abc123", token)
}

func TestRoundTripMultilineAgent(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".tokens")

	s := New()
	s.SetAgent("Testlandia\nadmin@example.com\r\n")
	require.NoError(t, s.Set("testlandia", "abc123"))
	require.NoError(t, s.Set("maxtopia", "zzz"))
	require.NoError(t, s.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Testlandia admin@example.com", loaded.Agent())
	assert.Equal(t, []string{"testlandia", "maxtopia"}, loaded.Nations())
	assert.False(t, loaded.Changed())
}
