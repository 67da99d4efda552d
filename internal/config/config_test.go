package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultProfile(), p)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "profile.toml")
	want := &Profile{
		Title:          "picker",
		Multiple:       true,
		Searchable:     true,
		DebounceMillis: 150,
		Options: []OptionEntry{
			{Value: "go", Label: "Go", Group: "Languages"},
			{Value: "zig", Label: "Zig", Group: "Languages", Disabled: true},
		},
	}

	require.NoError(t, Save(want, path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("title = [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadBackfillsEmptyOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.toml")
	require.NoError(t, os.WriteFile(path, []byte(`title = "bare"`), 0644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "bare", p.Title)
	assert.NotEmpty(t, p.Options, "a profile without options gets the defaults")
}
