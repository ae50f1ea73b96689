package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peruse/term"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "ctrl-q", cfg.Keys.Quit)
	assert.Equal(t, 1, cfg.Input.TimeoutTenths)
	assert.True(t, cfg.View.Banner)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"keys:\n  quit: q\ninput:\n  timeout_tenths: 3\nview:\n  banner: false\n",
	), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "q", cfg.Keys.Quit)
	assert.Equal(t, 3, cfg.Input.TimeoutTenths)
	assert.False(t, cfg.View.Banner)
}

func TestLoadPartialOverrideKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input:\n  timeout_tenths: 5\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ctrl-q", cfg.Keys.Quit)
	assert.Equal(t, 5, cfg.Input.TimeoutTenths)
}

func TestLoadRejectsBadBinding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("keys:\n  quit: ctrl-quit\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input:\n  timeout_tenths: 0\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestParseBinding(t *testing.T) {
	tests := []struct {
		binding string
		want    term.Key
		wantErr bool
	}{
		{"ctrl-q", term.Ctrl('q'), false},
		{"CTRL-Q", term.Ctrl('q'), false},
		{"ctrl-a", term.Ctrl('a'), false},
		{"q", term.Key('q'), false},
		{"Z", term.Key('Z'), false},
		{"ctrl-", 0, true},
		{"ctrl-qq", 0, true},
		{"ctrl-1", 0, true},
		{"", 0, true},
		{"qq", 0, true},
		{" ", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.binding, func(t *testing.T) {
			got, err := ParseBinding(tt.binding)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatch(t *testing.T) {
	assert.True(t, Match(term.Ctrl('q'), "ctrl-q"))
	assert.True(t, Match(term.Key('q'), "q"))
	assert.False(t, Match(term.Key('q'), "ctrl-q"))
	assert.False(t, Match(term.Key('q'), "not-a-binding"))
}
