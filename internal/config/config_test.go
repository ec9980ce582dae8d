package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/uiregistry/pkg/detect"
	"github.com/matzehuels/uiregistry/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "uiregistry.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "err = %v", err)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
[source]
dir = "src/components"

[detect]
mode = "imports"

[artifact]
url = "redis://localhost:6379/0?key=ui"

[serve]
addr = ":9090"
coalesce = true
read_timeout = "3s"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "src/components", cfg.Source.Dir)
	assert.Equal(t, DefaultSuffix, cfg.Source.Suffix)
	assert.Equal(t, "imports", cfg.Detect.Mode)
	assert.Equal(t, "redis://localhost:6379/0?key=ui", cfg.Artifact.URL)
	assert.Equal(t, ":9090", cfg.Serve.Addr)
	assert.True(t, cfg.Serve.Coalesce)
	assert.True(t, cfg.Serve.Fallback)
	assert.Equal(t, 3*time.Second, cfg.Serve.ReadTimeout.Duration)
	assert.Equal(t, DefaultWriteTimeout, cfg.Serve.WriteTimeout.Duration)

	det, err := cfg.Detector()
	require.NoError(t, err)
	assert.Equal(t, detect.ModeImports, det.Mode())
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", `[source`},
		{"unknown key", "[source]\ndirectory = \"x\""},
		{"bad mode", "[detect]\nmode = \"ast\""},
		{"bad duration", "[serve]\nread_timeout = \"soon\""},
		{"zero timeout", "[serve]\nwrite_timeout = \"0s\""},
		{"empty dir", "[source]\ndir = \"\""},
		{"empty url", "[artifact]\nurl = \"\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "err = %v", err)
		})
	}
}

func TestDurationText(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("1m30s")))
	assert.Equal(t, 90*time.Second, d.Duration)
	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1m30s", string(text))
}
