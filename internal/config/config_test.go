package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.False(t, cfg.HighRes())
	assert.Equal(t, 1000, cfg.Width)
	assert.Equal(t, "collage.png", cfg.Output)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "collage.yaml", `
image_dir: /music/covers
width: 640
height: 480
high_res_width: 3000
high_res_height: 3000
highlight_color: "#00FF00"
`)

	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "/music/covers", cfg.ImageDir)
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 480, cfg.Height)
	assert.True(t, cfg.HighRes())
	assert.Equal(t, "#00FF00", cfg.HighlightColor)
	// Untouched keys keep their defaults.
	assert.Equal(t, 90, cfg.Quality)
	require.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := writeFile(t, "collage.yaml", "width: 640\noutput: a.png\n")
	t.Setenv("COLLAGE_WIDTH", "800")
	t.Setenv("COLLAGE_OUTPUT", "b.jpg")

	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, "b.jpg", cfg.Output)
}

func TestLoad_EnvFile(t *testing.T) {
	envFile := writeFile(t, ".env", "COLLAGE_IMAGE_DIR=/from/dotenv\nCOLLAGE_QUALITY=70\n")
	t.Cleanup(func() {
		os.Unsetenv("COLLAGE_IMAGE_DIR")
		os.Unsetenv("COLLAGE_QUALITY")
	})

	cfg, err := Load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, "/from/dotenv", cfg.ImageDir)
	assert.Equal(t, 70, cfg.Quality)
}

func TestLoad_MissingEnvFileIsIgnored(t *testing.T) {
	cfg, err := Load("", filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), "")
	cfgErr, ok := AsError(err)
	require.True(t, ok, "want *Error, got %v", err)
	assert.Equal(t, CodeFileUnreadable, cfgErr.Code)

	bad := writeFile(t, "bad.yaml", "width: [1, 2\n")
	_, err = Load(bad, "")
	cfgErr, ok = AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeFileUnreadable, cfgErr.Code)

	t.Setenv("COLLAGE_HEIGHT", "tall")
	_, err = Load("", "")
	cfgErr, ok = AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidValue, cfgErr.Code)
	assert.Contains(t, cfgErr.Error(), "COLLAGE_HEIGHT")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		code   string
	}{
		{"zero width", func(c *Config) { c.Width = 0 }, CodeInvalidValue},
		{"negative height", func(c *Config) { c.Height = -5 }, CodeInvalidValue},
		{"quality too high", func(c *Config) { c.Quality = 101 }, CodeInvalidValue},
		{"half high res", func(c *Config) { c.HighResWidth = 2000 }, CodeInvalidValue},
		{"high res without output", func(c *Config) {
			c.HighResWidth, c.HighResHeight, c.HighResOutput = 2000, 2000, ""
		}, CodeMissing},
		{"no output", func(c *Config) { c.Output = "" }, CodeMissing},
		{"negative grid lines", func(c *Config) { c.GridLineWidth = -1 }, CodeInvalidValue},
		{"bad highlight", func(c *Config) { c.HighlightColor = "gold" }, CodeInvalidColor},
		{"bad grid color", func(c *Config) { c.GridLineColor = "#12" }, CodeInvalidColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			cfgErr, ok := AsError(cfg.Validate())
			require.True(t, ok)
			assert.Equal(t, tt.code, cfgErr.Code)
			assert.NotEmpty(t, cfgErr.Action)
		})
	}
}

func TestErrMissing(t *testing.T) {
	err := ErrMissing("image_dir", "--dir")
	assert.Equal(t, "Missing required setting image_dir. Pass --dir or set COLLAGE_IMAGE_DIR", err.Error())
}
