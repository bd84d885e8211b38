package viewer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, "OpenGL Viewer", s.Title)
	assert.Equal(t, 1280, s.Width)
	assert.Equal(t, 720, s.Height)
	assert.True(t, s.Vsync)
	assert.False(t, s.HiDPI)
	assert.False(t, s.Debug)
	assert.Equal(t, "orbit", s.Camera)
	assert.NoError(t, s.Validate())
}

func TestLoadSettingsKeepsMissingKeys(t *testing.T) {
	path := writeFile(t, t.TempDir(), "viewer.yaml", "width: 800\ncamera: fly\nshader_dir: shaders\n")

	s, err := LoadSettings(path, DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, 800, s.Width)
	assert.Equal(t, 720, s.Height)
	assert.Equal(t, "fly", s.Camera)
	assert.Equal(t, "shaders", s.ShaderDir)
	assert.Equal(t, "OpenGL Viewer", s.Title)
}

func TestLoadSettingsEmptyFile(t *testing.T) {
	base := DefaultSettings()
	base.Width = 640
	for _, content := range []string{"", "# nothing set\n"} {
		path := writeFile(t, t.TempDir(), "viewer.yaml", content)
		s, err := LoadSettings(path, base)
		require.NoError(t, err)
		assert.Equal(t, base, s)
	}
}

func TestLoadSettingsErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name, content, want string
	}{
		{"unknown key", "widht: 800\n", "widht"},
		{"bad size", "width: 0\n", "invalid window size"},
		{"bad camera", "camera: trackball\n", "unknown camera control"},
		{"bad level", "log_level: loud\n", "unknown log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "s.yaml", tt.content)
			_, err := LoadSettings(path, DefaultSettings())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := LoadSettings(filepath.Join(dir, "missing.yaml"), DefaultSettings())
	assert.Error(t, err)
}

func TestSettingsAsset(t *testing.T) {
	s := Settings{AssetDir: "data"}
	assert.Equal(t, filepath.Join("data", "models", "bunny.obj"), s.Asset("models/bunny.obj"))
	abs := filepath.Join(t.TempDir(), "x.png")
	assert.Equal(t, abs, s.Asset(abs))
}

func TestCommandFlagsOverrideConfig(t *testing.T) {
	path := writeFile(t, t.TempDir(), "viewer.yaml", "width: 1000\nheight: 400\nvsync: false\n")
	defaults := DefaultSettings()
	defaults.Title = "Colored Cube"

	var got Settings
	cmd := Command("demo_cube", "cube", defaults, func(s Settings) error {
		got = s
		return nil
	})
	cmd.SetArgs([]string{"--config", path, "--width", "640", "--assets", "elsewhere"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "Colored Cube", got.Title)
	assert.Equal(t, 640, got.Width)
	assert.Equal(t, 400, got.Height)
	assert.False(t, got.Vsync)
	assert.Equal(t, "elsewhere", got.AssetDir)
}

func TestCommandRejectsInvalidFlags(t *testing.T) {
	ran := false
	cmd := Command("demo", "", DefaultSettings(), func(Settings) error {
		ran = true
		return nil
	})
	cmd.SetArgs([]string{"--camera", "trackball"})
	cmd.SilenceErrors = true
	assert.Error(t, cmd.Execute())
	assert.False(t, ran)
}
