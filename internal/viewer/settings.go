package viewer

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/braheezy/glviewer/internal/camera"
	"github.com/braheezy/glviewer/internal/logger"
)

// Settings configure the window and the ambient parts of a viewer.
type Settings struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Vsync  bool   `yaml:"vsync"`
	HiDPI  bool   `yaml:"hdpi"`
	Debug  bool   `yaml:"debug"`

	// Camera selects the camera control, "orbit" or "fly".
	Camera   string `yaml:"camera"`
	LogLevel string `yaml:"log_level"`

	// TextOverlay draws the frame statistics in the top left corner.
	TextOverlay bool `yaml:"text_overlay"`

	// ShaderDir overrides the embedded shaders with files on disk, which are
	// reloaded when they change.
	ShaderDir string `yaml:"shader_dir"`
	AssetDir  string `yaml:"asset_dir"`
}

// DefaultSettings returns the settings used when nothing else is configured.
func DefaultSettings() Settings {
	return Settings{
		Title:       "OpenGL Viewer",
		Width:       1280,
		Height:      720,
		Vsync:       true,
		Camera:      camera.KindOrbit,
		LogLevel:    "info",
		TextOverlay: true,
		AssetDir:    "assets",
	}
}

// LoadSettings reads a YAML file on top of base. Keys missing from the file keep
// the value of base.
func LoadSettings(path string, base Settings) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, errors.Wrap(err, "read settings")
	}
	s := base
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// an empty file has no document and leaves base as it is
	if err := dec.Decode(&s); err != nil && err != io.EOF {
		return base, errors.Wrapf(err, "parse settings %s", path)
	}
	return s, s.Validate()
}

// Validate checks the values that would otherwise fail deep inside construction.
func (s Settings) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return errors.Errorf("invalid window size %dx%d", s.Width, s.Height)
	}
	switch s.Camera {
	case "", camera.KindOrbit, camera.KindFly:
	default:
		return errors.Errorf("unknown camera control %q", s.Camera)
	}
	if _, err := logger.ParseLevel(s.LogLevel); err != nil {
		return err
	}
	return nil
}

// Asset resolves a path relative to the asset directory. Absolute paths are kept.
func (s Settings) Asset(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.AssetDir, path)
}
