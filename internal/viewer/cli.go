package viewer

import (
	"os"

	"github.com/spf13/cobra"
)

// Command builds the command line of a demo. The settings passed to run start
// from defaults, then the --config file, then the explicitly set flags.
func Command(use, short string, defaults Settings, run func(Settings) error) *cobra.Command {
	var (
		config string
		flags  = defaults
	)
	cmd := &cobra.Command{
		Use:          use,
		Short:        short,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := defaults
			if config != "" {
				var err error
				if s, err = LoadSettings(config, defaults); err != nil {
					return err
				}
			}
			s = overrideChanged(cmd, s, flags)
			if err := s.Validate(); err != nil {
				return err
			}
			return run(s)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&config, "config", "c", "", "YAML settings file")
	f.IntVar(&flags.Width, "width", defaults.Width, "window width")
	f.IntVar(&flags.Height, "height", defaults.Height, "window height")
	f.BoolVar(&flags.Vsync, "vsync", defaults.Vsync, "synchronize with the display refresh")
	f.BoolVar(&flags.Debug, "debug", defaults.Debug, "request an OpenGL debug context")
	f.StringVar(&flags.LogLevel, "log-level", defaults.LogLevel, "msg, info, warning or error")
	f.StringVar(&flags.ShaderDir, "shader-dir", defaults.ShaderDir, "load and watch shaders from this directory")
	f.StringVar(&flags.AssetDir, "assets", defaults.AssetDir, "asset directory")
	f.StringVar(&flags.Camera, "camera", defaults.Camera, "camera control, orbit or fly")
	return cmd
}

// overrideChanged copies the flags the user set onto s.
func overrideChanged(cmd *cobra.Command, s, flags Settings) Settings {
	changed := cmd.Flags().Changed
	if changed("width") {
		s.Width = flags.Width
	}
	if changed("height") {
		s.Height = flags.Height
	}
	if changed("vsync") {
		s.Vsync = flags.Vsync
	}
	if changed("debug") {
		s.Debug = flags.Debug
	}
	if changed("log-level") {
		s.LogLevel = flags.LogLevel
	}
	if changed("shader-dir") {
		s.ShaderDir = flags.ShaderDir
	}
	if changed("assets") {
		s.AssetDir = flags.AssetDir
	}
	if changed("camera") {
		s.Camera = flags.Camera
	}
	return s
}

// Execute runs cmd with the process arguments and exits non-zero on failure.
func Execute(cmd *cobra.Command) {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
