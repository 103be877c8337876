package config

import "flag"

// Flags are the command line overrides. Zero values leave the config untouched.
type Flags struct {
	config      *string
	writeConfig *string
	scene       *string
	snapshot    *string
	headless    *bool
	debug       *bool
	frames      *uint64
	width       *int
	height      *int
}

// RegisterFlags defines the engine flags on fs. Pass flag.CommandLine from main.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		config:      fs.String("config", "", "Path to config file"),
		writeConfig: fs.String("write-config", "", "Write the effective config to this file and exit"),
		scene:       fs.String("scene", "", "Path to scene file"),
		snapshot:    fs.String("snapshot", "", "Write the last headless frame to this PNG file"),
		headless:    fs.Bool("headless", false, "Run without a window"),
		debug:       fs.Bool("debug", false, "Enable debug logging"),
		frames:      fs.Uint64("frames", 0, "Stop after this many frames"),
		width:       fs.Int("width", 0, "Viewport width"),
		height:      fs.Int("height", 0, "Viewport height"),
	}
}

// ConfigPath returns the explicit config path if provided via -config.
func (f *Flags) ConfigPath() string {
	return *f.config
}

// WriteConfigPath returns where -write-config asked the effective config to be saved.
func (f *Flags) WriteConfigPath() string {
	return *f.writeConfig
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if *f.debug {
		cfg.Logging.Level = "debug"
	}
	if *f.scene != "" {
		cfg.Scene.Path = *f.scene
	}
	if *f.snapshot != "" {
		cfg.Renderer.Snapshot = *f.snapshot
	}
	if *f.headless {
		cfg.Application.Headless = true
	}
	if *f.frames > 0 {
		cfg.Application.MaxFrames = *f.frames
	}
	if *f.width > 0 {
		cfg.Application.Width = *f.width
	}
	if *f.height > 0 {
		cfg.Application.Height = *f.height
	}
}
