package pixwin

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// GraphicsConfig holds the context hints applied at subsystem init.
type GraphicsConfig struct {
	ContextVersionMajor int  `toml:"context_version_major"`
	ContextVersionMinor int  `toml:"context_version_minor"`
	ForwardCompatible   bool `toml:"forward_compatible"`
	SwapInterval        int  `toml:"swap_interval"`
	// Visible creates windows shown; doc/gen turns it off for offscreen captures.
	Visible bool `toml:"visible"`
}

// DefaultsConfig holds per-window defaults.
type DefaultsConfig struct {
	ClearColor  [3]uint8    `toml:"clear_color"`
	PixelFormat PixelFormat `toml:"pixel_format"`
}

// LogConfig selects the default logger level.
type LogConfig struct {
	Level string `toml:"level"`
}

// Config is the full library configuration, typically loaded from pixwin.toml:
//
//	[graphics]
//	context_version_major = 4
//	context_version_minor = 1
//	forward_compatible = true
//	swap_interval = 1
//	visible = true
//
//	[defaults]
//	clear_color = [80, 80, 80]
//	pixel_format = "rgba"
//
//	[log]
//	level = "info"
type Config struct {
	Graphics GraphicsConfig `toml:"graphics"`
	Defaults DefaultsConfig `toml:"defaults"`
	Log      LogConfig      `toml:"log"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Graphics: GraphicsConfig{
			ContextVersionMajor: 4,
			ContextVersionMinor: 1,
			ForwardCompatible:   true,
			SwapInterval:        1,
			Visible:             true,
		},
		Defaults: DefaultsConfig{
			ClearColor:  [3]uint8{DefaultClearColor.R, DefaultClearColor.G, DefaultClearColor.B},
			PixelFormat: FormatRGBA,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ParseConfig decodes TOML on top of DefaultConfig, so omitted keys keep
// their defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if _, err := cfg.LogLevel(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadConfig reads a TOML config file. A missing file yields DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return DefaultConfig(), fmt.Errorf("failed to read %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LogLevel parses Log.Level. An empty level means info.
func (c Config) LogLevel() (slog.Level, error) {
	if c.Log.Level == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return level, nil
}

// ClearColor returns the default clear color with full opacity.
func (c Config) ClearColor() Color {
	return RGB(c.Defaults.ClearColor[0], c.Defaults.ClearColor[1], c.Defaults.ClearColor[2])
}
