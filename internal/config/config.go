package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Paths   PathsConfig   `mapstructure:"paths" yaml:"paths"`
	Camera  CameraConfig  `mapstructure:"camera" yaml:"camera"`
	Encoder EncoderConfig `mapstructure:"encoder" yaml:"encoder"`
	Session SessionConfig `mapstructure:"session" yaml:"session"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	System  SystemConfig  `mapstructure:"system" yaml:"system"`
}

type PathsConfig struct {
	Icons      string `mapstructure:"icons" yaml:"icons"`
	Background string `mapstructure:"background" yaml:"background"` // relative names resolve inside Icons
	Settings   string `mapstructure:"settings" yaml:"settings"`
	Output     string `mapstructure:"output" yaml:"output"`
}

type CameraConfig struct {
	Backend    string   `mapstructure:"backend" yaml:"backend"` // "fswebcam", "libcamera"
	Command    string   `mapstructure:"command" yaml:"command"` // empty picks the backend's binary
	Device     string   `mapstructure:"device" yaml:"device"`
	Resolution string   `mapstructure:"resolution" yaml:"resolution"`
	ExtraArgs  []string `mapstructure:"extra_args" yaml:"extra_args"`
	TimeoutSec int      `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

type EncoderConfig struct {
	Command    string   `mapstructure:"command" yaml:"command"`
	FPS        int      `mapstructure:"fps" yaml:"fps"`
	Resolution string   `mapstructure:"resolution" yaml:"resolution"`
	Codec      string   `mapstructure:"codec" yaml:"codec"`
	OutputName string   `mapstructure:"output_name" yaml:"output_name"`
	ExtraArgs  []string `mapstructure:"extra_args" yaml:"extra_args"`
}

type SessionConfig struct {
	SettlingMs   int    `mapstructure:"settling_ms" yaml:"settling_ms"`
	EncodeOnStop bool   `mapstructure:"encode_on_stop" yaml:"encode_on_stop"`
	FramePattern string `mapstructure:"frame_pattern" yaml:"frame_pattern"`
}

type DisplayConfig struct {
	Drivers     []string `mapstructure:"drivers" yaml:"drivers"` // tried in order
	Framebuffer string   `mapstructure:"framebuffer" yaml:"framebuffer"`
	TouchDevice string   `mapstructure:"touch_device" yaml:"touch_device"` // empty scans evdev devices
	Width       int      `mapstructure:"width" yaml:"width"`
	Height      int      `mapstructure:"height" yaml:"height"`
	SwapXY      bool     `mapstructure:"swap_xy" yaml:"swap_xy"`
	InvertX     bool     `mapstructure:"invert_x" yaml:"invert_x"`
	InvertY     bool     `mapstructure:"invert_y" yaml:"invert_y"`
	MaxFPS      int      `mapstructure:"max_fps" yaml:"max_fps"` // 0 free-runs
	SplashMs    int      `mapstructure:"splash_ms" yaml:"splash_ms"`
	Snapshot    string   `mapstructure:"snapshot" yaml:"snapshot"` // headless only
}

type SystemConfig struct {
	ShutdownCommand []string `mapstructure:"shutdown_command" yaml:"shutdown_command"`
}

var defaultConfig = Config{
	Paths: PathsConfig{
		Icons:      "~/LapseCapture/icons",
		Background: "LapsePi.png",
		Settings:   "~/.config/lapsecapture/settings.yaml",
		Output:     "~/LapseCapture",
	},
	Camera: CameraConfig{
		Backend:    "fswebcam",
		Device:     "/dev/video0",
		Resolution: "1280x720",
		TimeoutSec: 30,
	},
	Encoder: EncoderConfig{
		Command:    "ffmpeg",
		FPS:        30,
		Resolution: "1280x720",
		Codec:      "libx264",
		OutputName: "timelapse.mp4",
	},
	Session: SessionConfig{
		SettlingMs:   200,
		EncodeOnStop: false,
		FramePattern: "%05d.jpg",
	},
	Display: DisplayConfig{
		Drivers:     []string{"fbdev", "headless"},
		Framebuffer: "/dev/fb1",
		Width:       320,
		Height:      240,
		MaxFPS:      30,
		SplashMs:    2000,
	},
	System: SystemConfig{
		ShutdownCommand: []string{"sudo", "shutdown", "-h", "now"},
	},
}

// Default returns a copy of the built-in configuration
func Default() *Config {
	cfg := defaultConfig
	cfg.Camera.ExtraArgs = append([]string(nil), defaultConfig.Camera.ExtraArgs...)
	cfg.Encoder.ExtraArgs = append([]string(nil), defaultConfig.Encoder.ExtraArgs...)
	cfg.Display.Drivers = append([]string(nil), defaultConfig.Display.Drivers...)
	cfg.System.ShutdownCommand = append([]string(nil), defaultConfig.System.ShutdownCommand...)
	return &cfg
}

// Load reads configFile on top of the defaults. A missing file is not an
// error; environment variables prefixed LAPSECAPTURE_ override both.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("LAPSECAPTURE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
			slog.Debug("Config file not found, using defaults", "file", configFile)
		} else {
			slog.Debug("Loaded config file", "file", v.ConfigFileUsed())
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.Paths.Icons = expandPath(cfg.Paths.Icons)
	cfg.Paths.Settings = expandPath(cfg.Paths.Settings)
	cfg.Paths.Output = expandPath(cfg.Paths.Output)
	cfg.Paths.Background = expandPath(cfg.Paths.Background)
	cfg.Display.Snapshot = expandPath(cfg.Display.Snapshot)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := defaultConfig

	v.SetDefault("paths.icons", d.Paths.Icons)
	v.SetDefault("paths.background", d.Paths.Background)
	v.SetDefault("paths.settings", d.Paths.Settings)
	v.SetDefault("paths.output", d.Paths.Output)

	v.SetDefault("camera.backend", d.Camera.Backend)
	v.SetDefault("camera.command", d.Camera.Command)
	v.SetDefault("camera.device", d.Camera.Device)
	v.SetDefault("camera.resolution", d.Camera.Resolution)
	v.SetDefault("camera.extra_args", d.Camera.ExtraArgs)
	v.SetDefault("camera.timeout_sec", d.Camera.TimeoutSec)

	v.SetDefault("encoder.command", d.Encoder.Command)
	v.SetDefault("encoder.fps", d.Encoder.FPS)
	v.SetDefault("encoder.resolution", d.Encoder.Resolution)
	v.SetDefault("encoder.codec", d.Encoder.Codec)
	v.SetDefault("encoder.output_name", d.Encoder.OutputName)
	v.SetDefault("encoder.extra_args", d.Encoder.ExtraArgs)

	v.SetDefault("session.settling_ms", d.Session.SettlingMs)
	v.SetDefault("session.encode_on_stop", d.Session.EncodeOnStop)
	v.SetDefault("session.frame_pattern", d.Session.FramePattern)

	v.SetDefault("display.drivers", d.Display.Drivers)
	v.SetDefault("display.framebuffer", d.Display.Framebuffer)
	v.SetDefault("display.touch_device", d.Display.TouchDevice)
	v.SetDefault("display.width", d.Display.Width)
	v.SetDefault("display.height", d.Display.Height)
	v.SetDefault("display.swap_xy", d.Display.SwapXY)
	v.SetDefault("display.invert_x", d.Display.InvertX)
	v.SetDefault("display.invert_y", d.Display.InvertY)
	v.SetDefault("display.max_fps", d.Display.MaxFPS)
	v.SetDefault("display.splash_ms", d.Display.SplashMs)
	v.SetDefault("display.snapshot", d.Display.Snapshot)

	v.SetDefault("system.shutdown_command", d.System.ShutdownCommand)
}

// BackgroundPath resolves the splash/background image location
func (c *Config) BackgroundPath() string {
	if c.Paths.Background == "" || filepath.IsAbs(c.Paths.Background) {
		return c.Paths.Background
	}
	return filepath.Join(c.Paths.Icons, c.Paths.Background)
}

// WriteFile stores the configuration as YAML, creating the directory if needed
func (c *Config) WriteFile(path string) error {
	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
