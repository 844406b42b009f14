package kitchen3d

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultWindowWidth  = 1400
	DefaultWindowHeight = 900
	DefaultWindowTitle  = "Kitchen Planner"

	DefaultAppearance         = AppearFallDown
	DefaultAppearanceDuration = 0.8
)

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type CameraConfig struct {
	Yaw      float32 `toml:"yaw"`
	Pitch    float32 `toml:"pitch"`
	Distance float32 `toml:"distance"`
	FOV      float32 `toml:"fov"`
	Near     float32 `toml:"near"`
	Far      float32 `toml:"far"`
}

// AppearanceConfig is the entry animation given to newly created objects.
type AppearanceConfig struct {
	Mode AppearanceMode `toml:"mode"`
	// Duration in seconds.
	Duration float32 `toml:"duration"`
}

type ImportConfig struct {
	// WatchDir, when set, is watched for new mesh files which are imported
	// automatically.
	WatchDir string `toml:"watch_dir"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Config is the viewer configuration file.
type Config struct {
	Window     WindowConfig     `toml:"window"`
	Camera     CameraConfig     `toml:"camera"`
	Appearance AppearanceConfig `toml:"appearance"`
	Import     ImportConfig     `toml:"import"`
	Log        LogConfig        `toml:"log"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	cam := NewOrbitCamera()
	return &Config{
		Window: WindowConfig{
			Width:  DefaultWindowWidth,
			Height: DefaultWindowHeight,
			Title:  DefaultWindowTitle,
		},
		Camera: CameraConfig{
			Yaw:      cam.Yaw,
			Pitch:    cam.Pitch,
			Distance: cam.Distance,
			FOV:      cam.FOV,
			Near:     cam.Near,
			Far:      cam.Far,
		},
		Appearance: AppearanceConfig{
			Mode:     DefaultAppearance,
			Duration: DefaultAppearanceDuration,
		},
		Log: LogConfig{Level: "info"},
	}
}

// LoadConfig reads a TOML file over the defaults. A missing file is not an
// error. Every invalid value is reported in a single error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("no config file, using defaults", slog.String("path", path))
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config %s: %w", path, err)
	}

	if err := ParseConfig(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes TOML into cfg and validates the result.
func ParseConfig(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var problems []string

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		problems = append(problems, fmt.Sprintf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Camera.Pitch < MinPitch || c.Camera.Pitch > MaxPitch {
		problems = append(problems, fmt.Sprintf("camera.pitch must be within [%v, %v], got %v", MinPitch, MaxPitch, c.Camera.Pitch))
	}
	if c.Camera.Distance < MinDistance || c.Camera.Distance > MaxDistance {
		problems = append(problems, fmt.Sprintf("camera.distance must be within [%v, %v], got %v", MinDistance, MaxDistance, c.Camera.Distance))
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		problems = append(problems, fmt.Sprintf("camera.fov must be within (0, 180), got %v", c.Camera.FOV))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		problems = append(problems, fmt.Sprintf("camera clip planes must satisfy 0 < near < far, got near=%v far=%v", c.Camera.Near, c.Camera.Far))
	}
	if c.Appearance.Duration < 0 {
		problems = append(problems, fmt.Sprintf("appearance.duration must not be negative, got %v", c.Appearance.Duration))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level must be debug, info, warn or error, got %q", l.Level)
	}
	return level, nil
}

// NewCamera returns an orbit camera with the configured view.
func (c CameraConfig) NewCamera() *OrbitCamera {
	cam := NewOrbitCamera()
	cam.Yaw = c.Yaw
	cam.Pitch = clamp(c.Pitch, MinPitch, MaxPitch)
	cam.Distance = clamp(c.Distance, MinDistance, MaxDistance)
	cam.FOV = c.FOV
	cam.Near = c.Near
	cam.Far = c.Far
	return cam
}
