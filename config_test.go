package kitchen3d

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 1400, cfg.Window.Width)
	assert.Equal(t, AppearFallDown, cfg.Appearance.Mode)
	assert.Equal(t, float32(0.8), cfg.Appearance.Duration)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigPartial(t *testing.T) {
	path := writeConfig(t, `
[window]
title = "My Kitchen"

[camera]
distance = 12.5

[appearance]
mode = "grow"
duration = 1.5

[import]
watch_dir = "/tmp/meshes"

[log]
level = "debug"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "My Kitchen", cfg.Window.Title)
	assert.Equal(t, 900, cfg.Window.Height, "unset fields keep their defaults")
	assert.Equal(t, float32(12.5), cfg.Camera.Distance)
	assert.Equal(t, float32(30), cfg.Camera.Pitch)
	assert.Equal(t, AppearGrow, cfg.Appearance.Mode)
	assert.Equal(t, float32(1.5), cfg.Appearance.Duration)
	assert.Equal(t, "/tmp/meshes", cfg.Import.WatchDir)

	level, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	cam := cfg.Camera.NewCamera()
	assert.Equal(t, float32(12.5), cam.Distance)
	assert.Equal(t, float32(45), cam.Yaw)
}

func TestLoadConfigReportsEveryProblem(t *testing.T) {
	path := writeConfig(t, `
[window]
width = 0

[camera]
pitch = 120.0
fov = 0.0
near = 5.0
far = 1.0

[appearance]
duration = -1.0

[log]
level = "loud"
`)
	_, err := LoadConfig(path)
	require.Error(t, err)

	msg := err.Error()
	for _, want := range []string{"window size", "camera.pitch", "camera.fov", "clip planes", "appearance.duration", "log.level"} {
		assert.Contains(t, msg, want)
	}
	assert.Equal(t, 5, strings.Count(msg, "; "))
	assert.True(t, strings.HasPrefix(msg, "config "+path+": "))
}

func TestLoadConfigRejectsUnknownFields(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "[window]\nfullscreen = true\n"))
	assert.Error(t, err)
}

func TestLoadConfigBadAppearanceMode(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "[appearance]\nmode = \"teleport\"\n"))
	assert.ErrorContains(t, err, "teleport")
}

func TestCameraConfigClamps(t *testing.T) {
	cc := DefaultConfig().Camera
	cc.Pitch = 200
	cc.Distance = 0
	cam := cc.NewCamera()
	assert.Equal(t, float32(MaxPitch), cam.Pitch)
	assert.Equal(t, float32(MinDistance), cam.Distance)
}
