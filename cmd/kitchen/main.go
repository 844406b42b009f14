package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/mitchellh/go-homedir"
	"github.com/smasonuk/kitchen3d"
)

const defaultConfigPath = "~/.config/kitchen3d/config.toml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to the TOML config file")
	headless := flag.Bool("headless", false, "run the animation loop without a window")
	runFor := flag.Duration("run-for", 3*time.Second, "how long the headless loop runs")
	flag.Parse()

	if err := run(*configPath, *headless, *runFor); err != nil {
		slog.Error("kitchen exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(configPath string, headless bool, runFor time.Duration) error {
	path, err := homedir.Expand(configPath)
	if err != nil {
		return fmt.Errorf("could not expand config path %s: %w", configPath, err)
	}
	cfg, err := kitchen3d.LoadConfig(path)
	if err != nil {
		return err
	}

	level, _ := cfg.Log.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	kitchen3d.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	catalog, err := kitchen3d.DefaultCatalog()
	if err != nil {
		return err
	}
	if err := catalog.Preload(ctx); err != nil {
		return fmt.Errorf("could not load catalog: %w", err)
	}

	scene := kitchen3d.NewScene(catalog, kitchen3d.SystemClock{})
	scene.AddScenery(kitchen3d.NewGrid(20, 1.0))

	if headless {
		return runHeadless(ctx, cfg, scene, runFor)
	}

	var imports <-chan string
	if dir := cfg.Import.WatchDir; dir != "" {
		dir, err = homedir.Expand(dir)
		if err != nil {
			return fmt.Errorf("could not expand watch dir: %w", err)
		}
		w, err := newImportWatcher(dir)
		if err != nil {
			return err
		}
		go w.Run(ctx)
		imports = w.Paths()
		slog.Info("watching for imports", slog.String("dir", dir))
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(NewGame(cfg, scene, imports))
}

// runHeadless places one object of every catalog type and drives their
// entry animations without opening a window.
func runHeadless(ctx context.Context, cfg *kitchen3d.Config, scene *kitchen3d.Scene, runFor time.Duration) error {
	for i, kind := range scene.Catalog().Kinds() {
		req := kitchen3d.CreateRequest{
			Kind:       kind,
			Position:   kitchen3d.V3(float32(i%5)*1.5-3, 0, float32(i/5)*1.5),
			Appearance: cfg.Appearance.Mode,
			Duration:   cfg.Appearance.Duration,
		}
		if _, err := scene.Create(req); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, runFor)
	defer cancel()

	frames := 0
	err := kitchen3d.RunLoop(ctx, scene, scene.Clock(), kitchen3d.DefaultFrameInterval, func(running int) {
		frames++
		if running == 0 {
			cancel()
		}
	})
	slog.Info("headless run finished", slog.Int("frames", frames), slog.Int("objects", scene.Len()))
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
