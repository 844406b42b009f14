package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"strings"

	"github.com/chewxy/math32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/smasonuk/kitchen3d"
)

const (
	// nudgeStep matches one slider tick of the edit dialog.
	nudgeStep   = 0.1
	rotateStep  = 15
	placeRadius = 3
)

var (
	backgroundColor = color.RGBA{R: 0x1e, G: 0x22, B: 0x2a, A: 0xff}

	createKeys = []ebiten.Key{
		ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
		ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9, ebiten.Key0,
	}

	// F1-F3 stand in for a camera-based shape detector.
	shapeKeys = map[ebiten.Key]kitchen3d.ShapeEvent{
		ebiten.KeyF1: {Shape: kitchen3d.ShapeTriangle, Color: kitchen3d.ColorRed},
		ebiten.KeyF2: {Shape: kitchen3d.ShapeCircle, Color: kitchen3d.ColorGreen},
		ebiten.KeyF3: {Shape: kitchen3d.ShapeRectangle, Color: kitchen3d.ColorBlue},
	}
)

type Game struct {
	cfg      *kitchen3d.Config
	scene    *kitchen3d.Scene
	drag     *kitchen3d.DragController
	renderer *softRenderer
	gate     *kitchen3d.ShapeGate
	imports  <-chan string

	edit     *kitchen3d.EditSession
	viewport kitchen3d.Viewport
	status   string
}

func NewGame(cfg *kitchen3d.Config, scene *kitchen3d.Scene, imports <-chan string) *Game {
	g := &Game{
		cfg:      cfg,
		scene:    scene,
		drag:     kitchen3d.NewDragController(scene, cfg.Camera.NewCamera()),
		renderer: newSoftRenderer(),
		gate:     kitchen3d.NewShapeGate(cfg.Appearance.Mode, cfg.Appearance.Duration),
		imports:  imports,
		viewport: kitchen3d.Viewport{Width: cfg.Window.Width, Height: cfg.Window.Height},
	}
	g.drag.SetViewport(g.viewport)
	return g
}

func (g *Game) Update() error {
	g.handlePointer()
	g.handleKeys()
	g.drainImports()
	return nil
}

func (g *Game) handlePointer() {
	x, y := ebiten.CursorPosition()
	fx, fy := float32(x), float32(y)

	// the edit session owns the selection until it ends
	if g.edit == nil {
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			g.drag.Press(fx, fy)
		} else if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
			g.drag.Move(fx, fy)
		}
		if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
			g.drag.Release()
		}
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		// wheel up brings the camera closer
		g.drag.Scroll(float32(-wy))
	}
}

func (g *Game) handleKeys() {
	if g.edit != nil {
		g.handleEditKeys()
		return
	}

	kinds := g.scene.Catalog().Kinds()
	for i, key := range createKeys {
		if i < len(kinds) && inpututil.IsKeyJustPressed(key) {
			g.create(kitchen3d.CreateRequest{
				Kind:       kinds[i],
				Appearance: g.cfg.Appearance.Mode,
				Duration:   g.cfg.Appearance.Duration,
			})
		}
	}

	for key, ev := range shapeKeys {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		req, ok := g.gate.Accept(ev, g.scene.Clock().Now())
		if !ok {
			g.status = fmt.Sprintf("ignored %s", ev)
			continue
		}
		g.create(req)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyDelete) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		if sel := g.scene.Selected(); sel != nil {
			g.scene.Remove(sel)
			g.status = fmt.Sprintf("removed %s", sel.Name)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		if sel := g.scene.Selected(); sel != nil {
			g.drag.Camera().Frame(sel.WorldBounds())
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		if sel := g.scene.Selected(); sel != nil {
			edit, err := kitchen3d.BeginEdit(sel)
			if err != nil {
				slog.Error("could not start edit", slog.Any("error", err))
				return
			}
			g.edit = edit
		}
	}
}

// create places the new object on a ring around the target so successive
// objects do not stack.
func (g *Game) create(req kitchen3d.CreateRequest) {
	n := float32(g.scene.Len())
	cam := g.drag.Camera()
	req.Position = kitchen3d.V3(
		cam.Target.X+placeRadius*cosDeg(n*45),
		0,
		cam.Target.Z+placeRadius*sinDeg(n*45),
	)
	obj, err := g.scene.Create(req)
	if err != nil {
		slog.Error("could not create object", slog.String("kind", req.Kind), slog.Any("error", err))
		g.status = err.Error()
		return
	}
	g.status = fmt.Sprintf("added %s", obj.Name)
}

func (g *Game) handleEditKeys() {
	obj := g.edit.Object()
	pos := obj.Position
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		pos.X -= nudgeStep
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		pos.X += nudgeStep
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		pos.Z -= nudgeStep
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		pos.Z += nudgeStep
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		pos.Y += nudgeStep
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		pos.Y -= nudgeStep
	}
	if pos != obj.Position {
		g.edit.SetPosition(pos)
	}

	deg := obj.Rotation.Y * 180 / math32.Pi
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.edit.SetRotationY(wrapDegrees(deg - rotateStep))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyW) {
		g.edit.SetRotationY(wrapDegrees(deg + rotateStep))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.edit.SetColor(nextColor(obj.Color))
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		g.edit.Commit()
		g.status = fmt.Sprintf("edited %s", obj.Name)
		g.edit = nil
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		if err := g.edit.Revert(); err != nil {
			slog.Error("could not revert edit", slog.Any("error", err))
		}
		g.status = fmt.Sprintf("reverted %s", obj.Name)
		g.edit = nil
	}
}

func (g *Game) drainImports() {
	for {
		select {
		case path := <-g.imports:
			obj, err := g.scene.Import(path, g.cfg.Appearance.Mode, g.cfg.Appearance.Duration)
			if err != nil {
				g.status = fmt.Sprintf("import failed: %v", err)
				continue
			}
			g.status = fmt.Sprintf("imported %s", obj.Name)
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	g.renderer.Begin(g.drag.Camera(), g.viewport)
	g.scene.Render(g.renderer, g.scene.Clock().Now())
	g.renderer.Flush(screen)

	ebitenutil.DebugPrint(screen, g.overlay())
}

func (g *Game) overlay() string {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %0.2f  objects: %d\n", ebiten.ActualFPS(), g.scene.Len())
	for i, kind := range g.scene.Catalog().Kinds() {
		if i >= len(createKeys) {
			break
		}
		fmt.Fprintf(&b, "%d:%s  ", (i+1)%10, kind)
	}
	b.WriteString("\nF1-F3: shapes  F: frame  E: edit  Del: remove\n")
	if sel := g.scene.Selected(); sel != nil {
		fmt.Fprintf(&b, "selected: %s at %v\n", sel.Name, sel.Position)
	}
	if g.edit != nil {
		b.WriteString("editing: arrows/PgUp/PgDn move, Q/W rotate, C colour, Enter ok, Esc cancel\n")
	}
	if g.status != "" {
		b.WriteString(g.status)
	}
	return b.String()
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	vp := kitchen3d.Viewport{Width: outsideWidth, Height: outsideHeight}
	if vp != g.viewport {
		g.viewport = vp
		g.drag.SetViewport(vp)
	}
	return outsideWidth, outsideHeight
}

// editPalette is cycled by the colour key in edit mode.
var editPalette = []kitchen3d.Vector3{
	kitchen3d.V3(0.9, 0.95, 1.0),
	kitchen3d.V3(0.6, 0.5, 0.4),
	kitchen3d.V3(0.8, 0.85, 0.9),
	kitchen3d.V3(0.2, 0.2, 0.2),
	kitchen3d.V3(0.85, 0.3, 0.25),
	kitchen3d.V3(0.3, 0.6, 0.35),
}

func nextColor(current kitchen3d.Vector3) kitchen3d.Vector3 {
	for i, c := range editPalette {
		if c == current {
			return editPalette[(i+1)%len(editPalette)]
		}
	}
	return editPalette[0]
}

func wrapDegrees(d float32) float32 {
	d = math32.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}

func cosDeg(d float32) float32 { return math32.Cos(d * math32.Pi / 180) }
func sinDeg(d float32) float32 { return math32.Sin(d * math32.Pi / 180) }
