//go:build ebiten

package app

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"slices"

	"bitlife/internal/core"
	"bitlife/internal/life"
	"bitlife/internal/render"
	"bitlife/internal/sim"
	"bitlife/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	maxZoom        = 64
	fallbackKernel = "cpu"
)

// Game adapts a simulation controller to the ebiten.Game interface.
type Game struct {
	ctrl    *sim.Controller
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	onColor  color.Color
	offColor color.Color

	view             ui.View
	screenW, screenH int
	gridSize         core.Size
	panning          bool
	lastX, lastY     int
	pattern          int
	turbo            bool
}

// New constructs a Game for the provided controller.
func New(ctrl *sim.Controller, hudWidth int) *Game {
	size := ctrl.Size()
	g := &Game{
		ctrl:     ctrl,
		painter:  render.NewGridPainter(size.W, size.H),
		overlay:  ui.NewOverlay(),
		hud:      ui.NewHUD(ctrl, "Game of Life", hudWidth),
		onColor:  color.White,
		offColor: color.Black,
	}
	g.setTurbo(ctrl.MaxSpeed())
	return g
}

// Update handles per-frame input and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.ctrl.TogglePaused()
		g.setTurbo(g.turbo)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.advance(g.ctrl.Step())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		g.ctrl.Clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.ctrl.Restart()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.setTurbo(!g.turbo)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyK) {
		g.cycleKernel()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.pattern = (g.pattern + 1) % len(life.Patterns())
	}

	g.overlay.Update()
	if g.hud.Update(g.viewWidth()) {
		g.setTurbo(g.turbo)
	}
	if size := g.ctrl.Size(); size != g.gridSize {
		g.gridSize = size
		g.fit()
	}
	g.panZoom()
	g.edit()

	_, err := g.ctrl.Update()
	g.advance(err)
	return nil
}

// advance handles a kernel failure by switching back to the CPU kernel.
func (g *Game) advance(err error) {
	if err == nil {
		return
	}
	log.Printf("step failed: %v", err)
	if g.ctrl.Mode() == fallbackKernel {
		g.ctrl.SetPaused(true)
		return
	}
	if err := g.ctrl.SetMode(fallbackKernel); err != nil {
		log.Printf("fallback to %s: %v", fallbackKernel, err)
		g.ctrl.SetPaused(true)
	}
}

func (g *Game) cycleKernel() {
	names := slices.DeleteFunc(core.KernelNames(), func(n string) bool { return n == "reference" })
	if len(names) == 0 {
		return
	}
	next := names[0]
	if i := slices.Index(names, g.ctrl.Mode()); i >= 0 {
		next = names[(i+1)%len(names)]
	}
	if err := g.ctrl.SetMode(next); err != nil {
		log.Printf("switch kernel: %v", err)
	}
}

// setTurbo mirrors the controller's pacing mode into the frame loop: turbo
// runs unsynchronised while the simulation is running.
func (g *Game) setTurbo(on bool) {
	g.turbo = on
	g.ctrl.SetMaxSpeed(on)
	free := on && !g.ctrl.Paused()
	ebiten.SetVsyncEnabled(!free)
	if free {
		ebiten.SetTPS(ebiten.SyncWithFPS)
	} else {
		ebiten.SetTPS(ebiten.DefaultTPS)
	}
}

// edit paints, erases or stamps cells under the cursor. C held erases, with or
// without the mouse button.
func (g *Game) edit() {
	mx, my := ebiten.CursorPosition()
	if g.hud.Contains(mx, g.viewWidth()) {
		return
	}
	erase := ebiten.IsKeyPressed(ebiten.KeyC)
	paint := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	row, col := g.view.CellAt(mx, my)
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		p := life.Patterns()[g.pattern]
		if err := g.ctrl.Stamp(p, row, col); err != nil {
			log.Printf("stamp: %v", err)
		}
	}
	if !paint && !erase {
		return
	}
	if !g.ctrl.Current().InBounds(row, col) {
		return
	}
	var err error
	if erase {
		err = g.ctrl.Erase(row, col)
	} else {
		err = g.ctrl.Paint(row, col)
	}
	if err != nil {
		log.Printf("paint: %v", err)
	}
}

// panZoom zooms around the cursor with the wheel and pans while the right
// button is held.
func (g *Game) panZoom() {
	mx, my := ebiten.CursorPosition()
	if _, wheelY := ebiten.Wheel(); wheelY != 0 && !g.hud.Contains(mx, g.viewWidth()) {
		zoom := g.view.Zoom * math.Pow(1.1, wheelY)
		zoom = math.Max(g.minZoom(), math.Min(maxZoom, zoom))
		cx := (float64(mx) - g.view.OffsetX) / g.view.Zoom
		cy := (float64(my) - g.view.OffsetY) / g.view.Zoom
		g.view.Zoom = zoom
		g.view.OffsetX = float64(mx) - cx*zoom
		g.view.OffsetY = float64(my) - cy*zoom
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		if g.panning {
			g.view.OffsetX += float64(mx - g.lastX)
			g.view.OffsetY += float64(my - g.lastY)
		}
		g.panning = true
	} else {
		g.panning = false
	}
	g.lastX, g.lastY = mx, my
}

func (g *Game) viewWidth() int {
	return g.screenW - g.hud.Width()
}

func (g *Game) minZoom() float64 {
	if g.gridSize.W == 0 || g.gridSize.H == 0 {
		return 1
	}
	return 0.95 * math.Min(float64(g.viewWidth())/float64(g.gridSize.W), float64(g.screenH)/float64(g.gridSize.H))
}

// fit zooms so the whole grid is visible and centres it.
func (g *Game) fit() {
	g.view.Zoom = g.minZoom() / 0.95
	g.view.OffsetX = (float64(g.viewWidth()) - float64(g.gridSize.W)*g.view.Zoom) / 2
	g.view.OffsetY = (float64(g.screenH) - float64(g.gridSize.H)*g.view.Zoom) / 2
}

// Draw renders the current generation, guides and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 24, G: 24, B: 28, A: 255})
	var geom ebiten.GeoM
	geom.Scale(g.view.Zoom, g.view.Zoom)
	geom.Translate(g.view.OffsetX, g.view.OffsetY)
	g.painter.Blit(screen, g.ctrl.Current(), g.onColor, g.offColor, geom)
	g.overlay.Draw(screen, g.view, g.gridSize)

	if g.hud.Width() == 0 {
		s := g.ctrl.Stats()
		ebitenutil.DebugPrint(screen, fmt.Sprintf("%s\n%s  gen %s  alive %s  %s cells",
			ui.FPSLine(), s.Kernel, sim.FormatCount(s.Generation), sim.FormatCount(uint64(s.Population)), sim.FormatCount(s.Cells)))
		return
	}
	p := life.Patterns()[g.pattern]
	g.hud.SetExtraLines(
		ui.FPSLine(),
		fmt.Sprintf("Pattern: %s (G)", p.Name),
		"Space pause  N step  T turbo",
		"K kernel  R restart  Bksp clear",
		"LMB paint  C erase  RMB pan",
	)
	g.hud.Draw(screen, g.viewWidth(), g.screenH)
}

// Layout tracks the window size so the grid view fills it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.screenW || outsideHeight != g.screenH {
		g.screenW, g.screenH = outsideWidth, outsideHeight
		g.view.W, g.view.H = g.viewWidth(), outsideHeight
		if g.gridSize.W > 0 {
			g.fit()
		}
	}
	return outsideWidth, outsideHeight
}
