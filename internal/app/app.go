//go:build ebiten

package app

import (
	"lifetones/internal/render"
	"lifetones/internal/ui"
	"lifetones/pkg/sonify"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	hudWidth       = 260
	minPanelHeight = 560
	volumeStep     = 0.1
)

// Game adapts a Session to the ebiten.Game interface.
type Game struct {
	session *Session
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	scale    int
	lastCell [2]int
}

// New constructs a Game for the session. The session starts paused, as the
// board is usually drawn by hand first.
func New(s *Session, scale int) *Game {
	size := s.Size()
	gp := render.NewGridPainter(size.W, size.H)
	s.SetPaused(true)
	return &Game{
		session:  s,
		painter:  gp,
		overlay:  ui.NewOverlay(s, gp, scale),
		hud:      ui.NewHUD(s, hudWidth),
		scale:    scale,
		lastCell: [2]int{-1, -1},
	}
}

var modeKeys = map[ebiten.Key]sonify.Mode{
	ebiten.KeyQ: sonify.Position,
	ebiten.KeyW: sonify.Density,
	ebiten.KeyE: sonify.Pattern,
	ebiten.KeyT: sonify.Harmonic,
}

var ruleKeys = []ebiten.Key{
	ebiten.KeyF1, ebiten.KeyF2, ebiten.KeyF3, ebiten.KeyF4,
	ebiten.KeyF5, ebiten.KeyF6, ebiten.KeyF7, ebiten.KeyF8,
}

// Update handles per-frame input and advances the session.
func (g *Game) Update() error {
	s := g.session
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.Clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		s.ToggleMusic()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		s.CycleScale()
	}
	for key, mode := range modeKeys {
		if inpututil.IsKeyJustPressed(key) {
			s.SetMode(mode)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		s.AdjustSpeed(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		s.AdjustSpeed(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		s.AdjustVolume(volumeStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		s.AdjustVolume(-volumeStep)
	}
	for i, key := range ruleKeys {
		if inpututil.IsKeyJustPressed(key) {
			_ = s.SelectRule(i)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		s.CycleRule()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		s.CyclePattern()
	}
	g.handleMouse()

	g.overlay.Update()
	g.hud.Update(g.gridWidth())
	s.Update()
	return nil
}

func (g *Game) handleMouse() {
	mx, my := ebiten.CursorPosition()
	size := g.session.Size()
	if mx < 0 || my < 0 || mx >= size.W*g.scale || my >= size.H*g.scale {
		g.lastCell = [2]int{-1, -1}
		return
	}
	cx, cy := mx/g.scale, my/g.scale
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.session.ToggleCell(cx, cy)
		g.lastCell = [2]int{cx, cy}
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		if g.lastCell != [2]int{cx, cy} {
			g.session.PaintCell(cx, cy)
			g.lastCell = [2]int{cx, cy}
		}
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight):
		g.session.StampPattern(cx, cy)
	default:
		g.lastCell = [2]int{-1, -1}
	}
}

// Draw renders the grid, overlay and HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(render.Background)
	alive := render.ScaleColor(g.session.Mapper().Scale().ID())
	g.painter.Blit(screen, g.session.Cells(), g.session, alive, g.scale)
	g.overlay.Draw(screen)
	_, h := g.Layout(0, 0)
	g.hud.Draw(screen, g.gridWidth(), h)
}

func (g *Game) gridWidth() int { return g.session.Size().W * g.scale }

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.session.Size()
	return s.W*g.scale + g.hud.Width(), max(s.H*g.scale, minPanelHeight)
}
