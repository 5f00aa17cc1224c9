//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"strconv"

	"lifetones/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the status and control panel to the right of the grid view.
type HUD struct {
	src      Source
	width    int
	panel    *ebiten.Image
	snapshot core.ParameterSnapshot

	controls     []hudControlState
	panelOffsetX int
	statusLines  int

	pixel *ebiten.Image
}

// NewHUD constructs a HUD for src with the given panel width.
func NewHUD(src Source, width int) *HUD {
	h := &HUD{src: src, width: max(width, 0)}
	if h.width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	controls := src.ParameterControls()
	h.controls = make([]hudControlState, len(controls))
	for i, ctrl := range controls {
		h.controls[i] = hudControlState{control: ctrl, value: "--"}
	}
	return h
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the snapshot and handles clicks on the +/- buttons.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	h.snapshot = h.src.Parameters()
	lines := 0
	for _, g := range h.snapshot.Groups {
		lines += 1 + len(g.Params)
	}
	if lines != h.statusLines {
		h.statusLines = lines
		h.layoutControls()
	}
	h.refreshControlValues()
	h.handleInput()
}

// Draw paints the panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawStatus()
	h.drawControls()
	h.drawHelp(height)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

var (
	headerColor = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor    = color.RGBA{R: 160, G: 160, B: 170, A: 255}
)

var helpLines = []string{
	"SPACE pause   R clear",
	"M music   N notes   G grid",
	"S scale   Q/W/E/T mode",
	"F1-F8 rule   TAB next rule",
	"P pattern   +/- speed",
	"Up/Down volume",
	"L-click toggle   R-click stamp",
	"White cells are sounding",
}

func (h *HUD) drawStatus() {
	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	for _, g := range h.snapshot.Groups {
		text.Draw(h.panel, g.Name, face, panelPadding, y, headerColor)
		y += statusLine
		for _, p := range g.Params {
			text.Draw(h.panel, p.Label, face, panelPadding+8, y, dimColor)
			w := text.BoundString(face, p.Value).Dx()
			text.Draw(h.panel, p.Value, face, h.width-panelPadding-w, y, labelColor)
			y += statusLine
		}
	}
}

func (h *HUD) drawHelp(height int) {
	face := basicfont.Face7x13
	y := height - panelPadding - (len(helpLines)-1)*statusLine
	for _, line := range helpLines {
		text.Draw(h.panel, line, face, panelPadding, y, dimColor)
		y += statusLine
	}
}

func (h *HUD) controlsTop() int {
	return panelPadding + headerBaseline + h.statusLines*statusLine
}

func (h *HUD) refreshControlValues() {
	for i := range h.controls {
		state := &h.controls[i]
		param, ok := h.snapshot.Find(state.control.Key)
		if !ok {
			state.hasValue = false
			state.value = "--"
			continue
		}
		parsed, err := strconv.ParseFloat(param.Value, 64)
		if err != nil {
			state.hasValue = false
			state.value = "--"
			continue
		}
		state.current = parsed
		state.value = formatValue(state.control, parsed)
		state.hasValue = true
	}
}

func (h *HUD) handleInput() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	for i := range h.controls {
		state := &h.controls[i]
		if !state.hasValue {
			continue
		}
		if pointInRect(px, my, state.minusRect) {
			h.applyAdjustment(state, -1)
			return
		}
		if pointInRect(px, my, state.plusRect) {
			h.applyAdjustment(state, 1)
			return
		}
	}
}

func (h *HUD) applyAdjustment(state *hudControlState, direction int) {
	if !canAdjust(state, direction) {
		return
	}
	target := state.control.Nudge(state.current, direction)
	var ok bool
	switch state.control.Type {
	case core.ParamTypeInt:
		ok = h.src.SetIntParameter(state.control.Key, int(target))
	case core.ParamTypeFloat:
		ok = h.src.SetFloatParameter(state.control.Key, target)
	}
	if ok {
		state.current = target
		state.value = formatValue(state.control, target)
	}
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	for i := range h.controls {
		state := &h.controls[i]
		labelY := state.top + labelBaseline
		text.Draw(h.panel, state.control.Label, face, panelPadding, labelY, labelColor)
		valueColor := labelColor
		if !state.hasValue {
			valueColor = dimColor
		}
		w := text.BoundString(face, state.value).Dx()
		text.Draw(h.panel, state.value, face, state.minusRect.Min.X-buttonGap-w, labelY, valueColor)

		h.drawButton(state.minusRect, "-", canAdjust(state, -1))
		h.drawButton(state.plusRect, "+", canAdjust(state, 1))
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layoutControls() {
	if h.width <= 0 {
		return
	}
	top0 := h.controlsTop()
	for i := range h.controls {
		top := top0 + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plusRect := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		h.controls[i].top = top
		h.controls[i].minusRect = minusRect
		h.controls[i].plusRect = plusRect
	}
}

const (
	panelPadding   = 12
	lineHeight     = 32
	statusLine     = 16
	buttonSize     = 22
	buttonGap      = 6
	headerBaseline = 14
	labelBaseline  = 20
)
