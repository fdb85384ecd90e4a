package renderer

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ColorPanel is a toggleable raygui panel for picking the base particle
// color. Color selection is pure output tuning and never touches
// kinetics.
type ColorPanel struct {
	x, y    float32
	visible bool
	color   rl.Color
}

// NewColorPanel creates a color panel anchored at (x, y).
func NewColorPanel(x, y float32, initial rl.Color) *ColorPanel {
	return &ColorPanel{x: x, y: y, color: initial}
}

// Toggle switches panel visibility and reports the new state.
func (p *ColorPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// IsVisible returns whether the panel is shown.
func (p *ColorPanel) IsVisible() bool {
	return p.visible
}

// Color returns the currently selected base color.
func (p *ColorPanel) Color() rl.Color {
	return p.color
}

// Draw renders the panel and captures the picker selection. Returns
// true when the selection changed this frame.
func (p *ColorPanel) Draw() bool {
	if !p.visible {
		return false
	}

	gui.Panel(rl.Rectangle{X: p.x, Y: p.y, Width: 180, Height: 200}, "Particle Color")

	picked := gui.ColorPicker(rl.Rectangle{X: p.x + 10, Y: p.y + 35, Width: 130, Height: 130}, "", p.color)
	picked.A = p.color.A

	changed := picked != p.color
	p.color = picked
	return changed
}
