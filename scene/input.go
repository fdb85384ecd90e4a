package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// handleInput processes keyboard and mouse controls for windowed runs.
func (s *Scene) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		s.paused = !s.paused
		if s.playback != nil {
			s.playback.SetPaused(s.paused)
		}
	}

	if rl.IsKeyPressed(rl.KeyC) {
		s.colorPanel.Toggle()
	}

	// Mouse-drag orbit
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) && !s.colorPanel.IsVisible() {
		delta := rl.GetMouseDelta()
		s.cam.Rotate(delta.X*0.005, delta.Y*0.005)
	}

	// Zoom: mouse wheel or +/- keys
	wheelMove := rl.GetMouseWheelMove()
	if wheelMove != 0 {
		s.cam.Zoom(1.0 - wheelMove*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		s.cam.Zoom(0.8)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		s.cam.Zoom(1.25)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		s.cam.Reset()
	}
}
