package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Draw renders one frame: the 3D particle volume, then the HUD and any
// open control panels on top.
func (s *Scene) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 8, G: 10, B: 18, A: 255})

	camX, camY, camZ := s.cam.Position()
	cam3d := rl.Camera3D{
		Position:   rl.Vector3{X: camX, Y: camY, Z: camZ},
		Target:     rl.Vector3{X: s.cam.TargetX, Y: s.cam.TargetY, Z: s.cam.TargetZ},
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}

	rl.BeginMode3D(cam3d)
	s.boundaryR.Draw(s.state, s.opacity)
	s.streaks.Draw(s.particles, s.particles.Params())
	rl.EndMode3D()

	s.hud.Draw(s.CurrentSample(), s.state, s.signal, s.tick, s.paused)
	if !s.loaded {
		rl.DrawText("loading field data...", 10, int32(s.cfg.Screen.Height)-30, 20, rl.Gray)
	}

	if s.colorPanel.Draw() {
		s.streaks.SetBaseColor(s.colorPanel.Color())
	}

	rl.EndDrawing()
}
