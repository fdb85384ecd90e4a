package camera

import (
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	cam := New(20)

	if cam.Distance != 20 {
		t.Errorf("expected distance 20, got %f", cam.Distance)
	}
	if cam.Yaw != 0 || cam.Pitch != 0 {
		t.Errorf("expected zero orientation, got yaw=%f pitch=%f", cam.Yaw, cam.Pitch)
	}
}

func TestPositionAtRest(t *testing.T) {
	cam := New(10)

	// Zero yaw/pitch puts the camera on the +x axis at orbit distance
	x, y, z := cam.Position()
	if math.Abs(float64(x-10)) > 1e-5 || math.Abs(float64(y)) > 1e-5 || math.Abs(float64(z)) > 1e-5 {
		t.Errorf("expected position (10,0,0), got (%f,%f,%f)", x, y, z)
	}
}

func TestPositionKeepsOrbitDistance(t *testing.T) {
	cam := New(10)

	orientations := []struct{ yaw, pitch float32 }{
		{0.5, 0.3},
		{-1.2, 0.8},
		{3.0, -0.7},
	}

	for _, o := range orientations {
		cam.Yaw = o.yaw
		cam.Pitch = o.pitch
		x, y, z := cam.Position()
		d := math.Sqrt(float64(x*x + y*y + z*z))
		if math.Abs(d-10) > 1e-4 {
			t.Errorf("yaw=%f pitch=%f: distance %f, want 10", o.yaw, o.pitch, d)
		}
	}
}

func TestPitchClamp(t *testing.T) {
	cam := New(10)

	cam.Rotate(0, 10) // way past the pole
	if cam.Pitch > cam.MaxPitch {
		t.Errorf("pitch %f exceeds max %f", cam.Pitch, cam.MaxPitch)
	}

	cam.Rotate(0, -20)
	if cam.Pitch < -cam.MaxPitch {
		t.Errorf("pitch %f below min %f", cam.Pitch, -cam.MaxPitch)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(10)

	for i := 0; i < 50; i++ {
		cam.Zoom(0.5)
	}
	if cam.Distance < cam.MinDistance {
		t.Errorf("distance %f below min %f", cam.Distance, cam.MinDistance)
	}

	for i := 0; i < 50; i++ {
		cam.Zoom(2.0)
	}
	if cam.Distance > cam.MaxDistance {
		t.Errorf("distance %f above max %f", cam.Distance, cam.MaxDistance)
	}
}

func TestReset(t *testing.T) {
	cam := New(10)
	cam.Rotate(1.5, 0.5)
	cam.Zoom(2.0)

	cam.Reset()

	if cam.Yaw != 0 || cam.Pitch != 0 || cam.Distance != 10 {
		t.Errorf("reset left yaw=%f pitch=%f distance=%f", cam.Yaw, cam.Pitch, cam.Distance)
	}
}
