package gesture

import (
	"math"
	"testing"

	"github.com/ayusman/mudra/internal/detector"
)

const epsilon = 1e-9

func TestExtractFeatures_PinchDistance(t *testing.T) {
	for _, dist := range []float64{0.01, 0.025, 0.05} {
		frame := detector.PinchHandFrame(dist)
		f := ExtractFeatures(&frame)

		if math.Abs(f.PinchDistance-dist) > epsilon {
			t.Errorf("PinchDistance = %f, want %f", f.PinchDistance, dist)
		}
	}
}

func TestExtractFeatures_Tilt(t *testing.T) {
	t.Run("upright hand tilts to 0.25", func(t *testing.T) {
		// Fixture wrist is directly below the middle knuckle, so the
		// wrist-to-knuckle vector points straight up (negative y):
		// atan2 = -pi/2, remapped to 0.25.
		frame := detector.OpenHandFrame()
		f := ExtractFeatures(&frame)

		if math.Abs(f.TiltNormalized-0.25) > 1e-6 {
			t.Errorf("TiltNormalized = %f, want 0.25", f.TiltNormalized)
		}
	})

	t.Run("always in [0,1)", func(t *testing.T) {
		frame := detector.OpenHandFrame()
		for i := 0; i < 16; i++ {
			angle := -math.Pi + float64(i)*math.Pi/8
			frame.World[detector.Wrist] = detector.Point3D{}
			frame.World[detector.MiddleMCP] = detector.Point3D{
				X: 0.08 * math.Cos(angle),
				Y: 0.08 * math.Sin(angle),
			}
			f := ExtractFeatures(&frame)

			if f.TiltNormalized < 0 || f.TiltNormalized >= 1 {
				t.Errorf("angle %f: TiltNormalized = %f, want [0,1)", angle, f.TiltNormalized)
			}
		}
	})
}

func TestExtractFeatures_DepthVariance(t *testing.T) {
	t.Run("flat hand has zero variance", func(t *testing.T) {
		frame := detector.OpenHandFrame()
		for i := range frame.World {
			frame.World[i].Z = 0.01
		}
		f := ExtractFeatures(&frame)

		if f.DepthVariance > epsilon {
			t.Errorf("DepthVariance = %g, want 0", f.DepthVariance)
		}
	})

	t.Run("curled fist has positive variance", func(t *testing.T) {
		frame := detector.FistHandFrame()
		f := ExtractFeatures(&frame)

		if f.DepthVariance <= 0 {
			t.Errorf("DepthVariance = %g, want > 0", f.DepthVariance)
		}
	})
}

func TestExtractFeatures_FingerExtension(t *testing.T) {
	open := detector.OpenHandFrame()
	fist := detector.FistHandFrame()

	openF := ExtractFeatures(&open)
	fistF := ExtractFeatures(&fist)

	if openF.FingerExtension <= fistF.FingerExtension {
		t.Errorf("open extension %f should exceed fist extension %f",
			openF.FingerExtension, fistF.FingerExtension)
	}
}

func TestExtractFeatures_PalmY(t *testing.T) {
	frame := detector.OpenHandFrame()
	f := ExtractFeatures(&frame)

	want := (frame.Image[detector.Wrist].Y + frame.Image[detector.MiddleMCP].Y) / 2
	if math.Abs(f.PalmY-want) > epsilon {
		t.Errorf("PalmY = %f, want %f", f.PalmY, want)
	}
}

func TestExtractFeatures_Spread(t *testing.T) {
	frame := detector.OpenHandFrame()
	f := ExtractFeatures(&frame)

	if f.SpreadDistance <= 0 {
		t.Errorf("SpreadDistance = %f, want > 0", f.SpreadDistance)
	}
}
