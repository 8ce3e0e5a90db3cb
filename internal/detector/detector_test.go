package detector

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-9

func dist3(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func TestOpenHandFrame(t *testing.T) {
	frame := OpenHandFrame()

	t.Run("thumb and index tips are not pinched", func(t *testing.T) {
		pinch := dist3(frame.World[ThumbTip], frame.World[IndexTip])
		if pinch < 0.045 {
			t.Errorf("open hand pinch distance = %f, want >= 0.045", pinch)
		}
	})

	t.Run("knuckle row is spread", func(t *testing.T) {
		spread := dist3(frame.World[IndexMCP], frame.World[PinkyMCP])
		if spread < 0.05 {
			t.Errorf("open hand spread distance = %f, want >= 0.05", spread)
		}
	})

	t.Run("image variant tracks world variant", func(t *testing.T) {
		for i := 0; i < NumLandmarks; i++ {
			want := projectImage(frame.World[i])
			if frame.Image[i] != want {
				t.Fatalf("landmark %d: image point %v, want %v", i, frame.Image[i], want)
			}
		}
	})
}

func TestPinchHandFrame(t *testing.T) {
	for _, dist := range []float64{0.005, 0.02, 0.045, 0.08} {
		got := PinchHandFrame(dist)
		pinch := dist3(got.World[ThumbTip], got.World[IndexTip])
		if math.Abs(pinch-dist) > epsilon {
			t.Errorf("PinchHandFrame(%f): pinch distance = %f", dist, pinch)
		}
	}
}

func TestFistHandFrame(t *testing.T) {
	open := OpenHandFrame()
	fist := FistHandFrame()

	// A fist must score lower on every extension pair than an open hand.
	pairs := [][2]int{
		{ThumbTip, ThumbIP},
		{IndexTip, IndexPIP},
		{MiddleTip, MiddlePIP},
		{RingTip, RingPIP},
		{PinkyTip, PinkyPIP},
	}
	for _, p := range pairs {
		openExt := dist3(open.World[p[0]], open.World[p[1]])
		fistExt := dist3(fist.World[p[0]], fist.World[p[1]])
		if fistExt >= openExt {
			t.Errorf("pair %v: fist extension %f >= open extension %f", p, fistExt, openExt)
		}
	}
}

func TestMockDetector(t *testing.T) {
	t.Run("returns empty hands by default", func(t *testing.T) {
		mock := NewMockDetector()

		hands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if len(hands) != 0 {
			t.Errorf("expected no hands, got %d", len(hands))
		}
	})

	t.Run("returns configured hands", func(t *testing.T) {
		mock := NewMockDetector()
		mock.SetHands([]HandFrame{OpenHandFrame()})

		hands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if len(hands) != 1 {
			t.Fatalf("expected 1 hand, got %d", len(hands))
		}
		if hands[0].Handedness != "Right" {
			t.Errorf("expected Right handedness, got %s", hands[0].Handedness)
		}
	})

	t.Run("returns configured error", func(t *testing.T) {
		mock := NewMockDetector()
		wantErr := errors.New("detector offline")
		mock.SetError(wantErr)

		_, err := mock.Detect(nil)

		if !errors.Is(err, wantErr) {
			t.Errorf("expected configured error, got %v", err)
		}
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MaxHands != 1 {
		t.Errorf("expected MaxHands 1, got %d", cfg.MaxHands)
	}
	if cfg.MinConfidence != 0.5 {
		t.Errorf("expected MinConfidence 0.5, got %f", cfg.MinConfidence)
	}
	if cfg.MinTrackingConf != 0.5 {
		t.Errorf("expected MinTrackingConf 0.5, got %f", cfg.MinTrackingConf)
	}
}
