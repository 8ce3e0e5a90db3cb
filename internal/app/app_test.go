package app

import (
	"sync"
	"testing"
	"time"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/particle"

	"gocv.io/x/gocv"
)

func TestSnapshotCell_LastValueSemantics(t *testing.T) {
	var cell snapshotCell

	if got := cell.Load(); got.Control.ShapeIndex != 0 {
		t.Errorf("empty cell ShapeIndex = %d, want 0", got.Control.ShapeIndex)
	}

	for i := 1; i <= 5; i++ {
		cell.Store(Snapshot{Control: gesture.ControlState{ShapeIndex: i}})
	}

	if got := cell.Load(); got.Control.ShapeIndex != 5 {
		t.Errorf("ShapeIndex = %d, want 5 (last stored value)", got.Control.ShapeIndex)
	}

	// Loads do not consume the value.
	if got := cell.Load(); got.Control.ShapeIndex != 5 {
		t.Errorf("repeated load ShapeIndex = %d, want 5", got.Control.ShapeIndex)
	}
}

func TestApp_Defaults(t *testing.T) {
	a := New(Config{})

	if a.Status() != StatusInitializing {
		t.Errorf("initial status = %s, want %s", a.Status(), StatusInitializing)
	}
	if !a.IsEnabled() {
		t.Error("tracking should be enabled by default")
	}
	if got := a.Snapshot().Control; got != gesture.DefaultControlState() {
		t.Errorf("initial snapshot control = %+v, want neutral default", got)
	}
}

func TestApp_SetEnabled(t *testing.T) {
	a := New(Config{})

	a.SetEnabled(false)
	if a.IsEnabled() {
		t.Error("expected disabled")
	}
	a.SetEnabled(true)
	if !a.IsEnabled() {
		t.Error("expected enabled")
	}
}

func TestApp_StatusTransitions(t *testing.T) {
	a := New(Config{})

	var seen []Status
	a.OnStatus(func(s Status) { seen = append(seen, s) })

	a.markDetection(true)
	if a.Status() != StatusReady {
		t.Fatalf("status after detection = %s, want %s", a.Status(), StatusReady)
	}

	// A brief gap inside the stale window keeps the status ready.
	a.markDetection(false)
	if a.Status() != StatusReady {
		t.Errorf("status inside stale window = %s, want %s", a.Status(), StatusReady)
	}

	// Push the last detection beyond the stale window.
	a.mu.Lock()
	a.lastDetection = time.Now().Add(-2 * StaleAfter)
	a.mu.Unlock()

	a.markDetection(false)
	if a.Status() != StatusNoHands {
		t.Errorf("status after stale window = %s, want %s", a.Status(), StatusNoHands)
	}

	// Recovery on the next detection.
	a.markDetection(true)
	if a.Status() != StatusReady {
		t.Errorf("status after recovery = %s, want %s", a.Status(), StatusReady)
	}

	if len(seen) < 3 {
		t.Errorf("status callback fired %d times, want >= 3", len(seen))
	}
}

func TestApp_PublishProcessed(t *testing.T) {
	a := New(Config{ParticleCount: 10, Seed: 1})

	pinch := detector.PinchHandFrame(0.01)
	a.publishProcessed(&pinch)

	snap := a.Snapshot()
	if snap.Control.ShapeIndex != 1 {
		t.Errorf("ShapeIndex after pinch = %d, want 1", snap.Control.ShapeIndex)
	}
	if !snap.TrackingReady {
		t.Error("TrackingReady should be true right after a detection")
	}

	// A no-hand tick decays but carries the shape counter.
	before := snap.Control.Expansion
	a.publishProcessed(nil)

	snap = a.Snapshot()
	if snap.Control.ShapeIndex != 1 {
		t.Errorf("ShapeIndex after no-hand tick = %d, want 1", snap.Control.ShapeIndex)
	}
	if snap.Control.Expansion == before {
		t.Error("expansion did not decay on no-hand tick")
	}
}

// recordingSink captures published frames for assertions.
type recordingSink struct {
	mu     sync.Mutex
	frames int
	lastN  int
	status Status
}

func (s *recordingSink) PublishFrame(instances []particle.Instance, snap Snapshot, status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames++
	s.lastN = len(instances)
	s.status = status
}

func (s *recordingSink) snapshot() (int, int, Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames, s.lastN, s.status
}

func TestApp_Pipeline_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	a := New(Config{ParticleCount: 50, Seed: 7})
	a.SetCamera(capture.NewMockCamera([]*gocv.Mat{&frame}, true))

	mock := detector.NewMockDetector()
	mock.SetHands([]detector.HandFrame{detector.OpenHandFrame()})
	a.SetDetector(mock)

	sink := &recordingSink{}
	a.SetSink(sink)

	if err := a.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	time.Sleep(300 * time.Millisecond)
	a.Stop()

	frames, lastN, status := sink.snapshot()
	if frames == 0 {
		t.Fatal("sink received no frames")
	}
	if lastN != 50 {
		t.Errorf("last frame had %d instances, want 50", lastN)
	}
	if status != StatusReady && status != StatusNoHands {
		t.Errorf("unexpected status %s", status)
	}
}

func TestApp_StopIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	a := New(Config{ParticleCount: 10, Seed: 1})
	a.SetCamera(capture.NewMockCamera([]*gocv.Mat{&frame}, true))
	a.SetDetector(detector.NewMockDetector())

	if err := a.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	a.Stop()
	a.Stop() // second stop must not panic or block

	if a.Camera().IsOpen() {
		t.Error("camera still open after Stop")
	}
}
