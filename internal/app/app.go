// Package app wires the capture, detection, gesture and particle
// subsystems into the running Mudra visualization pipeline.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/particle"
)

// Status is the four-valued lifecycle state surfaced to presentation
// layers (tray, WebSocket clients).
type Status string

const (
	StatusInitializing Status = "initializing"
	StatusReady        Status = "ready"
	StatusNoHands      Status = "no-hands"
	StatusError        Status = "error"
)

// Pipeline timing constants.
const (
	// IdleFPS is the inference rate while no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the inference rate during active tracking.
	ActiveFPS = 15
	// RenderFPS is the render-tick rate feeding the scene layer.
	RenderFPS = 60
	// IdleTimeout is how long after the last motion the pipeline drops
	// back to the idle inference rate.
	IdleTimeout = 2 * time.Second
	// StaleAfter is how long without a successful detection before the
	// status degrades to no-hands. Presentation-facing only; the
	// simulation keeps running on the decayed control state.
	StaleAfter = 650 * time.Millisecond
)

// Config holds configuration options for the application.
type Config struct {
	CameraID      int
	ParticleCount int
	MotionThresh  float64
	// Seed drives the one-time particle jitter. Zero selects a
	// wall-clock seed.
	Seed int64
}

// App owns both periodic activities of the pipeline: the inference
// loop (camera -> detector -> gesture processor -> snapshot) and the
// render loop (snapshot -> particle engine -> frame sink).
type App struct {
	config    Config
	camera    capture.Camera
	motion    *capture.MotionDetector
	detector  detector.Detector
	processor *gesture.Processor
	engine    *particle.Engine
	sink      FrameSink

	cell snapshotCell

	mu            sync.RWMutex
	enabled       bool
	status        Status
	onStatus      func(Status)
	lastDetection time.Time
	stopCh        chan struct{}
	wg            sync.WaitGroup
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	if config.ParticleCount <= 0 {
		config.ParticleCount = 600
	}
	if config.MotionThresh <= 0 {
		config.MotionThresh = 1.0 // 1% pixel change
	}
	if config.Seed == 0 {
		config.Seed = time.Now().UnixNano()
	}

	a := &App{
		config:    config,
		camera:    capture.NewCamera(config.CameraID),
		motion:    capture.NewMotionDetector(config.MotionThresh),
		processor: gesture.NewProcessor(),
		engine: particle.NewEngine(
			particle.BuildTemplates(config.ParticleCount),
			config.ParticleCount,
			config.Seed,
		),
		enabled: true,
		status:  StatusInitializing,
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	a.cell.Store(Snapshot{Control: gesture.DefaultControlState()})

	return a
}

// SetEnabled enables or disables hand tracking. While disabled the
// render loop keeps animating on the decaying control state.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether hand tracking is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetCamera sets the camera implementation to use.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// SetSink sets the frame sink receiving render-tick output.
func (a *App) SetSink(sink FrameSink) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sink = sink
}

// OnStatus registers a callback invoked whenever the status changes.
func (a *App) OnStatus(fn func(Status)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onStatus = fn
}

// Status returns the current pipeline status.
func (a *App) Status() Status {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.status
}

// Snapshot returns the most recently published gesture snapshot.
func (a *App) Snapshot() Snapshot {
	return a.cell.Load()
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// Start opens the camera and launches both pipeline loops. A camera
// failure is terminal: the status becomes error and the caller decides
// whether to re-initialize. There is no automatic retry.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		a.setStatusLocked(StatusError)
		return err
	}

	a.camera.SetFPS(IdleFPS)
	a.lastDetection = time.Now()
	a.setStatusLocked(StatusReady)

	a.stopCh = make(chan struct{})
	a.wg.Add(2)
	go a.runInferenceLoop(a.stopCh)
	go a.runRenderLoop(a.stopCh)

	log.Println("Visualization pipeline started")
	return nil
}

// Stop halts both loops and releases the camera, motion detector and
// inference session. Safe to call more than once.
func (a *App) Stop() {
	a.mu.Lock()
	stopCh := a.stopCh
	a.stopCh = nil
	a.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
		a.wg.Wait()
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Visualization pipeline stopped")
}

// setStatus updates the status and notifies the callback on change.
func (a *App) setStatus(s Status) {
	a.mu.Lock()
	a.setStatusLocked(s)
	a.mu.Unlock()
}

func (a *App) setStatusLocked(s Status) {
	if a.status == s {
		return
	}
	a.status = s

	if a.onStatus != nil {
		// Callback outside the lock would be nicer, but tray and hub
		// callbacks are cheap and never call back into App.
		a.onStatus(s)
	}
}

// markDetection records a successful detection and refreshes the
// tracking status; absent detections degrade to no-hands once the
// stale window elapses.
func (a *App) markDetection(found bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := time.Now()
	if found {
		a.lastDetection = now
		a.setStatusLocked(StatusReady)
		return
	}

	if a.status == StatusReady && now.Sub(a.lastDetection) > StaleAfter {
		a.setStatusLocked(StatusNoHands)
	}
}
