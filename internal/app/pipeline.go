package app

import (
	"log"
	"time"

	"github.com/ayusman/mudra/internal/detector"
)

// runInferenceLoop is the slow pipeline half: it polls the camera at
// the inference cadence, runs hand detection, feeds the gesture signal
// processor and republishes the control-state snapshot.
//
// Loop behavior:
//  1. Start at the idle rate (5 Hz)
//  2. On motion, switch to the active rate (15 Hz)
//  3. Detect hands; a missing hand still runs the processor so the
//     control state decays toward neutral
//  4. After 2 s without motion, drop back to the idle rate
func (a *App) runInferenceLoop(stopCh <-chan struct{}) {
	defer a.wg.Done()

	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				a.publishProcessed(nil)
				continue
			}

			frame, err := a.Camera().ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				if !activeMode {
					activeMode = true
					a.Camera().SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode && time.Since(lastMotionTime) > IdleTimeout {
				activeMode = false
				a.Camera().SetFPS(IdleFPS)
				frameInterval = time.Second / time.Duration(IdleFPS)
				ticker.Reset(frameInterval)
				log.Println("Switched to idle mode")
			}

			if !activeMode {
				frame.Close()
				a.publishProcessed(nil)
				continue
			}

			hands, err := a.Detector().Detect(frame)
			frame.Close()

			if err != nil {
				log.Printf("Error detecting hands: %v", err)
				a.publishProcessed(nil)
				continue
			}

			// Single-hand pipeline: additional hands are ignored, not fused.
			if len(hands) == 0 {
				a.publishProcessed(nil)
				continue
			}
			a.publishProcessed(&hands[0])
		}
	}
}

// publishProcessed runs one gesture-processing tick and stores the
// resulting snapshot in the single-slot cell.
func (a *App) publishProcessed(hand *detector.HandFrame) {
	prior := a.cell.Load().Control
	control, metrics := a.processor.Process(hand, prior)

	a.markDetection(hand != nil)

	a.cell.Store(Snapshot{
		Control:       control,
		Metrics:       metrics,
		TrackingReady: a.Status() == StatusReady,
	})
}

// runRenderLoop is the fast pipeline half: at display cadence it reads
// the latest snapshot, advances the particle engine and hands the
// frame to the sink. The engine state is touched by this goroutine
// only.
func (a *App) runRenderLoop(stopCh <-chan struct{}) {
	defer a.wg.Done()

	ticker := time.NewTicker(time.Second / RenderFPS)
	defer ticker.Stop()

	start := time.Now()
	last := start

	for {
		select {
		case <-stopCh:
			return
		case now := <-ticker.C:
			elapsed := now.Sub(start).Seconds()
			delta := now.Sub(last).Seconds()
			last = now

			snap := a.cell.Load()
			instances := a.engine.Tick(snap.Control, elapsed, delta)

			a.mu.RLock()
			sink := a.sink
			status := a.status
			a.mu.RUnlock()

			if sink != nil {
				sink.PublishFrame(instances, snap, status)
			}
		}
	}
}
