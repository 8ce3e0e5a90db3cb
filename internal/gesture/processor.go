package gesture

import (
	"math"

	"github.com/ayusman/mudra/internal/detector"
)

// ControlState is the bounded, smoothed set of scalar parameters that
// drive the visualization. It is an immutable value: the processor
// returns a fresh copy every tick and the animation engine only reads.
// ShapeIndex is monotonic and only ever advanced by the pinch latch.
type ControlState struct {
	ShapeIndex int     `json:"shapeIndex"`
	Expansion  float64 `json:"expansion"` // [0,1]
	Swirl      float64 `json:"swirl"`     // [0,1]
	Intensity  float64 `json:"intensity"` // [0,1]
	Burst      float64 `json:"burst"`     // [0,1]
	Hue        float64 `json:"hue"`       // [0,360)
}

// DebugMetrics are raw diagnostic scalars surfaced to the overlay.
// They are observational only and never feed back into the simulation.
type DebugMetrics struct {
	Pinch    float64 `json:"pinch"`    // thumb-index distance, meters
	Spread   float64 `json:"spread"`   // knuckle spread, meters
	Openness float64 `json:"openness"` // normalized finger extension [0,1]
	Tilt     float64 `json:"tilt"`     // normalized hand tilt [0,1)
}

// LatchState is the pinch-triggered shape counter with hysteresis.
// It is exclusively owned by the Processor.
type LatchState struct {
	Engaged    bool
	ShapeIndex int
}

// Pinch latch thresholds in world-space meters. The gap between enter
// and exit prevents chatter when the pinch distance hovers near a
// single boundary value.
const (
	PinchEnterThreshold = 0.025
	PinchExitThreshold  = 0.045
)

// Per-field smoothing rates. Fields that need fast perceptual feedback
// (burst, expansion) react quickly; hue is kept sluggish because rapid
// hue changes read as flicker.
const (
	expansionRate = 0.20
	swirlRate     = 0.15
	hueRate       = 0.12
	intensityRate = 0.18
	burstRate     = 0.25

	// decayRate pulls every continuous field back to neutral while no
	// hand is in view.
	decayRate = 0.05
)

// Empirical normalization bounds for the raw world-space features.
const (
	spreadMin = 0.04
	spreadMax = 0.09

	extensionMin = 0.02
	extensionMax = 0.05

	depthVarMax = 0.0004
)

// DefaultControlState returns the neutral resting state the
// visualization decays toward when no hand is tracked.
func DefaultControlState() ControlState {
	return ControlState{
		Expansion: 0.25,
		Swirl:     0.10,
		Intensity: 0.30,
		Burst:     0.0,
		Hue:       210,
	}
}

// Processor turns per-tick features (or their absence) into the next
// ControlState. It owns the pinch latch; everything else is stateless.
type Processor struct {
	latch LatchState
}

// NewProcessor creates a Processor with the latch open and the shape
// counter at zero.
func NewProcessor() *Processor {
	return &Processor{}
}

// Latch returns a copy of the current latch state.
func (p *Processor) Latch() LatchState {
	return p.latch
}

// Process advances the control state by one inference tick. A nil frame
// means no hand was detected; the state then decays toward neutral and
// the shape counter carries over. Process never fails.
func (p *Processor) Process(frame *detector.HandFrame, prior ControlState) (ControlState, DebugMetrics) {
	if frame == nil {
		return p.decay(prior), DebugMetrics{
			Pinch:    1, // fully open, no contact
			Spread:   0,
			Openness: 0,
			Tilt:     0.5, // neutral midpoint
		}
	}

	f := ExtractFeatures(frame)

	expansionTarget := normalize(f.SpreadDistance, spreadMin, spreadMax)
	swirlTarget := normalize(f.TiltNormalized, 0, 1)
	intensityTarget := normalize(f.FingerExtension, extensionMin, extensionMax)
	burstTarget := normalize(f.DepthVariance, 0, depthVarMax) * intensityTarget

	// Raising the hand raises the hue: image-space y grows downward, so
	// the palm height is inverted before scaling to degrees.
	hueTarget := wrapHue((1 - clamp(f.PalmY, 0, 1)) * 360)

	next := ControlState{
		ShapeIndex: p.updateLatch(f.PinchDistance),
		Expansion:  clamp(smooth(prior.Expansion, expansionTarget, expansionRate), 0, 1),
		Swirl:      clamp(smooth(prior.Swirl, swirlTarget, swirlRate), 0, 1),
		Intensity:  clamp(smooth(prior.Intensity, intensityTarget, intensityRate), 0, 1),
		Burst:      clamp(smooth(prior.Burst, burstTarget, burstRate), 0, 1),
		Hue:        wrapHue(smooth(prior.Hue, hueTarget, hueRate)),
	}

	return next, DebugMetrics{
		Pinch:    f.PinchDistance,
		Spread:   f.SpreadDistance,
		Openness: intensityTarget,
		Tilt:     f.TiltNormalized,
	}
}

// decay eases every continuous field toward its neutral default while
// keeping the shape counter untouched.
func (p *Processor) decay(prior ControlState) ControlState {
	neutral := DefaultControlState()
	return ControlState{
		ShapeIndex: p.latch.ShapeIndex,
		Expansion:  clamp(smooth(prior.Expansion, neutral.Expansion, decayRate), 0, 1),
		Swirl:      clamp(smooth(prior.Swirl, neutral.Swirl, decayRate), 0, 1),
		Intensity:  clamp(smooth(prior.Intensity, neutral.Intensity, decayRate), 0, 1),
		Burst:      clamp(smooth(prior.Burst, neutral.Burst, decayRate), 0, 1),
		Hue:        wrapHue(smooth(prior.Hue, neutral.Hue, decayRate)),
	}
}

// updateLatch runs the two-state pinch machine and returns the current
// shape index. The counter increments exactly once per OPEN-to-CLOSED
// transition; holding the pinch never re-triggers.
func (p *Processor) updateLatch(pinch float64) int {
	if !p.latch.Engaged && pinch < PinchEnterThreshold {
		p.latch.Engaged = true
		p.latch.ShapeIndex++
	} else if p.latch.Engaged && pinch > PinchExitThreshold {
		p.latch.Engaged = false
	}
	return p.latch.ShapeIndex
}

// smooth is one step of exponential smoothing: prior eased toward
// target by rate.
func smooth(prior, target, rate float64) float64 {
	return prior + (target-prior)*rate
}

// normalize maps value from [min, max] onto [0, 1], clamping at the
// edges. A degenerate range yields 0.
func normalize(value, min, max float64) float64 {
	if max == min {
		return 0
	}
	return clamp((value-min)/(max-min), 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// wrapHue folds any finite degree value into [0, 360).
func wrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}
