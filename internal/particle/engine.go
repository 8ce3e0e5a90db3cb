package particle

import (
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ayusman/mudra/internal/gesture"
)

// Color is an 8-bit RGB triple ready for the scene layer.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Instance is the per-particle output of one engine tick: everything
// the rendering collaborator needs to draw one particle.
type Instance struct {
	Position Vec3    `json:"position"`
	Rotation Vec3    `json:"rotation"` // euler radians
	Scale    float64 `json:"scale"`
	Color    Color   `json:"color"`
}

// Motion tuning constants.
const (
	expansionFloor = 0.35
	expansionCeil  = 1.85

	velocityBaseRate  = 0.08
	velocityBurstGain = 0.05

	// Effective position-step bounds. The clamp keeps the simulation
	// stable across large frame gaps (background tab) and avoids
	// runaway extrapolation from unusually small deltas.
	stepMin = 0.45
	stepMax = 1.8

	noiseAmplitude = 0.22

	// hueSpreadDegrees is the width of the hue gradient across the
	// particle population.
	hueSpreadDegrees = 40.0
)

// Engine owns the persistent per-particle kinematic state and advances
// it each render tick. It holds no rendering-API dependency; Tick
// returns plain instances for the scene layer to consume.
type Engine struct {
	templates []Template
	pos       []Vec3
	vel       []Vec3
	instances []Instance
}

// NewEngine creates an engine for count particles. Initial positions
// get a small seeded jitter so the ensemble blooms out of a loose cloud
// instead of a single point; this is the only randomness in the engine.
func NewEngine(templates []Template, count int, seed int64) *Engine {
	rng := rand.New(rand.NewSource(seed))

	e := &Engine{
		templates: templates,
		pos:       make([]Vec3, count),
		vel:       make([]Vec3, count),
		instances: make([]Instance, count),
	}

	for i := range e.pos {
		e.pos[i] = Vec3{
			X: (rng.Float64() - 0.5) * 0.8,
			Y: (rng.Float64() - 0.5) * 0.8,
			Z: (rng.Float64() - 0.5) * 0.8,
		}
	}

	return e
}

// Count returns the fixed particle count.
func (e *Engine) Count() int {
	return len(e.pos)
}

// Tick advances the ensemble by one render frame. elapsed is seconds
// since startup, delta is seconds since the previous frame. Every
// control field is clamped at its point of use, so an out-of-range
// snapshot cannot destabilize the simulation. The returned slice is
// reused across ticks; callers must not retain it.
func (e *Engine) Tick(control gesture.ControlState, elapsed, delta float64) []Instance {
	template := e.templates[templateIndex(control.ShapeIndex, len(e.templates))]

	expansion := expansionFloor + clamp(control.Expansion, 0, 1)*(expansionCeil-expansionFloor)
	swirlAngle := clamp(control.Swirl, 0, 1) * 2 * math.Pi
	glow := clamp(control.Intensity, 0.2, 1)
	burst := clamp(control.Burst, 0, 1)

	// Global two-axis rotation: the slow elapsed terms keep the cloud
	// drifting even when the gesture input is static.
	yaw := swirlAngle*0.35 + elapsed*0.1
	pitch := 0.3*math.Sin(elapsed*0.25) + swirlAngle*0.08

	step := clamp(delta*60, stepMin, stepMax)
	velocityRate := velocityBaseRate + burst*velocityBurstGain

	for i := range e.pos {
		fi := float64(i)

		target := template.Offsets[i].Scale(expansion)
		rotated := target.RotateY(yaw).RotateX(pitch)

		noise := Vec3{
			X: math.Sin(elapsed*1.7 + fi*0.37),
			Y: math.Cos(elapsed*2.3 + fi*0.61),
			Z: math.Sin(elapsed*1.3 + fi*0.83),
		}.Scale(noiseAmplitude * burst)

		destination := rotated.Add(noise)

		e.vel[i] = e.vel[i].Add(destination.Sub(e.pos[i]).Sub(e.vel[i]).Scale(velocityRate))
		e.pos[i] = e.pos[i].Add(e.vel[i].Scale(step))

		// Visual-only wobble; never fed back into kinematic state.
		wobble := Vec3{
			X: math.Sin(elapsed*2.0 + fi*0.50),
			Y: math.Cos(elapsed*1.6 + fi*0.90),
			Z: math.Sin(elapsed*1.9 + fi*0.70),
		}.Scale(0.015)

		scale := (0.05 + 0.04*glow + 0.02*burst) *
			(1 + 0.15*math.Sin(elapsed*3+fi*0.8))

		e.instances[i] = Instance{
			Position: e.pos[i].Add(wobble),
			Rotation: Vec3{
				X: pitch,
				Y: yaw,
				Z: elapsed*(0.2+burst*0.3) + fi*0.05,
			},
			Scale: scale,
			Color: particleColor(control.Hue, fi, float64(len(e.pos)), glow, burst),
		}
	}

	return e.instances
}

// templateIndex resolves a monotonic shape counter to a valid table
// index. Modulo arithmetic guarantees the lookup never goes out of
// bounds for any non-negative counter.
func templateIndex(shapeIndex, templateCount int) int {
	if templateCount <= 0 {
		return 0
	}
	idx := shapeIndex % templateCount
	if idx < 0 {
		idx += templateCount
	}
	return idx
}

// particleColor derives one particle's color: the base hue offset by a
// fixed gradient across the population, with saturation and lightness
// driven by glow and burst energy, all held inside a safe display range.
func particleColor(baseHue, fi, n, glow, burst float64) Color {
	hue := math.Mod(baseHue+fi/n*hueSpreadDegrees, 360)
	if hue < 0 {
		hue += 360
	}

	saturation := clamp(0.55+0.35*glow, 0, 1)
	lightness := clamp(0.40+0.25*glow+0.15*burst, 0.2, 0.85)

	r, g, b := colorful.Hsl(hue, saturation, lightness).Clamped().RGB255()
	return Color{R: r, G: g, B: b}
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
