package particle

import "math"

// Template is a fixed target formation the ensemble morphs toward.
// Offsets holds one target position per particle; the slice is built
// once at startup and never mutated afterwards.
type Template struct {
	Name    string
	Offsets []Vec3
}

// baseRadius is the characteristic size of every formation before the
// gesture-driven expansion factor is applied.
const baseRadius = 1.5

// BuildTemplates precomputes the full shape table for the given
// particle count. The pinch latch cycles through these in order.
func BuildTemplates(count int) []Template {
	return []Template{
		{Name: "sphere", Offsets: sphereOffsets(count)},
		{Name: "torus", Offsets: torusOffsets(count)},
		{Name: "helix", Offsets: helixOffsets(count)},
		{Name: "wave", Offsets: waveOffsets(count)},
		{Name: "galaxy", Offsets: galaxyOffsets(count)},
	}
}

// sphereOffsets distributes particles over a sphere using the Fibonacci
// lattice, which spaces points evenly without clustering at the poles.
func sphereOffsets(count int) []Vec3 {
	offsets := make([]Vec3, count)
	golden := math.Pi * (3 - math.Sqrt(5))

	for i := range offsets {
		y := 1 - 2*(float64(i)+0.5)/float64(count)
		r := math.Sqrt(1 - y*y)
		theta := golden * float64(i)

		offsets[i] = Vec3{
			X: math.Cos(theta) * r,
			Y: y,
			Z: math.Sin(theta) * r,
		}.Scale(baseRadius)
	}
	return offsets
}

func torusOffsets(count int) []Vec3 {
	offsets := make([]Vec3, count)
	const tube = 0.35

	for i := range offsets {
		fi := float64(i)
		u := fi / float64(count) * 2 * math.Pi
		v := fi * 7.0 // winds around the tube as u advances

		offsets[i] = Vec3{
			X: (1 + tube*math.Cos(v)) * math.Cos(u),
			Y: tube * math.Sin(v),
			Z: (1 + tube*math.Cos(v)) * math.Sin(u),
		}.Scale(baseRadius)
	}
	return offsets
}

func helixOffsets(count int) []Vec3 {
	offsets := make([]Vec3, count)
	const turns = 5.0

	for i := range offsets {
		t := float64(i) / float64(count)
		angle := t * turns * 2 * math.Pi
		// two interleaved strands
		if i%2 == 1 {
			angle += math.Pi
		}

		offsets[i] = Vec3{
			X: 0.7 * math.Cos(angle),
			Y: (t - 0.5) * 2,
			Z: 0.7 * math.Sin(angle),
		}.Scale(baseRadius)
	}
	return offsets
}

func waveOffsets(count int) []Vec3 {
	offsets := make([]Vec3, count)
	side := int(math.Ceil(math.Sqrt(float64(count))))

	for i := range offsets {
		x := float64(i%side)/float64(side)*2 - 1
		z := float64(i/side)/float64(side)*2 - 1

		offsets[i] = Vec3{
			X: x,
			Y: 0.3 * math.Sin(x*3) * math.Cos(z*3),
			Z: z,
		}.Scale(baseRadius)
	}
	return offsets
}

// galaxyOffsets arranges particles in a flat two-armed spiral with
// radius-dependent thickness, loosely resembling a spiral disc.
func galaxyOffsets(count int) []Vec3 {
	offsets := make([]Vec3, count)

	for i := range offsets {
		t := float64(i) / float64(count)
		r := math.Sqrt(t)
		angle := t * 4 * math.Pi
		if i%2 == 1 {
			angle += math.Pi
		}

		offsets[i] = Vec3{
			X: r * math.Cos(angle),
			Y: 0.08 * math.Sin(float64(i)*12.9898) * (1 - r),
			Z: r * math.Sin(angle),
		}.Scale(baseRadius)
	}
	return offsets
}
