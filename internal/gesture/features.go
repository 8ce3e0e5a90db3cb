// Package gesture converts noisy hand-pose landmarks into the stable,
// bounded control parameters that drive the particle visualization.
package gesture

import (
	"math"

	"github.com/ayusman/mudra/internal/detector"
)

// Features is the bundle of scalar geometry derived from one HandFrame.
// All distances are computed in world space (meters) so they do not
// change with the hand's distance from the camera. PalmY is the one
// image-space value: the normalized vertical position of the palm
// center, used to steer hue.
type Features struct {
	PinchDistance   float64 // thumb tip to index tip
	SpreadDistance  float64 // index knuckle to pinky knuckle
	FingerExtension float64 // mean tip-to-PIP distance over five fingers
	PalmY           float64 // palm center vertical position, image space [0,1]
	TiltNormalized  float64 // wrist-to-middle-knuckle angle mapped to [0,1)
	DepthVariance   float64 // population variance of z over all landmarks
}

// extensionPairs lists the fingertip / proximal-joint pairs averaged
// into FingerExtension. The thumb uses its IP joint; the four fingers
// use their PIP joints.
var extensionPairs = [5][2]int{
	{detector.ThumbTip, detector.ThumbIP},
	{detector.IndexTip, detector.IndexPIP},
	{detector.MiddleTip, detector.MiddlePIP},
	{detector.RingTip, detector.RingPIP},
	{detector.PinkyTip, detector.PinkyPIP},
}

// ExtractFeatures computes the feature bundle for a well-formed frame.
// It is a pure function with no failure mode.
func ExtractFeatures(frame *detector.HandFrame) Features {
	w := &frame.World

	var ext float64
	for _, pair := range extensionPairs {
		ext += distance3D(w[pair[0]], w[pair[1]])
	}
	ext /= float64(len(extensionPairs))

	palmCenter := midpoint(frame.Image[detector.Wrist], frame.Image[detector.MiddleMCP])

	return Features{
		PinchDistance:   distance3D(w[detector.ThumbTip], w[detector.IndexTip]),
		SpreadDistance:  distance3D(w[detector.IndexMCP], w[detector.PinkyMCP]),
		FingerExtension: ext,
		PalmY:           palmCenter.Y,
		TiltNormalized:  tiltOf(w[detector.Wrist], w[detector.MiddleMCP]),
		DepthVariance:   depthVariance(w),
	}
}

// tiltOf maps the planar angle of the wrist-to-knuckle vector from
// (-pi, pi] onto [0, 1).
func tiltOf(wrist, middleMCP detector.Point3D) float64 {
	angle := math.Atan2(middleMCP.Y-wrist.Y, middleMCP.X-wrist.X)
	t := (angle + math.Pi) / (2 * math.Pi)
	if t >= 1 {
		t = 0
	}
	return t
}

// depthVariance computes the population variance of the z coordinate
// across all 21 landmarks.
func depthVariance(points *[detector.NumLandmarks]detector.Point3D) float64 {
	var mean float64
	for i := range points {
		mean += points[i].Z
	}
	mean /= detector.NumLandmarks

	var variance float64
	for i := range points {
		d := points[i].Z - mean
		variance += d * d
	}
	return variance / detector.NumLandmarks
}

func distance3D(a, b detector.Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func midpoint(a, b detector.Point3D) detector.Point3D {
	return detector.Point3D{
		X: (a.X + b.X) / 2,
		Y: (a.Y + b.Y) / 2,
		Z: (a.Z + b.Z) / 2,
	}
}
