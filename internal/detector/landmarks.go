// Package detector provides hand detection interfaces and types for the
// Mudra visualization pipeline.
package detector

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D represents a 3D point in space with x, y, z coordinates.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandFrame is the full 21-point skeleton for one detected hand at one
// instant. Every landmark carries two coordinate variants: Image is
// normalized camera space (x, y in [0,1], origin top-left), World is
// real-world-metric space in meters relative to the hand's approximate
// geometric center. Distance features are computed from World points so
// they stay independent of how far the hand is from the camera.
type HandFrame struct {
	Image      [NumLandmarks]Point3D `json:"image"`
	World      [NumLandmarks]Point3D `json:"world"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}
