package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []HandFrame
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hand frames that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandFrame) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandFrame, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// projectImage derives plausible normalized image coordinates from world
// coordinates so fixtures stay consistent across both variants.
func projectImage(w Point3D) Point3D {
	return Point3D{
		X: 0.5 + w.X*3,
		Y: 0.55 + w.Y*3,
		Z: w.Z,
	}
}

// OpenHandFrame returns a preset HandFrame representing an open palm held
// upright, fingers extended and spread. World coordinates are in meters,
// roughly matching MediaPipe world-landmark output for an adult hand.
func OpenHandFrame() HandFrame {
	frame := HandFrame{
		Handedness: "Right",
		Score:      0.95,
	}

	w := &frame.World

	// Palm: wrist at the bottom, knuckle row above it (y grows downward)
	w[Wrist] = Point3D{X: 0, Y: 0.05, Z: 0}
	w[IndexMCP] = Point3D{X: -0.030, Y: -0.028, Z: 0}
	w[MiddleMCP] = Point3D{X: 0, Y: -0.030, Z: 0}
	w[RingMCP] = Point3D{X: 0.018, Y: -0.026, Z: 0.002}
	w[PinkyMCP] = Point3D{X: 0.035, Y: -0.020, Z: 0.005}

	// Thumb swung out to the side
	w[ThumbCMC] = Point3D{X: -0.025, Y: 0.020, Z: 0}
	w[ThumbMCP] = Point3D{X: -0.045, Y: 0.000, Z: 0.005}
	w[ThumbIP] = Point3D{X: -0.055, Y: -0.020, Z: 0.010}
	w[ThumbTip] = Point3D{X: -0.060, Y: -0.035, Z: 0.010}

	// Index finger extended upward
	w[IndexPIP] = Point3D{X: -0.032, Y: -0.052, Z: 0}
	w[IndexDIP] = Point3D{X: -0.034, Y: -0.075, Z: 0}
	w[IndexTip] = Point3D{X: -0.035, Y: -0.095, Z: 0}

	// Middle finger extended upward (slightly longer)
	w[MiddlePIP] = Point3D{X: 0.000, Y: -0.056, Z: 0}
	w[MiddleDIP] = Point3D{X: 0.000, Y: -0.080, Z: 0}
	w[MiddleTip] = Point3D{X: 0.000, Y: -0.102, Z: 0}

	// Ring finger extended upward
	w[RingPIP] = Point3D{X: 0.020, Y: -0.050, Z: 0.002}
	w[RingDIP] = Point3D{X: 0.021, Y: -0.072, Z: 0.002}
	w[RingTip] = Point3D{X: 0.022, Y: -0.092, Z: 0.002}

	// Pinky finger extended upward
	w[PinkyPIP] = Point3D{X: 0.038, Y: -0.040, Z: 0.005}
	w[PinkyDIP] = Point3D{X: 0.040, Y: -0.058, Z: 0.005}
	w[PinkyTip] = Point3D{X: 0.041, Y: -0.074, Z: 0.005}

	for i := 0; i < NumLandmarks; i++ {
		frame.Image[i] = projectImage(frame.World[i])
	}

	return frame
}

// PinchHandFrame returns an open-hand pose with the thumb tip moved so the
// thumb-to-index distance equals exactly dist (in meters). Useful for
// exercising the pinch latch thresholds in tests.
func PinchHandFrame(dist float64) HandFrame {
	frame := OpenHandFrame()

	tip := frame.World[IndexTip]
	frame.World[ThumbTip] = Point3D{X: tip.X + dist, Y: tip.Y, Z: tip.Z}
	frame.Image[ThumbTip] = projectImage(frame.World[ThumbTip])

	return frame
}

// FistHandFrame returns a closed-fist pose: fingertips curled back toward
// the palm, low spread, minimal finger extension.
func FistHandFrame() HandFrame {
	frame := OpenHandFrame()

	w := &frame.World

	// Curl every fingertip back near its MCP joint
	w[IndexPIP] = Point3D{X: -0.031, Y: -0.044, Z: -0.010}
	w[IndexDIP] = Point3D{X: -0.030, Y: -0.036, Z: -0.022}
	w[IndexTip] = Point3D{X: -0.029, Y: -0.026, Z: -0.024}

	w[MiddlePIP] = Point3D{X: 0.000, Y: -0.047, Z: -0.010}
	w[MiddleDIP] = Point3D{X: 0.000, Y: -0.038, Z: -0.024}
	w[MiddleTip] = Point3D{X: 0.000, Y: -0.027, Z: -0.026}

	w[RingPIP] = Point3D{X: 0.019, Y: -0.042, Z: -0.010}
	w[RingDIP] = Point3D{X: 0.020, Y: -0.034, Z: -0.022}
	w[RingTip] = Point3D{X: 0.020, Y: -0.024, Z: -0.024}

	w[PinkyPIP] = Point3D{X: 0.037, Y: -0.034, Z: -0.008}
	w[PinkyDIP] = Point3D{X: 0.038, Y: -0.027, Z: -0.018}
	w[PinkyTip] = Point3D{X: 0.038, Y: -0.018, Z: -0.020}

	// Thumb folded across the curled fingers
	w[ThumbIP] = Point3D{X: -0.040, Y: -0.022, Z: -0.012}
	w[ThumbTip] = Point3D{X: -0.028, Y: -0.028, Z: -0.018}

	for i := 0; i < NumLandmarks; i++ {
		frame.Image[i] = projectImage(frame.World[i])
	}

	return frame
}
