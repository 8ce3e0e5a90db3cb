package app

import (
	"sync"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/particle"
)

// Snapshot is the latest gesture-processing output, published once per
// inference tick and read by the render loop under last-value
// semantics: the render loop always uses the most recent snapshot and
// tolerates staleness, never blocking for a fresh one.
type Snapshot struct {
	Control       gesture.ControlState `json:"control"`
	Metrics       gesture.DebugMetrics `json:"metrics"`
	TrackingReady bool                 `json:"trackingReady"`
}

// snapshotCell is a single-slot handoff between the inference loop
// (sole writer) and the render loop (sole reader). No queue, no
// blocking: a store overwrites, a load copies.
type snapshotCell struct {
	mu   sync.RWMutex
	snap Snapshot
}

func (c *snapshotCell) Store(s Snapshot) {
	c.mu.Lock()
	c.snap = s
	c.mu.Unlock()
}

func (c *snapshotCell) Load() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

// FrameSink receives the per-particle output of every render tick.
// Implementations must treat the instances slice as borrowed for the
// duration of the call: the engine reuses it on the next tick.
type FrameSink interface {
	PublishFrame(instances []particle.Instance, snap Snapshot, status Status)
}
