// Package sensor holds the room's latest hardware readings. Polling the
// hardware itself happens outside this process; readings arrive through
// Apply and everything else reads a point-in-time Snapshot.
package sensor

import "sync"

// Reading is one polling cycle's worth of sensor values.
type Reading struct {
	Motion      bool
	Temperature float64
	Light       float64
	Current     float64 // mA
}

// Snapshot is a consistent view of the room state.
type Snapshot struct {
	Motion           bool
	RelayClosed      bool
	Temperature      float64
	TemperatureValid bool
	Light            float64
	Current          float64
	CurrentAverage   float64
	Samples          int
}

// State aggregates readings. The relay (blind motor) latches closed above
// the high light threshold and releases below the low one; in between it
// keeps its previous position. The current draw is smoothed over a bounded
// window of samples.
type State struct {
	mu sync.RWMutex

	motion      bool
	relayClosed bool
	temp        float64
	tempValid   bool
	light       float64

	window  int
	samples []float64

	lightLow  float64
	lightHigh float64
}

func NewState(window int, lightLow, lightHigh float64) *State {
	if window < 1 {
		window = 1
	}
	return &State{
		window:    window,
		lightLow:  lightLow,
		lightHigh: lightHigh,
	}
}

// Apply folds a reading into the state.
func (s *State) Apply(r Reading) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.motion = r.Motion
	s.temp = r.Temperature
	s.tempValid = true
	s.light = r.Light

	s.samples = append(s.samples, r.Current)
	if len(s.samples) > s.window {
		s.samples = s.samples[1:]
	}

	if r.Light > s.lightHigh {
		s.relayClosed = true
	} else if r.Light < s.lightLow {
		s.relayClosed = false
	}
}

// Snapshot returns the current values. The zero snapshot (no readings yet)
// has TemperatureValid false and zero samples.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Motion:           s.motion,
		RelayClosed:      s.relayClosed,
		Temperature:      s.temp,
		TemperatureValid: s.tempValid,
		Light:            s.light,
		Samples:          len(s.samples),
	}
	if len(s.samples) > 0 {
		snap.Current = s.samples[len(s.samples)-1]
		var total float64
		for _, v := range s.samples {
			total += v
		}
		snap.CurrentAverage = total / float64(len(s.samples))
	}
	return snap
}
