package sensor

import (
	"math"
	"testing"
)

func TestSnapshotBeforeFirstReading(t *testing.T) {
	s := NewState(10, 490, 650)

	snap := s.Snapshot()
	if snap.TemperatureValid {
		t.Error("TemperatureValid = true before any reading")
	}
	if snap.Samples != 0 {
		t.Errorf("Samples = %d, want 0", snap.Samples)
	}
}

func TestCurrentAverageBoundedWindow(t *testing.T) {
	s := NewState(3, 490, 650)

	for _, v := range []float64{10, 20, 30, 40} {
		s.Apply(Reading{Current: v})
	}

	snap := s.Snapshot()
	if snap.Samples != 3 {
		t.Fatalf("Samples = %d, want window size 3", snap.Samples)
	}
	if snap.Current != 40 {
		t.Errorf("Current = %v, want latest value 40", snap.Current)
	}
	if math.Abs(snap.CurrentAverage-30) > 1e-9 {
		t.Errorf("CurrentAverage = %v, want 30 (oldest sample dropped)", snap.CurrentAverage)
	}
}

func TestRelayLatching(t *testing.T) {
	s := NewState(10, 490, 650)

	s.Apply(Reading{Light: 700})
	if !s.Snapshot().RelayClosed {
		t.Fatal("relay open above high threshold")
	}

	// Between thresholds the relay holds its position.
	s.Apply(Reading{Light: 600})
	if !s.Snapshot().RelayClosed {
		t.Error("relay released between thresholds")
	}

	s.Apply(Reading{Light: 400})
	if s.Snapshot().RelayClosed {
		t.Error("relay still closed below low threshold")
	}

	s.Apply(Reading{Light: 600})
	if s.Snapshot().RelayClosed {
		t.Error("relay closed between thresholds after release")
	}
}

func TestMotionTracksLatestReading(t *testing.T) {
	s := NewState(10, 490, 650)

	s.Apply(Reading{Motion: true, Temperature: 21.5})
	snap := s.Snapshot()
	if !snap.Motion {
		t.Error("Motion = false after motion reading")
	}
	if !snap.TemperatureValid || snap.Temperature != 21.5 {
		t.Errorf("Temperature = %v (valid=%v), want 21.5", snap.Temperature, snap.TemperatureValid)
	}

	s.Apply(Reading{Motion: false, Temperature: 21.5})
	if s.Snapshot().Motion {
		t.Error("Motion = true after quiet reading")
	}
}
