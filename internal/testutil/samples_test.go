package testutil

import (
	"testing"
	"time"

	"github.com/TWALL9/imu-allan-variance/imu"
)

func TestConstantSamples(t *testing.T) {
	accel := imu.Vector3{X: 1, Y: 2, Z: 3}
	samples := ConstantSamples(10, 100, accel, imu.Vector3{})

	if len(samples) != 10 {
		t.Fatalf("len = %d, want 10", len(samples))
	}

	for i, s := range samples {
		if s.LinearAcceleration != accel {
			t.Fatalf("sample %d accel = %+v, want %+v", i, s.LinearAcceleration, accel)
		}
	}

	gap := samples[1].Time.Sub(samples[0].Time)
	if gap != 10*time.Millisecond {
		t.Errorf("spacing = %v, want 10ms", gap)
	}
}

func TestNoisySamplesDeterministic(t *testing.T) {
	a := NoisySamples(5, 100, 200, 0.3, 0.05)
	b := NoisySamples(5, 100, 200, 0.3, 0.05)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs between identically seeded runs", i)
		}
	}
}
