// Package summary computes per-axis signal statistics over an IMU sample
// range. It is a quick sanity check on a recording before the Allan sweep:
// an unexpected mean or variance usually points at a misconfigured topic or
// a truncated analysis window.
package summary

import "github.com/TWALL9/imu-allan-variance/imu"

// AxisStats holds single-pass statistics for one measurement axis.
type AxisStats struct {
	Mean     float64
	Variance float64 // population variance
	Min      float64
	Max      float64
}

// Stats holds per-axis statistics for a sample range. Acceleration axes are
// in m/s², angular-rate axes in rad/s (no unit conversion happens here).
type Stats struct {
	Count int
	Accel [3]AxisStats
	Gyro  [3]AxisStats
}

// axisAccumulator tracks one axis with Welford's online algorithm for
// numerically stable variance on long recordings.
type axisAccumulator struct {
	n    int
	mean float64
	m2   float64
	min  float64
	max  float64
}

func (a *axisAccumulator) add(x float64) {
	a.n++
	if a.n == 1 {
		a.min = x
		a.max = x
	} else {
		if x < a.min {
			a.min = x
		}
		if x > a.max {
			a.max = x
		}
	}

	delta := x - a.mean
	a.mean += delta / float64(a.n)
	a.m2 += delta * (x - a.mean)
}

func (a *axisAccumulator) stats() AxisStats {
	if a.n == 0 {
		return AxisStats{}
	}

	return AxisStats{
		Mean:     a.mean,
		Variance: a.m2 / float64(a.n),
		Min:      a.min,
		Max:      a.max,
	}
}

// Calculate computes per-axis statistics over samples in a single pass.
func Calculate(samples []imu.Sample) Stats {
	var acc [6]axisAccumulator

	for _, m := range samples {
		acc[0].add(m.LinearAcceleration.X)
		acc[1].add(m.LinearAcceleration.Y)
		acc[2].add(m.LinearAcceleration.Z)
		acc[3].add(m.AngularVelocity.X)
		acc[4].add(m.AngularVelocity.Y)
		acc[5].add(m.AngularVelocity.Z)
	}

	out := Stats{Count: len(samples)}
	for i := 0; i < 3; i++ {
		out.Accel[i] = acc[i].stats()
		out.Gyro[i] = acc[i+3].stats()
	}

	return out
}
