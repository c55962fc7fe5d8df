// Package testutil provides deterministic IMU signal generators and float
// tolerance assertions shared by the analysis tests.
package testutil

import (
	"math/rand"
	"time"

	"github.com/TWALL9/imu-allan-variance/imu"
)

// baseTime anchors generated recordings at a fixed instant so failures
// reproduce exactly.
var baseTime = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// sampleInterval returns the spacing between consecutive samples at rateHz.
func sampleInterval(rateHz float64) time.Duration {
	return time.Duration(float64(time.Second) / rateHz)
}

// ConstantSamples generates n evenly spaced samples at rateHz, all carrying
// the same acceleration and angular rate.
func ConstantSamples(n int, rateHz float64, accel, gyro imu.Vector3) []imu.Sample {
	step := sampleInterval(rateHz)
	out := make([]imu.Sample, n)

	for i := range out {
		out[i] = imu.Sample{
			Time:               baseTime.Add(time.Duration(i) * step),
			AngularVelocity:    gyro,
			LinearAcceleration: accel,
		}
	}

	return out
}

// NoisySamples generates n evenly spaced samples at rateHz with uniform
// noise of the given amplitudes on every axis. The seed fixes the sequence
// for reproducibility.
func NoisySamples(seed int64, n int, rateHz, accelAmp, gyroAmp float64) []imu.Sample {
	rng := rand.New(rand.NewSource(seed))
	step := sampleInterval(rateHz)
	out := make([]imu.Sample, n)

	noise := func(amp float64) float64 {
		return (rng.Float64()*2 - 1) * amp
	}

	for i := range out {
		out[i] = imu.Sample{
			Time: baseTime.Add(time.Duration(i) * step),
			AngularVelocity: imu.Vector3{
				X: noise(gyroAmp), Y: noise(gyroAmp), Z: noise(gyroAmp),
			},
			LinearAcceleration: imu.Vector3{
				X: noise(accelAmp), Y: noise(accelAmp), Z: noise(accelAmp),
			},
		}
	}

	return out
}
