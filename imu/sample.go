package imu

import "time"

// Vector3 is a three-component cartesian vector.
type Vector3 struct {
	X, Y, Z float64
}

// Sample is a single inertial measurement. Angular velocity is stored in
// radians per second and linear acceleration in meters per second squared,
// matching the SI conventions of the recording format. Samples are treated
// as immutable once created.
type Sample struct {
	Time               time.Time
	AngularVelocity    Vector3 // rad/s
	LinearAcceleration Vector3 // m/s²
}
