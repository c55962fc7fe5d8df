// Package allan implements the non-overlapping Allan-variance estimator
// used for IMU noise identification.
//
// The estimator partitions a sample range into disjoint clusters of equal
// size, averages each cluster into one six-component vector, and takes half
// the mean squared first difference between consecutive cluster averages:
//
//	variance[k] = 0.5 * Σ (avg[i][k] - avg[i-1][k])² / (m - 1)
//
// The six components are the three linear-acceleration axes followed by the
// three angular-rate axes. Angular rate is converted from rad/s to deg/s at
// averaging time; this keeps results compatible with Kalibr and the ROS
// allan_variance tooling, which record angular noise in deg/s.
//
// # Usage
//
// Average a sample range at one cluster size, then reduce:
//
//	averages, err := allan.AveragesNonOverlapping(samples, clusterSize)
//	if err != nil {
//	    // too few samples for this cluster size
//	}
//	sigma := allan.Deviation(allan.Variance(averages))
package allan
