package allan

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/TWALL9/imu-allan-variance/imu"
)

// Errors returned by the estimator.
var (
	ErrClusterTooSmall      = errors.New("allan: cluster size must be at least 1")
	ErrInsufficientClusters = errors.New("allan: fewer than two clusters available")
)

// Vec6 is one six-component measurement vector.
//
// Index 0-2: linear acceleration in m/s².
// Index 3-5: angular rate in deg/s.
type Vec6 [6]float64

// radToDeg converts radians to degrees.
func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// AveragesNonOverlapping reduces samples to one average per cluster of
// clusterSize consecutive samples. Clusters are disjoint; a trailing partial
// cluster is discarded. Angular rate is converted to deg/s as it is
// accumulated. Typically clusterSize is tau divided by the sampling interval.
//
// Returns ErrClusterTooSmall when clusterSize < 1 and ErrInsufficientClusters
// when fewer than two full clusters fit in the sample range (the variance of
// a single average is undefined).
func AveragesNonOverlapping(samples []imu.Sample, clusterSize int) ([]Vec6, error) {
	if clusterSize < 1 {
		return nil, ErrClusterTooSmall
	}

	nClusters := len(samples) / clusterSize
	if nClusters < 2 {
		return nil, fmt.Errorf("allan: %d samples at cluster size %d: %w",
			len(samples), clusterSize, ErrInsufficientClusters)
	}

	inv := 1 / float64(clusterSize)
	averages := make([]Vec6, nClusters)

	for i := range averages {
		var sum Vec6

		for _, m := range samples[i*clusterSize : (i+1)*clusterSize] {
			v := Vec6{
				m.LinearAcceleration.X,
				m.LinearAcceleration.Y,
				m.LinearAcceleration.Z,
				radToDeg(m.AngularVelocity.X),
				radToDeg(m.AngularVelocity.Y),
				radToDeg(m.AngularVelocity.Z),
			}
			vecmath.AddBlockInPlace(sum[:], v[:])
		}

		vecmath.ScaleBlock(averages[i][:], sum[:], inv)
	}

	return averages, nil
}

// Variance computes the non-overlapping Allan variance of each component
// across consecutive cluster averages. The caller must supply at least two
// averages; AveragesNonOverlapping enforces that precondition.
func Variance(averages []Vec6) Vec6 {
	var sumSq, diff, sq Vec6

	for i := 1; i < len(averages); i++ {
		for k := range diff {
			diff[k] = averages[i][k] - averages[i-1][k]
		}

		vecmath.MulBlock(sq[:], diff[:], diff[:])
		vecmath.AddBlockInPlace(sumSq[:], sq[:])
	}

	var out Vec6

	vecmath.ScaleBlock(out[:], sumSq[:], 0.5/float64(len(averages)-1))

	return out
}

// Deviation returns the elementwise square root of a variance vector. Every
// Allan variance is a scaled sum of squares, so the root always exists.
func Deviation(v Vec6) Vec6 {
	var out Vec6
	for k, x := range v {
		out[k] = math.Sqrt(x)
	}

	return out
}
