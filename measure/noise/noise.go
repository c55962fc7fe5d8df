package noise

import (
	"errors"
	"math"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/TWALL9/imu-allan-variance/imu"
	"github.com/TWALL9/imu-allan-variance/stats/allan"
)

// Errors returned by sweep functions.
var (
	ErrInvalidSampleRate = errors.New("noise: sample rate must be positive")
	ErrInvalidBaseStep   = errors.New("noise: base step must be positive")
	ErrPeriodOrder       = errors.New("noise: min period must be at least 1 and less than max period")
	ErrNoSamples         = errors.New("noise: no samples in analysis range")
)

// PeriodResult is one point on the Allan-deviation curve.
type PeriodResult struct {
	Tau       float64    // averaging interval in seconds
	Deviation allan.Vec6 // per-component Allan deviation
}

// Curve is an Allan-deviation curve, strictly ascending in Tau. Periods
// that could not be evaluated are absent, never present with placeholders.
type Curve []PeriodResult

// Sweep evaluates Allan deviations over a range of averaging periods.
//
// Period indices run over [MinPeriod, MaxPeriod); index p corresponds to
// tau = p * BaseStep seconds.
type Sweep struct {
	SampleRate float64 // samples per second of the recording
	MinPeriod  int     // first period index, inclusive
	MaxPeriod  int     // last period index, exclusive
	BaseStep   float64 // tau increment per period index, in seconds
	Workers    int     // concurrent period tasks; <= 0 means GOMAXPROCS
	Logger     *zap.Logger
}

// DefaultSweep returns the reference sweep for the given sample rate:
// periods 1 through 9999 at a 0.1 s base step, covering tau from 0.1 s to
// just under 1000 s. Callers needing a different period range set MinPeriod
// and MaxPeriod directly.
func DefaultSweep(sampleRate float64) Sweep {
	return Sweep{
		SampleRate: sampleRate,
		MinPeriod:  1,
		MaxPeriod:  10000,
		BaseStep:   0.1,
	}
}

// Validate checks that the Sweep parameters are valid.
func (s *Sweep) Validate() error {
	if s.SampleRate <= 0 {
		return ErrInvalidSampleRate
	}

	if s.BaseStep <= 0 {
		return ErrInvalidBaseStep
	}

	if s.MinPeriod < 1 || s.MinPeriod >= s.MaxPeriod {
		return ErrPeriodOrder
	}

	return nil
}

// Run sweeps every period index over the sample range and assembles the
// deviation curve.
//
// The sample range is shared read-only across all period tasks; each task
// owns its cluster-average buffer and writes its result into a dedicated
// slot, so the assembled curve does not depend on scheduling order. A period
// that cannot be evaluated (cluster size zero, or fewer than two clusters)
// is logged and dropped. The only run-level failure beyond invalid
// parameters is an empty sample range.
func (s *Sweep) Run(samples []imu.Sample) (Curve, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	if len(samples) == 0 {
		return nil, ErrNoSamples
	}

	log := s.Logger
	if log == nil {
		log = zap.NewNop()
	}

	workers := s.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]PeriodResult, s.MaxPeriod-s.MinPeriod)
	valid := make([]bool, len(results))

	var group errgroup.Group

	group.SetLimit(workers)

	for p := s.MinPeriod; p < s.MaxPeriod; p++ {
		group.Go(func() error {
			tau := float64(p) * s.BaseStep

			clusterSize := int(math.Floor(tau * s.SampleRate))
			if clusterSize < 1 {
				log.Debug("dropping period: cluster size below one",
					zap.Int("period", p), zap.Float64("tau", tau))

				return nil
			}

			averages, err := allan.AveragesNonOverlapping(samples, clusterSize)
			if err != nil {
				log.Debug("dropping period",
					zap.Int("period", p), zap.Float64("tau", tau), zap.Error(err))

				return nil
			}

			slot := p - s.MinPeriod
			results[slot] = PeriodResult{
				Tau:       tau,
				Deviation: allan.Deviation(allan.Variance(averages)),
			}
			valid[slot] = true

			return nil
		})
	}

	// Period tasks contain their own failures, so the join never errors.
	if err := group.Wait(); err != nil {
		return nil, err
	}

	curve := make(Curve, 0, len(results))

	for i, ok := range valid {
		if ok {
			curve = append(curve, results[i])
		}
	}

	if len(curve) == 0 {
		log.Warn("sweep produced no valid periods",
			zap.Int("samples", len(samples)),
			zap.Float64("sampleRate", s.SampleRate))
	}

	return curve, nil
}
