// Package imu holds the sample model shared by the analysis pipeline:
// timestamped inertial measurements and sorted series with range selection.
package imu

import (
	"errors"
	"sort"
	"time"
)

// ErrEmptyInput is returned when a series holds no samples.
var ErrEmptyInput = errors.New("imu: empty sample series")

// Series is a timestamp-sorted sequence of samples. The zero value is an
// empty series. A Series shares its backing storage with sub-ranges derived
// from it; callers must not mutate samples obtained from a series.
type Series struct {
	samples []Sample
}

// NewSeries sorts samples by timestamp and wraps them in a Series. The sort
// is stable, so samples with equal timestamps keep their ingest order. The
// slice is sorted in place and owned by the series afterwards.
func NewSeries(samples []Sample) Series {
	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].Time.Before(samples[j].Time)
	})

	return Series{samples: samples}
}

// Len returns the number of samples in the series.
func (s Series) Len() int {
	return len(s.samples)
}

// Samples returns the underlying sample slice as a read-only view.
func (s Series) Samples() []Sample {
	return s.samples
}

// Range returns the contiguous sub-series with timestamps in [start, end].
// Both bounds resolve with a binary partition-point search over the sorted
// timestamps, so lookup is O(log n).
func (s Series) Range(start, end time.Time) Series {
	lo := sort.Search(len(s.samples), func(i int) bool {
		return !s.samples[i].Time.Before(start)
	})
	hi := sort.Search(len(s.samples), func(i int) bool {
		return s.samples[i].Time.After(end)
	})

	if hi < lo {
		hi = lo
	}

	return Series{samples: s.samples[lo:hi]}
}

// Analysis selects the analysis window for a sweep: it starts offsetSec
// seconds after the first sample and spans durationSec seconds. A
// durationSec <= 0 selects through the end of the recording.
func (s Series) Analysis(offsetSec, durationSec float64) (Series, error) {
	if len(s.samples) == 0 {
		return Series{}, ErrEmptyInput
	}

	start := s.samples[0].Time.Add(secondsToDuration(offsetSec))

	end := s.samples[len(s.samples)-1].Time
	if durationSec > 0 {
		end = start.Add(secondsToDuration(durationSec))
	}

	return s.Range(start, end), nil
}

func secondsToDuration(sec float64) time.Duration {
	return time.Duration(sec * float64(time.Second))
}
