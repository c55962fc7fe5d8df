package imu

import (
	"errors"
	"testing"
	"time"
)

var testBase = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// seriesAt builds a series with one sample per given offset in seconds.
func seriesAt(offsets ...float64) Series {
	samples := make([]Sample, len(offsets))
	for i, off := range offsets {
		samples[i] = Sample{Time: testBase.Add(time.Duration(off * float64(time.Second)))}
	}

	return NewSeries(samples)
}

func TestNewSeriesSorts(t *testing.T) {
	s := seriesAt(3, 1, 2, 0)

	if s.Len() != 4 {
		t.Fatalf("len = %d, want 4", s.Len())
	}

	samples := s.Samples()
	for i := 1; i < len(samples); i++ {
		if samples[i].Time.Before(samples[i-1].Time) {
			t.Fatalf("samples not sorted at index %d", i)
		}
	}
}

func TestRangeBounds(t *testing.T) {
	s := seriesAt(0, 1, 2, 3, 4, 5, 6, 7, 8, 9)

	tests := []struct {
		name       string
		start, end float64
		want       int
	}{
		{"inner", 2, 5, 4},
		{"whole", 0, 9, 10},
		{"start inclusive", 3, 3, 1},
		{"before first", -5, -1, 0},
		{"after last", 10, 20, 0},
		{"inverted", 5, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := testBase.Add(time.Duration(tt.start * float64(time.Second)))
			end := testBase.Add(time.Duration(tt.end * float64(time.Second)))

			got := s.Range(start, end).Len()
			if got != tt.want {
				t.Errorf("Range(%v, %v) len = %d, want %d", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestAnalysisWindow(t *testing.T) {
	s := seriesAt(0, 1, 2, 3, 4, 5, 6, 7, 8, 9)

	tests := []struct {
		name     string
		offset   float64
		duration float64
		want     int
	}{
		{"full recording", 0, 0, 10},
		{"offset only", 2, 0, 8},
		{"offset and duration", 2, 3, 4}, // [2 s, 5 s], end bound inclusive
		{"duration past end", 8, 100, 2},
		{"offset past end", 100, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := s.Analysis(tt.offset, tt.duration)
			if err != nil {
				t.Fatal(err)
			}

			if sub.Len() != tt.want {
				t.Errorf("Analysis(%v, %v) len = %d, want %d",
					tt.offset, tt.duration, sub.Len(), tt.want)
			}
		})
	}
}

func TestAnalysisEmptySeries(t *testing.T) {
	var s Series

	_, err := s.Analysis(0, 0)
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("err = %v, want ErrEmptyInput", err)
	}
}

func TestRangeSharesStorage(t *testing.T) {
	s := seriesAt(0, 1, 2, 3)

	sub := s.Range(testBase.Add(time.Second), testBase.Add(2*time.Second))
	if sub.Len() != 2 {
		t.Fatalf("len = %d, want 2", sub.Len())
	}

	// The sub-range must be a view into the parent, not a copy.
	if &sub.Samples()[0] != &s.Samples()[1] {
		t.Error("sub-range does not alias parent storage")
	}
}
