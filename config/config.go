// Package config loads the per-topic analysis configuration. The file is a
// YAML list with one entry per recorded IMU topic:
//
//	- imu_topic: /sensors/imu0
//	  measure_rate: 200.0
//	  sequence_duration: 3600.0
//	  sequence_offset: 10.0
//
// sequence_duration is optional; omitting it analyzes through the end of
// the recording. sequence_offset defaults to 0 and imu_rate to 100.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Errors returned by configuration loading.
var (
	ErrNoTopics     = errors.New("config: no topics configured")
	ErrMissingTopic = errors.New("config: imu_topic is required")
	ErrInvalidRate  = errors.New("config: measure_rate must be positive")
)

// DefaultImuRate is assumed when a topic omits imu_rate.
const DefaultImuRate = 100.0

// Topic holds the analysis parameters for one recorded IMU topic.
type Topic struct {
	// ImuTopic names the recording channel to analyze.
	ImuTopic string `yaml:"imu_topic"`

	// ImuRate is the nominal sensor rate in Hz. It is retained for
	// compatibility with the ROS tool's configuration files; the analysis
	// derives nothing from it.
	ImuRate float64 `yaml:"imu_rate"`

	// MeasureRate is the reciprocal of the sampling interval in Hz.
	MeasureRate float64 `yaml:"measure_rate"`

	// SequenceDuration limits the analysis window, in seconds. Nil means
	// the window extends to the end of the recording.
	SequenceDuration *float64 `yaml:"sequence_duration"`

	// SequenceOffset shifts the analysis window start, in seconds from the
	// first recorded sample.
	SequenceOffset float64 `yaml:"sequence_offset"`
}

// Load reads and validates a topic configuration file.
func Load(path string) ([]Topic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	return Parse(data)
}

// Parse validates a YAML topic list and applies defaults.
func Parse(data []byte) ([]Topic, error) {
	var topics []Topic

	if err := yaml.Unmarshal(data, &topics); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}

	if len(topics) == 0 {
		return nil, ErrNoTopics
	}

	for i := range topics {
		t := &topics[i]

		if t.ImuTopic == "" {
			return nil, fmt.Errorf("config: entry %d: %w", i, ErrMissingTopic)
		}

		if t.MeasureRate <= 0 {
			return nil, fmt.Errorf("config: topic %q: %w", t.ImuTopic, ErrInvalidRate)
		}

		if t.ImuRate == 0 {
			t.ImuRate = DefaultImuRate
		}
	}

	return topics, nil
}
