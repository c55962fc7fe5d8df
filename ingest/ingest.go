// Package ingest reads IMU sample series out of ROS2 bag recordings in the
// MCAP container format. Channels whose schema is sensor_msgs/msg/Imu are
// CDR-decoded and grouped per topic; everything else in the bag is skipped.
package ingest

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/foxglove/mcap/go/mcap"
	"go.uber.org/zap"

	"github.com/TWALL9/imu-allan-variance/imu"
)

// imuSchemaName is the ROS2 schema carried by IMU channels.
const imuSchemaName = "sensor_msgs/msg/Imu"

// ErrNoImuMessages is returned when a recording holds no IMU channels.
var ErrNoImuMessages = errors.New("ingest: no IMU messages in recording")

// ReadBag opens an MCAP file and extracts one sorted sample series per IMU
// topic. A nil logger is allowed.
func ReadBag(path string, log *zap.Logger) (map[string]imu.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open %s: %w", path, err)
	}
	defer f.Close()

	return Read(f, log)
}

// Read extracts one sorted sample series per IMU topic from an MCAP stream.
// A decode failure on any IMU message fails the whole read: a partially
// decoded recording would silently bias the variance estimate downstream.
func Read(rs io.ReadSeeker, log *zap.Logger) (map[string]imu.Series, error) {
	if log == nil {
		log = zap.NewNop()
	}

	reader, err := mcap.NewReader(rs)
	if err != nil {
		return nil, fmt.Errorf("ingest: open mcap: %w", err)
	}
	defer reader.Close()

	it, err := reader.Messages()
	if err != nil {
		return nil, fmt.Errorf("ingest: message stream: %w", err)
	}

	byTopic := make(map[string][]imu.Sample)

	for {
		schema, channel, message, err := it.Next(nil)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("ingest: read message: %w", err)
		}

		if schema == nil || schema.Name != imuSchemaName {
			continue
		}

		sample, err := decodeImu(message.Data)
		if err != nil {
			return nil, fmt.Errorf("ingest: topic %s: %w", channel.Topic, err)
		}

		if _, seen := byTopic[channel.Topic]; !seen {
			log.Info("found IMU topic", zap.String("topic", channel.Topic))
		}

		byTopic[channel.Topic] = append(byTopic[channel.Topic], sample)
	}

	if len(byTopic) == 0 {
		return nil, ErrNoImuMessages
	}

	series := make(map[string]imu.Series, len(byTopic))
	for topic, samples := range byTopic {
		series[topic] = imu.NewSeries(samples)
		log.Info("ingested topic",
			zap.String("topic", topic), zap.Int("samples", len(samples)))
	}

	return series, nil
}
