package ingest

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
	"time"

	"github.com/foxglove/mcap/go/mcap"

	"github.com/TWALL9/imu-allan-variance/imu"
)

// writeTestBag assembles an in-memory MCAP recording. Each entry in
// imuStamps becomes one IMU message on /imu0, in the given order; the bag
// also carries a non-IMU channel that must be skipped.
func writeTestBag(t *testing.T, imuStamps []time.Time) []byte {
	t.Helper()

	var buf bytes.Buffer

	w, err := mcap.NewWriter(&buf, &mcap.WriterOptions{
		Chunked:   true,
		ChunkSize: 1024,
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := w.WriteHeader(&mcap.Header{Profile: "ros2"}); err != nil {
		t.Fatal(err)
	}

	if err := w.WriteSchema(&mcap.Schema{
		ID:       1,
		Name:     imuSchemaName,
		Encoding: "ros2msg",
	}); err != nil {
		t.Fatal(err)
	}

	if err := w.WriteChannel(&mcap.Channel{
		ID:              0,
		SchemaID:        1,
		Topic:           "/imu0",
		MessageEncoding: "cdr",
	}); err != nil {
		t.Fatal(err)
	}

	if err := w.WriteSchema(&mcap.Schema{
		ID:       2,
		Name:     "sensor_msgs/msg/MagneticField",
		Encoding: "ros2msg",
	}); err != nil {
		t.Fatal(err)
	}

	if err := w.WriteChannel(&mcap.Channel{
		ID:              1,
		SchemaID:        2,
		Topic:           "/mag",
		MessageEncoding: "cdr",
	}); err != nil {
		t.Fatal(err)
	}

	for i, stamp := range imuStamps {
		sample := imu.Sample{
			Time:               stamp,
			AngularVelocity:    imu.Vector3{X: float64(i)},
			LinearAcceleration: imu.Vector3{Z: 9.81},
		}

		if err := w.WriteMessage(&mcap.Message{
			ChannelID:   0,
			Sequence:    uint32(i),
			LogTime:     uint64(stamp.UnixNano()),
			PublishTime: uint64(stamp.UnixNano()),
			Data:        encodeImu(sample, "imu_link", binary.LittleEndian),
		}); err != nil {
			t.Fatal(err)
		}
	}

	// A message on the non-IMU channel: its payload is deliberately not a
	// valid Imu encoding and must never reach the decoder.
	if err := w.WriteMessage(&mcap.Message{
		ChannelID: 1,
		LogTime:   1,
		Data:      []byte{0xde, 0xad},
	}); err != nil {
		t.Fatal(err)
	}

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	return buf.Bytes()
}

func TestReadSortsTopicSeries(t *testing.T) {
	base := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

	// Out of order on purpose.
	stamps := []time.Time{
		base.Add(2 * time.Second),
		base,
		base.Add(time.Second),
	}

	bag := writeTestBag(t, stamps)

	series, err := Read(bytes.NewReader(bag), nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(series) != 1 {
		t.Fatalf("topics = %d, want 1", len(series))
	}

	s, ok := series["/imu0"]
	if !ok {
		t.Fatal("missing /imu0 series")
	}

	if s.Len() != 3 {
		t.Fatalf("samples = %d, want 3", s.Len())
	}

	samples := s.Samples()
	for i := 1; i < len(samples); i++ {
		if samples[i].Time.Before(samples[i-1].Time) {
			t.Fatalf("series not sorted at index %d", i)
		}
	}

	if samples[0].LinearAcceleration.Z != 9.81 {
		t.Errorf("accel z = %v, want 9.81", samples[0].LinearAcceleration.Z)
	}
}

func TestReadNoImuChannels(t *testing.T) {
	bag := writeTestBag(t, nil)

	_, err := Read(bytes.NewReader(bag), nil)
	if !errors.Is(err, ErrNoImuMessages) {
		t.Fatalf("err = %v, want ErrNoImuMessages", err)
	}
}

func TestReadBagMissingFile(t *testing.T) {
	_, err := ReadBag("does-not-exist.mcap", nil)
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
