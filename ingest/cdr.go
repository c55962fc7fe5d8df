package ingest

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/TWALL9/imu-allan-variance/imu"
)

// CDR encapsulation identifiers, per the OMG CDR representation used by
// ROS2/DDS. The two-byte identifier precedes every serialized payload.
const (
	cdrBigEndian    = 0x0000
	cdrLittleEndian = 0x0001
)

// Errors returned by CDR decoding.
var (
	ErrShortMessage  = errors.New("ingest: message truncated")
	ErrEncapsulation = errors.New("ingest: unsupported CDR encapsulation")
	ErrStringTooLong = errors.New("ingest: string length exceeds message")
	ErrMissingNUL    = errors.New("ingest: CDR string is not NUL-terminated")
	ErrNegativeStamp = errors.New("ingest: negative timestamp")
)

// cdrDecoder reads aligned CDR primitives from a serialized ROS2 message.
// Primitive alignment is relative to the start of the body, which begins
// immediately after the four-byte encapsulation header.
type cdrDecoder struct {
	buf   []byte
	pos   int
	order binary.ByteOrder
}

func newCDRDecoder(data []byte) (*cdrDecoder, error) {
	if len(data) < 4 {
		return nil, ErrShortMessage
	}

	var order binary.ByteOrder

	switch id := binary.BigEndian.Uint16(data[:2]); id {
	case cdrBigEndian:
		order = binary.BigEndian
	case cdrLittleEndian:
		order = binary.LittleEndian
	default:
		return nil, fmt.Errorf("%w: %#04x", ErrEncapsulation, id)
	}

	return &cdrDecoder{buf: data[4:], order: order}, nil
}

func (d *cdrDecoder) align(n int) {
	if rem := d.pos % n; rem != 0 {
		d.pos += n - rem
	}
}

func (d *cdrDecoder) uint32() (uint32, error) {
	d.align(4)

	if d.pos+4 > len(d.buf) {
		return 0, ErrShortMessage
	}

	v := d.order.Uint32(d.buf[d.pos:])
	d.pos += 4

	return v, nil
}

func (d *cdrDecoder) int32() (int32, error) {
	v, err := d.uint32()

	return int32(v), err
}

func (d *cdrDecoder) float64() (float64, error) {
	d.align(8)

	if d.pos+8 > len(d.buf) {
		return 0, ErrShortMessage
	}

	v := math.Float64frombits(d.order.Uint64(d.buf[d.pos:]))
	d.pos += 8

	return v, nil
}

// string reads a CDR string: a uint32 length that includes the trailing NUL,
// followed by the bytes themselves.
func (d *cdrDecoder) string() (string, error) {
	n, err := d.uint32()
	if err != nil {
		return "", err
	}

	if n == 0 || d.pos+int(n) > len(d.buf) {
		return "", ErrStringTooLong
	}

	raw := d.buf[d.pos : d.pos+int(n)]
	d.pos += int(n)

	if raw[n-1] != 0 {
		return "", ErrMissingNUL
	}

	return string(raw[:n-1]), nil
}

func (d *cdrDecoder) vector3() (imu.Vector3, error) {
	var v imu.Vector3

	var err error
	if v.X, err = d.float64(); err != nil {
		return v, err
	}

	if v.Y, err = d.float64(); err != nil {
		return v, err
	}

	v.Z, err = d.float64()

	return v, err
}

func (d *cdrDecoder) skipFloat64s(n int) error {
	for i := 0; i < n; i++ {
		if _, err := d.float64(); err != nil {
			return err
		}
	}

	return nil
}

// decodeImu decodes one serialized sensor_msgs/msg/Imu message. Only the
// header stamp, angular velocity, and linear acceleration survive; the
// orientation quaternion and the three covariance matrices are validated
// and discarded.
func decodeImu(data []byte) (imu.Sample, error) {
	var out imu.Sample

	d, err := newCDRDecoder(data)
	if err != nil {
		return out, err
	}

	// std_msgs/Header: builtin_interfaces/Time stamp, string frame_id.
	sec, err := d.int32()
	if err != nil {
		return out, err
	}

	nanosec, err := d.uint32()
	if err != nil {
		return out, err
	}

	if sec < 0 {
		return out, fmt.Errorf("%w: %d s", ErrNegativeStamp, sec)
	}

	if _, err := d.string(); err != nil { // frame_id
		return out, err
	}

	// geometry_msgs/Quaternion orientation + its covariance.
	if err := d.skipFloat64s(4 + 9); err != nil {
		return out, err
	}

	angular, err := d.vector3()
	if err != nil {
		return out, err
	}

	if err := d.skipFloat64s(9); err != nil { // angular_velocity_covariance
		return out, err
	}

	linear, err := d.vector3()
	if err != nil {
		return out, err
	}

	if err := d.skipFloat64s(9); err != nil { // linear_acceleration_covariance
		return out, err
	}

	out.Time = time.Unix(int64(sec), int64(nanosec)).UTC()
	out.AngularVelocity = angular
	out.LinearAcceleration = linear

	return out, nil
}
