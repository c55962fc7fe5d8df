package summary

import (
	"testing"

	"github.com/TWALL9/imu-allan-variance/imu"
	"github.com/TWALL9/imu-allan-variance/internal/testutil"
)

func TestCalculateEmpty(t *testing.T) {
	st := Calculate(nil)

	if st.Count != 0 {
		t.Fatalf("count = %d, want 0", st.Count)
	}

	if st.Accel[0] != (AxisStats{}) {
		t.Errorf("accel stats = %+v, want zero value", st.Accel[0])
	}
}

func TestCalculateConstant(t *testing.T) {
	samples := testutil.ConstantSamples(50, 100,
		imu.Vector3{X: 9.81, Y: -1, Z: 0.5}, imu.Vector3{X: 0.02})

	st := Calculate(samples)

	if st.Count != 50 {
		t.Fatalf("count = %d, want 50", st.Count)
	}

	testutil.RequireNearlyEqual(t, st.Accel[0].Mean, 9.81, 1e-12)
	testutil.RequireNearlyEqual(t, st.Accel[0].Variance, 0, 1e-12)
	testutil.RequireNearlyEqual(t, st.Accel[1].Min, -1, 1e-12)
	testutil.RequireNearlyEqual(t, st.Accel[1].Max, -1, 1e-12)
	testutil.RequireNearlyEqual(t, st.Gyro[0].Mean, 0.02, 1e-12)
}

func TestCalculateKnownSequence(t *testing.T) {
	samples := testutil.ConstantSamples(4, 100, imu.Vector3{}, imu.Vector3{})
	for i := range samples {
		samples[i].LinearAcceleration.X = float64(i + 1) // 1, 2, 3, 4
	}

	st := Calculate(samples)

	testutil.RequireNearlyEqual(t, st.Accel[0].Mean, 2.5, 1e-12)
	testutil.RequireNearlyEqual(t, st.Accel[0].Variance, 1.25, 1e-12)
	testutil.RequireNearlyEqual(t, st.Accel[0].Min, 1, 1e-12)
	testutil.RequireNearlyEqual(t, st.Accel[0].Max, 4, 1e-12)
}
