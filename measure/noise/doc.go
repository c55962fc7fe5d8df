// Package noise sweeps averaging periods over a recorded IMU sample range
// and produces an Allan-deviation curve, the standard input for identifying
// sensor noise terms (angle/velocity random walk, bias instability).
//
// One sweep evaluates a range of integer period indices. Period p maps to
// the averaging interval tau = p * BaseStep; the cluster size for that tau
// is floor(tau * SampleRate) samples. Each period is an independent pure
// computation over the shared read-only sample range, so the sweep fans out
// across a bounded pool of workers and joins once at the end. Periods whose
// cluster size is zero or which yield fewer than two clusters are dropped
// from the curve rather than failing the sweep.
//
// # Usage
//
// Sweep the reference period range (tau 0.1 s up to ~1000 s):
//
//	s := noise.DefaultSweep(200) // 200 Hz recording
//	curve, err := s.Run(samples)
//	if err != nil {
//	    // empty input range or invalid sweep parameters
//	}
//	for _, p := range curve {
//	    fmt.Println(p.Tau, p.Deviation)
//	}
//
// The curve is strictly ascending in tau and bit-identical across reruns on
// the same input regardless of worker scheduling.
package noise
