// Package export serializes Allan-deviation curves for downstream
// calibration tooling. The format is CSV with one row per averaging period:
// tau in seconds followed by the six deviation components (accelerometer
// axes in m/s², gyroscope axes in deg/s).
package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/TWALL9/imu-allan-variance/measure/noise"
)

var header = []string{"tau", "ax", "ay", "az", "gx", "gy", "gz"}

// WriteCurve writes the header row followed by one row per period result.
func WriteCurve(w io.Writer, curve noise.Curve) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}

	row := make([]string, len(header))

	for _, r := range curve {
		row[0] = formatFloat(r.Tau)
		for k, v := range r.Deviation {
			row[k+1] = formatFloat(v)
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: write row: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// WriteCurveFile writes the curve to a buffered file at path, creating or
// truncating it.
func WriteCurveFile(path string, curve noise.Curve) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}

	bw := bufio.NewWriter(f)

	if err := WriteCurve(bw, curve); err != nil {
		f.Close()

		return err
	}

	if err := bw.Flush(); err != nil {
		f.Close()

		return fmt.Errorf("export: flush %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("export: close %s: %w", path, err)
	}

	return nil
}

// formatFloat renders a value with nine significant digits, enough to
// round-trip the deviations losslessly for plotting and curve fitting.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 9, 64)
}
