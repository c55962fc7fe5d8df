// Command allanvar estimates IMU sensor-noise characteristics from a ROS2
// bag recording (MCAP) using the non-overlapping Allan-deviation method.
//
// Usage:
//
//	allanvar [flags] <bag.mcap>
//
// For every topic in the configuration file, allanvar selects the configured
// analysis window, sweeps averaging periods in parallel, and writes the
// deviation curve to <topic>_avar.csv in the output directory. Topics that
// fail (missing from the bag, empty window) are reported and the remaining
// topics still run.
//
// Examples:
//
//	allanvar -config config.yaml recording.mcap
//	allanvar -config config.yaml -out results -v recording.mcap
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/TWALL9/imu-allan-variance/config"
	"github.com/TWALL9/imu-allan-variance/export"
	"github.com/TWALL9/imu-allan-variance/imu"
	"github.com/TWALL9/imu-allan-variance/ingest"
	"github.com/TWALL9/imu-allan-variance/measure/noise"
	"github.com/TWALL9/imu-allan-variance/stats/summary"
)

var errTopicNotRecorded = errors.New("topic not present in recording")

func main() {
	configPath := flag.String("config", "config.yaml", "per-topic analysis configuration file")
	outDir := flag.String("out", ".", "directory for the generated CSV curves")
	workers := flag.Int("workers", 0, "concurrent period tasks per sweep (0 = all CPUs)")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: allanvar [flags] <bag.mcap>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	log := newLogger(*verbose)
	defer func() { _ = log.Sync() }()

	if err := run(flag.Arg(0), *configPath, *outDir, *workers, log); err != nil {
		log.Error("analysis failed", zap.Error(err))
		os.Exit(1)
	}
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	log, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "allanvar: logger: %v\n", err)
		os.Exit(1)
	}

	return log
}

func run(bagPath, configPath, outDir string, workers int, log *zap.Logger) error {
	topics, err := config.Load(configPath)
	if err != nil {
		return err
	}

	series, err := ingest.ReadBag(bagPath, log)
	if err != nil {
		return err
	}

	var errs error

	for _, topic := range topics {
		if err := analyzeTopic(topic, series, outDir, workers, log); err != nil {
			log.Error("topic failed",
				zap.String("topic", topic.ImuTopic), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", topic.ImuTopic, err))
		}
	}

	return errs
}

func analyzeTopic(t config.Topic, series map[string]imu.Series, outDir string, workers int, log *zap.Logger) error {
	s, ok := series[t.ImuTopic]
	if !ok {
		return errTopicNotRecorded
	}

	duration := 0.0
	if t.SequenceDuration != nil {
		duration = *t.SequenceDuration
	}

	window, err := s.Analysis(t.SequenceOffset, duration)
	if err != nil {
		return err
	}

	logWindow(log, t.ImuTopic, window)

	sweep := noise.DefaultSweep(t.MeasureRate)
	sweep.Workers = workers
	sweep.Logger = log.Named("sweep")

	curve, err := sweep.Run(window.Samples())
	if err != nil {
		return err
	}

	out := filepath.Join(outDir, sanitizeTopic(t.ImuTopic)+"_avar.csv")
	if err := export.WriteCurveFile(out, curve); err != nil {
		return err
	}

	log.Info("wrote deviation curve",
		zap.String("topic", t.ImuTopic),
		zap.String("path", out),
		zap.Int("points", len(curve)))

	return nil
}

// logWindow reports the selected analysis window and its per-axis signal
// statistics, a quick way to spot a misconfigured offset or rate.
func logWindow(log *zap.Logger, topic string, window imu.Series) {
	st := summary.Calculate(window.Samples())

	fields := []zap.Field{
		zap.String("topic", topic),
		zap.Int("samples", st.Count),
	}

	axes := [3]string{"x", "y", "z"}
	for i, axis := range axes {
		fields = append(fields,
			zap.Float64("accel_"+axis+"_mean", st.Accel[i].Mean),
			zap.Float64("gyro_"+axis+"_mean", st.Gyro[i].Mean))
	}

	log.Info("analysis window", fields...)
}

func sanitizeTopic(topic string) string {
	s := strings.Trim(topic, "/")
	s = strings.ReplaceAll(s, "/", "_")

	if s == "" {
		s = "imu"
	}

	return s
}
