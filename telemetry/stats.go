package telemetry

import (
	"log/slog"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

// WindowStats aggregates one rolling window of frame samples. Flat struct so
// it exports directly to CSV.
type WindowStats struct {
	WindowEnd     float64 `csv:"window_end_sec"`
	Frames        int     `csv:"frames"`
	MeanFPS       float64 `csv:"mean_fps"`
	FrameMSMean   float64 `csv:"frame_ms_mean"`
	FrameMSStdDev float64 `csv:"frame_ms_stddev"`
	FrameMSMax    float64 `csv:"frame_ms_max"`
	FrameCV       float64 `csv:"frame_cv"`
	StepPct       float64 `csv:"step_pct"`
	InjectionPct  float64 `csv:"injection_pct"`
	CompositePct  float64 `csv:"composite_pct"`
	DrawPct       float64 `csv:"draw_pct"`
	UIPct         float64 `csv:"ui_pct"`
}

// WindowStats computes statistics over the current window. windowEnd stamps
// the record with the caller's clock (seconds since start).
func (p *PerfCollector) WindowStats(windowEnd float64) WindowStats {
	s := WindowStats{WindowEnd: windowEnd, Frames: p.sampleCount}
	if p.sampleCount == 0 {
		return s
	}

	durs := p.durations()
	mean, std := stat.MeanStdDev(durs, nil)
	// StdDev is NaN for a single sample
	if math.IsNaN(std) {
		std = 0
	}

	var maxDur float64
	var total float64
	for _, d := range durs {
		total += d
		if d > maxDur {
			maxDur = d
		}
	}

	s.FrameMSMean = mean * 1000
	s.FrameMSStdDev = std * 1000
	s.FrameMSMax = maxDur * 1000
	if mean > 0 {
		s.MeanFPS = 1 / mean
		s.FrameCV = std / mean
	}

	if total > 0 {
		sums := p.phaseSums()
		pct := func(phase string) float64 {
			return sums[phase].Seconds() / total * 100
		}
		s.StepPct = pct(PhaseStep)
		s.InjectionPct = pct(PhaseInjection)
		s.CompositePct = pct(PhaseComposite)
		s.DrawPct = pct(PhaseDraw)
		s.UIPct = pct(PhaseUI)
	}
	return s
}

// Log emits the window stats as a structured log record.
func (s WindowStats) Log() {
	slog.Info("perf_window",
		"frames", s.Frames,
		"mean_fps", int(s.MeanFPS),
		"frame_ms_mean", round2(s.FrameMSMean),
		"frame_ms_stddev", round2(s.FrameMSStdDev),
		"frame_ms_max", round2(s.FrameMSMax),
		"step_pct", round2(s.StepPct),
		"draw_pct", round2(s.DrawPct),
	)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// LODRecord logs one quality-tier change for CSV export.
type LODRecord struct {
	Time          float64 `csv:"time_sec"`
	FPS           float64 `csv:"fps"`
	EntityCount   int     `csv:"entity_count"`
	Resolution    float64 `csv:"resolution"`
	InjectionRate float64 `csv:"injection_rate"`
	Applied       bool    `csv:"applied"`
}

// Stamp fills the record time from a duration since start.
func (r *LODRecord) Stamp(since time.Duration) {
	r.Time = since.Seconds()
}
