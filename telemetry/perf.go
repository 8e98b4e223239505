// Package telemetry tracks frame timing for the render loop. The LOD
// controller consumes its smoothed frame rate, and window statistics can be
// logged or exported to CSV.
package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one frame of the render loop.
const (
	PhaseStep      = "step"
	PhaseInjection = "injection"
	PhaseComposite = "composite"
	PhaseDraw      = "draw"
	PhaseUI        = "ui"
)

// FrameSample holds timing data for a single frame.
type FrameSample struct {
	FrameDuration time.Duration
	Phases        map[string]time.Duration
}

// PerfCollector tracks frame metrics over a rolling window.
type PerfCollector struct {
	windowSize  int
	samples     []FrameSample
	writeIndex  int
	sampleCount int

	currentPhases map[string]time.Duration
	frameStart    time.Time
	phaseStart    time.Time
	lastPhase     string

	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize frames
// (e.g. 60 for one second at the target rate).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]FrameSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartFrame begins timing a new frame.
func (p *PerfCollector) StartFrame() {
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now

	p.frameStart = now
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a phase, closing the previous one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndFrame finishes the current frame and records the sample.
func (p *PerfCollector) EndFrame() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
		p.lastPhase = ""
	}

	p.samples[p.writeIndex] = FrameSample{
		FrameDuration: now.Sub(p.frameStart),
		Phases:        p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// FPS returns the instantaneous frame rate from the last frame-to-frame
// interval, or 0 before two frames have been seen.
func (p *PerfCollector) FPS() float64 {
	if p.frameDuration <= 0 {
		return 0
	}
	return float64(time.Second) / float64(p.frameDuration)
}

// SampleCount returns how many frames the current window holds.
func (p *PerfCollector) SampleCount() int { return p.sampleCount }

// durations returns the valid frame durations in the window as seconds.
func (p *PerfCollector) durations() []float64 {
	out := make([]float64, 0, p.sampleCount)
	for i := 0; i < p.sampleCount; i++ {
		out = append(out, p.samples[i].FrameDuration.Seconds())
	}
	return out
}

// phaseSums returns total per-phase time across the window.
func (p *PerfCollector) phaseSums() map[string]time.Duration {
	sums := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		for phase, dur := range p.samples[i].Phases {
			sums[phase] += dur
		}
	}
	return sums
}

// LogValue implements slog.LogValuer for quick structured dumps.
func (p *PerfCollector) LogValue() slog.Value {
	s := p.WindowStats(0)
	return slog.GroupValue(
		slog.Float64("fps", s.MeanFPS),
		slog.Float64("frame_ms_mean", s.FrameMSMean),
		slog.Float64("frame_ms_stddev", s.FrameMSStdDev),
	)
}
