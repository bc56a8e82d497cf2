// Package bench accumulates frame timings over a fixed measurement window.
package bench

import (
	"bytes"
	"fmt"
	gomath "math"

	"github.com/olekukonko/tablewriter"

	"juliette/log"
	"juliette/scene"
)

var logger = log.New("bench")

// Totals describes the population being rendered.
type Totals struct {
	Vertices int
	Faces    int
	Batches  int
	Objects  int
}

// SceneTotals sums per-instance geometry over every batch of s.
func SceneTotals(s *scene.Scene) Totals {
	t := Totals{Batches: len(s.Batches)}
	for _, b := range s.Batches {
		n := b.InstanceCount()
		t.Objects += n
		t.Vertices += b.Model.VertexCount() * n
		t.Faces += b.Model.FaceCount() * n
	}
	return t
}

// Environment records the run conditions printed with the summary.
type Environment struct {
	FullScreen    bool
	DebugRenderer bool
	VSync         bool
}

// Stats is the running accumulator. Elapsed time is kept in float64 so long
// runs of small frame times do not drift.
type Stats struct {
	Duration float64
	Totals   Totals

	elapsed  float64
	frames   int
	minFrame float64
	maxFrame float64
	reported bool
}

func New(duration float64, totals Totals) *Stats {
	return &Stats{
		Duration: duration,
		Totals:   totals,
		minFrame: gomath.Inf(1),
	}
}

// Accumulate records one frame. It returns true exactly once: on the frame
// where elapsed time first reaches Duration.
func (s *Stats) Accumulate(dt float64) bool {
	s.elapsed += dt
	s.frames++
	s.minFrame = gomath.Min(s.minFrame, dt)
	s.maxFrame = gomath.Max(s.maxFrame, dt)

	if s.reported || !s.ThresholdReached() {
		return false
	}
	s.reported = true
	return true
}

func (s *Stats) ThresholdReached() bool {
	return s.elapsed >= s.Duration
}

func (s *Stats) Elapsed() float64 {
	return s.elapsed
}

func (s *Stats) Frames() int {
	return s.frames
}

// Summary is the result of a measurement window.
type Summary struct {
	Elapsed    float64
	Frames     int
	AverageFPS float64
	MinFrameMs float64
	MaxFrameMs float64
	Totals     Totals
	Env        Environment
}

// Summary reports average FPS as frames over the configured duration.
func (s *Stats) Summary(env Environment) Summary {
	sum := Summary{
		Elapsed: s.elapsed,
		Frames:  s.frames,
		Totals:  s.Totals,
		Env:     env,
	}
	if s.Duration > 0 {
		sum.AverageFPS = float64(s.frames) / s.Duration
	}
	if s.frames > 0 {
		sum.MinFrameMs = s.minFrame * 1000
		sum.MaxFrameMs = s.maxFrame * 1000
	}
	return sum
}

// Table renders the summary as a two-column table.
func (sum Summary) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"Metric", "Value"})
	table.AppendBulk([][]string{
		{"Elapsed", fmt.Sprintf("%.3f s", sum.Elapsed)},
		{"Frames", fmt.Sprintf("%d", sum.Frames)},
		{"Average FPS", fmt.Sprintf("%.2f", sum.AverageFPS)},
		{"Frame time min/max", fmt.Sprintf("%.3f / %.3f ms", sum.MinFrameMs, sum.MaxFrameMs)},
		{"Vertices", fmt.Sprintf("%d", sum.Totals.Vertices)},
		{"Faces", fmt.Sprintf("%d", sum.Totals.Faces)},
		{"Batches", fmt.Sprintf("%d", sum.Totals.Batches)},
		{"Objects", fmt.Sprintf("%d", sum.Totals.Objects)},
		{"Full screen", fmt.Sprintf("%t", sum.Env.FullScreen)},
		{"Debug renderer", fmt.Sprintf("%t", sum.Env.DebugRenderer)},
		{"VSync", fmt.Sprintf("%t", sum.Env.VSync)},
	})
	table.Render()
	return buf.String()
}

// Log writes the summary table at notice level.
func (sum Summary) Log() {
	logger.Noticef("benchmark summary\n%s", sum.Table())
}
