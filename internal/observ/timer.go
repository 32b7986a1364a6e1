package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase names the wall-clock sections of a fmt run.
type Phase string

const (
	// PhaseCollect walks the arguments and builds the file list.
	PhaseCollect Phase = "collect"
	// PhaseFormat runs the worker pool over the collected files.
	PhaseFormat Phase = "format"
	// PhaseReport renders the results (text, JSON or diff).
	PhaseReport Phase = "report"
)

type phaseRecord struct {
	name  Phase
	start time.Time
	dur   time.Duration
	note  string
}

// stageTotal sums the time workers spent in one per-file stage.
type stageTotal struct {
	name  string
	dur   time.Duration
	files int
}

// Timer tracks the phases of one run and, across all workers, the time
// spent in every per-file stage (read, parse, normalize, write). A nil
// *Timer is valid and records nothing. Safe for concurrent use.
type Timer struct {
	mu     sync.Mutex
	phases []phaseRecord
	stages []stageTotal
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{phases: make([]phaseRecord, 0, 3)} }

// Begin starts a phase and returns its index, or -1 on a nil Timer.
func (t *Timer) Begin(name Phase) int {
	if t == nil {
		return -1
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, phaseRecord{name: name, start: time.Now()})
	return len(t.phases) - 1
}

// End finishes the phase at idx. Unknown indices are ignored.
func (t *Timer) End(idx int, note string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.dur = time.Since(p.start)
	p.note = note
}

// Track adds d to the cumulative time of a per-file stage.
func (t *Timer) Track(stage string, d time.Duration) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.stages {
		if t.stages[i].name == stage {
			t.stages[i].dur += d
			t.stages[i].files++
			return
		}
	}
	t.stages = append(t.stages, stageTotal{name: stage, dur: d, files: 1})
}

// Summary renders the report for stderr.
func (t *Timer) Summary() string {
	report := t.Report()
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&b, "  %-12s %9.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			b.WriteString("  // " + p.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-12s %9.2f ms\n", "total", report.TotalMS)
	if len(report.Stages) > 0 {
		// время воркеров суммируется, поэтому может превышать wall clock
		b.WriteString("per-file stages (summed over workers):\n")
		for _, s := range report.Stages {
			fmt.Fprintf(&b, "  %-12s %9.2f ms  %d file(s)\n", s.Name, s.TotalMS, s.Files)
		}
	}
	return b.String()
}

// PhaseEntry представляет сжатую информацию о фазе таймера для сериализации.
type PhaseEntry struct {
	Name       Phase   `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// StageReport is the summed worker time of one per-file stage.
type StageReport struct {
	Name    string  `json:"name"`
	TotalMS float64 `json:"total_ms"`
	Files   int     `json:"files"`
}

// Report описывает агрегированные данные таймера.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseEntry  `json:"phases"`
	Stages  []StageReport `json:"stages,omitempty"`
}

// Report формирует срез фаз и общую длительность в миллисекундах.
// TotalMS складывается только из фаз.
func (t *Timer) Report() Report {
	if t == nil {
		return Report{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.phases) == 0 && len(t.stages) == 0 {
		return Report{}
	}
	report := Report{Phases: make([]PhaseEntry, len(t.phases))}
	var total time.Duration
	for i, phase := range t.phases {
		total += phase.dur
		report.Phases[i] = PhaseEntry{
			Name:       phase.name,
			DurationMS: durationToMillis(phase.dur),
			Note:       phase.note,
		}
	}
	report.TotalMS = durationToMillis(total)
	for _, s := range t.stages {
		report.Stages = append(report.Stages, StageReport{
			Name:    s.name,
			TotalMS: durationToMillis(s.dur),
			Files:   s.files,
		})
	}
	return report
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
