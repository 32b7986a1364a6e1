package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	timer := NewTimer()
	collect := timer.Begin(PhaseCollect)
	timer.End(collect, "3 files")
	format := timer.Begin(PhaseFormat)
	timer.End(format, "")
	timer.End(42, "ignored")

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(report.Phases))
	}
	if report.Phases[0].Name != PhaseCollect || report.Phases[0].Note != "3 files" {
		t.Fatalf("unexpected first phase: %+v", report.Phases[0])
	}
	if len(report.Stages) != 0 {
		t.Fatalf("no stages were tracked, got %+v", report.Stages)
	}

	summary := timer.Summary()
	for _, want := range []string{"timings:", "collect", "// 3 files", "format", "total"} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary missing %q:\n%s", want, summary)
		}
	}
	if strings.Contains(summary, "per-file stages") {
		t.Fatalf("stage block printed without stages:\n%s", summary)
	}
}

func TestTimerTracksStagesAcrossWorkers(t *testing.T) {
	timer := NewTimer()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			timer.Track("parse", time.Millisecond)
			timer.Track("normalize", 2*time.Millisecond)
		}()
	}
	wg.Wait()

	report := timer.Report()
	if len(report.Stages) != 2 {
		t.Fatalf("expected 2 stages, got %+v", report.Stages)
	}
	for _, s := range report.Stages {
		want := 8.0
		if s.Name == "normalize" {
			want = 16
		}
		if s.Files != 8 || s.TotalMS != want {
			t.Errorf("stage %s = %+v, want 8 files and %.0f ms", s.Name, s, want)
		}
	}
	if !strings.Contains(timer.Summary(), "per-file stages") {
		t.Fatalf("summary lacks the stage block:\n%s", timer.Summary())
	}
}

func TestNilTimerIsInert(t *testing.T) {
	var timer *Timer
	idx := timer.Begin(PhaseReport)
	timer.End(idx, "x")
	timer.Track("write", time.Second)
	if idx != -1 {
		t.Fatalf("Begin on nil = %d, want -1", idx)
	}
	if got := timer.Report(); len(got.Phases) != 0 || got.TotalMS != 0 {
		t.Fatalf("nil timer report = %+v", got)
	}
}

func TestEmptyTimerReport(t *testing.T) {
	if got := NewTimer().Report(); len(got.Phases) != 0 || got.TotalMS != 0 {
		t.Fatalf("expected empty report, got %+v", got)
	}
}
