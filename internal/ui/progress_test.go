package ui

import (
	"errors"
	"strings"
	"testing"

	"docnorm/internal/pipeline"
)

func TestApplyEventTracksFiles(t *testing.T) {
	m := NewProgressModel("docnorm fmt", []string{"a.py"}, nil).(*progressModel)

	m.applyEvent(pipeline.Event{File: "b.py", Status: pipeline.StatusQueued})
	m.applyEvent(pipeline.Event{File: "a.py", Stage: pipeline.StageNormalize, Status: pipeline.StatusWorking})
	m.applyEvent(pipeline.Event{File: "b.py", Status: pipeline.StatusError, Err: errors.New("boom")})
	m.applyEvent(pipeline.Event{File: "ghost.py", Status: pipeline.StatusDone})

	if len(m.items) != 2 {
		t.Fatalf("items = %d, want 2 (unknown finished file must be ignored)", len(m.items))
	}
	if m.items[0].status != "normalizing" || m.items[0].finished {
		t.Errorf("a.py item = %+v", m.items[0])
	}
	if m.items[1].status != "error" || !m.items[1].finished {
		t.Errorf("b.py item = %+v", m.items[1])
	}

	view := m.View()
	for _, want := range []string{"docnorm fmt", "a.py", "b.py", "normalizing"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		stage  pipeline.Stage
		status pipeline.Status
		want   string
	}{
		{"", pipeline.StatusQueued, "queued"},
		{pipeline.StageParse, pipeline.StatusWorking, "parsing"},
		{pipeline.StageWrite, pipeline.StatusWorking, "writing"},
		{"", pipeline.StatusChanged, "reformatted"},
		{"", pipeline.StatusCached, "cached"},
		{"", pipeline.StatusDone, "unchanged"},
	}
	for _, tt := range tests {
		if got := statusLabel(tt.stage, tt.status); got != tt.want {
			t.Errorf("statusLabel(%q, %q) = %q, want %q", tt.stage, tt.status, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short.py", 20); got != "short.py" {
		t.Errorf("truncate kept = %q", got)
	}
	if got := truncate("very/long/path/to/module.py", 10); got != "very/lo..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("日本語.py", 3); got != "日" {
		t.Errorf("wide truncate = %q", got)
	}
}
