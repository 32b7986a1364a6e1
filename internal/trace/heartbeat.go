package trace

import (
	"fmt"
	"sync"
	"time"
)

// Inflight tracks which files the fmt workers are processing right now.
// Heartbeats read it to name the file that has been running longest, which
// is the one to look at when a run seems stuck. A nil *Inflight is inert.
type Inflight struct {
	mu     sync.Mutex
	active map[string]time.Time
	done   int
}

// NewInflight returns an empty registry.
func NewInflight() *Inflight {
	return &Inflight{active: make(map[string]time.Time)}
}

// Enter marks path as being processed.
func (in *Inflight) Enter(path string) {
	if in == nil {
		return
	}
	in.mu.Lock()
	in.active[path] = time.Now()
	in.mu.Unlock()
}

// Leave marks path as finished.
func (in *Inflight) Leave(path string) {
	if in == nil {
		return
	}
	in.mu.Lock()
	if _, ok := in.active[path]; ok {
		delete(in.active, path)
		in.done++
	}
	in.mu.Unlock()
}

// Status describes the registry at one instant.
type Status struct {
	Done   int
	Active int
	Oldest string        // longest-running file, "" when idle
	Age    time.Duration // how long Oldest has been running
}

// Snapshot returns the current Status.
func (in *Inflight) Snapshot(now time.Time) Status {
	if in == nil {
		return Status{}
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	st := Status{Done: in.done, Active: len(in.active)}
	for path, since := range in.active {
		age := now.Sub(since)
		// при равном возрасте берём меньший путь, чтобы вывод был стабильным
		if st.Oldest == "" || age > st.Age || (age == st.Age && path < st.Oldest) {
			st.Oldest, st.Age = path, age
		}
	}
	return st
}

func (st Status) String() string {
	if st.Active == 0 {
		return fmt.Sprintf("done=%d idle", st.Done)
	}
	return fmt.Sprintf("done=%d active=%d oldest=%s (%s)", st.Done, st.Active, st.Oldest, st.Age.Round(time.Millisecond))
}

// Heartbeat emits a KindHeartbeat event every interval carrying the
// Inflight status. Beats without SpanEnd events in between point at a file
// that never finishes.
type Heartbeat struct {
	tracer   Tracer
	inflight *Inflight
	interval time.Duration
	stop     chan struct{}
	once     sync.Once
	wg       sync.WaitGroup
}

// StartHeartbeat starts beating; it returns nil when tracing is off or
// interval is not positive. inflight may be nil.
func StartHeartbeat(tracer Tracer, interval time.Duration, inflight *Inflight) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{
		tracer:   tracer,
		inflight: inflight,
		interval: interval,
		stop:     make(chan struct{}),
	}
	h.wg.Add(1)
	go h.run()
	return h
}

func (h *Heartbeat) run() {
	defer h.wg.Done()
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for beat := uint64(1); ; beat++ {
		select {
		case now := <-ticker.C:
			h.tracer.Emit(h.event(beat, now))
		case <-h.stop:
			return
		}
	}
}

func (h *Heartbeat) event(beat uint64, now time.Time) *Event {
	return &Event{
		Time:   now,
		Seq:    NextSeq(),
		Kind:   KindHeartbeat,
		Scope:  ScopeDriver,
		GID:    goroutineID(),
		Name:   "heartbeat",
		Detail: fmt.Sprintf("#%d %s", beat, h.inflight.Snapshot(now)),
	}
}

// Stop ends the heartbeat goroutine and waits for it. Safe to call twice.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	h.wg.Wait()
}
