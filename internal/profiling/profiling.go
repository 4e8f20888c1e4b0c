package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Recorder accumulates wall time per named phase of one generation run.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	mu     sync.Mutex
	totals map[string]time.Duration
	order  []string
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{totals: make(map[string]time.Duration)}
}

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer rec.Track("world.CarveRivers")()
func (r *Recorder) Track(name string) func() {
	if r == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		d := time.Since(start)
		r.mu.Lock()
		if _, ok := r.totals[name]; !ok {
			r.order = append(r.order, name)
		}
		r.totals[name] += d
		r.mu.Unlock()
	}
}

// Reset clears all recorded totals.
func (r *Recorder) Reset() {
	if r == nil {
		return
	}
	r.mu.Lock()
	clear(r.totals)
	r.order = r.order[:0]
	r.mu.Unlock()
}

// Phase is the total time spent under one name.
type Phase struct {
	Name     string
	Duration time.Duration
}

// Snapshot returns the recorded phases in the order they were first tracked.
func (r *Recorder) Snapshot() []Phase {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Phase, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, Phase{Name: name, Duration: r.totals[name]})
	}
	return out
}

// TopN formats the n slowest phases.
// Example: "world.buildTiles:42.1ms, world.CarveRivers:2.3ms"
func (r *Recorder) TopN(n int) string {
	list := r.Snapshot()
	sort.SliceStable(list, func(i, j int) bool { return list[i].Duration > list[j].Duration })
	if n > len(list) {
		n = len(list)
	}
	parts := make([]string, 0, n)
	for _, p := range list[:n] {
		parts = append(parts, p.Name+":"+formatMs(p.Duration))
	}
	return strings.Join(parts, ", ")
}

// formatMs keeps one decimal, dropping it for whole milliseconds.
func formatMs(d time.Duration) string {
	ms := float64(d.Microseconds()) / 1000.0
	s := fmt.Sprintf("%.1f", ms)
	return strings.TrimSuffix(s, ".0") + "ms"
}
