package game

import "sync"

// sweepTrace holds one synthesized sample per pixel column and an advancing
// write cursor, giving the classic patient-monitor sweep with a blanking gap
// ahead of the pen instead of a scrolling strip.
type sweepTrace struct {
	mu      sync.RWMutex
	columns []float64
	written []bool
	cursor  int
	gap     int
}

func newSweepTrace(width, gap int) *sweepTrace {
	return &sweepTrace{
		columns: make([]float64, width),
		written: make([]bool, width),
		gap:     gap,
	}
}

// Push writes the next sample at the cursor and advances it, wrapping at the
// right edge.
func (t *sweepTrace) Push(v float64) {
	t.mu.Lock()
	t.columns[t.cursor] = v
	t.written[t.cursor] = true
	t.cursor++
	if t.cursor >= len(t.columns) {
		t.cursor = 0
	}
	t.mu.Unlock()
}

// Snapshot copies the column buffer plus its cursor position for drawing.
func (t *sweepTrace) Snapshot() (columns []float64, written []bool, cursor int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	columns = make([]float64, len(t.columns))
	written = make([]bool, len(t.written))
	copy(columns, t.columns)
	copy(written, t.written)
	return columns, written, t.cursor
}

// InGap reports whether column x falls inside the blanking gap ahead of the
// cursor (wrapping at the edge).
func (t *sweepTrace) InGap(x, cursor int) bool {
	d := x - cursor
	if d < 0 {
		d += len(t.columns)
	}
	return d < t.gap
}

// Reset clears the trace, e.g. after a pathology switch.
func (t *sweepTrace) Reset() {
	t.mu.Lock()
	for i := range t.columns {
		t.columns[i] = 0
		t.written[i] = false
	}
	t.cursor = 0
	t.mu.Unlock()
}

func (t *sweepTrace) Width() int {
	return len(t.columns)
}
