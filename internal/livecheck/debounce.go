package livecheck

import "time"

// DefaultDebounce is the quiet period after a keystroke before the field is
// classified.
const DefaultDebounce = 140 * time.Millisecond

// Tick identifies one scheduled classification. The caller delivers it back
// to Fire after Delay.
type Tick[K comparable] struct {
	Key   K
	Token uint64
	Delay time.Duration
}

// Debouncer schedules per-key work so that only the last request within the
// quiet period runs. It is not safe for concurrent use.
type Debouncer[K comparable] struct {
	delay   time.Duration
	seq     uint64
	pending map[K]uint64
}

// NewDebouncer returns a debouncer with the given quiet period.
func NewDebouncer[K comparable](delay time.Duration) *Debouncer[K] {
	return &Debouncer[K]{delay: delay, pending: make(map[K]uint64)}
}

// Schedule supersedes any pending tick for key and returns a new one.
func (d *Debouncer[K]) Schedule(key K) Tick[K] {
	d.seq++
	d.pending[key] = d.seq
	return Tick[K]{Key: key, Token: d.seq, Delay: d.delay}
}

// Fire reports whether t is still the latest tick for its key. A true result
// consumes the tick.
func (d *Debouncer[K]) Fire(t Tick[K]) bool {
	tok, ok := d.pending[t.Key]
	if !ok || tok != t.Token {
		return false
	}
	delete(d.pending, t.Key)
	return true
}

// Pending reports whether key has a tick waiting.
func (d *Debouncer[K]) Pending(key K) bool {
	_, ok := d.pending[key]
	return ok
}

// Cancel drops the pending tick for key.
func (d *Debouncer[K]) Cancel(key K) {
	delete(d.pending, key)
}

// CancelAll drops every pending tick.
func (d *Debouncer[K]) CancelAll() {
	clear(d.pending)
}
