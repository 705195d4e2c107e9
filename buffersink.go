package rvt

// BufferSink is the growable byte-output abstraction every renderer
// writes through instead of returning a []byte directly. It is the Go
// shape of the four-function contract: Get, Grow, Finalize, Clear.
//
// A renderer never retains a BufferSink after it returns; the sink is
// owned by the caller for the duration of the render call.
type BufferSink interface {
	// Get returns the bytes written so far.
	Get() []byte
	// Grow ensures the sink can hold at least extra additional bytes
	// beyond its current length, returning an error (never panicking)
	// if the sink refuses — e.g. a capped sink at its limit.
	Grow(extra int) error
	// Append writes p, growing as needed. It is a convenience wrapper
	// renderers use instead of calling Grow and copying by hand.
	Append(p []byte) error
	// Finalize marks the sink's contents as exactly length bytes,
	// truncating what was written; a length beyond the current content
	// leaves it unchanged. Capacity is not released.
	Finalize(length int)
	// Clear resets the sink's length to zero without releasing its
	// backing capacity.
	Clear()
}

// GrowableSink is the default BufferSink: an unbounded growable byte
// slice.
type GrowableSink struct {
	buf []byte
}

// NewGrowableSink returns a GrowableSink starting from initial (which may
// be nil); initial's existing bytes, if any, are kept and treated as
// already-written content.
func NewGrowableSink(initial []byte) *GrowableSink {
	return &GrowableSink{buf: initial}
}

func (s *GrowableSink) Get() []byte { return s.buf }

func (s *GrowableSink) Grow(extra int) error {
	need := len(s.buf) + extra
	if cap(s.buf) >= need {
		return nil
	}
	grown := make([]byte, len(s.buf), growCapacity(cap(s.buf), need))
	copy(grown, s.buf)
	s.buf = grown
	return nil
}

func (s *GrowableSink) Append(p []byte) error {
	if err := s.Grow(len(p)); err != nil {
		return err
	}
	s.buf = append(s.buf, p...)
	return nil
}

func (s *GrowableSink) Finalize(length int) {
	if length <= len(s.buf) {
		s.buf = s.buf[:length]
	}
}

func (s *GrowableSink) Clear() { s.buf = s.buf[:0] }

// Bytes is an alias for Get, for callers that prefer the conventional
// Go name.
func (s *GrowableSink) Bytes() []byte { return s.Get() }

func growCapacity(current, need int) int {
	if current == 0 {
		current = 64
	}
	for current < need {
		current *= 2
	}
	return current
}

// defaultMaxCapacity is the cap CappedSink uses when constructed with
// maxCapacity <= 0.
const defaultMaxCapacity = 4 << 30 // 4 GiB

// CappedSink wraps a GrowableSink but refuses to grow past maxCapacity,
// surfacing a KindOutOfMemory *Error instead.
type CappedSink struct {
	inner       GrowableSink
	maxCapacity int
}

// NewCappedSink returns a CappedSink. maxCapacity <= 0 selects the
// default 4 GiB cap named in spec §6.
func NewCappedSink(maxCapacity int) *CappedSink {
	if maxCapacity <= 0 {
		maxCapacity = defaultMaxCapacity
	}
	return &CappedSink{maxCapacity: maxCapacity}
}

func (s *CappedSink) Get() []byte { return s.inner.Get() }

func (s *CappedSink) Grow(extra int) error {
	if len(s.inner.buf)+extra > s.maxCapacity {
		return newError(KindOutOfMemory, "BufferSink.Grow", nil)
	}
	return s.inner.Grow(extra)
}

func (s *CappedSink) Append(p []byte) error {
	if err := s.Grow(len(p)); err != nil {
		return err
	}
	return s.inner.Append(p)
}

func (s *CappedSink) Finalize(length int) { s.inner.Finalize(length) }
func (s *CappedSink) Clear()              { s.inner.Clear() }

var (
	_ BufferSink = (*GrowableSink)(nil)
	_ BufferSink = (*CappedSink)(nil)
)
