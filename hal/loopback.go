package hal

import (
	"errors"
	"io"
	"sync"
)

// ErrLoopbackFull is returned once a Loopback's write limit is reached.
var ErrLoopbackFull = errors.New("loopback write limit reached")

// Loopback is an in-memory Serial that records everything written to it.
// It stands in for a real port in tests.
type Loopback struct {
	// Limit caps the total bytes accepted when > 0. A write that would
	// cross the limit is truncated and returns ErrLoopbackFull, which
	// exercises the short-write path of callers.
	Limit int

	mu     sync.Mutex
	buf    []byte
	closed bool
}

func (l *Loopback) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return 0, io.ErrClosedPipe
	}
	if l.Limit > 0 && len(l.buf)+len(p) > l.Limit {
		n := l.Limit - len(l.buf)
		if n < 0 {
			n = 0
		}
		l.buf = append(l.buf, p[:n]...)
		return n, ErrLoopbackFull
	}
	l.buf = append(l.buf, p...)
	return len(p), nil
}

// Read always reports EOF: the adapter never talks back on this link.
func (l *Loopback) Read(p []byte) (int, error) {
	return 0, io.EOF
}

func (l *Loopback) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	return nil
}

// Bytes returns a copy of everything written so far.
func (l *Loopback) Bytes() []byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]byte, len(l.buf))
	copy(out, l.buf)
	return out
}

func (l *Loopback) Closed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

// LoopbackTransport opens Loopback links and remembers the most recent one
// so tests can inspect what a session sent.
type LoopbackTransport struct {
	// Err, when set, is returned from Open instead of a link.
	Err error
	// Limit is applied to each opened Loopback.
	Limit int

	mu   sync.Mutex
	last *Loopback
}

func (t *LoopbackTransport) Open(device string) (Serial, error) {
	if t.Err != nil {
		return nil, t.Err
	}
	l := &Loopback{Limit: t.Limit}
	t.mu.Lock()
	t.last = l
	t.mu.Unlock()
	return l, nil
}

// Last returns the most recently opened link, or nil.
func (t *LoopbackTransport) Last() *Loopback {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}
