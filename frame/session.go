package frame

import (
	"errors"
	"fmt"
	"io"

	"dvg/geom"
	"dvg/hal"
	"dvg/proto"
)

// ChunkBytes caps the size of each write handed to the transport.
const ChunkBytes = 1024

var (
	// ErrSessionClosed reports an operation that needs an open link.
	ErrSessionClosed = errors.New("session closed")
	// ErrSessionOpen reports an Open on an already open session.
	ErrSessionOpen = errors.New("session already open")
)

// Session drives one adapter over a serial link: it owns the frame encoder
// and the transport handle, and sends one finished frame at a time.
//
// A session is single-producer; callers needing concurrency must serialize
// externally.
type Session struct {
	transport hal.Transport
	link      hal.Serial
	enc       *Encoder
	win       geom.Window
}

// NewSession returns a closed session that will open links through t.
func NewSession(t hal.Transport) *Session {
	return &Session{transport: t, enc: NewEncoder()}
}

// Open acquires the serial link to the adapter. On failure the session
// stays closed and the transport's error is returned.
func (s *Session) Open(device string) error {
	if s.link != nil {
		return ErrSessionOpen
	}
	link, err := s.transport.Open(device)
	if err != nil {
		return err
	}
	s.link = link
	s.enc.Reset()
	return nil
}

// SetClipWindow sets the world-space window that draws are clipped and
// scaled against. Callers must set it before the first Vector.
func (s *Session) SetClipWindow(w geom.Window) { s.win = w }

// SetColorRGB15 sets the draw color from 5-bit channels.
func (s *Session) SetColorRGB15(r, g, b uint8) { s.enc.SetColorRGB15(r, g, b) }

// SetColorRGB16 sets the draw color from a 5-6-5 split.
func (s *Session) SetColorRGB16(r, g, b uint8) { s.enc.SetColorRGB16(r, g, b) }

// SetColorRGB24 sets the draw color from 8-bit channels.
func (s *Session) SetColorRGB24(r, g, b uint8) { s.enc.SetColorRGB24(r, g, b) }

// Vector queues a world-space line draw for the current frame.
func (s *Session) Vector(p1, p2 geom.Point) { s.enc.Vector(p1, p2, s.win) }

// Dropped reports command words discarded on buffer overflow.
func (s *Session) Dropped() int { return s.enc.Dropped() }

// SendFrame finalizes the current frame and writes it to the link in
// chunks of at most ChunkBytes. It stops at the first failed or short
// write and returns that error; the session stays open either way, and the
// encoder is already rearmed for the next frame.
func (s *Session) SendFrame() error {
	if s.link == nil {
		return ErrSessionClosed
	}
	buf := s.enc.Finalize()
	for len(buf) > 0 {
		chunk := buf
		if len(chunk) > ChunkBytes {
			chunk = chunk[:ChunkBytes]
		}
		n, err := s.link.Write(chunk)
		if err != nil {
			return fmt.Errorf("send frame: %w", err)
		}
		if n != len(chunk) {
			return fmt.Errorf("send frame: %w", io.ErrShortWrite)
		}
		buf = buf[len(chunk):]
	}
	return nil
}

// Close sends a best-effort EXIT word so the adapter knows the session is
// over, then releases the link. The EXIT write's result is ignored; the
// device may already be gone. Closing a closed session is a no-op.
func (s *Session) Close() error {
	if s.link == nil {
		return nil
	}
	var b [proto.WordBytes]byte
	proto.Put(b[:], proto.Exit())
	_, _ = s.link.Write(b[:])
	err := s.link.Close()
	s.link = nil
	return err
}
