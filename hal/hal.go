// Package hal isolates platform serial I/O behind a small capability
// interface. The driver core never branches on platform; each concrete
// transport lives in its own file.
package hal

import (
	"errors"
	"io"
)

var (
	// ErrOpenPort reports that the serial device could not be opened.
	ErrOpenPort = errors.New("could not open serial port")
	// ErrPortState reports that the port's comms state was unavailable.
	ErrPortState = errors.New("could not get comms state")
	// ErrTimeoutConfig reports that the port timeouts could not be set.
	ErrTimeoutConfig = errors.New("could not set comms timeouts")
)

// Serial is a byte-stream link to the display adapter.
type Serial interface {
	io.ReadWriteCloser
}

// Transport opens serial links by device path.
type Transport interface {
	Open(device string) (Serial, error)
}
