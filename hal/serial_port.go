package hal

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

// PortTransport opens real serial devices through the OS serial stack.
//
// The defaults match the USB-DVG: 2,000,000 baud, 8 data bits, no parity,
// one stop bit. The baud rate is nominal only for serial-over-USB but some
// platforms reject the open without it.
type PortTransport struct {
	Mode serial.Mode

	// ReadTimeout, when nonzero, bounds blocking reads. Writes always
	// block until the platform layer returns.
	ReadTimeout time.Duration
}

// NewPortTransport returns a transport configured for the adapter.
func NewPortTransport() *PortTransport {
	return &PortTransport{
		Mode: serial.Mode{
			BaudRate: 2_000_000,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		},
	}
}

func (t *PortTransport) Open(device string) (Serial, error) {
	port, err := serial.Open(device, &t.Mode)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrOpenPort, device, err)
	}
	if t.ReadTimeout > 0 {
		if err := port.SetReadTimeout(t.ReadTimeout); err != nil {
			_ = port.Close()
			return nil, fmt.Errorf("%w: %v", ErrTimeoutConfig, err)
		}
	}
	// Drop stale bytes left over from a previous session.
	if err := port.ResetInputBuffer(); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("%w: %v", ErrPortState, err)
	}
	return port, nil
}
