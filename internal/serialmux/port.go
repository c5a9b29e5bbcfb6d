package serialmux

import "io"

// SerialPorter is the minimal surface the mux needs from a serial
// port. The abstraction keeps unit tests off real hardware.
type SerialPorter interface {
	io.ReadWriter
	io.Closer
}

// PortMode holds serial line parameters for the insole transmitter.
type PortMode struct {
	BaudRate int
	DataBits int
}

// DefaultPortMode returns the line settings the insole hardware ships
// with.
func DefaultPortMode() *PortMode {
	return &PortMode{
		BaudRate: 115200,
		DataBits: 8,
	}
}
