package serialmux

import (
	"go.bug.st/serial"
)

// NewReal opens the serial port at path with the given mode and wraps
// it in a Mux.
func NewReal(path string, mode *PortMode) (*Mux[serial.Port], error) {
	if mode == nil {
		mode = DefaultPortMode()
	}
	port, err := serial.Open(path, &serial.Mode{
		BaudRate: mode.BaudRate,
		DataBits: mode.DataBits,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, err
	}
	return New[serial.Port](port), nil
}
