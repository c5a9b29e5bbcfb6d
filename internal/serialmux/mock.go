package serialmux

import (
	"bytes"
	"io"
	"sync"
	"time"
)

// MockPort implements SerialPorter in memory for dev mode and tests.
type MockPort struct {
	reader io.Reader

	mu      sync.Mutex
	written []byte
	closed  bool
}

// Write records outgoing commands instead of touching hardware.
func (m *MockPort) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.written = append(m.written, p...)
	return len(p), nil
}

// Read delegates to the injected line source.
func (m *MockPort) Read(p []byte) (int, error) {
	return m.reader.Read(p)
}

// Close marks the port closed.
func (m *MockPort) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Written returns everything the mux has written to the device.
func (m *MockPort) Written() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.written...)
}

// NewMock creates a Mux over a synthetic port that replays the given
// fixture data one line per interval, cycling back to the start when
// it runs out, simulating a transmitting insole.
func NewMock(data []byte, interval time.Duration) *Mux[*MockPort] {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	r, w := io.Pipe()
	port := &MockPort{reader: r}

	go func() {
		defer w.Close()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		i := 0
		for range ticker.C {
			line := lines[i%len(lines)]
			i++
			if _, err := w.Write(append(line, '\n')); err != nil {
				return
			}
		}
	}()

	return New(port)
}

// NewMockFromReader creates a Mux over a port that reads from r
// directly, for tests that want full control of the byte stream.
func NewMockFromReader(r io.Reader) (*Mux[*MockPort], *MockPort) {
	port := &MockPort{reader: r}
	return New(port), port
}
