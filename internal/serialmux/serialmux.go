// Package serialmux multiplexes one serial-port insole stream to many
// subscribers. The hardware emits one CSV line per sample; each
// subscriber gets every line on its own channel, and commands to the
// device are serialized through a single writer.
package serialmux

import (
	"bufio"
	"context"
	crand "crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"github.com/neurosense/plantar.report/internal/monitoring"
)

// ErrWriteFailed reports a short or failed write to the serial port.
var ErrWriteFailed = errors.New("failed to write to serial port")

// Mux fans serial-port lines out to subscribers.
type Mux[T SerialPorter] struct {
	port         T
	subscribers  map[string]chan string
	subscriberMu sync.Mutex
	commandMu    sync.Mutex
	closing      bool
	closingMu    sync.Mutex
}

// Interface is the mux surface consumed by the ingest and API layers.
type Interface interface {
	// Subscribe creates a channel receiving every line read from the
	// port. The returned id identifies the channel for Unsubscribe.
	Subscribe() (string, chan string)
	// Unsubscribe removes and closes a subscriber channel.
	Unsubscribe(string)
	// SendCommand writes one command line to the device.
	SendCommand(string) error
	// Monitor reads lines from the port until the context ends or the
	// port closes, fanning each line out to all subscribers.
	Monitor(context.Context) error
	// Close closes all subscriber channels and the port.
	Close() error
}

// New creates a Mux over an open port.
func New[T SerialPorter](port T) *Mux[T] {
	return &Mux[T]{
		port:        port,
		subscribers: make(map[string]chan string),
	}
}

func randomID() string {
	b := make([]byte, 8)
	crand.Read(b)
	return hex.EncodeToString(b)
}

// Subscribe registers a new line channel. The channel is buffered; a
// subscriber that stalls loses lines rather than blocking the reader.
func (m *Mux[T]) Subscribe() (string, chan string) {
	m.subscriberMu.Lock()
	defer m.subscriberMu.Unlock()
	id := randomID()
	ch := make(chan string, 64)
	m.subscribers[id] = ch
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (m *Mux[T]) Unsubscribe(id string) {
	m.subscriberMu.Lock()
	defer m.subscriberMu.Unlock()
	if ch, ok := m.subscribers[id]; ok {
		delete(m.subscribers, id)
		close(ch)
	}
}

// SendCommand writes a command line to the device. Commands are
// serialized so concurrent callers cannot interleave bytes.
func (m *Mux[T]) SendCommand(command string) error {
	m.commandMu.Lock()
	defer m.commandMu.Unlock()
	n, err := m.port.Write([]byte(command + "\n"))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if n < len(command)+1 {
		return fmt.Errorf("%w: short write (%d bytes)", ErrWriteFailed, n)
	}
	return nil
}

// Monitor reads lines until the context is cancelled or the port
// errors out. Each line is fanned out to every live subscriber.
func (m *Mux[T]) Monitor(ctx context.Context) error {
	scanner := bufio.NewScanner(m.port)
	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil && !m.isClosing() {
						return fmt.Errorf("serial read failed: %w", err)
					}
				default:
				}
				return nil
			}
			m.broadcast(line)
		}
	}
}

func (m *Mux[T]) broadcast(line string) {
	m.subscriberMu.Lock()
	defer m.subscriberMu.Unlock()
	for id, ch := range m.subscribers {
		select {
		case ch <- line:
		default:
			monitoring.Logf("subscriber %s lagging, dropping line", id)
		}
	}
}

func (m *Mux[T]) isClosing() bool {
	m.closingMu.Lock()
	defer m.closingMu.Unlock()
	return m.closing
}

// Close closes every subscriber channel and then the port.
func (m *Mux[T]) Close() error {
	m.closingMu.Lock()
	m.closing = true
	m.closingMu.Unlock()

	m.subscriberMu.Lock()
	for id, ch := range m.subscribers {
		delete(m.subscribers, id)
		close(ch)
	}
	m.subscriberMu.Unlock()

	return m.port.Close()
}
