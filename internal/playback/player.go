// Package playback advances a cursor through a pre-fetched frame
// sequence on a fixed interval, the way the movement view replays a
// recorded walk.
package playback

import (
	"sync"
	"time"

	"github.com/neurosense/plantar.report/internal/pressure"
)

// Speed presets for the playback interval.
var (
	SpeedSlow   = time.Second            // 1 fps
	SpeedNormal = 200 * time.Millisecond // 5 fps
	SpeedFast   = 100 * time.Millisecond // 10 fps
)

// Player owns a frame cursor and at most one timer. Play while already
// running restarts the interval instead of stacking a second timer;
// Stop halts playback and deterministically rewinds to the first
// frame. All methods are safe for concurrent use.
type Player struct {
	mu       sync.Mutex
	frames   []*pressure.Frame
	idx      int
	interval time.Duration
	stop     chan struct{}
	onFrame  func(idx int, f *pressure.Frame)
}

// NewPlayer creates a stopped player over the given sequence. onFrame,
// if non-nil, is invoked for every frame the timer advances to.
func NewPlayer(frames []*pressure.Frame, onFrame func(idx int, f *pressure.Frame)) *Player {
	return &Player{frames: frames, onFrame: onFrame}
}

// Play starts (or restarts) the timer with the given interval. Calling
// Play on a running player resets the interval; it never spawns a
// second timer loop.
func (p *Player) Play(interval time.Duration) {
	if interval <= 0 {
		interval = SpeedNormal
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.frames) == 0 {
		return
	}
	p.stopLocked()
	p.interval = interval
	stop := make(chan struct{})
	p.stop = stop
	go p.run(interval, stop)
}

func (p *Player) run(interval time.Duration, stop chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			p.advance()
		}
	}
}

func (p *Player) advance() {
	p.mu.Lock()
	if p.stop == nil || len(p.frames) == 0 {
		p.mu.Unlock()
		return
	}
	p.idx = (p.idx + 1) % len(p.frames)
	idx, frame, cb := p.idx, p.frames[p.idx], p.onFrame
	p.mu.Unlock()

	if cb != nil {
		cb(idx, frame)
	}
}

// Pause halts the timer, keeping the cursor where it is.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// Stop halts the timer and rewinds the cursor to the first frame.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	p.idx = 0
}

func (p *Player) stopLocked() {
	if p.stop != nil {
		close(p.stop)
		p.stop = nil
	}
}

// Next advances the cursor one frame, wrapping at the end, and returns
// the frame under the cursor. Returns nil for an empty sequence.
func (p *Player) Next() *pressure.Frame {
	return p.step(1)
}

// Prev moves the cursor one frame back, wrapping at the start.
func (p *Player) Prev() *pressure.Frame {
	return p.step(-1)
}

func (p *Player) step(d int) *pressure.Frame {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := len(p.frames)
	if n == 0 {
		return nil
	}
	p.idx = ((p.idx+d)%n + n) % n
	return p.frames[p.idx]
}

// Current returns the cursor position and the frame under it.
func (p *Player) Current() (int, *pressure.Frame) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.frames) == 0 {
		return 0, nil
	}
	return p.idx, p.frames[p.idx]
}

// Playing reports whether the timer is running.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stop != nil
}

// Interval returns the interval of the most recent Play call.
func (p *Player) Interval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.interval
}

// Len returns the number of frames in the sequence.
func (p *Player) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.frames)
}
