package pressure

import (
	"fmt"
	"math"
	"time"
)

// FootSide identifies which insole a frame was sampled from.
type FootSide string

const (
	FootLeft  FootSide = "left"
	FootRight FootSide = "right"
)

// SensorCount is the number of pressure sensors per insole. Sensor ids
// run 1..SensorCount and are labelled SR1..SR9 on the hardware.
const SensorCount = 9

// Missing returns the sentinel for an absent sensor reading.
func Missing() float64 { return math.NaN() }

// IsMissing reports whether a reading carries the missing sentinel.
func IsMissing(v float64) bool { return math.IsNaN(v) }

// SensorID formats a numeric sensor id as its hardware label, e.g. "SR4".
func SensorID(id int) string { return fmt.Sprintf("SR%d", id) }

// Frame is one timestamped set of readings for one foot. Readings that
// were never sampled hold NaN. Frames are read-only after construction.
type Frame struct {
	side     FootSide
	ts       time.Time
	readings [SensorCount]float64
}

// NewFrame builds a Frame from a sparse id->raw mapping. Ids outside
// 1..SensorCount are rejected; sensors absent from the map are missing.
func NewFrame(side FootSide, ts time.Time, readings map[int]float64) (*Frame, error) {
	if side != FootLeft && side != FootRight {
		return nil, fmt.Errorf("invalid foot side %q", side)
	}
	f := &Frame{side: side, ts: ts}
	for i := range f.readings {
		f.readings[i] = math.NaN()
	}
	for id, v := range readings {
		if id < 1 || id > SensorCount {
			return nil, fmt.Errorf("sensor id %d out of range 1..%d", id, SensorCount)
		}
		f.readings[id-1] = v
	}
	return f, nil
}

// Side returns the foot the frame belongs to.
func (f *Frame) Side() FootSide { return f.side }

// Timestamp returns the sample time of the frame.
func (f *Frame) Timestamp() time.Time { return f.ts }

// Reading returns the raw value for a sensor id, or NaN when the id is
// out of range or the sensor did not report.
func (f *Frame) Reading(id int) float64 {
	if id < 1 || id > SensorCount {
		return math.NaN()
	}
	return f.readings[id-1]
}

// AllMissing reports whether no sensor in the frame carries a value.
func (f *Frame) AllMissing() bool {
	for _, v := range f.readings {
		if !math.IsNaN(v) {
			return false
		}
	}
	return true
}
