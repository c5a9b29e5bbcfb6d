// Package ingest turns serial CSV lines from the insole transmitter
// into stored frames.
package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/neurosense/plantar.report/internal/pressure"
)

// ParseLine decodes one transmitter line: nine comma-separated sensor
// values, optionally followed by a unix-milliseconds timestamp. The
// hardware occasionally emits blank or garbled fields for sensors that
// missed their ADC window; those become missing readings rather than
// failing the line. A wrong field count is a real protocol error.
func ParseLine(line string, now time.Time) (map[int]float64, time.Time, error) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) != pressure.SensorCount && len(fields) != pressure.SensorCount+1 {
		return nil, time.Time{}, fmt.Errorf("expected %d or %d fields, got %d",
			pressure.SensorCount, pressure.SensorCount+1, len(fields))
	}

	readings := make(map[int]float64, pressure.SensorCount)
	for i := 0; i < pressure.SensorCount; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(fields[i]), 64)
		if err != nil || math.IsInf(v, 0) {
			readings[i+1] = math.NaN()
			continue
		}
		readings[i+1] = v
	}

	ts := now
	if len(fields) == pressure.SensorCount+1 {
		ms, err := strconv.ParseInt(strings.TrimSpace(fields[pressure.SensorCount]), 10, 64)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("bad timestamp field %q", fields[pressure.SensorCount])
		}
		ts = time.UnixMilli(ms)
	}
	return readings, ts, nil
}
