package ingest

import (
	"context"

	"github.com/neurosense/plantar.report/internal/monitoring"
	"github.com/neurosense/plantar.report/internal/pressure"
	"github.com/neurosense/plantar.report/internal/sampledb"
	"github.com/neurosense/plantar.report/internal/serialmux"
	"github.com/neurosense/plantar.report/internal/timeutil"
)

// Ingester subscribes to a serial mux and appends every parseable line
// to a recording in the sample store.
type Ingester struct {
	DB    *sampledb.DB
	Mux   serialmux.Interface
	Side  pressure.FootSide
	Label string

	// Clock stamps lines without their own timestamp and dates the
	// recording; nil means the real clock.
	Clock timeutil.Clock
}

// Run creates one recording and appends frames until the context ends
// or the mux closes. Unparseable lines are logged and skipped; they
// never abort the session.
func (in *Ingester) Run(ctx context.Context) error {
	clock := in.Clock
	if clock == nil {
		clock = timeutil.RealClock{}
	}

	rec, err := in.DB.CreateRecording(in.Side, clock.Now().Format("2006-01-02"), in.Label)
	if err != nil {
		return err
	}
	monitoring.Logf("ingest: recording %s started (%s)", rec.ID, in.Side)

	id, lines := in.Mux.Subscribe()
	defer in.Mux.Unsubscribe(id)

	idx := 0
	for {
		select {
		case <-ctx.Done():
			monitoring.Logf("ingest: recording %s closed after %d frames", rec.ID, idx)
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				monitoring.Logf("ingest: recording %s closed after %d frames", rec.ID, idx)
				return nil
			}
			readings, ts, err := ParseLine(line, clock.Now())
			if err != nil {
				monitoring.Logf("ingest: skipping line %q: %v", line, err)
				continue
			}
			if err := in.DB.AppendFrame(rec.ID, idx, ts, readings); err != nil {
				return err
			}
			idx++
		}
	}
}
