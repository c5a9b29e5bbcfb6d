// Command gen-recordings seeds a sample database with synthetic gait
// recordings for testing the render and playback endpoints.
package main

import (
	"flag"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/neurosense/plantar.report/internal/pressure"
	"github.com/neurosense/plantar.report/internal/sampledb"
)

func main() {
	dbFile := flag.String("db", "samples.db", "sample database path")
	date := flag.String("date", time.Now().Format("2006-01-02"), "recording date (YYYY-MM-DD)")
	frames := flag.Int("n", 100, "number of frames per recording")
	stepFrames := flag.Int("step", 20, "frames per gait cycle")
	maxRaw := flag.Float64("max", 900, "peak raw reading")
	label := flag.String("label", "synthetic gait", "recording label")
	seed := flag.Int64("seed", 1, "noise seed")
	flag.Parse()

	db, err := sampledb.Open(*dbFile)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	rng := rand.New(rand.NewSource(*seed))
	start := time.Now().Add(-time.Duration(*frames) * 100 * time.Millisecond)

	for _, side := range []pressure.FootSide{pressure.FootLeft, pressure.FootRight} {
		rec, err := db.CreateRecording(side, *date, *label)
		if err != nil {
			log.Fatalf("failed to create recording: %v", err)
		}
		for i := 0; i < *frames; i++ {
			ts := start.Add(time.Duration(i) * 100 * time.Millisecond)
			if err := db.AppendFrame(rec.ID, i, ts, gaitReadings(side, i, *stepFrames, *maxRaw, rng)); err != nil {
				log.Fatalf("failed to append frame: %v", err)
			}
			if (i+1)%50 == 0 {
				log.Printf("%s: %d/%d frames", side, i+1, *frames)
			}
		}
		log.Printf("✓ Created: %s (%s, %d frames)", rec.ID, side, *frames)
	}
}

// gaitReadings models a heel-to-toe pressure wave: the load center
// sweeps from the heel (high layout Y) to the toes (low layout Y) over
// one gait cycle, and each sensor responds by its distance to the
// wave. Sensors occasionally drop a reading, like the real hardware.
func gaitReadings(side pressure.FootSide, frame, stepFrames int, maxRaw float64, rng *rand.Rand) map[int]float64 {
	phase := float64(frame%stepFrames) / float64(stepFrames)
	waveY := 0.9 - 0.8*phase

	layout := pressure.DefaultLayout()
	readings := make(map[int]float64, pressure.SensorCount)
	for id := 1; id <= pressure.SensorCount; id++ {
		if rng.Float64() < 0.01 {
			continue // dropped reading
		}
		pos, _ := layout.Position(id, side)
		d := pos.Y - waveY
		v := maxRaw * math.Exp(-d*d/(2*0.15*0.15))
		v += rng.NormFloat64() * maxRaw * 0.02
		if v < 0 {
			v = 0
		}
		readings[id] = v
	}
	return readings
}
