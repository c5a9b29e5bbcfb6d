// Command plantar.report serves plantar-pressure heatmaps: it ingests
// insole frames from a serial transmitter into a sqlite sample store
// and exposes rendered rasters, peak reports and playback over HTTP.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/neurosense/plantar.report/api"
	"github.com/neurosense/plantar.report/internal/config"
	"github.com/neurosense/plantar.report/internal/heatmap"
	"github.com/neurosense/plantar.report/internal/ingest"
	"github.com/neurosense/plantar.report/internal/pressure"
	"github.com/neurosense/plantar.report/internal/sampledb"
	"github.com/neurosense/plantar.report/internal/serialmux"
	"github.com/neurosense/plantar.report/internal/version"
)

var (
	devMode    = flag.Bool("dev", false, "Run in dev mode (replay fixtures.txt instead of opening a serial port)")
	listen     = flag.String("listen", ":8080", "Listen address")
	dbFile     = flag.String("db", "samples.db", "Path to the sample database")
	assetsDir  = flag.String("assets", "assets", "Directory holding the foot silhouette masks")
	serialPort = flag.String("serial", "/dev/ttyUSB0", "Serial port of the insole transmitter")
	footSide   = flag.String("side", "right", "Foot side being recorded (left or right)")
	recLabel   = flag.String("label", "", "Label for the live recording")
	configFile = flag.String("config", "", "Path to a render config JSON (partial overrides allowed)")
	migrations = flag.String("migrations", "", "Apply schema migrations from this directory at startup")
	noIngest   = flag.Bool("no-ingest", false, "Serve stored recordings only, without a live device")
)

func main() {
	flag.Parse()
	log.Printf("plantar.report %s (%s)", version.Version, version.GitSHA)

	if *listen == "" {
		log.Fatal("Listen address is required")
	}
	side := pressure.FootSide(*footSide)
	if side != pressure.FootLeft && side != pressure.FootRight {
		log.Fatalf("invalid -side %q: want left or right", *footSide)
	}

	cfg := heatmap.DefaultConfig()
	if *configFile != "" {
		rc, err := config.LoadRenderConfig(*configFile)
		if err != nil {
			log.Fatalf("failed to load render config: %v", err)
		}
		cfg = rc.Apply(cfg)
	}

	db, err := sampledb.Open(*dbFile)
	if err != nil {
		log.Fatalf("failed to open sample database: %v", err)
	}
	defer db.Close()

	if *migrations != "" {
		if err := db.MigrateUp(*migrations); err != nil {
			log.Fatalf("failed to apply migrations: %v", err)
		}
	}

	masks, err := api.LoadMasks(*assetsDir, cfg.Width, cfg.Height)
	if err != nil {
		log.Fatalf("failed to load silhouette masks: %v", err)
	}
	renderer := heatmap.NewRenderer(cfg, pressure.DefaultLayout(), masks)

	var m serialmux.Interface
	if !*noIngest {
		if *devMode {
			data, err := os.ReadFile("fixtures.txt")
			if err != nil {
				log.Fatalf("failed to open fixtures file: %v", err)
			}
			m = serialmux.NewMock(data, 100*time.Millisecond)
		} else {
			m, err = serialmux.NewReal(*serialPort, nil)
			if err != nil {
				log.Fatalf("failed to open serial port: %v", err)
			}
		}
		defer m.Close()
	}

	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if m != nil {
		// run the monitor routine to manage IO on the serial port
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := m.Monitor(ctx); err != nil && err != context.Canceled {
				log.Printf("failed to monitor serial port: %v", err)
			}
			log.Print("monitor routine terminated")
		}()

		// record parsed frames into a fresh recording
		wg.Add(1)
		go func() {
			defer wg.Done()
			ing := &ingest.Ingester{DB: db, Mux: m, Side: side, Label: *recLabel}
			if err := ing.Run(ctx); err != nil && err != context.Canceled {
				log.Printf("ingest routine failed: %v", err)
			}
			log.Print("ingest routine terminated")
		}()
	}

	server := api.NewServer(*listen, db, renderer, m)
	if err := server.AttachAdminRoutes(); err != nil {
		log.Fatalf("failed to attach admin routes: %v", err)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.Start(ctx); err != nil {
			log.Printf("HTTP server error: %v", err)
		}
		log.Print("HTTP server routine stopped")
	}()

	wg.Wait()
	log.Print("Graceful shutdown complete")
}
