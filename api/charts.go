package api

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/neurosense/plantar.report/internal/httputil"
	"github.com/neurosense/plantar.report/internal/pressure"
)

// showSensorChart renders a quick line chart (HTML) of every sensor's
// raw trace over a recording using go-echarts. This is a
// debugging-only endpoint to eyeball a capture without the UI.
// Query params:
//   - recording_id (required)
//   - max_frames (optional; default 2000) to reduce payload size
func (s *Server) showSensorChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	recID := r.URL.Query().Get("recording_id")
	if recID == "" {
		httputil.BadRequest(w, "missing 'recording_id' parameter")
		return
	}
	rec, err := s.db.Recording(recID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			httputil.NotFound(w, "recording not found")
			return
		}
		httputil.InternalServerError(w, fmt.Sprintf("failed to load recording: %v", err))
		return
	}
	frames, err := s.db.Frames(recID)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to load frames: %v", err))
		return
	}
	if len(frames) == 0 {
		httputil.NotFound(w, "recording has no frames")
		return
	}

	maxFrames := 2000
	if mf := r.URL.Query().Get("max_frames"); mf != "" {
		if v, err := strconv.Atoi(mf); err == nil && v > 10 && v <= 50000 {
			maxFrames = v
		}
	}

	// Downsample by stride to stay within maxFrames
	stride := 1
	if len(frames) > maxFrames {
		stride = int(math.Ceil(float64(len(frames)) / float64(maxFrames)))
	}

	xAxis := make([]string, 0, len(frames)/stride+1)
	series := make([][]opts.LineData, pressure.SensorCount)
	for id := range series {
		series[id] = make([]opts.LineData, 0, len(frames)/stride+1)
	}
	for i := 0; i < len(frames); i += stride {
		xAxis = append(xAxis, strconv.Itoa(i))
		for id := 1; id <= pressure.SensorCount; id++ {
			v := frames[i].Reading(id)
			if math.IsNaN(v) {
				// Gaps keep the trace honest about dropped readings.
				series[id-1] = append(series[id-1], opts.LineData{Value: nil})
				continue
			}
			series[id-1] = append(series[id-1], opts.LineData{Value: v})
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Plantar Sensor Traces", Theme: "dark", Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Sensor traces",
			Subtitle: fmt.Sprintf("recording=%s side=%s frames=%d stride=%d", rec.ID, rec.Side, len(frames), stride),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Frame"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Raw"}),
	)

	line.SetXAxis(xAxis)
	names := pressure.DefaultRegionNames()
	for id := 1; id <= pressure.SensorCount; id++ {
		name := fmt.Sprintf("%s (%s)", pressure.SensorID(id), names.Name(id))
		line.AddSeries(name, series[id-1])
	}

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to render chart: %v", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
