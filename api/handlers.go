package api

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/neurosense/plantar.report/internal/heatmap"
	"github.com/neurosense/plantar.report/internal/httputil"
	"github.com/neurosense/plantar.report/internal/pressure"
	"github.com/neurosense/plantar.report/internal/sampledb"
)

// Display size of the fitted raster, matching the movement view pane.
const (
	displayW = 520
	displayH = 680
)

func (s *Server) listDates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	dates, err := s.db.Dates()
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to list dates: %v", err))
		return
	}
	if dates == nil {
		dates = []string{}
	}
	httputil.WriteJSONOK(w, dates)
}

func (s *Server) listRecordings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		httputil.BadRequest(w, "missing 'date' parameter")
		return
	}
	side := pressure.FootSide(r.URL.Query().Get("side"))
	if side != "" && side != pressure.FootLeft && side != pressure.FootRight {
		httputil.BadRequest(w, "invalid 'side' parameter")
		return
	}

	recs, err := s.db.Recordings(date, side)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to list recordings: %v", err))
		return
	}
	if recs == nil {
		recs = []sampledb.Recording{}
	}
	httputil.WriteJSONOK(w, recs)
}

type badParamError string

func (e badParamError) Error() string { return string(e) }

// frameParam fetches the frame named by the recording_id and frame
// query params; frame defaults to 0.
func (s *Server) frameParam(r *http.Request) (*pressure.Frame, error) {
	recID := r.URL.Query().Get("recording_id")
	if recID == "" {
		return nil, badParamError("missing 'recording_id' parameter")
	}
	idx := 0
	if f := r.URL.Query().Get("frame"); f != "" {
		parsed, err := strconv.Atoi(f)
		if err != nil || parsed < 0 {
			return nil, badParamError("invalid 'frame' parameter")
		}
		idx = parsed
	}
	return s.db.FrameAt(recID, idx)
}

func (s *Server) writeFrameErr(w http.ResponseWriter, err error) {
	var bp badParamError
	switch {
	case errors.As(err, &bp):
		httputil.BadRequest(w, bp.Error())
	case errors.Is(err, sql.ErrNoRows):
		httputil.NotFound(w, "recording or frame not found")
	default:
		httputil.InternalServerError(w, fmt.Sprintf("failed to load frame: %v", err))
	}
}

func (s *Server) showHeatmap(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	frame, err := s.frameParam(r)
	if err != nil {
		s.writeFrameErr(w, err)
		return
	}

	img, err := s.renderer.Render(frame)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to render heatmap: %v", err))
		return
	}
	if r.URL.Query().Get("fit") == "1" {
		httputil.WritePNG(w, heatmap.FitTo(img, displayW, displayH))
		return
	}
	httputil.WritePNG(w, img)
}

func (s *Server) showLegend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	refMax := s.renderer.Config().ReferenceMax
	if v := r.URL.Query().Get("reference_max"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			httputil.BadRequest(w, "invalid 'reference_max' parameter")
			return
		}
		refMax = parsed
	}
	httputil.WritePNG(w, s.renderer.Legend(refMax))
}

func (s *Server) showPeak(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	frame, err := s.frameParam(r)
	if err != nil {
		s.writeFrameErr(w, err)
		return
	}

	peak, ok := pressure.FindPeak(frame, pressure.DefaultRegionNames(), s.renderer.Config().UnitFactor)
	if !ok {
		httputil.NotFound(w, "frame has no valid readings")
		return
	}
	httputil.WriteJSONOK(w, peak)
}

func (s *Server) showTrend(w http.ResponseWriter, r *http.Request) {
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

	// Render into a buffer first so plot errors can still become a
	// clean error response.
	title := fmt.Sprintf("Peak pressure, %s foot, %s", rec.Side, rec.Date)
	var buf bytes.Buffer
	if err := pressure.PeakTrend(&buf, frames, pressure.DefaultRegionNames(), s.renderer.Config().UnitFactor, title); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to render trend plot: %v", err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(buf.Bytes())
}
