package api

import (
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurosense/plantar.report/internal/heatmap"
	"github.com/neurosense/plantar.report/internal/pressure"
	"github.com/neurosense/plantar.report/internal/sampledb"
	"github.com/neurosense/plantar.report/internal/serialmux"
)

func testConfig() heatmap.Config {
	cfg := heatmap.DefaultConfig()
	cfg.Width = 68
	cfg.Height = 90
	cfg.Sigma = 8
	return cfg
}

func testMasks(cfg heatmap.Config) map[pressure.FootSide]image.Image {
	blank := image.NewNRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	return map[pressure.FootSide]image.Image{
		pressure.FootLeft:  blank,
		pressure.FootRight: blank,
	}
}

// newTestServer seeds one right-foot recording with three frames and
// returns the server plus the recording id.
func newTestServer(t *testing.T, m serialmux.Interface) (*Server, string) {
	t.Helper()

	db, err := sampledb.Open(filepath.Join(t.TempDir(), "samples.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rec, err := db.CreateRecording(pressure.FootRight, "2026-08-01", "morning walk")
	require.NoError(t, err)
	base := time.UnixMilli(1754006400000)
	for i := 0; i < 3; i++ {
		readings := map[int]float64{}
		for id := 1; id <= pressure.SensorCount; id++ {
			readings[id] = float64(100*i + 10*id)
		}
		require.NoError(t, db.AppendFrame(rec.ID, i, base.Add(time.Duration(i)*time.Second), readings))
	}

	cfg := testConfig()
	renderer := heatmap.NewRenderer(cfg, pressure.DefaultLayout(), testMasks(cfg))
	return NewServer("127.0.0.1:0", db, renderer, m), rec.ID
}

func doRequest(t *testing.T, s *Server, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rr := httptest.NewRecorder()
	s.ServeMux().ServeHTTP(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rr := doRequest(t, s, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestListDates(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rr := doRequest(t, s, http.MethodGet, "/api/dates", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var dates []string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&dates))
	assert.Equal(t, []string{"2026-08-01"}, dates)
}

func TestListRecordings(t *testing.T) {
	s, recID := newTestServer(t, nil)

	rr := doRequest(t, s, http.MethodGet, "/api/recordings?date=2026-08-01", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var recs []sampledb.Recording
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&recs))
	require.Len(t, recs, 1)
	assert.Equal(t, recID, recs[0].ID)
	assert.Equal(t, "morning walk", recs[0].Label)

	// Empty day still returns a JSON array.
	rr = doRequest(t, s, http.MethodGet, "/api/recordings?date=2026-08-02", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]\n", rr.Body.String())

	rr = doRequest(t, s, http.MethodGet, "/api/recordings?date=2026-08-01&side=middle", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, s, http.MethodGet, "/api/recordings", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestShowHeatmap(t *testing.T) {
	s, recID := newTestServer(t, nil)

	rr := doRequest(t, s, http.MethodGet, "/api/heatmap?recording_id="+recID+"&frame=1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))

	img, err := png.Decode(rr.Body)
	require.NoError(t, err)
	assert.Equal(t, 68, img.Bounds().Dx())
	assert.Equal(t, 90, img.Bounds().Dy())
}

func TestShowHeatmapFit(t *testing.T) {
	s, recID := newTestServer(t, nil)

	rr := doRequest(t, s, http.MethodGet, "/api/heatmap?recording_id="+recID+"&fit=1", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	img, err := png.Decode(rr.Body)
	require.NoError(t, err)
	// 68x90 fitted into 520x680 scales to 513x680.
	assert.Equal(t, 680, img.Bounds().Dy())
	assert.LessOrEqual(t, img.Bounds().Dx(), 520)
}

func TestShowHeatmapErrors(t *testing.T) {
	s, recID := newTestServer(t, nil)

	rr := doRequest(t, s, http.MethodGet, "/api/heatmap", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, s, http.MethodGet, "/api/heatmap?recording_id=nope", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doRequest(t, s, http.MethodGet, "/api/heatmap?recording_id="+recID+"&frame=99", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doRequest(t, s, http.MethodGet, "/api/heatmap?recording_id="+recID+"&frame=-1", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, s, http.MethodPost, "/api/heatmap?recording_id="+recID, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestShowLegend(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rr := doRequest(t, s, http.MethodGet, "/api/legend", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	img, err := png.Decode(rr.Body)
	require.NoError(t, err)
	assert.Equal(t, heatmap.LegendW, img.Bounds().Dx())
	assert.Equal(t, heatmap.LegendH, img.Bounds().Dy())

	rr = doRequest(t, s, http.MethodGet, "/api/legend?reference_max=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestShowPeak(t *testing.T) {
	s, recID := newTestServer(t, nil)

	rr := doRequest(t, s, http.MethodGet, "/api/peak?recording_id="+recID+"&frame=2", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var peak pressure.PeakInfo
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&peak))
	// Frame 2 readings are 210..290, so SR9 peaks.
	assert.Equal(t, "SR9", peak.SensorID)
	assert.Equal(t, 290.0, peak.Raw)
	assert.InDelta(t, 290.0*pressure.KPaPerUnit, peak.KPa, 1e-9)
	assert.Equal(t, pressure.FootRight, peak.Side)
}

func TestShowTrend(t *testing.T) {
	s, recID := newTestServer(t, nil)

	rr := doRequest(t, s, http.MethodGet, "/api/trend?recording_id="+recID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	_, err := png.Decode(rr.Body)
	require.NoError(t, err)

	rr = doRequest(t, s, http.MethodGet, "/api/trend?recording_id=nope", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestShowSensorChart(t *testing.T) {
	s, recID := newTestServer(t, nil)

	rr := doRequest(t, s, http.MethodGet, "/api/chart?recording_id="+recID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rr.Body.String(), "SR1")

	rr = doRequest(t, s, http.MethodGet, "/api/chart?recording_id=nope", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPlaybackLifecycle(t *testing.T) {
	s, recID := newTestServer(t, nil)

	// Controls conflict before anything is loaded.
	rr := doRequest(t, s, http.MethodPost, "/api/playback/play", url.Values{})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = doRequest(t, s, http.MethodPost, "/api/playback/load", url.Values{"recording_id": {recID}})
	require.Equal(t, http.StatusOK, rr.Code)
	var state playbackState
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&state))
	assert.Equal(t, recID, state.RecordingID)
	assert.Equal(t, 3, state.FrameCount)
	assert.False(t, state.Playing)

	rr = doRequest(t, s, http.MethodPost, "/api/playback/play", url.Values{"speed": {"fast"}})
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&state))
	assert.True(t, state.Playing)
	assert.Equal(t, int64(100), state.IntervalMS)

	rr = doRequest(t, s, http.MethodPost, "/api/playback/pause", url.Values{})
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&state))
	assert.False(t, state.Playing)

	// The timer may have advanced the cursor before the pause landed,
	// so step expectations are relative to the paused position.
	paused := state.Frame

	rr = doRequest(t, s, http.MethodPost, "/api/playback/next", url.Values{})
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&state))
	assert.Equal(t, (paused+1)%3, state.Frame)

	rr = doRequest(t, s, http.MethodPost, "/api/playback/prev", url.Values{})
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&state))
	assert.Equal(t, paused, state.Frame)

	rr = doRequest(t, s, http.MethodPost, "/api/playback/stop", url.Values{})
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&state))
	assert.False(t, state.Playing)
	assert.Equal(t, 0, state.Frame)

	rr = doRequest(t, s, http.MethodGet, "/api/playback/status", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, s, http.MethodPost, "/api/playback/load", url.Values{"recording_id": {"nope"}})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSendCommand(t *testing.T) {
	mux, port := serialmux.NewMockFromReader(strings.NewReader(""))
	s, _ := newTestServer(t, mux)

	rr := doRequest(t, s, http.MethodPost, "/api/command", url.Values{"command": {"CALIBRATE"}})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "CALIBRATE\n", string(port.Written()))

	rr = doRequest(t, s, http.MethodPost, "/api/command", url.Values{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSendCommandWithoutDevice(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rr := doRequest(t, s, http.MethodPost, "/api/command", url.Values{"command": {"CALIBRATE"}})
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
