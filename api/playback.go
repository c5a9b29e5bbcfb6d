package api

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/neurosense/plantar.report/internal/httputil"
	"github.com/neurosense/plantar.report/internal/playback"
)

// playbackState is the JSON shape of /api/playback/status.
type playbackState struct {
	RecordingID string `json:"recording_id"`
	Playing     bool   `json:"playing"`
	Frame       int    `json:"frame"`
	FrameCount  int    `json:"frame_count"`
	IntervalMS  int64  `json:"interval_ms"`
}

// speedInterval maps the speed query param to a playback interval.
// Unknown values fall back to normal.
func speedInterval(speed string) time.Duration {
	switch speed {
	case "slow":
		return playback.SpeedSlow
	case "fast":
		return playback.SpeedFast
	default:
		return playback.SpeedNormal
	}
}

// playbackLoad fetches a recording's frames into a fresh player,
// replacing whatever was loaded before. The previous player is stopped
// so its timer goroutine cannot keep running unobserved.
func (s *Server) playbackLoad(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}
	recID := r.FormValue("recording_id")
	if recID == "" {
		httputil.BadRequest(w, "missing 'recording_id' parameter")
		return
	}

	frames, err := s.db.Frames(recID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			httputil.NotFound(w, "recording not found")
			return
		}
		httputil.InternalServerError(w, fmt.Sprintf("failed to load frames: %v", err))
		return
	}
	if len(frames) == 0 {
		httputil.NotFound(w, "recording has no frames")
		return
	}

	s.mu.Lock()
	if s.player != nil {
		s.player.Stop()
	}
	s.player = playback.NewPlayer(frames, nil)
	s.playerRec = recID
	s.mu.Unlock()

	s.writePlaybackStatus(w)
}

func (s *Server) playbackPlay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}
	p := s.currentPlayer()
	if p == nil {
		httputil.WriteJSONError(w, http.StatusConflict, "no recording loaded")
		return
	}
	p.Play(speedInterval(r.FormValue("speed")))
	s.writePlaybackStatus(w)
}

func (s *Server) playbackPause(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}
	p := s.currentPlayer()
	if p == nil {
		httputil.WriteJSONError(w, http.StatusConflict, "no recording loaded")
		return
	}
	p.Pause()
	s.writePlaybackStatus(w)
}

func (s *Server) playbackStop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}
	p := s.currentPlayer()
	if p == nil {
		httputil.WriteJSONError(w, http.StatusConflict, "no recording loaded")
		return
	}
	p.Stop()
	s.writePlaybackStatus(w)
}

// playbackStep builds the next/prev handlers; d is +1 or -1.
func (s *Server) playbackStep(d int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			httputil.MethodNotAllowed(w)
			return
		}
		p := s.currentPlayer()
		if p == nil {
			httputil.WriteJSONError(w, http.StatusConflict, "no recording loaded")
			return
		}
		if d >= 0 {
			p.Next()
		} else {
			p.Prev()
		}
		s.writePlaybackStatus(w)
	}
}

func (s *Server) playbackStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	s.writePlaybackStatus(w)
}

func (s *Server) currentPlayer() *playback.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.player
}

func (s *Server) writePlaybackStatus(w http.ResponseWriter) {
	s.mu.Lock()
	p, recID := s.player, s.playerRec
	s.mu.Unlock()

	if p == nil {
		httputil.WriteJSONOK(w, playbackState{})
		return
	}
	idx, _ := p.Current()
	httputil.WriteJSONOK(w, playbackState{
		RecordingID: recID,
		Playing:     p.Playing(),
		Frame:       idx,
		FrameCount:  p.Len(),
		IntervalMS:  p.Interval().Milliseconds(),
	})
}
