package store

import (
	"time"

	"github.com/julianstephens/phoenix-rise/internal/logger"
	"github.com/julianstephens/phoenix-rise/internal/scoring"
	"github.com/julianstephens/phoenix-rise/internal/utils"
)

// syncVoice starts the listener when the app is active, wake word is on and
// the microphone is free, and stops it otherwise.
func (s *Store) syncVoice() {
	if s.listener == nil {
		return
	}
	wake := s.Settings().WakeWordEnabled

	s.voiceMu.Lock()
	defer s.voiceMu.Unlock()
	if s.appActive && wake && !s.micEnabled {
		if err := s.listener.Start(); err != nil {
			logger.Warn("Wake-word listener did not start", "error", err)
		}
		return
	}
	s.listener.Stop()
}

// SetAppActive reports a foreground/background transition. Going to the
// background always stops the voice loop. Coming back runs the daily
// rollover and restarts listening if it should be on.
func (s *Store) SetAppActive(active bool) {
	s.voiceMu.Lock()
	s.appActive = active
	s.voiceMu.Unlock()

	if !active {
		if s.listener != nil {
			s.listener.Stop()
		}
		return
	}
	s.Rollover(s.now())
	s.syncVoice()
}

// SetMicEnabled records whether a foreground conversation owns the
// microphone. While it does, the wake-word loop stays idle.
func (s *Store) SetMicEnabled(enabled bool) {
	s.voiceMu.Lock()
	s.micEnabled = enabled
	s.voiceMu.Unlock()

	if s.listener != nil {
		s.listener.SetMicEnabled(enabled)
	}
	if !enabled {
		s.syncVoice()
	}
}

func (s *Store) MicEnabled() bool {
	s.voiceMu.Lock()
	defer s.voiceMu.Unlock()
	return s.micEnabled
}

// handleWakeWord runs on the listener's goroutine after it has returned to
// Idle: the microphone passes to the foreground conversation.
func (s *Store) handleWakeWord() {
	logger.Info("Wake word detected")
	s.SetMicEnabled(true)
	if s.onWake != nil {
		s.onWake()
	}
}

// Rollover applies the daily reset if the snapshot was last updated on an
// earlier day. It is a no-op otherwise.
func (s *Store) Rollover(now time.Time) bool {
	s.mu.Lock()
	if utils.IsToday(s.data.LastUpdated, now) {
		s.mu.Unlock()
		return false
	}
	next := s.data.Clone()
	rollover(&next, now, s.retention)
	next.PhoenixPoints = scoring.Score(next, now)
	s.data = next
	s.mu.Unlock()

	logger.Info("Daily rollover applied", "date", utils.FormatDate(now))
	s.flusher.Schedule()
	return true
}
