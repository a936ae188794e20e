package store

import (
	"context"
	"fmt"

	"github.com/julianstephens/phoenix-rise/internal/backup"
	"github.com/julianstephens/phoenix-rise/internal/logger"
	"github.com/julianstephens/phoenix-rise/internal/scoring"
	"github.com/julianstephens/phoenix-rise/internal/utils"
	"github.com/julianstephens/phoenix-rise/internal/validation"
)

// Import replaces the whole snapshot with an export document or a bare
// snapshot. The document is validated first; on error nothing changes.
// The imported settings also overwrite their individual keys.
func (s *Store) Import(ctx context.Context, raw []byte) error {
	doc, err := backup.ParseExport(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	data, err := validation.DecodeSnapshot(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	data.VoiceSettings.TTSSpeed = ClampTTSSpeed(data.VoiceSettings.TTSSpeed)

	now := s.now()
	if !utils.IsToday(data.LastUpdated, now) {
		rollover(&data, now, s.retention)
	}
	data.PhoenixPoints = scoring.Score(data, now)

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()

	s.writeAllSettings(ctx, data.VoiceSettings)
	s.persist(ctx)
	logger.Info("Snapshot imported", "points", data.PhoenixPoints)

	s.syncVoice()
	return nil
}
