package store

import (
	"context"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/phoenix-rise/internal/constants"
	"github.com/julianstephens/phoenix-rise/internal/logger"
	"github.com/julianstephens/phoenix-rise/internal/models"
)

// storedSettings holds the raw values of the individually persisted keys.
// A missing entry leaves the snapshot's value alone.
type storedSettings map[string]string

// hydrateSettings reads every setting key concurrently. Gateway reads are
// fail-soft, so the group only fails on context cancellation.
func (s *Store) hydrateSettings(ctx context.Context) (storedSettings, error) {
	values := make([]string, len(constants.SettingKeys))
	found := make([]bool, len(constants.SettingKeys))

	g, gctx := errgroup.WithContext(ctx)
	for i, key := range constants.SettingKeys {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			values[i], found[i] = s.gw.Read(gctx, key)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(storedSettings)
	for i, key := range constants.SettingKeys {
		if found[i] {
			out[key] = values[i]
		}
	}
	return out, nil
}

func (st storedSettings) apply(v *models.VoiceSettings) {
	str := func(key string, dst *string) {
		if raw, ok := st[key]; ok {
			*dst = raw
		}
	}
	flag := func(key string, dst *bool) {
		raw, ok := st[key]
		if !ok {
			return
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			logger.Warn("Ignoring malformed setting", "key", key, "value", raw)
			return
		}
		*dst = b
	}

	str(constants.KeyElevenLabsAPIKey, &v.ElevenLabsAPIKey)
	str(constants.KeyAssemblyAIAPIKey, &v.AssemblyAIAPIKey)
	str(constants.KeyOpenWeatherAPIKey, &v.OpenWeatherAPIKey)
	flag(constants.KeyWakeWordEnabled, &v.WakeWordEnabled)
	flag(constants.KeySoundEffectsEnabled, &v.SoundEffectsEnabled)
	flag(constants.KeyBackgroundMusicEnabled, &v.BackgroundMusicEnabled)
	flag(constants.KeyAutoReadResponsesEnabled, &v.AutoReadResponsesEnabled)
	flag(constants.KeyVoiceModeEnabled, &v.VoiceModeEnabled)
	flag(constants.KeyEmotionalIntelligenceEnabled, &v.EmotionalIntelligenceEnabled)

	if raw, ok := st[constants.KeyTTSSpeed]; ok {
		speed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			logger.Warn("Ignoring malformed setting", "key", constants.KeyTTSSpeed, "value", raw)
		} else {
			v.TTSSpeed = ClampTTSSpeed(speed)
		}
	}
}

// ClampTTSSpeed limits speed to the supported playback range.
func ClampTTSSpeed(speed float64) float64 {
	return min(max(speed, constants.MinTTSSpeed), constants.MaxTTSSpeed)
}

// Settings returns the current voice and behavior settings.
func (s *Store) Settings() models.VoiceSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.VoiceSettings
}

// setSetting updates the snapshot copy of a setting and writes its own key
// right away, bypassing the debounce.
func (s *Store) setSetting(key, raw string, apply func(v *models.VoiceSettings)) {
	_ = s.update(func(d *models.WellnessData, _ time.Time) error {
		apply(&d.VoiceSettings)
		return nil
	})
	s.gw.Write(context.Background(), key, raw)
}

func (s *Store) SetElevenLabsAPIKey(key string) {
	s.setSetting(constants.KeyElevenLabsAPIKey, key, func(v *models.VoiceSettings) { v.ElevenLabsAPIKey = key })
}

func (s *Store) SetAssemblyAIAPIKey(key string) {
	s.setSetting(constants.KeyAssemblyAIAPIKey, key, func(v *models.VoiceSettings) { v.AssemblyAIAPIKey = key })
}

func (s *Store) SetOpenWeatherAPIKey(key string) {
	s.setSetting(constants.KeyOpenWeatherAPIKey, key, func(v *models.VoiceSettings) { v.OpenWeatherAPIKey = key })
}

// SetWakeWordEnabled also starts or stops the voice loop to match.
func (s *Store) SetWakeWordEnabled(enabled bool) {
	s.setSetting(constants.KeyWakeWordEnabled, strconv.FormatBool(enabled), func(v *models.VoiceSettings) { v.WakeWordEnabled = enabled })
	s.syncVoice()
}

func (s *Store) SetSoundEffectsEnabled(enabled bool) {
	s.setSetting(constants.KeySoundEffectsEnabled, strconv.FormatBool(enabled), func(v *models.VoiceSettings) { v.SoundEffectsEnabled = enabled })
}

func (s *Store) SetBackgroundMusicEnabled(enabled bool) {
	s.setSetting(constants.KeyBackgroundMusicEnabled, strconv.FormatBool(enabled), func(v *models.VoiceSettings) { v.BackgroundMusicEnabled = enabled })
}

func (s *Store) SetAutoReadResponsesEnabled(enabled bool) {
	s.setSetting(constants.KeyAutoReadResponsesEnabled, strconv.FormatBool(enabled), func(v *models.VoiceSettings) { v.AutoReadResponsesEnabled = enabled })
}

func (s *Store) SetVoiceModeEnabled(enabled bool) {
	s.setSetting(constants.KeyVoiceModeEnabled, strconv.FormatBool(enabled), func(v *models.VoiceSettings) { v.VoiceModeEnabled = enabled })
}

func (s *Store) SetEmotionalIntelligenceEnabled(enabled bool) {
	s.setSetting(constants.KeyEmotionalIntelligenceEnabled, strconv.FormatBool(enabled), func(v *models.VoiceSettings) { v.EmotionalIntelligenceEnabled = enabled })
}

// SetTTSSpeed stores speed clamped to [0.5, 2.0] and returns the stored value.
func (s *Store) SetTTSSpeed(speed float64) float64 {
	speed = ClampTTSSpeed(speed)
	s.setSetting(constants.KeyTTSSpeed, strconv.FormatFloat(speed, 'f', -1, 64), func(v *models.VoiceSettings) { v.TTSSpeed = speed })
	return speed
}

// writeAllSettings persists every setting key from v, used after an import.
func (s *Store) writeAllSettings(ctx context.Context, v models.VoiceSettings) {
	pairs := map[string]string{
		constants.KeyElevenLabsAPIKey:             v.ElevenLabsAPIKey,
		constants.KeyAssemblyAIAPIKey:             v.AssemblyAIAPIKey,
		constants.KeyOpenWeatherAPIKey:            v.OpenWeatherAPIKey,
		constants.KeyWakeWordEnabled:              strconv.FormatBool(v.WakeWordEnabled),
		constants.KeySoundEffectsEnabled:          strconv.FormatBool(v.SoundEffectsEnabled),
		constants.KeyBackgroundMusicEnabled:       strconv.FormatBool(v.BackgroundMusicEnabled),
		constants.KeyAutoReadResponsesEnabled:     strconv.FormatBool(v.AutoReadResponsesEnabled),
		constants.KeyVoiceModeEnabled:             strconv.FormatBool(v.VoiceModeEnabled),
		constants.KeyEmotionalIntelligenceEnabled: strconv.FormatBool(v.EmotionalIntelligenceEnabled),
		constants.KeyTTSSpeed:                     strconv.FormatFloat(v.TTSSpeed, 'f', -1, 64),
	}
	for _, key := range constants.SettingKeys {
		s.gw.Write(ctx, key, pairs[key])
	}
}
