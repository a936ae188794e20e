package constants

// Storage keys. KeySnapshot holds the whole aggregate document; the remaining
// keys are individually persisted settings.
const (
	KeySnapshot = "phoenix_wellness_data"

	KeyElevenLabsAPIKey             = "elevenlabs_api_key"
	KeyAssemblyAIAPIKey             = "assemblyai_api_key"
	KeyOpenWeatherAPIKey            = "openweather_api_key"
	KeyWakeWordEnabled              = "wake_word_enabled"
	KeySoundEffectsEnabled          = "sound_effects_enabled"
	KeyBackgroundMusicEnabled       = "background_music_enabled"
	KeyAutoReadResponsesEnabled     = "auto_read_responses_enabled"
	KeyVoiceModeEnabled             = "voice_mode_enabled"
	KeyEmotionalIntelligenceEnabled = "emotional_intelligence_enabled"
	KeyTTSSpeed                     = "tts_speed"

	// Default Settings Values
	DefaultWakeWordEnabled              = true
	DefaultSoundEffectsEnabled          = true
	DefaultBackgroundMusicEnabled       = false
	DefaultAutoReadResponsesEnabled     = false
	DefaultVoiceModeEnabled             = false
	DefaultEmotionalIntelligenceEnabled = true
	DefaultTTSSpeed                     = 1.0
	MinTTSSpeed                         = 0.5
	MaxTTSSpeed                         = 2.0

	DefaultTriggerPhrase = "hey phoenix"
)

// SettingKeys lists every individually persisted setting, in hydration order.
var SettingKeys = []string{
	KeyElevenLabsAPIKey,
	KeyAssemblyAIAPIKey,
	KeyOpenWeatherAPIKey,
	KeyWakeWordEnabled,
	KeySoundEffectsEnabled,
	KeyBackgroundMusicEnabled,
	KeyAutoReadResponsesEnabled,
	KeyVoiceModeEnabled,
	KeyEmotionalIntelligenceEnabled,
	KeyTTSSpeed,
}

// MirroredKeys are written to the secondary store as well as the primary one.
var MirroredKeys = SettingKeys
