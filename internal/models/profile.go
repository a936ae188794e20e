package models

import "github.com/julianstephens/phoenix-rise/internal/constants"

type UserProfile struct {
	Name       string `json:"name"`
	Age        int    `json:"age"`
	Motivation string `json:"motivation"`
}

type Theme struct {
	Name       string `json:"name"`
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Text       string `json:"text"`
}

// DefaultTheme is the phoenix palette restored by "reset to default".
func DefaultTheme() Theme {
	return Theme{
		Name:       "Phoenix",
		Primary:    "#FF6B35",
		Secondary:  "#F7931E",
		Accent:     "#FFD23F",
		Background: "#1A1A2E",
		Text:       "#FFFFFF",
	}
}

// VoiceSettings holds API keys and voice/behavior toggles. Each field is also
// persisted under its own storage key.
type VoiceSettings struct {
	ElevenLabsAPIKey             string  `json:"elevenLabsApiKey"`
	AssemblyAIAPIKey             string  `json:"assemblyAiApiKey"`
	OpenWeatherAPIKey            string  `json:"openWeatherApiKey"`
	WakeWordEnabled              bool    `json:"wakeWordEnabled"`
	SoundEffectsEnabled          bool    `json:"soundEffectsEnabled"`
	BackgroundMusicEnabled       bool    `json:"backgroundMusicEnabled"`
	AutoReadResponsesEnabled     bool    `json:"autoReadResponsesEnabled"`
	VoiceModeEnabled             bool    `json:"voiceModeEnabled"`
	EmotionalIntelligenceEnabled bool    `json:"emotionalIntelligenceEnabled"`
	TTSSpeed                     float64 `json:"ttsSpeed"`
}

func DefaultVoiceSettings() VoiceSettings {
	return VoiceSettings{
		WakeWordEnabled:              constants.DefaultWakeWordEnabled,
		SoundEffectsEnabled:          constants.DefaultSoundEffectsEnabled,
		BackgroundMusicEnabled:       constants.DefaultBackgroundMusicEnabled,
		AutoReadResponsesEnabled:     constants.DefaultAutoReadResponsesEnabled,
		VoiceModeEnabled:             constants.DefaultVoiceModeEnabled,
		EmotionalIntelligenceEnabled: constants.DefaultEmotionalIntelligenceEnabled,
		TTSSpeed:                     constants.DefaultTTSSpeed,
	}
}
