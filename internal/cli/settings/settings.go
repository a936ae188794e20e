package settings

import (
	"strconv"
	"strings"

	"github.com/julianstephens/phoenix-rise/internal/cli"
	"github.com/julianstephens/phoenix-rise/internal/models"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	ElevenLabsKey         *string  `name:"elevenlabs-key" help:"ElevenLabs API key (empty string clears it)."`
	AssemblyAIKey         *string  `name:"assemblyai-key" help:"AssemblyAI API key (empty string clears it)."`
	OpenWeatherKey        *string  `name:"openweather-key" help:"OpenWeather API key (empty string clears it)."`
	WakeWord              *bool    `help:"Listen for the wake word."`
	SoundEffects          *bool    `help:"Play sound effects."`
	BackgroundMusic       *bool    `help:"Play background music."`
	AutoRead              *bool    `help:"Read Phoenix's responses aloud."`
	VoiceMode             *bool    `help:"Hands-free voice conversation mode."`
	EmotionalIntelligence *bool    `help:"Detect emotion in your messages."`
	TTSSpeed              *float64 `name:"tts-speed" help:"Speech speed, 0.5 to 2.0."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	s := ctx.Store

	updated := false
	setKey := func(v *string, set func(string)) {
		if v != nil {
			set(strings.TrimSpace(*v))
			updated = true
		}
	}
	setFlag := func(v *bool, set func(bool)) {
		if v != nil {
			set(*v)
			updated = true
		}
	}

	setKey(c.ElevenLabsKey, s.SetElevenLabsAPIKey)
	setKey(c.AssemblyAIKey, s.SetAssemblyAIAPIKey)
	setKey(c.OpenWeatherKey, s.SetOpenWeatherAPIKey)
	setFlag(c.WakeWord, s.SetWakeWordEnabled)
	setFlag(c.SoundEffects, s.SetSoundEffectsEnabled)
	setFlag(c.BackgroundMusic, s.SetBackgroundMusicEnabled)
	setFlag(c.AutoRead, s.SetAutoReadResponsesEnabled)
	setFlag(c.VoiceMode, s.SetVoiceModeEnabled)
	setFlag(c.EmotionalIntelligence, s.SetEmotionalIntelligenceEnabled)
	if c.TTSSpeed != nil {
		if got := s.SetTTSSpeed(*c.TTSSpeed); got != *c.TTSSpeed {
			ctx.Printf("TTS speed clamped to %.1f\n", got)
		}
		updated = true
	}

	if c.List {
		printSettings(ctx, s.Settings())
		return nil
	}
	if updated {
		ctx.Println("Settings updated successfully.")
	} else {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
	}
	return nil
}

func printSettings(ctx *cli.Context, v models.VoiceSettings) {
	st := ctx.Styles()
	ctx.Println(st.Title.Render("API Keys:"))
	ctx.Println(st.Rows(
		[2]string{"  ElevenLabs", maskKey(v.ElevenLabsAPIKey)},
		[2]string{"  AssemblyAI", maskKey(v.AssemblyAIAPIKey)},
		[2]string{"  OpenWeather", maskKey(v.OpenWeatherAPIKey)},
	))
	ctx.Println(st.Header.Render("Voice & Behavior:"))
	ctx.Println(st.Rows(
		[2]string{"  Wake Word", onOff(v.WakeWordEnabled)},
		[2]string{"  Sound Effects", onOff(v.SoundEffectsEnabled)},
		[2]string{"  Background Music", onOff(v.BackgroundMusicEnabled)},
		[2]string{"  Auto-read Responses", onOff(v.AutoReadResponsesEnabled)},
		[2]string{"  Voice Mode", onOff(v.VoiceModeEnabled)},
		[2]string{"  Emotional Intelligence", onOff(v.EmotionalIntelligenceEnabled)},
	))
	ctx.Println(st.Row("  TTS Speed", strconv.FormatFloat(v.TTSSpeed, 'f', -1, 64)+"x"))
}

// maskKey shows only the last four characters of a key.
func maskKey(key string) string {
	switch {
	case key == "":
		return "(not set)"
	case len(key) <= 4:
		return "****"
	default:
		return strings.Repeat("*", 8) + key[len(key)-4:]
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
