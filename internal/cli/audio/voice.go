// Package audio holds the wake-word and speech commands.
package audio

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/julianstephens/phoenix-rise/internal/cli"
	"github.com/julianstephens/phoenix-rise/internal/errors"
	"github.com/julianstephens/phoenix-rise/internal/logger"
	"github.com/julianstephens/phoenix-rise/internal/models"
	"github.com/julianstephens/phoenix-rise/internal/store"
)

type VoiceCmd struct {
	Listen VoiceListenCmd `cmd:"" help:"Listen for the wake word until interrupted."`
	Say    VoiceSayCmd    `cmd:"" help:"Read text aloud."`
	Status VoiceStatusCmd `cmd:"" help:"Show voice configuration." default:"1"`
}

var errNoSpeaker = stderrors.New("speech output is not configured")

type VoiceListenCmd struct {
	Greeting string `help:"What Phoenix says when woken." default:"I'm here. How can I help?"`
	Once     bool   `help:"Exit after the first wake."`
}

// Run blocks until the context is cancelled. Each wake greets the user and
// hands the microphone back to the listener. If the microphone cannot be
// used the user is told once and the command ends.
func (c *VoiceListenCmd) Run(ctx *cli.Context) error {
	if ctx.Wake == nil {
		return stderrors.New("wake-word listening is not available in this session")
	}
	s := ctx.Store
	if !s.Settings().WakeWordEnabled {
		ctx.Println("Wake word is disabled. Enable it with 'phoenix settings --wake-word'.")
		return nil
	}

	job, err := store.NewRolloverJob(s, time.Local)
	if err != nil {
		return fmt.Errorf("failed to schedule rollover: %w", err)
	}
	job.Start()
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		job.Stop(stopCtx)
	}()
	logger.Debug("Rollover scheduled", "next", job.Next())

	micErr := make(chan error, 1)
	if ctx.Listener != nil {
		ctx.Listener.OnError(func(err error) {
			select {
			case micErr <- err:
			default:
			}
		})
	}

	ctx.Printf("Listening for %q... (Ctrl+C to stop)\n", ctx.Config.Voice.TriggerPhrase)
	for {
		select {
		case err := <-micErr:
			s.SetAppActive(false)
			ctx.Println(errors.Notice(fmt.Errorf("wake-word listening is off for this session: %w", err)))
			ctx.Println("Check voice.recorder_command and voice.stream_command in your config, then run 'phoenix doctor'.")
			return nil
		case <-ctx.Ctx().Done():
			s.SetAppActive(false)
			ctx.Println("Stopped listening.")
			return nil
		case <-ctx.Wake:
			c.greet(ctx)
			s.SetMicEnabled(false)
			if c.Once {
				s.SetAppActive(false)
				return nil
			}
		}
	}
}

func (c *VoiceListenCmd) greet(ctx *cli.Context) {
	ctx.Println("🔥 Phoenix is listening.")
	if _, err := ctx.Store.AddChatMessage(models.ChatMessage{Text: c.Greeting, Emoji: "🔥"}); err != nil {
		logger.Warn("Could not record greeting", "error", err)
	}
	if ctx.Speaker == nil {
		return
	}
	if err := ctx.Speaker.Speak(ctx.Ctx(), c.Greeting); err != nil {
		logger.Warn("Could not speak greeting", "error", err)
	}
}

type VoiceSayCmd struct {
	Text string `arg:"" help:"Text to speak."`
}

func (c *VoiceSayCmd) Run(ctx *cli.Context) error {
	if ctx.Speaker == nil {
		return errNoSpeaker
	}
	return ctx.Speaker.Speak(ctx.Ctx(), c.Text)
}

type VoiceStatusCmd struct{}

func (c *VoiceStatusCmd) Run(ctx *cli.Context) error {
	v := ctx.Store.Settings()
	st := ctx.Styles()
	rows := [][2]string{
		{"Wake word", enabled(v.WakeWordEnabled)},
		{"Trigger phrase", ctx.Config.Voice.TriggerPhrase},
		{"Recognizer", ctx.Config.Voice.Backend},
		{"Cloud voice", enabled(v.ElevenLabsAPIKey != "")},
		{"Transcription", enabled(v.AssemblyAIAPIKey != "")},
		{"Speed", fmt.Sprintf("%.2gx", v.TTSSpeed)},
	}
	if ctx.Listener != nil {
		rows = append(rows, [2]string{"Listener", ctx.Listener.State().String()})
	}
	ctx.Println(st.Rows(rows...))
	return nil
}

func enabled(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}
