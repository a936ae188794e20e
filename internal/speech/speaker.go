package speech

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/julianstephens/phoenix-rise/internal/logger"
	"github.com/julianstephens/phoenix-rise/internal/utils"
)

// baseWPM is the system synthesizer rate at speed 1.0.
const baseWPM = 175

// Synthesizer produces MPEG audio for text.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Runner executes a command line. It is swapped out in tests.
type Runner func(ctx context.Context, args []string) error

func execRunner(ctx context.Context, args []string) error {
	out, err := exec.CommandContext(ctx, args[0], args[1:]...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", args[0], err, out)
	}
	return nil
}

// Speaker reads text aloud. It prefers the cloud voice played through the
// player command and falls back to the system synthesizer.
type Speaker struct {
	TTS           Synthesizer
	PlayerCommand []string
	SynthCommand  []string
	Speed         func() float64
	Run           Runner
	TempDir       string
}

// Speak returns an error only when both the cloud voice and the fallback fail.
func (s *Speaker) Speak(ctx context.Context, text string) error {
	cloudErr := s.speakCloud(ctx, text)
	if cloudErr == nil {
		return nil
	}
	logger.Debug("Cloud voice unavailable, using system synthesizer", "error", cloudErr)

	fallbackErr := s.speakLocal(ctx, text)
	if fallbackErr == nil {
		return nil
	}
	return fmt.Errorf("speech unavailable: %w", errors.Join(cloudErr, fallbackErr))
}

func (s *Speaker) run(ctx context.Context, args []string) error {
	if s.Run != nil {
		return s.Run(ctx, args)
	}
	return execRunner(ctx, args)
}

func (s *Speaker) speakCloud(ctx context.Context, text string) error {
	if s.TTS == nil {
		return ErrNoAPIKey
	}
	audio, err := s.TTS.Synthesize(ctx, text)
	if err != nil {
		return err
	}

	f, err := os.CreateTemp(s.TempDir, "phoenix-tts-*.mp3")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())
	if _, err := f.Write(audio); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	args, err := utils.ExpandCommand(s.PlayerCommand, map[string]string{"in": f.Name()})
	if err != nil {
		return fmt.Errorf("player: %w", err)
	}
	return s.run(ctx, args)
}

func (s *Speaker) speakLocal(ctx context.Context, text string) error {
	speed := 1.0
	if s.Speed != nil {
		speed = s.Speed()
	}
	args, err := utils.ExpandCommand(s.SynthCommand, map[string]string{
		"text": text,
		"wpm":  strconv.Itoa(int(baseWPM * speed)),
	})
	if err != nil {
		return fmt.Errorf("synthesizer: %w", err)
	}
	return s.run(ctx, args)
}
