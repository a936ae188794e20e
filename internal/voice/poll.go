package voice

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/julianstephens/phoenix-rise/internal/logger"
)

// Recorder captures a short clip to a file and returns its path.
type Recorder interface {
	Record(ctx context.Context, d time.Duration) (string, error)
}

// Transcriber turns an audio file into text.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (string, error)
}

// PollRecognizer implements one record, upload and poll cycle per Listen.
// The listener supplies the repetition and the delays between cycles.
type PollRecognizer struct {
	recorder    Recorder
	transcriber Transcriber
	apiKey      func() string
	duration    time.Duration

	mu   sync.Mutex
	clip string
}

func NewPollRecognizer(recorder Recorder, transcriber Transcriber, apiKey func() string, clipLength time.Duration) *PollRecognizer {
	if clipLength <= 0 {
		clipLength = 15 * time.Second
	}
	return &PollRecognizer{
		recorder:    recorder,
		transcriber: transcriber,
		apiKey:      apiKey,
		duration:    clipLength,
	}
}

func (p *PollRecognizer) Listen(ctx context.Context, onTranscript func(Transcript)) error {
	if p.apiKey != nil && p.apiKey() == "" {
		return ErrNoAPIKey
	}

	path, err := p.recorder.Record(ctx, p.duration)
	if path != "" {
		p.mu.Lock()
		p.clip = path
		p.mu.Unlock()
	}
	if err != nil {
		return fmt.Errorf("record: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	text, err := p.transcriber.Transcribe(ctx, path)
	if err != nil {
		return fmt.Errorf("transcribe: %w", err)
	}
	logger.Debug("Clip transcribed", "chars", len(text))
	if text != "" {
		onTranscript(Transcript{Text: text, Final: true})
	}
	return nil
}

// Release removes the last recorded clip.
func (p *PollRecognizer) Release() error {
	p.mu.Lock()
	clip := p.clip
	p.clip = ""
	p.mu.Unlock()

	if clip == "" {
		return nil
	}
	if err := os.Remove(clip); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
