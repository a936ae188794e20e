package voice

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/julianstephens/phoenix-rise/internal/logger"
)

type State int

const (
	Idle State = iota
	Listening
	Stopping
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Listening:
		return "listening"
	case Stopping:
		return "stopping"
	default:
		return "unknown"
	}
}

// Listener is the wake-word state machine. A single session goroutine runs
// while Listening; Stop cancels it and waits for it to release the
// microphone. Stop requests outside Listening are no-ops.
type Listener struct {
	rec        Recognizer
	matcher    Matcher
	cycleDelay time.Duration
	retryDelay time.Duration

	mu       sync.Mutex
	state    State
	mic      bool
	cancel   context.CancelFunc
	done     chan struct{}
	onDetect func()
	onError  func(error)
	disabled error
}

// ListenerOptions configures a Listener. Zero delays fall back to one and
// five seconds.
type ListenerOptions struct {
	Recognizer    Recognizer
	TriggerPhrase string
	CycleDelay    time.Duration
	RetryDelay    time.Duration
}

func NewListener(opts ListenerOptions) *Listener {
	l := &Listener{
		rec:        opts.Recognizer,
		matcher:    NewMatcher(opts.TriggerPhrase),
		cycleDelay: opts.CycleDelay,
		retryDelay: opts.RetryDelay,
	}
	if l.cycleDelay <= 0 {
		l.cycleDelay = time.Second
	}
	if l.retryDelay <= 0 {
		l.retryDelay = 5 * time.Second
	}
	return l
}

// OnDetect registers the callback run after the trigger phrase is heard.
// It runs on the session goroutine once the listener is back in Idle.
func (l *Listener) OnDetect(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onDetect = fn
}

// OnError registers the callback run once when the microphone turns out to
// be unavailable. The listener is back in Idle when it runs and Start
// refuses to run again. A failure that happened before registration is
// delivered to fn immediately.
func (l *Listener) OnError(fn func(error)) {
	l.mu.Lock()
	l.onError = fn
	err := l.disabled
	l.mu.Unlock()
	if err != nil && fn != nil {
		fn(err)
	}
}

func (l *Listener) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Start begins listening. It is a no-op unless Idle.
func (l *Listener) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.disabled != nil {
		return l.disabled
	}
	if l.mic {
		return ErrMicBusy
	}
	if l.state != Idle {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	l.state = Listening
	l.cancel = cancel
	l.done = done
	go l.run(ctx, done)
	logger.Debug("Wake-word listener started", "phrase", l.matcher.Phrase())
	return nil
}

// Stop cancels the session and waits until the microphone is released.
// A concurrent Stop waits for the one already in progress.
func (l *Listener) Stop() {
	l.mu.Lock()
	switch l.state {
	case Idle:
		l.mu.Unlock()
		return
	case Stopping:
		done := l.done
		l.mu.Unlock()
		<-done
		return
	}
	l.state = Stopping
	l.cancel()
	done := l.done
	l.mu.Unlock()

	<-done

	l.mu.Lock()
	if l.done == done {
		l.state = Idle
		l.cancel = nil
		l.done = nil
	}
	l.mu.Unlock()
	logger.Debug("Wake-word listener stopped")
}

// SetMicEnabled records foreground ownership of the microphone. Taking it
// stops the loop; giving it back leaves restarting to the caller.
func (l *Listener) SetMicEnabled(enabled bool) {
	l.mu.Lock()
	l.mic = enabled
	l.mu.Unlock()
	if enabled {
		l.Stop()
	}
}

func (l *Listener) run(ctx context.Context, done chan struct{}) {
	detected, fatal := l.loop(ctx)

	var (
		notify func()
		report func(error)
	)
	if detected || fatal != nil {
		l.mu.Lock()
		if fatal != nil {
			l.disabled = fatal
			report = l.onError
		}
		// A Stop that raced the session end wins; the detect callback is dropped.
		if l.state == Listening && l.done == done {
			l.state = Idle
			l.cancel()
			l.cancel = nil
			l.done = nil
			if detected {
				notify = l.onDetect
			}
		}
		l.mu.Unlock()
	}
	close(done)

	switch {
	case fatal != nil:
		logger.Warn("Wake-word listening disabled", "error", fatal)
		if report != nil {
			report(fatal)
		}
	case notify != nil:
		logger.Info("Trigger phrase heard")
		notify()
	}
}

// loop runs recognition sessions until the phrase is heard or ctx ends.
// Failed sessions are retried after the retry delay; sessions that end
// normally restart after the cycle delay. An unavailable microphone ends
// the loop with that error.
func (l *Listener) loop(ctx context.Context) (bool, error) {
	for {
		sessionCtx, cancelSession := context.WithCancel(ctx)
		var (
			hitMu sync.Mutex
			hit   bool
		)
		err := l.rec.Listen(sessionCtx, func(t Transcript) {
			if !l.matcher.Match(t.Text) {
				return
			}
			hitMu.Lock()
			hit = true
			hitMu.Unlock()
			cancelSession()
		})
		cancelSession()
		if relErr := l.rec.Release(); relErr != nil {
			logger.Debug("Recognizer release failed", "error", relErr)
		}

		hitMu.Lock()
		heard := hit
		hitMu.Unlock()
		if heard {
			return true, nil
		}
		if ctx.Err() != nil {
			return false, nil
		}
		if errors.Is(err, ErrMicUnavailable) {
			return false, err
		}

		delay := l.cycleDelay
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("Wake-word session failed, retrying", "error", err, "retry_in", l.retryDelay)
			delay = l.retryDelay
		}
		if !sleep(ctx, delay) {
			return false, nil
		}
	}
}

// sleep waits for d or until ctx is done and reports whether it waited the
// full duration.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
