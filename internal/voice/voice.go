// Package voice runs the wake-word loop: it keeps a recognizer listening
// for the trigger phrase while the app is in the foreground and the
// microphone is free, and hands control back once the phrase is heard.
package voice

import (
	"context"
	"errors"
	"strings"
	"unicode"
)

var (
	// ErrMicBusy is returned by Start while a foreground conversation owns
	// the microphone.
	ErrMicBusy = errors.New("microphone is in use")
	// ErrNoAPIKey is returned by a recognizer whose transcription key is unset.
	ErrNoAPIKey = errors.New("transcription API key is not configured")
	// ErrMicUnavailable marks capture failures that retrying cannot fix,
	// such as a missing recorder program or denied access. A listener that
	// sees it stays off for the rest of the process.
	ErrMicUnavailable = errors.New("microphone is unavailable")
)

// Transcript is one interim or final recognition result.
type Transcript struct {
	Text  string
	Final bool
}

// Recognizer is a single listening session. Listen blocks until ctx is
// cancelled, the session ends or fails; it reports every result through
// onTranscript. Release frees the microphone and any session resources and
// is safe to call when nothing is held.
type Recognizer interface {
	Listen(ctx context.Context, onTranscript func(Transcript)) error
	Release() error
}

// Matcher finds a trigger phrase as a run of whole words, ignoring case and
// punctuation.
type Matcher struct {
	words []string
}

func NewMatcher(phrase string) Matcher {
	return Matcher{words: tokenize(phrase)}
}

func (m Matcher) Phrase() string {
	return strings.Join(m.words, " ")
}

// Match reports whether text contains the phrase.
func (m Matcher) Match(text string) bool {
	if len(m.words) == 0 {
		return false
	}
	tokens := tokenize(text)
	for i := 0; i+len(m.words) <= len(tokens); i++ {
		if equalWords(tokens[i:i+len(m.words)], m.words) {
			return true
		}
	}
	return false
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

func equalWords(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
