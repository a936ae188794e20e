package voice

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tidwall/gjson"

	"github.com/julianstephens/phoenix-rise/internal/logger"
)

// errSessionEnded is returned when the service closes the session on its own.
var errSessionEnded = errors.New("recognition session ended")

// StreamRecognizer streams microphone PCM to a realtime transcription
// websocket and reports partial and final transcripts as they arrive.
type StreamRecognizer struct {
	url        string
	apiKey     func() string
	source     AudioSource
	sampleRate int
	dialer     *websocket.Dialer

	mu    sync.Mutex
	conn  *websocket.Conn
	audio io.ReadCloser
}

func NewStreamRecognizer(endpoint string, apiKey func() string, source AudioSource, sampleRate int) *StreamRecognizer {
	if sampleRate <= 0 {
		sampleRate = 16000
	}
	return &StreamRecognizer{
		url:        endpoint,
		apiKey:     apiKey,
		source:     source,
		sampleRate: sampleRate,
		dialer:     &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
	}
}

func (r *StreamRecognizer) endpoint() (string, error) {
	u, err := url.Parse(r.url)
	if err != nil {
		return "", fmt.Errorf("invalid stream URL: %w", err)
	}
	q := u.Query()
	q.Set("sample_rate", strconv.Itoa(r.sampleRate))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Listen runs one session. It returns nil when ctx is cancelled and an
// error when the connection, the audio source or the service ends it.
func (r *StreamRecognizer) Listen(ctx context.Context, onTranscript func(Transcript)) error {
	key := ""
	if r.apiKey != nil {
		key = r.apiKey()
	}
	if key == "" {
		return ErrNoAPIKey
	}
	endpoint, err := r.endpoint()
	if err != nil {
		return err
	}

	header := http.Header{}
	header.Set("Authorization", key)
	conn, resp, err := r.dialer.DialContext(ctx, endpoint, header)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	audio, err := r.source.Open(ctx)
	if err != nil {
		conn.Close()
		return fmt.Errorf("open microphone: %w", err)
	}

	r.mu.Lock()
	r.conn, r.audio = conn, audio
	r.mu.Unlock()

	errc := make(chan error, 2)
	pumpDone := make(chan struct{})
	readDone := make(chan struct{})
	go func() {
		defer close(pumpDone)
		errc <- r.pump(audio, conn)
	}()
	go func() {
		defer close(readDone)
		errc <- r.read(conn, onTranscript)
	}()

	var sessionErr error
	select {
	case <-ctx.Done():
	case sessionErr = <-errc:
	}

	// The pump is the only writer; once it has exited the terminate frame
	// can be sent safely.
	audio.Close()
	<-pumpDone
	terminate, _ := json.Marshal(map[string]bool{"terminate_session": true})
	_ = conn.SetWriteDeadline(time.Now().Add(time.Second))
	_ = conn.WriteMessage(websocket.TextMessage, terminate)
	conn.Close()
	<-readDone

	if ctx.Err() != nil {
		return nil
	}
	return sessionErr
}

// pump forwards PCM chunks of about 100ms as base64 audio_data frames.
func (r *StreamRecognizer) pump(audio io.Reader, conn *websocket.Conn) error {
	buf := make([]byte, r.sampleRate/10*2)
	for {
		n, err := io.ReadFull(audio, buf)
		if n > 0 {
			frame, _ := json.Marshal(map[string]string{"audio_data": base64.StdEncoding.EncodeToString(buf[:n])})
			if werr := conn.WriteMessage(websocket.TextMessage, frame); werr != nil {
				return fmt.Errorf("send audio: %w", werr)
			}
		}
		if err != nil {
			return fmt.Errorf("microphone stream ended: %w", err)
		}
	}
}

func (r *StreamRecognizer) read(conn *websocket.Conn, onTranscript func(Transcript)) error {
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		res := gjson.ParseBytes(msg)
		if e := res.Get("error"); e.Exists() {
			return fmt.Errorf("transcription service: %s", e.String())
		}
		switch kind := res.Get("message_type").String(); kind {
		case "PartialTranscript", "FinalTranscript":
			if text := res.Get("text").String(); text != "" {
				onTranscript(Transcript{Text: text, Final: kind == "FinalTranscript"})
			}
		case "SessionTerminated":
			return errSessionEnded
		case "SessionBegins":
			logger.Debug("Recognition session started", "session_id", res.Get("session_id").String())
		}
	}
}

// Release closes anything a session left open. Closing twice is harmless.
func (r *StreamRecognizer) Release() error {
	r.mu.Lock()
	conn, audio := r.conn, r.audio
	r.conn, r.audio = nil, nil
	r.mu.Unlock()

	if audio != nil {
		audio.Close()
	}
	if conn != nil {
		conn.Close()
	}
	return nil
}
