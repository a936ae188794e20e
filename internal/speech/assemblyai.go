package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/julianstephens/phoenix-rise/internal/logger"
)

// ErrTranscriptionFailed is returned when the job ends in the error state.
var ErrTranscriptionFailed = errors.New("transcription failed")

// Transcript statuses reported by the API.
const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusError      = "error"
)

type TranscriptStatus struct {
	ID     string
	Status string
	Text   string
	Error  string
}

// AssemblyAI runs the upload, create and poll transcription flow.
type AssemblyAI struct {
	BaseURL      string
	Key          KeyFunc
	Client       *http.Client
	PollInterval time.Duration
	PollTimeout  time.Duration
}

func (a *AssemblyAI) key() (string, error) {
	if a.Key == nil || a.Key() == "" {
		return "", ErrNoAPIKey
	}
	return a.Key(), nil
}

func (a *AssemblyAI) do(ctx context.Context, method, path string, body io.Reader, contentType string) (gjson.Result, error) {
	key, err := a.key()
	if err != nil {
		return gjson.Result{}, err
	}
	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(a.BaseURL, "/")+path, body)
	if err != nil {
		return gjson.Result{}, err
	}
	req.Header.Set("Authorization", key)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := defaultClient(a.Client).Do(req)
	if err != nil {
		return gjson.Result{}, err
	}
	defer resp.Body.Close()
	if err := checkResponse(resp); err != nil {
		return gjson.Result{}, err
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, err
	}
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, fmt.Errorf("unexpected response from %s", path)
	}
	return gjson.ParseBytes(raw), nil
}

// Upload sends the audio file and returns the URL the API stored it under.
func (a *AssemblyAI) Upload(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read clip: %w", err)
	}
	res, err := a.do(ctx, http.MethodPost, "/v2/upload", bytes.NewReader(data), "application/octet-stream")
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	uploadURL := res.Get("upload_url").String()
	if uploadURL == "" {
		return "", fmt.Errorf("upload: response has no upload_url")
	}
	return uploadURL, nil
}

// CreateTranscript starts a job for audioURL and returns its ID.
func (a *AssemblyAI) CreateTranscript(ctx context.Context, audioURL string) (string, error) {
	body, err := json.Marshal(map[string]string{"audio_url": audioURL})
	if err != nil {
		return "", err
	}
	res, err := a.do(ctx, http.MethodPost, "/v2/transcript", bytes.NewReader(body), "application/json")
	if err != nil {
		return "", fmt.Errorf("create transcript: %w", err)
	}
	id := res.Get("id").String()
	if id == "" {
		return "", fmt.Errorf("create transcript: response has no id")
	}
	return id, nil
}

func (a *AssemblyAI) GetTranscript(ctx context.Context, id string) (TranscriptStatus, error) {
	res, err := a.do(ctx, http.MethodGet, "/v2/transcript/"+url.PathEscape(id), nil, "")
	if err != nil {
		return TranscriptStatus{}, fmt.Errorf("get transcript: %w", err)
	}
	return TranscriptStatus{
		ID:     res.Get("id").String(),
		Status: res.Get("status").String(),
		Text:   res.Get("text").String(),
		Error:  res.Get("error").String(),
	}, nil
}

// Transcribe uploads path, creates a job and polls it until it completes,
// fails or the poll timeout passes. Polls are paced by a rate limiter.
func (a *AssemblyAI) Transcribe(ctx context.Context, path string) (string, error) {
	if _, err := a.key(); err != nil {
		return "", err
	}
	interval, timeout := a.PollInterval, a.PollTimeout
	if interval <= 0 {
		interval = time.Second
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	audioURL, err := a.Upload(ctx, path)
	if err != nil {
		return "", err
	}
	id, err := a.CreateTranscript(ctx, audioURL)
	if err != nil {
		return "", err
	}

	pollCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	for polls := 1; ; polls++ {
		if err := limiter.Wait(pollCtx); err != nil {
			return "", fmt.Errorf("transcript %s not ready after %d polls: %w", id, polls-1, err)
		}
		st, err := a.GetTranscript(pollCtx, id)
		if err != nil {
			return "", err
		}
		switch st.Status {
		case StatusCompleted:
			logger.Debug("Transcript ready", "id", id, "polls", polls)
			return st.Text, nil
		case StatusError:
			return "", fmt.Errorf("%w: %s", ErrTranscriptionFailed, st.Error)
		}
	}
}
