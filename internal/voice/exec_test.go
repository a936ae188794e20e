package voice

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecRecorderMissingProgram(t *testing.T) {
	r := ExecRecorder{Command: []string{"phoenix-missing-recorder", "{out}"}, Dir: t.TempDir()}

	_, err := r.Record(context.Background(), time.Second)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMicUnavailable)
	assert.ErrorIs(t, err, exec.ErrNotFound)
}

func TestExecRecorderNotExecutable(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "rec")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\n"), 0o600))

	_, err := ExecRecorder{Command: []string{script, "{out}"}, Dir: dir}.Record(context.Background(), time.Second)
	assert.ErrorIs(t, err, ErrMicUnavailable)
}

func TestExecRecorderFailureIsRetryable(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	r := ExecRecorder{Command: []string{"sh", "-c", "exit 3"}, Dir: t.TempDir()}

	_, err := r.Record(context.Background(), time.Second)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMicUnavailable)
}

func TestExecAudioSourceMissingProgram(t *testing.T) {
	src := ExecAudioSource{Command: []string{"phoenix-missing-recorder", "-r", "{rate}"}, SampleRate: 16000}

	stream, err := src.Open(context.Background())
	assert.Nil(t, stream)
	assert.ErrorIs(t, err, ErrMicUnavailable)
}
