package voice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"github.com/julianstephens/phoenix-rise/internal/utils"
)

// ExecRecorder records clips by running a configured command such as sox
// "rec" or "arecord". The command is killed if ctx ends first.
type ExecRecorder struct {
	Command []string
	Dir     string
}

func (r ExecRecorder) Record(ctx context.Context, d time.Duration) (string, error) {
	f, err := os.CreateTemp(r.Dir, "phoenix-clip-*.wav")
	if err != nil {
		return "", fmt.Errorf("create clip: %w", err)
	}
	path := f.Name()
	f.Close()

	args, err := utils.ExpandCommand(r.Command, map[string]string{
		"out":     path,
		"seconds": strconv.Itoa(int(d.Round(time.Second).Seconds())),
	})
	if err != nil {
		return path, err
	}

	// Allow the recorder a moment past the clip length to finalize the file.
	runCtx, cancel := context.WithTimeout(ctx, d+5*time.Second)
	defer cancel()
	cmd := exec.CommandContext(runCtx, args[0], args[1:]...)
	if out, err := cmd.CombinedOutput(); err != nil {
		if merr := micFailure(args[0], err); merr != nil {
			return path, merr
		}
		return path, fmt.Errorf("%s: %w: %s", args[0], err, out)
	}
	return path, nil
}

// micFailure wraps err with ErrMicUnavailable when the capture program is
// missing or may not be run. It returns nil for any other error.
func micFailure(name string, err error) error {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %s: %w", ErrMicUnavailable, name, err)
	}
	return nil
}

// AudioSource opens a live stream of 16-bit little-endian mono PCM.
type AudioSource interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// ExecAudioSource streams PCM from a command's stdout.
type ExecAudioSource struct {
	Command    []string
	SampleRate int
}

func (s ExecAudioSource) Open(ctx context.Context) (io.ReadCloser, error) {
	args, err := utils.ExpandCommand(s.Command, map[string]string{"rate": strconv.Itoa(s.SampleRate)})
	if err != nil {
		return nil, err
	}
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		if merr := micFailure(args[0], err); merr != nil {
			return nil, merr
		}
		return nil, fmt.Errorf("start %s: %w", args[0], err)
	}
	return &processStream{ReadCloser: stdout, cmd: cmd}, nil
}

// processStream kills the capture process on Close.
type processStream struct {
	io.ReadCloser
	cmd  *exec.Cmd
	once sync.Once
}

func (p *processStream) Close() error {
	p.once.Do(func() {
		if p.cmd.Process != nil {
			_ = p.cmd.Process.Kill()
		}
		_ = p.ReadCloser.Close()
		_ = p.cmd.Wait()
	})
	return nil
}
