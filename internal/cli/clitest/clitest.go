// Package clitest builds a command Context over in-memory storage for
// command tests.
package clitest

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/julianstephens/phoenix-rise/internal/backup"
	"github.com/julianstephens/phoenix-rise/internal/cli"
	"github.com/julianstephens/phoenix-rise/internal/config"
	"github.com/julianstephens/phoenix-rise/internal/constants"
	"github.com/julianstephens/phoenix-rise/internal/storage"
	"github.com/julianstephens/phoenix-rise/internal/store"
)

// Now is the fixed clock every harness store runs on.
var Now = time.Date(2026, 3, 8, 10, 0, 0, 0, time.Local)

type Harness struct {
	Ctx     *cli.Context
	Out     *bytes.Buffer
	Store   *store.Store
	Primary *storage.MemoryProvider
	Mirror  *storage.MemoryProvider
	Dir     string

	// Answer is returned by the confirmation prompt.
	Answer  bool
	Prompts []string
}

// New returns a loaded harness. IDs are sequential: id-1, id-2, ...
func New(t *testing.T) *Harness {
	t.Helper()

	h := &Harness{
		Out:     &bytes.Buffer{},
		Primary: storage.NewMemoryProvider(),
		Mirror:  storage.NewMemoryProvider(),
		Dir:     t.TempDir(),
	}
	gw := storage.NewGateway(h.Primary, h.Mirror, constants.MirroredKeys)

	n := 0
	h.Store = store.New(store.Options{
		Gateway:  gw,
		Debounce: time.Hour,
		Clock:    func() time.Time { return Now },
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	})
	require.NoError(t, h.Store.Load(context.Background()))
	t.Cleanup(func() {
		_ = h.Store.Close(context.Background())
	})

	cfg := config.DefaultConfig()
	cfg.Storage.Backend = "memory"
	cfg.Storage.Mirror = "none"
	cfg.Storage.Path = filepath.Join(h.Dir, "phoenix.db")

	h.Ctx = &cli.Context{
		Config:     cfg,
		ConfigPath: filepath.Join(h.Dir, constants.DefaultConfigFile),
		Gateway:    gw,
		Store:      h.Store,
		Backups:    backup.NewManager(h.Dir),
		Out:        h.Out,
		Confirm: func(title, _ string) (bool, error) {
			h.Prompts = append(h.Prompts, title)
			return h.Answer, nil
		},
	}
	return h
}

// Output returns and clears everything written so far.
func (h *Harness) Output() string {
	s := h.Out.String()
	h.Out.Reset()
	return s
}
