package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/phoenix-rise/internal/backup"
	"github.com/julianstephens/phoenix-rise/internal/config"
	"github.com/julianstephens/phoenix-rise/internal/logger"
	"github.com/julianstephens/phoenix-rise/internal/speech"
	"github.com/julianstephens/phoenix-rise/internal/storage"
	"github.com/julianstephens/phoenix-rise/internal/store"
	"github.com/julianstephens/phoenix-rise/internal/utils"
	"github.com/julianstephens/phoenix-rise/internal/voice"
)

// Context is handed to every command's Run method.
type Context struct {
	Config     *config.Config
	ConfigPath string
	Gateway    *storage.Gateway
	Store      *store.Store
	Backups    *backup.Manager

	// Listener is only attached for long-running voice commands.
	Listener *voice.Listener
	Speaker  *speech.Speaker
	// Wake receives a value each time the trigger phrase is heard.
	Wake <-chan struct{}

	// Base is cancelled on interrupt. Nil means context.Background.
	Base    context.Context
	Out     io.Writer
	Confirm func(title, description string) (bool, error)
}

// Ctx is the context blocking operations run under.
func (c *Context) Ctx() context.Context {
	if c.Base == nil {
		return context.Background()
	}
	return c.Base
}

// Printf writes to the command output.
func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

// Println writes a line to the command output.
func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Writer exposes the output stream for renderers.
func (c *Context) Writer() io.Writer {
	return c.out()
}

// Ask runs the confirmation prompt, falling back to an interactive huh form.
func (c *Context) Ask(title, description string) (bool, error) {
	if c.Confirm != nil {
		return c.Confirm(title, description)
	}
	return HuhConfirm(title, description)
}

// HuhConfirm shows a yes/no prompt in the terminal.
func HuhConfirm(title, description string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if err != nil {
		return false, fmt.Errorf("confirmation aborted: %w", err)
	}
	return ok, nil
}

// PerformAutomaticBackup snapshots the current data before a destructive
// command and logs, rather than returns, any failure.
func (c *Context) PerformAutomaticBackup() {
	if c.Backups == nil {
		return
	}
	if _, err := c.Backups.SafetyBackup(c.Store.Snapshot()); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ParseDate accepts YYYY-MM-DD, "today" or an empty string (no date).
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "":
		return nil, nil
	case "today":
		t := utils.StartOfDay(time.Now())
		return &t, nil
	}
	t, err := utils.ParseDateInLocation(s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (expected YYYY-MM-DD or 'today'): %w", s, err)
	}
	return &t, nil
}

// Check renders a completion box.
func Check(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}
