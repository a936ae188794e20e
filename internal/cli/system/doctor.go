package system

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/julianstephens/phoenix-rise/internal/cli"
	"github.com/julianstephens/phoenix-rise/internal/constants"
	"github.com/julianstephens/phoenix-rise/internal/storage"
	"github.com/julianstephens/phoenix-rise/internal/validation"
)

type DoctorCmd struct{}

// LookPath is swapped out by tests.
var LookPath = exec.LookPath

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	fail := func(name string, err error) {
		ctx.Printf("❌ %s: FAIL\n", name)
		ctx.Printf("   Error: %v\n", err)
		hasError = true
	}
	warn := func(name string, err error) {
		ctx.Printf("⚠ %s: WARNING\n", name)
		ctx.Printf("   %v\n", err)
	}
	ok := func(name string) {
		ctx.Printf("✓ %s: OK\n", name)
	}

	// Check 1: config valid
	if err := checkConfig(ctx); err != nil {
		fail("Config valid", err)
	} else {
		ok("Config valid")
	}

	// Check 2: storage reachable
	raw, err := checkStorageReachable(ctx)
	reachable := err == nil
	if err != nil {
		fail("Storage reachable", err)
	} else {
		ok("Storage reachable")
	}

	// Check 3: schema version (SQL backends only)
	if reachable {
		if err := checkSchemaVersion(ctx); err != nil {
			fail("Schema version", err)
		} else {
			ok("Schema version")
		}
	} else {
		ctx.Printf("⊘ Schema version: SKIPPED (storage not reachable)\n")
	}

	// Check 4: persisted snapshot decodes (only if storage is reachable)
	if reachable {
		if err := checkSnapshot(raw); err != nil {
			fail("Snapshot valid", err)
		} else {
			ok("Snapshot valid")
		}
	} else {
		ctx.Printf("⊘ Snapshot valid: SKIPPED (storage not reachable)\n")
	}

	// Check 5: settings mirror (warning only)
	if err := checkMirror(ctx); err != nil {
		warn("Settings mirror", err)
	} else {
		ok("Settings mirror")
	}

	// Check 6: backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		warn("Backups present", err)
	} else {
		ok("Backups present")
	}

	// Check 7: speech services (warning only)
	if err := checkSpeech(ctx); err != nil {
		warn("Speech services", err)
	} else {
		ok("Speech services")
	}

	// Check 8: clock sanity
	if err := checkClock(time.Now()); err != nil {
		fail("Clock/timezone", err)
	} else {
		ok("Clock/timezone")
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkConfig(ctx *cli.Context) error {
	if ctx.Config == nil {
		return errors.New("no configuration loaded")
	}
	return ctx.Config.Validate()
}

// checkStorageReachable returns the persisted snapshot, or "" when none has
// been written yet.
func checkStorageReachable(ctx *cli.Context) (string, error) {
	if ctx.Gateway == nil {
		return "", errors.New("storage is not open")
	}
	raw, err := ctx.Gateway.Primary().Get(ctx.Ctx(), constants.KeySnapshot)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", ctx.Gateway.Primary().Name(), err)
	}
	return raw, nil
}

type schemaValidator interface {
	ValidateSchema(ctx context.Context) error
}

// checkSchemaVersion passes for backends without a schema.
func checkSchemaVersion(ctx *cli.Context) error {
	v, ok := ctx.Gateway.Primary().(schemaValidator)
	if !ok {
		return nil
	}
	return v.ValidateSchema(ctx.Ctx())
}

func checkSnapshot(raw string) error {
	if raw == "" {
		return nil
	}
	_, err := validation.DecodeSnapshot([]byte(raw))
	return err
}

func checkMirror(ctx *cli.Context) error {
	if ctx.Gateway == nil || ctx.Gateway.Mirror() == nil {
		return errors.New("no settings mirror configured; API keys live only in primary storage")
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if ctx.Backups == nil {
		return errors.New("backups are not configured")
	}
	backups, err := ctx.Backups.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return errors.New("no backups found - consider creating one with 'phoenix backup create'")
	}
	return nil
}

func checkSpeech(ctx *cli.Context) error {
	var missing []string
	v := ctx.Store.Settings()
	if v.ElevenLabsAPIKey == "" {
		missing = append(missing, "ElevenLabs key not set (falling back to local synthesis)")
	}
	if v.AssemblyAIAPIKey == "" {
		missing = append(missing, "AssemblyAI key not set (wake word unavailable)")
	}
	if ctx.Config != nil {
		for _, argv := range [][]string{ctx.Config.Voice.RecorderCommand, ctx.Config.Voice.PlayerCommand} {
			if len(argv) == 0 {
				continue
			}
			if _, err := LookPath(argv[0]); err != nil {
				missing = append(missing, fmt.Sprintf("%s not found on PATH", argv[0]))
			}
		}
	}
	if len(missing) > 0 {
		return errors.New(strings.Join(missing, "\n   "))
	}
	return nil
}

func checkClock(now time.Time) error {
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
