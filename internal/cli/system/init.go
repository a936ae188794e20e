package system

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/phoenix-rise/internal/cli"
	"github.com/julianstephens/phoenix-rise/internal/config"
)

type InitCmd struct {
	Force  bool   `help:"Overwrite an existing config file with defaults."`
	Source string `help:"Export or backup file to seed the new store from." type:"existingfile"`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	_, err := os.Stat(ctx.ConfigPath)
	switch {
	case err == nil && !c.Force:
		ctx.Printf("Config already exists at: %s (use --force to overwrite)\n", ctx.ConfigPath)
	case err == nil || errors.Is(err, os.ErrNotExist):
		cfg := ctx.Config
		if c.Force || cfg == nil {
			cfg = config.DefaultConfig()
		}
		if err := cfg.Save(ctx.ConfigPath); err != nil {
			return err
		}
		ctx.Printf("Wrote config to: %s\n", ctx.ConfigPath)
	default:
		return fmt.Errorf("failed to access config: %w", err)
	}

	ctx.Store.Flush(ctx.Ctx())
	ctx.Printf("Initialized phoenix storage (%s)", ctx.Config.Storage.Backend)
	if p := storagePath(ctx.Config); p != "" {
		ctx.Printf(" at: %s", p)
	}
	ctx.Println()

	if c.Source != "" {
		ctx.Printf("Importing data from: %s\n", c.Source)
		raw, err := os.ReadFile(c.Source)
		if err != nil {
			return fmt.Errorf("failed to read source: %w", err)
		}
		if err := ctx.Store.Import(ctx.Ctx(), raw); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		ctx.Println("Import completed successfully!")
	}
	return nil
}

func storagePath(cfg *config.Config) string {
	switch cfg.Storage.Backend {
	case "sqlite", "json":
		return cfg.Storage.Path
	case "redis":
		return cfg.Storage.RedisAddr
	}
	return ""
}
