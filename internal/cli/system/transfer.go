package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/phoenix-rise/internal/backup"
	"github.com/julianstephens/phoenix-rise/internal/cli"
	"github.com/julianstephens/phoenix-rise/internal/logger"
)

type ExportCmd struct {
	Format string `help:"Output format." enum:"json,text" default:"json" short:"f"`
	Output string `help:"Write to this file instead of stdout." short:"o" type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	ctx.Store.Flush(ctx.Ctx())
	out, err := backup.Export(ctx.Store.Snapshot(), c.Format, ctx.Store.Now())
	if err != nil {
		return err
	}
	if c.Output == "" {
		ctx.Println(string(out))
		return nil
	}
	if err := os.WriteFile(c.Output, out, 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	ctx.Printf("✓ Exported to %s\n", c.Output)
	return nil
}

type ImportCmd struct {
	File string `arg:"" help:"Export or snapshot JSON to import." type:"existingfile"`
	Yes  bool   `help:"Skip the confirmation prompt." short:"y"`
}

// Run replaces everything with the file's contents. The current data is
// backed up first.
func (c *ImportCmd) Run(ctx *cli.Context) error {
	raw, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.File, err)
	}
	if !c.Yes {
		ok, err := ctx.Ask("Replace all data?", fmt.Sprintf("Everything will be overwritten with %s.", c.File))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Cancelled.")
			return nil
		}
	}
	if ctx.Backups != nil {
		path, err := ctx.Backups.SafetyBackup(ctx.Store.Snapshot())
		if err != nil {
			return fmt.Errorf("failed to back up current data: %w", err)
		}
		logger.Debug("Safety backup written", "path", path)
	}
	if err := ctx.Store.Import(ctx.Ctx(), raw); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	ctx.Printf("✓ Imported %s (%d points)\n", c.File, ctx.Store.Points())
	return nil
}
