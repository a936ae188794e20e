package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/phoenix-rise/internal/cli"
)

type DebugCmd struct {
	DBPath       *DebugDBPathCmd       `cmd:"" name:"db-path" help:"Show storage location."`
	DumpSnapshot *DebugDumpSnapshotCmd `cmd:"" help:"Dump the wellness snapshot as JSON."`
	DumpSettings *DebugDumpSettingsCmd `cmd:"" help:"Dump voice settings as JSON (keys masked)."`
	DumpPoints   *DebugDumpPointsCmd   `cmd:"" help:"Dump the points breakdown as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	output := map[string]string{
		"backend": ctx.Config.Storage.Backend,
		"path":    storagePath(ctx.Config),
		"mirror":  ctx.Config.Storage.Mirror,
		"config":  ctx.ConfigPath,
	}
	return printJSON(ctx, output)
}

type DebugDumpSnapshotCmd struct{}

func (cmd *DebugDumpSnapshotCmd) Run(ctx *cli.Context) error {
	return printJSON(ctx, ctx.Store.Snapshot())
}

type DebugDumpSettingsCmd struct {
	Reveal bool `help:"Print API keys unmasked."`
}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	v := ctx.Store.Settings()
	if !cmd.Reveal {
		v.ElevenLabsAPIKey = mask(v.ElevenLabsAPIKey)
		v.AssemblyAIAPIKey = mask(v.AssemblyAIAPIKey)
		v.OpenWeatherAPIKey = mask(v.OpenWeatherAPIKey)
	}
	return printJSON(ctx, v)
}

type DebugDumpPointsCmd struct{}

func (cmd *DebugDumpPointsCmd) Run(ctx *cli.Context) error {
	b := ctx.Store.Breakdown()
	return printJSON(ctx, map[string]any{
		"breakdown": b,
		"total":     b.Total(),
	})
}

func mask(key string) string {
	if key == "" {
		return ""
	}
	return "[set]"
}

func printJSON(ctx *cli.Context, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}
