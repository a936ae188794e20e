package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/phoenix-rise/internal/backup"
	"github.com/julianstephens/phoenix-rise/internal/cli"
	"github.com/julianstephens/phoenix-rise/internal/cli/audio"
	"github.com/julianstephens/phoenix-rise/internal/cli/backups"
	"github.com/julianstephens/phoenix-rise/internal/cli/goals"
	"github.com/julianstephens/phoenix-rise/internal/cli/nutrition"
	"github.com/julianstephens/phoenix-rise/internal/cli/routines"
	"github.com/julianstephens/phoenix-rise/internal/cli/settings"
	"github.com/julianstephens/phoenix-rise/internal/cli/system"
	"github.com/julianstephens/phoenix-rise/internal/cli/vision"
	"github.com/julianstephens/phoenix-rise/internal/cli/wellbeing"
	"github.com/julianstephens/phoenix-rise/internal/config"
	"github.com/julianstephens/phoenix-rise/internal/constants"
	"github.com/julianstephens/phoenix-rise/internal/errors"
	"github.com/julianstephens/phoenix-rise/internal/logger"
	"github.com/julianstephens/phoenix-rise/internal/models"
	"github.com/julianstephens/phoenix-rise/internal/speech"
	"github.com/julianstephens/phoenix-rise/internal/storage"
	"github.com/julianstephens/phoenix-rise/internal/store"
	"github.com/julianstephens/phoenix-rise/internal/voice"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"${config_path}"`
	Verbose bool   `help:"Log debug output to stderr." short:"v"`

	Init   system.InitCmd    `cmd:"" help:"Write a default config and initialize storage."`
	Status system.StatusCmd  `cmd:"" help:"Show today's summary and Phoenix points." default:"1"`
	Doctor system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Debug  system.DebugCmd   `cmd:"" help:"Debug commands for troubleshooting."`
	Export system.ExportCmd  `cmd:"" help:"Export all data."`
	Import system.ImportCmd  `cmd:"" help:"Replace all data with an export."`
	Reset  system.ResetCmd   `cmd:"" help:"Erase all data and settings."`
	Backup backups.BackupCmd `cmd:"" help:"Manage data backups."`

	Meal       nutrition.MealCmd       `cmd:"" help:"Log meals and plan menus."`
	Supplement nutrition.SupplementCmd `cmd:"" help:"Track daily supplements."`
	Addiction  nutrition.AddictionCmd  `cmd:"" help:"Track recovery streaks."`

	Goal    goals.GoalCmd    `cmd:"" help:"Manage goals and milestones."`
	Journal goals.JournalCmd `cmd:"" help:"Write and read journal entries."`

	Routine routines.RoutineCmd `cmd:"" help:"Manage habit-stacking routines."`

	Vision      vision.VisionCmd      `cmd:"" help:"Manage vision boards."`
	Affirmation vision.AffirmationCmd `cmd:"" help:"Manage affirmations."`
	Visualize   vision.VisualizeCmd   `cmd:"" help:"Log visualization sessions."`
	DreamLife   vision.DreamLifeCmd   `cmd:"" name:"dream-life" help:"Write your dream-life script."`

	Meditate wellbeing.MeditateCmd `cmd:"" help:"Guided breathing and meditation tracking."`
	Chat     wellbeing.ChatCmd     `cmd:"" help:"Talk with Phoenix."`
	Profile  wellbeing.ProfileCmd  `cmd:"" help:"Show or edit your profile."`
	Theme    wellbeing.ThemeCmd    `cmd:"" help:"Customize colors."`

	Settings settings.SettingsCmd `cmd:"" help:"Manage API keys and voice settings."`
	Voice    audio.VoiceCmd       `cmd:"" help:"Wake word and speech."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Phoenix Rise: nutrition, recovery, goals and mindset tracking"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": config.DefaultPath(),
		},
	)

	cfg, err := config.Load(CLI.Config, filepath.Join(filepath.Dir(CLI.Config), ".env"))
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.Verbose {
		cfg.Logging.Debug = true
	}
	if err := logger.Init(logger.Config{
		Debug:      cfg.Logging.Debug,
		Level:      cfg.Logging.Level,
		ConfigDir:  cfg.ConfigDir(),
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
	}

	base, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(base, kctx, cfg)
	stop()
	os.Exit(code)
}

// run owns every deferred close so main can exit with a status afterwards.
func run(ctx context.Context, kctx *kong.Context, cfg *config.Config) int {
	gw, err := storage.Open(cfg.Storage)
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Format(err))
		return 1
	}
	if err := gw.Init(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errors.Format(err))
		return 1
	}

	// The store is built after the speech clients, which read keys through it.
	var s *store.Store
	settingsKey := func(pick func(models.VoiceSettings) string) func() string {
		return func() string { return pick(s.Settings()) }
	}
	elevenLabsKey := settingsKey(func(v models.VoiceSettings) string { return v.ElevenLabsAPIKey })
	assemblyAIKey := settingsKey(func(v models.VoiceSettings) string { return v.AssemblyAIAPIKey })

	speaker := &speech.Speaker{
		TTS: &speech.ElevenLabs{
			BaseURL: cfg.Voice.ElevenLabsBaseURL,
			VoiceID: cfg.Voice.ElevenLabsVoiceID,
			Key:     elevenLabsKey,
		},
		PlayerCommand: cfg.Voice.PlayerCommand,
		SynthCommand:  cfg.Voice.SynthCommand,
		Speed:         func() float64 { return s.Settings().TTSSpeed },
	}

	opts := store.Options{
		Gateway:       gw,
		Debounce:      cfg.DebounceInterval(),
		MealRetention: cfg.Meals.Retention,
	}

	// Only the long-running listen command owns the microphone.
	var (
		listener *voice.Listener
		wake     chan struct{}
	)
	if kctx.Command() == "voice listen" {
		listener = voice.NewListener(voice.ListenerOptions{
			Recognizer:    newRecognizer(cfg, assemblyAIKey),
			TriggerPhrase: cfg.Voice.TriggerPhrase,
			CycleDelay:    cfg.CycleDelay(),
			RetryDelay:    cfg.RetryDelay(),
		})
		wake = make(chan struct{}, 1)
		opts.Listener = listener
		opts.OnWakeWord = func() {
			select {
			case wake <- struct{}{}:
			default:
			}
		}
	}

	s = store.New(opts)
	if err := s.Load(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errors.Format(err))
		_ = gw.Close()
		return 1
	}
	defer func() {
		if err := s.Close(context.Background()); err != nil {
			logger.Warn("Failed to close storage", "error", err)
		}
	}()

	appCtx := &cli.Context{
		Config:     cfg,
		ConfigPath: CLI.Config,
		Gateway:    gw,
		Store:      s,
		Backups:    backup.NewManager(cfg.ConfigDir()),
		Listener:   listener,
		Speaker:    speaker,
		Base:       ctx,
	}
	if wake != nil {
		appCtx.Wake = wake
	}

	if err := kctx.Run(appCtx); err != nil {
		if stderrors.Is(err, store.ErrInvalidInput) || stderrors.Is(err, store.ErrNotFound) {
			fmt.Fprintln(os.Stderr, errors.Notice(err))
		} else {
			logger.Error("Command execution failed", "error", err)
			fmt.Fprintln(os.Stderr, errors.Format(err))
		}
		return 1
	}
	return 0
}

func newRecognizer(cfg *config.Config, apiKey func() string) voice.Recognizer {
	if cfg.Voice.Backend == "poll" {
		return voice.NewPollRecognizer(
			voice.ExecRecorder{Command: cfg.Voice.RecorderCommand},
			&speech.AssemblyAI{
				BaseURL:      cfg.Voice.AssemblyAIBaseURL,
				Key:          apiKey,
				PollInterval: cfg.PollInterval(),
				PollTimeout:  cfg.PollTimeout(),
			},
			apiKey,
			cfg.RecordDuration(),
		)
	}
	return voice.NewStreamRecognizer(
		cfg.Voice.AssemblyAIStreamURL,
		apiKey,
		voice.ExecAudioSource{Command: cfg.Voice.StreamCommand, SampleRate: cfg.Voice.SampleRate},
		cfg.Voice.SampleRate,
	)
}
