// Package config loads phoenix's YAML configuration file and applies
// .env and PHOENIX_* environment overrides on top of it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/phoenix-rise/internal/constants"
	"github.com/julianstephens/phoenix-rise/internal/logger"
	"github.com/julianstephens/phoenix-rise/internal/utils"
)

// Config holds all phoenix configuration.
type Config struct {
	Storage     StorageConfig     `yaml:"storage"`
	Persistence PersistenceConfig `yaml:"persistence"`
	Meals       MealsConfig       `yaml:"meals"`
	Voice       VoiceConfig       `yaml:"voice"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// StorageConfig selects the primary key-value backend and the settings mirror.
type StorageConfig struct {
	Backend    string `yaml:"backend"` // sqlite, postgres, redis, json, memory
	Path       string `yaml:"path"`
	DSN        string `yaml:"dsn"`
	RedisAddr  string `yaml:"redis_addr"`
	RedisDB    int    `yaml:"redis_db"`
	Mirror     string `yaml:"mirror"` // keyring, json, none
	MirrorPath string `yaml:"mirror_path"`
}

type PersistenceConfig struct {
	Debounce string `yaml:"debounce"`
}

type MealsConfig struct {
	Retention string `yaml:"retention"` // archive, prune
}

// VoiceConfig configures the wake-word loop and the speech clients.
//
// Command templates are argv lists. {out}, {in}, {seconds}, {wpm} and {text}
// are substituted at run time.
type VoiceConfig struct {
	Backend        string `yaml:"backend"` // stream, poll
	TriggerPhrase  string `yaml:"trigger_phrase"`
	RecordDuration string `yaml:"record_duration"`
	CycleDelay     string `yaml:"cycle_delay"`
	RetryDelay     string `yaml:"retry_delay"`
	PollTimeout    string `yaml:"poll_timeout"`
	PollInterval   string `yaml:"poll_interval"`
	SampleRate     int    `yaml:"sample_rate"`

	RecorderCommand []string `yaml:"recorder_command"`
	StreamCommand   []string `yaml:"stream_command"`
	PlayerCommand   []string `yaml:"player_command"`
	SynthCommand    []string `yaml:"synth_command"`

	ElevenLabsVoiceID   string `yaml:"elevenlabs_voice_id"`
	ElevenLabsBaseURL   string `yaml:"elevenlabs_base_url"`
	AssemblyAIBaseURL   string `yaml:"assemblyai_base_url"`
	AssemblyAIStreamURL string `yaml:"assemblyai_stream_url"`
}

// LoggingConfig controls the rotating log file under <config dir>/logs.
type LoggingConfig struct {
	Debug      bool   `yaml:"debug"`
	Level      string `yaml:"level"` // debug, info, warn, error
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Backend and enum values accepted by Validate.
var (
	ValidBackends   = []string{"sqlite", "postgres", "redis", "json", "memory"}
	ValidMirrors    = []string{"keyring", "json", "none"}
	ValidRetention  = []string{constants.MealRetentionArchive, constants.MealRetentionPrune}
	ValidVoiceModes = []string{"stream", "poll"}
	ValidLogLevels  = []string{"debug", "info", "warn", "error"}
)

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:    "sqlite",
			Path:       constants.DefaultDBPath,
			RedisAddr:  "localhost:6379",
			Mirror:     "keyring",
			MirrorPath: filepath.Join(constants.DefaultConfigDir, "settings.json"),
		},
		Persistence: PersistenceConfig{
			Debounce: constants.DefaultDebounce.String(),
		},
		Meals: MealsConfig{
			Retention: constants.MealRetentionArchive,
		},
		Voice: VoiceConfig{
			Backend:        "stream",
			TriggerPhrase:  constants.DefaultTriggerPhrase,
			RecordDuration: "15s",
			CycleDelay:     "1s",
			RetryDelay:     "5s",
			PollTimeout:    "30s",
			PollInterval:   "1s",
			SampleRate:     16000,

			RecorderCommand: []string{"rec", "-q", "-r", "16000", "-c", "1", "{out}", "trim", "0", "{seconds}"},
			StreamCommand:   []string{"rec", "-q", "-t", "raw", "-r", "16000", "-e", "signed", "-b", "16", "-c", "1", "-"},
			PlayerCommand:   []string{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", "{in}"},
			SynthCommand:    []string{"espeak", "-s", "{wpm}", "{text}"},

			ElevenLabsVoiceID:   "21m00Tcm4TlvDq8ikWAM",
			ElevenLabsBaseURL:   "https://api.elevenlabs.io",
			AssemblyAIBaseURL:   "https://api.assemblyai.com",
			AssemblyAIStreamURL: "wss://api.assemblyai.com/v2/realtime/ws",
		},
		Logging: LoggingConfig{
			Level:      "warn",
			File:       logger.DefaultFile,
			MaxSizeMB:  logger.DefaultMaxSizeMB,
			MaxBackups: logger.DefaultMaxBackups,
			MaxAgeDays: logger.DefaultMaxAgeDays,
			Compress:   true,
		},
	}
}

// DefaultPath is ~/.config/phoenix/config.yaml, expanded.
func DefaultPath() string {
	return utils.ExpandPath(filepath.Join(constants.DefaultConfigDir, constants.DefaultConfigFile))
}

// Load reads path (a missing file means defaults), then applies envFile (if
// present) and PHOENIX_* environment overrides.
func Load(path, envFile string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	cfg.Storage.Path = utils.ExpandPath(cfg.Storage.Path)
	cfg.Storage.MirrorPath = utils.ExpandPath(cfg.Storage.MirrorPath)
	return cfg, cfg.Validate()
}

// Save writes the configuration as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

type envOverrides struct {
	Backend       string `env:"PHOENIX_STORAGE_BACKEND"`
	Path          string `env:"PHOENIX_STORAGE_PATH"`
	DSN           string `env:"PHOENIX_STORAGE_DSN"`
	RedisAddr     string `env:"PHOENIX_REDIS_ADDR"`
	Mirror        string `env:"PHOENIX_STORAGE_MIRROR"`
	Debounce      string `env:"PHOENIX_DEBOUNCE"`
	MealRetention string `env:"PHOENIX_MEAL_RETENTION"`
	VoiceBackend  string `env:"PHOENIX_VOICE_BACKEND"`
	TriggerPhrase string `env:"PHOENIX_TRIGGER_PHRASE"`
	Debug         string `env:"PHOENIX_DEBUG"`
	LogLevel      string `env:"PHOENIX_LOG_LEVEL"`
}

func (c *Config) applyEnvOverrides() error {
	var env envOverrides
	if err := envdecode.Decode(&env); err != nil {
		if errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
			return nil
		}
		return fmt.Errorf("failed to read environment: %w", err)
	}

	override(&c.Storage.Backend, env.Backend)
	override(&c.Storage.Path, env.Path)
	override(&c.Storage.DSN, env.DSN)
	override(&c.Storage.RedisAddr, env.RedisAddr)
	override(&c.Storage.Mirror, env.Mirror)
	override(&c.Persistence.Debounce, env.Debounce)
	override(&c.Meals.Retention, env.MealRetention)
	override(&c.Voice.Backend, env.VoiceBackend)
	override(&c.Voice.TriggerPhrase, env.TriggerPhrase)
	override(&c.Logging.Level, env.LogLevel)
	if env.Debug != "" {
		debug, err := strconv.ParseBool(env.Debug)
		if err != nil {
			return fmt.Errorf("invalid PHOENIX_DEBUG %q: %w", env.Debug, err)
		}
		c.Logging.Debug = debug
	}
	return nil
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Validate rejects unknown enum values and unparsable durations.
func (c *Config) Validate() error {
	if !slices.Contains(ValidBackends, c.Storage.Backend) {
		return fmt.Errorf("invalid storage backend: %s (valid: %v)", c.Storage.Backend, ValidBackends)
	}
	if c.Storage.Backend == "postgres" && c.Storage.DSN == "" {
		return errors.New("postgres backend requires storage.dsn")
	}
	if !slices.Contains(ValidMirrors, c.Storage.Mirror) {
		return fmt.Errorf("invalid storage mirror: %s (valid: %v)", c.Storage.Mirror, ValidMirrors)
	}
	if !slices.Contains(ValidRetention, c.Meals.Retention) {
		return fmt.Errorf("invalid meal retention: %s (valid: %v)", c.Meals.Retention, ValidRetention)
	}
	if !slices.Contains(ValidVoiceModes, c.Voice.Backend) {
		return fmt.Errorf("invalid voice backend: %s (valid: %v)", c.Voice.Backend, ValidVoiceModes)
	}
	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels, c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 || c.Logging.MaxAgeDays < 0 {
		return errors.New("logging sizes and ages cannot be negative")
	}

	durations := map[string]string{
		"persistence.debounce":  c.Persistence.Debounce,
		"voice.record_duration": c.Voice.RecordDuration,
		"voice.cycle_delay":     c.Voice.CycleDelay,
		"voice.retry_delay":     c.Voice.RetryDelay,
		"voice.poll_timeout":    c.Voice.PollTimeout,
		"voice.poll_interval":   c.Voice.PollInterval,
	}
	for name, raw := range durations {
		if _, err := time.ParseDuration(raw); err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, raw, err)
		}
	}
	return nil
}

func duration(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func (c *Config) DebounceInterval() time.Duration {
	return duration(c.Persistence.Debounce, constants.DefaultDebounce)
}

func (c *Config) RecordDuration() time.Duration {
	return duration(c.Voice.RecordDuration, 15*time.Second)
}

func (c *Config) CycleDelay() time.Duration {
	return duration(c.Voice.CycleDelay, time.Second)
}

func (c *Config) RetryDelay() time.Duration {
	return duration(c.Voice.RetryDelay, 5*time.Second)
}

func (c *Config) PollTimeout() time.Duration {
	return duration(c.Voice.PollTimeout, 30*time.Second)
}

func (c *Config) PollInterval() time.Duration {
	return duration(c.Voice.PollInterval, time.Second)
}

// ConfigDir is the directory holding logs and backups: the directory of the
// sqlite/json store when one is configured, the default directory otherwise.
func (c *Config) ConfigDir() string {
	if c.Storage.Backend == "sqlite" || c.Storage.Backend == "json" {
		return filepath.Dir(c.Storage.Path)
	}
	return utils.ExpandPath(constants.DefaultConfigDir)
}
