// Package storage provides the string key-value backends phoenix persists
// into and the Gateway that fronts them.
package storage

import (
	"fmt"

	"github.com/julianstephens/phoenix-rise/internal/config"
	"github.com/julianstephens/phoenix-rise/internal/constants"
)

// NewProvider builds the primary backend named by cfg.Backend.
func NewProvider(cfg config.StorageConfig) (Provider, error) {
	switch cfg.Backend {
	case "sqlite":
		return NewSQLiteStore(cfg.Path), nil
	case "postgres":
		return NewPostgresStore(cfg.DSN), nil
	case "redis":
		return NewRedisProvider(cfg.RedisAddr, cfg.RedisDB, constants.AppName+":kv"), nil
	case "json":
		return NewJSONFileProvider(cfg.Path), nil
	case "memory":
		return NewMemoryProvider(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// NewMirror builds the settings mirror named by cfg.Mirror, or nil for "none".
func NewMirror(cfg config.StorageConfig) (Provider, error) {
	switch cfg.Mirror {
	case "keyring":
		return NewKeyringProvider(constants.KeyringService, constants.MirroredKeys), nil
	case "json":
		return NewJSONFileProvider(cfg.MirrorPath), nil
	case "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown storage mirror %q", cfg.Mirror)
	}
}

// Open assembles an uninitialized Gateway from configuration.
func Open(cfg config.StorageConfig) (*Gateway, error) {
	primary, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	mirror, err := NewMirror(cfg)
	if err != nil {
		return nil, err
	}
	return NewGateway(primary, mirror, constants.MirroredKeys), nil
}
