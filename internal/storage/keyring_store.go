package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/zalando/go-keyring"
)

// ErrKeyringUnavailable is returned when the OS keyring cannot be reached.
var ErrKeyringUnavailable = errors.New("OS keyring is not available")

// KeyringProvider stores each key as a secret in the OS keyring under one
// service name. The keyring cannot enumerate entries, so Clear only removes
// the keys the provider was told about. Calls are serialized because not
// every keyring backend tolerates concurrent access.
type KeyringProvider struct {
	service string
	known   []string
	mu      sync.Mutex
}

func NewKeyringProvider(service string, known []string) *KeyringProvider {
	return &KeyringProvider{service: service, known: known}
}

func (k *KeyringProvider) Name() string { return "keyring" }
func (k *KeyringProvider) Close() error { return nil }

// Init probes the keyring. A missing probe entry means the keyring works.
func (k *KeyringProvider) Init(context.Context) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	_, err := keyring.Get(k.service, "availability-probe")
	if err == nil || errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
}

func (k *KeyringProvider) Get(_ context.Context, key string) (string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	v, err := keyring.Get(k.service, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return v, nil
}

func (k *KeyringProvider) Set(_ context.Context, key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if err := keyring.Set(k.service, key, value); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", key, err)
	}
	return nil
}

func (k *KeyringProvider) Delete(_ context.Context, key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	err := keyring.Delete(k.service, key)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete %s from keyring: %w", key, err)
	}
	return nil
}

func (k *KeyringProvider) Clear(ctx context.Context) error {
	var errs []error
	for _, key := range k.known {
		if err := k.Delete(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
