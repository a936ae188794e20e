package storage

import (
	"context"
	"errors"
	"slices"

	"github.com/julianstephens/phoenix-rise/internal/logger"
)

// Gateway is the fail-soft persistence boundary the store talks to. Backend
// errors are logged and swallowed; callers only ever see a value or its
// absence.
//
// Keys listed as mirrored are written to both the primary and the mirror
// provider. On read the primary value wins and the mirror is a fallback.
type Gateway struct {
	primary  Provider
	mirror   Provider
	mirrored []string
}

// NewGateway builds a gateway. mirror may be nil.
func NewGateway(primary, mirror Provider, mirrored []string) *Gateway {
	return &Gateway{primary: primary, mirror: mirror, mirrored: mirrored}
}

func (g *Gateway) isMirrored(key string) bool {
	return g.mirror != nil && slices.Contains(g.mirrored, key)
}

// Primary exposes the primary provider for diagnostics.
func (g *Gateway) Primary() Provider { return g.primary }

// Mirror exposes the mirror provider, or nil.
func (g *Gateway) Mirror() Provider { return g.mirror }

// Init initializes both providers. A mirror that fails to initialize is
// dropped with a warning; the primary failing is fatal to the caller.
func (g *Gateway) Init(ctx context.Context) error {
	if err := g.primary.Init(ctx); err != nil {
		return err
	}
	if g.mirror != nil {
		if err := g.mirror.Init(ctx); err != nil {
			logger.Warn("Settings mirror unavailable, continuing without it", "mirror", g.mirror.Name(), "error", err)
			g.mirror = nil
		}
	}
	return nil
}

// Read returns the stored value and whether one was found.
func (g *Gateway) Read(ctx context.Context, key string) (string, bool) {
	if v, ok := g.readFrom(ctx, g.primary, key); ok {
		return v, true
	}
	if g.isMirrored(key) {
		return g.readFrom(ctx, g.mirror, key)
	}
	return "", false
}

func (g *Gateway) readFrom(ctx context.Context, p Provider, key string) (string, bool) {
	v, err := p.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Warn("Storage read failed", "backend", p.Name(), "key", key, "error", err)
		}
		return "", false
	}
	return v, true
}

// Write stores value under key, updating the mirror too for mirrored keys.
func (g *Gateway) Write(ctx context.Context, key, value string) {
	if err := g.primary.Set(ctx, key, value); err != nil {
		logger.Error("Storage write failed", "backend", g.primary.Name(), "key", key, "error", err)
	}
	if g.isMirrored(key) {
		if err := g.mirror.Set(ctx, key, value); err != nil {
			logger.Warn("Mirror write failed", "backend", g.mirror.Name(), "key", key, "error", err)
		}
	}
}

// Remove deletes key from the primary and, when mirrored, the mirror.
func (g *Gateway) Remove(ctx context.Context, key string) {
	if err := g.primary.Delete(ctx, key); err != nil {
		logger.Warn("Storage delete failed", "backend", g.primary.Name(), "key", key, "error", err)
	}
	if g.isMirrored(key) {
		if err := g.mirror.Delete(ctx, key); err != nil {
			logger.Warn("Mirror delete failed", "backend", g.mirror.Name(), "key", key, "error", err)
		}
	}
}

// RemoveAll wipes both providers.
func (g *Gateway) RemoveAll(ctx context.Context) {
	if err := g.primary.Clear(ctx); err != nil {
		logger.Error("Storage clear failed", "backend", g.primary.Name(), "error", err)
	}
	if g.mirror != nil {
		if err := g.mirror.Clear(ctx); err != nil {
			logger.Warn("Mirror clear failed", "backend", g.mirror.Name(), "error", err)
		}
	}
}

// Close closes both providers and joins their errors.
func (g *Gateway) Close() error {
	var errs []error
	if err := g.primary.Close(); err != nil {
		errs = append(errs, err)
	}
	if g.mirror != nil {
		if err := g.mirror.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
