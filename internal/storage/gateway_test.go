package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenProvider struct{ MemoryProvider }

var errBroken = errors.New("disk on fire")

func (b *brokenProvider) Name() string { return "broken" }
func (b *brokenProvider) Get(context.Context, string) (string, error) {
	return "", errBroken
}
func (b *brokenProvider) Set(context.Context, string, string) error { return errBroken }
func (b *brokenProvider) Delete(context.Context, string) error      { return errBroken }
func (b *brokenProvider) Clear(context.Context) error               { return errBroken }

func TestGatewayMirroredKeyWritesBoth(t *testing.T) {
	ctx := context.Background()
	primary, mirror := NewMemoryProvider(), NewMemoryProvider()
	gw := NewGateway(primary, mirror, []string{"api_key"})

	gw.Write(ctx, "api_key", "secret")
	gw.Write(ctx, "snapshot", "{}")

	v, err := mirror.Get(ctx, "api_key")
	require.NoError(t, err)
	assert.Equal(t, "secret", v)

	_, err = mirror.Get(ctx, "snapshot")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGatewayPrimaryWinsOverMirror(t *testing.T) {
	ctx := context.Background()
	primary, mirror := NewMemoryProvider(), NewMemoryProvider()
	require.NoError(t, primary.Set(ctx, "api_key", "from-primary"))
	require.NoError(t, mirror.Set(ctx, "api_key", "from-mirror"))
	gw := NewGateway(primary, mirror, []string{"api_key"})

	v, ok := gw.Read(ctx, "api_key")
	require.True(t, ok)
	assert.Equal(t, "from-primary", v)
}

func TestGatewayFallsBackToMirror(t *testing.T) {
	ctx := context.Background()
	primary, mirror := NewMemoryProvider(), NewMemoryProvider()
	require.NoError(t, mirror.Set(ctx, "api_key", "from-mirror"))
	require.NoError(t, mirror.Set(ctx, "other", "x"))
	gw := NewGateway(primary, mirror, []string{"api_key"})

	v, ok := gw.Read(ctx, "api_key")
	require.True(t, ok)
	assert.Equal(t, "from-mirror", v)

	// only mirrored keys fall back
	_, ok = gw.Read(ctx, "other")
	assert.False(t, ok)
}

func TestGatewayFailSoft(t *testing.T) {
	ctx := context.Background()
	gw := NewGateway(&brokenProvider{}, nil, nil)

	assert.NotPanics(t, func() {
		gw.Write(ctx, "k", "v")
		gw.Remove(ctx, "k")
		gw.RemoveAll(ctx)
	})
	_, ok := gw.Read(ctx, "k")
	assert.False(t, ok)
}

func TestGatewayBrokenPrimaryStillReadsMirror(t *testing.T) {
	ctx := context.Background()
	mirror := NewMemoryProvider()
	require.NoError(t, mirror.Set(ctx, "api_key", "m"))
	gw := NewGateway(&brokenProvider{}, mirror, []string{"api_key"})

	v, ok := gw.Read(ctx, "api_key")
	require.True(t, ok)
	assert.Equal(t, "m", v)
}

func TestGatewayRemoveAndRemoveAll(t *testing.T) {
	ctx := context.Background()
	primary, mirror := NewMemoryProvider(), NewMemoryProvider()
	gw := NewGateway(primary, mirror, []string{"api_key"})

	gw.Write(ctx, "api_key", "secret")
	gw.Write(ctx, "snapshot", "{}")

	gw.Remove(ctx, "api_key")
	_, ok := gw.Read(ctx, "api_key")
	assert.False(t, ok)

	gw.RemoveAll(ctx)
	_, ok = gw.Read(ctx, "snapshot")
	assert.False(t, ok)
}

func TestGatewayInitDropsBrokenMirror(t *testing.T) {
	ctx := context.Background()
	gw := NewGateway(NewMemoryProvider(), &failingInit{}, []string{"k"})
	require.NoError(t, gw.Init(ctx))
	assert.Nil(t, gw.Mirror())

	gw.Write(ctx, "k", "v")
	v, ok := gw.Read(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "v", v)
}

type failingInit struct{ MemoryProvider }

func (f *failingInit) Init(context.Context) error { return errBroken }
