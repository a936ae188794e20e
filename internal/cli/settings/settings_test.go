package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/phoenix-rise/internal/cli/clitest"
	"github.com/julianstephens/phoenix-rise/internal/constants"
)

func ptr[T any](v T) *T { return &v }

func TestSettingsCmd_List(t *testing.T) {
	h := clitest.New(t)

	require.NoError(t, (&SettingsCmd{List: true}).Run(h.Ctx))
	out := h.Output()
	assert.Contains(t, out, "(not set)")
	assert.Contains(t, out, "Wake Word")
	assert.Contains(t, out, "1x")
}

func TestSettingsCmd_UpdateWritesKeysImmediately(t *testing.T) {
	h := clitest.New(t)
	ctx := context.Background()

	cmd := &SettingsCmd{
		ElevenLabsKey: ptr("  sk-abcdef123456  "),
		WakeWord:      ptr(false),
		AutoRead:      ptr(true),
	}
	require.NoError(t, cmd.Run(h.Ctx))
	assert.Contains(t, h.Output(), "Settings updated successfully.")

	v := h.Store.Settings()
	assert.Equal(t, "sk-abcdef123456", v.ElevenLabsAPIKey)
	assert.False(t, v.WakeWordEnabled)
	assert.True(t, v.AutoReadResponsesEnabled)

	for _, p := range []interface {
		Get(context.Context, string) (string, error)
	}{h.Primary, h.Mirror} {
		got, err := p.Get(ctx, constants.KeyElevenLabsAPIKey)
		require.NoError(t, err)
		assert.Equal(t, "sk-abcdef123456", got)
		got, err = p.Get(ctx, constants.KeyWakeWordEnabled)
		require.NoError(t, err)
		assert.Equal(t, "false", got)
	}

	require.NoError(t, (&SettingsCmd{List: true}).Run(h.Ctx))
	out := h.Output()
	assert.Contains(t, out, "********3456")
	assert.NotContains(t, out, "sk-abcdef")
}

func TestSettingsCmd_TTSSpeedClamped(t *testing.T) {
	h := clitest.New(t)

	require.NoError(t, (&SettingsCmd{TTSSpeed: ptr(3.0)}).Run(h.Ctx))
	assert.Contains(t, h.Output(), "clamped to 2.0")
	assert.Equal(t, 2.0, h.Store.Settings().TTSSpeed)

	require.NoError(t, (&SettingsCmd{TTSSpeed: ptr(1.25)}).Run(h.Ctx))
	assert.NotContains(t, h.Output(), "clamped")
	assert.Equal(t, 1.25, h.Store.Settings().TTSSpeed)
}

func TestSettingsCmd_NoChanges(t *testing.T) {
	h := clitest.New(t)
	require.NoError(t, (&SettingsCmd{}).Run(h.Ctx))
	assert.Contains(t, h.Output(), "No changes specified")
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "(not set)", maskKey(""))
	assert.Equal(t, "****", maskKey("abcd"))
	assert.Equal(t, "********7890", maskKey("1234567890"))
}
