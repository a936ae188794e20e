package wellbeing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/phoenix-rise/internal/cli/clitest"
	"github.com/julianstephens/phoenix-rise/internal/models"
	"github.com/julianstephens/phoenix-rise/internal/speech"
	"github.com/julianstephens/phoenix-rise/internal/store"
)

func ptr[T any](v T) *T { return &v }

func TestMeditateBreathe(t *testing.T) {
	h := clitest.New(t)

	cmd := &MeditateBreatheCmd{Breaths: 2, Inhale: time.Millisecond, Hold: 0, Exhale: time.Millisecond}
	require.NoError(t, cmd.Run(h.Ctx))
	out := h.Output()
	assert.Contains(t, out, " 1/2  Breathe in")
	assert.Contains(t, out, " 2/2  Breathe out")
	assert.NotContains(t, out, "Hold")
	assert.Contains(t, out, "Streak: 1")

	m := h.Store.Snapshot().Meditation
	assert.Equal(t, 2, m.TotalBreaths)
	assert.True(t, m.TodayCompleted)
	// one session (5) + one streak day (2) + today (10)
	assert.Equal(t, 17, h.Store.Points())
}

func TestMeditateBreatheInterrupted(t *testing.T) {
	h := clitest.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	h.Ctx.Base = ctx

	require.NoError(t, (&MeditateBreatheCmd{Breaths: 5, Inhale: time.Hour, Quiet: true}).Run(h.Ctx))
	m := h.Store.Snapshot().Meditation
	require.Len(t, m.Sessions, 1)
	assert.Equal(t, 0, m.Sessions[0].Breaths)
	assert.False(t, m.TodayCompleted)
}

func TestMeditateLogAndStatus(t *testing.T) {
	h := clitest.New(t)

	require.NoError(t, (&MeditateLogCmd{Breaths: 30, Duration: 5 * time.Minute}).Run(h.Ctx))
	require.NoError(t, (&MeditateDoneCmd{}).Run(h.Ctx))
	require.NoError(t, (&MeditateDoneCmd{}).Run(h.Ctx))
	h.Output()

	require.NoError(t, (&MeditateStatusCmd{}).Run(h.Ctx))
	out := h.Output()
	assert.Contains(t, out, "done")
	assert.Contains(t, out, "1 days")
	assert.Contains(t, out, "30")
	assert.Contains(t, out, "2026-03-08")

	assert.ErrorIs(t, (&MeditateLogCmd{Breaths: -1}).Run(h.Ctx), store.ErrInvalidInput)
}

func TestProfileCommand(t *testing.T) {
	h := clitest.New(t)

	require.NoError(t, (&ProfileCmd{}).Run(h.Ctx))
	assert.Contains(t, h.Output(), "No profile yet")

	require.NoError(t, (&ProfileCmd{Name: ptr("Sam"), Age: ptr(34)}).Run(h.Ctx))
	require.NoError(t, (&ProfileCmd{Motivation: ptr("Be there for my kids")}).Run(h.Ctx))
	assert.Equal(t, &models.UserProfile{Name: "Sam", Age: 34, Motivation: "Be there for my kids"}, h.Store.Snapshot().UserProfile)
	h.Output()

	require.NoError(t, (&ProfileCmd{}).Run(h.Ctx))
	assert.Contains(t, h.Output(), "Be there for my kids")

	assert.ErrorIs(t, (&ProfileCmd{Age: ptr(200)}).Run(h.Ctx), store.ErrInvalidInput)
}

func TestThemeCommands(t *testing.T) {
	h := clitest.New(t)

	require.NoError(t, (&ThemeSetCmd{Name: ptr("Ocean"), Primary: ptr("#0077BE")}).Run(h.Ctx))
	theme := h.Store.Snapshot().Theme
	assert.Equal(t, "Ocean", theme.Name)
	assert.Equal(t, "#0077BE", theme.Primary)
	assert.Equal(t, models.DefaultTheme().Accent, theme.Accent)
	h.Output()

	require.NoError(t, (&ThemeShowCmd{}).Run(h.Ctx))
	out := h.Output()
	assert.Contains(t, out, "Ocean")
	assert.Contains(t, out, "#0077BE")

	assert.ErrorIs(t, (&ThemeSetCmd{Text: ptr(" ")}).Run(h.Ctx), store.ErrInvalidInput)

	require.NoError(t, (&ThemeResetCmd{}).Run(h.Ctx))
	assert.Equal(t, models.DefaultTheme(), h.Store.Snapshot().Theme)
}

func TestChatCommands(t *testing.T) {
	h := clitest.New(t)

	var spoken [][]string
	h.Ctx.Speaker = &speech.Speaker{
		SynthCommand: []string{"say", "{text}"},
		Run: func(_ context.Context, args []string) error {
			spoken = append(spoken, args)
			return nil
		},
	}

	require.NoError(t, (&ChatSayCmd{Text: "I slipped today"}).Run(h.Ctx))
	require.NoError(t, (&ChatSayCmd{Text: "Tomorrow is new", Phoenix: true, Emoji: "🔥"}).Run(h.Ctx))
	assert.Empty(t, spoken)

	h.Store.SetAutoReadResponsesEnabled(true)
	require.NoError(t, (&ChatSayCmd{Text: "You've got this", Phoenix: true}).Run(h.Ctx))
	require.Len(t, spoken, 1)
	assert.Equal(t, []string{"say", "You've got this"}, spoken[0])
	h.Output()

	require.NoError(t, (&ChatListCmd{}).Run(h.Ctx))
	out := h.Output()
	assert.Contains(t, out, "You: I slipped today")
	assert.Contains(t, out, "Phoenix: Tomorrow is new 🔥")

	h.Answer = false
	require.NoError(t, (&ChatClearCmd{}).Run(h.Ctx))
	assert.Contains(t, h.Output(), "Cancelled.")
	assert.Len(t, h.Store.Snapshot().ChatMessages, 3)
	assert.Equal(t, []string{"Clear chat history?"}, h.Prompts)

	h.Answer = true
	require.NoError(t, (&ChatClearCmd{}).Run(h.Ctx))
	assert.Empty(t, h.Store.Snapshot().ChatMessages)

	require.NoError(t, (&ChatSayCmd{Text: "again"}).Run(h.Ctx))
	require.NoError(t, (&ChatClearCmd{Yes: true}).Run(h.Ctx))
	assert.Len(t, h.Prompts, 2)
	assert.Empty(t, h.Store.Snapshot().ChatMessages)
}

func TestChatSpeechFailureIsNotAnError(t *testing.T) {
	h := clitest.New(t)
	h.Store.SetAutoReadResponsesEnabled(true)
	h.Ctx.Speaker = &speech.Speaker{
		SynthCommand: []string{"say", "{text}"},
		Run:          func(context.Context, []string) error { return errors.New("no audio device") },
	}
	require.NoError(t, (&ChatSayCmd{Text: "Hi", Phoenix: true}).Run(h.Ctx))
}
