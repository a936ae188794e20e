package wellbeing

import (
	"fmt"
	"time"

	"github.com/julianstephens/phoenix-rise/internal/cli"
	"github.com/julianstephens/phoenix-rise/internal/utils"
)

type MeditateCmd struct {
	Breathe MeditateBreatheCmd `cmd:"" help:"Run a guided breathing session and log it."`
	Log     MeditateLogCmd     `cmd:"" help:"Log a session done elsewhere."`
	Done    MeditateDoneCmd    `cmd:"" help:"Mark today's meditation complete."`
	Status  MeditateStatusCmd  `cmd:"" help:"Show meditation totals and streak." default:"1"`
}

type MeditateBreatheCmd struct {
	Breaths int           `help:"Breaths to take." default:"10"`
	Inhale  time.Duration `help:"Inhale length." default:"4s"`
	Hold    time.Duration `help:"Hold length." default:"7s"`
	Exhale  time.Duration `help:"Exhale length." default:"8s"`
	Quiet   bool          `help:"Do not print each phase."`
}

// Run paces each breath. An interrupt ends the session early and logs the
// breaths completed so far.
func (c *MeditateBreatheCmd) Run(ctx *cli.Context) error {
	base := ctx.Ctx()
	start := time.Now()
	completed := 0

	phases := []struct {
		label string
		d     time.Duration
	}{
		{"Breathe in", c.Inhale},
		{"Hold", c.Hold},
		{"Breathe out", c.Exhale},
	}

breathing:
	for i := range c.Breaths {
		for _, p := range phases {
			if p.d <= 0 {
				continue
			}
			if !c.Quiet {
				ctx.Printf("%2d/%d  %s…\n", i+1, c.Breaths, p.label)
			}
			timer := time.NewTimer(p.d)
			select {
			case <-base.Done():
				timer.Stop()
				break breathing
			case <-timer.C:
			}
		}
		completed++
	}

	session, err := ctx.Store.AddMeditationSession(completed, int(time.Since(start).Seconds()))
	if err != nil {
		return fmt.Errorf("failed to log session: %w", err)
	}
	ctx.Printf("✓ %d breaths logged (ID: %s)\n", session.Breaths, session.ID)
	if completed == c.Breaths && completed > 0 {
		return completeDay(ctx)
	}
	return nil
}

type MeditateLogCmd struct {
	Breaths  int           `help:"Number of breaths." required:""`
	Duration time.Duration `help:"Session length." default:"5m"`
	Done     bool          `help:"Also mark today complete."`
}

func (c *MeditateLogCmd) Run(ctx *cli.Context) error {
	if c.Duration < 0 {
		return fmt.Errorf("duration cannot be negative")
	}
	session, err := ctx.Store.AddMeditationSession(c.Breaths, int(c.Duration.Seconds()))
	if err != nil {
		return fmt.Errorf("failed to log session: %w", err)
	}
	ctx.Printf("✓ %d breaths logged (ID: %s)\n", session.Breaths, session.ID)
	if c.Done {
		return completeDay(ctx)
	}
	return nil
}

type MeditateDoneCmd struct{}

func (c *MeditateDoneCmd) Run(ctx *cli.Context) error {
	return completeDay(ctx)
}

func completeDay(ctx *cli.Context) error {
	if err := ctx.Store.CompleteMeditationDay(); err != nil {
		return fmt.Errorf("failed to complete meditation: %w", err)
	}
	ctx.Printf("🔥 Meditation complete. Streak: %d\n", ctx.Store.Snapshot().Meditation.DaysStreak)
	return nil
}

type MeditateStatusCmd struct{}

func (c *MeditateStatusCmd) Run(ctx *cli.Context) error {
	m := ctx.Store.Snapshot().Meditation
	st := ctx.Styles()
	last := "never"
	if m.LastMeditationDate != nil {
		last = utils.FormatDate(*m.LastMeditationDate)
	}
	today := "not yet"
	if m.TodayCompleted {
		today = "done"
	}
	ctx.Println(st.Rows(
		[2]string{"Today", today},
		[2]string{"Streak", fmt.Sprintf("%d days", m.DaysStreak)},
		[2]string{"Sessions", fmt.Sprint(len(m.Sessions))},
		[2]string{"Total breaths", fmt.Sprint(m.TotalBreaths)},
		[2]string{"Last meditated", last},
	))
	return nil
}
