package system

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/phoenix-rise/internal/cli"
	"github.com/julianstephens/phoenix-rise/internal/models"
	"github.com/julianstephens/phoenix-rise/internal/utils"
)

type StatusCmd struct {
	Breakdown bool `help:"Itemize how the points were earned." short:"b"`
}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	s := ctx.Store
	data := s.Snapshot()
	now := s.Now()
	st := ctx.Styles()

	lines := []string{
		st.Title.Render(greeting(now.Hour(), data.UserProfile)),
		st.Row("Phoenix points", data.PhoenixPoints),
	}

	meals := s.TodayMeals()
	eaten := 0
	for _, m := range meals {
		if m.Completed {
			eaten++
		}
	}
	taken := 0
	for _, sup := range data.Supplements {
		if sup.TakenToday {
			taken++
		}
	}
	journaled := 0
	for _, e := range data.JournalEntries {
		if utils.IsToday(e.Date, now) {
			journaled++
		}
	}
	lines = append(lines,
		st.Row("Meals today", fmt.Sprintf("%d/%d", eaten, len(meals))),
		st.Row("Supplements taken", fmt.Sprintf("%d/%d", taken, len(data.Supplements))),
		st.Row("Journal entries today", journaled),
		st.Row("Meditation", cli.Check(data.Meditation.TodayCompleted)),
	)
	if best := longestStreak(data.Addictions, now); best != nil {
		lines = append(lines, st.Row("Longest streak", fmt.Sprintf("%s, %d days", best.Name, best.StreakDays(now))))
	}

	if c.Breakdown {
		b := s.Breakdown()
		lines = append(lines, "", st.Header.Render("Points"))
		for _, term := range []struct {
			label  string
			points int
		}{
			{"Meals", b.Meals},
			{"Addiction streaks", b.Addictions},
			{"Supplements", b.Supplements},
			{"Goals", b.Goals},
			{"Journal", b.Journal},
			{"Routines", b.Routines},
			{"Visualizations", b.Visualizations},
			{"Vision achieved", b.Vision},
			{"Visualization streak", b.VisualizationStreak},
			{"Meditation sessions", b.MeditationSessions},
			{"Meditation streak", b.MeditationStreak},
			{"Meditation today", b.MeditationToday},
		} {
			if term.points != 0 {
				lines = append(lines, st.Row("  "+term.label, term.points))
			}
		}
		lines = append(lines, st.Row("  Total", b.Total()))
	}

	ctx.Println(st.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
	return nil
}

func greeting(hour int, p *models.UserProfile) string {
	var g string
	switch {
	case hour < 12:
		g = "Good morning"
	case hour < 18:
		g = "Good afternoon"
	default:
		g = "Good evening"
	}
	if p != nil && strings.TrimSpace(p.Name) != "" {
		g += ", " + p.Name
	}
	return g + "!"
}

func longestStreak(items []models.Addiction, now time.Time) *models.Addiction {
	var best *models.Addiction
	for i := range items {
		if best == nil || items[i].StreakDays(now) > best.StreakDays(now) {
			best = &items[i]
		}
	}
	return best
}
