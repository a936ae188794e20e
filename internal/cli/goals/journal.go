package goals

import (
	"fmt"

	"github.com/julianstephens/phoenix-rise/internal/cli"
	"github.com/julianstephens/phoenix-rise/internal/models"
	"github.com/julianstephens/phoenix-rise/internal/store"
)

type JournalCmd struct {
	Add    JournalAddCmd    `cmd:"" help:"Write a journal entry."`
	List   JournalListCmd   `cmd:"" help:"List journal entries, newest first." default:"1"`
	Show   JournalShowCmd   `cmd:"" help:"Show one entry in full."`
	Edit   JournalEditCmd   `cmd:"" help:"Edit a journal entry."`
	Delete JournalDeleteCmd `cmd:"" help:"Delete a journal entry."`
}

type JournalAddCmd struct {
	Content    string `arg:"" optional:"" help:"Free-form entry text."`
	Title      string `help:"Entry title."`
	Mood       string `help:"Mood." enum:"great,good,okay,bad,terrible" default:"okay"`
	Gratitude  string `help:"What you are grateful for."`
	Challenges string `help:"What was hard today."`
	Wins       string `help:"Today's wins."`
	Tomorrow   string `help:"Focus for tomorrow."`
}

func (c *JournalAddCmd) Run(ctx *cli.Context) error {
	entry, err := ctx.Store.AddJournalEntry(models.JournalEntry{
		Title:         c.Title,
		Mood:          models.Mood(c.Mood),
		Gratitude:     c.Gratitude,
		Challenges:    c.Challenges,
		Wins:          c.Wins,
		TomorrowFocus: c.Tomorrow,
		Content:       c.Content,
	})
	if err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}
	ctx.Printf("✓ Saved journal entry (ID: %s)\n", entry.ID)
	return nil
}

type JournalListCmd struct {
	Limit int `help:"Maximum entries to show." default:"10"`
}

func (c *JournalListCmd) Run(ctx *cli.Context) error {
	entries := ctx.Store.Snapshot().JournalEntries
	if len(entries) == 0 {
		ctx.Println("No journal entries.")
		return nil
	}
	st := ctx.Styles()
	for i, e := range entries {
		if c.Limit > 0 && i >= c.Limit {
			ctx.Printf("... and %d more\n", len(entries)-c.Limit)
			break
		}
		title := e.Title
		if title == "" {
			title = "(untitled)"
		}
		ctx.Printf("%s  %-8s %s %s\n", e.Date.Format("2006-01-02 15:04"), e.Mood, st.Accent.Render(title), st.Muted.Render(e.ID))
	}
	return nil
}

type JournalShowCmd struct {
	ID string `arg:"" help:"Entry ID."`
}

func (c *JournalShowCmd) Run(ctx *cli.Context) error {
	for _, e := range ctx.Store.Snapshot().JournalEntries {
		if e.ID != c.ID {
			continue
		}
		st := ctx.Styles()
		ctx.Println(st.Title.Render(e.Date.Format("Monday, January 2 2006")))
		ctx.Println(st.Rows(
			[2]string{"Title", e.Title},
			[2]string{"Mood", string(e.Mood)},
			[2]string{"Grateful for", e.Gratitude},
			[2]string{"Challenges", e.Challenges},
			[2]string{"Wins", e.Wins},
			[2]string{"Tomorrow", e.TomorrowFocus},
		))
		if e.Content != "" {
			ctx.Println()
			ctx.Println(e.Content)
		}
		return nil
	}
	return fmt.Errorf("journal entry %q: %w", c.ID, store.ErrNotFound)
}

type JournalEditCmd struct {
	ID         string  `arg:"" help:"Entry ID."`
	Title      *string `help:"New title."`
	Mood       *string `help:"New mood."`
	Gratitude  *string `help:"New gratitude text."`
	Challenges *string `help:"New challenges text."`
	Wins       *string `help:"New wins text."`
	Tomorrow   *string `help:"New focus for tomorrow."`
	Content    *string `help:"New entry text."`
}

func (c *JournalEditCmd) Run(ctx *cli.Context) error {
	patch := store.JournalPatch{
		Title:         c.Title,
		Gratitude:     c.Gratitude,
		Challenges:    c.Challenges,
		Wins:          c.Wins,
		TomorrowFocus: c.Tomorrow,
		Content:       c.Content,
	}
	if c.Mood != nil {
		m := models.Mood(*c.Mood)
		patch.Mood = &m
	}
	if err := ctx.Store.UpdateJournalEntry(c.ID, patch); err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	ctx.Printf("✓ Updated journal entry %s\n", c.ID)
	return nil
}

type JournalDeleteCmd struct {
	ID string `arg:"" help:"Entry ID."`
}

func (c *JournalDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteJournalEntry(c.ID); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	ctx.Printf("✓ Deleted journal entry %s\n", c.ID)
	return nil
}
