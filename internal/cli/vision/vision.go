package vision

import (
	"fmt"

	"github.com/julianstephens/phoenix-rise/internal/cli"
	"github.com/julianstephens/phoenix-rise/internal/models"
	"github.com/julianstephens/phoenix-rise/internal/store"
	"github.com/julianstephens/phoenix-rise/internal/utils"
)

type VisionCmd struct {
	Board   VisionBoardCmd   `cmd:"" help:"Manage vision boards."`
	Element VisionElementCmd `cmd:"" help:"Manage elements on a board."`
	Show    VisionShowCmd    `cmd:"" help:"Show boards and their elements." default:"1"`
}

type VisionBoardCmd struct {
	Add    VisionBoardAddCmd    `cmd:"" help:"Create a board."`
	Delete VisionBoardDeleteCmd `cmd:"" help:"Delete a board and its elements."`
}

type VisionBoardAddCmd struct {
	Name        string `arg:"" help:"Board name."`
	Description string `help:"What the board is about."`
	Background  string `help:"Background color." default:"#1A1A2E"`
}

func (c *VisionBoardAddCmd) Run(ctx *cli.Context) error {
	board, err := ctx.Store.AddVisionBoard(models.VisionBoard{
		Name:            c.Name,
		Description:     c.Description,
		BackgroundColor: c.Background,
	})
	if err != nil {
		return fmt.Errorf("failed to create board: %w", err)
	}
	ctx.Printf("✓ Created board: %s (ID: %s)\n", board.Name, board.ID)
	return nil
}

type VisionBoardDeleteCmd struct {
	ID string `arg:"" help:"Board ID."`
}

func (c *VisionBoardDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteVisionBoard(c.ID); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	ctx.Printf("✓ Deleted board %s\n", c.ID)
	return nil
}

type VisionElementCmd struct {
	Add     VisionElementAddCmd     `cmd:"" help:"Add an element to a board."`
	Edit    VisionElementEditCmd    `cmd:"" help:"Edit an element."`
	Achieve VisionElementAchieveCmd `cmd:"" help:"Mark an element achieved."`
	Delete  VisionElementDeleteCmd  `cmd:"" help:"Remove an element."`
}

type VisionElementAddCmd struct {
	BoardID  string  `arg:"" help:"Board ID."`
	Title    string  `arg:"" help:"Element title."`
	Type     string  `help:"Element type." enum:"text,image,goal,quote" default:"text"`
	Content  string  `help:"Body text or image URL."`
	Category string  `help:"Life area, e.g. career or health."`
	Target   string  `help:"Target date (YYYY-MM-DD)."`
	X        float64 `help:"Horizontal position."`
	Y        float64 `help:"Vertical position."`
	Width    float64 `help:"Width." default:"200"`
	Height   float64 `help:"Height." default:"120"`
	Color    string  `help:"Text color."`
}

func (c *VisionElementAddCmd) Run(ctx *cli.Context) error {
	target, err := cli.ParseDate(c.Target)
	if err != nil {
		return err
	}
	el, err := ctx.Store.AddVisionElement(c.BoardID, models.VisionElement{
		Type:       c.Type,
		Title:      c.Title,
		Content:    c.Content,
		Category:   c.Category,
		TargetDate: target,
		Position:   models.Position{X: c.X, Y: c.Y},
		Size:       models.Size{Width: c.Width, Height: c.Height},
		Style:      models.ElementStyle{Color: c.Color},
	})
	if err != nil {
		return fmt.Errorf("failed to add element: %w", err)
	}
	ctx.Printf("✓ Added %s element: %s (ID: %s)\n", el.Type, el.Title, el.ID)
	return nil
}

type VisionElementEditCmd struct {
	BoardID   string   `arg:"" help:"Board ID."`
	ElementID string   `arg:"" help:"Element ID."`
	Title     *string  `help:"New title."`
	Content   *string  `help:"New content."`
	Category  *string  `help:"New category."`
	Target    *string  `help:"New target date (YYYY-MM-DD)."`
	X         *float64 `help:"New horizontal position."`
	Y         *float64 `help:"New vertical position."`
}

func (c *VisionElementEditCmd) Run(ctx *cli.Context) error {
	patch := store.VisionElementPatch{
		Title:    c.Title,
		Content:  c.Content,
		Category: c.Category,
	}
	if c.Target != nil {
		target, err := cli.ParseDate(*c.Target)
		if err != nil {
			return err
		}
		patch.TargetDate = target
	}
	if c.X != nil || c.Y != nil {
		pos, err := currentPosition(ctx, c.BoardID, c.ElementID)
		if err != nil {
			return err
		}
		if c.X != nil {
			pos.X = *c.X
		}
		if c.Y != nil {
			pos.Y = *c.Y
		}
		patch.Position = &pos
	}
	if err := ctx.Store.UpdateVisionElement(c.BoardID, c.ElementID, patch); err != nil {
		return fmt.Errorf("failed to update element: %w", err)
	}
	ctx.Printf("✓ Updated element %s\n", c.ElementID)
	return nil
}

func currentPosition(ctx *cli.Context, boardID, elementID string) (models.Position, error) {
	for _, b := range ctx.Store.Snapshot().VisionBoards {
		if b.ID != boardID {
			continue
		}
		for _, el := range b.Elements {
			if el.ID == elementID {
				return el.Position, nil
			}
		}
	}
	return models.Position{}, fmt.Errorf("vision element %q: %w", elementID, store.ErrNotFound)
}

type VisionElementAchieveCmd struct {
	BoardID   string `arg:"" help:"Board ID."`
	ElementID string `arg:"" help:"Element ID."`
}

func (c *VisionElementAchieveCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.MarkElementAchieved(c.BoardID, c.ElementID); err != nil {
		return fmt.Errorf("failed to mark element achieved: %w", err)
	}
	ctx.Println("🔥 Vision achieved!")
	return nil
}

type VisionElementDeleteCmd struct {
	BoardID   string `arg:"" help:"Board ID."`
	ElementID string `arg:"" help:"Element ID."`
}

func (c *VisionElementDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteVisionElement(c.BoardID, c.ElementID); err != nil {
		return fmt.Errorf("failed to delete element: %w", err)
	}
	ctx.Printf("✓ Deleted element %s\n", c.ElementID)
	return nil
}

type VisionShowCmd struct{}

func (c *VisionShowCmd) Run(ctx *cli.Context) error {
	boards := ctx.Store.Snapshot().VisionBoards
	if len(boards) == 0 {
		ctx.Println("No vision boards.")
		return nil
	}
	st := ctx.Styles()
	for _, b := range boards {
		ctx.Printf("%s %s  %d/%d achieved\n", st.Title.Render(b.Name), st.Muted.Render(b.ID), b.AchievedCount(), len(b.Elements))
		if b.Description != "" {
			ctx.Printf("  %s\n", b.Description)
		}
		for _, el := range b.Elements {
			line := fmt.Sprintf("  %s %-5s %s", cli.Check(el.Achieved), el.Type, el.Title)
			if el.Category != "" {
				line += " (" + el.Category + ")"
			}
			if el.Achieved && el.AchievedDate != nil {
				line += " achieved " + utils.FormatDate(*el.AchievedDate)
			} else if el.TargetDate != nil {
				line += " by " + utils.FormatDate(*el.TargetDate)
			}
			ctx.Printf("%s %s\n", line, st.Muted.Render(el.ID))
		}
	}
	return nil
}
