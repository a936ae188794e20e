package wellbeing

import (
	"fmt"

	"github.com/julianstephens/phoenix-rise/internal/cli"
	"github.com/julianstephens/phoenix-rise/internal/logger"
	"github.com/julianstephens/phoenix-rise/internal/models"
)

type ChatCmd struct {
	Say   ChatSayCmd   `cmd:"" help:"Add a message to the conversation."`
	List  ChatListCmd  `cmd:"" help:"Show the conversation." default:"1"`
	Clear ChatClearCmd `cmd:"" help:"Delete the whole conversation."`
}

type ChatSayCmd struct {
	Text    string `arg:"" help:"Message text."`
	Phoenix bool   `help:"Record the message as Phoenix speaking rather than you."`
	Emotion string `help:"Detected emotion to attach."`
	Emoji   string `help:"Emoji to attach."`
}

// Run appends the message. Phoenix's messages are read aloud when
// auto-read is on and a speaker is available; speech failures are logged.
func (c *ChatSayCmd) Run(ctx *cli.Context) error {
	msg, err := ctx.Store.AddChatMessage(models.ChatMessage{
		Text:    c.Text,
		IsUser:  !c.Phoenix,
		Emotion: c.Emotion,
		Emoji:   c.Emoji,
	})
	if err != nil {
		return fmt.Errorf("failed to add message: %w", err)
	}
	ctx.Printf("✓ Message saved (ID: %s)\n", msg.ID)

	if c.Phoenix && ctx.Speaker != nil && ctx.Store.Settings().AutoReadResponsesEnabled {
		if err := ctx.Speaker.Speak(ctx.Ctx(), msg.Text); err != nil {
			logger.Warn("Could not read response aloud", "error", err)
		}
	}
	return nil
}

type ChatListCmd struct{}

func (c *ChatListCmd) Run(ctx *cli.Context) error {
	msgs := ctx.Store.Snapshot().ChatMessages
	if len(msgs) == 0 {
		ctx.Println("No messages.")
		return nil
	}
	st := ctx.Styles()
	for _, m := range msgs {
		who := st.Accent.Render("Phoenix")
		if m.IsUser {
			who = st.Value.Render("You")
		}
		line := fmt.Sprintf("%s %s: %s", st.Muted.Render(m.Timestamp.Format("15:04")), who, m.Text)
		if m.Emoji != "" {
			line += " " + m.Emoji
		}
		ctx.Println(line)
	}
	return nil
}

type ChatClearCmd struct {
	Yes bool `help:"Skip the confirmation prompt." short:"y"`
}

func (c *ChatClearCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		ok, err := ctx.Ask("Clear chat history?", "Every message will be deleted.")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Cancelled.")
			return nil
		}
	}
	if err := ctx.Store.ClearChatHistory(); err != nil {
		return fmt.Errorf("failed to clear chat: %w", err)
	}
	ctx.Println("✓ Chat history cleared.")
	return nil
}
