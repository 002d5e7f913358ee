package system

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitbreaker/internal/bot"
	"github.com/julianstephens/habitbreaker/internal/cli"
	"github.com/julianstephens/habitbreaker/internal/tui"
)

type ChatCmd struct {
	User   int64  `help:"Chat identity to talk as." short:"u" required:""`
	Name   string `help:"Display name sent with /start."`
	Handle string `help:"Handle sent with /start."`
}

func (c *ChatCmd) Run(ctx *cli.Context) error {
	dispatcher := bot.NewDispatcher(ctx.Registry, ctx.Tracker)
	model := tui.NewModel(context.Background(), dispatcher, bot.Message{
		Identity:    c.User,
		DisplayName: c.Name,
		Handle:      c.Handle,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat session failed: %w", err)
	}
	return nil
}
