// Package tui is an interactive terminal chat with the habit bot.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitbreaker/internal/bot"
	"github.com/julianstephens/habitbreaker/internal/constants"
)

// Handler answers chat messages; *bot.Dispatcher satisfies it.
type Handler interface {
	Handle(ctx context.Context, msg bot.Message) bot.Reply
}

type speaker int

const (
	speakerUser speaker = iota
	speakerBot
)

type entry struct {
	from     speaker
	text     string
	markdown bool
}

// replyMsg carries the dispatcher's answer back into the update loop.
type replyMsg struct {
	reply bot.Reply
}

type Model struct {
	ctx     context.Context
	handler Handler
	user    bot.Message

	input      textinput.Model
	viewport   viewport.Model
	keys       KeyMap
	help       help.Model
	transcript []entry
	keyboard   []string
	selected   int
	waiting    bool
	quitting   bool
	width      int
	height     int
}

// NewModel starts a chat as user; only the identity fields of user are used.
func NewModel(ctx context.Context, handler Handler, user bot.Message) Model {
	ti := textinput.New()
	ti.Placeholder = "Type a message or a command like /help"
	ti.Prompt = "> "
	ti.CharLimit = constants.MaxHabitNameLength + 20
	ti.Focus()

	return Model{
		ctx:      ctx,
		handler:  handler,
		user:     bot.Message{Identity: user.Identity, DisplayName: user.DisplayName, Handle: user.Handle},
		input:    ti,
		viewport: viewport.New(0, 0),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		keyboard: constants.MainKeyboard,
		selected: -1,
	}
}

// Init greets the bot the same way a new chat does.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.send(constants.CmdStart))
}

func (m Model) send(text string) tea.Cmd {
	msg := m.user
	msg.Text = text
	return func() tea.Msg {
		return replyMsg{reply: m.handler.Handle(m.ctx, msg)}
	}
}
