package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitbreaker/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	status := ""
	if m.waiting {
		status = statusStyle.Render(" bot is typing...")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(constants.AppName)+status,
		m.viewport.View(),
		m.viewQuickReplies(),
		m.input.View(),
		m.help.View(m.keys),
	)
}

func (m Model) viewQuickReplies() string {
	buttons := make([]string, 0, len(m.keyboard))
	for i, label := range m.keyboard {
		if i == m.selected {
			buttons = append(buttons, activeQuickReplyStyle.Render(label))
		} else {
			buttons = append(buttons, quickReplyStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}

func (m Model) renderTranscript() string {
	wrap := lipgloss.NewStyle()
	if m.width > 0 {
		wrap = wrap.Width(m.width)
	}

	var b strings.Builder
	for i, e := range m.transcript {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch e.from {
		case speakerUser:
			b.WriteString(wrap.Render(userStyle.Render("you: ") + e.text))
		case speakerBot:
			text := e.text
			if e.markdown {
				text = renderMarkdown(text)
			}
			b.WriteString(wrap.Render(botStyle.Render("bot: ") + text))
		}
	}
	return b.String()
}

// renderMarkdown turns *bold* spans into terminal bold and drops the
// backslash from escaped characters.
func renderMarkdown(s string) string {
	var out, span strings.Builder
	bold := false

	flush := func() {
		if bold {
			out.WriteString(boldStyle.Render(span.String()))
		} else {
			out.WriteString(span.String())
		}
		span.Reset()
	}

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; {
		case r == '\\' && i+1 < len(runes):
			i++
			span.WriteRune(runes[i])
		case r == '*':
			flush()
			bold = !bold
		default:
			span.WriteRune(r)
		}
	}
	flush()
	return out.String()
}
