package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/runoshun/taskwatch/internal/domain"
)

// View renders the model.
func (m *Model) View() string {
	var b strings.Builder

	title := fmt.Sprintf("'%s' repository", m.repository.Name)
	if m.showAll {
		title += " (all)"
	}
	b.WriteString(m.styles.Header.Render(title))
	b.WriteString("\n")

	if len(m.lines) == 0 {
		b.WriteString(m.styles.Empty.Render("No tasks."))
		b.WriteString("\n")
	}

	indent := m.container.AppConfig.Display.Indent
	if indent == "" {
		indent = domain.DefaultIndent
	}
	for i, l := range m.lines {
		b.WriteString(m.renderLine(l, strings.Repeat(indent, l.Depth), i == m.cursor))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.ErrorMsg.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.HelpContainer.Render(m.help.View(m.keys)))

	return m.styles.App.Render(b.String())
}

// renderLine renders one task: cursor, priority, done mark, index, name and current state.
func (m *Model) renderLine(l domain.TaskLine, prefix string, selected bool) string {
	t := l.Task

	cursor := "  "
	nameStyle := m.styles.TaskNormal
	if selected {
		cursor = m.styles.Cursor.Render("> ")
		nameStyle = m.styles.TaskSelected
	}
	if t.IsDone() {
		nameStyle = m.styles.TaskDone
	}

	mark := " "
	if t.IsDone() {
		mark = "+"
	}

	lead := cursor + prefix +
		m.styles.Priority[domain.ClampPriority(t.Priority)].Render(fmt.Sprintf("<%s>", t.Priority)) +
		mark +
		m.styles.TaskIndex.Render(fmt.Sprintf("%d", t.Index)) + " "

	name := t.Name
	if m.width > 0 {
		// App padding takes 4 columns
		room := m.width - 4 - lipgloss.Width(lead)
		if rec, ok := t.CurrentState(); ok {
			room -= runewidth.StringWidth(rec.State) + 3
		}
		if room < 1 {
			room = 1
		}
		name = runewidth.Truncate(name, room, "…")
	}

	line := lead + nameStyle.Render(name)
	if rec, ok := t.CurrentState(); ok {
		line += " " + m.styles.State.Render("["+rec.State+"]")
	}
	return line
}
