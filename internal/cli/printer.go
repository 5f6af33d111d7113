package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"github.com/runoshun/taskwatch/internal/domain"
)

// stateTimeFormat renders history timestamps in UTC.
const stateTimeFormat = "2006-01-02 15:04:05Z"

// printer writes tasks, states and repositories in the plain line format.
// Colour is applied with lipgloss and disappears when the output is not a terminal.
type printer struct {
	w      io.Writer
	indent string
	width  int

	priority [domain.PriorityLast + 1]lipgloss.Style
	index    lipgloss.Style
	done     lipgloss.Style
	state    lipgloss.Style
	muted    lipgloss.Style
	header   lipgloss.Style
}

// newPrinter creates a printer for w using the [display] settings.
func newPrinter(w io.Writer, display domain.DisplayConfig) *printer {
	r := lipgloss.NewRenderer(w)
	switch display.Color {
	case domain.ColorNever:
		r.SetColorProfile(termenv.Ascii)
	case domain.ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
	}

	indent := display.Indent
	if indent == "" {
		indent = domain.DefaultIndent
	}

	p := &printer{
		w:      w,
		indent: indent,
		width:  display.Width,
		index:  r.NewStyle().Bold(true),
		done:   r.NewStyle().Foreground(lipgloss.Color("#636E72")).Strikethrough(true),
		state:  r.NewStyle().Foreground(lipgloss.Color("#A29BFE")),
		muted:  r.NewStyle().Foreground(lipgloss.Color("#636E72")),
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#6C5CE7")),
	}
	colors := []lipgloss.Color{"#D63031", "#FDCB6E", "#DFE6E9", "#74B9FF", "#636E72"}
	for i, c := range colors {
		p.priority[i] = r.NewStyle().Foreground(c)
	}
	return p
}

// Header prints the repository header of a task listing.
func (p *printer) Header(repo domain.Repository) {
	p.line(p.header.Render(fmt.Sprintf("'%s' repository", repo.Name)))
}

// Tree prints tasks depth first. Each task is followed by its current state, if any.
func (p *printer) Tree(tasks []domain.Task) {
	for _, l := range domain.Flatten(tasks) {
		prefix := strings.Repeat(p.indent, l.Depth)
		p.line(prefix + p.task(l.Task, len(prefix)))
		if rec, ok := l.Task.CurrentState(); ok {
			p.line(prefix + "    " + p.stateRecord(rec))
		}
	}
}

// Task prints a single task line.
func (p *printer) Task(t domain.Task) {
	p.line(p.task(t, 0))
}

// Tags prints the tags of a task with the time each was added.
func (p *printer) Tags(t domain.Task) {
	for _, name := range t.Tags.Names() {
		p.line(fmt.Sprintf("%s - %s", formatTime(t.Tags[name]), name))
	}
}

// History prints state records oldest first.
func (p *printer) History(records []domain.StateRecord) {
	for _, rec := range records {
		p.line(p.stateRecord(rec))
	}
}

// States prints the state graph, one state per line with its transitions.
func (p *printer) States(states []domain.State) {
	for _, s := range states {
		next := "-"
		if len(s.NextStates) > 0 {
			next = strings.Join(s.NextStates, ", ")
		}
		p.line(fmt.Sprintf("%s -> %s", p.state.Render(fmt.Sprintf("%-12s", s.Name)), next))
	}
}

// Repositories prints the registry followed by the current repository.
func (p *printer) Repositories(repos []domain.Repository, current domain.Repository) {
	for _, r := range repos {
		p.line(fmt.Sprintf("%-10s - %s", r.Name, r.Path))
	}
	p.line("")
	p.line(fmt.Sprintf("Current repository: %s", p.header.Render(current.Name)))
}

// task formats <priority>{+| }index name. used is the width already taken
// on the line by indentation.
func (p *printer) task(t domain.Task, used int) string {
	mark := " "
	if t.IsDone() {
		mark = "+"
	}
	lead := fmt.Sprintf("<%s>%s%3d ", t.Priority, mark, t.Index)

	name := t.Name
	if p.width > 0 {
		room := p.width - used - runewidth.StringWidth(lead)
		if room < 1 {
			room = 1
		}
		name = runewidth.Truncate(name, room, "…")
	}

	style := p.priority[domain.ClampPriority(t.Priority)]
	if t.IsDone() {
		return p.muted.Render(lead) + p.done.Render(name)
	}
	return style.Render(fmt.Sprintf("<%s>", t.Priority)) + mark + p.index.Render(fmt.Sprintf("%3d", t.Index)) + " " + name
}

func (p *printer) stateRecord(rec domain.StateRecord) string {
	text := fmt.Sprintf("%s: %s %s", formatTime(rec.Time), p.state.Render(fmt.Sprintf("%-10s", rec.State)), rec.Note)
	return strings.TrimRight(text, " ")
}

func (p *printer) line(s string) {
	_, _ = fmt.Fprintln(p.w, s)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(stateTimeFormat)
}
