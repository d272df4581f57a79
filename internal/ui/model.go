// Package ui renders short-lived notices such as "Resumed from 4:05" next to the main view.
package ui

import (
	"strings"
	"time"

	"github.com/coursecast/coursecast/style"
	tea "github.com/charmbracelet/bubbletea"
)

// NoticeLifetime is how long a notice stays visible.
const NoticeLifetime = 3 * time.Second

// Model holds the notice currently shown, if any.
type Model struct {
	notice string
	// seq identifies the notice a clear message belongs to
	seq int
}

// NoticeMsg asks the model to show Text.
type NoticeMsg struct {
	Text string
}

// clearNoticeMsg hides the notice with the same sequence number.
type clearNoticeMsg struct {
	seq int
}

// Notify returns a tea.Cmd that shows text as a notice.
func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return NoticeMsg{Text: text}
	}
}

// Notice returns the visible notice, or an empty string.
func (m *Model) Notice() string {
	return m.notice
}

// Update shows and expires notices. A newer notice is not hidden by the
// timer of an older one.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NoticeMsg:
		m.seq++
		m.notice = msg.Text

		seq := m.seq
		return tea.Tick(NoticeLifetime, func(time.Time) tea.Msg {
			return clearNoticeMsg{seq: seq}
		})
	case clearNoticeMsg:
		if msg.seq == m.seq {
			m.notice = ""
		}
	}
	return nil
}

// View appends the notice to the last line of mainContent.
func (m *Model) View(mainContent string) string {
	if m.notice == "" {
		return mainContent
	}

	lines := strings.Split(mainContent, "\n")
	lines[len(lines)-1] += "  " + style.Faint(m.notice)
	return strings.Join(lines, "\n")
}
