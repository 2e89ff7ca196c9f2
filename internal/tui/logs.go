package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/defacto/internal/store"
)

// logsModel browses the four entry streams one page at a time and submits
// new entries.
type logsModel struct {
	store  *store.Store
	width  int
	height int

	logIdx   int // index into store.EntryLogs
	page     int
	numPages int
	text     []store.TextEntry
	emoji    []store.EmojiEntry
	kinds    []store.Kind // kinds of the active emoji log
	cursor   int

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formContent *string
	formKind    *string
}

func newLogsModel(s *store.Store) logsModel {
	content, kind := "", ""
	return logsModel{
		store:       s,
		page:        1,
		formContent: &content,
		formKind:    &kind,
	}
}

func (l *logsModel) setSize(w, h int) {
	l.width = w
	l.height = h
}

func (l logsModel) activeLog() store.Log {
	return store.EntryLogs[l.logIdx]
}

func (l logsModel) refresh() tea.Cmd {
	log := l.activeLog()
	page := l.page
	return func() tea.Msg {
		numPages, err := l.store.NumPages(log)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		// Clamp before hitting the store; out-of-range pages come back empty.
		if page > numPages {
			page = numPages
		}
		if page < 1 {
			page = 1
		}

		msg := logsDataMsg{log: log, page: page, numPages: numPages}
		if log.IsText() {
			if msg.text, err = l.store.TextPage(log, page); err != nil {
				return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
			}
		} else {
			if msg.emoji, err = l.store.EmojiPage(log, page); err != nil {
				return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
			}
			if msg.kinds, err = l.store.ListKinds(log); err != nil {
				return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
			}
		}
		return msg
	}
}

func (l logsModel) update(msg tea.Msg) (logsModel, tea.Cmd) {
	if l.formActive && l.form != nil {
		return l.updateForm(msg)
	}

	switch msg := msg.(type) {
	case logsDataMsg:
		if msg.log != l.activeLog() {
			return l, nil
		}
		l.page = msg.page
		l.numPages = msg.numPages
		l.text = msg.text
		l.emoji = msg.emoji
		l.kinds = msg.kinds
		if l.cursor >= l.entryCount() {
			l.cursor = max(0, l.entryCount()-1)
		}
		return l, nil

	case tea.KeyMsg:
		return l.updateKeys(msg)
	}
	return l, nil
}

func (l logsModel) entryCount() int {
	if l.activeLog().IsText() {
		return len(l.text)
	}
	return len(l.emoji)
}

func (l logsModel) updateKeys(msg tea.KeyMsg) (logsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if l.cursor > 0 {
			l.cursor--
		}
	case key.Matches(msg, keys.Down):
		if l.cursor < l.entryCount()-1 {
			l.cursor++
		}
	case key.Matches(msg, keys.Left):
		l.logIdx = (l.logIdx + len(store.EntryLogs) - 1) % len(store.EntryLogs)
		l.page = 1
		l.cursor = 0
		return l, l.refresh()
	case key.Matches(msg, keys.Right):
		l.logIdx = (l.logIdx + 1) % len(store.EntryLogs)
		l.page = 1
		l.cursor = 0
		return l, l.refresh()
	case key.Matches(msg, keys.PrevPage):
		if l.page > 1 {
			l.page--
			l.cursor = 0
			return l, l.refresh()
		}
	case key.Matches(msg, keys.NextPage):
		if l.page < l.numPages {
			l.page++
			l.cursor = 0
			return l, l.refresh()
		}
	case key.Matches(msg, keys.New):
		return l.showNewEntryForm()
	case key.Matches(msg, keys.Delete):
		if id, ok := l.selectedID(); ok {
			log := l.activeLog()
			return l, tea.Sequence(
				func() tea.Msg {
					if err := l.store.DeleteEntry(log, id); err != nil {
						return statusMsg{text: fmt.Sprintf("Delete error: %v", err), isError: true}
					}
					return statusMsg{text: "Entry deleted"}
				},
				l.refresh(),
			)
		}
	}
	return l, nil
}

func (l logsModel) selectedID() (int64, bool) {
	if l.activeLog().IsText() {
		if l.cursor < len(l.text) {
			return l.text[l.cursor].ID, true
		}
		return 0, false
	}
	if l.cursor < len(l.emoji) {
		return l.emoji[l.cursor].ID, true
	}
	return 0, false
}

func (l logsModel) showNewEntryForm() (logsModel, tea.Cmd) {
	log := l.activeLog()

	if log.IsText() {
		*l.formContent = ""
		l.form = huh.NewForm(
			huh.NewGroup(
				huh.NewText().Title("New " + log.String() + " entry").Value(l.formContent),
			),
		).WithShowHelp(true).WithShowErrors(true)
		l.formActive = true
		return l, l.form.Init()
	}

	var visible []store.Kind
	for _, k := range l.kinds {
		if !k.Hidden {
			visible = append(visible, k)
		}
	}
	if len(visible) == 0 {
		return l, func() tea.Msg {
			return statusMsg{text: "No visible kinds for " + log.String() + " — add one in the Kinds view", isError: true}
		}
	}

	options := make([]huh.Option[string], len(visible))
	for i, k := range visible {
		options[i] = huh.NewOption(fmt.Sprintf("%s %s", k.Code, k.Label), k.Code)
	}
	*l.formKind = visible[0].Code

	l.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("New "+log.String()+" entry").Options(options...).Value(l.formKind),
		),
	).WithShowHelp(true).WithShowErrors(true)
	l.formActive = true
	return l, l.form.Init()
}

func (l logsModel) updateForm(msg tea.Msg) (logsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			l.formActive = false
			l.form = nil
			return l, nil
		}
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}

	if l.form.State == huh.StateCompleted {
		l.formActive = false
		log := l.activeLog()
		if log.IsText() {
			if *l.formContent != "" {
				if _, err := l.store.InsertText(log, *l.formContent); err != nil {
					return l, reportError("Submit error", err)
				}
			}
		} else if *l.formKind != "" {
			if _, err := l.store.InsertEmoji(log, *l.formKind); err != nil {
				return l, reportError("Submit error", err)
			}
		}
		return l, l.refresh()
	}

	return l, cmd
}

func reportError(prefix string, err error) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf("%s: %v", prefix, err), isError: true}
	}
}

func (l logsModel) view() string {
	w := l.width - 4

	if l.formActive && l.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("New Entry"), "", l.form.View())
		return panelStyle.Width(w).Render(content)
	}

	log := l.activeLog()

	// Stream tabs
	var tabs []string
	for i, entryLog := range store.EntryLogs {
		if i == l.logIdx {
			tabs = append(tabs, activeTabStyle.Render(entryLog.String()))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(entryLog.String()))
		}
	}
	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	pageInfo := mutedStyle.Render(fmt.Sprintf("page %d/%d", l.page, max(l.numPages, 1)))

	var rows []string
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Bottom, tabRow, "  ", pageInfo))
	rows = append(rows, "")

	if l.entryCount() == 0 {
		rows = append(rows, mutedStyle.Render("No entries yet. Press n to add one."))
	} else if log.IsText() {
		for i, e := range l.text {
			cursor := "  "
			style := normalItemStyle
			if i == l.cursor {
				cursor = "> "
				style = selectedItemStyle
			}
			ts := mutedStyle.Render(formatTimestamp(e.Timestamp))
			line := truncate(firstLine(e.Content), max(w-24, 10))
			rows = append(rows, fmt.Sprintf("%s%s  %s", cursor, ts, style.Render(line)))
		}
	} else {
		for i, e := range l.emoji {
			cursor := "  "
			style := normalItemStyle
			if i == l.cursor {
				cursor = "> "
				style = selectedItemStyle
			}
			ts := mutedStyle.Render(formatTimestamp(e.Timestamp))
			rows = append(rows, fmt.Sprintf("%s%s  %s %s", cursor, ts,
				e.Kind, style.Render(l.kindLabel(e.Kind))))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  ←/→: stream  [/]: page  n: new  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// kindLabel resolves a code for display; orphaned codes render as-is.
func (l logsModel) kindLabel(code string) string {
	for _, k := range l.kinds {
		if k.Code == code {
			return k.Label
		}
	}
	return code
}
