package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/defacto/internal/store"
)

// searchModel runs substring searches over the DoingNow stream.
type searchModel struct {
	store  *store.Store
	width  int
	height int

	input    textinput.Model
	query    string // last executed query
	result   store.QueryResult
	searched bool
}

func newSearchModel(s *store.Store) searchModel {
	ti := textinput.New()
	ti.Placeholder = "search doing-now entries"
	ti.CharLimit = 200
	ti.Width = 40
	return searchModel{store: s, input: ti}
}

func (s *searchModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s searchModel) inputFocused() bool {
	return s.input.Focused()
}

func (s searchModel) update(msg tea.Msg) (searchModel, tea.Cmd) {
	switch msg := msg.(type) {
	case searchDoneMsg:
		s.query = msg.query
		s.result = msg.result
		s.searched = true
		return s, nil

	case tea.KeyMsg:
		if s.input.Focused() {
			switch msg.String() {
			case "esc":
				s.input.Blur()
				return s, nil
			case "enter":
				query := s.input.Value()
				s.input.Blur()
				if query == "" {
					return s, nil
				}
				return s, func() tea.Msg {
					result, err := s.store.Search(query)
					if err != nil {
						return statusMsg{text: fmt.Sprintf("Search error: %v", err), isError: true}
					}
					return searchDoneMsg{query: query, result: result}
				}
			}
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			return s, cmd
		}

		if key.Matches(msg, keys.Enter) || key.Matches(msg, keys.New) {
			s.input.Focus()
			return s, textinput.Blink
		}
	}
	return s, nil
}

func (s searchModel) view() string {
	w := s.width - 4

	var rows []string
	rows = append(rows, titleStyle.Render("Search"))
	rows = append(rows, "")
	rows = append(rows, s.input.View())
	rows = append(rows, "")

	switch {
	case !s.searched:
		rows = append(rows, mutedStyle.Render("Press enter to type a query."))
	case len(s.result.DoingNow) == 0:
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("No matches for %q.", s.query)))
	default:
		rows = append(rows, accentStyle.Render(fmt.Sprintf("%d matches for %q", len(s.result.DoingNow), s.query)))
		rows = append(rows, "")
		for _, e := range s.result.DoingNow {
			ts := mutedStyle.Render(formatTimestamp(e.Timestamp))
			line := truncate(firstLine(e.Content), max(w-24, 10))
			rows = append(rows, fmt.Sprintf("  %s  %s", ts, normalItemStyle.Render(line)))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: query  esc: leave input"))

	style := panelStyle
	if s.input.Focused() {
		style = activePanelStyle
	}
	return style.Width(w).Render(strings.Join(rows, "\n"))
}
