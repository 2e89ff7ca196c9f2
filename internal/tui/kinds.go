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

// kindsModel manages the mood and activity kind registries.
type kindsModel struct {
	store  *store.Store
	width  int
	height int

	logIdx int // index into store.EmojiLogs
	kinds  []store.Kind
	cursor int

	formActive bool
	form       *huh.Form
	formEdit   bool // true when relabeling an existing kind

	// Form field pointers (survive value copies)
	formCode  *string
	formLabel *string
}

func newKindsModel(s *store.Store) kindsModel {
	code, label := "", ""
	return kindsModel{
		store:     s,
		formCode:  &code,
		formLabel: &label,
	}
}

func (k *kindsModel) setSize(w, h int) {
	k.width = w
	k.height = h
}

func (k kindsModel) activeLog() store.Log {
	return store.EmojiLogs[k.logIdx]
}

func (k kindsModel) refresh() tea.Cmd {
	log := k.activeLog()
	return func() tea.Msg {
		kinds, err := k.store.ListKinds(log)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		return kindsDataMsg{log: log, kinds: kinds}
	}
}

func (k kindsModel) update(msg tea.Msg) (kindsModel, tea.Cmd) {
	if k.formActive && k.form != nil {
		return k.updateForm(msg)
	}

	switch msg := msg.(type) {
	case kindsDataMsg:
		if msg.log != k.activeLog() {
			return k, nil
		}
		k.kinds = msg.kinds
		if k.cursor >= len(k.kinds) {
			k.cursor = max(0, len(k.kinds)-1)
		}
		return k, nil

	case tea.KeyMsg:
		return k.updateKeys(msg)
	}
	return k, nil
}

func (k kindsModel) updateKeys(msg tea.KeyMsg) (kindsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if k.cursor > 0 {
			k.cursor--
		}
	case key.Matches(msg, keys.Down):
		if k.cursor < len(k.kinds)-1 {
			k.cursor++
		}
	case key.Matches(msg, keys.Left), key.Matches(msg, keys.Right):
		k.logIdx = (k.logIdx + 1) % len(store.EmojiLogs)
		k.cursor = 0
		return k, k.refresh()
	case key.Matches(msg, keys.New):
		return k.showForm(store.Kind{}, false)
	case key.Matches(msg, keys.Edit):
		if k.cursor < len(k.kinds) {
			return k.showForm(k.kinds[k.cursor], true)
		}
	case key.Matches(msg, keys.Toggle):
		if k.cursor < len(k.kinds) {
			log := k.activeLog()
			code := k.kinds[k.cursor].Code
			return k, tea.Sequence(
				func() tea.Msg {
					if err := k.store.ToggleKindHidden(log, code); err != nil {
						return statusMsg{text: fmt.Sprintf("Toggle error: %v", err), isError: true}
					}
					return nil
				},
				k.refresh(),
			)
		}
	case key.Matches(msg, keys.Delete):
		if k.cursor < len(k.kinds) {
			log := k.activeLog()
			code := k.kinds[k.cursor].Code
			return k, tea.Sequence(
				func() tea.Msg {
					if err := k.store.DeleteKind(log, code); err != nil {
						return statusMsg{text: fmt.Sprintf("Delete error: %v", err), isError: true}
					}
					return statusMsg{text: "Kind " + code + " deleted"}
				},
				k.refresh(),
			)
		}
	}
	return k, nil
}

func (k kindsModel) showForm(seed store.Kind, edit bool) (kindsModel, tea.Cmd) {
	*k.formCode = seed.Code
	*k.formLabel = seed.Label
	k.formEdit = edit

	fields := []huh.Field{
		huh.NewInput().Title("Emoji").Value(k.formCode),
		huh.NewInput().Title("Label").Value(k.formLabel),
	}
	if edit {
		// Code is the registry key; only the label can change.
		fields = fields[1:]
	}

	k.form = huh.NewForm(huh.NewGroup(fields...)).WithShowHelp(true).WithShowErrors(true)
	k.formActive = true
	return k, k.form.Init()
}

func (k kindsModel) updateForm(msg tea.Msg) (kindsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			k.formActive = false
			k.form = nil
			return k, nil
		}
	}

	form, cmd := k.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		k.form = f
	}

	if k.form.State == huh.StateCompleted {
		k.formActive = false
		log := k.activeLog()
		if *k.formCode != "" {
			var err error
			if k.formEdit {
				err = k.store.RelabelKind(log, *k.formCode, *k.formLabel)
			} else {
				err = k.store.AddKind(log, *k.formCode, *k.formLabel)
			}
			if err != nil {
				return k, tea.Sequence(reportError("Save error", err), k.refresh())
			}
		}
		return k, k.refresh()
	}

	return k, cmd
}

func (k kindsModel) view() string {
	w := k.width - 4

	if k.formActive && k.form != nil {
		title := "New Kind"
		if k.formEdit {
			title = "Relabel " + *k.formCode
		}
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(title), "", k.form.View())
		return panelStyle.Width(w).Render(content)
	}

	var tabs []string
	for i, log := range store.EmojiLogs {
		if i == k.logIdx {
			tabs = append(tabs, activeTabStyle.Render(log.String()))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(log.String()))
		}
	}

	var rows []string
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...))
	rows = append(rows, "")

	if len(k.kinds) == 0 {
		rows = append(rows, mutedStyle.Render("No kinds yet. Press n to add one."))
	} else {
		for i, kind := range k.kinds {
			cursor := "  "
			style := normalItemStyle
			if i == k.cursor {
				cursor = "> "
				style = selectedItemStyle
			}
			hidden := ""
			if kind.Hidden {
				hidden = warningStyle.Render("  (hidden)")
			}
			rows = append(rows, fmt.Sprintf("%s%s  %s%s", cursor, kind.Code, style.Render(kind.Label), hidden))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  ←/→: registry  n: new  e: relabel  v: show/hide  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
