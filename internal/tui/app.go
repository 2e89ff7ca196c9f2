package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/defacto/internal/export"
	"github.com/sadopc/defacto/internal/store"
)

// App is the root bubbletea model. It owns the store handle and routes
// messages to the active view.
type App struct {
	store  *store.Store
	view   viewState
	width  int
	height int

	logs   logsModel
	days   daysModel
	kinds  kindsModel
	search searchModel

	help     help.Model
	showHelp bool

	status      string
	statusErr   bool
	statusUntil time.Time

	exportActive bool
	exportForm   *huh.Form
	exportFormat *string
}

func NewApp(s *store.Store) App {
	format := "csv"
	return App{
		store:        s,
		view:         viewLogs,
		logs:         newLogsModel(s),
		days:         newDaysModel(s),
		kinds:        newKindsModel(s),
		search:       newSearchModel(s),
		help:         help.New(),
		exportFormat: &format,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.logs.refresh(),
		a.days.refresh(),
		a.kinds.refresh(),
	)
}

// formActive reports whether a child view has a form (or text input)
// capturing keystrokes, in which case global bindings must stay out of
// the way.
func (a App) formActive() bool {
	return a.exportActive ||
		a.logs.formActive ||
		a.days.formActive ||
		a.kinds.formActive ||
		a.search.inputFocused()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.logs.setSize(msg.Width, msg.Height)
		a.days.setSize(msg.Width, msg.Height)
		a.kinds.setSize(msg.Width, msg.Height)
		a.search.setSize(msg.Width, msg.Height)
		return a, nil

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		a.statusUntil = time.Now().Add(5 * time.Second)
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusErr = false
		a.statusUntil = time.Now().Add(10 * time.Second)
		return a, nil

	case tea.KeyMsg:
		if a.exportActive {
			return a.updateExportForm(msg)
		}
		if !a.formActive() {
			switch {
			case key.Matches(msg, keys.Quit):
				return a, tea.Quit
			case key.Matches(msg, keys.Help):
				a.showHelp = !a.showHelp
				return a, nil
			case key.Matches(msg, keys.Export):
				return a.showExportForm()
			case key.Matches(msg, keys.Tab):
				return a.switchView(viewState((int(a.view) + 1) % len(viewNames)))
			case key.Matches(msg, keys.Tab1):
				return a.switchView(viewLogs)
			case key.Matches(msg, keys.Tab2):
				return a.switchView(viewDays)
			case key.Matches(msg, keys.Tab3):
				return a.switchView(viewKinds)
			case key.Matches(msg, keys.Tab4):
				return a.switchView(viewSearch)
			}
		}
		return a.updateActiveView(msg)
	}

	// Data messages go to every view; each ignores what isn't theirs.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.logs, cmd = a.logs.update(msg)
	cmds = append(cmds, cmd)
	a.days, cmd = a.days.update(msg)
	cmds = append(cmds, cmd)
	a.kinds, cmd = a.kinds.update(msg)
	cmds = append(cmds, cmd)
	a.search, cmd = a.search.update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.view {
	case viewLogs:
		a.logs, cmd = a.logs.update(msg)
	case viewDays:
		a.days, cmd = a.days.update(msg)
	case viewKinds:
		a.kinds, cmd = a.kinds.update(msg)
	case viewSearch:
		a.search, cmd = a.search.update(msg)
	}
	return a, cmd
}

func (a App) switchView(v viewState) (tea.Model, tea.Cmd) {
	a.view = v
	switch v {
	case viewLogs:
		return a, a.logs.refresh()
	case viewDays:
		return a, a.days.refresh()
	case viewKinds:
		return a, a.kinds.refresh()
	}
	return a, nil
}

func (a App) showExportForm() (tea.Model, tea.Cmd) {
	a.exportForm = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Export format").
				Options(
					huh.NewOption("CSV", "csv"),
					huh.NewOption("JSON", "json"),
				).
				Value(a.exportFormat),
		),
	).WithShowHelp(true).WithShowErrors(true)
	a.exportActive = true
	return a, a.exportForm.Init()
}

func (a App) updateExportForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			a.exportActive = false
			a.exportForm = nil
			return a, nil
		}
	}

	form, cmd := a.exportForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.exportForm = f
	}

	if a.exportForm.State == huh.StateCompleted {
		a.exportActive = false
		format := *a.exportFormat
		return a, func() tea.Msg {
			path, err := runExport(a.store, format)
			if err != nil {
				return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
			}
			return exportDoneMsg{path: path}
		}
	}

	return a, cmd
}

func runExport(s *store.Store, format string) (string, error) {
	snap, err := export.Collect(s)
	if err != nil {
		return "", err
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	name := "defacto-export-" + time.Now().Format("2006-01-02") + "." + format
	path := filepath.Join(home, name)
	if format == "json" {
		err = export.ToJSON(snap, path)
	} else {
		err = export.ToCSV(snap, path)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

func (a App) View() string {
	if a.width == 0 {
		return "loading..."
	}

	header := a.renderHeader()

	var body string
	if a.exportActive && a.exportForm != nil {
		body = panelStyle.Width(a.width - 4).Render(lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Export"), "", a.exportForm.View()))
	} else {
		switch a.view {
		case viewLogs:
			body = a.logs.view()
		case viewDays:
			body = a.days.view()
		case viewKinds:
			body = a.kinds.view()
		case viewSearch:
			body = a.search.view()
		}
	}

	footer := a.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (a App) renderHeader() string {
	brand := titleStyle.Render("defacto")

	var tabs []string
	for i, name := range viewNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if viewState(i) == a.view {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}

	return headerStyle.Render(lipgloss.JoinHorizontal(lipgloss.Bottom,
		brand, "  ", lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)))
}

func (a App) renderFooter() string {
	var status string
	if a.status != "" && time.Now().Before(a.statusUntil) {
		if a.statusErr {
			status = errorStyle.Render(a.status)
		} else {
			status = successStyle.Render(a.status)
		}
	}

	var helpView string
	if a.showHelp {
		helpView = a.help.FullHelpView(keys.FullHelp())
	} else {
		helpView = a.help.ShortHelpView(keys.ShortHelp())
	}

	if status == "" {
		return footerStyle.Render(helpView)
	}
	return footerStyle.Render(lipgloss.JoinVertical(lipgloss.Left, status, helpView))
}
