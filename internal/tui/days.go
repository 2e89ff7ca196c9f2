package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/defacto/internal/store"
)

// daysModel pages through day summaries and edits them.
type daysModel struct {
	store  *store.Store
	width  int
	height int

	page        int
	numPages    int
	summaries   []store.DaySummary
	ratingKinds []store.DayRatingKind
	cursor      int

	chart barchart.Model

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formDate    *string
	formContent *string
	formMags    []*int // parallel to ratingKinds; 0 = unrated
}

func newDaysModel(s *store.Store) daysModel {
	date, content := "", ""
	return daysModel{
		store:       s,
		page:        1,
		chart:       barchart.New(40, 8),
		formDate:    &date,
		formContent: &content,
	}
}

func (d *daysModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d daysModel) refresh() tea.Cmd {
	page := d.page
	return func() tea.Msg {
		numPages, err := d.store.NumPages(store.LogDay)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		if page > numPages {
			page = numPages
		}
		if page < 1 {
			page = 1
		}

		summaries, err := d.store.DayPage(page)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		ratingKinds, err := d.store.ListDayRatingKinds()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		return daysDataMsg{page: page, numPages: numPages, summaries: summaries, ratingKinds: ratingKinds}
	}
}

func (d daysModel) update(msg tea.Msg) (daysModel, tea.Cmd) {
	if d.formActive && d.form != nil {
		return d.updateForm(msg)
	}

	switch msg := msg.(type) {
	case daysDataMsg:
		d.page = msg.page
		d.numPages = msg.numPages
		d.summaries = msg.summaries
		d.ratingKinds = msg.ratingKinds
		if d.cursor >= len(d.summaries) {
			d.cursor = max(0, len(d.summaries)-1)
		}
		d.buildChart()
		return d, nil

	case tea.KeyMsg:
		return d.updateKeys(msg)
	}
	return d, nil
}

func (d daysModel) updateKeys(msg tea.KeyMsg) (daysModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if d.cursor > 0 {
			d.cursor--
			d.buildChart()
		}
	case key.Matches(msg, keys.Down):
		if d.cursor < len(d.summaries)-1 {
			d.cursor++
			d.buildChart()
		}
	case key.Matches(msg, keys.PrevPage):
		if d.page > 1 {
			d.page--
			d.cursor = 0
			return d, d.refresh()
		}
	case key.Matches(msg, keys.NextPage):
		if d.page < d.numPages {
			d.page++
			d.cursor = 0
			return d, d.refresh()
		}
	case key.Matches(msg, keys.New):
		return d.showForm(store.DaySummary{
			Day: store.Day{Date: time.Now().Format("2006-01-02")},
		})
	case key.Matches(msg, keys.Edit):
		if d.cursor < len(d.summaries) {
			return d.showForm(d.summaries[d.cursor])
		}
	case key.Matches(msg, keys.Delete):
		if d.cursor < len(d.summaries) {
			date := d.summaries[d.cursor].Day.Date
			return d, tea.Sequence(
				func() tea.Msg {
					if err := d.store.DeleteDaySummary(date); err != nil {
						return statusMsg{text: fmt.Sprintf("Delete error: %v", err), isError: true}
					}
					return statusMsg{text: "Day " + date + " deleted"}
				},
				d.refresh(),
			)
		}
	}
	return d, nil
}

func (d daysModel) showForm(seed store.DaySummary) (daysModel, tea.Cmd) {
	*d.formDate = seed.Day.Date
	*d.formContent = seed.Day.Content

	current := make(map[string]int, len(seed.Ratings))
	for _, r := range seed.Ratings {
		current[r.Kind] = r.Magnitude
	}

	magOptions := []huh.Option[int]{huh.NewOption("—", 0)}
	for m := 1; m <= 10; m++ {
		magOptions = append(magOptions, huh.NewOption(fmt.Sprintf("%d", m), m))
	}

	fields := []huh.Field{
		huh.NewInput().Title("Date (YYYY-MM-DD)").Value(d.formDate),
		huh.NewText().Title("Journal").Value(d.formContent),
	}
	d.formMags = make([]*int, len(d.ratingKinds))
	for i, rk := range d.ratingKinds {
		mag := current[rk.Kind]
		d.formMags[i] = &mag
		fields = append(fields,
			huh.NewSelect[int]().Title(rk.Kind).Options(magOptions...).Value(d.formMags[i]))
	}

	d.form = huh.NewForm(huh.NewGroup(fields...)).WithShowHelp(true).WithShowErrors(true)
	d.formActive = true
	return d, d.form.Init()
}

func (d daysModel) updateForm(msg tea.Msg) (daysModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			d.formActive = false
			d.form = nil
			return d, nil
		}
	}

	form, cmd := d.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		d.form = f
	}

	if d.form.State == huh.StateCompleted {
		d.formActive = false
		if *d.formDate != "" {
			sum := store.DaySummary{
				Day: store.Day{Date: *d.formDate, Content: *d.formContent},
			}
			for i, rk := range d.ratingKinds {
				if m := *d.formMags[i]; m > 0 {
					sum.Ratings = append(sum.Ratings, store.DayRating{
						Date: sum.Day.Date, Kind: rk.Kind, Magnitude: m,
					})
				}
			}
			if err := d.store.UpsertDaySummary(sum); err != nil {
				return d, reportError("Save error", err)
			}
		}
		return d, d.refresh()
	}

	return d, cmd
}

func (d *daysModel) buildChart() {
	chartWidth := d.width/2 - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	d.chart = barchart.New(chartWidth, 8)

	if d.cursor >= len(d.summaries) {
		return
	}

	var bars []barchart.BarData
	for _, r := range d.summaries[d.cursor].Ratings {
		bars = append(bars, barchart.BarData{
			Label: truncate(r.Kind, 10),
			Values: []barchart.BarValue{{
				Name:  r.Kind,
				Value: float64(r.Magnitude),
				Style: lipgloss.NewStyle().Foreground(colorPrimary),
			}},
		})
	}
	if len(bars) == 0 {
		return
	}
	d.chart.PushAll(bars)
	d.chart.Draw()
}

func (d daysModel) view() string {
	w := d.width - 4

	if d.formActive && d.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Day Summary"), "", d.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Days")
	pageInfo := mutedStyle.Render(fmt.Sprintf("page %d/%d", d.page, max(d.numPages, 1)))

	if len(d.summaries) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", pageInfo),
			"",
			mutedStyle.Render("No day summaries yet. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	for i, sum := range d.summaries {
		cursor := "  "
		style := normalItemStyle
		if i == d.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		note := truncate(firstLine(sum.Day.Content), 24)
		ratings := ""
		if n := len(sum.Ratings); n > 0 {
			ratings = accentStyle.Render(fmt.Sprintf(" (%d ratings)", n))
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s  %s", cursor, sum.Day.Date, note))+ratings)
	}
	list := strings.Join(rows, "\n")

	detail := d.renderDetail()

	listW := w / 2
	left := lipgloss.NewStyle().Width(listW).Render(list)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, detail)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", pageInfo),
		"",
		body,
		"",
		mutedStyle.Render("  [/]: page  n: new  e: edit  d: delete"),
	))
}

func (d daysModel) renderDetail() string {
	if d.cursor >= len(d.summaries) {
		return ""
	}
	sum := d.summaries[d.cursor]

	var parts []string
	parts = append(parts, highlightStyle.Render(sum.Day.Date))
	parts = append(parts, "")
	if sum.Day.Content != "" {
		parts = append(parts, normalItemStyle.Render(truncate(sum.Day.Content, 400)))
		parts = append(parts, "")
	}
	if len(sum.Ratings) > 0 {
		parts = append(parts, d.chart.View())
	} else {
		parts = append(parts, mutedStyle.Render("No ratings"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
