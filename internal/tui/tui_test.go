package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/defacto/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sizedApp(t *testing.T) App {
	t.Helper()
	a := NewApp(newTestStore(t))
	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m.(App)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func TestFormatTimestamp(t *testing.T) {
	got := formatTimestamp(0)
	if len(got) != len("2006-01-02 15:04") {
		t.Errorf("formatTimestamp(0) = %q, unexpected shape", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 6, "hello…"},
		{"héllo wörld", 6, "héllo…"},
		{"hi", 0, ""},
		{"hi", 1, "h"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestFirstLine(t *testing.T) {
	if got := firstLine("one\ntwo"); got != "one" {
		t.Errorf("firstLine = %q, want %q", got, "one")
	}
	if got := firstLine("single"); got != "single" {
		t.Errorf("firstLine = %q, want %q", got, "single")
	}
}

func TestViewNames(t *testing.T) {
	if len(viewNames) != 4 {
		t.Fatalf("expected 4 view names, got %d", len(viewNames))
	}
	if viewNames[viewLogs] != "Logs" || viewNames[viewSearch] != "Search" {
		t.Errorf("unexpected view names: %v", viewNames)
	}
}

// ---------------------------------------------------------------------------
// App
// ---------------------------------------------------------------------------

func TestNewAppDefaults(t *testing.T) {
	a := NewApp(newTestStore(t))
	if a.view != viewLogs {
		t.Errorf("initial view = %v, want viewLogs", a.view)
	}
	if a.formActive() {
		t.Error("no form should be active on a fresh app")
	}
	if a.Init() == nil {
		t.Error("Init should schedule initial loads")
	}
}

func TestAppViewBeforeSize(t *testing.T) {
	a := NewApp(newTestStore(t))
	if got := a.View(); got != "loading..." {
		t.Errorf("View before WindowSizeMsg = %q", got)
	}
}

func TestAppViewSmoke(t *testing.T) {
	a := sizedApp(t)
	for v := viewLogs; v <= viewSearch; v++ {
		a.view = v
		if out := a.View(); out == "" {
			t.Errorf("View for %s is empty", viewNames[v])
		}
	}
}

func TestRenderHeaderContainsTabs(t *testing.T) {
	a := sizedApp(t)
	header := a.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Errorf("header missing tab %q", name)
		}
	}
	if !strings.Contains(header, "defacto") {
		t.Error("header missing brand")
	}
}

func TestTabSwitchesViews(t *testing.T) {
	a := sizedApp(t)
	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyTab})
	a = m.(App)
	if a.view != viewDays {
		t.Errorf("after tab, view = %v, want viewDays", a.view)
	}
	m, _ = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'4'}})
	a = m.(App)
	if a.view != viewSearch {
		t.Errorf("after '4', view = %v, want viewSearch", a.view)
	}
	m, _ = a.Update(tea.KeyMsg{Type: tea.KeyTab})
	a = m.(App)
	if a.view != viewLogs {
		t.Errorf("tab should wrap back to viewLogs, got %v", a.view)
	}
}

func TestExportFormOpens(t *testing.T) {
	a := sizedApp(t)
	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	a = m.(App)
	if !a.exportActive {
		t.Fatal("x should open the export picker")
	}
	if !a.formActive() {
		t.Error("export picker should count as an active form")
	}
	m, _ = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	a = m.(App)
	if a.exportActive {
		t.Error("esc should close the export picker")
	}
}

func TestStatusMessageShownInFooter(t *testing.T) {
	a := sizedApp(t)
	m, _ := a.Update(statusMsg{text: "saved it", isError: false})
	a = m.(App)
	if !strings.Contains(a.renderFooter(), "saved it") {
		t.Error("footer should show the status message")
	}
}

// ---------------------------------------------------------------------------
// Logs view
// ---------------------------------------------------------------------------

func TestLogsModelStreamCycling(t *testing.T) {
	l := newLogsModel(newTestStore(t))
	if l.activeLog() != store.LogDoingNow {
		t.Fatalf("initial stream = %v, want DoingNow", l.activeLog())
	}
	l, _ = l.update(tea.KeyMsg{Type: tea.KeyRight})
	if l.activeLog() != store.LogThoughts {
		t.Errorf("after right, stream = %v, want Thoughts", l.activeLog())
	}
	l, _ = l.update(tea.KeyMsg{Type: tea.KeyLeft})
	l, _ = l.update(tea.KeyMsg{Type: tea.KeyLeft})
	if l.activeLog() != store.LogActivity {
		t.Errorf("left from DoingNow should wrap to Activity, got %v", l.activeLog())
	}
}

func TestLogsModelIgnoresStaleData(t *testing.T) {
	l := newLogsModel(newTestStore(t))
	l, _ = l.update(logsDataMsg{
		log:  store.LogThoughts,
		page: 3, numPages: 3,
		text: []store.TextEntry{{ID: 1, Content: "stale"}},
	})
	if len(l.text) != 0 || l.page != 1 {
		t.Error("data for another stream should be ignored")
	}
}

func TestLogsModelLoadsData(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.InsertText(store.LogDoingNow, "writing tests"); err != nil {
		t.Fatal(err)
	}

	l := newLogsModel(s)
	l.setSize(120, 40)
	msg := l.refresh()()
	data, ok := msg.(logsDataMsg)
	if !ok {
		t.Fatalf("refresh returned %T, want logsDataMsg", msg)
	}
	l, _ = l.update(data)
	if len(l.text) != 1 || l.text[0].Content != "writing tests" {
		t.Errorf("unexpected entries: %+v", l.text)
	}
	if !strings.Contains(l.view(), "writing tests") {
		t.Error("view should render the entry")
	}
}

func TestLogsNewEntryFormForEmojiNeedsKinds(t *testing.T) {
	s := newTestStore(t)
	l := newLogsModel(s)
	l.logIdx = 2 // Mood
	if l.activeLog() != store.LogMood {
		t.Fatalf("logIdx 2 should be Mood, got %v", l.activeLog())
	}

	l, cmd := l.showNewEntryForm()
	if l.formActive {
		t.Error("form should not open without visible kinds")
	}
	if cmd == nil {
		t.Fatal("expected a status command")
	}
	if sm, ok := cmd().(statusMsg); !ok || !sm.isError {
		t.Errorf("expected an error status, got %#v", cmd())
	}
}

func TestLogsKindLabelFallsBackToCode(t *testing.T) {
	l := newLogsModel(newTestStore(t))
	l.kinds = []store.Kind{{Code: "😀", Label: "happy"}}
	if got := l.kindLabel("😀"); got != "happy" {
		t.Errorf("kindLabel = %q, want happy", got)
	}
	if got := l.kindLabel("👻"); got != "👻" {
		t.Errorf("orphan kindLabel = %q, want the code back", got)
	}
}

// ---------------------------------------------------------------------------
// Days view
// ---------------------------------------------------------------------------

func TestDaysModelLoadsSummaries(t *testing.T) {
	s := newTestStore(t)
	sum := store.DaySummary{
		Day: store.Day{Date: "2024-03-01", Content: "a good day"},
		Ratings: []store.DayRating{
			{Date: "2024-03-01", Kind: "Happy", Magnitude: 8},
		},
	}
	if err := s.UpsertDaySummary(sum); err != nil {
		t.Fatal(err)
	}

	d := newDaysModel(s)
	d.setSize(120, 40)
	msg := d.refresh()()
	data, ok := msg.(daysDataMsg)
	if !ok {
		t.Fatalf("refresh returned %T, want daysDataMsg", msg)
	}
	d, _ = d.update(data)
	if len(d.summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(d.summaries))
	}
	if len(d.ratingKinds) == 0 {
		t.Error("rating kinds should be loaded for the form")
	}
	out := d.view()
	if !strings.Contains(out, "2024-03-01") {
		t.Error("view should show the date")
	}
	if !strings.Contains(out, "a good day") {
		t.Error("view should show the journal text")
	}
}

func TestDaysFormSeededFromSummary(t *testing.T) {
	d := newDaysModel(newTestStore(t))
	d.ratingKinds = []store.DayRatingKind{{Kind: "Happy"}, {Kind: "Productive"}}
	seed := store.DaySummary{
		Day: store.Day{Date: "2024-03-02", Content: "meh"},
		Ratings: []store.DayRating{
			{Date: "2024-03-02", Kind: "Productive", Magnitude: 4},
		},
	}
	d, _ = d.showForm(seed)
	if !d.formActive {
		t.Fatal("form should be active")
	}
	if *d.formDate != "2024-03-02" || *d.formContent != "meh" {
		t.Errorf("form seeded with %q/%q", *d.formDate, *d.formContent)
	}
	if *d.formMags[0] != 0 {
		t.Errorf("Happy should be unrated, got %d", *d.formMags[0])
	}
	if *d.formMags[1] != 4 {
		t.Errorf("Productive should seed 4, got %d", *d.formMags[1])
	}
}

// ---------------------------------------------------------------------------
// Kinds view
// ---------------------------------------------------------------------------

func TestKindsModelRegistryToggle(t *testing.T) {
	k := newKindsModel(newTestStore(t))
	if k.activeLog() != store.LogMood {
		t.Fatalf("initial registry = %v, want Mood", k.activeLog())
	}
	k, _ = k.update(tea.KeyMsg{Type: tea.KeyRight})
	if k.activeLog() != store.LogActivity {
		t.Errorf("after right, registry = %v, want Activity", k.activeLog())
	}
	k, _ = k.update(tea.KeyMsg{Type: tea.KeyLeft})
	if k.activeLog() != store.LogMood {
		t.Errorf("left should cycle back to Mood, got %v", k.activeLog())
	}
}

func TestKindsModelRendersHiddenMarker(t *testing.T) {
	k := newKindsModel(newTestStore(t))
	k.setSize(120, 40)
	k.kinds = []store.Kind{
		{Code: "😀", Label: "happy"},
		{Code: "😴", Label: "tired", Hidden: true},
	}
	out := k.view()
	if !strings.Contains(out, "hidden") {
		t.Error("hidden kinds should be marked in the list")
	}
	if !strings.Contains(out, "happy") || !strings.Contains(out, "tired") {
		t.Error("all kinds should be listed, hidden included")
	}
}

func TestKindsEditFormKeepsCode(t *testing.T) {
	k := newKindsModel(newTestStore(t))
	k, _ = k.showForm(store.Kind{Code: "😀", Label: "happy"}, true)
	if !k.formActive || !k.formEdit {
		t.Fatal("edit form should be active")
	}
	if *k.formCode != "😀" || *k.formLabel != "happy" {
		t.Errorf("form seeded with %q/%q", *k.formCode, *k.formLabel)
	}
}

// ---------------------------------------------------------------------------
// Search view
// ---------------------------------------------------------------------------

func TestSearchFlow(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.InsertText(store.LogDoingNow, "reading a book"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.InsertText(store.LogDoingNow, "writing code"); err != nil {
		t.Fatal(err)
	}

	sm := newSearchModel(s)
	sm.setSize(120, 40)

	// Focus, type, submit.
	sm, _ = sm.update(tea.KeyMsg{Type: tea.KeyEnter})
	if !sm.inputFocused() {
		t.Fatal("enter should focus the input")
	}
	for _, r := range "book" {
		sm, _ = sm.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	sm, cmd := sm.update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter with a query should run the search")
	}
	msg := cmd()
	done, ok := msg.(searchDoneMsg)
	if !ok {
		t.Fatalf("search returned %T, want searchDoneMsg", msg)
	}
	sm, _ = sm.update(done)

	if len(sm.result.DoingNow) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(sm.result.DoingNow))
	}
	if !strings.Contains(sm.view(), "reading a book") {
		t.Error("view should show the matching entry")
	}
}

func TestSearchEscBlursInput(t *testing.T) {
	sm := newSearchModel(newTestStore(t))
	sm, _ = sm.update(tea.KeyMsg{Type: tea.KeyEnter})
	sm, _ = sm.update(tea.KeyMsg{Type: tea.KeyEsc})
	if sm.inputFocused() {
		t.Error("esc should blur the input")
	}
}

// ---------------------------------------------------------------------------
// Key map
// ---------------------------------------------------------------------------

func TestKeyMapHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Error("ShortHelp should not be empty")
	}
	full := keys.FullHelp()
	if len(full) == 0 {
		t.Error("FullHelp should not be empty")
	}
	for i, col := range full {
		if len(col) == 0 {
			t.Errorf("FullHelp column %d is empty", i)
		}
	}
}
