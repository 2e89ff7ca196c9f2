package tui

import (
	"time"

	"github.com/sadopc/defacto/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewLogs viewState = iota
	viewDays
	viewKinds
	viewSearch
)

var viewNames = []string{"Logs", "Days", "Kinds", "Search"}

// --- Messages ---

type logsDataMsg struct {
	log      store.Log
	page     int
	numPages int
	text     []store.TextEntry
	emoji    []store.EmojiEntry
	kinds    []store.Kind
}

type daysDataMsg struct {
	page        int
	numPages    int
	summaries   []store.DaySummary
	ratingKinds []store.DayRatingKind
}

type kindsDataMsg struct {
	log   store.Log
	kinds []store.Kind
}

type searchDoneMsg struct {
	query  string
	result store.QueryResult
}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatTimestamp(ts int64) string {
	return time.Unix(ts, 0).Local().Format("2006-01-02 15:04")
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 1 {
		return string(runes[:n])
	}
	return string(runes[:n-1]) + "…"
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
