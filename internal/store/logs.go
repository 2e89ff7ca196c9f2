package store

import "fmt"

// Log identifies one of the five persisted streams. Table names are resolved
// through the switch below, never from caller-supplied strings.
type Log int

const (
	LogDoingNow Log = iota
	LogThoughts
	LogMood
	LogActivity
	LogDay
)

// TextLogs are the free-text entry streams.
var TextLogs = []Log{LogDoingNow, LogThoughts}

// EmojiLogs are the kind-tagged entry streams.
var EmojiLogs = []Log{LogMood, LogActivity}

// EntryLogs are the four leaf entry streams (everything but Day).
var EntryLogs = []Log{LogDoingNow, LogThoughts, LogMood, LogActivity}

// AllLogs lists every stream, Day included.
var AllLogs = []Log{LogDoingNow, LogThoughts, LogMood, LogActivity, LogDay}

func (l Log) String() string {
	switch l {
	case LogDoingNow:
		return "DoingNow"
	case LogThoughts:
		return "Thoughts"
	case LogMood:
		return "Mood"
	case LogActivity:
		return "Activity"
	case LogDay:
		return "Day"
	}
	return fmt.Sprintf("Log(%d)", int(l))
}

// IsText reports whether the log stores free-text entries.
func (l Log) IsText() bool {
	return l == LogDoingNow || l == LogThoughts
}

// IsEmoji reports whether the log stores kind-tagged entries.
func (l Log) IsEmoji() bool {
	return l == LogMood || l == LogActivity
}

// table returns the entry table backing the log.
func (l Log) table() string {
	switch l {
	case LogDoingNow:
		return "DoingNow"
	case LogThoughts:
		return "Thoughts"
	case LogMood:
		return "Mood"
	case LogActivity:
		return "Activity"
	case LogDay:
		return "Day"
	}
	panic(fmt.Sprintf("store: unknown log %d", int(l)))
}

// kindTable returns the Kind table for an emoji log.
func (l Log) kindTable() string {
	switch l {
	case LogMood:
		return "MoodKind"
	case LogActivity:
		return "ActivityKind"
	}
	panic(fmt.Sprintf("store: %s has no kind table", l))
}
