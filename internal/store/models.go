package store

import "time"

// TextEntry is one row in a free-text log (DoingNow, Thoughts).
type TextEntry struct {
	ID        int64
	Content   string
	Timestamp int64 // unix seconds, stamped at insert
}

func (e TextEntry) Time() time.Time { return time.Unix(e.Timestamp, 0) }

// EmojiEntry is one row in a kind-tagged log (Mood, Activity). Kind holds the
// code of a Kind row; the link is not enforced at write time, so a deleted
// kind leaves the raw code behind.
type EmojiEntry struct {
	ID        int64
	Kind      string
	Timestamp int64
}

func (e EmojiEntry) Time() time.Time { return time.Unix(e.Timestamp, 0) }

// Kind is a user-managed category for an emoji log.
type Kind struct {
	Code   string
	Label  string
	Hidden bool
}

// Day is the journal note for one calendar date ("YYYY-MM-DD").
type Day struct {
	Date    string
	Content string
}

// DayRating is one rating of a day, at most one per rating kind.
type DayRating struct {
	Date      string
	Kind      string
	Magnitude int // 1..10
}

// DaySummary aggregates a Day with its ratings. It is assembled from the Day
// and DayRating tables, never stored as such.
type DaySummary struct {
	Day     Day
	Ratings []DayRating
}

// DayRatingKind is one of the small fixed set of rating categories.
type DayRatingKind struct {
	Kind string
}

// QueryResult holds search hits per stream. Only DoingNow is populated today;
// the other fields are extension points and stay empty.
type QueryResult struct {
	DoingNow []TextEntry
	Thoughts []TextEntry
	Mood     []EmojiEntry
	Activity []EmojiEntry
	Days     []DaySummary
}
