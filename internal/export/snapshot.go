package export

import (
	"fmt"

	"github.com/sadopc/defacto/internal/store"
)

// Snapshot is a full read of the journal, gathered through the bulk list
// operations.
type Snapshot struct {
	DoingNow      []store.TextEntry
	Thoughts      []store.TextEntry
	Mood          []store.EmojiEntry
	Activity      []store.EmojiEntry
	MoodKinds     []store.Kind
	ActivityKinds []store.Kind
	Days          []store.DaySummary
}

// Collect pulls every stream out of the store.
func Collect(s *store.Store) (Snapshot, error) {
	var snap Snapshot
	var err error

	if snap.DoingNow, err = s.ListTextEntries(store.LogDoingNow); err != nil {
		return snap, fmt.Errorf("collect doing-now: %w", err)
	}
	if snap.Thoughts, err = s.ListTextEntries(store.LogThoughts); err != nil {
		return snap, fmt.Errorf("collect thoughts: %w", err)
	}
	if snap.Mood, err = s.ListEmojiEntries(store.LogMood); err != nil {
		return snap, fmt.Errorf("collect mood: %w", err)
	}
	if snap.Activity, err = s.ListEmojiEntries(store.LogActivity); err != nil {
		return snap, fmt.Errorf("collect activity: %w", err)
	}
	if snap.MoodKinds, err = s.ListKinds(store.LogMood); err != nil {
		return snap, fmt.Errorf("collect mood kinds: %w", err)
	}
	if snap.ActivityKinds, err = s.ListKinds(store.LogActivity); err != nil {
		return snap, fmt.Errorf("collect activity kinds: %w", err)
	}
	if snap.Days, err = s.ListDaySummaries(); err != nil {
		return snap, fmt.Errorf("collect days: %w", err)
	}
	return snap, nil
}

// kindLabel resolves a code against a kind list, falling back to the raw
// code for orphaned entries.
func kindLabel(kinds []store.Kind, code string) string {
	for _, k := range kinds {
		if k.Code == code {
			return k.Label
		}
	}
	return code
}
