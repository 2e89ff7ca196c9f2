package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sadopc/defacto/internal/store"
)

// ToCSV writes the snapshot as one flat table: entry rows for the four logs,
// then one row per day summary with its ratings folded into the detail
// column.
func ToCSV(snap Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Log", "ID", "Time", "Content", "Detail"}); err != nil {
		return err
	}

	writeText := func(log store.Log, entries []store.TextEntry) error {
		for _, e := range entries {
			row := []string{
				log.String(),
				fmt.Sprintf("%d", e.ID),
				e.Time().Local().Format(time.RFC3339),
				e.Content,
				"",
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	}
	writeEmoji := func(log store.Log, entries []store.EmojiEntry, kinds []store.Kind) error {
		for _, e := range entries {
			row := []string{
				log.String(),
				fmt.Sprintf("%d", e.ID),
				e.Time().Local().Format(time.RFC3339),
				e.Kind,
				kindLabel(kinds, e.Kind),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	}

	if err := writeText(store.LogDoingNow, snap.DoingNow); err != nil {
		return err
	}
	if err := writeText(store.LogThoughts, snap.Thoughts); err != nil {
		return err
	}
	if err := writeEmoji(store.LogMood, snap.Mood, snap.MoodKinds); err != nil {
		return err
	}
	if err := writeEmoji(store.LogActivity, snap.Activity, snap.ActivityKinds); err != nil {
		return err
	}

	for _, sum := range snap.Days {
		var parts []string
		for _, r := range sum.Ratings {
			parts = append(parts, fmt.Sprintf("%s=%d", r.Kind, r.Magnitude))
		}
		row := []string{
			store.LogDay.String(),
			"",
			sum.Day.Date,
			sum.Day.Content,
			strings.Join(parts, ";"),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
