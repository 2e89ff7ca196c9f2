package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/defacto/internal/store"
)

type jsonExport struct {
	ExportedAt string          `json:"exported_at"`
	DoingNow   []jsonTextEntry `json:"doing_now"`
	Thoughts   []jsonTextEntry `json:"thoughts"`
	Mood       []jsonEmoji     `json:"mood"`
	Activity   []jsonEmoji     `json:"activity"`
	Days       []jsonDay       `json:"days"`
}

type jsonTextEntry struct {
	ID      int64  `json:"id"`
	Time    string `json:"time"`
	Content string `json:"content"`
}

type jsonEmoji struct {
	ID    int64  `json:"id"`
	Time  string `json:"time"`
	Code  string `json:"code"`
	Label string `json:"label,omitempty"`
}

type jsonDay struct {
	Date    string         `json:"date"`
	Content string         `json:"content"`
	Ratings map[string]int `json:"ratings,omitempty"`
}

// ToJSON writes the full snapshot, with emoji codes resolved to labels where
// the kind still exists.
func ToJSON(snap Snapshot, path string) error {
	out := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
	}

	for _, e := range snap.DoingNow {
		out.DoingNow = append(out.DoingNow, jsonTextEntry{
			ID:      e.ID,
			Time:    e.Time().Local().Format(time.RFC3339),
			Content: e.Content,
		})
	}
	for _, e := range snap.Thoughts {
		out.Thoughts = append(out.Thoughts, jsonTextEntry{
			ID:      e.ID,
			Time:    e.Time().Local().Format(time.RFC3339),
			Content: e.Content,
		})
	}
	emoji := func(entries []store.EmojiEntry, kinds []store.Kind) []jsonEmoji {
		var result []jsonEmoji
		for _, e := range entries {
			result = append(result, jsonEmoji{
				ID:    e.ID,
				Time:  e.Time().Local().Format(time.RFC3339),
				Code:  e.Kind,
				Label: kindLabel(kinds, e.Kind),
			})
		}
		return result
	}
	out.Mood = emoji(snap.Mood, snap.MoodKinds)
	out.Activity = emoji(snap.Activity, snap.ActivityKinds)

	for _, sum := range snap.Days {
		d := jsonDay{Date: sum.Day.Date, Content: sum.Day.Content}
		if len(sum.Ratings) > 0 {
			d.Ratings = make(map[string]int, len(sum.Ratings))
			for _, r := range sum.Ratings {
				d.Ratings[r.Kind] = r.Magnitude
			}
		}
		out.Days = append(out.Days, d)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
