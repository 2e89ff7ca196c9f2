package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sadopc/defacto/internal/store"
)

func sampleSnapshot() Snapshot {
	return Snapshot{
		DoingNow: []store.TextEntry{
			{ID: 1, Content: "writing the report", Timestamp: 1700000000},
			{ID: 2, Content: "lunch break", Timestamp: 1700003600},
		},
		Thoughts: []store.TextEntry{
			{ID: 1, Content: "should refactor this", Timestamp: 1700001000},
		},
		Mood: []store.EmojiEntry{
			{ID: 1, Kind: "😀", Timestamp: 1700002000},
			{ID: 2, Kind: "👻", Timestamp: 1700002500}, // orphan: kind deleted
		},
		MoodKinds: []store.Kind{
			{Code: "😀", Label: "happy"},
		},
		Days: []store.DaySummary{
			{
				Day: store.Day{Date: "2024-01-01", Content: "good start"},
				Ratings: []store.DayRating{
					{Date: "2024-01-01", Kind: "Happy", Magnitude: 7},
					{Date: "2024-01-01", Kind: "Productive", Magnitude: 5},
				},
			},
			{
				Day: store.Day{Date: "2024-01-02", Content: "quiet"},
			},
		},
	}
}

// ============================================================
// Collect
// ============================================================

func TestCollect(t *testing.T) {
	s, err := store.NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })

	s.InsertText(store.LogDoingNow, "a")
	s.AddKind(store.LogMood, "😀", "happy")
	s.InsertEmoji(store.LogMood, "😀")
	s.UpsertDaySummary(store.DaySummary{Day: store.Day{Date: "2024-01-01", Content: "x"}})

	snap, err := Collect(s)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.DoingNow) != 1 || len(snap.Mood) != 1 || len(snap.MoodKinds) != 1 || len(snap.Days) != 1 {
		t.Fatalf("unexpected snapshot sizes: %+v", snap)
	}
	if len(snap.Thoughts) != 0 || len(snap.Activity) != 0 {
		t.Fatal("empty streams should stay empty")
	}
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.csv")
	if err := ToCSV(sampleSnapshot(), path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	// header + 2 doing-now + 1 thought + 2 mood + 2 days
	if len(records) != 8 {
		t.Fatalf("expected 8 rows, got %d", len(records))
	}
	if records[0][0] != "Log" {
		t.Fatalf("missing header, got %v", records[0])
	}
	if records[1][0] != "DoingNow" || records[1][3] != "writing the report" {
		t.Fatalf("unexpected first entry row: %v", records[1])
	}

	// Orphaned emoji entry falls back to the raw code in the detail column.
	var orphan []string
	for _, rec := range records {
		if rec[0] == "Mood" && rec[3] == "👻" {
			orphan = rec
		}
	}
	if orphan == nil || orphan[4] != "👻" {
		t.Fatalf("orphan mood row should show raw code, got %v", orphan)
	}

	// Day row folds ratings into the detail column.
	last := records[6]
	if last[0] != "Day" || last[2] != "2024-01-01" {
		t.Fatalf("unexpected day row: %v", last)
	}
	if !strings.Contains(last[4], "Happy=7") || !strings.Contains(last[4], "Productive=5") {
		t.Fatalf("day row missing ratings: %v", last)
	}
}

func TestToCSVEmptySnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := ToCSV(Snapshot{}, path); err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("empty snapshot should write only the header, got %d rows", len(records))
	}
}

func TestToCSVBadPath(t *testing.T) {
	if err := ToCSV(Snapshot{}, "/nonexistent/dir/x.csv"); err == nil {
		t.Fatal("expected error for unwritable path")
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.json")
	if err := ToJSON(sampleSnapshot(), path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var out struct {
		ExportedAt string `json:"exported_at"`
		DoingNow   []struct {
			ID      int64  `json:"id"`
			Content string `json:"content"`
		} `json:"doing_now"`
		Mood []struct {
			Code  string `json:"code"`
			Label string `json:"label"`
		} `json:"mood"`
		Days []struct {
			Date    string         `json:"date"`
			Ratings map[string]int `json:"ratings"`
		} `json:"days"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}

	if out.ExportedAt == "" {
		t.Fatal("exported_at should be set")
	}
	if len(out.DoingNow) != 2 || out.DoingNow[0].Content != "writing the report" {
		t.Fatalf("unexpected doing_now: %+v", out.DoingNow)
	}
	if out.Mood[0].Label != "happy" {
		t.Fatalf("known kind should resolve to its label, got %q", out.Mood[0].Label)
	}
	if out.Mood[1].Label != "👻" {
		t.Fatalf("orphan kind should fall back to raw code, got %q", out.Mood[1].Label)
	}
	if out.Days[0].Ratings["Happy"] != 7 || out.Days[0].Ratings["Productive"] != 5 {
		t.Fatalf("unexpected day ratings: %+v", out.Days[0].Ratings)
	}
	if out.Days[1].Ratings != nil {
		t.Fatal("unrated day should omit ratings")
	}
}

// ============================================================
// Kind label fallback
// ============================================================

func TestKindLabel(t *testing.T) {
	kinds := []store.Kind{{Code: "😀", Label: "happy"}}
	if kindLabel(kinds, "😀") != "happy" {
		t.Fatal("known code should resolve")
	}
	if kindLabel(kinds, "👻") != "👻" {
		t.Fatal("unknown code should fall back to itself")
	}
	if kindLabel(nil, "x") != "x" {
		t.Fatal("nil kinds should fall back")
	}
}
