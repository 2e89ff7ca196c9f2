package store

import "fmt"

// entriesPerPage is the fixed page window for every stream.
const entriesPerPage = 100

// NumPages returns ceil(count/100) for a log. An empty log has zero pages.
func (s *Store) NumPages(log Log) (int, error) {
	n, err := s.CountEntries(log)
	if err != nil {
		return 0, err
	}
	return int((n + entriesPerPage - 1) / entriesPerPage), nil
}

// TextPage returns page pageNum (1-indexed) of a text log, ordered by
// ascending id. Page numbers outside [1, NumPages] yield an empty slice; the
// UI clamps, the store stays lenient.
func (s *Store) TextPage(log Log, pageNum int) ([]TextEntry, error) {
	if !log.IsText() {
		return nil, fmt.Errorf("text page: %s is not a text log", log)
	}
	if pageNum < 1 {
		return nil, nil
	}
	rows, err := s.db.Query(
		`SELECT id, content, timestamp FROM `+log.table()+` ORDER BY id LIMIT ? OFFSET ?`,
		entriesPerPage, (pageNum-1)*entriesPerPage,
	)
	if err != nil {
		return nil, fmt.Errorf("page %s %d: %w", log, pageNum, err)
	}
	defer rows.Close()

	var entries []TextEntry
	for rows.Next() {
		var e TextEntry
		if err := rows.Scan(&e.ID, &e.Content, &e.Timestamp); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// EmojiPage returns page pageNum (1-indexed) of an emoji log, ordered by
// ascending id.
func (s *Store) EmojiPage(log Log, pageNum int) ([]EmojiEntry, error) {
	if !log.IsEmoji() {
		return nil, fmt.Errorf("emoji page: %s is not an emoji log", log)
	}
	if pageNum < 1 {
		return nil, nil
	}
	rows, err := s.db.Query(
		`SELECT id, kind, timestamp FROM `+log.table()+` ORDER BY id LIMIT ? OFFSET ?`,
		entriesPerPage, (pageNum-1)*entriesPerPage,
	)
	if err != nil {
		return nil, fmt.Errorf("page %s %d: %w", log, pageNum, err)
	}
	defer rows.Close()

	var entries []EmojiEntry
	for rows.Next() {
		var e EmojiEntry
		if err := rows.Scan(&e.ID, &e.Kind, &e.Timestamp); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// DayPage returns page pageNum (1-indexed) of day summaries, ordered by
// ascending calendar date. Only ratings for the paged days are fetched; the
// Day side is restricted before the join.
func (s *Store) DayPage(pageNum int) ([]DaySummary, error) {
	if pageNum < 1 {
		return nil, nil
	}
	offset := (pageNum - 1) * entriesPerPage

	rows, err := s.db.Query(
		`SELECT date, content FROM Day ORDER BY Date(date) LIMIT ? OFFSET ?`,
		entriesPerPage, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("page days %d: %w", pageNum, err)
	}
	defer rows.Close()

	var summaries []DaySummary
	index := make(map[string]int)
	for rows.Next() {
		var d Day
		if err := rows.Scan(&d.Date, &d.Content); err != nil {
			return nil, err
		}
		index[d.Date] = len(summaries)
		summaries = append(summaries, DaySummary{Day: d})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ratings, err := s.db.Query(
		`SELECT r.date, r.kind, r.magnitude
		 FROM DayRating r
		 JOIN (SELECT date FROM Day ORDER BY Date(date) LIMIT ? OFFSET ?) d ON d.date = r.date
		 ORDER BY r.date, r.kind`,
		entriesPerPage, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("page day ratings %d: %w", pageNum, err)
	}
	defer ratings.Close()

	for ratings.Next() {
		var r DayRating
		if err := ratings.Scan(&r.Date, &r.Kind, &r.Magnitude); err != nil {
			return nil, err
		}
		if i, ok := index[r.Date]; ok {
			summaries[i].Ratings = append(summaries[i].Ratings, r)
		}
	}
	return summaries, ratings.Err()
}
