package store

import "fmt"

// ListDaySummaries joins every Day with its ratings, ordered by calendar
// date. A day with no ratings yields an empty Ratings slice; a rating whose
// date has no Day row is dropped rather than reported.
func (s *Store) ListDaySummaries() ([]DaySummary, error) {
	rows, err := s.db.Query(`SELECT date, content FROM Day ORDER BY Date(date)`)
	if err != nil {
		return nil, fmt.Errorf("list days: %w", err)
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

	ratings, err := s.db.Query(`SELECT date, kind, magnitude FROM DayRating ORDER BY date, kind`)
	if err != nil {
		return nil, fmt.Errorf("list day ratings: %w", err)
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

// UpsertDaySummary replaces the Day row and every rating in the summary as
// one atomic unit, keyed on date and (date, kind). A magnitude outside [1,10]
// rolls the whole call back, pre-existing state included.
func (s *Store) UpsertDaySummary(sum DaySummary) error {
	if sum.Day.Date == "" {
		return fmt.Errorf("upsert day summary: empty date")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("upsert day %s: %w", sum.Day.Date, err)
	}

	if _, err := tx.Exec(`INSERT OR REPLACE INTO Day (date, content) VALUES (?, ?)`,
		sum.Day.Date, sum.Day.Content); err != nil {
		tx.Rollback()
		return fmt.Errorf("upsert day %s: %w", sum.Day.Date, err)
	}

	for _, r := range sum.Ratings {
		if r.Magnitude < 1 || r.Magnitude > 10 {
			tx.Rollback()
			return fmt.Errorf("upsert day %s rating %s: %w", sum.Day.Date, r.Kind, ErrInvalidMagnitude)
		}
		if _, err := tx.Exec(`INSERT OR REPLACE INTO DayRating (date, kind, magnitude) VALUES (?, ?, ?)`,
			r.Date, r.Kind, r.Magnitude); err != nil {
			tx.Rollback()
			return fmt.Errorf("upsert day %s rating %s: %w", sum.Day.Date, r.Kind, err)
		}
	}

	return tx.Commit()
}

// DeleteDaySummary removes the Day row and cascades to its ratings in one
// transaction. Deleting a missing date is a no-op.
func (s *Store) DeleteDaySummary(date string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("delete day %s: %w", date, err)
	}
	if _, err := tx.Exec(`DELETE FROM DayRating WHERE date = ?`, date); err != nil {
		tx.Rollback()
		return fmt.Errorf("delete day %s ratings: %w", date, err)
	}
	if _, err := tx.Exec(`DELETE FROM Day WHERE date = ?`, date); err != nil {
		tx.Rollback()
		return fmt.Errorf("delete day %s: %w", date, err)
	}
	return tx.Commit()
}

// ListDayRatingKinds returns the fixed rating categories in table order.
func (s *Store) ListDayRatingKinds() ([]DayRatingKind, error) {
	rows, err := s.db.Query(`SELECT kind FROM DayRatingKind`)
	if err != nil {
		return nil, fmt.Errorf("list rating kinds: %w", err)
	}
	defer rows.Close()

	var kinds []DayRatingKind
	for rows.Next() {
		var k DayRatingKind
		if err := rows.Scan(&k.Kind); err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, rows.Err()
}
