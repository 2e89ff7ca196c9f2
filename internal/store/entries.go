package store

import (
	"fmt"
	"time"
)

// InsertText appends a free-text entry to a text log. The timestamp is
// stamped here, not by the caller.
func (s *Store) InsertText(log Log, content string) (int64, error) {
	if !log.IsText() {
		return 0, fmt.Errorf("insert text: %s is not a text log", log)
	}
	res, err := s.db.Exec(
		`INSERT INTO `+log.table()+` (content, timestamp) VALUES (?, ?)`,
		content, time.Now().Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", log, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", log, err)
	}
	if n == 0 {
		return 0, fmt.Errorf("insert %s: %w", log, ErrInsertFailed)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", log, err)
	}
	return id, nil
}

// InsertEmoji appends a kind-tagged entry to an emoji log. The kind code is
// not checked against the registry; an unknown code is a tolerated
// inconsistency surfaced at display time.
func (s *Store) InsertEmoji(log Log, kindCode string) (int64, error) {
	if !log.IsEmoji() {
		return 0, fmt.Errorf("insert emoji: %s is not an emoji log", log)
	}
	res, err := s.db.Exec(
		`INSERT INTO `+log.table()+` (kind, timestamp) VALUES (?, ?)`,
		kindCode, time.Now().Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", log, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", log, err)
	}
	if n == 0 {
		return 0, fmt.Errorf("insert %s: %w", log, ErrInsertFailed)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", log, err)
	}
	return id, nil
}

// ListTextEntries returns every entry of a text log in insertion order. Bulk
// fallback; paged reads go through TextPage.
func (s *Store) ListTextEntries(log Log) ([]TextEntry, error) {
	if !log.IsText() {
		return nil, fmt.Errorf("list text: %s is not a text log", log)
	}
	rows, err := s.db.Query(`SELECT id, content, timestamp FROM ` + log.table() + ` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", log, err)
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

// ListEmojiEntries returns every entry of an emoji log in insertion order.
func (s *Store) ListEmojiEntries(log Log) ([]EmojiEntry, error) {
	if !log.IsEmoji() {
		return nil, fmt.Errorf("list emoji: %s is not an emoji log", log)
	}
	rows, err := s.db.Query(`SELECT id, kind, timestamp FROM ` + log.table() + ` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", log, err)
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

// DeleteEntry removes an entry by id. Deleting a missing id is a no-op.
func (s *Store) DeleteEntry(log Log, id int64) error {
	if log == LogDay {
		return fmt.Errorf("delete entry: use DeleteDaySummary for the Day log")
	}
	if _, err := s.db.Exec(`DELETE FROM `+log.table()+` WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete %s %d: %w", log, id, err)
	}
	return nil
}

// CountEntries returns the total row count of a log. For LogDay this counts
// Day rows.
func (s *Store) CountEntries(log Log) (int64, error) {
	var n int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM ` + log.table()).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", log, err)
	}
	return n, nil
}
