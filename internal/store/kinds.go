package store

import "fmt"

// ListKinds returns every kind of an emoji log, hidden ones included, in
// code order. Callers filter for display.
func (s *Store) ListKinds(log Log) ([]Kind, error) {
	if !log.IsEmoji() {
		return nil, fmt.Errorf("list kinds: %s has no kinds", log)
	}
	rows, err := s.db.Query(`SELECT code, label, hidden FROM ` + log.kindTable() + ` ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list %s kinds: %w", log, err)
	}
	defer rows.Close()

	var kinds []Kind
	for rows.Next() {
		var k Kind
		var hidden int
		if err := rows.Scan(&k.Code, &k.Label, &hidden); err != nil {
			return nil, err
		}
		k.Hidden = hidden == 1
		kinds = append(kinds, k)
	}
	return kinds, rows.Err()
}

// AddKind registers a new kind. A code already present for the log fails with
// ErrDuplicateKind and leaves the existing kind untouched. The pre-check is
// race-free under the single-writer model.
func (s *Store) AddKind(log Log, code, label string) error {
	if !log.IsEmoji() {
		return fmt.Errorf("add kind: %s has no kinds", log)
	}
	var exists int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM `+log.kindTable()+` WHERE code = ?`, code).Scan(&exists); err != nil {
		return fmt.Errorf("add %s kind %q: %w", log, code, err)
	}
	if exists > 0 {
		return fmt.Errorf("add %s kind %q: %w", log, code, ErrDuplicateKind)
	}
	if _, err := s.db.Exec(`INSERT INTO `+log.kindTable()+` (code, label) VALUES (?, ?)`, code, label); err != nil {
		return fmt.Errorf("add %s kind %q: %w", log, code, err)
	}
	return nil
}

// RelabelKind changes a kind's label. Missing codes are a silent no-op.
func (s *Store) RelabelKind(log Log, code, label string) error {
	if !log.IsEmoji() {
		return fmt.Errorf("relabel kind: %s has no kinds", log)
	}
	if _, err := s.db.Exec(`UPDATE `+log.kindTable()+` SET label = ? WHERE code = ?`, label, code); err != nil {
		return fmt.Errorf("relabel %s kind %q: %w", log, code, err)
	}
	return nil
}

// ToggleKindHidden flips a kind's visibility. Missing codes are a silent no-op.
func (s *Store) ToggleKindHidden(log Log, code string) error {
	if !log.IsEmoji() {
		return fmt.Errorf("toggle kind: %s has no kinds", log)
	}
	_, err := s.db.Exec(
		`UPDATE `+log.kindTable()+` SET hidden = CASE WHEN hidden = 0 THEN 1 ELSE 0 END WHERE code = ?`,
		code,
	)
	if err != nil {
		return fmt.Errorf("toggle %s kind %q: %w", log, code, err)
	}
	return nil
}

// DeleteKind removes a kind. Entries already tagged with the code are left in
// place; they render as the raw code until retagged. Missing codes are a
// silent no-op.
func (s *Store) DeleteKind(log Log, code string) error {
	if !log.IsEmoji() {
		return fmt.Errorf("delete kind: %s has no kinds", log)
	}
	if _, err := s.db.Exec(`DELETE FROM `+log.kindTable()+` WHERE code = ?`, code); err != nil {
		return fmt.Errorf("delete %s kind %q: %w", log, code, err)
	}
	return nil
}
