package store

import "fmt"

// Search runs a case-sensitive substring match over entry content and
// returns the hits grouped per stream. LIKE semantics apply: % and _ in the
// query act as wildcards and are not escaped.
//
// Only the DoingNow log is searched today. The remaining QueryResult fields
// stay empty until those streams are wired in.
func (s *Store) Search(query string) (QueryResult, error) {
	var res QueryResult

	rows, err := s.db.Query(
		`SELECT id, content, timestamp FROM DoingNow WHERE content LIKE ? ORDER BY id`,
		"%"+query+"%",
	)
	if err != nil {
		return res, fmt.Errorf("search: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e TextEntry
		if err := rows.Scan(&e.ID, &e.Content, &e.Timestamp); err != nil {
			return res, err
		}
		res.DoingNow = append(res.DoingNow, e)
	}
	return res, rows.Err()
}
