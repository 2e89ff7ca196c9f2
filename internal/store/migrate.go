package store

import "fmt"

// schemaVersion is the version the code expects. The persisted marker lives
// in PRAGMA user_version.
const schemaVersion = 2

type migration struct {
	version int
	script  string
}

// migrations must cover every version from 1 to schemaVersion with no gaps.
// Scripts are applied in strictly increasing order; rerun protection is the
// version stamp, not script-level guards.
var migrations = []migration{
	{version: 1, script: schemaV1},
	{version: 2, script: schemaV2},
}

// migrate reads the persisted schema version and applies whatever scripts are
// needed to reach schemaVersion. Each step runs in its own transaction with
// the version stamp inside it, so a failed script leaves the marker
// untouched and the store unusable rather than half-migrated.
func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= schemaVersion {
		return nil
	}

	for v := version + 1; v <= schemaVersion; v++ {
		m, err := migrationFor(v)
		if err != nil {
			return err
		}
		if err := s.applyMigration(m); err != nil {
			return fmt.Errorf("apply migration to v%d: %w", v, err)
		}
	}
	return nil
}

func migrationFor(version int) (migration, error) {
	for _, m := range migrations {
		if m.version == version {
			return m, nil
		}
	}
	return migration{}, fmt.Errorf("missing migration script for version %d", version)
}

func (s *Store) applyMigration(m migration) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(m.script); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.version)); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

const schemaV1 = `
CREATE TABLE IF NOT EXISTS DoingNow (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	content   TEXT NOT NULL,
	timestamp INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS Thoughts (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	content   TEXT NOT NULL,
	timestamp INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS Mood (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	kind      TEXT NOT NULL,
	timestamp INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS Activity (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	kind      TEXT NOT NULL,
	timestamp INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS MoodKind (
	code   TEXT PRIMARY KEY,
	label  TEXT NOT NULL,
	hidden INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS ActivityKind (
	code   TEXT PRIMARY KEY,
	label  TEXT NOT NULL,
	hidden INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS Day (
	date    TEXT PRIMARY KEY,
	content TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS DayRating (
	date      TEXT NOT NULL,
	kind      TEXT NOT NULL,
	magnitude INTEGER NOT NULL,
	PRIMARY KEY (date, kind)
);

CREATE TABLE IF NOT EXISTS DayRatingKind (
	kind TEXT PRIMARY KEY
);

INSERT OR IGNORE INTO DayRatingKind (kind) VALUES
	('Productive'),
	('Happy'),
	('Interesting'),
	('Difficult');
`

const schemaV2 = `
CREATE INDEX IF NOT EXISTS idx_doingnow_timestamp ON DoingNow(timestamp);
CREATE INDEX IF NOT EXISTS idx_thoughts_timestamp ON Thoughts(timestamp);
CREATE INDEX IF NOT EXISTS idx_mood_timestamp     ON Mood(timestamp);
CREATE INDEX IF NOT EXISTS idx_activity_timestamp ON Activity(timestamp);
CREATE INDEX IF NOT EXISTS idx_dayrating_date     ON DayRating(date);
`
