package store

import "database/sql"

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		// Activities (normalized summary records from the export feed).
		// Raw summary fields only: derived metrics are a function of the
		// athlete profile and are recomputed on every run.
		`CREATE TABLE IF NOT EXISTS activities (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			sport TEXT NOT NULL,
			start_time TEXT NOT NULL,
			duration INTEGER NOT NULL,
			distance REAL,
			average_speed REAL,
			average_hr REAL,
			max_hr REAL,
			hr_zone_1 REAL NOT NULL DEFAULT 0,
			hr_zone_2 REAL NOT NULL DEFAULT 0,
			hr_zone_3 REAL NOT NULL DEFAULT 0,
			hr_zone_4 REAL NOT NULL DEFAULT 0,
			hr_zone_5 REAL NOT NULL DEFAULT 0,
			average_power REAL,
			normalized_power REAL,
			best_20min_power REAL,
			power_zone_1 REAL NOT NULL DEFAULT 0,
			power_zone_2 REAL NOT NULL DEFAULT 0,
			power_zone_3 REAL NOT NULL DEFAULT 0,
			power_zone_4 REAL NOT NULL DEFAULT 0,
			power_zone_5 REAL NOT NULL DEFAULT 0,
			power_zone_6 REAL NOT NULL DEFAULT 0,
			power_zone_7 REAL NOT NULL DEFAULT 0,
			total_strokes REAL,
			active_swim_time REAL,
			pool_length REAL,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_activities_start_time ON activities(start_time)`,
		`CREATE INDEX IF NOT EXISTS idx_activities_sport ON activities(sport)`,

		// Import bookkeeping (key-value store)
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}
