package store

import (
	"database/sql"
	"fmt"
	"time"
)

// UpsertActivity inserts or replaces an activity by id.
func (s *Store) UpsertActivity(a Activity) error {
	_, err := s.db.Exec(`
		INSERT INTO activities (
			id, name, sport, start_time, duration, distance, average_speed,
			average_hr, max_hr,
			hr_zone_1, hr_zone_2, hr_zone_3, hr_zone_4, hr_zone_5,
			average_power, normalized_power, best_20min_power,
			power_zone_1, power_zone_2, power_zone_3, power_zone_4,
			power_zone_5, power_zone_6, power_zone_7,
			total_strokes, active_swim_time, pool_length
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			sport = excluded.sport,
			start_time = excluded.start_time,
			duration = excluded.duration,
			distance = excluded.distance,
			average_speed = excluded.average_speed,
			average_hr = excluded.average_hr,
			max_hr = excluded.max_hr,
			hr_zone_1 = excluded.hr_zone_1,
			hr_zone_2 = excluded.hr_zone_2,
			hr_zone_3 = excluded.hr_zone_3,
			hr_zone_4 = excluded.hr_zone_4,
			hr_zone_5 = excluded.hr_zone_5,
			average_power = excluded.average_power,
			normalized_power = excluded.normalized_power,
			best_20min_power = excluded.best_20min_power,
			power_zone_1 = excluded.power_zone_1,
			power_zone_2 = excluded.power_zone_2,
			power_zone_3 = excluded.power_zone_3,
			power_zone_4 = excluded.power_zone_4,
			power_zone_5 = excluded.power_zone_5,
			power_zone_6 = excluded.power_zone_6,
			power_zone_7 = excluded.power_zone_7,
			total_strokes = excluded.total_strokes,
			active_swim_time = excluded.active_swim_time,
			pool_length = excluded.pool_length,
			updated_at = CURRENT_TIMESTAMP
	`,
		a.ID, a.Name, string(a.Sport), a.StartTime.Format(time.RFC3339), a.Duration,
		a.Distance, a.AverageSpeed, a.AverageHR, a.MaxHR,
		a.HRZoneSeconds[0], a.HRZoneSeconds[1], a.HRZoneSeconds[2],
		a.HRZoneSeconds[3], a.HRZoneSeconds[4],
		a.AveragePower, a.NormalizedPower, a.Best20MinPower,
		a.PowerZoneSeconds[0], a.PowerZoneSeconds[1], a.PowerZoneSeconds[2],
		a.PowerZoneSeconds[3], a.PowerZoneSeconds[4], a.PowerZoneSeconds[5],
		a.PowerZoneSeconds[6],
		a.TotalStrokes, a.ActiveSwimTime, a.PoolLength,
	)
	if err != nil {
		return fmt.Errorf("upserting activity %d: %w", a.ID, err)
	}
	return nil
}

// GetActivity retrieves a single activity by id.
func (s *Store) GetActivity(id int64) (*Activity, error) {
	row := s.db.QueryRow(activitySelect+` WHERE id = ?`, id)
	a, err := scanActivity(row)
	if err == sql.ErrNoRows {
		return nil, ErrActivityNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListActivities returns all activities ordered by start time ascending.
func (s *Store) ListActivities() ([]Activity, error) {
	return s.queryActivities(activitySelect + ` ORDER BY start_time`)
}

// ListActivitiesSince returns activities on or after the cutoff, ordered by
// start time ascending.
func (s *Store) ListActivitiesSince(cutoff time.Time) ([]Activity, error) {
	return s.queryActivities(
		activitySelect+` WHERE start_time >= ? ORDER BY start_time`,
		cutoff.Format(time.RFC3339),
	)
}

// CountActivities returns the number of stored activities.
func (s *Store) CountActivities() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM activities`).Scan(&n)
	return n, err
}

const activitySelect = `
	SELECT id, name, sport, start_time, duration, distance, average_speed,
		average_hr, max_hr,
		hr_zone_1, hr_zone_2, hr_zone_3, hr_zone_4, hr_zone_5,
		average_power, normalized_power, best_20min_power,
		power_zone_1, power_zone_2, power_zone_3, power_zone_4,
		power_zone_5, power_zone_6, power_zone_7,
		total_strokes, active_swim_time, pool_length
	FROM activities`

func (s *Store) queryActivities(query string, args ...interface{}) ([]Activity, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanActivity(row scanner) (*Activity, error) {
	var a Activity
	var sport, startTime string

	err := row.Scan(
		&a.ID, &a.Name, &sport, &startTime, &a.Duration, &a.Distance, &a.AverageSpeed,
		&a.AverageHR, &a.MaxHR,
		&a.HRZoneSeconds[0], &a.HRZoneSeconds[1], &a.HRZoneSeconds[2],
		&a.HRZoneSeconds[3], &a.HRZoneSeconds[4],
		&a.AveragePower, &a.NormalizedPower, &a.Best20MinPower,
		&a.PowerZoneSeconds[0], &a.PowerZoneSeconds[1], &a.PowerZoneSeconds[2],
		&a.PowerZoneSeconds[3], &a.PowerZoneSeconds[4], &a.PowerZoneSeconds[5],
		&a.PowerZoneSeconds[6],
		&a.TotalStrokes, &a.ActiveSwimTime, &a.PoolLength,
	)
	if err != nil {
		return nil, err
	}

	a.Sport = Sport(sport)
	a.StartTime, err = time.Parse(time.RFC3339, startTime)
	if err != nil {
		return nil, fmt.Errorf("parsing start_time %q: %w", startTime, err)
	}
	return &a, nil
}
