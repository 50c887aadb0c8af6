// Package feed ingests raw activity summary records from an exported JSON
// feed and normalizes them into store activities. The export is produced by
// an external downloader; this package only consumes it.
package feed

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"tricoach/internal/store"
)

// RawActivity mirrors one record of the activity export. All fields except
// the id and start time are optional; sensors not worn simply leave their
// fields null.
type RawActivity struct {
	ActivityID   int64  `json:"activityId"`
	ActivityName string `json:"activityName"`
	ActivityType struct {
		TypeKey string `json:"typeKey"`
	} `json:"activityType"`
	StartTimeLocal string  `json:"startTimeLocal"`
	Duration       float64 `json:"duration"` // seconds

	Distance     *float64 `json:"distance"`     // meters
	AverageSpeed *float64 `json:"averageSpeed"` // m/s

	AverageHR *float64 `json:"averageHR"`
	MaxHR     *float64 `json:"maxHR"`
	HRZone1   *float64 `json:"hrTimeInZone_1"`
	HRZone2   *float64 `json:"hrTimeInZone_2"`
	HRZone3   *float64 `json:"hrTimeInZone_3"`
	HRZone4   *float64 `json:"hrTimeInZone_4"`
	HRZone5   *float64 `json:"hrTimeInZone_5"`

	AvgPower      *float64 `json:"avgPower"`
	NormPower     *float64 `json:"normPower"`
	Max20MinPower *float64 `json:"max20MinPower"`
	PowerZone1    *float64 `json:"powerTimeInZone_1"`
	PowerZone2    *float64 `json:"powerTimeInZone_2"`
	PowerZone3    *float64 `json:"powerTimeInZone_3"`
	PowerZone4    *float64 `json:"powerTimeInZone_4"`
	PowerZone5    *float64 `json:"powerTimeInZone_5"`
	PowerZone6    *float64 `json:"powerTimeInZone_6"`
	PowerZone7    *float64 `json:"powerTimeInZone_7"`

	Strokes        *float64 `json:"strokes"`
	MovingDuration *float64 `json:"movingDuration"` // seconds
	PoolLength     *float64 `json:"poolLength"`     // meters
}

// ErrMissingIdentity marks a record without a usable id or start time.
var ErrMissingIdentity = errors.New("record missing activity id or start time")

// timeLayouts covers the timestamp formats seen in exports.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// LoadFile reads an exported activity feed from disk.
func LoadFile(path string) ([]RawActivity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading feed file: %w", err)
	}

	var raws []RawActivity
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("parsing feed file: %w", err)
	}
	return raws, nil
}

// Normalize converts one raw record into a store activity. It is total over
// optional fields and fails only when the record lacks an id or a parseable
// start time.
func Normalize(raw RawActivity) (store.Activity, error) {
	if raw.ActivityID == 0 || raw.StartTimeLocal == "" {
		return store.Activity{}, ErrMissingIdentity
	}

	start, err := parseStartTime(raw.StartTimeLocal)
	if err != nil {
		return store.Activity{}, fmt.Errorf("%w: %v", ErrMissingIdentity, err)
	}

	a := store.Activity{
		ID:        raw.ActivityID,
		Name:      raw.ActivityName,
		Sport:     mapSport(raw.ActivityType.TypeKey),
		StartTime: start,
		Duration:  int(raw.Duration),

		Distance:     raw.Distance,
		AverageSpeed: raw.AverageSpeed,
		AverageHR:    raw.AverageHR,
		MaxHR:        raw.MaxHR,

		AveragePower:    raw.AvgPower,
		NormalizedPower: raw.NormPower,
		Best20MinPower:  raw.Max20MinPower,

		TotalStrokes:   raw.Strokes,
		ActiveSwimTime: raw.MovingDuration,
		PoolLength:     raw.PoolLength,
	}

	hrZones := []*float64{raw.HRZone1, raw.HRZone2, raw.HRZone3, raw.HRZone4, raw.HRZone5}
	for i, z := range hrZones {
		if z != nil {
			a.HRZoneSeconds[i] = *z
		}
	}

	powerZones := []*float64{raw.PowerZone1, raw.PowerZone2, raw.PowerZone3,
		raw.PowerZone4, raw.PowerZone5, raw.PowerZone6, raw.PowerZone7}
	for i, z := range powerZones {
		if z != nil {
			a.PowerZoneSeconds[i] = *z
		}
	}

	return a, nil
}

// NormalizeAll normalizes every record in the feed, skipping the ones that
// cannot be identified. A single bad record never aborts the import.
func NormalizeAll(raws []RawActivity, logger *slog.Logger) []store.Activity {
	if logger == nil {
		logger = slog.Default()
	}

	activities := make([]store.Activity, 0, len(raws))
	for _, raw := range raws {
		a, err := Normalize(raw)
		if err != nil {
			logger.Warn("skipping activity record",
				"activity_id", raw.ActivityID,
				"start_time", raw.StartTimeLocal,
				"reason", err)
			continue
		}
		activities = append(activities, a)
	}
	return activities
}

// Import normalizes the feed and upserts the result into the store.
// Returns the number of imported and skipped records.
func Import(s *store.Store, raws []RawActivity, logger *slog.Logger) (imported, skipped int, err error) {
	activities := NormalizeAll(raws, logger)
	skipped = len(raws) - len(activities)

	for _, a := range activities {
		if err := s.UpsertActivity(a); err != nil {
			return imported, skipped, err
		}
		imported++
	}

	if err := s.SetMeta("last_import_at", time.Now().Format(time.RFC3339)); err != nil {
		return imported, skipped, err
	}
	return imported, skipped, nil
}

func parseStartTime(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable start time %q", value)
}

// mapSport maps an export type key onto the normalized discipline.
func mapSport(typeKey string) store.Sport {
	key := strings.ToLower(typeKey)
	switch {
	case strings.Contains(key, "swim"):
		return store.SportSwim
	case strings.Contains(key, "cycling"), strings.Contains(key, "biking"), strings.Contains(key, "bike"):
		return store.SportBike
	case strings.Contains(key, "running"), key == "run":
		return store.SportRun
	default:
		return store.SportOther
	}
}
