package feed

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"tricoach/internal/store"
)

func floatPtr(v float64) *float64 {
	return &v
}

func validRaw() RawActivity {
	raw := RawActivity{
		ActivityID:     101,
		ActivityName:   "Morning Ride",
		StartTimeLocal: "2025-06-01 07:30:00",
		Duration:       3600,
		Distance:       floatPtr(30000),
		AverageHR:      floatPtr(145),
		HRZone2:        floatPtr(2400),
	}
	raw.ActivityType.TypeKey = "road_biking"
	return raw
}

func TestNormalize(t *testing.T) {
	a, err := Normalize(validRaw())
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}

	if a.ID != 101 || a.Name != "Morning Ride" {
		t.Errorf("identity = %d %q, want 101 Morning Ride", a.ID, a.Name)
	}
	if a.Sport != store.SportBike {
		t.Errorf("Sport = %s, want %s", a.Sport, store.SportBike)
	}
	if a.Duration != 3600 {
		t.Errorf("Duration = %d, want 3600", a.Duration)
	}
	want := time.Date(2025, 6, 1, 7, 30, 0, 0, time.UTC)
	if !a.StartTime.Equal(want) {
		t.Errorf("StartTime = %v, want %v", a.StartTime, want)
	}
	if a.HRZoneSeconds[1] != 2400 {
		t.Errorf("HRZoneSeconds[1] = %v, want 2400", a.HRZoneSeconds[1])
	}
}

func TestNormalize_OptionalFieldsStayNil(t *testing.T) {
	raw := RawActivity{
		ActivityID:     102,
		StartTimeLocal: "2025-06-01T07:30:00",
		Duration:       1800,
	}

	a, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if a.Distance != nil || a.AverageHR != nil || a.NormalizedPower != nil || a.TotalStrokes != nil {
		t.Error("absent optional fields must normalize to nil, not zero")
	}
}

func TestNormalize_MissingIdentity(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RawActivity)
	}{
		{"no id", func(r *RawActivity) { r.ActivityID = 0 }},
		{"no start time", func(r *RawActivity) { r.StartTimeLocal = "" }},
		{"garbage start time", func(r *RawActivity) { r.StartTimeLocal = "last tuesday" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			tt.mutate(&raw)
			_, err := Normalize(raw)
			if !errors.Is(err, ErrMissingIdentity) {
				t.Errorf("Normalize() error = %v, want ErrMissingIdentity", err)
			}
		})
	}
}

func TestNormalizeAll_SkipsBadRecords(t *testing.T) {
	raws := []RawActivity{
		validRaw(),
		{ActivityID: 0, StartTimeLocal: "2025-06-01 08:00:00"}, // no id
		func() RawActivity {
			r := validRaw()
			r.ActivityID = 103
			return r
		}(),
	}

	got := NormalizeAll(raws, slog.Default())
	if len(got) != 2 {
		t.Fatalf("NormalizeAll() kept %d records, want 2", len(got))
	}
	if got[0].ID != 101 || got[1].ID != 103 {
		t.Errorf("kept ids = %d %d, want 101 103", got[0].ID, got[1].ID)
	}
}

func TestMapSport(t *testing.T) {
	tests := []struct {
		typeKey  string
		expected store.Sport
	}{
		{"lap_swimming", store.SportSwim},
		{"open_water_swimming", store.SportSwim},
		{"road_biking", store.SportBike},
		{"cycling", store.SportBike},
		{"indoor_cycling", store.SportBike},
		{"running", store.SportRun},
		{"trail_running", store.SportRun},
		{"strength_training", store.SportOther},
		{"", store.SportOther},
	}

	for _, tt := range tests {
		if got := mapSport(tt.typeKey); got != tt.expected {
			t.Errorf("mapSport(%q) = %s, want %s", tt.typeKey, got, tt.expected)
		}
	}
}

func TestImport(t *testing.T) {
	db, err := store.OpenPath(":memory:")
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	defer db.Close()

	second := validRaw()
	second.ActivityID = 102
	raws := []RawActivity{
		validRaw(),
		second,
		{ActivityID: 0}, // skipped
	}

	imported, skipped, err := Import(db, raws, slog.Default())
	if err != nil {
		t.Fatalf("Import() error: %v", err)
	}
	if imported != 2 || skipped != 1 {
		t.Errorf("Import() = %d imported %d skipped, want 2/1", imported, skipped)
	}

	count, err := db.CountActivities()
	if err != nil {
		t.Fatalf("counting activities: %v", err)
	}
	if count != 2 {
		t.Errorf("stored %d activities, want 2", count)
	}

	last, err := db.GetMeta("last_import_at")
	if err != nil {
		t.Fatalf("reading meta: %v", err)
	}
	if last == "" {
		t.Error("last_import_at not recorded")
	}

	// Re-importing the same feed must not duplicate anything.
	if _, _, err := Import(db, raws, slog.Default()); err != nil {
		t.Fatalf("second Import() error: %v", err)
	}
	count, _ = db.CountActivities()
	if count != 2 {
		t.Errorf("after re-import stored %d activities, want 2", count)
	}
}
