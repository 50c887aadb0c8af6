package analysis

import (
	"math"
	"testing"
	"time"

	"tricoach/internal/store"
)

func floatPtr(v float64) *float64 {
	return &v
}

// bikeWithPower builds a ride with a power meter and continuous HR.
func bikeWithPower(durationSec int, np float64) store.Activity {
	a := store.Activity{
		Sport:           store.SportBike,
		Duration:        durationSec,
		NormalizedPower: floatPtr(np),
	}
	a.HRZoneSeconds[1] = float64(durationSec)
	return a
}

func TestTrainingStress(t *testing.T) {
	tests := []struct {
		name     string
		activity store.Activity
		profile  Profile
		expected *float64
		delta    float64
	}{
		{
			name:     "one hour at FTP is exactly 100",
			activity: bikeWithPower(3600, 200),
			profile:  Profile{FTPWatts: 200, ThresholdHR: 160},
			expected: floatPtr(100),
		},
		{
			name:     "sub-threshold ride",
			activity: bikeWithPower(3600, 180),
			profile:  Profile{FTPWatts: 240, ThresholdHR: 160},
			// (3600 * 180 * 0.75) / (240 * 3600) * 100
			expected: floatPtr(56.25),
		},
		{
			name: "HR fallback at threshold",
			activity: store.Activity{
				Sport:     store.SportRun,
				Duration:  3600,
				AverageHR: floatPtr(160),
			},
			profile:  Profile{ThresholdHR: 160},
			expected: floatPtr(100),
		},
		{
			name: "HR fallback scales with duration squared ratio",
			activity: store.Activity{
				Sport:     store.SportRun,
				Duration:  1800,
				AverageHR: floatPtr(160),
			},
			profile:  Profile{ThresholdHR: 160},
			expected: floatPtr(50),
		},
		{
			name: "power wins over HR when both present",
			activity: func() store.Activity {
				a := bikeWithPower(3600, 200)
				a.AverageHR = floatPtr(185)
				return a
			}(),
			profile:  Profile{FTPWatts: 200, ThresholdHR: 160},
			expected: floatPtr(100),
		},
		{
			name: "no power and no HR is undefined",
			activity: store.Activity{
				Sport:    store.SportRun,
				Duration: 3600,
			},
			profile:  Profile{FTPWatts: 200, ThresholdHR: 160},
			expected: nil,
		},
		{
			name: "power without FTP falls back to HR",
			activity: func() store.Activity {
				a := bikeWithPower(3600, 200)
				a.AverageHR = floatPtr(160)
				return a
			}(),
			profile:  Profile{ThresholdHR: 160},
			expected: floatPtr(100),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrainingStress(tt.activity, tt.profile)
			checkFloatPtr(t, "TrainingStress", got, tt.expected, tt.delta)
		})
	}
}

func TestIntensityFactor(t *testing.T) {
	tests := []struct {
		name     string
		activity store.Activity
		profile  Profile
		expected *float64
	}{
		{
			name:     "power based",
			activity: bikeWithPower(3600, 180),
			profile:  Profile{FTPWatts: 240},
			expected: floatPtr(0.75),
		},
		{
			name: "HR based",
			activity: store.Activity{
				Sport:     store.SportRun,
				Duration:  3600,
				AverageHR: floatPtr(144),
			},
			profile:  Profile{ThresholdHR: 160},
			expected: floatPtr(0.9),
		},
		{
			name:     "no data",
			activity: store.Activity{Sport: store.SportRun, Duration: 3600},
			profile:  Profile{FTPWatts: 240, ThresholdHR: 160},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IntensityFactor(tt.activity, tt.profile)
			checkFloatPtr(t, "IntensityFactor", got, tt.expected, 0.001)
		})
	}
}

func TestResolveFTP(t *testing.T) {
	t.Run("configured FTP wins", func(t *testing.T) {
		bike := store.Activity{Sport: store.SportBike, Best20MinPower: floatPtr(300)}
		got := ResolveFTP(Profile{FTPWatts: 250}, []store.Activity{bike})
		if got == nil {
			t.Fatal("ResolveFTP() = nil, want configured estimate")
		}
		if got.Watts != 250 || got.Source != FTPSourceConfigured {
			t.Errorf("ResolveFTP() = %v %s, want 250 %s", got.Watts, got.Source, FTPSourceConfigured)
		}
	})

	t.Run("estimated from best 20-minute power", func(t *testing.T) {
		activities := []store.Activity{
			{Sport: store.SportBike, Best20MinPower: floatPtr(200)},
			{Sport: store.SportBike, Best20MinPower: floatPtr(210)},
			{Sport: store.SportRun, Best20MinPower: floatPtr(400)}, // not a ride, ignored
		}
		got := ResolveFTP(Profile{}, activities)
		if got == nil {
			t.Fatal("ResolveFTP() = nil, want estimate")
		}
		if math.Abs(got.Watts-199.5) > 0.001 {
			t.Errorf("ResolveFTP().Watts = %v, want 199.5", got.Watts)
		}
		if got.Source != FTPSourceEstimated {
			t.Errorf("ResolveFTP().Source = %s, want %s", got.Source, FTPSourceEstimated)
		}
		if got.Best20MinWatts == nil || *got.Best20MinWatts != 210 {
			t.Errorf("ResolveFTP().Best20MinWatts = %v, want 210", got.Best20MinWatts)
		}
	})

	t.Run("no power data anywhere", func(t *testing.T) {
		got := ResolveFTP(Profile{}, []store.Activity{{Sport: store.SportBike}})
		if got != nil {
			t.Errorf("ResolveFTP() = %v, want nil", got)
		}
	})
}

func TestEstimatedDecoupling(t *testing.T) {
	base := func() store.Activity {
		a := store.Activity{
			Sport:        store.SportRun,
			Duration:     3600,
			AverageHR:    floatPtr(150),
			MaxHR:        floatPtr(165),
			AverageSpeed: floatPtr(3.0),
		}
		a.HRZoneSeconds[1] = 3600
		return a
	}

	tests := []struct {
		name     string
		mutate   func(*store.Activity)
		expected *float64
	}{
		{
			name:   "one hour run with moderate drift",
			mutate: func(a *store.Activity) {},
			// (15/150) * (60/120) * 100
			expected: floatPtr(5),
		},
		{
			name: "estimate is capped",
			mutate: func(a *store.Activity) {
				a.Duration = 7200
				a.AverageHR = floatPtr(100)
				a.MaxHR = floatPtr(200)
				a.HRZoneSeconds[1] = 7200
			},
			expected: floatPtr(maxEstimatedDecoupling),
		},
		{
			name:     "too short",
			mutate:   func(a *store.Activity) { a.Duration = 900 },
			expected: nil,
		},
		{
			name:     "no max HR",
			mutate:   func(a *store.Activity) { a.MaxHR = nil },
			expected: nil,
		},
		{
			name:     "no speed",
			mutate:   func(a *store.Activity) { a.AverageSpeed = nil },
			expected: nil,
		},
		{
			name:     "no zone time means no continuous HR",
			mutate:   func(a *store.Activity) { a.HRZoneSeconds[1] = 0 },
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := base()
			tt.mutate(&a)
			got := EstimatedDecoupling(a)
			checkFloatPtr(t, "EstimatedDecoupling", got, tt.expected, 0.001)
		})
	}
}

func TestEfficiencyFactor(t *testing.T) {
	a := store.Activity{
		Sport:        store.SportBike,
		AverageSpeed: floatPtr(8.0),
		AverageHR:    floatPtr(160),
	}
	got := EfficiencyFactor(a)
	checkFloatPtr(t, "EfficiencyFactor", got, floatPtr(0.05), 0.0001)

	a.AverageHR = nil
	if got := EfficiencyFactor(a); got != nil {
		t.Errorf("EfficiencyFactor() without HR = %v, want nil", *got)
	}
}

func TestSWOLF(t *testing.T) {
	t.Run("strokes plus seconds per length", func(t *testing.T) {
		a := store.Activity{
			Sport:          store.SportSwim,
			Duration:       1500,
			Distance:       floatPtr(1000),
			PoolLength:     floatPtr(25),
			TotalStrokes:   floatPtr(800),
			ActiveSwimTime: floatPtr(1400),
		}
		// 40 lengths: 20 strokes/length + 35 s/length
		got := SWOLF(a)
		checkFloatPtr(t, "SWOLF", got, floatPtr(55), 0.001)
	})

	t.Run("default pool length", func(t *testing.T) {
		a := store.Activity{
			Sport:        store.SportSwim,
			Duration:     600,
			Distance:     floatPtr(500), // 20 lengths at the 25 m default
			TotalStrokes: floatPtr(300),
		}
		// 15 strokes/length + 30 s/length
		got := SWOLF(a)
		checkFloatPtr(t, "SWOLF", got, floatPtr(45), 0.001)
	})

	t.Run("lower is better", func(t *testing.T) {
		efficient := store.Activity{
			Sport: store.SportSwim, Duration: 1200,
			Distance: floatPtr(1000), TotalStrokes: floatPtr(600),
		}
		laboured := store.Activity{
			Sport: store.SportSwim, Duration: 1600,
			Distance: floatPtr(1000), TotalStrokes: floatPtr(900),
		}
		e, l := SWOLF(efficient), SWOLF(laboured)
		if e == nil || l == nil {
			t.Fatal("SWOLF() = nil for complete swim data")
		}
		if *e >= *l {
			t.Errorf("efficient SWOLF %v should be below laboured %v", *e, *l)
		}
	})

	t.Run("missing data", func(t *testing.T) {
		tests := []struct {
			name     string
			activity store.Activity
		}{
			{"no strokes", store.Activity{Sport: store.SportSwim, Duration: 600, Distance: floatPtr(500)}},
			{"no distance", store.Activity{Sport: store.SportSwim, Duration: 600, TotalStrokes: floatPtr(300)}},
		}
		for _, tt := range tests {
			if got := SWOLF(tt.activity); got != nil {
				t.Errorf("%s: SWOLF() = %v, want nil", tt.name, *got)
			}
		}
	})
}

func TestComputeActivityMetrics_SportGating(t *testing.T) {
	profile := Profile{FTPWatts: 200, ThresholdHR: 160, MaxHR: 185}

	run := store.Activity{
		Sport:        store.SportRun,
		Duration:     3600,
		AverageHR:    floatPtr(150),
		MaxHR:        floatPtr(165),
		AverageSpeed: floatPtr(3.0),
	}
	run.HRZoneSeconds[1] = 3600

	m := ComputeActivityMetrics(run, profile)
	if m.Decoupling == nil {
		t.Error("run should carry a decoupling estimate")
	}
	if m.EfficiencyFactor != nil {
		t.Error("run should not carry a bike efficiency factor")
	}
	if m.SWOLF != nil {
		t.Error("run should not carry a SWOLF score")
	}

	bike := run
	bike.Sport = store.SportBike
	m = ComputeActivityMetrics(bike, profile)
	if m.EfficiencyFactor == nil {
		t.Error("ride with HR and speed should carry an efficiency factor")
	}
	if m.Decoupling != nil {
		t.Error("ride should not carry a run decoupling estimate")
	}
}

func TestComputeActivityMetrics_Deterministic(t *testing.T) {
	profile := Profile{FTPWatts: 200, ThresholdHR: 160}
	a := bikeWithPower(5400, 190)
	a.AverageHR = floatPtr(155)
	a.AverageSpeed = floatPtr(9.1)

	first := ComputeActivityMetrics(a, profile)
	second := ComputeActivityMetrics(a, profile)

	if *first.TSS != *second.TSS || *first.IntensityFactor != *second.IntensityFactor {
		t.Error("identical inputs must produce identical metrics")
	}
}

func checkFloatPtr(t *testing.T, fn string, got, want *float64, delta float64) {
	t.Helper()
	if want == nil {
		if got != nil {
			t.Errorf("%s() = %v, want nil", fn, *got)
		}
		return
	}
	if got == nil {
		t.Fatalf("%s() = nil, want %v", fn, *want)
	}
	if math.Abs(*got-*want) > delta {
		t.Errorf("%s() = %v, want %v", fn, *got, *want)
	}
}

// day is a fixed reference date for window tests.
var day = time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)
