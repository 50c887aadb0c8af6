package analysis

import (
	"testing"
	"time"
)

func raceIn(weeks float64) *RaceInfo {
	return &RaceInfo{
		Date:     day.Add(time.Duration(weeks * 7 * 24 * float64(time.Hour))),
		Type:     "olympic",
		Priority: PriorityA,
	}
}

func TestAssignPhase(t *testing.T) {
	tests := []struct {
		name     string
		race     *RaceInfo
		expected Phase
	}{
		{"no race planned", nil, PhaseOffSeason},
		{"race far out", raceIn(30), PhaseOffSeason},
		{"base boundary", raceIn(19.5), PhaseBase},
		{"mid base", raceIn(15), PhaseBase},
		{"build", raceIn(10), PhaseBuild},
		{"peak", raceIn(6), PhasePeak},
		{"taper", raceIn(3), PhaseTaper},
		{"race week", raceIn(1), PhaseRaceWeek},
		{"race morning", raceIn(0.1), PhaseRaceWeek},
		{"race already passed", raceIn(-2), PhaseOffSeason},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AssignPhase(tt.race, day)
			if got.Phase != tt.expected {
				t.Errorf("AssignPhase().Phase = %s, want %s", got.Phase, tt.expected)
			}
		})
	}
}

func TestAssignPhase_WeeksToRace(t *testing.T) {
	got := AssignPhase(raceIn(10), day)
	if got.WeeksToRace == nil {
		t.Fatal("WeeksToRace = nil with a race configured")
	}
	if *got.WeeksToRace < 9.99 || *got.WeeksToRace > 10.01 {
		t.Errorf("WeeksToRace = %v, want ~10", *got.WeeksToRace)
	}

	if got := AssignPhase(nil, day); got.WeeksToRace != nil {
		t.Errorf("WeeksToRace = %v without a race, want nil", *got.WeeksToRace)
	}
}

func TestAssignPhase_Targets(t *testing.T) {
	got := AssignPhase(raceIn(10), day)
	if got.Targets.WeeklyTSS != 450 {
		t.Errorf("build weekly TSS target = %d, want 450", got.Targets.WeeklyTSS)
	}
	if got.Description == "" || got.Targets.Focus == "" {
		t.Error("phase assignment must carry description and focus text")
	}
	if len(got.Targets.Workouts) == 0 {
		t.Error("phase targets must suggest workouts")
	}
}

func TestAssignPhase_SecondaryRaceTaper(t *testing.T) {
	primary := AssignPhase(raceIn(3), day)
	if primary.Targets.WeeklyTSS != 250 {
		t.Errorf("A-race taper TSS = %d, want 250", primary.Targets.WeeklyTSS)
	}

	race := raceIn(3)
	race.Priority = PriorityB
	secondary := AssignPhase(race, day)
	if secondary.Phase != PhaseTaper {
		t.Fatalf("Phase = %s, want %s", secondary.Phase, PhaseTaper)
	}
	if secondary.Targets.WeeklyTSS != 325 {
		t.Errorf("B-race taper TSS = %d, want 325", secondary.Targets.WeeklyTSS)
	}

	// The shortened taper only applies to the taper itself.
	race = raceIn(1)
	race.Priority = PriorityC
	raceWeek := AssignPhase(race, day)
	if raceWeek.Targets.WeeklyTSS != 150 {
		t.Errorf("C-race race-week TSS = %d, want 150", raceWeek.Targets.WeeklyTSS)
	}
}

func TestAssignPhase_Idempotent(t *testing.T) {
	race := raceIn(5)
	first := AssignPhase(race, day)
	second := AssignPhase(race, day)
	if first.Phase != second.Phase || *first.WeeksToRace != *second.WeeksToRace {
		t.Error("identical inputs must produce identical assignments")
	}
}
