package analysis

import "time"

// Phase is a position on the race-date-driven periodization timeline.
type Phase string

const (
	PhaseOffSeason Phase = "OFF_SEASON"
	PhaseBase      Phase = "BASE"
	PhaseBuild     Phase = "BUILD"
	PhasePeak      Phase = "PEAK"
	PhaseTaper     Phase = "TAPER"
	PhaseRaceWeek  Phase = "RACE_WEEK"
)

// RacePriority ranks how much a race matters. B and C races get a shortened,
// less conservative taper.
type RacePriority string

const (
	PriorityA RacePriority = "A"
	PriorityB RacePriority = "B"
	PriorityC RacePriority = "C"
)

// RaceInfo is the configured target race.
type RaceInfo struct {
	Date     time.Time
	Type     string
	Priority RacePriority
}

// PhaseTargets is the static guidance attached to a phase.
type PhaseTargets struct {
	WeeklyTSS      int      `json:"weekly_tss"`
	IntensitySplit string   `json:"intensity_split"`
	Focus          string   `json:"focus"`
	Workouts       []string `json:"workouts"`
}

// PhaseAssignment is the engine's classification of "today" on the timeline.
// WeeksToRace is nil when no race is configured.
type PhaseAssignment struct {
	Phase       Phase        `json:"phase"`
	WeeksToRace *float64     `json:"weeks_to_race"`
	Description string       `json:"description"`
	Targets     PhaseTargets `json:"targets"`
}

// phaseDescriptions and phaseTargets are immutable reference data,
// initialized once and never mutated during a run.
var phaseDescriptions = map[Phase]string{
	PhaseOffSeason: "Off-season - general fitness, cross-training",
	PhaseBase:      "Base phase - high volume, low intensity, Zone 2 focus",
	PhaseBuild:     "Build phase - sweet spot, tempo, race-specific volume",
	PhasePeak:      "Peak phase - race-specific intensity, VO2 max work",
	PhaseTaper:     "Taper phase - reduce volume 30-50%, maintain intensity",
	PhaseRaceWeek:  "Race week - short openers, rest, final prep",
}

var phaseTargets = map[Phase]PhaseTargets{
	PhaseOffSeason: {
		WeeklyTSS:      300,
		IntensitySplit: "90% Z1-Z2, 10% Z3+",
		Focus:          "General fitness, cross-training, skill work",
		Workouts: []string{
			"Pettit (39 TSS, IF 0.56)",
			"Boarstone (60 TSS, IF 0.68)",
			"Gibbs (75 TSS, IF 0.70)",
		},
	},
	PhaseBase: {
		WeeklyTSS:      400,
		IntensitySplit: "80% Z1-Z2, 20% Z3+",
		Focus:          "Aerobic base, mitochondrial density, fat adaptation",
		Workouts: []string{
			"Warren (60 TSS, IF 0.69) - endurance",
			"Boarstone +3 (88 TSS, IF 0.70) - long endurance",
			"Carson (60 TSS, IF 0.88) - weekly sweet spot",
		},
	},
	PhaseBuild: {
		WeeklyTSS:      450,
		IntensitySplit: "70% Z1-Z2, 30% Z3+",
		Focus:          "Lactate threshold, race-specific intensity",
		Workouts: []string{
			"Antelope (70 TSS, IF 0.89) - sweet spot intervals",
			"Tallac (67 TSS, IF 0.90) - tempo",
			"Warren (60 TSS, IF 0.69) - recovery endurance",
		},
	},
	PhasePeak: {
		WeeklyTSS:      500,
		IntensitySplit: "60% Z1-Z2, 40% Z3+",
		Focus:          "Peak fitness, race-specific power, neuromuscular prep",
		Workouts: []string{
			"Spencer (49 TSS, IF 1.00) - VO2 max",
			"Lamarck (69 TSS, IF 0.95) - threshold",
			"McAdie (71 TSS, IF 0.94) - over-unders",
		},
	},
	PhaseTaper: {
		WeeklyTSS:      250,
		IntensitySplit: "70% Z1-Z2, 30% Z3+ (short bursts)",
		Focus:          "Maintain sharpness, shed fatigue, mental prep",
		Workouts: []string{
			"Truuli -2 (30 TSS, IF 0.70) - opener",
			"Lazy Mountain (24 TSS, IF 0.46) - recovery",
			"Pettit (39 TSS, IF 0.56) - easy spin",
		},
	},
	PhaseRaceWeek: {
		WeeklyTSS:      150,
		IntensitySplit: "80% Z1-Z2, 20% Z3+ (openers only)",
		Focus:          "Rest, pre-race openers, carb loading",
		Workouts: []string{
			"Truuli -2 (30 TSS, IF 0.70) - 2 days before race",
			"Lazy Mountain (24 TSS, IF 0.46) - easy spin",
			"REST - day before race",
		},
	},
}

// secondaryTaper replaces the taper targets for B/C races: shorter and less
// conservative, holding more load through race week.
var secondaryTaper = PhaseTargets{
	WeeklyTSS:      325,
	IntensitySplit: "70% Z1-Z2, 30% Z3+",
	Focus:          "Shortened taper for a B/C race - hold volume, freshen late",
	Workouts: []string{
		"Carson (60 TSS, IF 0.88) - sweet spot maintenance",
		"Truuli -2 (30 TSS, IF 0.70) - opener",
		"Pettit (39 TSS, IF 0.56) - easy spin",
	},
}

// AssignPhase classifies today against the race date. It is a pure function
// of its inputs: there is no hysteresis and no memory of a previous phase.
func AssignPhase(race *RaceInfo, today time.Time) PhaseAssignment {
	if race == nil {
		return assignment(PhaseOffSeason, nil, nil)
	}

	weeks := race.Date.Sub(today).Hours() / 24 / 7
	return assignment(phaseFor(weeks), &weeks, race)
}

// phaseFor maps weeks-to-race onto the fixed phase timeline. A past race
// drops straight back to off-season.
func phaseFor(weeksToRace float64) Phase {
	switch {
	case weeksToRace < 0:
		return PhaseOffSeason
	case weeksToRace < 2:
		return PhaseRaceWeek
	case weeksToRace < 4:
		return PhaseTaper
	case weeksToRace < 8:
		return PhasePeak
	case weeksToRace < 12:
		return PhaseBuild
	case weeksToRace < 20:
		return PhaseBase
	default:
		return PhaseOffSeason
	}
}

func assignment(phase Phase, weeks *float64, race *RaceInfo) PhaseAssignment {
	targets := phaseTargets[phase]
	if phase == PhaseTaper && race != nil && race.Priority != PriorityA {
		targets = secondaryTaper
	}

	return PhaseAssignment{
		Phase:       phase,
		WeeksToRace: weeks,
		Description: phaseDescriptions[phase],
		Targets:     targets,
	}
}
