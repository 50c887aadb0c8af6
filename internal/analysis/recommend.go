package analysis

import (
	"fmt"
	"math"
	"sort"
)

// Category is the recommended workout intensity class.
type Category string

const (
	CategoryRecovery  Category = "RECOVERY"
	CategoryEndurance Category = "ENDURANCE"
	CategoryTempo     Category = "TEMPO"
	CategorySweetSpot Category = "SWEET_SPOT"
)

func validCategory(c Category) bool {
	switch c {
	case CategoryRecovery, CategoryEndurance, CategoryTempo, CategorySweetSpot:
		return true
	}
	return false
}

const (
	// Catalog selection tolerances around the target TSS. The narrow band
	// is widened once before giving up.
	tssTolerance     = 10
	tssToleranceWide = 20

	// Rule thresholds
	maxHardSharePct  = 30 // Z4-5 above this flags excess intensity
	minEasySharePct  = 70 // Z1-2 below this flags a thin aerobic base
	maxDecouplingPct = 5  // decoupling above this flags an efficiency gap
)

// RecommendationInput bundles the aggregated signals the rule cascade
// consumes.
type RecommendationInput struct {
	Load          LoadSummary
	Phase         PhaseAssignment
	EFTrend       Trend
	AvgDecoupling *float64 // run decoupling averaged over the trend window
}

// Recommendation is the engine's single workout-intensity verdict.
type Recommendation struct {
	Category  Category       `json:"category"`
	TargetTSS int            `json:"target_tss"`
	TargetIF  float64        `json:"target_if"`
	Rationale []string       `json:"rationale"`
	Workouts  []CatalogEntry `json:"workouts"`
}

// rule is one predicate/effect pair of the cascade. Rules are evaluated in
// order: the first match fixes category and targets, later matches only
// append their rationale. The most urgent safety concern always wins.
type rule struct {
	name      string
	matches   func(RecommendationInput) bool
	category  Category
	targetTSS int
	targetIF  float64
	rationale func(RecommendationInput) []string
}

var rules = []rule{
	{
		name:      "acwr-high",
		matches:   func(in RecommendationInput) bool { return in.Load.Risk == RiskHigh },
		category:  CategoryRecovery,
		targetTSS: 30,
		targetIF:  0.55,
		rationale: func(in RecommendationInput) []string {
			return []string{
				fmt.Sprintf("ACWR %.2f: high injury risk - prioritize recovery", *in.Load.ACWR),
				"Take a rest day or a very easy spin",
			}
		},
	},
	{
		name:      "acwr-elevated",
		matches:   func(in RecommendationInput) bool { return in.Load.Risk == RiskElevated },
		category:  CategoryEndurance,
		targetTSS: 50,
		targetIF:  0.68,
		rationale: func(in RecommendationInput) []string {
			return []string{
				fmt.Sprintf("ACWR %.2f: elevated risk - stick to endurance pace", *in.Load.ACWR),
				"Build aerobic base without adding stress",
			}
		},
	},
	{
		name: "too-much-intensity",
		matches: func(in RecommendationInput) bool {
			return in.Load.Zones != nil && in.Load.Zones.HardPct > maxHardSharePct
		},
		category:  CategoryEndurance,
		targetTSS: 60,
		targetIF:  0.70,
		rationale: func(in RecommendationInput) []string {
			return []string{
				fmt.Sprintf("%.0f%% of time in Z4-5: too much intensity", in.Load.Zones.HardPct),
				"Need more Zone 2 aerobic base work",
			}
		},
	},
	{
		name: "thin-aerobic-base",
		matches: func(in RecommendationInput) bool {
			return in.Load.Zones != nil && in.Load.Zones.EasyPct < minEasySharePct
		},
		category:  CategoryEndurance,
		targetTSS: 70,
		targetIF:  0.72,
		rationale: func(in RecommendationInput) []string {
			return []string{
				fmt.Sprintf("Only %.0f%% in Z1-2: insufficient aerobic base", in.Load.Zones.EasyPct),
				"Target the 80/20 split - more easy miles",
			}
		},
	},
	{
		name: "efficiency-gap",
		matches: func(in RecommendationInput) bool {
			return in.AvgDecoupling != nil && *in.AvgDecoupling > maxDecouplingPct
		},
		category:  CategorySweetSpot,
		targetTSS: 55,
		targetIF:  0.88,
		rationale: func(in RecommendationInput) []string {
			return []string{
				fmt.Sprintf("Decoupling %.1f%%: endurance efficiency gap", *in.AvgDecoupling),
				"Sweet spot builds sustainable power efficiently",
			}
		},
	},
}

// defaultRule fires only when no flag triggered.
var defaultRule = rule{
	name:      "cleared-for-intensity",
	category:  CategoryTempo,
	targetTSS: 65,
	targetIF:  0.90,
	rationale: func(in RecommendationInput) []string {
		return []string{
			"Strong aerobic base, balanced load - cleared for productive intensity",
			"Ready for tempo or sweet spot work",
		}
	},
}

// Recommend runs the ordered rule cascade over the aggregated signals and
// attaches matching catalog workouts.
func Recommend(in RecommendationInput) (Recommendation, error) {
	var rec Recommendation
	matched := false

	for _, r := range rules {
		if !r.matches(in) {
			continue
		}
		if !matched {
			rec.Category = r.category
			rec.TargetTSS = r.targetTSS
			rec.TargetIF = r.targetIF
			matched = true
		}
		rec.Rationale = append(rec.Rationale, r.rationale(in)...)
	}

	if !matched {
		rec.Category = defaultRule.category
		rec.TargetTSS = defaultRule.targetTSS
		rec.TargetIF = defaultRule.targetIF
		rec.Rationale = defaultRule.rationale(in)
	}

	catalog, err := Catalog()
	if err != nil {
		return Recommendation{}, err
	}
	rec.Workouts = SelectWorkouts(catalog, rec.Category, rec.TargetTSS, rec.TargetIF)

	return rec, nil
}

// SelectWorkouts returns catalog entries of the category whose TSS falls
// within ±10 of the target, ordered by TSS distance then IF distance. When
// nothing qualifies the tolerance widens once to ±20 before an empty slice
// is returned; the category itself is never dropped.
func SelectWorkouts(catalog []CatalogEntry, category Category, targetTSS int, targetIF float64) []CatalogEntry {
	selected := workoutsWithin(catalog, category, targetTSS, tssTolerance)
	if len(selected) == 0 {
		selected = workoutsWithin(catalog, category, targetTSS, tssToleranceWide)
	}

	sort.SliceStable(selected, func(i, j int) bool {
		di := abs(selected[i].TSS - targetTSS)
		dj := abs(selected[j].TSS - targetTSS)
		if di != dj {
			return di < dj
		}
		return math.Abs(selected[i].IntensityFactor-targetIF) < math.Abs(selected[j].IntensityFactor-targetIF)
	})

	return selected
}

func workoutsWithin(catalog []CatalogEntry, category Category, targetTSS, tolerance int) []CatalogEntry {
	var out []CatalogEntry
	for _, e := range catalog {
		if e.Category == category && abs(e.TSS-targetTSS) <= tolerance {
			out = append(out, e)
		}
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
