package service

import (
	"fmt"
	"strings"

	"tricoach/internal/analysis"
)

// AIPrompt renders the brief as a plain-text prompt for an external AI
// coach. The wording keeps every number the engine computed; missing metrics
// are stated as unavailable rather than omitted, so the model doesn't invent
// them.
func AIPrompt(b *Brief) string {
	var sb strings.Builder

	sb.WriteString("You are an experienced triathlon coach. Below is my current training data.\n")
	sb.WriteString("Review it and give me specific, actionable guidance for the next 7 days.\n\n")

	sb.WriteString(fmt.Sprintf("== Training snapshot (%s) ==\n", b.GeneratedAt.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Activities on record: %d\n", b.ActivityCount))
	if counts := b.Triathlon.SportCounts; len(counts) > 0 {
		sb.WriteString(fmt.Sprintf("Recent sessions: %d swim / %d bike / %d run\n",
			counts["swim"], counts["bike"], counts["run"]))
	}
	sb.WriteString("\n")

	sb.WriteString("== Load ==\n")
	writeMetric(&sb, "Acute daily TSS (7d)", b.Load.AcuteDailyTSS, "%.0f")
	writeMetric(&sb, "Chronic daily TSS (28d)", b.Load.ChronicDailyTSS, "%.0f")
	writeMetric(&sb, "ACWR", b.Load.ACWR, "%.2f")
	sb.WriteString(fmt.Sprintf("Injury risk: %s\n", b.Load.Risk))
	if z := b.Load.Zones; z != nil {
		sb.WriteString(fmt.Sprintf("Intensity distribution: %.0f%% Z1-2, %.0f%% Z3, %.0f%% Z4-5\n",
			z.EasyPct, z.TempoPct, z.HardPct))
	} else {
		sb.WriteString("Intensity distribution: unavailable (no heart rate data in window)\n")
	}
	sb.WriteString("\n")

	sb.WriteString("== Efficiency ==\n")
	if ftp := b.Efficiency.FTP; ftp != nil {
		sb.WriteString(fmt.Sprintf("FTP: %.0f W (%s)\n", ftp.Watts, ftp.Source))
	} else {
		sb.WriteString("FTP: unavailable (no power data)\n")
	}
	sb.WriteString(fmt.Sprintf("Bike EF trend: %s\n", b.Efficiency.EFTrend))
	writeMetric(&sb, "Run decoupling avg", b.Efficiency.AvgDecoupling, "%.1f%%")
	writeMetric(&sb, "Swim SWOLF avg", b.Efficiency.AvgSWOLF, "%.0f")
	writeMetric(&sb, "Brick run-pace lag", b.Triathlon.BrickRunLagPct, "%.1f%%")
	sb.WriteString("\n")

	sb.WriteString("== Readiness ==\n")
	sb.WriteString(fmt.Sprintf("HR status: %s\n", b.Readiness.Status))
	writeMetric(&sb, "HR deviation vs baseline", b.Readiness.HRDeviationPct, "%+.1f%%")
	writeMetric(&sb, "Rest days in window", b.Readiness.RestDayPct, "%.0f%%")
	sb.WriteString("\n")

	sb.WriteString("== Season plan ==\n")
	sb.WriteString(fmt.Sprintf("Phase: %s - %s\n", b.Periodization.Phase, b.Periodization.Description))
	if w := b.Periodization.WeeksToRace; w != nil {
		sb.WriteString(fmt.Sprintf("Weeks to race: %.1f\n", *w))
	}
	sb.WriteString(fmt.Sprintf("Phase weekly TSS target: %d (%s)\n",
		b.Periodization.Targets.WeeklyTSS, b.Periodization.Targets.IntensitySplit))
	sb.WriteString("\n")

	sb.WriteString("== Engine recommendation ==\n")
	sb.WriteString(fmt.Sprintf("Next workout: %s, target %d TSS at IF %.2f\n",
		b.Recommendation.Category, b.Recommendation.TargetTSS, b.Recommendation.TargetIF))
	for _, r := range b.Recommendation.Rationale {
		sb.WriteString(fmt.Sprintf("- %s\n", r))
	}
	if len(b.Recommendation.Workouts) > 0 {
		sb.WriteString("Candidate workouts:\n")
		for _, w := range b.Recommendation.Workouts {
			sb.WriteString(fmt.Sprintf("- %s (%d TSS, IF %.2f)\n", w.Name, w.TSS, w.IntensityFactor))
		}
	}
	sb.WriteString("\n")

	if len(b.Notes) > 0 {
		sb.WriteString("== Flags ==\n")
		for _, n := range b.Notes {
			sb.WriteString(fmt.Sprintf("- %s\n", n))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Please cover: (1) whether you agree with the recommendation, ")
	sb.WriteString("(2) how to structure the next 7 days across swim/bike/run, ")
	sb.WriteString("(3) the single biggest limiter to address")
	if b.Periodization.Phase != analysis.PhaseOffSeason {
		sb.WriteString(", (4) anything to adjust given the race timeline")
	}
	sb.WriteString(".\n")

	return sb.String()
}

func writeMetric(sb *strings.Builder, label string, v *float64, format string) {
	if v == nil {
		sb.WriteString(fmt.Sprintf("%s: unavailable\n", label))
		return
	}
	sb.WriteString(fmt.Sprintf("%s: "+format+"\n", label, *v))
}
