package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"

	"tricoach/internal/analysis"
	"tricoach/internal/store"
)

// renderBrief builds the scrollable brief content.
func (a *App) renderBrief() string {
	if a.loading {
		return "\n  Generating brief..."
	}
	if a.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", a.err))
	}
	if a.brief == nil || a.brief.ActivityCount == 0 {
		return "\n  No activities yet. Import a Garmin export with: tricoach -import <file.json>"
	}

	var sections []string

	topRow := lipgloss.JoinHorizontal(lipgloss.Top,
		a.renderLoadCard(), "  ", a.renderReadinessCard())
	sections = append(sections, topRow)

	midRow := lipgloss.JoinHorizontal(lipgloss.Top,
		a.renderEfficiencyCard(), "  ", a.renderTriathlonCard())
	sections = append(sections, midRow)

	if hasChartData(a.brief.Load.WeeklyTSS) {
		sections = append(sections, a.renderWeeklyChart())
	}

	sections = append(sections, a.renderPhaseCard())
	sections = append(sections, a.renderRecommendationCard())

	if len(a.brief.Notes) > 0 {
		sections = append(sections, a.renderNotes())
	}

	sections = append(sections, a.renderImportStatus())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *App) renderLoadCard() string {
	title := cardTitleStyle.Render("Training Load")
	load := a.brief.Load

	lines := []string{
		renderMetric("Acute TSS/day (7d)", fmtFloat(load.AcuteDailyTSS, "%.0f")),
		renderMetric("Chronic TSS/day (28d)", fmtFloat(load.ChronicDailyTSS, "%.0f")),
		renderMetric("ACWR", fmtFloat(load.ACWR, "%.2f")),
		renderMetricStyled("Risk", string(load.Risk), riskStyle(load.Risk)),
	}
	if z := load.Zones; z != nil {
		lines = append(lines, "", renderMetric("Z1-2 / Z3 / Z4-5",
			fmt.Sprintf("%.0f%% / %.0f%% / %.0f%%", z.EasyPct, z.TempoPct, z.HardPct)))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(44).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (a *App) renderReadinessCard() string {
	title := cardTitleStyle.Render("Readiness")
	r := a.brief.Readiness

	st := goodStyle
	if r.Status == analysis.HRStatusElevated {
		st = warnStyle
	} else if r.Status == analysis.HRStatusUnknown {
		st = mutedStyle
	}

	lines := []string{
		renderMetricStyled("HR status", string(r.Status), st),
		renderMetric("Recent avg HR (7d)", fmtFloat(r.RecentAvgHR, "%.0f bpm")),
		renderMetric("Baseline avg HR", fmtFloat(r.BaselineAvgHR, "%.0f bpm")),
		renderMetric("Deviation", fmtFloat(r.HRDeviationPct, "%+.1f%%")),
		renderMetric("Rest days", fmtFloat(r.RestDayPct, "%.0f%%")),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(44).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (a *App) renderEfficiencyCard() string {
	title := cardTitleStyle.Render("Efficiency")
	e := a.brief.Efficiency

	ftp := "-"
	if e.FTP != nil {
		ftp = fmt.Sprintf("%.0f W (%s)", e.FTP.Watts, e.FTP.Source)
	}

	lines := []string{
		renderMetric("FTP", ftp),
		renderMetricStyled("Bike EF trend", string(e.EFTrend), trendStyle(e.EFTrend)),
		renderMetric("Run decoupling", fmtFloat(e.AvgDecoupling, "%.1f%%")),
		renderMetric("Swim SWOLF", fmtFloat(e.AvgSWOLF, "%.0f")),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(44).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (a *App) renderTriathlonCard() string {
	title := cardTitleStyle.Render("Multisport")
	t := a.brief.Triathlon

	counts := fmt.Sprintf("%d / %d / %d",
		t.SportCounts[store.SportSwim],
		t.SportCounts[store.SportBike],
		t.SportCounts[store.SportRun])

	lines := []string{
		renderMetric("Swim / bike / run", counts),
		renderMetric("Brick run lag", fmtFloat(t.BrickRunLagPct, "%+.1f%%")),
		renderMetric("Total activities", fmt.Sprintf("%d", a.brief.ActivityCount)),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(44).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (a *App) renderWeeklyChart() string {
	title := cardTitleStyle.Render(fmt.Sprintf("Weekly TSS - last %d weeks", len(a.brief.Load.WeeklyTSS)))

	graph := asciigraph.Plot(a.brief.Load.WeeklyTSS,
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Precision(0),
	)

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph))
}

func (a *App) renderPhaseCard() string {
	title := cardTitleStyle.Render("Season Plan")
	p := a.brief.Periodization

	lines := []string{
		renderMetric("Phase", string(p.Phase)),
	}
	if p.WeeksToRace != nil {
		lines = append(lines, renderMetric("Weeks to race", fmt.Sprintf("%.1f", *p.WeeksToRace)))
	}
	lines = append(lines,
		renderMetric("Weekly TSS target", fmt.Sprintf("%d", p.Targets.WeeklyTSS)),
		renderMetric("Intensity split", p.Targets.IntensitySplit),
		"",
		mutedStyle.Render(p.Description),
		mutedStyle.Render("Focus: "+p.Targets.Focus),
	)

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(90).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (a *App) renderRecommendationCard() string {
	title := cardTitleStyle.Render("Today's Recommendation")
	rec := a.brief.Recommendation

	lines := []string{
		renderMetricStyled("Workout", string(rec.Category), goodStyle),
		renderMetric("Target", fmt.Sprintf("%d TSS at IF %.2f", rec.TargetTSS, rec.TargetIF)),
		"",
	}
	for _, r := range rec.Rationale {
		lines = append(lines, mutedStyle.Render("• "+r))
	}
	if len(rec.Workouts) > 0 {
		lines = append(lines, "", cardTitleStyle.Render("Suggested sessions"))
		for _, w := range rec.Workouts {
			lines = append(lines, fmt.Sprintf("  %s (%d TSS, IF %.2f)", w.Name, w.TSS, w.IntensityFactor))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(90).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (a *App) renderNotes() string {
	title := cardTitleStyle.Render("Coach's Notes")

	var lines []string
	for _, n := range a.brief.Notes {
		lines = append(lines, noteStyle.Render("! "+n))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(90).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (a *App) renderImportStatus() string {
	if a.brief.LastImportAt == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, a.brief.LastImportAt)
	if err != nil {
		return ""
	}
	return statusStyle.Render("Last import " + humanize.Time(t))
}

func riskStyle(r analysis.RiskLevel) lipgloss.Style {
	switch r {
	case analysis.RiskHigh:
		return errorStyle
	case analysis.RiskElevated, analysis.RiskDetraining:
		return warnStyle
	case analysis.RiskOptimal:
		return goodStyle
	default:
		return mutedStyle
	}
}

func trendStyle(t analysis.Trend) lipgloss.Style {
	switch t {
	case analysis.TrendImproving:
		return goodStyle
	case analysis.TrendDeclining:
		return errorStyle
	case analysis.TrendStable:
		return goodStyle
	default:
		return mutedStyle
	}
}

func fmtFloat(v *float64, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}

func hasChartData(values []float64) bool {
	for _, v := range values {
		if v > 0 {
			return true
		}
	}
	return false
}
