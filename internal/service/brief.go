package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tricoach/internal/analysis"
	"tricoach/internal/config"
	"tricoach/internal/store"
)

// BriefService assembles the daily coaching brief from the stored feed and
// the athlete configuration.
type BriefService struct {
	store *store.Store
	cfg   *config.Config
}

// NewBriefService creates a brief service.
func NewBriefService(st *store.Store, cfg *config.Config) *BriefService {
	return &BriefService{store: st, cfg: cfg}
}

// Efficiency groups the trend-window efficiency signals.
type Efficiency struct {
	FTP           *analysis.FTPEstimate `json:"ftp"`
	EFTrend       analysis.Trend        `json:"ef_trend"`
	AvgDecoupling *float64              `json:"avg_decoupling_pct"`
	AvgSWOLF      *float64              `json:"avg_swolf"`
}

// Triathlon groups the multisport signals.
type Triathlon struct {
	SportCounts    map[store.Sport]int `json:"sport_counts"`
	BrickRunLagPct *float64            `json:"brick_run_lag_pct"`
}

// Brief is one complete coaching brief. Nil fields carry through from the
// analysis layer: missing data stays visibly missing in the export.
type Brief struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`

	Readiness      analysis.Readiness       `json:"readiness"`
	Load           analysis.LoadSummary     `json:"load"`
	Efficiency     Efficiency               `json:"efficiency"`
	Triathlon      Triathlon                `json:"triathlon"`
	Periodization  analysis.PhaseAssignment `json:"periodization"`
	Recommendation analysis.Recommendation  `json:"recommendation"`
	Notes          []string                 `json:"coaching_notes"`

	ActivityCount int    `json:"activity_count"`
	LastImportAt  string `json:"last_import_at,omitempty"`
}

// Generate builds the brief for the given day. It reads the full activity
// history (baselines and the FTP estimate need more than the trend window)
// and recomputes every derived metric from scratch.
func (s *BriefService) Generate(today time.Time) (*Brief, error) {
	activities, err := s.store.ListActivities()
	if err != nil {
		return nil, fmt.Errorf("loading activities: %w", err)
	}

	profile := analysis.Profile{
		FTPWatts:    s.cfg.Athlete.FTPWatts,
		RestingHR:   s.cfg.Athlete.RestingHR,
		MaxHR:       s.cfg.Athlete.MaxHR,
		ThresholdHR: s.cfg.Athlete.ThresholdHR,
	}

	ftp := analysis.ResolveFTP(profile, activities)
	if ftp != nil {
		profile.FTPWatts = ftp.Watts
	}

	withMetrics := make([]analysis.ActivityWithMetrics, len(activities))
	for i, a := range activities {
		withMetrics[i] = analysis.ActivityWithMetrics{
			Activity: a,
			Metrics:  analysis.ComputeActivityMetrics(a, profile),
		}
	}

	window := s.cfg.Analysis.TrendWindowDays
	load := analysis.Aggregate(withMetrics, today, window)

	efficiency := Efficiency{
		FTP:     ftp,
		EFTrend: analysis.EFTrend(withMetrics, today, window),
		AvgDecoupling: analysis.WindowAverage(withMetrics, store.SportRun,
			func(m analysis.ActivityMetrics) *float64 { return m.Decoupling }, today, window),
		AvgSWOLF: analysis.WindowAverage(withMetrics, store.SportSwim,
			func(m analysis.ActivityMetrics) *float64 { return m.SWOLF }, today, window),
	}

	phase := analysis.AssignPhase(s.raceInfo(), today)

	rec, err := analysis.Recommend(analysis.RecommendationInput{
		Load:          load,
		Phase:         phase,
		EFTrend:       efficiency.EFTrend,
		AvgDecoupling: efficiency.AvgDecoupling,
	})
	if err != nil {
		return nil, err
	}

	brief := &Brief{
		ID:          uuid.NewString(),
		GeneratedAt: today,

		Readiness:      analysis.AssessReadiness(activities, today, window),
		Load:           load,
		Efficiency:     efficiency,
		Triathlon:      triathlonSummary(activities, today, window),
		Periodization:  phase,
		Recommendation: rec,

		ActivityCount: len(activities),
	}
	brief.Notes = coachingNotes(brief)

	if last, err := s.store.GetMeta("last_import_at"); err == nil {
		brief.LastImportAt = last
	}

	return brief, nil
}

// raceInfo converts the configured race into the analysis type. Nil when no
// race is planned.
func (s *BriefService) raceInfo() *analysis.RaceInfo {
	date := s.cfg.RaceDate()
	if date == nil {
		return nil
	}
	return &analysis.RaceInfo{
		Date:     *date,
		Type:     s.cfg.Race.Type,
		Priority: analysis.RacePriority(s.cfg.Race.Priority),
	}
}

// triathlonSummary counts activities per sport inside the trend window and
// measures brick performance over the full history.
func triathlonSummary(activities []store.Activity, today time.Time, windowDays int) Triathlon {
	cutoff := today.AddDate(0, 0, -windowDays)

	counts := make(map[store.Sport]int)
	for _, a := range activities {
		if a.StartTime.After(today) || !a.StartTime.After(cutoff) {
			continue
		}
		counts[a.Sport]++
	}

	return Triathlon{
		SportCounts:    counts,
		BrickRunLagPct: analysis.BrickPerformance(activities),
	}
}

// JSON renders the brief as indented JSON for the machine export.
func (b *Brief) JSON() ([]byte, error) {
	out, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding brief: %w", err)
	}
	return out, nil
}
