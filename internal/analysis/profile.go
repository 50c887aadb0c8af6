package analysis

import "tricoach/internal/store"

// Profile holds the athlete thresholds the derived metrics depend on.
// It is read-only for the duration of one analysis run.
type Profile struct {
	FTPWatts    float64 // 0 = not configured, estimate from activities
	RestingHR   float64
	MaxHR       float64
	ThresholdHR float64
}

// DefaultProfile returns sensible defaults if not configured
func DefaultProfile() Profile {
	return Profile{
		RestingHR:   50,
		MaxHR:       185,
		ThresholdHR: 185 * 0.85,
	}
}

// FTPEstimate is the source and value of a functional threshold power figure.
type FTPEstimate struct {
	Watts          float64
	Source         string // "configured" or "estimated"
	Best20MinWatts *float64
}

// FTPSourceConfigured and FTPSourceEstimated label where an FTP figure came from.
const (
	FTPSourceConfigured = "configured"
	FTPSourceEstimated  = "estimated"
)

// ResolveFTP returns the configured FTP when present, otherwise estimates it
// as 95% of the best 20-minute power observed across cycling activities.
// Returns nil when neither is available.
func ResolveFTP(p Profile, activities []store.Activity) *FTPEstimate {
	if p.FTPWatts > 0 {
		return &FTPEstimate{Watts: p.FTPWatts, Source: FTPSourceConfigured}
	}

	var best *float64
	for _, a := range activities {
		if a.Sport != store.SportBike || a.Best20MinPower == nil || *a.Best20MinPower <= 0 {
			continue
		}
		if best == nil || *a.Best20MinPower > *best {
			v := *a.Best20MinPower
			best = &v
		}
	}
	if best == nil {
		return nil
	}

	return &FTPEstimate{
		Watts:          *best * 0.95,
		Source:         FTPSourceEstimated,
		Best20MinWatts: best,
	}
}
