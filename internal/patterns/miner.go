package patterns

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/rapidstack/rapid-insight/internal/models"
)

// Store abstracts persistence for mined patterns.
type Store interface {
	StorePatterns(ctx context.Context, assetID string, patterns []models.FaultPattern) error
}

// Miner mines frequency-based fault patterns from evaluation history. A
// diagnosis that keeps coming back for an asset is a pattern worth surfacing
// on the reporting side even when the latest evaluation looks clean.
type Miner struct {
	store  Store
	logger *slog.Logger
}

// NewMiner constructs a Miner; store may be nil for dry runs.
func NewMiner(logger *slog.Logger, store Store) *Miner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Miner{store: store, logger: logger}
}

// Mine aggregates evaluation records by diagnosis and returns recurring fault
// patterns for the asset, most prevalent first. Records with no diagnosis are
// counted toward prevalence denominators but never form a pattern.
func (m *Miner) Mine(ctx context.Context, assetID string, records []models.EvaluationRecord) ([]models.FaultPattern, error) {
	if len(records) == 0 {
		return nil, nil
	}

	stats := make(map[string]*diagnosisAggregate)
	for _, rec := range records {
		if rec.Diagnosis == "" {
			continue
		}
		agg, ok := stats[rec.Diagnosis]
		if !ok {
			agg = &diagnosisAggregate{component: rec.Component}
			stats[rec.Diagnosis] = agg
		}
		agg.count++
		if rec.CreatedAt.After(agg.lastSeen) {
			agg.lastSeen = rec.CreatedAt
			if rec.Component != "" {
				agg.component = rec.Component
			}
		}
		if severityRank(rec.SeverityLevel) > severityRank(agg.worstSeverity) {
			agg.worstSeverity = rec.SeverityLevel
		}
	}

	patterns := make([]models.FaultPattern, 0, len(stats))
	for diagnosis, agg := range stats {
		patterns = append(patterns, models.FaultPattern{
			ID:            "pattern-" + assetID + "-" + slugify(diagnosis),
			AssetID:       assetID,
			Diagnosis:     diagnosis,
			Component:     agg.component,
			Occurrences:   agg.count,
			Prevalence:    float64(agg.count) / float64(len(records)),
			WorstSeverity: agg.worstSeverity,
			LastSeen:      agg.lastSeen,
		})
	}

	sort.Slice(patterns, func(i, j int) bool {
		if patterns[i].Prevalence != patterns[j].Prevalence {
			return patterns[i].Prevalence > patterns[j].Prevalence
		}
		return patterns[i].Diagnosis < patterns[j].Diagnosis
	})

	if m.store != nil && len(patterns) > 0 {
		if err := m.store.StorePatterns(ctx, assetID, patterns); err != nil {
			m.logger.Warn("pattern store failed", slog.Any("error", err))
		}
	}

	return patterns, nil
}

type diagnosisAggregate struct {
	count         int
	component     string
	worstSeverity models.SeverityLevel
	lastSeen      time.Time
}

func severityRank(level models.SeverityLevel) int {
	switch level {
	case models.SeverityNormal:
		return 1
	case models.SeverityWatch:
		return 2
	case models.SeverityWarning:
		return 3
	case models.SeverityAlarm:
		return 4
	default:
		return 0
	}
}

func slugify(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		default:
			if len(out) > 0 && out[len(out)-1] != '-' {
				out = append(out, '-')
			}
		}
	}
	for len(out) > 0 && out[len(out)-1] == '-' {
		out = out[:len(out)-1]
	}
	return string(out)
}
