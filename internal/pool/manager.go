// Package pool maintains the deduplicated working set of scored news
// events and the leaderboard derived from it.
package pool

import (
	"sort"
	"time"

	"github.com/ekurt/newspulse/internal/contracts"
)

// Manager applies the pool invariants: newest-first order, no duplicate
// event keys, bounded size. Pure slice transforms; callers own locking.
type Manager struct {
	capacity int
	topN     int
}

// NewManager creates a pool manager with the given bounds
func NewManager(capacity, topN int) *Manager {
	return &Manager{capacity: capacity, topN: topN}
}

// Merge folds freshly scored records into the existing pool.
// New records are prepended, duplicates resolve first-occurrence-wins so
// an incoming record never overwrites an already-measured one with the
// same key, and the result is cut to capacity.
func (m *Manager) Merge(existing, incoming []*contracts.ImpactRecord) []*contracts.ImpactRecord {
	combined := make([]*contracts.ImpactRecord, 0, len(existing)+len(incoming))

	// Existing first: a record that survived earlier passes (possibly
	// measured) beats a re-scored provisional copy of the same event
	combined = append(combined, existing...)
	combined = append(combined, incoming...)

	seen := make(map[string]struct{}, len(combined))
	merged := make([]*contracts.ImpactRecord, 0, len(combined))

	for _, rec := range combined {
		key := rec.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, rec)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].PublishedAt.After(merged[j].PublishedAt)
	})

	if len(merged) > m.capacity {
		merged = merged[:m.capacity]
	}

	return merged
}

// MeasureEligible selects provisional records old enough to have a
// post-event candle, highest provisional score first, bounded by
// maxItems. minScore and minAgeHours come from engine config.
func (m *Manager) MeasureEligible(items []*contracts.ImpactRecord, now time.Time, minScore int, minAgeHours float64, maxItems int) []*contracts.ImpactRecord {
	eligible := make([]*contracts.ImpactRecord, 0, maxItems)

	for _, rec := range items {
		if rec.MeasuredAt != nil {
			continue
		}
		if rec.Score < minScore {
			continue
		}
		if rec.AgeHours(now) < minAgeHours {
			continue
		}
		eligible = append(eligible, rec)
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Score > eligible[j].Score
	})

	if len(eligible) > maxItems {
		eligible = eligible[:maxItems]
	}

	return eligible
}

// ReduceLeaderboard derives the ranked view: the best-scoring record per
// symbol, ties resolved toward the earlier pool position, sorted by
// score descending and cut to topN.
func (m *Manager) ReduceLeaderboard(items []*contracts.ImpactRecord, asOf time.Time) *contracts.LeaderboardView {
	best := make(map[string]*contracts.ImpactRecord, len(items))
	order := make([]string, 0, len(items))

	for _, rec := range items {
		cur, ok := best[rec.Symbol]
		if !ok {
			best[rec.Symbol] = rec
			order = append(order, rec.Symbol)
			continue
		}
		if rec.Score > cur.Score {
			best[rec.Symbol] = rec
		}
	}

	ranked := make([]*contracts.ImpactRecord, 0, len(order))
	for _, sym := range order {
		ranked = append(ranked, best[sym])
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > m.topN {
		ranked = ranked[:m.topN]
	}

	return &contracts.LeaderboardView{AsOf: asOf.UTC(), Items: ranked}
}
