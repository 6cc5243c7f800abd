// Package metrics derives scoring accuracy statistics from measured
// records. Everything here is read-only over the pool snapshot.
package metrics

import (
	"strings"

	"github.com/ekurt/newspulse/internal/contracts"
)

const highScoreThreshold = 80

// Bucket accumulates hit/miss counts for one record grouping
type Bucket struct {
	Name     string  `json:"name"`
	Total    int     `json:"total"`
	Hits     int     `json:"hits"`
	HitRate  float64 `json:"hitRate"`
	AvgScore float64 `json:"avgScore"`
}

// Report is the full accuracy view served by the metrics endpoint
type Report struct {
	Measured         int      `json:"measured"`
	DirectionCalls   int      `json:"directionCalls"` // records where both sides made a call
	DirectionHits    int      `json:"directionHits"`
	DirectionHitRate float64  `json:"directionHitRate"`
	HighScore        Bucket   `json:"highScore"` // score >= 80 after measurement
	ByCategory       []Bucket `json:"byCategory"`
	BullTraps        Bucket   `json:"bullTraps"`
	PricedIn         Bucket   `json:"pricedIn"`
}

// directionHit: the pre-event call matched the realized move. Records
// where either side abstained (0) are excluded from the denominator.
func directionHit(r *contracts.ImpactRecord) (counted, hit bool) {
	if r.ExpectedDir == 0 || r.RealizedDir == 0 {
		return false, false
	}
	return true, r.ExpectedDir == r.RealizedDir
}

// Compute builds the accuracy report over measured records only
func Compute(items []*contracts.ImpactRecord) *Report {
	rep := &Report{
		HighScore: Bucket{Name: "score>=80"},
		BullTraps: Bucket{Name: "bullTrap"},
		PricedIn:  Bucket{Name: "pricedIn"},
	}

	byCat := map[string]*Bucket{}
	catOrder := []string{}

	for _, r := range items {
		if r.State() != contracts.StateMeasured {
			continue
		}
		rep.Measured++

		counted, hit := directionHit(r)
		if counted {
			rep.DirectionCalls++
			if hit {
				rep.DirectionHits++
			}
		}

		if r.Score >= highScoreThreshold {
			addToBucket(&rep.HighScore, r, counted, hit)
		}
		if r.BullTrap != nil && *r.BullTrap {
			addToBucket(&rep.BullTraps, r, counted, hit)
		}
		if r.PricedIn != nil && *r.PricedIn {
			addToBucket(&rep.PricedIn, r, counted, hit)
		}

		cat := strings.ToLower(strings.TrimSpace(r.Type))
		if cat == "" {
			cat = "uncategorized"
		}
		b, ok := byCat[cat]
		if !ok {
			b = &Bucket{Name: cat}
			byCat[cat] = b
			catOrder = append(catOrder, cat)
		}
		addToBucket(b, r, counted, hit)
	}

	if rep.DirectionCalls > 0 {
		rep.DirectionHitRate = float64(rep.DirectionHits) / float64(rep.DirectionCalls)
	}
	finalizeBucket(&rep.HighScore)
	finalizeBucket(&rep.BullTraps)
	finalizeBucket(&rep.PricedIn)

	rep.ByCategory = make([]Bucket, 0, len(catOrder))
	for _, cat := range catOrder {
		finalizeBucket(byCat[cat])
		rep.ByCategory = append(rep.ByCategory, *byCat[cat])
	}

	return rep
}

func addToBucket(b *Bucket, r *contracts.ImpactRecord, counted, hit bool) {
	b.Total++
	b.AvgScore += float64(r.Score)
	if counted && hit {
		b.Hits++
	}
}

func finalizeBucket(b *Bucket) {
	if b.Total == 0 {
		return
	}
	b.HitRate = float64(b.Hits) / float64(b.Total)
	b.AvgScore /= float64(b.Total)
}
