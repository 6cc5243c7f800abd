package contracts

import (
	"fmt"
	"strings"
	"time"
)

// NewsEvent is a raw headline for one symbol before scoring.
// Immutable once created.
type NewsEvent struct {
	Symbol      string    `json:"symbol"`
	Headline    string    `json:"headline"`
	Category    string    `json:"category,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
	URL         string    `json:"url,omitempty"`
}

// RecordState is the two-phase lifecycle state of an ImpactRecord
type RecordState int

const (
	// StateProvisional: scored on pre-event signal only, awaiting measurement
	StateProvisional RecordState = iota
	// StateMeasured: realized outcome applied; terminal, never re-measured
	StateMeasured
)

func (s RecordState) String() string {
	if s == StateMeasured {
		return "measured"
	}
	return "provisional"
}

// ImpactRecord is the central entity: one scored news event.
// Fractional returns use 0.05 == +5%. Nil return fields mean the candle
// series lacked enough history in that direction, never an error.
type ImpactRecord struct {
	Symbol      string    `json:"symbol"`
	Headline    string    `json:"headline"`
	Type        string    `json:"type,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
	URL         string    `json:"url,omitempty"`

	RetPre5 *float64 `json:"retPre5"`
	Ret1d   *float64 `json:"ret1d"`
	Ret5d   *float64 `json:"ret5d"`

	PricedIn       *bool `json:"pricedIn"`
	ExpectedImpact int   `json:"expectedImpact"` // [45,95], fixed at ingestion
	RealizedImpact int   `json:"realizedImpact"` // [50,100] once measured, else ExpectedImpact
	Score          int   `json:"score"`          // the field consumers rank on
	Confidence     int   `json:"confidence"`     // [0,100], grows with outcome data

	TooEarly   bool       `json:"tooEarly"`
	MeasuredAt *time.Time `json:"measuredAt,omitempty"`

	// Direction calls, -1/0/1; used by the accuracy metrics only
	ExpectedDir int `json:"expectedDir,omitempty"`
	RealizedDir int `json:"realizedDir,omitempty"`

	BullTrap *bool `json:"bullTrap,omitempty"`

	TechnicalContext string `json:"technicalContext,omitempty"`
}

// State returns the lifecycle state
func (r *ImpactRecord) State() RecordState {
	if r.MeasuredAt != nil && !r.TooEarly {
		return StateMeasured
	}
	return StateProvisional
}

// Key returns the dedup key: records with the same symbol, publication
// instant, and normalized headline are the same event.
func (r *ImpactRecord) Key() string {
	return fmt.Sprintf("%s|%s|%s",
		strings.ToLower(strings.TrimSpace(r.Symbol)),
		r.PublishedAt.UTC().Format(time.RFC3339),
		strings.ToLower(strings.TrimSpace(r.Headline)),
	)
}

// AgeHours returns the event age at the given instant
func (r *ImpactRecord) AgeHours(now time.Time) float64 {
	return now.Sub(r.PublishedAt).Hours()
}

// Pool is the deduplicated, capacity-bounded working set of scored events
type Pool struct {
	AsOf  time.Time       `json:"asOf"`
	Items []*ImpactRecord `json:"items"`
}

// LeaderboardView is the derived ranked view: at most one record per
// symbol, sorted descending by score
type LeaderboardView struct {
	AsOf  time.Time       `json:"asOf"`
	Items []*ImpactRecord `json:"items"`
}
