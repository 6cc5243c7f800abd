package engine

import (
	"time"

	"github.com/ekurt/newspulse/internal/contracts"
)

// Engine scores news events against candle history.
// Stateless beyond the lexicon; safe for concurrent use.
type Engine struct {
	estimator *Estimator
}

// New creates an engine with the default lexicon
func New() *Engine {
	return &Engine{estimator: NewEstimator()}
}

// ScoreEvent builds a provisional record from a news event and the
// symbol's candle series. Pure: no I/O, no clock reads beyond the
// caller-supplied now. A nil series or an unalignable timestamp still
// yields a record, with nil returns and the expected impact standing
// alone.
func (e *Engine) ScoreEvent(event contracts.NewsEvent, series *contracts.CandleSeries, now time.Time) *contracts.ImpactRecord {
	rec := &contracts.ImpactRecord{
		Symbol:      event.Symbol,
		Headline:    event.Headline,
		Type:        event.Category,
		PublishedAt: event.PublishedAt,
		URL:         event.URL,
		TooEarly:    true,
	}

	var tech Technical
	if series != nil {
		idx := AlignIndex(series.Times, event.PublishedAt.Unix())
		if idx != NotFound {
			ret := ComputeReturns(series.Closes, idx)
			rec.RetPre5 = ret.Pre5
			rec.Ret1d = ret.Next1
			rec.Ret5d = ret.Next5
			tech = AnalyzeTechnical(series, idx)
		}
	}

	est := e.estimator.Estimate(event.Headline, rec.RetPre5)
	rec.PricedIn = est.PricedIn
	rec.ExpectedImpact = est.ExpectedImpact
	rec.ExpectedDir = est.Direction

	// Provisional: score mirrors the expectation until measured
	rec.RealizedImpact = est.ExpectedImpact
	rec.Score = est.ExpectedImpact
	rec.Confidence = Confidence(nil, nil, est.PricedIn)

	rec.TechnicalContext = tech.ContextString(event.Category)

	return rec
}

// Measure applies the realized outcome to a provisional record.
// At most once: a record with MeasuredAt set is returned unchanged.
// Candle data at measurement time replaces the ingestion-time returns,
// since the post-event days did not exist when the record was scored.
func (e *Engine) Measure(rec *contracts.ImpactRecord, series *contracts.CandleSeries, now time.Time) bool {
	if rec.MeasuredAt != nil {
		return false
	}
	if series == nil {
		return false
	}

	idx := AlignIndex(series.Times, rec.PublishedAt.Unix())
	if idx == NotFound {
		return false
	}

	ret := ComputeReturns(series.Closes, idx)
	rec.RetPre5 = ret.Pre5
	rec.Ret1d = ret.Next1
	rec.Ret5d = ret.Next5

	rUsed := UsedReturn(ret.Next1, ret.Next5)
	if rUsed == nil {
		// Outcome still hasn't printed; leave the record provisional
		return false
	}

	realized := RealizedImpact(ret.Next1, ret.Next5)

	pricedIn := PricedInRealized(ret.Pre5, rUsed)
	if pricedIn == nil {
		// Keep the ingestion-time call when the move is too small to judge
		pricedIn = rec.PricedIn
	}
	rec.PricedIn = pricedIn

	penalty := PricedInPenalty(ret.Pre5, rUsed, pricedIn)

	rec.RealizedImpact = *realized
	rec.Score = CombineScore(realized, rec.ExpectedImpact, penalty)
	rec.Confidence = Confidence(ret.Next1, ret.Next5, pricedIn)
	rec.RealizedDir = RealizedDirection(rUsed)

	tech := AnalyzeTechnical(series, idx)
	trap := IsBullTrap(tech.Breakout, ret.Next1, ret.Next5)
	rec.BullTrap = &trap
	rec.TechnicalContext = tech.ContextString(rec.Type)

	rec.TooEarly = false
	measured := now.UTC()
	rec.MeasuredAt = &measured

	return true
}
