// Package score combines per-dimension signal scores into the single
// composite quality number. Weight tables are configuration; each table sums
// to exactly 1.0 (enforced by model.Config.Validate).
package score

import (
	"math"

	"github.com/avoskres/aiso/internal/model"
)

// Inputs are the per-dimension scores feeding one composite calculation.
// GEO is consulted only when Local is true; FactCheck only when non-nil.
type Inputs struct {
	SEO         int
	Readability int
	Engagement  int
	AEO         int
	GEO         int
	Local       bool
	FactCheck   *int
}

// Scorer computes composite scores from configured weight tables.
type Scorer struct {
	weights model.WeightsConfig
}

// NewScorer creates a composite scorer from the configured weights.
func NewScorer(weights model.WeightsConfig) *Scorer {
	return &Scorer{weights: weights}
}

// Combine blends the dimension scores under the active weight table. The
// plain composite always uses the no-fact-check table; when fact-check
// confidence is supplied the fact-check table produces the primary
// composite-with-fact-check value as well.
func (s *Scorer) Combine(in Inputs) model.CompositeScore {
	out := model.CompositeScore{
		SEO:         clamp(in.SEO),
		Readability: clamp(in.Readability),
		Engagement:  clamp(in.Engagement),
		AEO:         clamp(in.AEO),
	}

	if in.Local {
		geo := clamp(in.GEO)
		out.GEO = &geo
		out.Composite = blend(s.weights.Local, out, geo, 0)
	} else {
		out.Composite = blend(s.weights.National, out, 0, 0)
	}

	if in.FactCheck != nil {
		fc := clamp(*in.FactCheck)
		out.FactCheck = &fc

		var withFC int
		if in.Local {
			withFC = blend(s.weights.LocalFactCheck, out, clamp(in.GEO), fc)
		} else {
			withFC = blend(s.weights.NationalFactCheck, out, 0, fc)
		}
		out.CompositeWithFactCheck = &withFC
	}

	return out
}

func blend(w model.WeightTable, c model.CompositeScore, geo, factCheck int) int {
	sum := w.SEO*float64(c.SEO) +
		w.Readability*float64(c.Readability) +
		w.Engagement*float64(c.Engagement) +
		w.AEO*float64(c.AEO) +
		w.GEO*float64(geo) +
		w.FactCheck*float64(factCheck)
	return clamp(int(math.Round(sum)))
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
