// Package summary derives human-scale equivalences from projection
// results, turning abstract tons of CO2 into relatable facts like
// "equivalent to removing 10,000 cars".
package summary

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/harsahib2907/climate-policy-simulator/internal/sim"
)

// Equivalence is one derived fact. It is stateless and recomputable from
// a ProjectionResult at any time.
type Equivalence struct {
	Metric      string  `json:"metric"`
	Value       float64 `json:"value"`
	HumanPhrase string  `json:"human_phrase"`
}

// Metric names, in the order Summarize emits them.
const (
	MetricCarsRemoved   = "cars_removed"
	MetricTreeSeedlings = "tree_seedlings"
	MetricHomesPowered  = "homes_powered"
	MetricTreesPlanted  = "trees_planted"
)

// Factors maps each equivalence metric to its conversion constant in tons
// CO2 per unit-year. A missing or non-positive factor omits that single
// equivalence rather than failing the summary; partial results are
// acceptable here since the caller renders whichever facts are present.
type Factors map[string]float64

// DefaultFactors returns the stock conversion table (EPA equivalency
// calculator figures).
func DefaultFactors() Factors {
	return Factors{
		MetricCarsRemoved:   4.6,   // tons CO2 per passenger car per year
		MetricTreeSeedlings: 0.06,  // tons CO2 absorbed per seedling over 10 years
		MetricHomesPowered:  7.5,   // tons CO2 per home's electricity per year
		MetricTreesPlanted:  1,     // identity: plantation units pass through
	}
}

// minMeaningfulTons suppresses equivalences for trivially small avoided
// amounts, where the derived numbers become meaninglessly small.
const minMeaningfulTons = 1.0

// Summarizer derives equivalences using a fixed factor table.
type Summarizer struct {
	factors Factors
}

func NewSummarizer(factors Factors) *Summarizer {
	if factors == nil {
		factors = DefaultFactors()
	}
	return &Summarizer{factors: factors}
}

// Summarize never fails for a valid ProjectionResult. Facts whose factor
// is unavailable are dropped from the sequence, and the rest are returned
// in a stable order.
func (s *Summarizer) Summarize(result *sim.ProjectionResult) []Equivalence {
	if result == nil || len(result.Points) == 0 {
		return nil
	}

	avoided := result.CumulativeAvoidedCO2()
	years := float64(result.HorizonYears)

	out := make([]Equivalence, 0, 4)

	if avoided >= minMeaningfulTons {
		if cars, ok := s.divide(MetricCarsRemoved, avoided/years); ok {
			out = append(out, Equivalence{
				Metric:      MetricCarsRemoved,
				Value:       cars,
				HumanPhrase: fmt.Sprintf("equivalent to removing %s cars from the road", formatCount(cars)),
			})
		}
		if seedlings, ok := s.divide(MetricTreeSeedlings, avoided); ok {
			out = append(out, Equivalence{
				Metric:      MetricTreeSeedlings,
				Value:       seedlings,
				HumanPhrase: fmt.Sprintf("equivalent to %s tree seedlings grown for 10 years", formatCount(seedlings)),
			})
		}
		if homes, ok := s.divide(MetricHomesPowered, avoided/years); ok {
			out = append(out, Equivalence{
				Metric:      MetricHomesPowered,
				Value:       homes,
				HumanPhrase: fmt.Sprintf("equivalent to the yearly electricity of %s homes", formatCount(homes)),
			})
		}
	}

	if planted := result.Policy.TreePlantationRate * (years - 1); planted > 0 {
		if factor, ok := s.factors[MetricTreesPlanted]; ok && factor > 0 {
			out = append(out, Equivalence{
				Metric:      MetricTreesPlanted,
				Value:       planted,
				HumanPhrase: fmt.Sprintf("%s tree cover units added over the horizon", formatCount(planted)),
			})
		}
	}

	return out
}

// divide applies a factor, guarding against missing factors and numeric
// blowups.
func (s *Summarizer) divide(metric string, tons float64) (float64, bool) {
	factor, ok := s.factors[metric]
	if !ok || factor <= 0 {
		return 0, false
	}
	v := tons / factor
	if math.IsNaN(v) || math.IsInf(v, 0) {
		log.Warn().Str("metric", metric).Msg("equivalence overflow, dropping")
		return 0, false
	}
	return v, true
}

// formatCount renders a rounded count with thousands separators, scaling
// to "~X.X million" for large values.
func formatCount(v float64) string {
	if v >= 1_000_000 {
		return fmt.Sprintf("~%.1f million", v/1_000_000)
	}

	n := int64(math.Round(v))
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	var parts []byte
	digits := fmt.Sprintf("%d", n)
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			parts = append(parts, ',')
		}
		parts = append(parts, d)
	}
	return string(parts)
}
