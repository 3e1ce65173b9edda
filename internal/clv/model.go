package clv

import (
	"fmt"
	"math"
	"strings"

	"github.com/XavierBriggs/Themis/internal/odds"
	"github.com/XavierBriggs/Themis/pkg/models"
	"github.com/shopspring/decimal"
)

// ComputeCLV returns closing-line value as a percent move in implied
// probability. Positive means the market moved toward the bettor's side
// after the bet was booked.
func ComputeCLV(openingOdds, closingOdds int) float64 {
	openingProb := odds.ImpliedProbability(openingOdds)
	closingProb := odds.ImpliedProbability(closingOdds)
	if openingProb == 0 {
		return 0
	}
	return (closingProb - openingProb) / openingProb * 100
}

// ExpectedValue converts a CLV percent into a currency edge on the stake.
func ExpectedValue(stake decimal.Decimal, clvPercent float64) decimal.Decimal {
	return stake.Mul(decimal.NewFromFloat(clvPercent / 100)).Round(2)
}

// Confidence grades how far the line-adjustment model had to extrapolate.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// marketFamily groups stat markets that move at similar per-unit rates.
type marketFamily string

const (
	familyBasketballScoring  marketFamily = "basketball_scoring"
	familyBasketballAncillary marketFamily = "basketball_ancillary"
	familyBasketballCombined marketFamily = "basketball_combined"
	familyFootballYardage    marketFamily = "football_yardage"
	familyFootballReceptions marketFamily = "football_receptions"
	familyFootballTouchdowns marketFamily = "football_touchdowns"
	familyBaseballCounting   marketFamily = "baseball_counting"
	familyHockeyCounting     marketFamily = "hockey_counting"
	familyGameTotal          marketFamily = "game_total"
	familyDefault            marketFamily = "default"
)

// baseRates is the empirically-calibrated per-unit probability swing for
// each (sport, market family). One unit of line movement in a sparse
// market (rebounds, receptions) shifts win probability far more than one
// unit in a dense one (yardage, game totals).
var baseRates = map[models.SportCode]map[marketFamily]float64{
	models.SportNBA: {
		familyBasketballScoring:   0.030,
		familyBasketballAncillary: 0.060,
		familyBasketballCombined:  0.022,
		familyGameTotal:           0.010,
	},
	models.SportNFL: {
		familyFootballYardage:    0.012,
		familyFootballReceptions: 0.070,
		familyFootballTouchdowns: 0.250,
		familyGameTotal:          0.015,
	},
	models.SportMLB: {
		familyBaseballCounting: 0.080,
		familyGameTotal:        0.030,
	},
	models.SportNHL: {
		familyHockeyCounting: 0.080,
		familyGameTotal:      0.040,
	},
}

const defaultBaseRate = 0.040

// referenceBaselines anchor the inverse-magnitude scaling: a family's
// base rate is calibrated at its reference line and scaled up for lower
// lines, down for higher ones.
var referenceBaselines = map[marketFamily]float64{
	familyBasketballScoring:   22.5,
	familyBasketballAncillary: 7.5,
	familyBasketballCombined:  35.5,
	familyFootballYardage:     60.5,
	familyFootballReceptions:  4.5,
	familyFootballTouchdowns:  0.5,
	familyBaseballCounting:    1.5,
	familyHockeyCounting:      2.5,
	familyGameTotal:           45.5,
}

const (
	minRateScale = 0.5
	maxRateScale = 2.5

	edgeBoostThreshold = 2.5 // favorable units before the convex boost kicks in
	edgeBoostPerUnit   = 0.02
	maxEdgeBoost       = 0.12

	minProbability = 0.05
	maxProbability = 0.95
)

func familyFor(sport models.SportCode, stat string) marketFamily {
	if stat == "" {
		return familyGameTotal
	}
	if strings.Contains(stat, "+") {
		if sport == models.SportNBA || sport == models.SportNCAAB {
			return familyBasketballCombined
		}
		return familyDefault
	}
	switch sport {
	case models.SportNBA, models.SportNCAAB:
		if stat == "pts" {
			return familyBasketballScoring
		}
		return familyBasketballAncillary
	case models.SportNFL, models.SportNCAAF:
		switch stat {
		case "rec_yds", "rush_yds", "pass_yds":
			return familyFootballYardage
		case "rec":
			return familyFootballReceptions
		case "td":
			return familyFootballTouchdowns
		}
	case models.SportMLB:
		return familyBaseballCounting
	case models.SportNHL:
		return familyHockeyCounting
	}
	return familyDefault
}

func perUnitRate(sport models.SportCode, family marketFamily, baseline float64) float64 {
	rate := defaultBaseRate
	if families, ok := baseRates[sport]; ok {
		if r, ok := families[family]; ok {
			rate = r
		}
	}

	ref, ok := referenceBaselines[family]
	if !ok || baseline <= 0 {
		return rate
	}
	scale := ref / baseline
	if scale < minRateScale {
		scale = minRateScale
	} else if scale > maxRateScale {
		scale = maxRateScale
	}
	return rate * scale
}

// Adjustment is the model's estimate of market odds at a line the market
// is not currently quoting.
type Adjustment struct {
	EstimatedOdds int
	AdjustedProb  float64
	Confidence    Confidence
	Explanation   string
}

// AdjustLine estimates what currentOdds would be at targetLine instead of
// currentLine. The estimate is advisory, not a market quote; callers must
// weight low-confidence results accordingly.
func AdjustLine(sport models.SportCode, stat string, dir models.OverUnder, currentLine, targetLine float64, currentOdds int) Adjustment {
	currentProb := odds.ImpliedProbability(currentOdds)
	lineDiff := math.Abs(targetLine - currentLine)
	if lineDiff == 0 {
		return Adjustment{
			EstimatedOdds: currentOdds,
			AdjustedProb:  currentProb,
			Confidence:    ConfidenceHigh,
			Explanation:   "market line matches booked line",
		}
	}

	// An Over gets easier as the line drops; an Under gets easier as it
	// rises.
	easier := (dir == models.Over && targetLine < currentLine) ||
		(dir == models.Under && targetLine > currentLine)

	family := familyFor(sport, stat)
	rate := perUnitRate(sport, family, math.Max(currentLine, targetLine))

	adjusted := currentProb
	if easier {
		adjusted *= math.Pow(1+rate, lineDiff)
	} else {
		adjusted *= math.Pow(1-rate, lineDiff)
	}

	// Big favorable moves carry a convexly larger edge than the
	// per-unit law alone implies.
	if easier && lineDiff >= edgeBoostThreshold {
		boost := math.Min(edgeBoostPerUnit*(lineDiff-edgeBoostThreshold), maxEdgeBoost)
		adjusted *= 1 + boost
	}

	adjusted = math.Min(math.Max(adjusted, minProbability), maxProbability)

	direction := "harder"
	if easier {
		direction = "easier"
	}
	return Adjustment{
		EstimatedOdds: odds.ProbabilityToAmerican(adjusted),
		AdjustedProb:  adjusted,
		Confidence:    confidenceFor(lineDiff),
		Explanation: fmt.Sprintf("adjusted %s/%s from line %g to %g (%.1f units %s, rate %.3f/unit)",
			sport, family, currentLine, targetLine, lineDiff, direction, rate),
	}
}

func confidenceFor(lineDiff float64) Confidence {
	switch {
	case lineDiff <= 1:
		return ConfidenceHigh
	case lineDiff <= 3:
		return ConfidenceMedium
	}
	return ConfidenceLow
}
