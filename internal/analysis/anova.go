// Package analysis runs the one-way ANOVA hypothesis tests over collision
// severity.
package analysis

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrInsufficientData is returned when fewer than two non-empty groups are
// given or the total sample does not exceed the number of groups.
var ErrInsufficientData = errors.New("insufficient data for anova")

// Result is the outcome of a one-way ANOVA.
type Result struct {
	Name      string  `json:"name"`
	F         float64 `json:"f"`
	PValue    float64 `json:"p_value"`
	DFBetween int     `json:"df_between"`
	DFWithin  int     `json:"df_within"`
	N         int     `json:"n"`
	Groups    int     `json:"groups"`
}

// OneWayANOVA tests whether the group means are equal. Empty groups are
// ignored. On ErrInsufficientData the statistic and p-value are NaN. When every group has zero variance the statistic is +Inf if the
// means differ (p = 0) and NaN if they do not.
func OneWayANOVA(groups ...[]float64) (Result, error) {
	var nonEmpty [][]float64
	var all []float64
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		nonEmpty = append(nonEmpty, g)
		all = append(all, g...)
	}

	k, n := len(nonEmpty), len(all)
	if k < 2 || n <= k {
		return Result{F: math.NaN(), PValue: math.NaN(), N: n, Groups: k}, ErrInsufficientData
	}

	grand := stat.Mean(all, nil)
	var ssBetween, ssWithin float64
	for _, g := range nonEmpty {
		mean := stat.Mean(g, nil)
		ssBetween += float64(len(g)) * (mean - grand) * (mean - grand)
		for _, v := range g {
			ssWithin += (v - mean) * (v - mean)
		}
	}

	res := Result{DFBetween: k - 1, DFWithin: n - k, N: n, Groups: k}
	msBetween := ssBetween / float64(res.DFBetween)
	msWithin := ssWithin / float64(res.DFWithin)

	switch {
	case msWithin == 0 && msBetween == 0:
		res.F, res.PValue = math.NaN(), math.NaN()
	case msWithin == 0:
		res.F, res.PValue = math.Inf(1), 0
	default:
		res.F = msBetween / msWithin
		dist := distuv.F{D1: float64(res.DFBetween), D2: float64(res.DFWithin)}
		res.PValue = dist.Survival(res.F)
	}
	return res, nil
}
