package reliability

import "github.com/rapidstack/rapid-insight/internal/models"

// Chart-series builders for the gauge and diagram views. Points are sampled
// on a uniform grid so the UI can render them without resampling.

// BathtubPoint is one sample of the composite bathtub curve.
type BathtubPoint struct {
	PercentLife float64             `json:"percent_life"`
	Infant      float64             `json:"infant"`
	Random      float64             `json:"random"`
	WearOut     float64             `json:"wear_out"`
	Total       float64             `json:"total"`
	Phase       models.BathtubPhase `json:"phase"`
}

// BathtubCurve samples the composite bathtub hazard over [0,100] percent of
// life. Fewer than two points collapses to the default resolution.
func BathtubCurve(points int) []BathtubPoint {
	if points < 2 {
		points = 101
	}
	step := 100.0 / float64(points-1)
	series := make([]BathtubPoint, 0, points)
	for i := 0; i < points; i++ {
		t := float64(i) * step
		series = append(series, BathtubPoint{
			PercentLife: t,
			Infant:      InfantHazard(t),
			Random:      RandomHazard(t),
			WearOut:     WearOutHazard(t),
			Total:       BathtubHazard(t),
			Phase:       PhaseAt(t),
		})
	}
	return series
}

// WeibullPoint is one sample of a Weibull overlay series.
type WeibullPoint struct {
	Hours       float64 `json:"hours"`
	Reliability float64 `json:"reliability"`
	CDF         float64 `json:"cdf"`
	PDF         float64 `json:"pdf"`
	Hazard      float64 `json:"hazard"`
}

// WeibullCurve samples reliability, CDF, PDF, and hazard for the given shape
// and scale from 0 to maxHours. maxHours <= 0 defaults to twice the scale so
// the knee of the curve is always visible.
func WeibullCurve(beta, eta, maxHours float64, points int) []WeibullPoint {
	if points < 2 {
		points = 128
	}
	if maxHours <= 0 {
		maxHours = 2 * eta
	}
	step := maxHours / float64(points-1)
	series := make([]WeibullPoint, 0, points)
	for i := 0; i < points; i++ {
		t := float64(i) * step
		series = append(series, WeibullPoint{
			Hours:       t,
			Reliability: WeibullReliability(t, beta, eta),
			CDF:         WeibullCDF(t, beta, eta),
			PDF:         WeibullPDF(t, beta, eta),
			Hazard:      HazardRate(t, beta, eta),
		})
	}
	return series
}
