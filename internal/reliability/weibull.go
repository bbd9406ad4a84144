package reliability

import "math"

// Two-parameter Weibull distribution. Shape (beta) and scale (eta) must be
// strictly positive; the upstream engine owns that contract, so out-of-range
// beta/eta propagate whatever the formulas naturally produce. For t <= 0 all
// functions return their boundary value: no failure probability accrues
// before time zero.

// WeibullPDF returns the failure density at time t.
func WeibullPDF(t, beta, eta float64) float64 {
	if t <= 0 {
		return 0
	}
	x := t / eta
	return (beta / eta) * math.Pow(x, beta-1) * math.Exp(-math.Pow(x, beta))
}

// WeibullCDF returns the cumulative failure probability at time t.
func WeibullCDF(t, beta, eta float64) float64 {
	if t <= 0 {
		return 0
	}
	return 1 - math.Exp(-math.Pow(t/eta, beta))
}

// WeibullReliability returns the survival probability R(t) = 1 - F(t).
func WeibullReliability(t, beta, eta float64) float64 {
	if t <= 0 {
		return 1
	}
	return math.Exp(-math.Pow(t/eta, beta))
}

// HazardRate returns the instantaneous failure rate h(t) = f(t) / R(t).
// Rising for beta > 1, constant at beta = 1, falling for beta < 1.
func HazardRate(t, beta, eta float64) float64 {
	if t <= 0 {
		return 0
	}
	return (beta / eta) * math.Pow(t/eta, beta-1)
}
