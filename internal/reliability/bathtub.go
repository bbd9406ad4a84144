package reliability

import (
	"math"

	"github.com/rapidstack/rapid-insight/internal/models"
)

// Illustrative composite bathtub model over percent-of-life t in [0,100].
// It visualises where in the generic lifecycle an asset sits; it is not a fit
// to the asset's own hazard curve.

const (
	infantAmplitude = 2.0
	infantDecay     = 0.08
	randomFloor     = 0.3
	wearOutOnset    = 50.0
	wearOutGain     = 0.005
	wearOutExponent = 1.5

	infantPhaseEnd = 20.0
	usefulPhaseEnd = 65.0
)

// InfantHazard is the early-failure component of the composite curve.
func InfantHazard(t float64) float64 {
	return infantAmplitude * math.Exp(-infantDecay*t)
}

// RandomHazard is the constant random-failure floor.
func RandomHazard(t float64) float64 {
	return randomFloor
}

// WearOutHazard is the late-life component; zero until 50% of life.
func WearOutHazard(t float64) float64 {
	if t <= wearOutOnset {
		return 0
	}
	return wearOutGain * math.Pow(t-wearOutOnset, wearOutExponent)
}

// BathtubHazard is the sum of the three components.
func BathtubHazard(t float64) float64 {
	return InfantHazard(t) + RandomHazard(t) + WearOutHazard(t)
}

// PhaseAt classifies percent-of-life t into the generic lifecycle phase.
func PhaseAt(t float64) models.BathtubPhase {
	switch {
	case t < infantPhaseEnd:
		return models.PhaseInfantMortality
	case t < usefulPhaseEnd:
		return models.PhaseUsefulLife
	default:
		return models.PhaseWearOut
	}
}
