package reliability

import (
	"math"
	"testing"
)

func TestReliabilityPlusCDFIsOne(t *testing.T) {
	betas := []float64{0.5, 1.0, 1.5, 2.5, 3.0}
	etas := []float64{100, 5000, 50000}
	times := []float64{1, 720, 8760, 50000, 120000}

	for _, beta := range betas {
		for _, eta := range etas {
			for _, tt := range times {
				sum := WeibullReliability(tt, beta, eta) + WeibullCDF(tt, beta, eta)
				if math.Abs(sum-1) > 1e-9 {
					t.Fatalf("R+F=%v for t=%v beta=%v eta=%v", sum, tt, beta, eta)
				}
			}
		}
	}
}

func TestHazardEqualsPDFOverReliability(t *testing.T) {
	for _, tt := range []float64{10, 1000, 40000} {
		h := HazardRate(tt, 1.5, 50000)
		ratio := WeibullPDF(tt, 1.5, 50000) / WeibullReliability(tt, 1.5, 50000)
		if math.Abs(h-ratio) > 1e-9*math.Max(1, h) {
			t.Fatalf("hazard %v != pdf/reliability %v at t=%v", h, ratio, tt)
		}
	}
}

func TestHazardMonotonicity(t *testing.T) {
	times := []float64{100, 1000, 10000, 40000}

	prev := HazardRate(times[0], 2.5, 50000)
	for _, tt := range times[1:] {
		h := HazardRate(tt, 2.5, 50000)
		if h <= prev {
			t.Fatalf("hazard not increasing for beta>1: %v then %v", prev, h)
		}
		prev = h
	}

	prev = HazardRate(times[0], 0.7, 50000)
	for _, tt := range times[1:] {
		h := HazardRate(tt, 0.7, 50000)
		if h >= prev {
			t.Fatalf("hazard not decreasing for beta<1: %v then %v", prev, h)
		}
		prev = h
	}

	base := HazardRate(times[0], 1.0, 50000)
	for _, tt := range times[1:] {
		h := HazardRate(tt, 1.0, 50000)
		if math.Abs(h-base) > 1e-12 {
			t.Fatalf("hazard not constant for beta=1: %v vs %v", h, base)
		}
	}
}

func TestTimeZeroBoundaries(t *testing.T) {
	for _, tt := range []float64{0, -1, -1000} {
		if got := WeibullPDF(tt, 1.5, 50000); got != 0 {
			t.Fatalf("pdf(%v) = %v, want 0", tt, got)
		}
		if got := WeibullCDF(tt, 1.5, 50000); got != 0 {
			t.Fatalf("cdf(%v) = %v, want 0", tt, got)
		}
		if got := WeibullReliability(tt, 1.5, 50000); got != 1 {
			t.Fatalf("reliability(%v) = %v, want 1", tt, got)
		}
		if got := HazardRate(tt, 1.5, 50000); got != 0 {
			t.Fatalf("hazard(%v) = %v, want 0", tt, got)
		}
	}
}
