package reliability

import "github.com/rapidstack/rapid-insight/internal/models"

// PFZone describes one band of the P-F interval.
type PFZone struct {
	Label   string
	Urgency string
}

// P-F interval bands. Right-open except the last, which includes 1.0.
var (
	zoneCBMWindow = PFZone{Label: "CBM window", Urgency: "low"}
	zonePlanNow   = PFZone{Label: "Plan Now", Urgency: "medium"}
	zoneActSoon   = PFZone{Label: "Act Soon", Urgency: "high"}
	zoneCritical  = PFZone{Label: "Critical", Urgency: "critical"}
)

// PFZoneFor classifies a P-F interval position in [0,1].
func PFZoneFor(position float64) PFZone {
	switch {
	case position < 0.33:
		return zoneCBMWindow
	case position < 0.67:
		return zonePlanNow
	case position < 0.85:
		return zoneActSoon
	default:
		return zoneCritical
	}
}

// ScoreToSeverity bands a normalized severity score in [0,1]. The breakpoints
// match the engine's final-severity banding exactly, with no hysteresis.
func ScoreToSeverity(score float64) models.SeverityLevel {
	switch {
	case score >= 0.8:
		return models.SeverityAlarm
	case score >= 0.5:
		return models.SeverityWarning
	case score >= 0.3:
		return models.SeverityWatch
	default:
		return models.SeverityNormal
	}
}

// NowlanHeapPattern is one of the six reference failure-rate-vs-age shapes
// from the Nowlan & Heap reliability-centered-maintenance study, with the
// industry-reference share of failures each pattern accounts for.
type NowlanHeapPattern struct {
	Letter          string
	Description     string
	PopulationShare float64
}

var nowlanHeapTable = map[string]NowlanHeapPattern{
	"A": {Letter: "A", Description: "classic bathtub shape: infant mortality, then a long constant period ending in a wear-out zone", PopulationShare: 0.04},
	"B": {Letter: "B", Description: "constant or slowly rising failure rate ending in a distinct wear-out zone", PopulationShare: 0.02},
	"C": {Letter: "C", Description: "steadily rising failure rate with no identifiable wear-out age", PopulationShare: 0.05},
	"D": {Letter: "D", Description: "low failure rate when new, rising rapidly to a constant level", PopulationShare: 0.07},
	"E": {Letter: "E", Description: "constant failure rate at all ages, failures arrive at random", PopulationShare: 0.14},
	"F": {Letter: "F", Description: "high infant mortality dropping to a constant or slowly rising level", PopulationShare: 0.68},
}

// LookupNowlanHeap returns the reference pattern for a letter A-F. The letter
// comes from the upstream result; this layer only renders the description.
func LookupNowlanHeap(letter string) (NowlanHeapPattern, bool) {
	pattern, ok := nowlanHeapTable[letter]
	return pattern, ok
}
