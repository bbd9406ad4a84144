package narrative

import (
	"fmt"

	"github.com/rapidstack/rapid-insight/internal/models"
)

// Fixed language tables keyed by the engine's closed enums. Each table is an
// exhaustive switch so an unrecognized value surfaces as explicit wording
// instead of silently borrowing a neighbouring band's language.

// SeverityLanguage carries the words used to scale sentences by severity.
type SeverityLanguage struct {
	Adverb    string
	Adjective string
	Urgency   string
	Color     string
}

func severityLanguage(level models.SeverityLevel) SeverityLanguage {
	switch level {
	case models.SeverityNormal:
		return SeverityLanguage{Adverb: "nominally", Adjective: "normal", Urgency: "routine", Color: "green"}
	case models.SeverityWatch:
		return SeverityLanguage{Adverb: "slightly", Adjective: "elevated", Urgency: "attentive", Color: "yellow"}
	case models.SeverityWarning:
		return SeverityLanguage{Adverb: "significantly", Adjective: "serious", Urgency: "urgent", Color: "orange"}
	case models.SeverityAlarm:
		return SeverityLanguage{Adverb: "severely", Adjective: "critical", Urgency: "immediate", Color: "red"}
	default:
		return SeverityLanguage{Adverb: "indeterminately", Adjective: fmt.Sprintf("unrecognized (%s)", level), Urgency: "review", Color: "gray"}
	}
}

func healthSummary(stage models.HealthStage) string {
	switch stage {
	case models.StageHealthy:
		return "operating within normal parameters with no significant degradation detected."
	case models.StageDegrading:
		return "showing measurable degradation that warrants scheduled attention."
	case models.StageUnstable:
		return "exhibiting unstable behavior with accelerating deterioration."
	case models.StageCritical:
		return "in a critical condition with a high probability of functional failure."
	case models.StageBlocked:
		return "not assessable because data quality blocked the analysis pipeline."
	default:
		return fmt.Sprintf("in an unrecognized health stage (%s).", stage)
	}
}

func healthVerbPhrase(stage models.HealthStage) string {
	switch stage {
	case models.StageHealthy:
		return "is healthy"
	case models.StageDegrading:
		return "is degrading"
	case models.StageUnstable:
		return "is unstable"
	case models.StageCritical:
		return "is critical"
	case models.StageBlocked:
		return "could not be assessed"
	default:
		return fmt.Sprintf("is in an unrecognized stage (%s)", stage)
	}
}

// TrendLanguage describes one trend class for prose and iconography.
type TrendLanguage struct {
	Description string
	Urgency     string
	Arrow       string
}

func trendLanguage(class models.TrendClass) TrendLanguage {
	switch class {
	case models.TrendStable:
		return TrendLanguage{Description: "Vibration levels are holding steady with no sustained directional movement.", Urgency: "low", Arrow: "→"}
	case models.TrendDrift:
		return TrendLanguage{Description: "Vibration levels are drifting upward at a slow, consistent rate.", Urgency: "medium", Arrow: "↗"}
	case models.TrendAccelerating:
		return TrendLanguage{Description: "Vibration levels are rising at an accelerating rate.", Urgency: "high", Arrow: "⤴"}
	case models.TrendStep:
		return TrendLanguage{Description: "Vibration levels shifted abruptly in a step change.", Urgency: "high", Arrow: "⇧"}
	case models.TrendChaotic:
		return TrendLanguage{Description: "Vibration levels are fluctuating erratically without a coherent trend.", Urgency: "critical", Arrow: "∿"}
	default:
		return TrendLanguage{Description: fmt.Sprintf("Trend class %q is not recognized.", string(class)), Urgency: "review", Arrow: "?"}
	}
}

// StabilityLanguage describes one entropy-stability state.
type StabilityLanguage struct {
	Narrative  string
	BadgeColor string
}

func stabilityLanguage(state models.StabilityState) StabilityLanguage {
	switch state {
	case models.StabilityStable:
		return StabilityLanguage{Narrative: "Signal entropy is steady; the underlying process is well behaved.", BadgeColor: "green"}
	case models.StabilityDrifting:
		return StabilityLanguage{Narrative: "Signal entropy is drifting, indicating slow changes in the underlying dynamics.", BadgeColor: "yellow"}
	case models.StabilityDestabilizing:
		return StabilityLanguage{Narrative: "Signal entropy is climbing; the system is losing dynamical stability.", BadgeColor: "orange"}
	case models.StabilityChaotic:
		return StabilityLanguage{Narrative: "Signal entropy indicates chaotic behavior in the measured process.", BadgeColor: "red"}
	case models.StabilityCriticalInst:
		return StabilityLanguage{Narrative: "Signal entropy indicates critical instability; immediate review is advised.", BadgeColor: "red"}
	default:
		return StabilityLanguage{Narrative: fmt.Sprintf("Stability state %q is not recognized.", string(state)), BadgeColor: "gray"}
	}
}

func bathtubClause(phase models.BathtubPhase) string {
	switch phase {
	case models.PhaseInfantMortality:
		return "early in its service life, where infant-mortality failures dominate"
	case models.PhaseUsefulLife:
		return "in the flat useful-life region of the bathtub curve, where failures are largely random"
	case models.PhaseWearOut:
		return "in the wear-out region of the bathtub curve, where age-related failure mechanisms dominate"
	default:
		return fmt.Sprintf("in an unrecognized lifecycle phase (%s)", phase)
	}
}

func escalationNarrative(level models.EscalationLevel) string {
	switch level {
	case models.EscalationLevel0:
		return "No escalation is required; routine monitoring continues."
	case models.EscalationLevel1:
		return "Low escalation: the condition has been placed on the maintenance watchlist."
	case models.EscalationLevel2:
		return "Moderate escalation: planning and resourcing for an intervention are underway."
	case models.EscalationLevel3:
		return "High escalation: intervention has been prioritized with management visibility."
	case "Critical":
		return "Critical escalation: the asset is under continuous supervision pending intervention."
	default:
		return fmt.Sprintf("Escalation level: %s.", string(level))
	}
}

// Confidence bands at 0.85 / 0.65 / 0.45.

// ConfidenceQualifier returns the noun-phrase form, e.g. "high confidence".
func ConfidenceQualifier(confidence float64) string {
	switch {
	case confidence >= 0.85:
		return "high confidence"
	case confidence >= 0.65:
		return "moderate confidence"
	case confidence >= 0.45:
		return "low confidence"
	default:
		return "very low confidence"
	}
}

func confidenceClause(confidence float64) string {
	switch {
	case confidence >= 0.85:
		return "with high confidence"
	case confidence >= 0.65:
		return "with moderate confidence"
	case confidence >= 0.45:
		return "with low confidence"
	default:
		return "inconclusively; data quality is insufficient for a dependable diagnosis"
	}
}

// Quality bands at 0.95 / 0.85 / 0.70 / 0.50.
func qualityClause(score float64) string {
	switch {
	case score >= 0.95:
		return "excellent, fully suitable for automated diagnosis"
	case score >= 0.85:
		return "good, suitable for diagnosis with minor reservations"
	case score >= 0.70:
		return "fair; results should be reviewed against recent history"
	case score >= 0.50:
		return "poor; findings carry reduced confidence"
	default:
		return "insufficient for dependable analysis"
	}
}

// RUL bands at 7 / 30 / 90 days. A nil RUL is reported as not estimable
// regardless of any probability figures elsewhere in the result.
func rulStatement(rulDays *float64) string {
	if rulDays == nil {
		return "Remaining useful life could not be estimated from the available data."
	}
	days := *rulDays
	switch {
	case days < 7:
		return fmt.Sprintf("Estimated remaining useful life is %.0f days. Failure is imminent; intervene immediately.", days)
	case days < 30:
		return fmt.Sprintf("Estimated remaining useful life is %.0f days. Plan an intervention within the month.", days)
	case days < 90:
		return fmt.Sprintf("Estimated remaining useful life is %.0f days. Schedule maintenance within the quarter.", days)
	default:
		return fmt.Sprintf("Estimated remaining useful life is %.0f days. No near-term intervention is required.", days)
	}
}

// P-F narrative bands at 0.25 / 0.55 / 0.80.
func pfNarrative(position float64) string {
	switch {
	case position < 0.25:
		return "The asset is early in the P-F interval; condition monitoring has ample lead time."
	case position < 0.55:
		return "The asset is progressing through the P-F interval; maintenance planning should begin."
	case position < 0.80:
		return "The asset is well into the P-F interval; the window for planned intervention is narrowing."
	default:
		return "The asset is near the end of the P-F interval; functional failure may be imminent."
	}
}
