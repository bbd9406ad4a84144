package narrative

import (
	"strings"
	"testing"

	"github.com/rapidstack/rapid-insight/internal/models"
)

func TestConfidenceQualifierBoundary(t *testing.T) {
	if got := ConfidenceQualifier(0.85); got != "high confidence" {
		t.Fatalf("ConfidenceQualifier(0.85) = %q", got)
	}
	if got := ConfidenceQualifier(0.849999); got == "high confidence" {
		t.Fatalf("0.849999 should not band high")
	}
	if got := ConfidenceQualifier(0.65); got != "moderate confidence" {
		t.Fatalf("ConfidenceQualifier(0.65) = %q", got)
	}
	if got := ConfidenceQualifier(0.45); got != "low confidence" {
		t.Fatalf("ConfidenceQualifier(0.45) = %q", got)
	}
	if got := ConfidenceQualifier(0.44); got != "very low confidence" {
		t.Fatalf("ConfidenceQualifier(0.44) = %q", got)
	}
}

func TestConfidenceClauseLowestBandIsInconclusive(t *testing.T) {
	clause := confidenceClause(0.2)
	if !strings.Contains(clause, "inconclusively") || !strings.Contains(clause, "insufficient") {
		t.Fatalf("lowest band clause wrong: %q", clause)
	}
}

func TestQualityClauses(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0.99, "excellent"},
		{0.95, "excellent"},
		{0.90, "good"},
		{0.75, "fair"},
		{0.60, "poor"},
		{0.30, "insufficient"},
	}
	for _, tc := range cases {
		if got := qualityClause(tc.score); !strings.Contains(got, tc.want) {
			t.Fatalf("qualityClause(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestRULStatementBands(t *testing.T) {
	cases := []struct {
		days float64
		want string
	}{
		{3, "intervene immediately"},
		{7, "within the month"},
		{29, "within the month"},
		{30, "within the quarter"},
		{89, "within the quarter"},
		{90, "No near-term intervention"},
	}
	for _, tc := range cases {
		d := tc.days
		if got := rulStatement(&d); !strings.Contains(got, tc.want) {
			t.Fatalf("rulStatement(%v) = %q, want %q", tc.days, got, tc.want)
		}
	}
}

func TestPFNarrativeBands(t *testing.T) {
	cases := []struct {
		position float64
		want     string
	}{
		{0.1, "ample lead time"},
		{0.25, "planning should begin"},
		{0.55, "narrowing"},
		{0.80, "imminent"},
		{1.0, "imminent"},
	}
	for _, tc := range cases {
		if got := pfNarrative(tc.position); !strings.Contains(got, tc.want) {
			t.Fatalf("pfNarrative(%v) = %q, want %q", tc.position, got, tc.want)
		}
	}
}

func TestLanguageTablesCoverAllEnumValues(t *testing.T) {
	for _, level := range []models.SeverityLevel{models.SeverityNormal, models.SeverityWatch, models.SeverityWarning, models.SeverityAlarm} {
		if lang := severityLanguage(level); lang.Adjective == "" || lang.Color == "gray" {
			t.Fatalf("severity %s not covered", level)
		}
	}
	for _, stage := range []models.HealthStage{models.StageHealthy, models.StageDegrading, models.StageUnstable, models.StageCritical, models.StageBlocked} {
		if strings.Contains(healthSummary(stage), "unrecognized") {
			t.Fatalf("health stage %s not covered", stage)
		}
		if strings.Contains(healthVerbPhrase(stage), "unrecognized") {
			t.Fatalf("health verb phrase %s not covered", stage)
		}
	}
	for _, class := range []models.TrendClass{models.TrendStable, models.TrendDrift, models.TrendAccelerating, models.TrendStep, models.TrendChaotic} {
		if lang := trendLanguage(class); lang.Urgency == "review" {
			t.Fatalf("trend class %s not covered", class)
		}
	}
	for _, state := range []models.StabilityState{models.StabilityStable, models.StabilityDrifting, models.StabilityDestabilizing, models.StabilityChaotic, models.StabilityCriticalInst} {
		if lang := stabilityLanguage(state); lang.BadgeColor == "gray" {
			t.Fatalf("stability state %s not covered", state)
		}
	}
	for _, phase := range []models.BathtubPhase{models.PhaseInfantMortality, models.PhaseUsefulLife, models.PhaseWearOut} {
		if strings.Contains(bathtubClause(phase), "unrecognized") {
			t.Fatalf("bathtub phase %s not covered", phase)
		}
	}
}
