package models

// NarrativeReport is the six-chapter prose rendering of an AnalysisResult.
// It is derived fresh on every render and never persisted.
type NarrativeReport struct {
	ExecutiveSummary ExecutiveSummary `json:"executive_summary"`
	Findings         Findings         `json:"findings"`
	Trending         Trending         `json:"trending"`
	SystemImpact     SystemImpact     `json:"system_impact"`
	Actions          []PlanItem       `json:"recommended_actions"`
	Prognosis        Prognosis        `json:"prognosis"`
}

// ExecutiveSummary leads the report with the asset's headline state.
type ExecutiveSummary struct {
	Headline            string `json:"headline"`
	PrimaryConcern      string `json:"primary_concern"`
	RecommendedAction   string `json:"recommended_action"`
	Timeframe           string `json:"timeframe"`
	ConfidenceStatement string `json:"confidence_statement"`
}

// Findings reports signal quality and fault-pattern evidence.
type Findings struct {
	DataQuality   string `json:"data_quality"`
	SignalProfile string `json:"signal_profile"`
	FaultFinding  string `json:"fault_finding"`
}

// Trending reports trend shape, stability, and slope context.
type Trending struct {
	TrendNarrative     string `json:"trend_narrative"`
	StabilityNarrative string `json:"stability_narrative"`
	SlopeContext       string `json:"slope_context"`
}

// SystemImpact reports the fused system view and escalation posture.
type SystemImpact struct {
	SSI                  float64 `json:"ssi"`
	ImpactNarrative      string  `json:"impact_narrative"`
	HealthClassification string  `json:"health_classification"`
	EscalationNarrative  string  `json:"escalation_narrative"`
}

// Prognosis reports remaining life and reliability outlook.
type Prognosis struct {
	RULStatement     string `json:"rul_statement"`
	PFStatement      string `json:"pf_statement"`
	WeibullStatement string `json:"weibull_statement"`
	LifecyclePhase   string `json:"lifecycle_phase"`
	FailurePattern   string `json:"failure_pattern"`
	OverallOutlook   string `json:"overall_outlook"`
}
