package models

// SeverityLevel is the engine's four-level severity banding.
type SeverityLevel string

const (
	SeverityNormal  SeverityLevel = "normal"
	SeverityWatch   SeverityLevel = "watch"
	SeverityWarning SeverityLevel = "warning"
	SeverityAlarm   SeverityLevel = "alarm"
)

// HealthStage is the asset's degradation stage. Blocked means the data guard
// aborted the pipeline before any analysis ran.
type HealthStage string

const (
	StageHealthy   HealthStage = "Healthy"
	StageDegrading HealthStage = "Degrading"
	StageUnstable  HealthStage = "Unstable"
	StageCritical  HealthStage = "Critical"
	StageBlocked   HealthStage = "Blocked"
)

// TrendClass categorises the shape of the recent trend.
type TrendClass string

const (
	TrendStable       TrendClass = "Stable"
	TrendDrift        TrendClass = "Drift"
	TrendAccelerating TrendClass = "Accelerating"
	TrendChaotic      TrendClass = "Chaotic"
	TrendStep         TrendClass = "Step"
)

// StabilityState categorises signal-entropy stability.
type StabilityState string

const (
	StabilityStable        StabilityState = "Stable"
	StabilityDrifting      StabilityState = "Drifting"
	StabilityDestabilizing StabilityState = "Destabilizing"
	StabilityChaotic       StabilityState = "Chaotic"
	StabilityCriticalInst  StabilityState = "Critical_Instability"
)

// SystemState is the fused system-level state reported by the fusion stage.
type SystemState string

const (
	SystemStable        SystemState = "stable"
	SystemDegrading     SystemState = "degrading"
	SystemUnstable      SystemState = "unstable"
	SystemCritical      SystemState = "critical"
	SystemProcessDriven SystemState = "process-driven"
)

// EscalationLevel is the health stage's maintenance escalation ladder.
type EscalationLevel string

const (
	EscalationLevel0 EscalationLevel = "Level_0"
	EscalationLevel1 EscalationLevel = "Level_1"
	EscalationLevel2 EscalationLevel = "Level_2"
	EscalationLevel3 EscalationLevel = "Level_3"
)

// BathtubPhase locates the asset on the generic bathtub hazard curve.
type BathtubPhase string

const (
	PhaseInfantMortality BathtubPhase = "infant_mortality"
	PhaseUsefulLife      BathtubPhase = "useful_life"
	PhaseWearOut         BathtubPhase = "wear_out"
)

// StatusLevel is the data guard's verdict on signal quality.
type StatusLevel string

const (
	StatusPass  StatusLevel = "pass"
	StatusWarn  StatusLevel = "warn"
	StatusFail  StatusLevel = "fail"
	StatusBlock StatusLevel = "block"
)

// ReliabilityMetrics carries the engine's condition-adjusted Weibull model.
// BetaAdj and EtaAdjHours are the load-adjusted parameters; both stay
// strictly positive even when they differ from the base values.
type ReliabilityMetrics struct {
	BetaBase            float64      `json:"beta_base"`
	BetaAdj             float64      `json:"beta_adj"`
	EtaBaseHours        float64      `json:"eta_base_hours"`
	EtaAdjHours         float64      `json:"eta_adj_hours"`
	HazardRate          float64      `json:"hazard_rate"`
	BathtubPhase        BathtubPhase `json:"bathtub_phase"`
	PFIntervalPosition  float64      `json:"pf_interval_position"`
	WeibullFailureP30d  float64      `json:"weibull_failure_prob_30d"`
	WeibullRULDays      *float64     `json:"weibull_rul_days"`
	NowlanHeapPattern   string       `json:"nowlan_heap_pattern"`
}

// DataGuardFlags itemises signal defects detected by the data guard.
type DataGuardFlags struct {
	Flatline            bool `json:"flatline"`
	NaNPresent          bool `json:"nan_present"`
	ClippingDetected    bool `json:"clipping_detected"`
	DropoutDetected     bool `json:"dropout_detected"`
	UnitMismatch        bool `json:"unit_mismatch"`
	SamplingRateSuspect bool `json:"sampling_rate_suspect"`
	ShortSignal         bool `json:"short_signal"`
	FrequencyInvalid    bool `json:"frequency_invalid"`
	TimestampGap        bool `json:"timestamp_gap"`
	OutlierBurst        bool `json:"outlier_burst"`
}

// SignalMetrics summarises the raw signal statistics computed by the guard.
type SignalMetrics struct {
	SampleCount int     `json:"sample_count"`
	NaNFraction float64 `json:"nan_fraction"`
	StdDev      float64 `json:"std_dev"`
	RMS         float64 `json:"rms"`
	Peak        float64 `json:"peak"`
	CrestFactor float64 `json:"crest_factor"`
	Kurtosis    float64 `json:"kurtosis"`
	ClipFrac    float64 `json:"clip_fraction"`
}

// DataGuardResult is the data-guard stage output (module 0).
type DataGuardResult struct {
	Module             string         `json:"module"`
	Status             StatusLevel    `json:"status"`
	Block              bool           `json:"block"`
	QualityScore       float64        `json:"quality_score"`
	Flags              DataGuardFlags `json:"flags"`
	Reasons            []string       `json:"reasons"`
	Metrics            SignalMetrics  `json:"metrics"`
	ConfidenceModifier float64        `json:"confidence_modifier"`
}

// TrendResult is the trend-engine stage output (module A).
type TrendResult struct {
	Module              string        `json:"module"`
	OverallRMS          float64       `json:"overall_rms"`
	Peak                float64       `json:"peak"`
	Kurtosis            float64       `json:"kurtosis"`
	CrestFactor         float64       `json:"crest_factor"`
	Baseline            *float64      `json:"baseline"`
	RatioToBaseline     *float64      `json:"ratio_to_baseline"`
	Degradation         float64       `json:"degradation"`
	SeverityScore       float64       `json:"severity_score"`
	SeverityLevel       SeverityLevel `json:"severity_level"`
	TrendClassification string        `json:"trend_classification"`
	RuleIDsTriggered    []string      `json:"rule_ids_triggered"`
}

// MatchedRule is a single initiator-rule hit.
type MatchedRule struct {
	RuleID    string  `json:"rule_id"`
	Initiator string  `json:"initiator"`
	Diagnosis string  `json:"diagnosis"`
	Score     float64 `json:"score"`
}

// InitiatorResult is the fault-initiator stage output (module B).
type InitiatorResult struct {
	Module       string        `json:"module"`
	Component    string        `json:"component"`
	NumMatches   int           `json:"num_matches"`
	MatchedRules []MatchedRule `json:"matched_rules"`
	Confidence   float64       `json:"confidence"`
}

// SlopeResult is the slope-intelligence stage output (module B+). Slope is in
// the log domain.
type SlopeResult struct {
	Module           string     `json:"module"`
	Slope            float64    `json:"slope"`
	SlopeChange      float64    `json:"slope_change"`
	InstabilityIndex float64    `json:"instability_index"`
	TrendClass       TrendClass `json:"trend_class"`
	SeverityScore    float64    `json:"severity_score"`
}

// EntropyResult is the entropy/stability stage output (module B++).
type EntropyResult struct {
	Module         string         `json:"module"`
	SE             float64        `json:"SE"`
	TE             float64        `json:"TE"`
	DE             float64        `json:"DE"`
	DSEDt          float64        `json:"dSE_dt"`
	SI             float64        `json:"SI"`
	StabilityState StabilityState `json:"stability_state"`
	SeverityLevel  SeverityLevel  `json:"severity_level"`
	TriggeredRules []string       `json:"triggered_rules"`
}

// FusionResult is the fusion stage output (module C). SSI is the System
// Stability Index in [0,1].
type FusionResult struct {
	Module            string      `json:"module"`
	SystemType        string      `json:"system_type"`
	ProfileID         string      `json:"profile_id"`
	SSI               float64     `json:"SSI"`
	SystemState       SystemState `json:"system_state"`
	TopContributors   []string    `json:"top_contributors"`
	RecommendedAction string      `json:"recommended_action"`
}

// HealthResult is the health-staging output (module D).
type HealthResult struct {
	Module            string          `json:"module"`
	DegradationStage  HealthStage     `json:"degradation_stage"`
	RULBand           string          `json:"rul_band"`
	EscalationLevel   EscalationLevel `json:"escalation_level"`
	RecommendedAction string          `json:"recommended_action"`
}

// PlanItem is one ranked maintenance action.
type PlanItem struct {
	Rank          int     `json:"rank"`
	PriorityScore float64 `json:"priority_score"`
	Window        string  `json:"window"`
	ActionID      string  `json:"action_id"`
	ActionTitle   string  `json:"action_title"`
	Justification string  `json:"justification"`
	Verification  string  `json:"verification"`
}

// PlanResult is the maintenance-plan output (module E).
type PlanResult struct {
	Module       string     `json:"module"`
	PlanItems    []PlanItem `json:"plan_items"`
	TotalActions int        `json:"total_actions"`
}

// GovernanceResult is the RUL/probability output (module F).
type GovernanceResult struct {
	Module               string              `json:"module"`
	RULDays              float64             `json:"RUL_days"`
	FailureProbability30 float64             `json:"failure_probability_30d"`
	Confidence           float64             `json:"confidence"`
	RiskIndex            float64             `json:"risk_index"`
	RecommendedWindow    string              `json:"recommended_window"`
	Reliability          *ReliabilityMetrics `json:"reliability_metrics"`
}

// ModuleTrace carries the per-stage sub-results. A nil entry means the stage
// never ran, usually because an earlier guard short-circuited the pipeline.
type ModuleTrace struct {
	DataGuard  *DataGuardResult `json:"module0"`
	Trend      *TrendResult     `json:"moduleA"`
	Initiators *InitiatorResult `json:"moduleB"`
	Slope      *SlopeResult     `json:"moduleBplus"`
	Entropy    *EntropyResult   `json:"moduleBpp"`
	Fusion     *FusionResult    `json:"moduleC"`
	Health     *HealthResult    `json:"moduleD"`
	Plan       *PlanResult      `json:"moduleE"`
	Governance *GovernanceResult `json:"moduleF"`
}

// AnalysisResult is the engine's full evaluation response. It is immutable
// once received; every downstream consumer works from a copy of this record.
type AnalysisResult struct {
	SchemaVersion      string              `json:"schema_version"`
	TraceID            string              `json:"trace_id"`
	AssetID            string              `json:"asset_id"`
	FinalSeverityLevel SeverityLevel       `json:"final_severity_level"`
	FinalSeverityScore float64             `json:"final_severity_score"`
	Confidence         float64             `json:"confidence"`
	HealthStage        HealthStage         `json:"health_stage"`
	RULDays            *float64            `json:"rul_days"`
	RiskIndex          float64             `json:"risk_index"`
	RecommendedAction  string              `json:"recommended_action"`
	RecommendedWindow  string              `json:"recommended_window"`
	Reliability        *ReliabilityMetrics `json:"reliability_metrics"`
	ModuleTrace        ModuleTrace         `json:"module_trace"`
}
