package policy

// Role identifies one of the three fixed user roles.
type Role string

const (
	RoleEngineer  Role = "engineer"
	RoleManager   Role = "manager"
	RoleExecutive Role = "executive"
)

// DefaultRole is used whenever a stored or requested role is unknown.
const DefaultRole = RoleEngineer

// View identifies a top-level UI view.
type View string

const (
	ViewDashboard   View = "dashboard"
	ViewSignals     View = "signals"
	ViewDiagnostics View = "diagnostics"
	ViewReliability View = "reliability"
	ViewReports     View = "reports"
)

// AllViews lists every view a role must declare.
var AllViews = []View{ViewDashboard, ViewSignals, ViewDiagnostics, ViewReliability, ViewReports}

// Feature identifies one toggleable display element.
type Feature string

const (
	FeatureSeverityGauge      Feature = "severity_gauge"
	FeatureRiskGauge          Feature = "risk_gauge"
	FeatureConfidenceGauge    Feature = "confidence_gauge"
	FeatureModuleTrace        Feature = "module_trace"
	FeatureSignalMetrics      Feature = "signal_metrics"
	FeatureWeibullChart       Feature = "weibull_chart"
	FeatureBathtubChart       Feature = "bathtub_chart"
	FeaturePFTimeline         Feature = "pf_timeline"
	FeatureFaultMatches       Feature = "fault_matches"
	FeatureMaintenancePlan    Feature = "maintenance_plan"
	FeatureEscalationBadge    Feature = "escalation_badge"
	FeatureTrendArrows        Feature = "trend_arrows"
	FeatureStabilityBadge     Feature = "stability_badge"
	FeatureNarrativePrognosis Feature = "narrative_prognosis"
)

// AllFeatures lists every feature a role must declare.
var AllFeatures = []Feature{
	FeatureSeverityGauge, FeatureRiskGauge, FeatureConfidenceGauge,
	FeatureModuleTrace, FeatureSignalMetrics, FeatureWeibullChart,
	FeatureBathtubChart, FeaturePFTimeline, FeatureFaultMatches,
	FeatureMaintenancePlan, FeatureEscalationBadge, FeatureTrendArrows,
	FeatureStabilityBadge, FeatureNarrativePrognosis,
}

// LabelMode selects between technical and plain gauge wording.
type LabelMode string

const (
	LabelsTechnical LabelMode = "technical"
	LabelsPlain     LabelMode = "plain"
)

// RoleConfig declares, exhaustively, what a role may see. MaxActionItems is
// nil for an unbounded action list.
type RoleConfig struct {
	Role           Role
	Views          map[View]bool
	Features       map[Feature]bool
	LabelMode      LabelMode
	MaxActionItems *int
}

func intPtr(v int) *int { return &v }

var roleConfigs = map[Role]RoleConfig{
	RoleEngineer: {
		Role: RoleEngineer,
		Views: map[View]bool{
			ViewDashboard: true, ViewSignals: true, ViewDiagnostics: true,
			ViewReliability: true, ViewReports: true,
		},
		Features: map[Feature]bool{
			FeatureSeverityGauge: true, FeatureRiskGauge: true, FeatureConfidenceGauge: true,
			FeatureModuleTrace: true, FeatureSignalMetrics: true, FeatureWeibullChart: true,
			FeatureBathtubChart: true, FeaturePFTimeline: true, FeatureFaultMatches: true,
			FeatureMaintenancePlan: true, FeatureEscalationBadge: true, FeatureTrendArrows: true,
			FeatureStabilityBadge: true, FeatureNarrativePrognosis: true,
		},
		LabelMode:      LabelsTechnical,
		MaxActionItems: nil,
	},
	RoleManager: {
		Role: RoleManager,
		Views: map[View]bool{
			ViewDashboard: true, ViewSignals: false, ViewDiagnostics: true,
			ViewReliability: true, ViewReports: true,
		},
		Features: map[Feature]bool{
			FeatureSeverityGauge: true, FeatureRiskGauge: true, FeatureConfidenceGauge: true,
			FeatureModuleTrace: false, FeatureSignalMetrics: false, FeatureWeibullChart: true,
			FeatureBathtubChart: true, FeaturePFTimeline: true, FeatureFaultMatches: true,
			FeatureMaintenancePlan: true, FeatureEscalationBadge: true, FeatureTrendArrows: true,
			FeatureStabilityBadge: false, FeatureNarrativePrognosis: true,
		},
		LabelMode:      LabelsPlain,
		MaxActionItems: intPtr(3),
	},
	RoleExecutive: {
		Role: RoleExecutive,
		Views: map[View]bool{
			ViewDashboard: true, ViewSignals: false, ViewDiagnostics: false,
			ViewReliability: false, ViewReports: true,
		},
		Features: map[Feature]bool{
			FeatureSeverityGauge: true, FeatureRiskGauge: true, FeatureConfidenceGauge: false,
			FeatureModuleTrace: false, FeatureSignalMetrics: false, FeatureWeibullChart: false,
			FeatureBathtubChart: false, FeaturePFTimeline: false, FeatureFaultMatches: false,
			FeatureMaintenancePlan: true, FeatureEscalationBadge: true, FeatureTrendArrows: false,
			FeatureStabilityBadge: false, FeatureNarrativePrognosis: true,
		},
		LabelMode:      LabelsPlain,
		MaxActionItems: intPtr(1),
	},
}

// plainLabels translates technical gauge labels for plain label mode.
// Unmapped labels pass through unchanged.
var plainLabels = map[string]string{
	"Severity":     "Health Risk",
	"SSI":          "Stability",
	"RUL":          "Time to Action",
	"Hazard Rate":  "Failure Likelihood",
	"Risk Index":   "Business Risk",
	"P-F Position": "Failure Progress",
	"Kurtosis":     "Signal Spikiness",
	"Crest Factor": "Impact Harshness",
}

// KnownRole reports whether the given role is one of the three fixed roles.
func KnownRole(role Role) bool {
	_, ok := roleConfigs[role]
	return ok
}

// ConfigFor returns the configuration for a role, falling back to the
// engineer configuration for unknown roles.
func ConfigFor(role Role) RoleConfig {
	if cfg, ok := roleConfigs[role]; ok {
		return cfg
	}
	return roleConfigs[DefaultRole]
}

// CanView reports whether this role may open the given view.
func (c RoleConfig) CanView(view View) bool {
	return c.Views[view]
}

// CanShow reports whether this role may see the given display feature.
func (c RoleConfig) CanShow(feature Feature) bool {
	return c.Features[feature]
}

// GaugeLabel translates a technical label when the role uses plain wording.
func (c RoleConfig) GaugeLabel(technicalLabel string) string {
	if c.LabelMode != LabelsPlain {
		return technicalLabel
	}
	if plain, ok := plainLabels[technicalLabel]; ok {
		return plain
	}
	return technicalLabel
}
