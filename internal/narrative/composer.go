package narrative

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/rapidstack/rapid-insight/internal/models"
	"github.com/rapidstack/rapid-insight/internal/reliability"
)

// Compose maps an analysis result into the six-chapter narrative report.
// It is pure and total: composing twice from the same result yields identical
// chapters, and a missing module sub-result degrades to explicit "not
// available" wording rather than an error. Any "generated at" timestamp is
// the caller's business, not the composer's.
func Compose(result models.AnalysisResult) models.NarrativeReport {
	return models.NarrativeReport{
		ExecutiveSummary: composeExecutiveSummary(result),
		Findings:         composeFindings(result),
		Trending:         composeTrending(result),
		SystemImpact:     composeSystemImpact(result),
		Actions:          composeActions(result),
		Prognosis:        composePrognosis(result),
	}
}

func composeExecutiveSummary(result models.AnalysisResult) models.ExecutiveSummary {
	stage := result.HealthStage
	headline := fmt.Sprintf("This asset %s. %s", healthVerbPhrase(stage), capitalize(healthSummary(stage)))

	var concern string
	initiators := result.ModuleTrace.Initiators
	switch {
	case initiators != nil && initiators.NumMatches >= 1 && len(initiators.MatchedRules) > 0:
		top := initiators.MatchedRules[0]
		concern = fmt.Sprintf("%s on the %s subsystem.", top.Diagnosis, initiators.Component)
	case result.FinalSeverityLevel != models.SeverityNormal:
		lang := severityLanguage(result.FinalSeverityLevel)
		concern = fmt.Sprintf("Overall vibration condition is %s, but no specific fault pattern was isolated.", lang.Adjective)
	default:
		concern = "No significant fault patterns detected."
	}

	action := result.RecommendedAction
	if items := rankedActions(result.ModuleTrace.Plan); len(items) > 0 {
		action = items[0].ActionTitle
	}

	confidence := result.Confidence
	if initiators != nil {
		confidence = initiators.Confidence
	}
	statement := fmt.Sprintf("This assessment was made %s.", confidenceClause(confidence))

	return models.ExecutiveSummary{
		Headline:            headline,
		PrimaryConcern:      concern,
		RecommendedAction:   action,
		Timeframe:           result.RecommendedWindow,
		ConfidenceStatement: statement,
	}
}

func composeFindings(result models.AnalysisResult) models.Findings {
	guard := result.ModuleTrace.DataGuard

	quality := "Data quality assessment not available."
	if guard != nil {
		quality = fmt.Sprintf("Data quality is %s (score %.2f).", qualityClause(guard.QualityScore), guard.QualityScore)
	}

	profile := "Signal profile not available."
	if rms, kurtosis, ok := signalProfileSource(result.ModuleTrace); ok {
		switch {
		case kurtosis > 4:
			profile = fmt.Sprintf("Overall RMS is %.3f with kurtosis %.2f; the impulsive content is consistent with bearing or gear faults.", rms, kurtosis)
		case kurtosis > 2:
			profile = fmt.Sprintf("Overall RMS is %.3f with kurtosis %.2f; mild irregularities are present in the signal.", rms, kurtosis)
		default:
			profile = fmt.Sprintf("Overall RMS is %.3f with kurtosis %.2f; the signal shape is nominal.", rms, kurtosis)
		}
	}

	fault := "Fault pattern analysis not available."
	if initiators := result.ModuleTrace.Initiators; initiators != nil {
		if initiators.NumMatches == 0 || len(initiators.MatchedRules) == 0 {
			fault = "No known fault initiator patterns matched the current signature."
		} else {
			top := initiators.MatchedRules[0]
			noun := "fault pattern"
			if initiators.NumMatches != 1 {
				noun = "fault patterns"
			}
			fault = fmt.Sprintf("%d %s matched; the strongest is %s (initiator %s).", initiators.NumMatches, noun, top.Diagnosis, top.Initiator)
		}
	}

	return models.Findings{DataQuality: quality, SignalProfile: profile, FaultFinding: fault}
}

// signalProfileSource prefers the trend engine's statistics and falls back to
// the data guard's raw signal metrics.
func signalProfileSource(trace models.ModuleTrace) (rms, kurtosis float64, ok bool) {
	if trace.Trend != nil {
		return trace.Trend.OverallRMS, trace.Trend.Kurtosis, true
	}
	if trace.DataGuard != nil {
		return trace.DataGuard.Metrics.RMS, trace.DataGuard.Metrics.Kurtosis, true
	}
	return 0, 0, false
}

func composeTrending(result models.AnalysisResult) models.Trending {
	trend := "Trend analysis not available."
	slopeContext := ""
	if slope := result.ModuleTrace.Slope; slope != nil {
		trend = trendLanguage(slope.TrendClass).Description
		switch {
		case slope.Slope > 0.05:
			slopeContext = fmt.Sprintf("The log-domain slope of %.3f indicates a rising trend.", slope.Slope)
		case slope.Slope < -0.05:
			slopeContext = fmt.Sprintf("The log-domain slope of %.3f indicates an improving or disturbed signal; verify recent maintenance or process changes.", slope.Slope)
		default:
			slopeContext = fmt.Sprintf("The log-domain slope of %.3f is effectively flat.", slope.Slope)
		}
	}

	stability := "Stability analysis not available."
	if entropy := result.ModuleTrace.Entropy; entropy != nil {
		stability = stabilityLanguage(entropy.StabilityState).Narrative
	}

	return models.Trending{TrendNarrative: trend, StabilityNarrative: stability, SlopeContext: slopeContext}
}

func composeSystemImpact(result models.AnalysisResult) models.SystemImpact {
	fusion := result.ModuleTrace.Fusion

	ssi := result.FinalSeverityScore
	impact := fmt.Sprintf("System-level fusion is not available; the overall severity score %.2f is used as a proxy.", ssi)
	if fusion != nil {
		ssi = fusion.SSI
		impact = fmt.Sprintf("The system stability index is %.2f and the system is %s.", fusion.SSI, string(fusion.SystemState))
		if len(fusion.TopContributors) > 0 {
			impact = fmt.Sprintf("The system stability index is %.2f and the system is %s, driven primarily by %s.",
				fusion.SSI, string(fusion.SystemState), strings.Join(fusion.TopContributors, ", "))
		}
	}

	health := result.ModuleTrace.Health
	classification := fmt.Sprintf("The asset is staged %s based on the overall pipeline assessment.", string(result.HealthStage))
	escalation := "Escalation assessment not available."
	if health != nil {
		classification = fmt.Sprintf("The asset is staged %s at escalation %s with an expected remaining-life band of %s.",
			string(health.DegradationStage), string(health.EscalationLevel), health.RULBand)
		escalation = escalationNarrative(health.EscalationLevel)
	}

	return models.SystemImpact{
		SSI:                  ssi,
		ImpactNarrative:      impact,
		HealthClassification: classification,
		EscalationNarrative:  escalation,
	}
}

func composeActions(result models.AnalysisResult) []models.PlanItem {
	return rankedActions(result.ModuleTrace.Plan)
}

// rankedActions returns plan items sorted by priority score descending.
// The sort is stable so equal scores keep the planner's original order.
func rankedActions(plan *models.PlanResult) []models.PlanItem {
	if plan == nil || len(plan.PlanItems) == 0 {
		return nil
	}
	items := append([]models.PlanItem(nil), plan.PlanItems...)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PriorityScore > items[j].PriorityScore
	})
	return items
}

func composePrognosis(result models.AnalysisResult) models.Prognosis {
	prognosis := models.Prognosis{
		RULStatement:     rulStatement(result.RULDays),
		PFStatement:      "P-F interval analysis not available.",
		WeibullStatement: "Weibull reliability analysis not available.",
		LifecyclePhase:   "Lifecycle phase not available.",
		FailurePattern:   "Failure pattern analysis not available.",
	}

	if rel := reliabilitySource(result); rel != nil {
		prognosis.PFStatement = pfNarrative(rel.PFIntervalPosition)
		prognosis.WeibullStatement = fmt.Sprintf(
			"The load-adjusted Weibull shape is %.2f against a base of %.2f, and characteristic life is reduced by %.0f hours.",
			rel.BetaAdj, rel.BetaBase, rel.EtaBaseHours-rel.EtaAdjHours)
		prognosis.LifecyclePhase = fmt.Sprintf("The asset is %s.", bathtubClause(rel.BathtubPhase))
		if pattern, ok := reliability.LookupNowlanHeap(rel.NowlanHeapPattern); ok {
			prognosis.FailurePattern = fmt.Sprintf(
				"Failure behavior follows Nowlan-Heap pattern %s: %s (about %.0f%% of failures in the reference population).",
				pattern.Letter, pattern.Description, pattern.PopulationShare*100)
		} else {
			prognosis.FailurePattern = fmt.Sprintf("Failure behavior pattern %q is not in the reference set.", rel.NowlanHeapPattern)
		}
	}

	switch result.HealthStage {
	case models.StageCritical:
		prognosis.OverallOutlook = "The outlook is unfavorable; without intervention, functional failure is likely within the estimated remaining life."
	case models.StageUnstable:
		prognosis.OverallOutlook = "The outlook is guarded; the degradation rate is unstable and should be re-evaluated frequently."
	case models.StageDegrading:
		prognosis.OverallOutlook = "The outlook is manageable with planned maintenance."
	default:
		prognosis.OverallOutlook = "The outlook is favorable."
	}

	return prognosis
}

// reliabilitySource prefers the top-level reliability metrics and falls back
// to the governance module's copy.
func reliabilitySource(result models.AnalysisResult) *models.ReliabilityMetrics {
	if result.Reliability != nil {
		return result.Reliability
	}
	if result.ModuleTrace.Governance != nil {
		return result.ModuleTrace.Governance.Reliability
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
