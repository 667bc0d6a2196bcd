// internal/scoring/classify.go
package scoring

import (
	"math"

	"compliance-workers/internal/models"
)

const (
	requiredCategoryGate = 80
	compliantThreshold   = 85
	partialThreshold     = 70

	auditSuccessFloor   = 5
	auditSuccessCeiling = 95
)

// Overall computes the weighted overall score across categories.
// Contributions are weighted by the category weight and normalized by the
// weighted max, so overallPercentage stays consistent with the per-category
// percentages within rounding.
func Overall(categories []models.CategoryScore) (score, maxScore, pct int) {
	for _, cs := range categories {
		score += cs.Score * cs.Weight
		maxScore += cs.MaxScore * cs.Weight
	}
	return score, maxScore, percentage(score, maxScore)
}

// ClassifyCompliance applies the status rules in priority order. A required
// category under the 80% gate forces NON_COMPLIANT regardless of the
// overall percentage.
func ClassifyCompliance(categories []models.CategoryScore, criticalIssues []string, overallPct int) models.ComplianceStatus {
	for _, cs := range categories {
		if cs.Required && cs.Percentage < requiredCategoryGate {
			return models.StatusNonCompliant
		}
	}
	if len(criticalIssues) > 0 {
		return models.StatusNonCompliant
	}
	switch {
	case overallPct >= compliantThreshold:
		return models.StatusCompliant
	case overallPct >= partialThreshold:
		return models.StatusPartial
	default:
		return models.StatusIncomplete
	}
}

// ClassifyReadiness maps the scoring run onto the readiness ladder.
func ClassifyReadiness(categories []models.CategoryScore, criticalCount, overallPct int) models.ReadinessLevel {
	switch {
	case criticalCount > 3:
		return models.ReadinessNotReady
	case overallPct < 60:
		return models.ReadinessNotReady
	case overallPct < 70:
		return models.ReadinessMajorGaps
	case overallPct < 85:
		return models.ReadinessNeedsImprovement
	}
	for _, cs := range categories {
		if cs.Required && cs.Percentage < compliantThreshold {
			return models.ReadinessNeedsImprovement
		}
	}
	return models.ReadinessAuditReady
}

// EstimateAuditSuccess predicts the chance of passing a certification audit
// as a bounded percentage. The estimate starts from the overall percentage
// capped at 85, is averaged with the mean of required categories, and is
// dampened by the scope complexity factor when one is known.
func EstimateAuditSuccess(categories []models.CategoryScore, overallPct int, scope *models.ScopeDescriptor) int {
	estimate := math.Min(float64(overallPct), 85)

	var reqSum, reqCount float64
	for _, cs := range categories {
		if cs.Required {
			reqSum += float64(cs.Percentage)
			reqCount++
		}
	}
	if reqCount > 0 {
		estimate = (estimate + reqSum/reqCount) / 2
	}

	if scope != nil && scope.ComplexityFactor > 0 {
		estimate *= math.Max(0.8, 2.0-scope.ComplexityFactor)
	}

	estimate = math.Max(auditSuccessFloor, math.Min(auditSuccessCeiling, estimate))
	return int(math.Round(estimate))
}
