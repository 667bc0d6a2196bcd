// internal/scoring/recommend.go
package scoring

import (
	"fmt"
	"sort"

	"compliance-workers/internal/models"
)

// GapSeverity ranks how badly a category misses its target.
type GapSeverity string

const (
	SeverityCritical GapSeverity = "CRITICAL"
	SeverityMajor    GapSeverity = "MAJOR"
	SeverityMinor    GapSeverity = "MINOR"
)

const (
	requiredTarget = 95
	optionalTarget = 85

	maxRecommendations = 5
)

// Gap is the distance between a category's current percentage and its
// target, with a severity band. Severity is monotonic in gap size, and a
// required category is never ranked below an optional one at the same gap.
type Gap struct {
	CategoryKey string
	DisplayName string
	Required    bool
	Current     int
	Target      int
	Delta       int
	Severity    GapSeverity
}

// AnalyzeGaps diffs every category against its target and returns the
// categories that fall short, ordered worst first.
func AnalyzeGaps(categories []models.CategoryScore) []Gap {
	var gaps []Gap
	for _, cs := range categories {
		target := optionalTarget
		if cs.Required {
			target = requiredTarget
		}
		delta := target - cs.Percentage
		if delta <= 0 {
			continue
		}
		gaps = append(gaps, Gap{
			CategoryKey: cs.CategoryKey,
			DisplayName: cs.DisplayName,
			Required:    cs.Required,
			Current:     cs.Percentage,
			Target:      target,
			Delta:       delta,
			Severity:    classifyGap(delta, cs.Required),
		})
	}
	sort.SliceStable(gaps, func(i, j int) bool {
		if gaps[i].Delta != gaps[j].Delta {
			return gaps[i].Delta > gaps[j].Delta
		}
		return gaps[i].Required && !gaps[j].Required
	})
	return gaps
}

func classifyGap(delta int, required bool) GapSeverity {
	if required {
		switch {
		case delta >= 25:
			return SeverityCritical
		case delta >= 15:
			return SeverityMajor
		default:
			return SeverityMinor
		}
	}
	switch {
	case delta >= 50:
		return SeverityCritical
	case delta >= 30:
		return SeverityMajor
	default:
		return SeverityMinor
	}
}

// BuildRecommendations produces up to five ranked, human-readable
// improvement prompts: the three lowest-scoring categories under 70%,
// then in-scope appendices under 80%, then a generic fallback when the
// assessment has nothing actionable yet.
func BuildRecommendations(categories []models.CategoryScore, scope *models.ScopeDescriptor) []string {
	var recs []string

	covered := make(map[string]bool)

	low := make([]models.CategoryScore, 0, len(categories))
	for _, cs := range categories {
		if cs.Percentage < 70 {
			low = append(low, cs)
		}
	}
	sort.SliceStable(low, func(i, j int) bool { return low[i].Percentage < low[j].Percentage })
	for i, cs := range low {
		if i >= 3 {
			break
		}
		covered[cs.CategoryKey] = true
		if cs.Required {
			recs = append(recs, fmt.Sprintf("CRITICAL: %s is at %d%% and must reach %d%% before audit", cs.DisplayName, cs.Percentage, requiredTarget))
		} else {
			recs = append(recs, fmt.Sprintf("Improve %s, currently at %d%%", cs.DisplayName, cs.Percentage))
		}
	}

	if scope != nil {
		for _, cs := range categories {
			if len(recs) >= maxRecommendations {
				break
			}
			if scope.HasAppendix(cs.CategoryKey) && cs.Percentage < 80 && !covered[cs.CategoryKey] {
				recs = append(recs, fmt.Sprintf("Strengthen %s controls for the in-scope appendix %s (%d%%)", cs.DisplayName, cs.CategoryKey, cs.Percentage))
			}
		}
	}

	if len(recs) == 0 {
		return []string{
			"Continue answering the remaining assessment questions",
			"Prioritize questions marked as required for certification",
		}
	}
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}
