// internal/scoring/normalize.go
package scoring

import (
	"math"
	"strconv"
	"strings"

	"compliance-workers/internal/models"
)

// overrideScores maps a manual compliance override to its sub-score.
// NOT_APPLICABLE counts as satisfied. The match is case-sensitive;
// anything unrecognized scores 0.
var overrideScores = map[string]int{
	models.OverrideCompliant:          100,
	models.OverridePartiallyCompliant: 50,
	models.OverrideNonCompliant:       0,
	models.OverrideNotApplicable:      100,
}

// yesNoScores maps normalized yes/no answer text to its sub-score.
var yesNoScores = map[string]int{
	"yes":         100,
	"no":          0,
	"partial":     50,
	"n/a":         100,
	"in progress": 25,
}

const scaleMax = 5.0

// NormalizeResponse converts a raw answer into a weighted contribution and
// its maximum. Unrecognized input degrades to the lowest score instead of
// erroring; a half-filled assessment must still produce a score.
func NormalizeResponse(q models.Question, a models.Answer) (score, maxScore int) {
	weight := q.Weight
	if weight <= 0 {
		weight = 1
	}
	sub := subScore(q, a)
	return int(math.Round(float64(sub) * float64(weight))), 100 * weight
}

func subScore(q models.Question, a models.Answer) int {
	if a.ComplianceStatus != "" {
		return overrideScores[a.ComplianceStatus]
	}

	switch q.ResponseType {
	case models.ResponseYesNo:
		value := strings.ToLower(strings.TrimSpace(a.Value))
		return yesNoScores[value]

	case models.ResponseScale:
		v, err := strconv.ParseFloat(strings.TrimSpace(a.Value), 64)
		if err != nil {
			return 0
		}
		if v < 0 {
			v = 0
		}
		if v > scaleMax {
			v = scaleMax
		}
		return int(math.Round(v / scaleMax * 100))

	default:
		if strings.TrimSpace(a.Value) != "" {
			return 60
		}
		return 0
	}
}
