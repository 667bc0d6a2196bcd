// internal/workers/reporting/index-result/models.go
package indexresult

import "compliance-workers/internal/models"

type Input struct {
	Result *models.ScoringResult `json:"scoringResult"`
}

type Output struct {
	Indexed       bool   `json:"indexed"`
	CalculationID string `json:"calculationId"`
}
