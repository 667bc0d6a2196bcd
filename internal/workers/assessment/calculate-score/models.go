// internal/workers/assessment/calculate-score/models.go
package calculatescore

import "compliance-workers/internal/models"

type Input struct {
	AssessmentID string `json:"assessmentId"`
	StandardID   string `json:"standardId"`
	IntakeFormID string `json:"intakeFormId,omitempty"`
}

// Output is the full scoring result plus the headline figures lifted to the
// top level so BPMN gateways can branch without digging into the document.
type Output struct {
	Result            *models.ScoringResult   `json:"scoringResult"`
	OverallPercentage int                     `json:"overallPercentage"`
	ComplianceStatus  models.ComplianceStatus `json:"complianceStatus"`
	ReadinessLevel    models.ReadinessLevel   `json:"readinessLevel"`
}
