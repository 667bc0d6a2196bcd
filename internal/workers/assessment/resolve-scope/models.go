// internal/workers/assessment/resolve-scope/models.go
package resolvescope

import "compliance-workers/internal/models"

type Input struct {
	AssessmentID string `json:"assessmentId"`
	IntakeFormID string `json:"intakeFormId"`
}

// Output carries the resolved descriptor back into the process so gateway
// conditions can branch on scope contents.
type Output struct {
	Scope         *models.ScopeDescriptor `json:"scope"`
	AppendixCount int                     `json:"appendixCount"`
	Cached        bool                    `json:"cached"`
}
