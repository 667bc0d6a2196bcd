// internal/models/scoring.go
package models

import "time"

// ComplianceStatus is the coarse pass/fail classification of a scoring run.
type ComplianceStatus string

const (
	StatusCompliant    ComplianceStatus = "COMPLIANT"
	StatusPartial      ComplianceStatus = "PARTIAL"
	StatusNonCompliant ComplianceStatus = "NON_COMPLIANT"
	StatusIncomplete   ComplianceStatus = "INCOMPLETE"
)

// ReadinessLevel classifies audit preparedness, coarser than the score.
type ReadinessLevel string

const (
	ReadinessAuditReady       ReadinessLevel = "AUDIT_READY"
	ReadinessNeedsImprovement ReadinessLevel = "NEEDS_IMPROVEMENT"
	ReadinessMajorGaps        ReadinessLevel = "MAJOR_GAPS"
	ReadinessNotReady         ReadinessLevel = "NOT_READY"
)

// CategoryScore is the fully recomputed score for one category key. It is
// never patched incrementally.
type CategoryScore struct {
	CategoryKey       string   `json:"categoryKey"`
	DisplayName       string   `json:"displayName"`
	Score             int      `json:"score"`
	MaxScore          int      `json:"maxScore"`
	Percentage        int      `json:"percentage"`
	Weight            int      `json:"weight"`
	Required          bool     `json:"required"`
	AnsweredQuestions int      `json:"answeredQuestions"`
	TotalQuestions    int      `json:"totalQuestions"`
	CriticalGaps      []string `json:"criticalGaps,omitempty"`
}

// ScopeSummary is the scope-specific sub-score block attached to a
// ScoringResult when an intake scope was applied.
type ScopeSummary struct {
	RequirementCodes    []string       `json:"requirementCodes"`
	Appendices          []string       `json:"appendices"`
	ComplexityFactor    float64        `json:"complexityFactor"`
	AppendixPercentages map[string]int `json:"appendixPercentages,omitempty"`
}

// ScoringResult is the single payload crossing the boundary to presentation
// layers. Flat, self-describing, serializable; treat as a value object.
type ScoringResult struct {
	CalculationID         string           `json:"calculationId"`
	AssessmentID          string           `json:"assessmentId"`
	StandardID            string           `json:"standardId"`
	OverallScore          int              `json:"overallScore"`
	MaxScore              int              `json:"maxScore"`
	OverallPercentage     int              `json:"overallPercentage"`
	CategoryScores        []CategoryScore  `json:"categoryScores"`
	ComplianceStatus      ComplianceStatus `json:"complianceStatus"`
	ReadinessLevel        ReadinessLevel   `json:"readinessLevel"`
	EstimatedAuditSuccess int              `json:"estimatedAuditSuccess"`
	CriticalIssues        []string         `json:"criticalIssues,omitempty"`
	Recommendations       []string         `json:"recommendations,omitempty"`
	ScopeApplied          bool             `json:"scopeApplied"`
	Scope                 *ScopeSummary    `json:"scope,omitempty"`
	CalculatedAt          time.Time        `json:"calculatedAt"`
}
