// internal/models/catalog.go
package models

import "time"

// ResponseType identifies how a question expects to be answered.
type ResponseType string

const (
	ResponseYesNo ResponseType = "yes_no"
	ResponseScale ResponseType = "scale"
	ResponseText  ResponseType = "text"
)

// Question is immutable catalog reference data owned by the standard.
type Question struct {
	ID           string       `json:"id"`
	StandardID   string       `json:"standardId"`
	Text         string       `json:"text"`
	Category     string       `json:"category,omitempty"`
	CategoryCode string       `json:"categoryCode,omitempty"`
	AppendixCode string       `json:"appendixCode,omitempty"`
	ResponseType ResponseType `json:"responseType"`
	Required     bool         `json:"required"`
	Weight       int          `json:"weight"`
}

// Answer is the latest recorded response for one (assessment, question)
// pair. Last write wins; older revisions are not kept.
type Answer struct {
	QuestionID       string    `json:"questionId"`
	AssessmentID     string    `json:"assessmentId"`
	Value            string    `json:"value"`
	ComplianceStatus string    `json:"complianceStatus,omitempty"`
	Confidence       string    `json:"confidence,omitempty"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Manual compliance override values accepted on an Answer.
const (
	OverrideCompliant          = "COMPLIANT"
	OverridePartiallyCompliant = "PARTIALLY_COMPLIANT"
	OverrideNonCompliant       = "NON_COMPLIANT"
	OverrideNotApplicable      = "NOT_APPLICABLE"
)
