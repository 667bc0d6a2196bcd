// internal/workers/assessment/filter-questions/models.go
package filterquestions

type Input struct {
	AssessmentID string `json:"assessmentId"`
	StandardID   string `json:"standardId"`
}

// ApplicableQuestion is the subset of catalog fields the intake UI needs to
// render the applicable question list.
type ApplicableQuestion struct {
	ID           string `json:"id"`
	Text         string `json:"text"`
	CategoryKey  string `json:"categoryKey"`
	Required     bool   `json:"required"`
	ResponseType string `json:"responseType"`
}

type Output struct {
	Questions    []ApplicableQuestion `json:"questions"`
	TotalCount   int                  `json:"totalCount"`
	CatalogCount int                  `json:"catalogCount"`
	ScopeApplied bool                 `json:"scopeApplied"`
}
