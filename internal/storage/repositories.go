// internal/storage/repositories.go
package storage

import (
	"context"

	"compliance-workers/internal/models"
	"compliance-workers/internal/scope"
)

// QuestionCatalog reads the immutable question catalog for a standard.
type QuestionCatalog interface {
	ListQuestions(ctx context.Context, standardID string) ([]models.Question, error)
}

// AnswerStore reads the latest recorded answers for an assessment.
type AnswerStore interface {
	ListAnswers(ctx context.Context, assessmentID string) ([]models.Answer, error)
}

// IntakeStore reads the free-form intake answers for an intake form.
type IntakeStore interface {
	GetIntakeAnswers(ctx context.Context, intakeFormID string) (scope.IntakeAnswers, error)
}

// ScopeCache is the memoization layer for resolved scope descriptors. A nil
// descriptor with a nil error means cache miss.
type ScopeCache interface {
	GetCachedScope(ctx context.Context, assessmentID string) (*models.ScopeDescriptor, error)
	SaveScope(ctx context.Context, assessmentID string, descriptor *models.ScopeDescriptor) error
}

// ResultIndex records completed scoring results for reporting queries.
type ResultIndex interface {
	IndexResult(ctx context.Context, result *models.ScoringResult) error
}
