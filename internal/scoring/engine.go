// internal/scoring/engine.go
package scoring

import (
	"context"
	"time"

	"github.com/google/uuid"

	"compliance-workers/internal/common/errors"
	"compliance-workers/internal/common/logger"
	"compliance-workers/internal/models"
	"compliance-workers/internal/scope"
	"compliance-workers/internal/storage"
)

// Engine is the scoring orchestrator. It owns no state between runs: every
// call reads a fresh snapshot through the storage collaborators and returns
// an immutable ScoringResult. Concurrent runs for different assessments
// need no coordination.
type Engine struct {
	catalog  storage.QuestionCatalog
	answers  storage.AnswerStore
	intake   storage.IntakeStore
	scopes   storage.ScopeCache
	resolver *scope.Resolver
	table    WeightTable
	logger   logger.Logger
}

func NewEngine(
	catalog storage.QuestionCatalog,
	answers storage.AnswerStore,
	intake storage.IntakeStore,
	scopes storage.ScopeCache,
	resolver *scope.Resolver,
	table WeightTable,
	log logger.Logger,
) *Engine {
	return &Engine{
		catalog:  catalog,
		answers:  answers,
		intake:   intake,
		scopes:   scopes,
		resolver: resolver,
		table:    table,
		logger:   log,
	}
}

// ResolveScope loads the intake answers and derives the scope descriptor.
// Fails with SCOPE_RESOLUTION_FAILED (or the storage error) and never
// partially resolves.
func (e *Engine) ResolveScope(ctx context.Context, intakeFormID string) (*models.ScopeDescriptor, error) {
	answers, err := e.intake.GetIntakeAnswers(ctx, intakeFormID)
	if err != nil {
		return nil, err
	}
	return e.resolver.Resolve(answers)
}

// CalculateScore runs the full pipeline for an assessment against an
// already-resolved scope (nil means score the whole catalog). Storage
// failures surface as SCORING_UNAVAILABLE; everything downstream of the
// loads is pure and cannot fail.
func (e *Engine) CalculateScore(ctx context.Context, assessmentID, standardID string, sd *models.ScopeDescriptor) (*models.ScoringResult, error) {
	catalog, err := e.catalog.ListQuestions(ctx, standardID)
	if err != nil {
		return nil, errors.NewScoringUnavailableError(err)
	}
	answers, err := e.answers.ListAnswers(ctx, assessmentID)
	if err != nil {
		return nil, errors.NewScoringUnavailableError(err)
	}

	if len(catalog) == 0 {
		e.logger.Warn("standard has no questions", map[string]interface{}{
			"assessmentId": assessmentID,
			"standardId":   standardID,
			"code":         string(errors.ErrCodeCatalogEmpty),
		})
	}

	questions := FilterQuestions(catalog, sd)
	categories := AggregateCategories(questions, answers, e.table)
	criticalIssues := CollectCriticalIssues(categories)

	score, maxScore, pct := Overall(categories)
	result := &models.ScoringResult{
		CalculationID:         uuid.NewString(),
		AssessmentID:          assessmentID,
		StandardID:            standardID,
		OverallScore:          score,
		MaxScore:              maxScore,
		OverallPercentage:     pct,
		CategoryScores:        categories,
		ComplianceStatus:      ClassifyCompliance(categories, criticalIssues, pct),
		ReadinessLevel:        ClassifyReadiness(categories, len(criticalIssues), pct),
		EstimatedAuditSuccess: EstimateAuditSuccess(categories, pct, sd),
		CriticalIssues:        criticalIssues,
		Recommendations:       BuildRecommendations(categories, sd),
		ScopeApplied:          sd != nil,
		CalculatedAt:          time.Now().UTC(),
	}
	if sd != nil {
		result.Scope = scopeSummary(sd, categories)
	}

	e.logger.Info("scoring run complete", map[string]interface{}{
		"assessmentId":      assessmentID,
		"overallPercentage": result.OverallPercentage,
		"complianceStatus":  string(result.ComplianceStatus),
		"readinessLevel":    string(result.ReadinessLevel),
		"scopeApplied":      result.ScopeApplied,
	})
	return result, nil
}

// CalculateScoreFromIntake resolves the scope for the intake form first,
// preferring the cached descriptor. Resolution failure is swallowed: the
// run proceeds unscoped against the full catalog, widening the question
// set instead of blocking the caller.
func (e *Engine) CalculateScoreFromIntake(ctx context.Context, assessmentID, standardID, intakeFormID string) (*models.ScoringResult, error) {
	sd := e.loadOrResolveScope(ctx, assessmentID, intakeFormID)
	return e.CalculateScore(ctx, assessmentID, standardID, sd)
}

func (e *Engine) loadOrResolveScope(ctx context.Context, assessmentID, intakeFormID string) *models.ScopeDescriptor {
	if cached, err := e.scopes.GetCachedScope(ctx, assessmentID); err == nil && cached != nil {
		return cached
	}

	sd, err := e.ResolveScope(ctx, intakeFormID)
	if err != nil {
		e.logger.Warn("scope resolution failed, scoring without scope", map[string]interface{}{
			"assessmentId": assessmentID,
			"intakeFormId": intakeFormID,
			"error":        err.Error(),
		})
		return nil
	}

	if err := e.scopes.SaveScope(ctx, assessmentID, sd); err != nil {
		e.logger.Warn("failed to cache resolved scope", map[string]interface{}{
			"assessmentId": assessmentID,
			"error":        err.Error(),
		})
	}
	return sd
}

func scopeSummary(sd *models.ScopeDescriptor, categories []models.CategoryScore) *models.ScopeSummary {
	summary := &models.ScopeSummary{
		RequirementCodes: sd.RequirementCodes,
		Appendices:       sd.Appendices,
		ComplexityFactor: sd.ComplexityFactor,
	}
	for _, cs := range categories {
		if sd.HasAppendix(cs.CategoryKey) {
			if summary.AppendixPercentages == nil {
				summary.AppendixPercentages = map[string]int{}
			}
			summary.AppendixPercentages[cs.CategoryKey] = cs.Percentage
		}
	}
	return summary
}
