// internal/workers/assessment/calculate-score/handler_test.go
package calculatescore

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compliance-workers/internal/common/errors"
	"compliance-workers/internal/common/logger"
	"compliance-workers/internal/models"
	"compliance-workers/internal/scope"
	"compliance-workers/internal/scoring"
)

type stubCatalog struct {
	questions []models.Question
	err       error
}

func (s *stubCatalog) ListQuestions(ctx context.Context, standardID string) ([]models.Question, error) {
	return s.questions, s.err
}

type stubAnswers struct {
	answers []models.Answer
}

func (s *stubAnswers) ListAnswers(ctx context.Context, assessmentID string) ([]models.Answer, error) {
	return s.answers, nil
}

type stubIntake struct {
	answers scope.IntakeAnswers
	err     error
	calls   int
}

func (s *stubIntake) GetIntakeAnswers(ctx context.Context, intakeFormID string) (scope.IntakeAnswers, error) {
	s.calls++
	return s.answers, s.err
}

type stubScopeCache struct{}

func (s *stubScopeCache) GetCachedScope(ctx context.Context, assessmentID string) (*models.ScopeDescriptor, error) {
	return nil, nil
}

func (s *stubScopeCache) SaveScope(ctx context.Context, assessmentID string, descriptor *models.ScopeDescriptor) error {
	return nil
}

func scoringCatalog() []models.Question {
	return []models.Question{
		{ID: "q1", CategoryCode: "CR-DATA", Text: "Sanitization plan documented?", ResponseType: models.ResponseYesNo, Required: true, Weight: 1},
		{ID: "q2", CategoryCode: "CR-DATA", Text: "Wipe logs retained?", ResponseType: models.ResponseYesNo, Required: true, Weight: 1},
	}
}

func newTestHandler(t *testing.T, catalog *stubCatalog, answers *stubAnswers, intake *stubIntake) *Handler {
	t.Helper()
	engine := scoring.NewEngine(
		catalog, answers, intake, &stubScopeCache{},
		scope.NewResolver(scope.DefaultRules()),
		scoring.DefaultWeightTable(),
		logger.NewTestLogger(t),
	)
	return NewHandler(&Config{Timeout: 10 * time.Second}, engine, nil, logger.NewTestLogger(t))
}

func TestExecute_ScoresWithoutIntake(t *testing.T) {
	now := time.Now()
	answers := &stubAnswers{answers: []models.Answer{
		{QuestionID: "q1", Value: "yes", UpdatedAt: now},
		{QuestionID: "q2", Value: "yes", UpdatedAt: now},
	}}
	intake := &stubIntake{}
	handler := newTestHandler(t, &stubCatalog{questions: scoringCatalog()}, answers, intake)

	output, err := handler.Execute(context.Background(), &Input{AssessmentID: "a-1", StandardID: "std-1"})
	require.NoError(t, err)

	require.NotNil(t, output.Result)
	assert.Equal(t, 100, output.OverallPercentage)
	assert.Equal(t, models.StatusCompliant, output.ComplianceStatus)
	assert.Equal(t, models.ReadinessAuditReady, output.ReadinessLevel)
	assert.False(t, output.Result.ScopeApplied)
	assert.Zero(t, intake.calls)

	// Headline fields mirror the result document.
	assert.Equal(t, output.Result.OverallPercentage, output.OverallPercentage)
	assert.Equal(t, output.Result.ComplianceStatus, output.ComplianceStatus)
	assert.Equal(t, output.Result.ReadinessLevel, output.ReadinessLevel)
}

func TestExecute_ScoresFromIntake(t *testing.T) {
	now := time.Now()
	answers := &stubAnswers{answers: []models.Answer{
		{QuestionID: "q1", Value: "yes", UpdatedAt: now},
		{QuestionID: "q2", Value: "yes", UpdatedAt: now},
	}}
	intake := &stubIntake{answers: scope.IntakeAnswers{"handles_data_bearing_devices": "yes"}}
	handler := newTestHandler(t, &stubCatalog{questions: scoringCatalog()}, answers, intake)

	output, err := handler.Execute(context.Background(), &Input{
		AssessmentID: "a-1", StandardID: "std-1", IntakeFormID: "i-1",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, intake.calls)
	assert.True(t, output.Result.ScopeApplied)
	require.NotNil(t, output.Result.Scope)
	assert.Contains(t, output.Result.Scope.Appendices, "B")
}

func TestExecute_IntakeFailureStillScores(t *testing.T) {
	now := time.Now()
	answers := &stubAnswers{answers: []models.Answer{
		{QuestionID: "q1", Value: "yes", UpdatedAt: now},
		{QuestionID: "q2", Value: "yes", UpdatedAt: now},
	}}
	intake := &stubIntake{err: errors.NewIntakeNotFoundError("i-missing")}
	handler := newTestHandler(t, &stubCatalog{questions: scoringCatalog()}, answers, intake)

	output, err := handler.Execute(context.Background(), &Input{
		AssessmentID: "a-1", StandardID: "std-1", IntakeFormID: "i-missing",
	})
	require.NoError(t, err)
	assert.False(t, output.Result.ScopeApplied)
	assert.Equal(t, 100, output.OverallPercentage)
}

func TestExecute_StorageFailure(t *testing.T) {
	catalog := &stubCatalog{err: stderrors.New("connection reset")}
	handler := newTestHandler(t, catalog, &stubAnswers{}, &stubIntake{})

	_, err := handler.Execute(context.Background(), &Input{AssessmentID: "a-1", StandardID: "std-1"})
	require.Error(t, err)

	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeScoringUnavailable, stdErr.Code)
}
