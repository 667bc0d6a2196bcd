// internal/workers/assessment/filter-questions/handler_test.go
package filterquestions

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
)

type stubCatalog struct {
	questions []models.Question
	err       error
}

func (s *stubCatalog) ListQuestions(ctx context.Context, standardID string) ([]models.Question, error) {
	return s.questions, s.err
}

type stubScopeCache struct {
	cached *models.ScopeDescriptor
	getErr error
}

func (s *stubScopeCache) GetCachedScope(ctx context.Context, assessmentID string) (*models.ScopeDescriptor, error) {
	return s.cached, s.getErr
}

func (s *stubScopeCache) SaveScope(ctx context.Context, assessmentID string, descriptor *models.ScopeDescriptor) error {
	return nil
}

func testCatalog() []models.Question {
	return []models.Question{
		{ID: "q1", Text: "Permits current?", CategoryCode: "CR-LEGAL-01", ResponseType: models.ResponseYesNo, Required: true},
		{ID: "q2", Text: "Wipe logs retained?", AppendixCode: "B", ResponseType: models.ResponseYesNo},
		{ID: "q3", Text: "PV modules segregated?", AppendixCode: "G", ResponseType: models.ResponseScale},
	}
}

func newTestHandler(t *testing.T, catalog *stubCatalog, scopes *stubScopeCache) *Handler {
	t.Helper()
	return NewHandler(&Config{Timeout: 5 * time.Second}, catalog, scopes, logger.NewTestLogger(t))
}

func TestExecute_ScopedCatalog(t *testing.T) {
	scopes := &stubScopeCache{cached: &models.ScopeDescriptor{Appendices: []string{"B"}}}
	handler := newTestHandler(t, &stubCatalog{questions: testCatalog()}, scopes)

	output, err := handler.Execute(context.Background(), &Input{AssessmentID: "a-1", StandardID: "std-1"})
	require.NoError(t, err)

	assert.True(t, output.ScopeApplied)
	assert.Equal(t, 3, output.CatalogCount)
	assert.Equal(t, 2, output.TotalCount)
	require.Len(t, output.Questions, 2)

	assert.Equal(t, "q1", output.Questions[0].ID)
	assert.Equal(t, "CR-LEGAL-01", output.Questions[0].CategoryKey)
	assert.True(t, output.Questions[0].Required)

	assert.Equal(t, "q2", output.Questions[1].ID)
	assert.Equal(t, "B", output.Questions[1].CategoryKey)
	assert.Equal(t, "yes_no", output.Questions[1].ResponseType)
}

func TestExecute_NoCachedScopeReturnsFullCatalog(t *testing.T) {
	handler := newTestHandler(t, &stubCatalog{questions: testCatalog()}, &stubScopeCache{})

	output, err := handler.Execute(context.Background(), &Input{AssessmentID: "a-1", StandardID: "std-1"})
	require.NoError(t, err)

	assert.False(t, output.ScopeApplied)
	assert.Equal(t, 3, output.TotalCount)
	assert.Equal(t, 3, output.CatalogCount)
}

func TestExecute_CacheErrorDegradesToFullCatalog(t *testing.T) {
	scopes := &stubScopeCache{getErr: errors.NewScopeCacheFailedError(stderrors.New("redis down"))}
	handler := newTestHandler(t, &stubCatalog{questions: testCatalog()}, scopes)

	output, err := handler.Execute(context.Background(), &Input{AssessmentID: "a-1", StandardID: "std-1"})
	require.NoError(t, err)

	assert.False(t, output.ScopeApplied)
	assert.Equal(t, 3, output.TotalCount)
}

func TestExecute_CatalogLoadFailure(t *testing.T) {
	catalog := &stubCatalog{err: errors.NewQueryExecutionFailedError("questions", stderrors.New("timeout"))}
	handler := newTestHandler(t, catalog, &stubScopeCache{})

	_, err := handler.Execute(context.Background(), &Input{AssessmentID: "a-1", StandardID: "std-1"})
	require.Error(t, err)

	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeQueryExecutionFailed, stdErr.Code)
}

func TestExecute_EmptyCatalog(t *testing.T) {
	handler := newTestHandler(t, &stubCatalog{}, &stubScopeCache{})

	output, err := handler.Execute(context.Background(), &Input{AssessmentID: "a-1", StandardID: "std-1"})
	require.NoError(t, err)

	assert.Empty(t, output.Questions)
	assert.Equal(t, 0, output.TotalCount)
	assert.Equal(t, 0, output.CatalogCount)
}
