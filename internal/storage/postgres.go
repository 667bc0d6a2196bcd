// internal/storage/postgres.go
package storage

import (
	"context"
	"database/sql"

	"compliance-workers/internal/common/errors"
	"compliance-workers/internal/models"
	"compliance-workers/internal/scope"
)

// PostgresStore implements the read-side repositories against PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// ListQuestions returns the full catalog for a standard in catalog order.
func (s *PostgresStore) ListQuestions(ctx context.Context, standardID string) ([]models.Question, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, standard_id, text, category, category_code, appendix_code,
		       response_type, required, weight
		FROM questions
		WHERE standard_id = $1
		ORDER BY position, id`, standardID)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("questions", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		var category, categoryCode, appendixCode sql.NullString
		if err := rows.Scan(
			&q.ID, &q.StandardID, &q.Text, &category, &categoryCode,
			&appendixCode, &q.ResponseType, &q.Required, &q.Weight,
		); err != nil {
			return nil, errors.NewQueryExecutionFailedError("questions", err)
		}
		q.Category = category.String
		q.CategoryCode = categoryCode.String
		q.AppendixCode = appendixCode.String
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("questions", err)
	}
	return questions, nil
}

// ListAnswers returns the latest answer per question for an assessment.
// The table keeps one row per (assessment, question); writes replace.
func (s *PostgresStore) ListAnswers(ctx context.Context, assessmentID string) ([]models.Answer, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT question_id, assessment_id, value, compliance_status, confidence, updated_at
		FROM answers
		WHERE assessment_id = $1`, assessmentID)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("answers", err)
	}
	defer rows.Close()

	var answers []models.Answer
	for rows.Next() {
		var a models.Answer
		var status, confidence sql.NullString
		if err := rows.Scan(
			&a.QuestionID, &a.AssessmentID, &a.Value, &status, &confidence, &a.UpdatedAt,
		); err != nil {
			return nil, errors.NewQueryExecutionFailedError("answers", err)
		}
		a.ComplianceStatus = status.String
		a.Confidence = confidence.String
		answers = append(answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("answers", err)
	}
	return answers, nil
}

// GetIntakeAnswers returns the key/value responses of an intake form.
func (s *PostgresStore) GetIntakeAnswers(ctx context.Context, intakeFormID string) (scope.IntakeAnswers, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT question_key, value
		FROM intake_answers
		WHERE intake_form_id = $1`, intakeFormID)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("intake_answers", err)
	}
	defer rows.Close()

	answers := scope.IntakeAnswers{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, errors.NewQueryExecutionFailedError("intake_answers", err)
		}
		answers[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("intake_answers", err)
	}
	if len(answers) == 0 {
		return nil, errors.NewIntakeNotFoundError(intakeFormID)
	}
	return answers, nil
}
