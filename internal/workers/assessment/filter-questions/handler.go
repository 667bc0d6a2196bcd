// internal/workers/assessment/filter-questions/handler.go
package filterquestions

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"compliance-workers/internal/common/errors"
	"compliance-workers/internal/common/logger"
	"compliance-workers/internal/scoring"
	"compliance-workers/internal/storage"
)

const (
	TaskType = "filter-questions"
)

type Handler struct {
	config  *Config
	catalog storage.QuestionCatalog
	scopes  storage.ScopeCache
	logger  logger.Logger
}

func NewHandler(config *Config, catalog storage.QuestionCatalog, scopes storage.ScopeCache, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		catalog: catalog,
		scopes:  scopes,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}
	if input.StandardID == "" {
		h.failJob(client, job, string(errors.ErrCodeInputValidationFailed), "standardId is required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		code := string(errors.ErrCodeQueryExecutionFailed)
		var stdErr *errors.StandardError
		if stderrors.As(err, &stdErr) {
			code = string(stdErr.Code)
		}
		h.failJob(client, job, code, err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	catalog, err := h.catalog.ListQuestions(ctx, input.StandardID)
	if err != nil {
		return nil, err
	}

	// Cache miss or cache trouble both mean "no scope": the full catalog
	// applies, which favors completeness over precision.
	sd, err := h.scopes.GetCachedScope(ctx, input.AssessmentID)
	if err != nil {
		h.logger.Warn("scope cache unavailable, returning full catalog", map[string]interface{}{
			"assessmentId": input.AssessmentID,
			"error":        err.Error(),
		})
		sd = nil
	}

	filtered := scoring.FilterQuestions(catalog, sd)
	questions := make([]ApplicableQuestion, 0, len(filtered))
	for _, q := range filtered {
		questions = append(questions, ApplicableQuestion{
			ID:           q.ID,
			Text:         q.Text,
			CategoryKey:  scoring.CategoryKeyFor(q),
			Required:     q.Required,
			ResponseType: string(q.ResponseType),
		})
	}

	return &Output{
		Questions:    questions,
		TotalCount:   len(questions),
		CatalogCount: len(catalog),
		ScopeApplied: sd != nil,
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if _, err = cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// Execute exposes the job logic for tests.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
