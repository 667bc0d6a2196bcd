// internal/workers/assessment/calculate-score/handler.go
package calculatescore

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"compliance-workers/internal/common/errors"
	"compliance-workers/internal/common/logger"
	"compliance-workers/internal/common/observability"
	"compliance-workers/internal/models"
	"compliance-workers/internal/scoring"
)

const (
	TaskType = "calculate-score"
)

type Handler struct {
	config *Config
	engine *scoring.Engine
	obs    *observability.Observability
	logger logger.Logger
}

func NewHandler(config *Config, engine *scoring.Engine, obs *observability.Observability, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		engine: engine,
		obs:    obs,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
	if input.AssessmentID == "" || input.StandardID == "" {
		h.failJob(client, job, string(errors.ErrCodeInputValidationFailed), "assessmentId and standardId are required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	started := time.Now()
	output, err := h.execute(ctx, &input)
	status := "ok"
	if err != nil {
		status = "error"
	}
	if h.obs != nil {
		h.obs.RecordScoringRun(ctx, status)
		h.obs.RecordScoringDuration(ctx, time.Since(started), status)
	}

	if err != nil {
		code := string(errors.ErrCodeScoringUnavailable)
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
	result, err := h.calculate(ctx, input)
	if err != nil {
		return nil, err
	}
	return &Output{
		Result:            result,
		OverallPercentage: result.OverallPercentage,
		ComplianceStatus:  result.ComplianceStatus,
		ReadinessLevel:    result.ReadinessLevel,
	}, nil
}

func (h *Handler) calculate(ctx context.Context, input *Input) (*models.ScoringResult, error) {
	if input.IntakeFormID != "" {
		return h.engine.CalculateScoreFromIntake(ctx, input.AssessmentID, input.StandardID, input.IntakeFormID)
	}
	return h.engine.CalculateScore(ctx, input.AssessmentID, input.StandardID, nil)
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
