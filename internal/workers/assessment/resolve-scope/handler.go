// internal/workers/assessment/resolve-scope/handler.go
package resolvescope

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/xeipuuv/gojsonschema"

	"compliance-workers/internal/common/errors"
	"compliance-workers/internal/common/logger"
	"compliance-workers/internal/scope"
	"compliance-workers/internal/storage"
)

const (
	TaskType = "resolve-scope"
)

// inputSchema guards the job payload before any storage call is made.
var inputSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"assessmentId": map[string]interface{}{"type": "string", "minLength": 1},
		"intakeFormId": map[string]interface{}{"type": "string", "minLength": 1},
	},
	"required": []interface{}{"assessmentId", "intakeFormId"},
}

type Handler struct {
	config   *Config
	intake   storage.IntakeStore
	scopes   storage.ScopeCache
	resolver *scope.Resolver
	logger   logger.Logger
}

func NewHandler(config *Config, intake storage.IntakeStore, scopes storage.ScopeCache, resolver *scope.Resolver, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		intake:   intake,
		scopes:   scopes,
		resolver: resolver,
		logger:   log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	input, err := parseInput(job.Variables)
	if err != nil {
		h.failJob(client, job, string(errors.ErrCodeInputValidationFailed), err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, input)
	if err != nil {
		code, message := classifyError(err)
		h.failJob(client, job, code, message)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if cached, err := h.scopes.GetCachedScope(ctx, input.AssessmentID); err == nil && cached != nil {
		return &Output{Scope: cached, AppendixCount: len(cached.Appendices), Cached: true}, nil
	}

	answers, err := h.intake.GetIntakeAnswers(ctx, input.IntakeFormID)
	if err != nil {
		return nil, err
	}

	descriptor, err := h.resolver.Resolve(answers)
	if err != nil {
		return nil, err
	}

	if err := h.scopes.SaveScope(ctx, input.AssessmentID, descriptor); err != nil {
		// Cache writes are best effort; the descriptor re-derives identically.
		h.logger.Warn("failed to cache scope", map[string]interface{}{
			"assessmentId": input.AssessmentID,
			"error":        err.Error(),
		})
	}

	h.logger.Info("scope resolved", map[string]interface{}{
		"assessmentId":     input.AssessmentID,
		"appendices":       strings.Join(descriptor.Appendices, ","),
		"complexityFactor": descriptor.ComplexityFactor,
	})

	return &Output{Scope: descriptor, AppendixCount: len(descriptor.Appendices)}, nil
}

func parseInput(variables string) (*Input, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(variables), &raw); err != nil {
		return nil, fmt.Errorf("parse input: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(inputSchema),
		gojsonschema.NewGoLoader(raw),
	)
	if err != nil {
		return nil, fmt.Errorf("validate input: %w", err)
	}
	if !result.Valid() {
		var details []string
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		return nil, errors.NewInputValidationFailedError(strings.Join(details, "; "))
	}

	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, fmt.Errorf("parse input: %w", err)
	}
	return &input, nil
}

func classifyError(err error) (code, message string) {
	var stdErr *errors.StandardError
	if stderrors.As(err, &stdErr) {
		return string(stdErr.Code), stdErr.Message
	}
	return string(errors.ErrCodeScopeResolutionFailed), err.Error()
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
