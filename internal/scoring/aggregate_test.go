// internal/scoring/aggregate_test.go
package scoring

import (
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compliance-workers/internal/models"
)

func answerAt(questionID, value string, at time.Time) models.Answer {
	return models.Answer{QuestionID: questionID, Value: value, UpdatedAt: at}
}

func findCategory(t *testing.T, scores []models.CategoryScore, key string) models.CategoryScore {
	t.Helper()
	for _, cs := range scores {
		if cs.CategoryKey == key {
			return cs
		}
	}
	t.Fatalf("category %s not found", key)
	return models.CategoryScore{}
}

func TestAggregateCategories_BasicAggregation(t *testing.T) {
	questions := []models.Question{
		{ID: "q1", CategoryCode: "CR-DATA", ResponseType: models.ResponseYesNo, Required: true, Weight: 1},
		{ID: "q2", CategoryCode: "CR-DATA", ResponseType: models.ResponseYesNo, Required: true, Weight: 1},
		{ID: "q3", AppendixCode: "G", ResponseType: models.ResponseYesNo, Weight: 1},
	}
	answers := []models.Answer{
		answerAt("q1", "yes", time.Now()),
		answerAt("q2", "yes", time.Now()),
	}

	scores := AggregateCategories(questions, answers, DefaultWeightTable())
	require.Len(t, scores, 2)

	data := findCategory(t, scores, "CR-DATA")
	assert.Equal(t, 200, data.Score)
	assert.Equal(t, 200, data.MaxScore)
	assert.Equal(t, 100, data.Percentage)
	assert.Equal(t, 2, data.AnsweredQuestions)
	assert.Equal(t, 2, data.TotalQuestions)
	assert.True(t, data.Required)
	assert.Empty(t, data.CriticalGaps)

	// Unanswered optional question counts fully against max but raises no gap.
	g := findCategory(t, scores, "G")
	assert.Equal(t, 0, g.Score)
	assert.Equal(t, 100, g.MaxScore)
	assert.Equal(t, 0, g.Percentage)
	assert.Equal(t, 0, g.AnsweredQuestions)
	assert.Equal(t, 1, g.TotalQuestions)
	assert.Empty(t, g.CriticalGaps)
}

func TestAggregateCategories_LatestAnswerWins(t *testing.T) {
	questions := []models.Question{
		{ID: "q1", CategoryCode: "CR-DATA", ResponseType: models.ResponseYesNo, Weight: 1},
	}
	earlier := time.Now().Add(-time.Hour)
	answers := []models.Answer{
		answerAt("q1", "yes", time.Now()),
		answerAt("q1", "no", earlier), // stale revision must not win
	}

	scores := AggregateCategories(questions, answers, DefaultWeightTable())
	require.Len(t, scores, 1)
	assert.Equal(t, 100, scores[0].Score)
	assert.Equal(t, 1, scores[0].AnsweredQuestions)
}

func TestAggregateCategories_UpgradedAnswerNeverLowersPercentage(t *testing.T) {
	questions := []models.Question{
		{ID: "q1", CategoryCode: "CR-DATA", ResponseType: models.ResponseYesNo, Required: true, Weight: 1},
		{ID: "q2", CategoryCode: "CR-DATA", ResponseType: models.ResponseYesNo, Required: true, Weight: 1},
	}
	recorded := time.Now().Add(-time.Hour)
	answers := []models.Answer{
		answerAt("q1", "partial", recorded),
		answerAt("q2", "yes", recorded),
	}

	before := findCategory(t, AggregateCategories(questions, answers, DefaultWeightTable()), "CR-DATA")
	assert.Equal(t, 75, before.Percentage)

	// Re-answering q1 with a higher-scoring value must not lower the
	// category percentage.
	answers = append(answers, answerAt("q1", "yes", time.Now()))
	after := findCategory(t, AggregateCategories(questions, answers, DefaultWeightTable()), "CR-DATA")

	assert.Equal(t, 100, after.Percentage)
	assert.GreaterOrEqual(t, after.Percentage, before.Percentage)
	assert.GreaterOrEqual(t, after.Score, before.Score)
	assert.Equal(t, before.MaxScore, after.MaxScore)
}

func TestAggregateCategories_RequiredGaps(t *testing.T) {
	questions := []models.Question{
		{ID: "q1", CategoryCode: "CR-LEGAL", Text: "Permits current?", ResponseType: models.ResponseYesNo, Required: true, Weight: 1},
		{ID: "q2", CategoryCode: "CR-LEGAL", Text: "Licenses displayed?", ResponseType: models.ResponseYesNo, Required: true, Weight: 1},
	}
	answers := []models.Answer{
		answerAt("q1", "no", time.Now()),
		// q2 unanswered
	}

	scores := AggregateCategories(questions, answers, DefaultWeightTable())
	require.Len(t, scores, 1)

	legal := findCategory(t, scores, "CR-LEGAL")
	require.Len(t, legal.CriticalGaps, 2)
	assert.Equal(t, "Below requirement: Permits current?", legal.CriticalGaps[0])
	assert.Equal(t, "Missing required: Licenses displayed?", legal.CriticalGaps[1])
}

func TestAggregateCategories_GapCapAndTruncation(t *testing.T) {
	longText := strings.Repeat("x", 80)
	var questions []models.Question
	for i := 0; i < 5; i++ {
		questions = append(questions, models.Question{
			ID:           fmt.Sprintf("q%d", i),
			CategoryCode: "CR-EHS",
			Text:         longText,
			ResponseType: models.ResponseYesNo,
			Required:     true,
			Weight:       1,
		})
	}

	scores := AggregateCategories(questions, nil, DefaultWeightTable())
	require.Len(t, scores, 1)

	gaps := scores[0].CriticalGaps
	require.Len(t, gaps, 3) // capped per category
	for _, gap := range gaps {
		text := strings.TrimPrefix(gap, "Missing required: ")
		assert.Len(t, text, 50)
		assert.True(t, strings.HasSuffix(text, "..."))
	}
}

func TestAggregateCategories_GapTruncationKeepsValidUTF8(t *testing.T) {
	questions := []models.Question{
		{ID: "q1", CategoryCode: "CR-EHS", Text: strings.Repeat("ü", 40), ResponseType: models.ResponseYesNo, Required: true, Weight: 1},
	}

	scores := AggregateCategories(questions, nil, DefaultWeightTable())
	require.Len(t, scores, 1)
	require.Len(t, scores[0].CriticalGaps, 1)

	gap := scores[0].CriticalGaps[0]
	assert.True(t, utf8.ValidString(gap))
	assert.True(t, strings.HasSuffix(gap, "..."))
	assert.LessOrEqual(t, len(strings.TrimPrefix(gap, "Missing required: ")), 50)
}

func TestAggregateCategories_DeterministicOrdering(t *testing.T) {
	questions := []models.Question{
		{ID: "q1", AppendixCode: "G", ResponseType: models.ResponseYesNo, Weight: 1},
		{ID: "q2", CategoryCode: "CR-DATA", ResponseType: models.ResponseYesNo, Weight: 1},
		{ID: "q3", AppendixCode: "B", ResponseType: models.ResponseYesNo, Weight: 1},
		{ID: "q4", CategoryCode: "CR-CLOSURE", ResponseType: models.ResponseYesNo, Weight: 1},
	}

	scores := AggregateCategories(questions, nil, DefaultWeightTable())
	require.Len(t, scores, 4)

	// Heaviest first; equal weights break ties on the key.
	assert.Equal(t, "B", scores[0].CategoryKey)        // 15
	assert.Equal(t, "CR-DATA", scores[1].CategoryKey)  // 15
	assert.Equal(t, "CR-CLOSURE", scores[2].CategoryKey) // 5
	assert.Equal(t, "G", scores[3].CategoryKey)        // 5
}

func TestAggregateCategories_EmptyInputs(t *testing.T) {
	assert.Empty(t, AggregateCategories(nil, nil, DefaultWeightTable()))
}

func TestCollectCriticalIssues(t *testing.T) {
	categories := []models.CategoryScore{
		{DisplayName: "Data Security Management", CriticalGaps: []string{"Missing required: Wipe logs retained?"}},
		{DisplayName: "Legal & Regulatory Compliance"},
		{DisplayName: "Data Sanitization", CriticalGaps: []string{"Below requirement: Verification sampling", "Missing required: Media destruction records"}},
	}

	issues := CollectCriticalIssues(categories)
	assert.Equal(t, []string{
		"[Data Security Management] Missing required: Wipe logs retained?",
		"[Data Sanitization] Below requirement: Verification sampling",
		"[Data Sanitization] Missing required: Media destruction records",
	}, issues)
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0, percentage(50, 0))
	assert.Equal(t, 0, percentage(0, 100))
	assert.Equal(t, 100, percentage(100, 100))
	assert.Equal(t, 86, percentage(3000, 3500)) // 85.71 rounds up
	assert.Equal(t, 43, percentage(1500, 3500)) // 42.86 rounds up
}
