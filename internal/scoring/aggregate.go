// internal/scoring/aggregate.go
package scoring

import (
	"fmt"
	"math"
	"sort"
	"unicode/utf8"

	"compliance-workers/internal/models"
)

const (
	maxGapsPerCategory = 3
	gapTextLimit       = 50
)

// AggregateCategories joins the filtered questions with their answers and
// produces one fully recomputed CategoryScore per category key. Unanswered
// questions contribute 0 against a full max, so they drag the percentage
// down until answered; missing or failing required questions are recorded
// as critical gaps (first three found, in catalog order).
func AggregateCategories(questions []models.Question, answers []models.Answer, table WeightTable) []models.CategoryScore {
	latest := make(map[string]models.Answer, len(answers))
	for _, a := range answers {
		if prev, ok := latest[a.QuestionID]; !ok || a.UpdatedAt.After(prev.UpdatedAt) {
			latest[a.QuestionID] = a
		}
	}

	byKey := make(map[string]*models.CategoryScore)
	var keys []string

	for _, q := range questions {
		key := CategoryKeyFor(q)
		cs, ok := byKey[key]
		if !ok {
			cw := table.Lookup(key)
			cs = &models.CategoryScore{
				CategoryKey: key,
				DisplayName: cw.Name,
				Weight:      cw.Weight,
				Required:    cw.Required,
			}
			byKey[key] = cs
			keys = append(keys, key)
		}

		cs.TotalQuestions++
		answer, answered := latest[q.ID]
		if !answered {
			_, qMax := NormalizeResponse(q, models.Answer{})
			cs.MaxScore += qMax
			if q.Required {
				addGap(cs, "Missing required: "+truncate(q.Text, gapTextLimit))
			}
			continue
		}

		cs.AnsweredQuestions++
		qScore, qMax := NormalizeResponse(q, answer)
		cs.Score += qScore
		cs.MaxScore += qMax
		if q.Required && qScore < qMax {
			addGap(cs, "Below requirement: "+truncate(q.Text, gapTextLimit))
		}
	}

	scores := make([]models.CategoryScore, 0, len(keys))
	for _, key := range keys {
		cs := byKey[key]
		cs.Percentage = percentage(cs.Score, cs.MaxScore)
		scores = append(scores, *cs)
	}

	// Deterministic ordering for serialized output: heaviest first.
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Weight != scores[j].Weight {
			return scores[i].Weight > scores[j].Weight
		}
		return scores[i].CategoryKey < scores[j].CategoryKey
	})
	return scores
}

// CollectCriticalIssues flattens category critical gaps into the result's
// issue list, prefixed with the category display name.
func CollectCriticalIssues(categories []models.CategoryScore) []string {
	var issues []string
	for _, cs := range categories {
		for _, gap := range cs.CriticalGaps {
			issues = append(issues, fmt.Sprintf("[%s] %s", cs.DisplayName, gap))
		}
	}
	return issues
}

func addGap(cs *models.CategoryScore, text string) {
	if len(cs.CriticalGaps) < maxGapsPerCategory {
		cs.CriticalGaps = append(cs.CriticalGaps, text)
	}
}

func percentage(score, max int) int {
	if max <= 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(max) * 100))
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
