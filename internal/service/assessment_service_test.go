package service

import (
	"testing"

	"pedagogia_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestFor(t *testing.T) {
	t.Run("data mais recente vence", func(t *testing.T) {
		assessments := []model.AssessmentResult{
			{StudentID: "A001", Type: model.AssessmentDrawing, Period: model.Period2Bim, Phase: "B", Date: "2026-06-01T10:00:00Z"},
			{StudentID: "A001", Type: model.AssessmentDrawing, Period: model.Period1Bim, Phase: "A", Date: "2026-04-01T10:00:00Z"},
		}
		latest := LatestFor(assessments, "A001", model.AssessmentDrawing)
		require.NotNil(t, latest)
		assert.Equal(t, "B", latest.Phase)
	})

	t.Run("sem data desempata pelo período mais tardio", func(t *testing.T) {
		assessments := []model.AssessmentResult{
			{StudentID: "A001", Type: model.AssessmentWriting, Period: model.PeriodInicial, Phase: "A"},
			{StudentID: "A001", Type: model.AssessmentWriting, Period: model.Period3Bim, Phase: "C"},
			{StudentID: "A001", Type: model.AssessmentWriting, Period: model.Period1Bim, Phase: "B"},
		}
		latest := LatestFor(assessments, "A001", model.AssessmentWriting)
		require.NotNil(t, latest)
		assert.Equal(t, model.Period3Bim, latest.Period)
	})

	t.Run("filtra por aluno e tipo", func(t *testing.T) {
		assessments := []model.AssessmentResult{
			{StudentID: "A001", Type: model.AssessmentDrawing, Period: model.PeriodInicial, Phase: "A"},
			{StudentID: "A002", Type: model.AssessmentWriting, Period: model.Period4Bim, Phase: "Z"},
		}
		assert.Nil(t, LatestFor(assessments, "A001", model.AssessmentWriting))
		assert.Nil(t, LatestFor(assessments, "A003", model.AssessmentDrawing))
	})
}
