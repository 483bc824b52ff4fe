package service

import (
	"testing"

	"pedagogia_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drawingAssessment(student, period, phase string) model.AssessmentResult {
	return model.AssessmentResult{
		ID:        model.PeriodAssessmentID(student, model.AssessmentDrawing, period),
		StudentID: student,
		Type:      model.AssessmentDrawing,
		Period:    period,
		Phase:     phase,
	}
}

func TestAggregateDashboard(t *testing.T) {
	students := []model.Student{
		{ID: "A001", Code: "A001", SchoolID: "E1", Series: "1º Ano", Grade: "1A"},
		{ID: "A002", Code: "A002", SchoolID: "E1", Series: "1º Ano", Grade: "1A"},
		{ID: "A003", Code: "A003", SchoolID: "E1", Series: "1º Ano", Grade: "1B"},
		{ID: "A004", Code: "A004", SchoolID: "E2", Series: "2º Ano", Grade: "2A"},
		{ID: "A005", Code: "A005", SchoolID: "E1", Series: "1º Ano", Grade: "1A"},
	}

	t.Run("cobertura conta avaliados distintos", func(t *testing.T) {
		assessments := []model.AssessmentResult{
			drawingAssessment("A001", model.PeriodInicial, model.PhaseGaratujaOrdenada),
			drawingAssessment("A002", model.PeriodInicial, model.PhaseEsquematismo),
			drawingAssessment("A003", model.PeriodInicial, model.PhasePending),
		}
		summary := AggregateDashboard(students, assessments, DashboardFilters{
			Type:   model.AssessmentDrawing,
			Period: model.PeriodInicial,
		})

		assert.Equal(t, 5, summary.TotalStudents)
		assert.Equal(t, 2, summary.Evaluated)
		assert.InDelta(t, 40.0, summary.CoveragePercent, 0.001)
	})

	t.Run("coorte vazia não divide por zero", func(t *testing.T) {
		summary := AggregateDashboard(nil, nil, DashboardFilters{
			Type:   model.AssessmentDrawing,
			Period: model.PeriodInicial,
		})
		assert.Equal(t, 0, summary.TotalStudents)
		assert.Equal(t, 0.0, summary.CoveragePercent)
		assert.Equal(t, "", summary.PredominantPhase)
	})

	t.Run("distribuição na ordem da taxonomia", func(t *testing.T) {
		assessments := []model.AssessmentResult{
			drawingAssessment("A001", model.PeriodInicial, model.PhaseEsquematismo),
			drawingAssessment("A002", model.PeriodInicial, "garatuja ordenada"),
			drawingAssessment("A003", model.PeriodInicial, model.PhaseEsquematismo),
		}
		summary := AggregateDashboard(students, assessments, DashboardFilters{
			Type:   model.AssessmentDrawing,
			Period: model.PeriodInicial,
		})

		require.Len(t, summary.Distribution, len(model.DrawingPhases))
		for i, pc := range summary.Distribution {
			assert.Equal(t, model.DrawingPhases[i], pc.Phase)
		}
		assert.Equal(t, 1, summary.Distribution[1].Count)
		assert.Equal(t, 2, summary.Distribution[3].Count)
		assert.Equal(t, model.PhaseEsquematismo, summary.PredominantPhase)
	})

	t.Run("filtros recortam a coorte", func(t *testing.T) {
		assessments := []model.AssessmentResult{
			drawingAssessment("A001", model.PeriodInicial, model.PhaseRealismo),
			drawingAssessment("A004", model.PeriodInicial, model.PhaseRealismo),
		}
		summary := AggregateDashboard(students, assessments, DashboardFilters{
			Type:     model.AssessmentDrawing,
			Period:   model.PeriodInicial,
			SchoolID: "E1",
			Grade:    "1A",
		})
		assert.Equal(t, 3, summary.TotalStudents)
		assert.Equal(t, 1, summary.Evaluated)
	})

	t.Run("registros coexistindo no mesmo período contam uma vez, vale o mais recente", func(t *testing.T) {
		older := model.AssessmentResult{
			ID:        model.NewAssessmentID(),
			StudentID: "A001",
			Type:      model.AssessmentDrawing,
			Period:    model.PeriodInicial,
			Phase:     model.PhaseEsquematismo,
			Date:      "2026-03-01T10:00:00Z",
		}
		newer := model.AssessmentResult{
			ID:        model.NewAssessmentID(),
			StudentID: "A001",
			Type:      model.AssessmentDrawing,
			Period:    model.PeriodInicial,
			Phase:     model.PhaseRealismo,
			Date:      "2026-03-15T10:00:00Z",
		}
		summary := AggregateDashboard(students, []model.AssessmentResult{older, newer}, DashboardFilters{
			Type:   model.AssessmentDrawing,
			Period: model.PeriodInicial,
		})

		assert.Equal(t, 1, summary.Evaluated)
		assert.Equal(t, 1, summary.Distribution[4].Count)
		assert.Equal(t, 0, summary.Distribution[3].Count)
		assert.InDelta(t, 100.0, summary.Distribution[4].Percent, 0.001)
		assert.Equal(t, model.PhaseRealismo, summary.PredominantPhase)
	})

	t.Run("evolução cobre os cinco períodos", func(t *testing.T) {
		assessments := []model.AssessmentResult{
			drawingAssessment("A001", model.PeriodInicial, model.PhaseGaratujaDesordenada),
			drawingAssessment("A001", model.Period1Bim, model.PhaseGaratujaOrdenada),
		}
		summary := AggregateDashboard(students, assessments, DashboardFilters{
			Type:   model.AssessmentDrawing,
			Period: model.PeriodInicial,
		})
		require.Len(t, summary.Evolution, len(model.Periods))
		assert.Equal(t, 1, summary.Evolution[0].Evaluated)
		assert.Equal(t, model.PhaseGaratujaOrdenada, summary.Evolution[1].PredominantPhase)
		assert.Equal(t, 0, summary.Evolution[4].Evaluated)
	})
}
