package service

import (
	"testing"

	"pedagogia_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTabularReport(t *testing.T) {
	students := []model.Student{
		{ID: "A001", Code: "A001", Name: "Ana", SchoolID: "E1", Series: "1º Ano", Grade: "1A"},
		{ID: "A002", Code: "A002", Name: "Bruno", SchoolID: "E2", Series: "2º Ano", Grade: "2A"},
	}
	assessments := []model.AssessmentResult{
		drawingAssessment("A001", model.PeriodInicial, model.PhaseGaratujaDesordenada),
		drawingAssessment("A001", model.Period1Bim, model.PhaseGaratujaOrdenada),
		{StudentID: "A001", Type: model.AssessmentWriting, Period: model.PeriodInicial, Phase: model.PhasePreAlfabetica},
	}

	t.Run("uma célula por período, mais recente em destaque", func(t *testing.T) {
		report := BuildTabularReport(students, assessments, model.AssessmentDrawing, DashboardFilters{})
		require.Len(t, report.Rows, 2)
		assert.Equal(t, model.Periods, report.Periods)

		ana := report.Rows[0]
		assert.Equal(t, model.PhaseGaratujaDesordenada, ana.Phases[model.PeriodInicial])
		assert.Equal(t, model.PhaseGaratujaOrdenada, ana.Phases[model.Period1Bim])
		assert.Equal(t, model.PhaseGaratujaOrdenada, ana.LatestPhase)

		bruno := report.Rows[1]
		assert.Empty(t, bruno.Phases)
		assert.Empty(t, bruno.LatestPhase)
	})

	t.Run("filtra a coorte", func(t *testing.T) {
		report := BuildTabularReport(students, assessments, model.AssessmentDrawing, DashboardFilters{SchoolID: "E2"})
		require.Len(t, report.Rows, 1)
		assert.Equal(t, "Bruno", report.Rows[0].Name)
	})

	t.Run("escrita não vaza para o relatório de desenho", func(t *testing.T) {
		report := BuildTabularReport(students, assessments, model.AssessmentWriting, DashboardFilters{})
		ana := report.Rows[0]
		assert.Equal(t, model.PhasePreAlfabetica, ana.Phases[model.PeriodInicial])
		assert.NotContains(t, ana.Phases, model.Period1Bim)
	})
}

func TestFilterReportRows(t *testing.T) {
	rows := []ReportRow{
		{Code: "A001", Name: "João Silva"},
		{Code: "A002", Name: "Maria José"},
		{Code: "B010", Name: "Pedro"},
	}

	t.Run("busca por nome ignora acentos e caixa", func(t *testing.T) {
		got := FilterReportRows(rows, "joao")
		require.Len(t, got, 1)
		assert.Equal(t, "A001", got[0].Code)
	})

	t.Run("busca por código", func(t *testing.T) {
		got := FilterReportRows(rows, "b010")
		require.Len(t, got, 1)
		assert.Equal(t, "Pedro", got[0].Name)
	})

	t.Run("busca vazia devolve tudo", func(t *testing.T) {
		assert.Len(t, FilterReportRows(rows, ""), 3)
	})

	t.Run("sem correspondência", func(t *testing.T) {
		assert.Empty(t, FilterReportRows(rows, "zzz"))
	})
}
