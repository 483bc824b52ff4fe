package repository

import (
	"testing"

	"pedagogia_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnFor(t *testing.T) {
	t.Run("dez pares mapeados", func(t *testing.T) {
		seen := make(map[string]bool)
		for _, typ := range []model.AssessmentType{model.AssessmentDrawing, model.AssessmentWriting} {
			for _, period := range model.Periods {
				column, ok := ColumnFor(typ, period)
				require.True(t, ok, "par (%s, %s) sem coluna", typ, period)
				assert.False(t, seen[column], "coluna %s repetida", column)
				seen[column] = true
			}
		}
		assert.Len(t, seen, 10)
	})

	t.Run("tipos avulsos não têm coluna", func(t *testing.T) {
		_, ok := ColumnFor(model.AssessmentPhonological, model.PeriodInicial)
		assert.False(t, ok)
	})

	t.Run("período inválido não tem coluna", func(t *testing.T) {
		_, ok := ColumnFor(model.AssessmentDrawing, "5º Bim")
		assert.False(t, ok)
	})
}

func TestSetPhaseValueRoundTrip(t *testing.T) {
	row := model.AlunoRow{Codigo: "A001", Nome: "Ana"}

	for _, typ := range []model.AssessmentType{model.AssessmentDrawing, model.AssessmentWriting} {
		for _, period := range model.Periods {
			column, ok := ColumnFor(typ, period)
			require.True(t, ok)
			SetPhaseValue(&row, column, "fase-"+column)
		}
	}

	assessments := ExpandRow(&row)
	require.Len(t, assessments, 10)
	for _, a := range assessments {
		column, _ := ColumnFor(a.Type, a.Period)
		assert.Equal(t, "fase-"+column, a.Phase)
	}
}

func TestExpandRow(t *testing.T) {
	t.Run("colunas vazias não geram registro", func(t *testing.T) {
		row := model.AlunoRow{Codigo: "A001"}
		assert.Empty(t, ExpandRow(&row))
	})

	t.Run("ids sintetizados por par", func(t *testing.T) {
		row := model.AlunoRow{
			Codigo:             "A001",
			FaseDesenhoInicial: model.PhaseGaratujaOrdenada,
			FaseEscrita2Bim:    model.PhaseAlfabeticaParcial,
		}
		assessments := ExpandRow(&row)
		require.Len(t, assessments, 2)

		assert.Equal(t, model.PeriodAssessmentID("A001", model.AssessmentDrawing, model.PeriodInicial), assessments[0].ID)
		assert.Equal(t, model.AssessmentDrawing, assessments[0].Type)
		assert.Equal(t, model.PhaseGaratujaOrdenada, assessments[0].Phase)

		assert.Equal(t, model.AssessmentWriting, assessments[1].Type)
		assert.Equal(t, model.Period2Bim, assessments[1].Period)
	})

	t.Run("pendente vira registro pendente", func(t *testing.T) {
		row := model.AlunoRow{Codigo: "A001", FaseDesenho1Bim: model.PhasePending}
		assessments := ExpandRow(&row)
		require.Len(t, assessments, 1)
		assert.True(t, assessments[0].IsPending())
	})
}
