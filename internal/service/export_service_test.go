package service

import (
	"bytes"
	"testing"

	"pedagogia_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpreadsheetRoundTrip(t *testing.T) {
	data := ExportData{
		Rows: []model.AlunoRow{
			{
				Codigo:             "A001",
				Nome:               "Ana Souza",
				DataNascimento:     "2019-05-10",
				Escola:             "E1",
				Serie:              "1º Ano",
				Turma:              "1A",
				Observacoes:        "usa óculos",
				FaseDesenhoInicial: model.PhaseGaratujaOrdenada,
				FaseEscrita2Bim:    model.PhaseAlfabeticaParcial,
			},
			{
				Codigo: "A002",
				Nome:   "Bruno Lima",
			},
		},
		Schools: []model.School{{ID: "E1", Code: "E1", Name: "Escola Monteiro Lobato"}},
		Series:  []model.Series{{ID: "1º Ano", Name: "1º Ano"}},
		Grades:  []model.Grade{{ID: "1A", Name: "1A"}},
	}

	buf, err := BuildSpreadsheet(data)
	require.NoError(t, err)

	wb, err := ParseSpreadsheet(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, wb.Students, 2)

	first := wb.Students[0]
	assert.Equal(t, "A001", first.Code)
	assert.Equal(t, "Ana Souza", first.Name)
	assert.Equal(t, "2019-05-10", first.BirthDate)
	assert.Equal(t, "E1", first.SchoolID)
	assert.Equal(t, "Escola Monteiro Lobato", first.SchoolName)
	assert.Equal(t, "1º Ano", first.Series)
	assert.Equal(t, "1A", first.Grade)
	assert.Equal(t, "usa óculos", first.Observations)
	require.Len(t, first.Phases, 2)
	assert.Equal(t, model.AssessmentDrawing, first.Phases[0].Type)
	assert.Equal(t, model.PeriodInicial, first.Phases[0].Period)
	assert.Equal(t, model.PhaseGaratujaOrdenada, first.Phases[0].Phase)
	assert.Equal(t, model.AssessmentWriting, first.Phases[1].Type)
	assert.Equal(t, model.Period2Bim, first.Phases[1].Period)

	second := wb.Students[1]
	assert.Equal(t, "A002", second.Code)
	assert.Empty(t, second.Phases)

	// As abas de referência voltam inteiras.
	require.Len(t, wb.Schools, 1)
	assert.Equal(t, "E1", wb.Schools[0].Code)
	assert.Equal(t, "Escola Monteiro Lobato", wb.Schools[0].Name)
	assert.Equal(t, []string{"1º Ano"}, wb.Series)
	assert.Equal(t, []string{"1A"}, wb.Grades)

	// Reimportar o que foi exportado não grava nada.
	dirty, summary := MergeImport(data.Rows, wb.Students)
	assert.Equal(t, 0, summary.Added)
	assert.Equal(t, 2, summary.Skipped)
	assert.Empty(t, dirty)

	// O código da escola sobrevive ao ciclo; o nome não o sobrescreve.
	assert.Equal(t, "E1", wb.Students[0].SchoolID)
}
