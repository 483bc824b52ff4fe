package service

import (
	"testing"

	"pedagogia_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeImport(t *testing.T) {
	imported := []ImportedStudent{
		{
			Code:      "A001",
			Name:      "Ana Souza",
			BirthDate: "2019-05-10",
			SchoolID:  "E1",
			Series:    "1º Ano",
			Grade:     "1A",
			Phases: []ImportedPhase{
				{Type: model.AssessmentDrawing, Period: model.PeriodInicial, Phase: model.PhaseGaratujaOrdenada},
			},
		},
		{
			Code:     "A002",
			Name:     "Bruno Lima",
			SchoolID: "E1",
		},
	}

	t.Run("base vazia adiciona tudo", func(t *testing.T) {
		dirty, summary := MergeImport(nil, imported)
		assert.Equal(t, 2, summary.Added)
		assert.Equal(t, 0, summary.Skipped)
		require.Len(t, dirty, 2)
		assert.Equal(t, model.PhaseGaratujaOrdenada, dirty[0].FaseDesenhoInicial)
	})

	t.Run("segunda importação do mesmo arquivo não altera nada", func(t *testing.T) {
		first, _ := MergeImport(nil, imported)
		dirty, summary := MergeImport(first, imported)
		assert.Equal(t, 0, summary.Added)
		assert.Equal(t, 2, summary.Skipped)
		assert.Equal(t, summary.TotalRows, summary.Skipped)
		assert.Empty(t, dirty)
	})

	t.Run("aluno novo sem código ganha um código gerado", func(t *testing.T) {
		dirty, summary := MergeImport(nil, []ImportedStudent{{
			Name:      "Carla Dias",
			BirthDate: "2019-08-01",
		}})
		assert.Equal(t, 1, summary.Added)
		assert.Empty(t, summary.Errors)
		require.Len(t, dirty, 1)
		assert.NotEmpty(t, dirty[0].Codigo)
		assert.Equal(t, "Carla Dias", dirty[0].Nome)
	})

	t.Run("casa por nome e nascimento quando o código falta", func(t *testing.T) {
		existing := []model.AlunoRow{
			{Codigo: "X900", Nome: "Ana Souza", DataNascimento: "2019-05-10"},
		}
		dirty, summary := MergeImport(existing, []ImportedStudent{{
			Name:      "ana souza",
			BirthDate: "2019-05-10",
			SchoolID:  "E1",
		}})
		assert.Equal(t, 0, summary.Added)
		assert.Equal(t, 1, summary.Skipped)
		require.Len(t, dirty, 1)
		assert.Equal(t, "X900", dirty[0].Codigo)
		assert.Equal(t, "E1", dirty[0].Escola)
	})

	t.Run("escola só preenche quando vazia", func(t *testing.T) {
		existing := []model.AlunoRow{
			{Codigo: "A001", Nome: "Ana Souza", Escola: "E9"},
		}
		dirty, summary := MergeImport(existing, []ImportedStudent{{
			Code:     "A001",
			Name:     "Ana Souza",
			SchoolID: "E1",
		}})
		assert.Equal(t, 1, summary.Skipped)
		assert.Empty(t, dirty)
	})

	t.Run("linha casada conta como existente mesmo recebendo fase nova", func(t *testing.T) {
		existing := []model.AlunoRow{
			{Codigo: "A001", Nome: "Ana Souza"},
		}
		dirty, summary := MergeImport(existing, []ImportedStudent{{
			Code: "A001",
			Name: "Ana Souza",
			Phases: []ImportedPhase{
				{Type: model.AssessmentWriting, Period: model.Period1Bim, Phase: model.PhasePreAlfabetica},
			},
		}})
		assert.Equal(t, 0, summary.Added)
		assert.Equal(t, 1, summary.Skipped)
		require.Len(t, dirty, 1)
		assert.Equal(t, model.PhasePreAlfabetica, dirty[0].FaseEscrita1Bim)
	})

	t.Run("fase igual após normalização não grava nada", func(t *testing.T) {
		existing := []model.AlunoRow{
			{Codigo: "A001", Nome: "Ana Souza", FaseDesenhoInicial: "Garatuja Ordenada"},
		}
		dirty, summary := MergeImport(existing, []ImportedStudent{{
			Code: "A001",
			Name: "Ana Souza",
			Phases: []ImportedPhase{
				{Type: model.AssessmentDrawing, Period: model.PeriodInicial, Phase: "GARATUJA ORDENADA"},
			},
		}})
		assert.Equal(t, 1, summary.Skipped)
		assert.Empty(t, dirty)
	})

	t.Run("linha sem código e sem nome vira erro", func(t *testing.T) {
		_, summary := MergeImport(nil, []ImportedStudent{{BirthDate: "2019-01-01"}})
		assert.Equal(t, 0, summary.Added)
		require.Len(t, summary.Errors, 1)
	})

	t.Run("resumo em português", func(t *testing.T) {
		_, summary := MergeImport(nil, imported)
		assert.Contains(t, summary.Message, "2 aluno(s) adicionado(s)")
	})
}

func TestResolveSchoolNames(t *testing.T) {
	schools := []model.School{
		{ID: "E1", Code: "E1", Name: "Escola Monteiro Lobato"},
	}

	t.Run("resolve o código pelo nome, sem distinção de caixa", func(t *testing.T) {
		students := []ImportedStudent{
			{Code: "A001", SchoolName: "escola monteiro lobato"},
		}
		unresolved := ResolveSchoolNames(students, schools)
		assert.Empty(t, unresolved)
		assert.Equal(t, "E1", students[0].SchoolID)
	})

	t.Run("código presente tem prioridade sobre o nome", func(t *testing.T) {
		students := []ImportedStudent{
			{Code: "A001", SchoolID: "E7", SchoolName: "Escola Monteiro Lobato"},
		}
		ResolveSchoolNames(students, schools)
		assert.Equal(t, "E7", students[0].SchoolID)
	})

	t.Run("nome sem cadastro volta uma única vez", func(t *testing.T) {
		students := []ImportedStudent{
			{Code: "A001", SchoolName: "Escola Nova"},
			{Code: "A002", SchoolName: "escola nova"},
		}
		unresolved := ResolveSchoolNames(students, schools)
		assert.Equal(t, []string{"Escola Nova"}, unresolved)
		assert.Empty(t, students[0].SchoolID)
	})
}

func TestClassifyHeader(t *testing.T) {
	t.Run("cabeçalho completo", func(t *testing.T) {
		specs := classifyHeader([]string{
			"Código", "Nome", "Data de Nascimento", "Série", "Turma",
			"Escola (Código)", "Escola (Nome)",
			"Desenho - Inicial", "Escrita - 2º Bim", "Observações",
		})
		require.NotNil(t, specs)
		assert.Equal(t, "code", specs[0].field)
		assert.Equal(t, "name", specs[1].field)
		assert.Equal(t, "birthDate", specs[2].field)
		assert.Equal(t, "series", specs[3].field)
		assert.Equal(t, "grade", specs[4].field)
		assert.Equal(t, "school", specs[5].field)
		assert.Equal(t, "schoolName", specs[6].field)
		assert.Equal(t, "observations", specs[9].field)

		require.NotNil(t, specs[7].phase)
		assert.Equal(t, model.AssessmentDrawing, specs[7].phase.Type)
		assert.Equal(t, model.PeriodInicial, specs[7].phase.Period)

		require.NotNil(t, specs[8].phase)
		assert.Equal(t, model.AssessmentWriting, specs[8].phase.Type)
		assert.Equal(t, model.Period2Bim, specs[8].phase.Period)
	})

	t.Run("escola em coluna única vale como código", func(t *testing.T) {
		specs := classifyHeader([]string{"Código", "Nome", "Escola"})
		require.NotNil(t, specs)
		assert.Equal(t, "school", specs[2].field)
	})

	t.Run("linha sem âncora não é cabeçalho", func(t *testing.T) {
		assert.Nil(t, classifyHeader([]string{"Relatório de Sondagens", "", "2026"}))
	})
}

func TestNormalizeDateCell(t *testing.T) {
	assert.Equal(t, "2019-05-10", normalizeDateCell("10/05/2019"))
	assert.Equal(t, "2019-05-10", normalizeDateCell("2019-05-10"))
	assert.Equal(t, "sem data", normalizeDateCell("sem data"))
}
