package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodAssessmentID(t *testing.T) {
	id := PeriodAssessmentID("A001", AssessmentDrawing, Period2Bim)
	assert.Equal(t, "A001_DESENHO_2º Bim", id)

	// Salvar duas vezes o mesmo par produz o mesmo id.
	assert.Equal(t, id, PeriodAssessmentID("A001", AssessmentDrawing, Period2Bim))
}

func TestParsedDate(t *testing.T) {
	t.Run("aceita RFC3339 e data simples", func(t *testing.T) {
		a := AssessmentResult{Date: "2026-03-15T10:00:00Z"}
		assert.Equal(t, 2026, a.ParsedDate().Year())

		a = AssessmentResult{Date: "2026-03-15"}
		assert.Equal(t, time.March, a.ParsedDate().Month())
	})

	t.Run("data ausente ou inválida ordena como a mais antiga", func(t *testing.T) {
		assert.True(t, AssessmentResult{}.ParsedDate().IsZero())
		assert.True(t, AssessmentResult{Date: "15/03/2026?"}.ParsedDate().IsZero())
	})
}

func TestIsPending(t *testing.T) {
	assert.True(t, AssessmentResult{Phase: ""}.IsPending())
	assert.True(t, AssessmentResult{Phase: "Pendente"}.IsPending())
	assert.True(t, AssessmentResult{Phase: "PENDENTE"}.IsPending())
	assert.False(t, AssessmentResult{Phase: PhaseEsquematismo}.IsPending())
}

func TestValidPeriod(t *testing.T) {
	for _, p := range Periods {
		assert.True(t, ValidPeriod(p))
	}
	assert.False(t, ValidPeriod("5º Bim"))
	assert.False(t, ValidPeriod(""))
}

func TestValidSituation(t *testing.T) {
	assert.True(t, ValidSituation(""))
	assert.True(t, ValidSituation(SituationNormal))
	assert.True(t, ValidSituation(SituationDelayed))
	assert.True(t, ValidSituation(SituationAdvanced))
	assert.False(t, ValidSituation("Regular"))
}

func TestAssessmentTypeDomain(t *testing.T) {
	d, ok := AssessmentDrawing.Domain()
	assert.True(t, ok)
	assert.Equal(t, DomainDrawing, d)

	d, ok = AssessmentWriting.Domain()
	assert.True(t, ok)
	assert.Equal(t, DomainWriting, d)

	_, ok = AssessmentPhonological.Domain()
	assert.False(t, ok)
}
