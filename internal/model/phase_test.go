package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLabel(t *testing.T) {
	t.Run("remove acentos e sobe para maiúsculas", func(t *testing.T) {
		assert.Equal(t, "PRE-ESQUEMATISMO", NormalizeLabel("Pré-Esquematismo"))
		assert.Equal(t, "ALFABETICA CONSOLIDADA", NormalizeLabel("  Alfabética Consolidada "))
	})

	t.Run("idempotente", func(t *testing.T) {
		once := NormalizeLabel("Garatuja Desordenada")
		assert.Equal(t, once, NormalizeLabel(once))
	})

	t.Run("vazio continua vazio", func(t *testing.T) {
		assert.Equal(t, "", NormalizeLabel("   "))
	})
}

func TestCanonicalPhase(t *testing.T) {
	t.Run("igualdade exata após normalização", func(t *testing.T) {
		assert.Equal(t, PhaseEsquematismo, CanonicalPhase("ESQUEMATISMO", DomainDrawing))
		assert.Equal(t, PhasePreAlfabetica, CanonicalPhase("pré-alfabética", DomainWriting))
	})

	t.Run("rótulo com sufixo contém a fase", func(t *testing.T) {
		got := CanonicalPhase("Garatuja Desordenada (rabiscos)", DomainDrawing)
		assert.Equal(t, PhaseGaratujaDesordenada, got)
	})

	t.Run("rótulo abreviado contido na fase", func(t *testing.T) {
		got := CanonicalPhase("Esquematismo", DomainDrawing)
		assert.Equal(t, PhaseEsquematismo, got)
	})

	t.Run("fase que é substring de outra resolve pela igualdade", func(t *testing.T) {
		assert.Equal(t, PhaseEsquematismo, CanonicalPhase("esquematismo", DomainDrawing))
		assert.Equal(t, PhasePreEsquematismo, CanonicalPhase("Pré-Esquematismo", DomainDrawing))
		assert.Equal(t, PhaseEsquematismo, CanonicalPhase("Esquematismo (figuras repetidas)", DomainDrawing))
	})

	t.Run("rótulo desconhecido passa adiante", func(t *testing.T) {
		assert.Equal(t, "Fase Lunar", CanonicalPhase("Fase Lunar", DomainDrawing))
	})
}

func TestPhaseRank(t *testing.T) {
	assert.Equal(t, 0, PhaseRank("Garatuja Desordenada", DomainDrawing))
	assert.Equal(t, 5, PhaseRank("Pseudo-Naturalismo", DomainDrawing))
	assert.Equal(t, 3, PhaseRank("alfabética consolidada", DomainWriting))
	assert.Equal(t, -1, PhaseRank("Fase Lunar", DomainWriting))
}

func TestPredominantPhase(t *testing.T) {
	t.Run("maioria simples vence", func(t *testing.T) {
		labels := []string{PhaseAlfabeticaParcial, PhaseAlfabeticaParcial, PhaseAlfabeticaCompleta}
		assert.Equal(t, PhaseAlfabeticaParcial, PredominantPhase(labels, DomainWriting))
	})

	t.Run("empate resolve para a fase mais avançada", func(t *testing.T) {
		labels := []string{PhaseAlfabeticaParcial, PhaseAlfabeticaCompleta}
		assert.Equal(t, PhaseAlfabeticaCompleta, PredominantPhase(labels, DomainWriting))

		labels = []string{
			PhaseAlfabeticaConsolidada, PhaseAlfabeticaConsolidada,
			PhaseAlfabeticaParcial, PhaseAlfabeticaParcial,
		}
		assert.Equal(t, PhaseAlfabeticaConsolidada, PredominantPhase(labels, DomainWriting))
	})

	t.Run("conjunto vazio resolve para a fase mais inicial", func(t *testing.T) {
		assert.Equal(t, PhasePreAlfabetica, PredominantPhase(nil, DomainWriting))
		assert.Equal(t, PhaseGaratujaDesordenada, PredominantPhase(nil, DomainDrawing))
	})

	t.Run("rótulos com variação de grafia contam juntos", func(t *testing.T) {
		labels := []string{"garatuja ordenada", "GARATUJA ORDENADA", PhaseEsquematismo}
		assert.Equal(t, PhaseGaratujaOrdenada, PredominantPhase(labels, DomainDrawing))
	})

	t.Run("nenhum rótulo canônico devolve o mais frequente de forma estável", func(t *testing.T) {
		labels := []string{"Fase Z", "Fase A", "Fase A"}
		assert.Equal(t, "Fase A", PredominantPhase(labels, DomainDrawing))
	})
}
