package model

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// PhaseDomain separa as duas taxonomias de desenvolvimento acompanhadas.
type PhaseDomain string

const (
	DomainDrawing PhaseDomain = "DESENHO"
	DomainWriting PhaseDomain = "ESCRITA"
)

// Fases do desenho infantil segundo Lowenfeld, da mais inicial à mais
// avançada.
const (
	PhaseGaratujaDesordenada = "Garatuja Desordenada"
	PhaseGaratujaOrdenada    = "Garatuja Ordenada"
	PhasePreEsquematismo     = "Pré-Esquematismo"
	PhaseEsquematismo        = "Esquematismo"
	PhaseRealismo            = "Realismo"
	PhasePseudoNaturalismo   = "Pseudo-Naturalismo"
)

// Fases da escrita segundo Ehri, da mais inicial à mais avançada.
const (
	PhasePreAlfabetica         = "Pré-Alfabética"
	PhaseAlfabeticaParcial     = "Alfabética Parcial"
	PhaseAlfabeticaCompleta    = "Alfabética Completa"
	PhaseAlfabeticaConsolidada = "Alfabética Consolidada"
)

// PhasePending marca um período registrado mas ainda sem sondagem; para a
// agregação vale o mesmo que ausente.
const PhasePending = "Pendente"

var DrawingPhases = []string{
	PhaseGaratujaDesordenada,
	PhaseGaratujaOrdenada,
	PhasePreEsquematismo,
	PhaseEsquematismo,
	PhaseRealismo,
	PhasePseudoNaturalismo,
}

var WritingPhases = []string{
	PhasePreAlfabetica,
	PhaseAlfabeticaParcial,
	PhaseAlfabeticaCompleta,
	PhaseAlfabeticaConsolidada,
}

// PhasesFor devolve a taxonomia do domínio, da fase mais inicial à mais
// avançada.
func PhasesFor(domain PhaseDomain) []string {
	if domain == DomainWriting {
		return WritingPhases
	}
	return DrawingPhases
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeLabel prepara um rótulo para comparação: remove acentos, sobe
// para maiúsculas e apara espaços. Idempotente.
func NormalizeLabel(label string) string {
	out, _, err := transform.String(stripMarks, label)
	if err != nil {
		out = label
	}
	return strings.ToUpper(strings.TrimSpace(out))
}

// CanonicalPhase resolve um rótulo livre (digitado, importado ou vindo do
// oráculo) para a fase canônica do domínio. Igualdade exata após
// normalização vence sempre; só depois vale continência em qualquer
// direção ("GARATUJA DESORDENADA (RABISCOS)" casa com "Garatuja
// Desordenada"). A ordem importa: "Esquematismo" é substring de
// "Pré-Esquematismo" e um passe único devolveria a fase errada. Rótulos
// irreconhecíveis passam adiante como vieram.
func CanonicalPhase(label string, domain PhaseDomain) string {
	normalized := NormalizeLabel(label)
	if normalized == "" {
		return label
	}
	phases := PhasesFor(domain)
	for _, phase := range phases {
		if normalized == NormalizeLabel(phase) {
			return phase
		}
	}
	for _, phase := range phases {
		canonical := NormalizeLabel(phase)
		if strings.Contains(normalized, canonical) || strings.Contains(canonical, normalized) {
			return phase
		}
	}
	return label
}

// PhaseRank devolve a posição da fase na taxonomia (0 = mais inicial) ou
// -1 para rótulos fora dela.
func PhaseRank(label string, domain PhaseDomain) int {
	canonical := CanonicalPhase(label, domain)
	for i, phase := range PhasesFor(domain) {
		if phase == canonical {
			return i
		}
	}
	return -1
}

// PredominantPhase elege a fase mais frequente de um conjunto de rótulos.
// Empate resolve para a fase mais avançada; conjunto vazio resolve para a
// fase mais inicial do domínio. Rótulos que não casam com a taxonomia só
// decidem quando nenhum rótulo canônico existe, e aí o desempate é
// lexicográfico sobre a forma normalizada, para manter o resultado
// estável.
func PredominantPhase(labels []string, domain PhaseDomain) string {
	phases := PhasesFor(domain)
	if len(labels) == 0 {
		return phases[0]
	}

	counts := make(map[string]int, len(labels))
	for _, label := range labels {
		counts[CanonicalPhase(label, domain)]++
	}

	maxFreq := 0
	for _, n := range counts {
		if n > maxFreq {
			maxFreq = n
		}
	}

	result := ""
	for _, phase := range phases {
		if counts[phase] == maxFreq {
			result = phase
		}
	}
	if result != "" {
		return result
	}

	// Nenhum rótulo canonicalizou; devolve o mais frequente de forma
	// determinística.
	for label, n := range counts {
		if n < maxFreq {
			continue
		}
		if result == "" || NormalizeLabel(label) < NormalizeLabel(result) {
			result = label
		}
	}
	return result
}
