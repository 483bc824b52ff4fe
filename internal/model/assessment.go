package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AssessmentType identifica o domínio avaliado de uma sondagem.
type AssessmentType string

const (
	AssessmentDrawing      AssessmentType = "DESENHO"
	AssessmentWriting      AssessmentType = "ESCRITA"
	AssessmentPhonological AssessmentType = "FONOLOGICA"
	AssessmentMemory       AssessmentType = "MEMORIA"
	AssessmentMath         AssessmentType = "MATEMATICA"
	AssessmentReading      AssessmentType = "LEITURA"
)

// Domain maps the assessment type onto its phase taxonomy. Only drawing and
// writing carry a taxonomy; the other types are score-based.
func (t AssessmentType) Domain() (PhaseDomain, bool) {
	switch t {
	case AssessmentDrawing:
		return DomainDrawing, true
	case AssessmentWriting:
		return DomainWriting, true
	}
	return "", false
}

// Períodos de sondagem do ano letivo, em ordem.
const (
	PeriodInicial = "Inicial"
	Period1Bim    = "1º Bim"
	Period2Bim    = "2º Bim"
	Period3Bim    = "3º Bim"
	Period4Bim    = "4º Bim"
)

var Periods = []string{PeriodInicial, Period1Bim, Period2Bim, Period3Bim, Period4Bim}

// ValidPeriod reports whether p is one of the five academic checkpoints.
func ValidPeriod(p string) bool {
	for _, period := range Periods {
		if period == p {
			return true
		}
	}
	return false
}

// Situação pedagógica atribuída manualmente (sobrepõe o cálculo automático).
const (
	SituationNormal   = "Normal"
	SituationDelayed  = "Atrasado"
	SituationAdvanced = "Adiantado"
)

// ValidSituation aceita as três situações ou ausência.
func ValidSituation(s string) bool {
	switch s {
	case "", SituationNormal, SituationDelayed, SituationAdvanced:
		return true
	}
	return false
}

// Marker is one diagnostic criterion the oracle checked against the evidence.
type Marker struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	Match       bool   `json:"match"`
}

// AssessmentResult is one classification event for a student. For DESENHO and
// ESCRITA there is at most one current record per (student, type, period);
// its id is synthesized from that triple so a re-save overwrites in place.
// Ad-hoc events carry random ids and coexist, which is why "latest" lookups
// always sort by date.
type AssessmentResult struct {
	ID        string         `json:"id"`
	StudentID string         `json:"studentId"`
	Date      string         `json:"date"` // RFC 3339
	Type      AssessmentType `json:"type"`
	Period    string         `json:"period,omitempty"`
	Phase     string         `json:"phase,omitempty"`
	Situation string         `json:"situation,omitempty"`
	Score     *float64       `json:"score,omitempty"`
	MaxScore  *float64       `json:"maxScore,omitempty"`
	Notes     string         `json:"notes,omitempty"`

	// Metadados da análise por IA, carregados para auditoria e exibição.
	// Não participam da reconciliação.
	ImageURL              string   `json:"imageUrl,omitempty"`
	Confidence            float64  `json:"confidence,omitempty"`
	Summary               string   `json:"summary,omitempty"`
	Reasoning             string   `json:"reasoning,omitempty"`
	RecommendedActivities string   `json:"recommendedActivities,omitempty"`
	Markers               []Marker `json:"markers,omitempty"`
}

// PeriodAssessmentID synthesizes the id that guarantees at-most-one record
// per (student, type, period).
func PeriodAssessmentID(studentID string, t AssessmentType, period string) string {
	return fmt.Sprintf("%s_%s_%s", studentID, t, period)
}

// NewAssessmentID returns a fresh id for ad-hoc assessment events.
func NewAssessmentID() string {
	return uuid.New().String()
}

// ParsedDate interprets the record date; records with missing or unparsable
// dates sort as earliest.
func (a AssessmentResult) ParsedDate() time.Time {
	if a.Date == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, a.Date); err == nil {
			return t
		}
	}
	return time.Time{}
}

// IsPending reports whether the record counts as "not yet assessed" for
// aggregation: empty phase or the Pendente sentinel.
func (a AssessmentResult) IsPending() bool {
	return a.Phase == "" || NormalizeLabel(a.Phase) == NormalizeLabel(PhasePending)
}

// WordClassification is the per-word unit of a writing analysis breakdown.
type WordClassification struct {
	Target      string `json:"target"`
	Produced    string `json:"produced"`
	Phase       string `json:"phase"`
	Explanation string `json:"explanation"`
}
