package service

import (
	"context"
	"fmt"
	"strings"

	"pedagogia_backend/internal/model"
	"pedagogia_backend/internal/repository"
	"pedagogia_backend/internal/util"
)

type ReportService struct {
	StudentRepo    *repository.StudentRepository
	AssessmentRepo *repository.AssessmentRepository
	Dashboard      *DashboardService
	Oracle         *OracleService
}

func NewReportService(
	studentRepo *repository.StudentRepository,
	assessmentRepo *repository.AssessmentRepository,
	dashboard *DashboardService,
	oracle *OracleService,
) *ReportService {
	return &ReportService{
		StudentRepo:    studentRepo,
		AssessmentRepo: assessmentRepo,
		Dashboard:      dashboard,
		Oracle:         oracle,
	}
}

// ReportRow é a linha do relatório tabular: um aluno com a fase de cada
// período do domínio escolhido e a fase mais recente.
type ReportRow struct {
	StudentID   string            `json:"studentId"`
	Code        string            `json:"code"`
	Name        string            `json:"name"`
	Series      string            `json:"series"`
	Grade       string            `json:"grade"`
	SchoolID    string            `json:"schoolId,omitempty"`
	Phases      map[string]string `json:"phases"`
	LatestPhase string            `json:"latestPhase,omitempty"`
}

type TabularReport struct {
	Type    model.AssessmentType `json:"type"`
	Periods []string             `json:"periods"`
	Rows    []ReportRow          `json:"rows"`
}

// BuildTabularReport monta o relatório período a período para uma coorte.
func BuildTabularReport(students []model.Student, assessments []model.AssessmentResult, t model.AssessmentType, f DashboardFilters) *TabularReport {
	byStudent := make(map[string][]model.AssessmentResult)
	for _, a := range assessments {
		if a.Type == t {
			byStudent[a.StudentID] = append(byStudent[a.StudentID], a)
		}
	}

	report := &TabularReport{Type: t, Periods: model.Periods}
	for _, s := range students {
		if !matchesCohort(s, f) {
			continue
		}
		row := ReportRow{
			StudentID: s.ID,
			Code:      s.Code,
			Name:      s.Name,
			Series:    s.Series,
			Grade:     s.Grade,
			SchoolID:  s.SchoolID,
			Phases:    make(map[string]string, len(model.Periods)),
		}
		for _, a := range byStudent[s.ID] {
			if a.Period != "" {
				row.Phases[a.Period] = a.Phase
			}
		}
		if latest := LatestFor(byStudent[s.ID], s.ID, t); latest != nil && !latest.IsPending() {
			row.LatestPhase = latest.Phase
		}
		report.Rows = append(report.Rows, row)
	}
	return report
}

func (s *ReportService) Tabular(t model.AssessmentType, f DashboardFilters, search string) (*TabularReport, error) {
	students, err := s.StudentRepo.GetAll()
	if err != nil {
		return nil, err
	}
	assessments, err := s.AssessmentRepo.GetAll()
	if err != nil {
		return nil, err
	}
	report := BuildTabularReport(students, assessments, t, f)
	report.Rows = FilterReportRows(report.Rows, search)
	return report, nil
}

// FilterReportRows restringe as linhas às que casam com a busca livre por
// nome ou código, ignorando acentos e caixa.
func FilterReportRows(rows []ReportRow, search string) []ReportRow {
	if search == "" {
		return rows
	}
	needle := model.NormalizeLabel(search)
	filtered := make([]ReportRow, 0, len(rows))
	for _, r := range rows {
		if strings.Contains(model.NormalizeLabel(r.Name), needle) ||
			strings.Contains(model.NormalizeLabel(r.Code), needle) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// Narrative gera o parecer pedagógico em prosa para a coorte filtrada,
// alimentando o oráculo com o resumo agregado e a distribuição de fases.
func (s *ReportService) Narrative(ctx context.Context, f DashboardFilters) (*NarrativeReport, error) {
	summary, err := s.Dashboard.GetDashboard(ctx, f)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Domínio: %s | Período: %s\n", f.Type, f.Period)
	if f.SchoolID != "" {
		fmt.Fprintf(&sb, "Escola: %s\n", f.SchoolID)
	}
	if f.Series != "" {
		fmt.Fprintf(&sb, "Série: %s\n", f.Series)
	}
	if f.Grade != "" {
		fmt.Fprintf(&sb, "Turma: %s\n", f.Grade)
	}
	fmt.Fprintf(&sb, "Alunos: %d | Avaliados: %d (%.1f%%)\n", summary.TotalStudents, summary.Evaluated, summary.CoveragePercent)
	if summary.PredominantPhase != "" {
		fmt.Fprintf(&sb, "Fase predominante: %s\n", summary.PredominantPhase)
	}
	sb.WriteString("Distribuição:\n")
	for _, pc := range summary.Distribution {
		fmt.Fprintf(&sb, "- %s: %d (%.1f%%)\n", pc.Phase, pc.Count, pc.Percent)
	}
	sb.WriteString("Evolução por período:\n")
	for _, snap := range summary.Evolution {
		if snap.Evaluated > 0 {
			fmt.Fprintf(&sb, "- %s: %d avaliados, predominante %s\n", snap.Period, snap.Evaluated, snap.PredominantPhase)
		}
	}

	return s.Oracle.GenerateNarrativeReport(ctx, sb.String())
}

// StudentNarrative gera o parecer individual de um aluno a partir do seu
// histórico de sondagens nos dois domínios.
func (s *ReportService) StudentNarrative(ctx context.Context, code string) (*NarrativeReport, error) {
	student, err := s.StudentRepo.FindByCode(code)
	if err != nil {
		return nil, util.ErrStudentNotFound
	}
	assessments, err := s.AssessmentRepo.GetByStudent(student.ID)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Aluno: %s (código %s)\n", student.Name, student.Code)
	if student.Series != "" || student.Grade != "" {
		fmt.Fprintf(&sb, "Série: %s | Turma: %s\n", student.Series, student.Grade)
	}
	if student.BirthDate != "" {
		fmt.Fprintf(&sb, "Nascimento: %s\n", student.BirthDate)
	}
	sb.WriteString("Sondagens registradas:\n")
	for _, a := range assessments {
		if a.IsPending() {
			continue
		}
		fmt.Fprintf(&sb, "- %s, %s: %s\n", a.Type, a.Period, a.Phase)
	}
	for _, t := range []model.AssessmentType{model.AssessmentDrawing, model.AssessmentWriting} {
		if latest := LatestFor(assessments, student.ID, t); latest != nil && !latest.IsPending() {
			fmt.Fprintf(&sb, "Fase atual de %s: %s\n", t, latest.Phase)
		}
	}

	return s.Oracle.GenerateNarrativeReport(ctx, sb.String())
}
