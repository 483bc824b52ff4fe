package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"pedagogia_backend/internal/model"
	"pedagogia_backend/internal/repository"
	"pedagogia_backend/internal/util"
	"pedagogia_backend/pkg/logger"
	"pedagogia_backend/pkg/monitoring"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type ImportService struct {
	StudentRepo *repository.StudentRepository
	SchoolRepo  *repository.SchoolRepository
	GradeRepo   *repository.GradeRepository
	SeriesRepo  *repository.SeriesRepository
}

func NewImportService(
	studentRepo *repository.StudentRepository,
	schoolRepo *repository.SchoolRepository,
	gradeRepo *repository.GradeRepository,
	seriesRepo *repository.SeriesRepository,
) *ImportService {
	return &ImportService{
		StudentRepo: studentRepo,
		SchoolRepo:  schoolRepo,
		GradeRepo:   gradeRepo,
		SeriesRepo:  seriesRepo,
	}
}

// ImportedPhase é uma célula de fase lida da planilha, já resolvida para o
// par (tipo, período).
type ImportedPhase struct {
	Type   model.AssessmentType
	Period string
	Phase  string
}

// ImportedStudent é uma linha da planilha traduzida para o vocabulário do
// domínio, antes da mescla com a base. A escola vem em duas colunas
// (código e nome); o código manda e o nome só resolve quando ele falta.
type ImportedStudent struct {
	Code         string
	Name         string
	BirthDate    string
	SchoolID     string
	SchoolName   string
	Series       string
	Grade        string
	Observations string
	Phases       []ImportedPhase
}

// ParsedWorkbook é o conteúdo de um arquivo de importação: a aba de alunos
// mais as abas de referência (Escolas, Séries, Turmas), quando presentes.
type ParsedWorkbook struct {
	Students []ImportedStudent
	Schools  []model.School
	Series   []string
	Grades   []string
}

type ImportSummary struct {
	TotalRows int      `json:"totalRows"`
	Added     int      `json:"added"`
	Skipped   int      `json:"skipped"`
	Errors    []string `json:"errors,omitempty"`
	Message   string   `json:"message"`
}

func normalizeKey(name, birthDate string) string {
	return strings.ToLower(strings.TrimSpace(name)) + "|" + strings.TrimSpace(birthDate)
}

// MergeImport mescla linhas importadas com as existentes. Alunos são
// casados primeiro pelo código e, na falta dele, por nome + data de
// nascimento. Linha casada conta como "já existente" mesmo quando recebe
// preenchimentos; linha sem casamento vira aluno novo, com código gerado
// se a planilha não trouxe um. A escola só é preenchida quando está vazia
// na base, e fases só são gravadas quando a célula difere do valor atual.
// A segunda importação do mesmo arquivo não grava nada.
func MergeImport(existing []model.AlunoRow, imported []ImportedStudent) ([]model.AlunoRow, ImportSummary) {
	byCode := make(map[string]*model.AlunoRow, len(existing))
	byNameBirth := make(map[string]*model.AlunoRow, len(existing))
	for i := range existing {
		row := &existing[i]
		byCode[row.Codigo] = row
		byNameBirth[normalizeKey(row.Nome, row.DataNascimento)] = row
	}

	summary := ImportSummary{TotalRows: len(imported)}
	var dirty []model.AlunoRow

	for idx, in := range imported {
		code := strings.TrimSpace(in.Code)
		name := strings.TrimSpace(in.Name)
		if code == "" && name == "" {
			summary.Errors = append(summary.Errors, fmt.Sprintf("linha %d: sem código e sem nome", idx+1))
			continue
		}

		var row *model.AlunoRow
		if code != "" {
			row = byCode[code]
		}
		if row == nil {
			row = byNameBirth[normalizeKey(name, in.BirthDate)]
		}

		if row == nil {
			if code == "" {
				code = uuid.NewString()
			}
			newRow := model.AlunoRow{
				Codigo:         code,
				Nome:           name,
				DataNascimento: strings.TrimSpace(in.BirthDate),
				Escola:         strings.TrimSpace(in.SchoolID),
				Serie:          strings.TrimSpace(in.Series),
				Turma:          strings.TrimSpace(in.Grade),
				Observacoes:    strings.TrimSpace(in.Observations),
			}
			for _, p := range in.Phases {
				if column, ok := repository.ColumnFor(p.Type, p.Period); ok && p.Phase != "" {
					repository.SetPhaseValue(&newRow, column, p.Phase)
				}
			}
			byCode[newRow.Codigo] = &newRow
			byNameBirth[normalizeKey(newRow.Nome, newRow.DataNascimento)] = &newRow
			dirty = append(dirty, newRow)
			summary.Added++
			continue
		}

		changed := false
		if row.Escola == "" && strings.TrimSpace(in.SchoolID) != "" {
			row.Escola = strings.TrimSpace(in.SchoolID)
			changed = true
		}
		for _, p := range in.Phases {
			column, ok := repository.ColumnFor(p.Type, p.Period)
			if !ok || strings.TrimSpace(p.Phase) == "" {
				continue
			}
			incoming := strings.TrimSpace(p.Phase)
			if model.NormalizeLabel(phaseAt(row, column)) != model.NormalizeLabel(incoming) {
				repository.SetPhaseValue(row, column, incoming)
				changed = true
			}
		}

		if changed {
			dirty = append(dirty, *row)
		}
		summary.Skipped++
	}

	summary.Message = fmt.Sprintf("Importação concluída: %d aluno(s) adicionado(s), %d já existente(s).",
		summary.Added, summary.Skipped)
	return dirty, summary
}

func phaseAt(row *model.AlunoRow, column string) string {
	for _, a := range repository.ExpandRow(row) {
		if c, _ := repository.ColumnFor(a.Type, a.Period); c == column {
			return a.Phase
		}
	}
	return ""
}

// ResolveSchoolNames preenche o código da escola dos alunos que só
// trouxeram o nome, casando por nome sem distinção de caixa. Devolve os
// nomes que não casaram com escola nenhuma, sem repetição, para o chamador
// cadastrá-los.
func ResolveSchoolNames(students []ImportedStudent, schools []model.School) []string {
	byName := make(map[string]string, len(schools))
	for _, sc := range schools {
		byName[strings.ToLower(strings.TrimSpace(sc.Name))] = sc.Code
	}

	var unresolved []string
	seen := make(map[string]bool)
	for i := range students {
		st := &students[i]
		name := strings.TrimSpace(st.SchoolName)
		if st.SchoolID != "" || name == "" {
			continue
		}
		key := strings.ToLower(name)
		if code, ok := byName[key]; ok {
			st.SchoolID = code
		} else if !seen[key] {
			seen[key] = true
			unresolved = append(unresolved, name)
		}
	}
	return unresolved
}

// columnSpec descreve o que uma coluna da planilha alimenta.
type columnSpec struct {
	field string
	phase *ImportedPhase
}

// Nomes normalizados das abas de referência.
const (
	sheetEscolas = "ESCOLAS"
	sheetSeries  = "SERIES"
	sheetTurmas  = "TURMAS"
)

// ParseSpreadsheet lê um arquivo xlsx completo: a aba de alunos (a
// primeira cujo cabeçalho é reconhecível, em qualquer uma das dez
// primeiras linhas) e as abas de referência Escolas, Séries e Turmas,
// quando existirem.
func ParseSpreadsheet(r io.Reader) (*ParsedWorkbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, util.ErrSpreadsheetNoSheet
	}

	wb := &ParsedWorkbook{}
	studentsParsed := false
	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, err
		}
		switch model.NormalizeLabel(sheet) {
		case sheetEscolas:
			wb.Schools = parseSchoolSheet(rows)
		case sheetSeries:
			wb.Series = parseNameSheet(rows)
		case sheetTurmas:
			wb.Grades = parseNameSheet(rows)
		default:
			if studentsParsed {
				continue
			}
			students, ok := parseStudentSheet(rows)
			if ok {
				wb.Students = students
				studentsParsed = true
			}
		}
	}
	if !studentsParsed {
		return nil, util.ErrSpreadsheetNoHeader
	}
	return wb, nil
}

func parseStudentSheet(rows [][]string) ([]ImportedStudent, bool) {
	headerIdx := -1
	var specs []columnSpec
	for i := 0; i < len(rows) && i < 10; i++ {
		if s := classifyHeader(rows[i]); s != nil {
			headerIdx = i
			specs = s
			break
		}
	}
	if headerIdx < 0 {
		return nil, false
	}

	var out []ImportedStudent
	for _, row := range rows[headerIdx+1:] {
		student := ImportedStudent{}
		empty := true
		for col, cell := range row {
			if col >= len(specs) {
				break
			}
			value := strings.TrimSpace(cell)
			if value == "" {
				continue
			}
			empty = false
			spec := specs[col]
			switch spec.field {
			case "code":
				student.Code = value
			case "name":
				student.Name = value
			case "birthDate":
				student.BirthDate = normalizeDateCell(value)
			case "school":
				student.SchoolID = value
			case "schoolName":
				student.SchoolName = value
			case "series":
				student.Series = value
			case "grade":
				student.Grade = value
			case "observations":
				student.Observations = value
			case "phase":
				student.Phases = append(student.Phases, ImportedPhase{
					Type:   spec.phase.Type,
					Period: spec.phase.Period,
					Phase:  value,
				})
			}
		}
		if !empty {
			out = append(out, student)
		}
	}
	return out, true
}

// parseSchoolSheet lê a aba Escolas: código na primeira coluna, nome na
// segunda. A linha de cabeçalho, se houver, é descartada.
func parseSchoolSheet(rows [][]string) []model.School {
	var out []model.School
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		code := strings.TrimSpace(row[0])
		name := ""
		if len(row) > 1 {
			name = strings.TrimSpace(row[1])
		}
		if code == "" && name == "" {
			continue
		}
		if i == 0 {
			h := model.NormalizeLabel(code)
			if h == "CODIGO" || strings.Contains(h, "ESCOLA") {
				continue
			}
		}
		if name == "" {
			name = code
		}
		out = append(out, model.School{ID: code, Code: code, Name: name})
	}
	return out
}

// parseNameSheet lê uma aba de coluna única (Séries ou Turmas).
func parseNameSheet(rows [][]string) []string {
	var out []string
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		name := strings.TrimSpace(row[0])
		if name == "" {
			continue
		}
		if i == 0 {
			h := model.NormalizeLabel(name)
			if h == "NOME" || h == "SERIE" || h == "TURMA" {
				continue
			}
		}
		out = append(out, name)
	}
	return out
}

// classifyHeader mapeia as células de uma candidata a linha de cabeçalho.
// Retorna nil quando a linha não tem coluna de nome nem de código. A
// escola tem de ser testada antes do nome do aluno, senão "Escola (Nome)"
// cairia na coluna de nome.
func classifyHeader(row []string) []columnSpec {
	specs := make([]columnSpec, len(row))
	hasAnchor := false
	for i, cell := range row {
		h := model.NormalizeLabel(cell)
		switch {
		case h == "CODIGO" || h == "COD" || h == "MATRICULA":
			specs[i] = columnSpec{field: "code"}
			hasAnchor = true
		case strings.Contains(h, "ESCOLA"):
			if strings.Contains(h, "NOME") {
				specs[i] = columnSpec{field: "schoolName"}
			} else {
				specs[i] = columnSpec{field: "school"}
			}
		case strings.Contains(h, "NOME"):
			specs[i] = columnSpec{field: "name"}
			hasAnchor = true
		case strings.Contains(h, "NASCIMENTO"):
			specs[i] = columnSpec{field: "birthDate"}
		case strings.Contains(h, "SERIE") || strings.Contains(h, "ANO"):
			specs[i] = columnSpec{field: "series"}
		case strings.Contains(h, "TURMA"):
			specs[i] = columnSpec{field: "grade"}
		case strings.Contains(h, "OBSERV"):
			specs[i] = columnSpec{field: "observations"}
		default:
			if p := classifyPhaseHeader(h); p != nil {
				specs[i] = columnSpec{field: "phase", phase: p}
			}
		}
	}
	if !hasAnchor {
		return nil
	}
	return specs
}

func classifyPhaseHeader(h string) *ImportedPhase {
	var t model.AssessmentType
	switch {
	case strings.Contains(h, "DESENHO"):
		t = model.AssessmentDrawing
	case strings.Contains(h, "ESCRITA"):
		t = model.AssessmentWriting
	default:
		return nil
	}
	period := ""
	switch {
	case strings.Contains(h, "INICIAL"):
		period = model.PeriodInicial
	case strings.Contains(h, "1") && strings.Contains(h, "BIM"):
		period = model.Period1Bim
	case strings.Contains(h, "2") && strings.Contains(h, "BIM"):
		period = model.Period2Bim
	case strings.Contains(h, "3") && strings.Contains(h, "BIM"):
		period = model.Period3Bim
	case strings.Contains(h, "4") && strings.Contains(h, "BIM"):
		period = model.Period4Bim
	default:
		return nil
	}
	return &ImportedPhase{Type: t, Period: period}
}

// normalizeDateCell aceita os formatos de data comuns em planilhas
// brasileiras e devolve YYYY-MM-DD; valores irreconhecíveis passam adiante
// como vieram.
func normalizeDateCell(value string) string {
	value = strings.TrimSpace(value)
	for _, layout := range []string{"2006-01-02", "02/01/2006", "2/1/2006", "02-01-2006", "01-02-06"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return value
}

// Import executa a importação completa: parse, cadastro das abas de
// referência, resolução de escola por nome, mescla e persistência.
func (s *ImportService) Import(ctx context.Context, r io.Reader) (*ImportSummary, error) {
	wb, err := ParseSpreadsheet(r)
	if err != nil {
		return nil, err
	}

	s.registerReferenceSheets(wb)

	schools, err := s.SchoolRepo.GetAll()
	if err != nil {
		return nil, err
	}
	for _, name := range ResolveSchoolNames(wb.Students, schools) {
		sc := model.School{ID: uuid.NewString()[:8], Name: name}
		sc.Code = sc.ID
		if err := s.SchoolRepo.Create(&sc); err == nil {
			schools = append(schools, sc)
		}
	}
	ResolveSchoolNames(wb.Students, schools)

	var existing []model.AlunoRow
	if err := s.StudentRepo.DB.Find(&existing).Error; err != nil {
		return nil, err
	}

	dirty, summary := MergeImport(existing, wb.Students)

	if err := s.StudentRepo.SaveRows(dirty); err != nil {
		return nil, err
	}
	s.registerReferenced(dirty)

	monitoring.ImportRowCounter.WithLabelValues("added").Add(float64(summary.Added))
	monitoring.ImportRowCounter.WithLabelValues("skipped").Add(float64(summary.Skipped))

	logger.Log.Info("Spreadsheet import finished",
		zap.Int("total", summary.TotalRows),
		zap.Int("added", summary.Added),
		zap.Int("skipped", summary.Skipped),
		zap.Int("errors", len(summary.Errors)),
	)
	return &summary, nil
}

// registerReferenceSheets cadastra as entidades das abas Escolas, Séries e
// Turmas que ainda não existam. A importação nunca atualiza cadastros
// existentes.
func (s *ImportService) registerReferenceSheets(wb *ParsedWorkbook) {
	for _, sc := range wb.Schools {
		if _, err := s.SchoolRepo.FindByCode(sc.Code); err != nil {
			_ = s.SchoolRepo.Create(&sc)
		}
	}
	for _, name := range wb.Series {
		if _, err := s.SeriesRepo.FindByName(name); err != nil {
			_ = s.SeriesRepo.Create(name)
		}
	}
	for _, name := range wb.Grades {
		if _, err := s.GradeRepo.FindByName(name); err != nil {
			_ = s.GradeRepo.Create(name)
		}
	}
}

// registerReferenced garante que turmas, séries e escolas citadas nas
// linhas mescladas existam nos cadastros auxiliares. Falhas aqui não
// derrubam a importação.
func (s *ImportService) registerReferenced(rows []model.AlunoRow) {
	for _, row := range rows {
		if row.Turma != "" {
			if _, err := s.GradeRepo.FindByName(row.Turma); err != nil {
				_ = s.GradeRepo.Create(row.Turma)
			}
		}
		if row.Serie != "" {
			if _, err := s.SeriesRepo.FindByName(row.Serie); err != nil {
				_ = s.SeriesRepo.Create(row.Serie)
			}
		}
		if row.Escola != "" {
			if _, err := s.SchoolRepo.FindByCode(row.Escola); err != nil {
				_ = s.SchoolRepo.Create(&model.School{ID: row.Escola, Code: row.Escola, Name: row.Escola})
			}
		}
	}
}
