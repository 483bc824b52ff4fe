package service

import (
	"bytes"
	"fmt"

	"pedagogia_backend/internal/model"
	"pedagogia_backend/internal/repository"

	"github.com/xuri/excelize/v2"
)

type ExportService struct {
	StudentRepo *repository.StudentRepository
	SchoolRepo  *repository.SchoolRepository
	GradeRepo   *repository.GradeRepository
	SeriesRepo  *repository.SeriesRepository
}

func NewExportService(
	studentRepo *repository.StudentRepository,
	schoolRepo *repository.SchoolRepository,
	gradeRepo *repository.GradeRepository,
	seriesRepo *repository.SeriesRepository,
) *ExportService {
	return &ExportService{
		StudentRepo: studentRepo,
		SchoolRepo:  schoolRepo,
		GradeRepo:   gradeRepo,
		SeriesRepo:  seriesRepo,
	}
}

// ExportFilters recorta quais alunos entram na planilha exportada.
type ExportFilters struct {
	SchoolID string
	Series   string
	Grade    string
}

// ExportData é tudo que entra no arquivo: os alunos e os cadastros de
// referência, que viram abas próprias.
type ExportData struct {
	Rows    []model.AlunoRow
	Schools []model.School
	Series  []model.Series
	Grades  []model.Grade
}

var exportHeader = []string{
	"Código", "Nome", "Data de Nascimento", "Série", "Turma",
	"Escola (Código)", "Escola (Nome)",
	"Desenho - Inicial", "Desenho - 1º Bim", "Desenho - 2º Bim", "Desenho - 3º Bim", "Desenho - 4º Bim",
	"Escrita - Inicial", "Escrita - 1º Bim", "Escrita - 2º Bim", "Escrita - 3º Bim", "Escrita - 4º Bim",
	"Observações",
}

func writeSheet(f *excelize.File, sheet string, rows [][]string) error {
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// BuildSpreadsheet monta o arquivo em memória: a aba Alunos com uma linha
// por aluno e o mesmo cabeçalho que a importação aceita, mais as abas
// Escolas, Séries e Turmas. A escola sai em duas colunas, código e nome.
func BuildSpreadsheet(data ExportData) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	schoolNames := make(map[string]string, len(data.Schools))
	for _, sc := range data.Schools {
		schoolNames[sc.Code] = sc.Name
	}

	students := [][]string{exportHeader}
	for _, row := range data.Rows {
		students = append(students, []string{
			row.Codigo, row.Nome, row.DataNascimento, row.Serie, row.Turma,
			row.Escola, schoolNames[row.Escola],
			row.FaseDesenhoInicial, row.FaseDesenho1Bim, row.FaseDesenho2Bim, row.FaseDesenho3Bim, row.FaseDesenho4Bim,
			row.FaseEscritaInicial, row.FaseEscrita1Bim, row.FaseEscrita2Bim, row.FaseEscrita3Bim, row.FaseEscrita4Bim,
			row.Observacoes,
		})
	}

	f.SetSheetName(f.GetSheetName(0), "Alunos")
	if err := writeSheet(f, "Alunos", students); err != nil {
		return nil, err
	}

	schools := [][]string{{"Código", "Nome"}}
	for _, sc := range data.Schools {
		schools = append(schools, []string{sc.Code, sc.Name})
	}
	series := [][]string{{"Nome"}}
	for _, sr := range data.Series {
		series = append(series, []string{sr.Name})
	}
	grades := [][]string{{"Nome"}}
	for _, g := range data.Grades {
		grades = append(grades, []string{g.Name})
	}
	for _, ref := range []struct {
		sheet string
		rows  [][]string
	}{
		{"Escolas", schools},
		{"Séries", series},
		{"Turmas", grades},
	} {
		if _, err := f.NewSheet(ref.sheet); err != nil {
			return nil, err
		}
		if err := writeSheet(f, ref.sheet, ref.rows); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

// Export gera o arquivo xlsx dos alunos que casam com os filtros, com os
// cadastros de referência completos nas abas auxiliares.
func (s *ExportService) Export(filters ExportFilters) (*bytes.Buffer, string, error) {
	var rows []model.AlunoRow
	query := s.StudentRepo.DB.Order("nome")
	if filters.SchoolID != "" {
		query = query.Where("escola = ?", filters.SchoolID)
	}
	if filters.Series != "" {
		query = query.Where("serie = ?", filters.Series)
	}
	if filters.Grade != "" {
		query = query.Where("turma = ?", filters.Grade)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, "", err
	}

	schools, err := s.SchoolRepo.GetAll()
	if err != nil {
		return nil, "", err
	}
	series, err := s.SeriesRepo.GetAll()
	if err != nil {
		return nil, "", err
	}
	grades, err := s.GradeRepo.GetAll()
	if err != nil {
		return nil, "", err
	}

	buf, err := BuildSpreadsheet(ExportData{
		Rows:    rows,
		Schools: schools,
		Series:  series,
		Grades:  grades,
	})
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("sondagens_%d_alunos.xlsx", len(rows))
	return buf, filename, nil
}
