package repository

import (
	"pedagogia_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StudentRepository struct {
	DB *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{DB: db}
}

func toStudent(row *model.AlunoRow) model.Student {
	return model.Student{
		ID:           row.Codigo,
		Code:         row.Codigo,
		Name:         row.Nome,
		BirthDate:    row.DataNascimento,
		Grade:        row.Turma,
		Series:       row.Serie,
		SchoolID:     row.Escola,
		Observations: row.Observacoes,
	}
}

func identityFields(s *model.Student) map[string]interface{} {
	return map[string]interface{}{
		"nome":            s.Name,
		"data_nascimento": s.BirthDate,
		"turma":           s.Grade,
		"serie":           s.Series,
		"escola":          s.SchoolID,
		"observacoes":     s.Observations,
	}
}

func (r *StudentRepository) GetAll() ([]model.Student, error) {
	var rows []model.AlunoRow
	if err := r.DB.Order("nome").Find(&rows).Error; err != nil {
		return nil, err
	}
	students := make([]model.Student, 0, len(rows))
	for i := range rows {
		students = append(students, toStudent(&rows[i]))
	}
	return students, nil
}

func (r *StudentRepository) FindByCode(code string) (*model.Student, error) {
	var row model.AlunoRow
	if err := r.DB.First(&row, "codigo = ?", code).Error; err != nil {
		return nil, err
	}
	s := toStudent(&row)
	return &s, nil
}

// FindRow retorna a linha denormalizada completa, com as colunas de fase.
// Usado quando a troca de código precisa recriar o registro sem perder as
// sondagens.
func (r *StudentRepository) FindRow(code string) (*model.AlunoRow, error) {
	var row model.AlunoRow
	if err := r.DB.First(&row, "codigo = ?", code).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *StudentRepository) Create(s *model.Student) error {
	row := model.AlunoRow{
		Codigo:         s.Code,
		Nome:           s.Name,
		DataNascimento: s.BirthDate,
		Turma:          s.Grade,
		Serie:          s.Series,
		Escola:         s.SchoolID,
		Observacoes:    s.Observations,
	}
	return r.DB.Create(&row).Error
}

func (r *StudentRepository) CreateRow(row *model.AlunoRow) error {
	return r.DB.Create(row).Error
}

// Update grava apenas os campos de identidade; as colunas de fase são de
// responsabilidade do AssessmentRepository.
func (r *StudentRepository) Update(s *model.Student) error {
	return r.DB.Model(&model.AlunoRow{}).
		Where("codigo = ?", s.Code).
		Updates(identityFields(s)).
		Error
}

func (r *StudentRepository) Delete(code string) error {
	return r.DB.Delete(&model.AlunoRow{}, "codigo = ?", code).Error
}

// SaveRows persiste linhas mescladas da importação: insere novas e
// sobrescreve as existentes por código.
func (r *StudentRepository) SaveRows(rows []model.AlunoRow) error {
	if len(rows) == 0 {
		return nil
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "codigo"}},
		UpdateAll: true,
	}).Create(&rows).Error
}

// DeleteAll esvazia a tabela de alunos. Usado pela limpeza geral da base.
func (r *StudentRepository) DeleteAll() error {
	return r.DB.Where("1 = 1").Delete(&model.AlunoRow{}).Error
}

func (r *StudentRepository) CountBySchool(schoolCode string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.AlunoRow{}).Where("escola = ?", schoolCode).Count(&count).Error
	return count, err
}

func (r *StudentRepository) CountByGrade(gradeName string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.AlunoRow{}).Where("turma = ?", gradeName).Count(&count).Error
	return count, err
}

func (r *StudentRepository) CountBySeries(seriesName string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.AlunoRow{}).Where("serie = ?", seriesName).Count(&count).Error
	return count, err
}
