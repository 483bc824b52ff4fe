package repository

import (
	"pedagogia_backend/internal/model"

	"gorm.io/gorm"
)

type GradeRepository struct {
	DB *gorm.DB
}

func NewGradeRepository(db *gorm.DB) *GradeRepository {
	return &GradeRepository{DB: db}
}

func (r *GradeRepository) GetAll() ([]model.Grade, error) {
	var rows []model.TurmaRow
	if err := r.DB.Order("turma").Find(&rows).Error; err != nil {
		return nil, err
	}
	grades := make([]model.Grade, 0, len(rows))
	for _, row := range rows {
		grades = append(grades, model.Grade{ID: row.Turma, Name: row.Turma})
	}
	return grades, nil
}

func (r *GradeRepository) FindByName(name string) (*model.Grade, error) {
	var row model.TurmaRow
	if err := r.DB.First(&row, "turma = ?", name).Error; err != nil {
		return nil, err
	}
	return &model.Grade{ID: row.Turma, Name: row.Turma}, nil
}

func (r *GradeRepository) Create(name string) error {
	return r.DB.Create(&model.TurmaRow{Turma: name}).Error
}

// Rename troca a chave da turma e arrasta os alunos vinculados junto, em
// uma só transação.
func (r *GradeRepository) Rename(oldName, newName string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.TurmaRow{}, "turma = ?", oldName).Error; err != nil {
			return err
		}
		if err := tx.Create(&model.TurmaRow{Turma: newName}).Error; err != nil {
			return err
		}
		return tx.Model(&model.AlunoRow{}).
			Where("turma = ?", oldName).
			Update("turma", newName).
			Error
	})
}

func (r *GradeRepository) Delete(name string) error {
	return r.DB.Delete(&model.TurmaRow{}, "turma = ?", name).Error
}
