package repository

import (
	"pedagogia_backend/internal/model"

	"gorm.io/gorm"
)

type SchoolRepository struct {
	DB *gorm.DB
}

func NewSchoolRepository(db *gorm.DB) *SchoolRepository {
	return &SchoolRepository{DB: db}
}

func toSchool(row *model.EscolaRow) model.School {
	return model.School{
		ID:   row.Codigo,
		Code: row.Codigo,
		Name: row.Nome,
	}
}

func (r *SchoolRepository) GetAll() ([]model.School, error) {
	var rows []model.EscolaRow
	if err := r.DB.Order("nome").Find(&rows).Error; err != nil {
		return nil, err
	}
	schools := make([]model.School, 0, len(rows))
	for i := range rows {
		schools = append(schools, toSchool(&rows[i]))
	}
	return schools, nil
}

func (r *SchoolRepository) FindByCode(code string) (*model.School, error) {
	var row model.EscolaRow
	if err := r.DB.First(&row, "codigo = ?", code).Error; err != nil {
		return nil, err
	}
	s := toSchool(&row)
	return &s, nil
}

func (r *SchoolRepository) FindByName(name string) (*model.School, error) {
	var row model.EscolaRow
	if err := r.DB.First(&row, "nome = ?", name).Error; err != nil {
		return nil, err
	}
	s := toSchool(&row)
	return &s, nil
}

func (r *SchoolRepository) Create(s *model.School) error {
	return r.DB.Create(&model.EscolaRow{Codigo: s.Code, Nome: s.Name}).Error
}

func (r *SchoolRepository) UpdateName(code, name string) error {
	return r.DB.Model(&model.EscolaRow{}).
		Where("codigo = ?", code).
		Update("nome", name).
		Error
}

func (r *SchoolRepository) Delete(code string) error {
	return r.DB.Delete(&model.EscolaRow{}, "codigo = ?", code).Error
}
