package repository

import (
	"pedagogia_backend/internal/model"

	"gorm.io/gorm"
)

type SeriesRepository struct {
	DB *gorm.DB
}

func NewSeriesRepository(db *gorm.DB) *SeriesRepository {
	return &SeriesRepository{DB: db}
}

func (r *SeriesRepository) GetAll() ([]model.Series, error) {
	var rows []model.SerieRow
	if err := r.DB.Order("serie").Find(&rows).Error; err != nil {
		return nil, err
	}
	series := make([]model.Series, 0, len(rows))
	for _, row := range rows {
		series = append(series, model.Series{ID: row.Serie, Name: row.Serie})
	}
	return series, nil
}

func (r *SeriesRepository) FindByName(name string) (*model.Series, error) {
	var row model.SerieRow
	if err := r.DB.First(&row, "serie = ?", name).Error; err != nil {
		return nil, err
	}
	return &model.Series{ID: row.Serie, Name: row.Serie}, nil
}

func (r *SeriesRepository) Create(name string) error {
	return r.DB.Create(&model.SerieRow{Serie: name}).Error
}

func (r *SeriesRepository) Rename(oldName, newName string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.SerieRow{}, "serie = ?", oldName).Error; err != nil {
			return err
		}
		if err := tx.Create(&model.SerieRow{Serie: newName}).Error; err != nil {
			return err
		}
		return tx.Model(&model.AlunoRow{}).
			Where("serie = ?", oldName).
			Update("serie", newName).
			Error
	})
}

func (r *SeriesRepository) Delete(name string) error {
	return r.DB.Delete(&model.SerieRow{}, "serie = ?", name).Error
}
