package service

import (
	"errors"
	"strings"

	"pedagogia_backend/internal/model"
	"pedagogia_backend/internal/repository"
	"pedagogia_backend/internal/util"

	"gorm.io/gorm"
)

type SeriesService struct {
	SeriesRepo  *repository.SeriesRepository
	StudentRepo *repository.StudentRepository
}

func NewSeriesService(seriesRepo *repository.SeriesRepository, studentRepo *repository.StudentRepository) *SeriesService {
	return &SeriesService{SeriesRepo: seriesRepo, StudentRepo: studentRepo}
}

func (s *SeriesService) List() ([]model.Series, error) {
	return s.SeriesRepo.GetAll()
}

func (s *SeriesService) Create(name string) (*model.Series, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("nome é obrigatório")
	}
	if _, err := s.SeriesRepo.FindByName(name); err == nil {
		return nil, util.ErrSeriesNameTaken
	}
	if err := s.SeriesRepo.Create(name); err != nil {
		return nil, err
	}
	return &model.Series{ID: name, Name: name}, nil
}

func (s *SeriesService) Rename(oldName, newName string) (*model.Series, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, errors.New("nome é obrigatório")
	}
	if _, err := s.SeriesRepo.FindByName(oldName); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSeriesNotFound
		}
		return nil, err
	}
	if newName == oldName {
		return &model.Series{ID: oldName, Name: oldName}, nil
	}
	if _, err := s.SeriesRepo.FindByName(newName); err == nil {
		return nil, util.ErrSeriesNameTaken
	}
	if err := s.SeriesRepo.Rename(oldName, newName); err != nil {
		return nil, err
	}
	return &model.Series{ID: newName, Name: newName}, nil
}

func (s *SeriesService) Delete(name string) error {
	if _, err := s.SeriesRepo.FindByName(name); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrSeriesNotFound
		}
		return err
	}
	count, err := s.StudentRepo.CountBySeries(name)
	if err != nil {
		return err
	}
	if count > 0 {
		return util.ErrSeriesReferenced
	}
	return s.SeriesRepo.Delete(name)
}
