package service

import (
	"errors"
	"strings"

	"pedagogia_backend/internal/model"
	"pedagogia_backend/internal/repository"
	"pedagogia_backend/internal/util"

	"gorm.io/gorm"
)

type GradeService struct {
	GradeRepo   *repository.GradeRepository
	StudentRepo *repository.StudentRepository
}

func NewGradeService(gradeRepo *repository.GradeRepository, studentRepo *repository.StudentRepository) *GradeService {
	return &GradeService{GradeRepo: gradeRepo, StudentRepo: studentRepo}
}

func (s *GradeService) List() ([]model.Grade, error) {
	return s.GradeRepo.GetAll()
}

func (s *GradeService) Create(name string) (*model.Grade, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("nome é obrigatório")
	}
	if _, err := s.GradeRepo.FindByName(name); err == nil {
		return nil, util.ErrGradeNameTaken
	}
	if err := s.GradeRepo.Create(name); err != nil {
		return nil, err
	}
	return &model.Grade{ID: name, Name: name}, nil
}

// Rename troca o nome da turma e arrasta os alunos vinculados junto.
func (s *GradeService) Rename(oldName, newName string) (*model.Grade, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, errors.New("nome é obrigatório")
	}
	if _, err := s.GradeRepo.FindByName(oldName); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrGradeNotFound
		}
		return nil, err
	}
	if newName == oldName {
		return &model.Grade{ID: oldName, Name: oldName}, nil
	}
	if _, err := s.GradeRepo.FindByName(newName); err == nil {
		return nil, util.ErrGradeNameTaken
	}
	if err := s.GradeRepo.Rename(oldName, newName); err != nil {
		return nil, err
	}
	return &model.Grade{ID: newName, Name: newName}, nil
}

// Delete recusa remover turmas que ainda tenham alunos.
func (s *GradeService) Delete(name string) error {
	if _, err := s.GradeRepo.FindByName(name); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrGradeNotFound
		}
		return err
	}
	count, err := s.StudentRepo.CountByGrade(name)
	if err != nil {
		return err
	}
	if count > 0 {
		return util.ErrGradeReferenced
	}
	return s.GradeRepo.Delete(name)
}
