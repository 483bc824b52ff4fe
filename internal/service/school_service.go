package service

import (
	"errors"
	"strings"

	"pedagogia_backend/internal/model"
	"pedagogia_backend/internal/repository"
	"pedagogia_backend/internal/util"

	"gorm.io/gorm"
)

type SchoolService struct {
	SchoolRepo  *repository.SchoolRepository
	StudentRepo *repository.StudentRepository
}

func NewSchoolService(schoolRepo *repository.SchoolRepository, studentRepo *repository.StudentRepository) *SchoolService {
	return &SchoolService{SchoolRepo: schoolRepo, StudentRepo: studentRepo}
}

func (s *SchoolService) List() ([]model.School, error) {
	return s.SchoolRepo.GetAll()
}

func (s *SchoolService) Create(school model.School) (*model.School, error) {
	school.Code = strings.TrimSpace(school.Code)
	school.Name = strings.TrimSpace(school.Name)
	if school.Code == "" || school.Name == "" {
		return nil, errors.New("código e nome são obrigatórios")
	}
	if _, err := s.SchoolRepo.FindByCode(school.Code); err == nil {
		return nil, util.ErrSchoolCodeTaken
	}
	if _, err := s.SchoolRepo.FindByName(school.Name); err == nil {
		return nil, util.ErrSchoolNameTaken
	}
	school.ID = school.Code
	if err := s.SchoolRepo.Create(&school); err != nil {
		return nil, err
	}
	return &school, nil
}

func (s *SchoolService) Rename(code, name string) (*model.School, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("nome é obrigatório")
	}
	if _, err := s.SchoolRepo.FindByCode(code); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSchoolNotFound
		}
		return nil, err
	}
	if existing, err := s.SchoolRepo.FindByName(name); err == nil && existing.Code != code {
		return nil, util.ErrSchoolNameTaken
	}
	if err := s.SchoolRepo.UpdateName(code, name); err != nil {
		return nil, err
	}
	return &model.School{ID: code, Code: code, Name: name}, nil
}

// Delete recusa remover escolas que ainda tenham alunos vinculados.
func (s *SchoolService) Delete(code string) error {
	if _, err := s.SchoolRepo.FindByCode(code); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrSchoolNotFound
		}
		return err
	}
	count, err := s.StudentRepo.CountBySchool(code)
	if err != nil {
		return err
	}
	if count > 0 {
		return util.ErrSchoolReferenced
	}
	return s.SchoolRepo.Delete(code)
}
