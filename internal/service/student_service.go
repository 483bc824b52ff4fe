package service

import (
	"context"
	"errors"
	"strings"

	"pedagogia_backend/internal/model"
	"pedagogia_backend/internal/repository"
	"pedagogia_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type StudentService struct {
	StudentRepo    *repository.StudentRepository
	AssessmentRepo *repository.AssessmentRepository
	Redis          *redis.Client
}

func NewStudentService(
	studentRepo *repository.StudentRepository,
	assessmentRepo *repository.AssessmentRepository,
	rdb *redis.Client,
) *StudentService {
	return &StudentService{
		StudentRepo:    studentRepo,
		AssessmentRepo: assessmentRepo,
		Redis:          rdb,
	}
}

// StudentDetail embute as sondagens do aluno e o snapshot mais recente de
// cada domínio, como a tela de perfil consome.
type StudentDetail struct {
	model.Student
	Assessments   []model.AssessmentResult `json:"assessments"`
	LatestDrawing *model.AssessmentResult  `json:"latestDrawing,omitempty"`
	LatestWriting *model.AssessmentResult  `json:"latestWriting,omitempty"`
}

func (s *StudentService) List() ([]model.Student, error) {
	return s.StudentRepo.GetAll()
}

func (s *StudentService) Get(code string) (*StudentDetail, error) {
	student, err := s.StudentRepo.FindByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStudentNotFound
		}
		return nil, err
	}
	assessments, err := s.AssessmentRepo.GetByStudent(code)
	if err != nil {
		return nil, err
	}
	return &StudentDetail{
		Student:       *student,
		Assessments:   assessments,
		LatestDrawing: LatestFor(assessments, code, model.AssessmentDrawing),
		LatestWriting: LatestFor(assessments, code, model.AssessmentWriting),
	}, nil
}

func (s *StudentService) Create(ctx context.Context, student model.Student) (*model.Student, error) {
	student.Code = strings.TrimSpace(student.Code)
	if student.Code == "" || strings.TrimSpace(student.Name) == "" {
		return nil, errors.New("código e nome são obrigatórios")
	}
	if _, err := s.StudentRepo.FindByCode(student.Code); err == nil {
		return nil, util.ErrStudentCodeTaken
	}
	student.ID = student.Code
	if err := s.StudentRepo.Create(&student); err != nil {
		return nil, err
	}
	s.invalidateDashboards(ctx)
	return &student, nil
}

// Update altera os dados de identidade de um aluno. Trocar o código
// significa trocar a chave natural: o registro antigo é removido e um novo
// é criado sob o novo código, carregando as colunas de fase junto.
func (s *StudentService) Update(ctx context.Context, code string, student model.Student) (*model.Student, error) {
	row, err := s.StudentRepo.FindRow(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStudentNotFound
		}
		return nil, err
	}

	newCode := strings.TrimSpace(student.Code)
	if newCode == "" {
		newCode = code
	}

	if newCode != code {
		if _, err := s.StudentRepo.FindByCode(newCode); err == nil {
			return nil, util.ErrStudentCodeTaken
		}
		newRow := *row
		newRow.Codigo = newCode
		newRow.Nome = student.Name
		newRow.DataNascimento = student.BirthDate
		newRow.Turma = student.Grade
		newRow.Serie = student.Series
		newRow.Escola = student.SchoolID
		newRow.Observacoes = student.Observations

		err := s.StudentRepo.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&model.AlunoRow{}, "codigo = ?", code).Error; err != nil {
				return err
			}
			return tx.Create(&newRow).Error
		})
		if err != nil {
			return nil, err
		}
	} else {
		student.Code = code
		if err := s.StudentRepo.Update(&student); err != nil {
			return nil, err
		}
	}

	s.invalidateDashboards(ctx)
	updated, err := s.StudentRepo.FindByCode(newCode)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete remove o aluno; as sondagens moram na própria linha, então vão
// junto.
func (s *StudentService) Delete(ctx context.Context, code string) error {
	if _, err := s.StudentRepo.FindByCode(code); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrStudentNotFound
		}
		return err
	}
	if err := s.StudentRepo.Delete(code); err != nil {
		return err
	}
	s.invalidateDashboards(ctx)
	return nil
}

// DeleteAll limpa toda a base de alunos e sondagens.
func (s *StudentService) DeleteAll(ctx context.Context) error {
	if err := s.StudentRepo.DeleteAll(); err != nil {
		return err
	}
	s.invalidateDashboards(ctx)
	return nil
}

func (s *StudentService) invalidateDashboards(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	keys, err := s.Redis.Keys(ctx, "dashboard:*").Result()
	if err != nil || len(keys) == 0 {
		return
	}
	s.Redis.Del(ctx, keys...)
}
