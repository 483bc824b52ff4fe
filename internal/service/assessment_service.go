package service

import (
	"context"
	"sort"
	"time"

	"pedagogia_backend/internal/model"
	"pedagogia_backend/internal/repository"
	"pedagogia_backend/internal/util"

	"github.com/go-redis/redis/v8"
)

type AssessmentService struct {
	AssessmentRepo *repository.AssessmentRepository
	StudentRepo    *repository.StudentRepository
	Redis          *redis.Client
}

func NewAssessmentService(
	assessmentRepo *repository.AssessmentRepository,
	studentRepo *repository.StudentRepository,
	rdb *redis.Client,
) *AssessmentService {
	return &AssessmentService{
		AssessmentRepo: assessmentRepo,
		StudentRepo:    studentRepo,
		Redis:          rdb,
	}
}

func periodRank(period string) int {
	for i, p := range model.Periods {
		if p == period {
			return i
		}
	}
	return -1
}

// LatestFor devolve a sondagem mais recente de um aluno para um tipo.
// Datas iguais (ou ausentes, caso das sondagens reidratadas do armazém
// denormalizado) desempatam pelo período mais tardio do ano letivo.
func LatestFor(assessments []model.AssessmentResult, studentID string, t model.AssessmentType) *model.AssessmentResult {
	var matches []model.AssessmentResult
	for _, a := range assessments {
		if a.StudentID == studentID && a.Type == t {
			matches = append(matches, a)
		}
	}
	if len(matches) == 0 {
		return nil
	}
	sort.SliceStable(matches, func(i, j int) bool {
		di, dj := matches[i].ParsedDate(), matches[j].ParsedDate()
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return periodRank(matches[i].Period) > periodRank(matches[j].Period)
	})
	return &matches[0]
}

func (s *AssessmentService) ListAll() ([]model.AssessmentResult, error) {
	return s.AssessmentRepo.GetAll()
}

func (s *AssessmentService) ListByStudent(studentID string) ([]model.AssessmentResult, error) {
	if _, err := s.StudentRepo.FindByCode(studentID); err != nil {
		return nil, util.ErrStudentNotFound
	}
	return s.AssessmentRepo.GetByStudent(studentID)
}

func (s *AssessmentService) LatestForStudent(studentID string, t model.AssessmentType) (*model.AssessmentResult, error) {
	assessments, err := s.ListByStudent(studentID)
	if err != nil {
		return nil, err
	}
	return LatestFor(assessments, studentID, t), nil
}

// UpsertPeriodAssessment grava (ou sobrescreve) a sondagem de um par
// (tipo, período). O id é sintetizado a partir do par, de modo que um
// segundo salvamento para o mesmo período substitui o registro em vez de
// acumular.
func (s *AssessmentService) UpsertPeriodAssessment(ctx context.Context, a model.AssessmentResult) (*model.AssessmentResult, error) {
	if !model.ValidPeriod(a.Period) {
		return nil, util.ErrInvalidPeriod
	}
	if _, ok := a.Type.Domain(); !ok {
		return nil, util.ErrAssessmentNotMapped
	}
	if !model.ValidSituation(a.Situation) {
		return nil, util.ErrInvalidSituation
	}
	if _, err := s.StudentRepo.FindByCode(a.StudentID); err != nil {
		return nil, util.ErrStudentNotFound
	}

	a.ID = model.PeriodAssessmentID(a.StudentID, a.Type, a.Period)
	if a.Date == "" {
		a.Date = time.Now().Format(time.RFC3339)
	}

	if err := s.AssessmentRepo.SaveOne(a); err != nil {
		return nil, err
	}
	s.invalidateDashboards(ctx)
	return &a, nil
}

// RecordAdHoc registra uma avaliação avulsa (fonológica, memória, etc.)
// com id aleatório. O armazém denormalizado não tem coluna para esses
// tipos; o repositório registra e segue.
func (s *AssessmentService) RecordAdHoc(ctx context.Context, a model.AssessmentResult) (*model.AssessmentResult, error) {
	if _, err := s.StudentRepo.FindByCode(a.StudentID); err != nil {
		return nil, util.ErrStudentNotFound
	}
	a.ID = model.NewAssessmentID()
	if a.Date == "" {
		a.Date = time.Now().Format(time.RFC3339)
	}
	if err := s.AssessmentRepo.SaveOne(a); err != nil {
		return nil, err
	}
	return &a, nil
}

// ClearPeriodAssessment remove a sondagem de um par (tipo, período).
func (s *AssessmentService) ClearPeriodAssessment(ctx context.Context, studentID string, t model.AssessmentType, period string) error {
	if !model.ValidPeriod(period) {
		return util.ErrInvalidPeriod
	}
	if _, err := s.StudentRepo.FindByCode(studentID); err != nil {
		return util.ErrStudentNotFound
	}
	if err := s.AssessmentRepo.Clear(studentID, t, period); err != nil {
		return err
	}
	s.invalidateDashboards(ctx)
	return nil
}

func (s *AssessmentService) invalidateDashboards(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	keys, err := s.Redis.Keys(ctx, "dashboard:*").Result()
	if err != nil || len(keys) == 0 {
		return
	}
	s.Redis.Del(ctx, keys...)
}
