package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pedagogia_backend/internal/model"
	"pedagogia_backend/internal/repository"

	"github.com/go-redis/redis/v8"
)

type DashboardService struct {
	StudentRepo    *repository.StudentRepository
	AssessmentRepo *repository.AssessmentRepository
	Redis          *redis.Client
	CacheTTL       time.Duration
}

func NewDashboardService(
	studentRepo *repository.StudentRepository,
	assessmentRepo *repository.AssessmentRepository,
	rdb *redis.Client,
	cacheTTL time.Duration,
) *DashboardService {
	return &DashboardService{
		StudentRepo:    studentRepo,
		AssessmentRepo: assessmentRepo,
		Redis:          rdb,
		CacheTTL:       cacheTTL,
	}
}

// DashboardFilters recorta a coorte agregada. Campos vazios não filtram.
type DashboardFilters struct {
	Type     model.AssessmentType `json:"type"`
	Period   string               `json:"period"`
	SchoolID string               `json:"schoolId"`
	Series   string               `json:"series"`
	Grade    string               `json:"grade"`
}

type PhaseCount struct {
	Phase   string  `json:"phase"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

type PeriodSnapshot struct {
	Period           string `json:"period"`
	Evaluated        int    `json:"evaluated"`
	PredominantPhase string `json:"predominantPhase,omitempty"`
}

type DashboardSummary struct {
	TotalStudents    int              `json:"totalStudents"`
	Evaluated        int              `json:"evaluated"`
	CoveragePercent  float64          `json:"coveragePercent"`
	PredominantPhase string           `json:"predominantPhase"`
	Distribution     []PhaseCount     `json:"distribution"`
	Evolution        []PeriodSnapshot `json:"evolution"`
}

func matchesCohort(s model.Student, f DashboardFilters) bool {
	if f.SchoolID != "" && s.SchoolID != f.SchoolID {
		return false
	}
	if f.Series != "" && s.Series != f.Series {
		return false
	}
	if f.Grade != "" && s.Grade != f.Grade {
		return false
	}
	return true
}

// AggregateDashboard calcula o painel de coorte em memória. Pendências
// ("Pendente" ou coluna vazia) não contam como avaliadas; a distribuição
// segue a ordem da taxonomia do domínio; e a fase predominante desempata
// para a fase mais alta.
func AggregateDashboard(students []model.Student, assessments []model.AssessmentResult, f DashboardFilters) *DashboardSummary {
	domain, _ := f.Type.Domain()
	phases := model.PhasesFor(domain)

	cohort := make(map[string]bool)
	for _, s := range students {
		if matchesCohort(s, f) {
			cohort[s.ID] = true
		}
	}

	byPeriod := make(map[string]map[string][]model.AssessmentResult)
	for _, a := range assessments {
		if a.Type != f.Type || !cohort[a.StudentID] || a.IsPending() {
			continue
		}
		if byPeriod[a.Period] == nil {
			byPeriod[a.Period] = make(map[string][]model.AssessmentResult)
		}
		byPeriod[a.Period][a.StudentID] = append(byPeriod[a.Period][a.StudentID], a)
	}

	// Cada aluno contribui com no máximo uma sondagem por período, a mais
	// recente. Registros avulsos coexistem no mesmo período e contariam o
	// mesmo aluno mais de uma vez.
	latestLabels := func(period string) []string {
		perStudent := byPeriod[period]
		labels := make([]string, 0, len(perStudent))
		for studentID, records := range perStudent {
			if latest := LatestFor(records, studentID, f.Type); latest != nil {
				labels = append(labels, latest.Phase)
			}
		}
		return labels
	}

	labels := latestLabels(f.Period)
	evaluated := len(byPeriod[f.Period])
	total := len(cohort)

	coverage := 0.0
	if total > 0 {
		coverage = float64(evaluated) / float64(total) * 100
	}

	counts := make(map[string]int)
	for _, label := range labels {
		counts[model.CanonicalPhase(label, domain)]++
	}
	distribution := make([]PhaseCount, 0, len(phases))
	for _, phase := range phases {
		pct := 0.0
		if evaluated > 0 {
			pct = float64(counts[phase]) / float64(evaluated) * 100
		}
		distribution = append(distribution, PhaseCount{Phase: phase, Count: counts[phase], Percent: pct})
	}

	predominant := ""
	if evaluated > 0 {
		predominant = model.PredominantPhase(labels, domain)
	}

	evolution := make([]PeriodSnapshot, 0, len(model.Periods))
	for _, period := range model.Periods {
		snap := PeriodSnapshot{Period: period, Evaluated: len(byPeriod[period])}
		if snap.Evaluated > 0 {
			snap.PredominantPhase = model.PredominantPhase(latestLabels(period), domain)
		}
		evolution = append(evolution, snap)
	}

	return &DashboardSummary{
		TotalStudents:    total,
		Evaluated:        evaluated,
		CoveragePercent:  coverage,
		PredominantPhase: predominant,
		Distribution:     distribution,
		Evolution:        evolution,
	}
}

func cacheKey(f DashboardFilters) string {
	return fmt.Sprintf("dashboard:%s:%s:%s:%s:%s", f.Type, f.Period, f.SchoolID, f.Series, f.Grade)
}

func (s *DashboardService) GetDashboard(ctx context.Context, f DashboardFilters) (*DashboardSummary, error) {
	if f.Period == "" {
		f.Period = model.PeriodInicial
	}

	key := cacheKey(f)
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, key).Result(); err == nil {
			var summary DashboardSummary
			if json.Unmarshal([]byte(cached), &summary) == nil {
				return &summary, nil
			}
		}
	}

	students, err := s.StudentRepo.GetAll()
	if err != nil {
		return nil, err
	}
	assessments, err := s.AssessmentRepo.GetAll()
	if err != nil {
		return nil, err
	}

	summary := AggregateDashboard(students, assessments, f)

	if s.Redis != nil {
		if payload, err := json.Marshal(summary); err == nil {
			s.Redis.Set(ctx, key, payload, s.CacheTTL)
		}
	}
	return summary, nil
}
