package repository

import (
	"pedagogia_backend/internal/model"
	"pedagogia_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// phaseColumn liga um par (tipo, período) à coluna denormalizada da tabela
// de alunos. Toda a tradução entre o modelo normalizado e as dez colunas
// fase_* acontece neste arquivo.
type phaseColumn struct {
	Type   model.AssessmentType
	Period string
	Column string
}

var phaseColumns = []phaseColumn{
	{model.AssessmentDrawing, model.PeriodInicial, "fase_desenho_inicial"},
	{model.AssessmentDrawing, model.Period1Bim, "fase_desenho_1bim"},
	{model.AssessmentDrawing, model.Period2Bim, "fase_desenho_2bim"},
	{model.AssessmentDrawing, model.Period3Bim, "fase_desenho_3bim"},
	{model.AssessmentDrawing, model.Period4Bim, "fase_desenho_4bim"},
	{model.AssessmentWriting, model.PeriodInicial, "fase_escrita_inicial"},
	{model.AssessmentWriting, model.Period1Bim, "fase_escrita_1bim"},
	{model.AssessmentWriting, model.Period2Bim, "fase_escrita_2bim"},
	{model.AssessmentWriting, model.Period3Bim, "fase_escrita_3bim"},
	{model.AssessmentWriting, model.Period4Bim, "fase_escrita_4bim"},
}

// ColumnFor resolve a coluna de fase para um par (tipo, período).
func ColumnFor(t model.AssessmentType, period string) (string, bool) {
	for _, pc := range phaseColumns {
		if pc.Type == t && pc.Period == period {
			return pc.Column, true
		}
	}
	return "", false
}

func phaseValue(row *model.AlunoRow, column string) string {
	switch column {
	case "fase_desenho_inicial":
		return row.FaseDesenhoInicial
	case "fase_desenho_1bim":
		return row.FaseDesenho1Bim
	case "fase_desenho_2bim":
		return row.FaseDesenho2Bim
	case "fase_desenho_3bim":
		return row.FaseDesenho3Bim
	case "fase_desenho_4bim":
		return row.FaseDesenho4Bim
	case "fase_escrita_inicial":
		return row.FaseEscritaInicial
	case "fase_escrita_1bim":
		return row.FaseEscrita1Bim
	case "fase_escrita_2bim":
		return row.FaseEscrita2Bim
	case "fase_escrita_3bim":
		return row.FaseEscrita3Bim
	case "fase_escrita_4bim":
		return row.FaseEscrita4Bim
	}
	return ""
}

// SetPhaseValue grava a fase na coluna correspondente de uma linha em
// memória. Usado pelo serviço de importação ao montar linhas mescladas.
func SetPhaseValue(row *model.AlunoRow, column, value string) {
	switch column {
	case "fase_desenho_inicial":
		row.FaseDesenhoInicial = value
	case "fase_desenho_1bim":
		row.FaseDesenho1Bim = value
	case "fase_desenho_2bim":
		row.FaseDesenho2Bim = value
	case "fase_desenho_3bim":
		row.FaseDesenho3Bim = value
	case "fase_desenho_4bim":
		row.FaseDesenho4Bim = value
	case "fase_escrita_inicial":
		row.FaseEscritaInicial = value
	case "fase_escrita_1bim":
		row.FaseEscrita1Bim = value
	case "fase_escrita_2bim":
		row.FaseEscrita2Bim = value
	case "fase_escrita_3bim":
		row.FaseEscrita3Bim = value
	case "fase_escrita_4bim":
		row.FaseEscrita4Bim = value
	}
}

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

// ExpandRow converte as colunas de fase preenchidas de uma linha em
// registros de sondagem com ids sintetizados. Colunas vazias não geram
// registro; "Pendente" gera, e fica a cargo de quem agrega ignorá-lo.
func ExpandRow(row *model.AlunoRow) []model.AssessmentResult {
	var out []model.AssessmentResult
	for _, pc := range phaseColumns {
		phase := phaseValue(row, pc.Column)
		if phase == "" {
			continue
		}
		out = append(out, model.AssessmentResult{
			ID:        model.PeriodAssessmentID(row.Codigo, pc.Type, pc.Period),
			StudentID: row.Codigo,
			Type:      pc.Type,
			Period:    pc.Period,
			Phase:     phase,
		})
	}
	return out
}

func (r *AssessmentRepository) GetAll() ([]model.AssessmentResult, error) {
	var rows []model.AlunoRow
	if err := r.DB.Order("codigo").Find(&rows).Error; err != nil {
		return nil, err
	}
	var out []model.AssessmentResult
	for i := range rows {
		out = append(out, ExpandRow(&rows[i])...)
	}
	return out, nil
}

func (r *AssessmentRepository) GetByStudent(studentID string) ([]model.AssessmentResult, error) {
	var row model.AlunoRow
	if err := r.DB.First(&row, "codigo = ?", studentID).Error; err != nil {
		return nil, err
	}
	return ExpandRow(&row), nil
}

// SaveOne grava uma sondagem na coluna do seu par (tipo, período).
// Sondagens sem coluna correspondente (tipos avulsos ou sem período) são
// registradas no log e ignoradas, sem falhar a operação.
func (r *AssessmentRepository) SaveOne(a model.AssessmentResult) error {
	column, ok := ColumnFor(a.Type, a.Period)
	if !ok {
		logger.Log.Warn("Assessment has no backing column, skipping persistence",
			zap.String("student", a.StudentID),
			zap.String("type", string(a.Type)),
			zap.String("period", a.Period),
		)
		return nil
	}
	return r.DB.Model(&model.AlunoRow{}).
		Where("codigo = ?", a.StudentID).
		Update(column, a.Phase).
		Error
}

// SaveBatch grava várias sondagens agrupando os updates por aluno.
func (r *AssessmentRepository) SaveBatch(assessments []model.AssessmentResult) error {
	byStudent := make(map[string]map[string]interface{})
	var order []string
	for _, a := range assessments {
		column, ok := ColumnFor(a.Type, a.Period)
		if !ok {
			logger.Log.Warn("Assessment has no backing column, skipping persistence",
				zap.String("student", a.StudentID),
				zap.String("type", string(a.Type)),
				zap.String("period", a.Period),
			)
			continue
		}
		updates, exists := byStudent[a.StudentID]
		if !exists {
			updates = make(map[string]interface{})
			byStudent[a.StudentID] = updates
			order = append(order, a.StudentID)
		}
		updates[column] = a.Phase
	}

	return r.DB.Transaction(func(tx *gorm.DB) error {
		for _, studentID := range order {
			err := tx.Model(&model.AlunoRow{}).
				Where("codigo = ?", studentID).
				Updates(byStudent[studentID]).
				Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Clear apaga a sondagem de um par (tipo, período), esvaziando a coluna.
func (r *AssessmentRepository) Clear(studentID string, t model.AssessmentType, period string) error {
	column, ok := ColumnFor(t, period)
	if !ok {
		return nil
	}
	return r.DB.Model(&model.AlunoRow{}).
		Where("codigo = ?", studentID).
		Update(column, "").
		Error
}
