package util

import "errors"

var (
	ErrStudentNotFound      = errors.New("aluno não encontrado")
	ErrStudentCodeTaken     = errors.New("já existe um aluno com este código")
	ErrSchoolNotFound       = errors.New("escola não encontrada")
	ErrSchoolNameTaken      = errors.New("já existe uma escola com este nome")
	ErrSchoolCodeTaken      = errors.New("já existe uma escola com este código")
	ErrSchoolReferenced     = errors.New("escola possui alunos vinculados")
	ErrGradeNotFound        = errors.New("turma não encontrada")
	ErrGradeNameTaken       = errors.New("já existe uma turma com este nome")
	ErrGradeReferenced      = errors.New("turma possui alunos vinculados")
	ErrSeriesNotFound       = errors.New("série não encontrada")
	ErrSeriesNameTaken      = errors.New("já existe uma série com este nome")
	ErrSeriesReferenced     = errors.New("série possui alunos vinculados")
	ErrAssessmentNotMapped  = errors.New("avaliação sem coluna correspondente")
	ErrInvalidPeriod        = errors.New("período de avaliação inválido")
	ErrInvalidSituation     = errors.New("situação de avaliação inválida")
	ErrOracleExhausted      = errors.New("serviço de classificação indisponível após novas tentativas")
	ErrOracleEmptyResponse  = errors.New("serviço de classificação retornou resposta vazia")
	ErrSpreadsheetNoSheet   = errors.New("planilha não possui abas")
	ErrSpreadsheetNoHeader  = errors.New("planilha sem linha de cabeçalho reconhecível")
	ErrUnsupportedFileType  = errors.New("tipo de arquivo não suportado")
)
