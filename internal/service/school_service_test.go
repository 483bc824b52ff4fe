package service

import (
	"testing"

	"pedagogia_backend/internal/model"
	"pedagogia_backend/internal/repository"
	"pedagogia_backend/internal/util"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func schoolFixture(t *testing.T) *SchoolService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.EscolaRow{}, &model.AlunoRow{}))
	return NewSchoolService(repository.NewSchoolRepository(db), repository.NewStudentRepository(db))
}

func TestSchoolServiceCreate(t *testing.T) {
	svc := schoolFixture(t)
	created, err := svc.Create(model.School{Code: "E1", Name: "Escola Monteiro Lobato"})
	require.NoError(t, err)
	assert.Equal(t, "E1", created.ID)

	t.Run("código duplicado é recusado com o erro de código", func(t *testing.T) {
		_, err := svc.Create(model.School{Code: "E1", Name: "Outro Nome Qualquer"})
		assert.ErrorIs(t, err, util.ErrSchoolCodeTaken)
	})

	t.Run("nome duplicado é recusado com o erro de nome", func(t *testing.T) {
		_, err := svc.Create(model.School{Code: "E2", Name: "Escola Monteiro Lobato"})
		assert.ErrorIs(t, err, util.ErrSchoolNameTaken)
	})

	t.Run("código e nome inéditos passam", func(t *testing.T) {
		_, err := svc.Create(model.School{Code: "E2", Name: "Escola Cecília Meireles"})
		assert.NoError(t, err)
	})
}

func TestSchoolServiceDelete(t *testing.T) {
	svc := schoolFixture(t)
	_, err := svc.Create(model.School{Code: "E1", Name: "Escola Monteiro Lobato"})
	require.NoError(t, err)
	require.NoError(t, svc.StudentRepo.CreateRow(&model.AlunoRow{Codigo: "A001", Nome: "Ana", Escola: "E1"}))

	t.Run("escola com alunos vinculados não sai", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete("E1"), util.ErrSchoolReferenced)
	})

	t.Run("sem vínculos a remoção passa", func(t *testing.T) {
		require.NoError(t, svc.StudentRepo.Delete("A001"))
		assert.NoError(t, svc.Delete("E1"))
	})

	t.Run("escola inexistente devolve não encontrada", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete("E9"), util.ErrSchoolNotFound)
	})
}
