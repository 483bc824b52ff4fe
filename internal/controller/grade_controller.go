package controller

import (
	"errors"

	"pedagogia_backend/internal/service"
	"pedagogia_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GradeController struct {
	GradeService *service.GradeService
}

func NewGradeController(gradeService *service.GradeService) *GradeController {
	return &GradeController{GradeService: gradeService}
}

type nameRequest struct {
	Name string `json:"name" binding:"required"`
}

// @Summary Lista as turmas
// @Tags turmas
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/grades [get]
func (c *GradeController) List(ctx *gin.Context) {
	grades, err := c.GradeService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, grades)
}

// @Summary Cadastra uma turma
// @Tags turmas
// @Accept json
// @Produce json
// @Param body body nameRequest true "Nome da turma"
// @Success 201 {object} util.Response
// @Router /api/grades [post]
func (c *GradeController) Create(ctx *gin.Context) {
	var body nameRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	created, err := c.GradeService.Create(body.Name)
	if err != nil {
		if errors.Is(err, util.ErrGradeNameTaken) {
			util.Conflict(ctx, err.Error())
			return
		}
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, created)
}

// @Summary Renomeia uma turma, arrastando os alunos vinculados
// @Tags turmas
// @Accept json
// @Produce json
// @Param name path string true "Nome atual"
// @Param body body nameRequest true "Novo nome"
// @Success 200 {object} util.Response
// @Router /api/grades/{name} [put]
func (c *GradeController) Rename(ctx *gin.Context) {
	var body nameRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	updated, err := c.GradeService.Rename(ctx.Param("name"), body.Name)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrGradeNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrGradeNameTaken):
			util.Conflict(ctx, err.Error())
		default:
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, updated)
}

// @Summary Remove uma turma sem alunos
// @Tags turmas
// @Produce json
// @Param name path string true "Nome da turma"
// @Success 200 {object} util.Response
// @Router /api/grades/{name} [delete]
func (c *GradeController) Delete(ctx *gin.Context) {
	if err := c.GradeService.Delete(ctx.Param("name")); err != nil {
		switch {
		case errors.Is(err, util.ErrGradeNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrGradeReferenced):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}
