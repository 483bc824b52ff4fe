package controller

import (
	"errors"

	"pedagogia_backend/internal/model"
	"pedagogia_backend/internal/service"
	"pedagogia_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SchoolController struct {
	SchoolService *service.SchoolService
}

func NewSchoolController(schoolService *service.SchoolService) *SchoolController {
	return &SchoolController{SchoolService: schoolService}
}

// @Summary Lista as escolas
// @Tags escolas
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/schools [get]
func (c *SchoolController) List(ctx *gin.Context) {
	schools, err := c.SchoolService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, schools)
}

// @Summary Cadastra uma escola
// @Tags escolas
// @Accept json
// @Produce json
// @Param body body model.School true "Escola"
// @Success 201 {object} util.Response
// @Router /api/schools [post]
func (c *SchoolController) Create(ctx *gin.Context) {
	var body model.School
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	created, err := c.SchoolService.Create(body)
	if err != nil {
		if errors.Is(err, util.ErrSchoolCodeTaken) || errors.Is(err, util.ErrSchoolNameTaken) {
			util.Conflict(ctx, err.Error())
			return
		}
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, created)
}

type renameRequest struct {
	Name string `json:"name" binding:"required"`
}

// @Summary Renomeia uma escola
// @Tags escolas
// @Accept json
// @Produce json
// @Param code path string true "Código da escola"
// @Param body body renameRequest true "Novo nome"
// @Success 200 {object} util.Response
// @Router /api/schools/{code} [put]
func (c *SchoolController) Rename(ctx *gin.Context) {
	var body renameRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	updated, err := c.SchoolService.Rename(ctx.Param("code"), body.Name)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSchoolNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrSchoolNameTaken):
			util.Conflict(ctx, err.Error())
		default:
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, updated)
}

// @Summary Remove uma escola sem alunos vinculados
// @Tags escolas
// @Produce json
// @Param code path string true "Código da escola"
// @Success 200 {object} util.Response
// @Router /api/schools/{code} [delete]
func (c *SchoolController) Delete(ctx *gin.Context) {
	if err := c.SchoolService.Delete(ctx.Param("code")); err != nil {
		switch {
		case errors.Is(err, util.ErrSchoolNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrSchoolReferenced):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}
