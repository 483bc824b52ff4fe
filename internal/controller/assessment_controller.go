package controller

import (
	"errors"

	"pedagogia_backend/internal/model"
	"pedagogia_backend/internal/service"
	"pedagogia_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
}

func NewAssessmentController(assessmentService *service.AssessmentService) *AssessmentController {
	return &AssessmentController{AssessmentService: assessmentService}
}

type upsertAssessmentRequest struct {
	Type      model.AssessmentType `json:"type" binding:"required"`
	Period    string               `json:"period" binding:"required,period"`
	Phase     string               `json:"phase" binding:"required"`
	Situation string               `json:"situation"`
	Date      string               `json:"date"`
	Notes     string               `json:"notes"`
	ImageURL  string               `json:"imageUrl"`
}

// @Summary Lista todas as sondagens
// @Tags sondagens
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/assessments [get]
func (c *AssessmentController) List(ctx *gin.Context) {
	assessments, err := c.AssessmentService.ListAll()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, assessments)
}

// @Summary Lista as sondagens de um aluno
// @Tags sondagens
// @Produce json
// @Param code path string true "Código do aluno"
// @Success 200 {object} util.Response
// @Router /api/students/{code}/assessments [get]
func (c *AssessmentController) ListByStudent(ctx *gin.Context) {
	assessments, err := c.AssessmentService.ListByStudent(ctx.Param("code"))
	if err != nil {
		if errors.Is(err, util.ErrStudentNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, assessments)
}

// @Summary Grava a sondagem de um período (sobrescreve a anterior)
// @Tags sondagens
// @Accept json
// @Produce json
// @Param code path string true "Código do aluno"
// @Param body body upsertAssessmentRequest true "Sondagem"
// @Success 200 {object} util.Response
// @Router /api/students/{code}/assessments [put]
func (c *AssessmentController) Upsert(ctx *gin.Context) {
	var body upsertAssessmentRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	saved, err := c.AssessmentService.UpsertPeriodAssessment(ctx.Request.Context(), model.AssessmentResult{
		StudentID: ctx.Param("code"),
		Type:      body.Type,
		Period:    body.Period,
		Phase:     body.Phase,
		Situation: body.Situation,
		Date:      body.Date,
		Notes:     body.Notes,
		ImageURL:  body.ImageURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, util.ErrStudentNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrInvalidPeriod), errors.Is(err, util.ErrInvalidSituation),
			errors.Is(err, util.ErrAssessmentNotMapped):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, saved)
}

type adHocAssessmentRequest struct {
	Type     model.AssessmentType `json:"type" binding:"required"`
	Date     string               `json:"date"`
	Score    *float64             `json:"score"`
	MaxScore *float64             `json:"maxScore"`
	Notes    string               `json:"notes"`
}

// @Summary Registra uma avaliação avulsa (fonológica, memória, etc.)
// @Tags sondagens
// @Accept json
// @Produce json
// @Param code path string true "Código do aluno"
// @Param body body adHocAssessmentRequest true "Avaliação"
// @Success 201 {object} util.Response
// @Router /api/students/{code}/assessments [post]
func (c *AssessmentController) RecordAdHoc(ctx *gin.Context) {
	var body adHocAssessmentRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	saved, err := c.AssessmentService.RecordAdHoc(ctx.Request.Context(), model.AssessmentResult{
		StudentID: ctx.Param("code"),
		Type:      body.Type,
		Date:      body.Date,
		Score:     body.Score,
		MaxScore:  body.MaxScore,
		Notes:     body.Notes,
	})
	if err != nil {
		if errors.Is(err, util.ErrStudentNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, saved)
}

// @Summary Apaga a sondagem de um período
// @Tags sondagens
// @Produce json
// @Param code path string true "Código do aluno"
// @Param type query string true "Tipo (DESENHO ou ESCRITA)"
// @Param period query string true "Período"
// @Success 200 {object} util.Response
// @Router /api/students/{code}/assessments [delete]
func (c *AssessmentController) Clear(ctx *gin.Context) {
	t := model.AssessmentType(ctx.Query("type"))
	period := ctx.Query("period")

	err := c.AssessmentService.ClearPeriodAssessment(ctx.Request.Context(), ctx.Param("code"), t, period)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrStudentNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrInvalidPeriod):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"cleared": true})
}
