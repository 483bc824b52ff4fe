package controller

import (
	"errors"

	"pedagogia_backend/internal/model"
	"pedagogia_backend/internal/service"
	"pedagogia_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StudentController struct {
	StudentService    *service.StudentService
	AssessmentService *service.AssessmentService
}

func NewStudentController(studentService *service.StudentService, assessmentService *service.AssessmentService) *StudentController {
	return &StudentController{
		StudentService:    studentService,
		AssessmentService: assessmentService,
	}
}

// updateStudentRequest aceita, além dos dados cadastrais, um bloco opcional
// com a sondagem de desenho editada junto do aluno. Fase vazia no bloco
// limpa a sondagem do período.
type updateStudentRequest struct {
	model.Student
	LastDrawingAssessment *drawingAssessmentPatch `json:"lastDrawingAssessment,omitempty"`
}

type drawingAssessmentPatch struct {
	Period   string `json:"period" binding:"required,period"`
	Phase    string `json:"phase"`
	Date     string `json:"date"`
	Notes    string `json:"notes"`
	ImageURL string `json:"imageUrl"`
}

// @Summary Lista todos os alunos
// @Tags alunos
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/students [get]
func (c *StudentController) List(ctx *gin.Context) {
	students, err := c.StudentService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, students)
}

// @Summary Detalha um aluno com suas sondagens
// @Tags alunos
// @Produce json
// @Param code path string true "Código do aluno"
// @Success 200 {object} util.Response
// @Router /api/students/{code} [get]
func (c *StudentController) Get(ctx *gin.Context) {
	detail, err := c.StudentService.Get(ctx.Param("code"))
	if err != nil {
		if errors.Is(err, util.ErrStudentNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// @Summary Cadastra um aluno
// @Tags alunos
// @Accept json
// @Produce json
// @Param body body model.Student true "Dados do aluno"
// @Success 201 {object} util.Response
// @Router /api/students [post]
func (c *StudentController) Create(ctx *gin.Context) {
	var body model.Student
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	created, err := c.StudentService.Create(ctx.Request.Context(), body)
	if err != nil {
		if errors.Is(err, util.ErrStudentCodeTaken) {
			util.Conflict(ctx, err.Error())
			return
		}
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, created)
}

// @Summary Atualiza um aluno (trocar o código recria o registro)
// @Tags alunos
// @Accept json
// @Produce json
// @Param code path string true "Código atual do aluno"
// @Param body body model.Student true "Dados do aluno"
// @Success 200 {object} util.Response
// @Router /api/students/{code} [put]
func (c *StudentController) Update(ctx *gin.Context) {
	var body updateStudentRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	updated, err := c.StudentService.Update(ctx.Request.Context(), ctx.Param("code"), body.Student)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrStudentNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrStudentCodeTaken):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	if patch := body.LastDrawingAssessment; patch != nil {
		if patch.Phase == "" {
			err = c.AssessmentService.ClearPeriodAssessment(ctx.Request.Context(), updated.Code, model.AssessmentDrawing, patch.Period)
		} else {
			_, err = c.AssessmentService.UpsertPeriodAssessment(ctx.Request.Context(), model.AssessmentResult{
				StudentID: updated.Code,
				Type:      model.AssessmentDrawing,
				Period:    patch.Period,
				Phase:     patch.Phase,
				Date:      patch.Date,
				Notes:     patch.Notes,
				ImageURL:  patch.ImageURL,
			})
		}
		if err != nil {
			if errors.Is(err, util.ErrInvalidPeriod) {
				util.BadRequest(ctx, err.Error())
				return
			}
			util.LogInternalError(ctx, err)
			return
		}
	}
	util.Success(ctx, updated)
}

// @Summary Remove um aluno e suas sondagens
// @Tags alunos
// @Produce json
// @Param code path string true "Código do aluno"
// @Success 200 {object} util.Response
// @Router /api/students/{code} [delete]
func (c *StudentController) Delete(ctx *gin.Context) {
	if err := c.StudentService.Delete(ctx.Request.Context(), ctx.Param("code")); err != nil {
		if errors.Is(err, util.ErrStudentNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

// @Summary Limpa toda a base de alunos
// @Tags alunos
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/students [delete]
func (c *StudentController) DeleteAll(ctx *gin.Context) {
	if err := c.StudentService.DeleteAll(ctx.Request.Context()); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}
