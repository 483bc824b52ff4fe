package controller

import (
	"errors"

	"pedagogia_backend/internal/service"
	"pedagogia_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportService *service.ReportService
}

func NewReportController(reportService *service.ReportService) *ReportController {
	return &ReportController{ReportService: reportService}
}

// @Summary Relatório tabular: fase de cada aluno por período
// @Tags relatorios
// @Produce json
// @Param type query string false "Tipo (DESENHO ou ESCRITA)"
// @Param schoolId query string false "Código da escola"
// @Param series query string false "Série"
// @Param grade query string false "Turma"
// @Param search query string false "Busca por nome ou código"
// @Success 200 {object} util.Response
// @Router /api/reports/tabular [get]
func (c *ReportController) Tabular(ctx *gin.Context) {
	f := filtersFromQuery(ctx)
	if _, ok := f.Type.Domain(); !ok {
		util.BadRequest(ctx, "tipo sem taxonomia de fases: "+string(f.Type))
		return
	}
	report, err := c.ReportService.Tabular(f.Type, f, ctx.Query("search"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// @Summary Parecer pedagógico narrativo gerado por IA, com fontes
// @Tags relatorios
// @Produce json
// @Param type query string false "Tipo (DESENHO ou ESCRITA)"
// @Param period query string false "Período"
// @Param schoolId query string false "Código da escola"
// @Param series query string false "Série"
// @Param grade query string false "Turma"
// @Success 200 {object} util.Response
// @Router /api/reports/narrative [get]
func (c *ReportController) Narrative(ctx *gin.Context) {
	f := filtersFromQuery(ctx)
	if _, ok := f.Type.Domain(); !ok {
		util.BadRequest(ctx, "tipo sem taxonomia de fases: "+string(f.Type))
		return
	}
	report, err := c.ReportService.Narrative(ctx.Request.Context(), f)
	if err != nil {
		if errors.Is(err, util.ErrOracleExhausted) {
			util.Error(ctx, 503, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// @Summary Parecer pedagógico individual de um aluno
// @Tags relatorios
// @Produce json
// @Param code path string true "Código do aluno"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/students/{code}/report [post]
func (c *ReportController) StudentNarrative(ctx *gin.Context) {
	report, err := c.ReportService.StudentNarrative(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrStudentNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrOracleExhausted):
			util.Error(ctx, 503, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, report)
}
