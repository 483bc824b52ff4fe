package controller

import (
	"pedagogia_backend/internal/model"
	"pedagogia_backend/internal/service"
	"pedagogia_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

func filtersFromQuery(ctx *gin.Context) service.DashboardFilters {
	t := model.AssessmentType(ctx.DefaultQuery("type", string(model.AssessmentDrawing)))
	return service.DashboardFilters{
		Type:     t,
		Period:   ctx.Query("period"),
		SchoolID: ctx.Query("schoolId"),
		Series:   ctx.Query("series"),
		Grade:    ctx.Query("grade"),
	}
}

// @Summary Painel agregado da coorte (cobertura, distribuição e evolução)
// @Tags painel
// @Produce json
// @Param type query string false "Tipo (DESENHO ou ESCRITA)"
// @Param period query string false "Período (padrão Inicial)"
// @Param schoolId query string false "Código da escola"
// @Param series query string false "Série"
// @Param grade query string false "Turma"
// @Success 200 {object} util.Response
// @Router /api/dashboard [get]
func (c *DashboardController) Get(ctx *gin.Context) {
	f := filtersFromQuery(ctx)
	if _, ok := f.Type.Domain(); !ok {
		util.BadRequest(ctx, "tipo sem taxonomia de fases: "+string(f.Type))
		return
	}
	summary, err := c.DashboardService.GetDashboard(ctx.Request.Context(), f)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}
