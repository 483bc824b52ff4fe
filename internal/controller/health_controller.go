package controller

import (
	"net/http"

	"pedagogia_backend/internal/model"
	"pedagogia_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

// @Summary Verificação de saúde
// @Description Checa o estado do serviço e do banco
// @Tags sistema
// @Produce json
// @Success 200 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	sqlDB, err := c.DB.DB()
	if err != nil {
		util.InternalServerError(ctx)
		return
	}

	if err := sqlDB.Ping(); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"database": "up",
		},
	})
}

// @Summary Taxonomias de fases por domínio
// @Tags sistema
// @Produce json
// @Success 200 {object} util.Response
// @Router /phases [get]
func (c *HealthController) Phases(ctx *gin.Context) {
	util.Success(ctx, gin.H{
		"drawing": model.DrawingPhases,
		"writing": model.WritingPhases,
		"periods": model.Periods,
	})
}
