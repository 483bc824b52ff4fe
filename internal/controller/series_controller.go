package controller

import (
	"errors"

	"pedagogia_backend/internal/service"
	"pedagogia_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SeriesController struct {
	SeriesService *service.SeriesService
}

func NewSeriesController(seriesService *service.SeriesService) *SeriesController {
	return &SeriesController{SeriesService: seriesService}
}

// @Summary Lista as séries
// @Tags series
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/series [get]
func (c *SeriesController) List(ctx *gin.Context) {
	series, err := c.SeriesService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, series)
}

// @Summary Cadastra uma série
// @Tags series
// @Accept json
// @Produce json
// @Param body body nameRequest true "Nome da série"
// @Success 201 {object} util.Response
// @Router /api/series [post]
func (c *SeriesController) Create(ctx *gin.Context) {
	var body nameRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	created, err := c.SeriesService.Create(body.Name)
	if err != nil {
		if errors.Is(err, util.ErrSeriesNameTaken) {
			util.Conflict(ctx, err.Error())
			return
		}
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, created)
}

// @Summary Renomeia uma série, arrastando os alunos vinculados
// @Tags series
// @Accept json
// @Produce json
// @Param name path string true "Nome atual"
// @Param body body nameRequest true "Novo nome"
// @Success 200 {object} util.Response
// @Router /api/series/{name} [put]
func (c *SeriesController) Rename(ctx *gin.Context) {
	var body nameRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	updated, err := c.SeriesService.Rename(ctx.Param("name"), body.Name)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSeriesNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrSeriesNameTaken):
			util.Conflict(ctx, err.Error())
		default:
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, updated)
}

// @Summary Remove uma série sem alunos
// @Tags series
// @Produce json
// @Param name path string true "Nome da série"
// @Success 200 {object} util.Response
// @Router /api/series/{name} [delete]
func (c *SeriesController) Delete(ctx *gin.Context) {
	if err := c.SeriesService.Delete(ctx.Param("name")); err != nil {
		switch {
		case errors.Is(err, util.ErrSeriesNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrSeriesReferenced):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}
