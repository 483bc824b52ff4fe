package controller

import (
	"errors"
	"path/filepath"
	"strings"

	"pedagogia_backend/internal/service"
	"pedagogia_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ImportExportController struct {
	ImportService *service.ImportService
	ExportService *service.ExportService
}

func NewImportExportController(importService *service.ImportService, exportService *service.ExportService) *ImportExportController {
	return &ImportExportController{ImportService: importService, ExportService: exportService}
}

// @Summary Importa alunos e sondagens de uma planilha xlsx
// @Tags planilha
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Planilha (.xlsx)"
// @Success 200 {object} util.Response
// @Router /api/import [post]
func (c *ImportExportController) Import(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "arquivo ausente")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	allowed := false
	for _, a := range util.AllowedSpreadsheetExtensions {
		if ext == a {
			allowed = true
			break
		}
	}
	if !allowed {
		util.BadRequest(ctx, util.ErrUnsupportedFileType.Error())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.BadRequest(ctx, "arquivo ilegível")
		return
	}
	defer file.Close()

	summary, err := c.ImportService.Import(ctx.Request.Context(), file)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSpreadsheetNoSheet), errors.Is(err, util.ErrSpreadsheetNoHeader):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, summary)
}

// @Summary Exporta alunos e sondagens para planilha xlsx
// @Tags planilha
// @Produce application/octet-stream
// @Param schoolId query string false "Código da escola"
// @Param series query string false "Série"
// @Param grade query string false "Turma"
// @Success 200 {file} binary
// @Router /api/export [get]
func (c *ImportExportController) Export(ctx *gin.Context) {
	buf, filename, err := c.ExportService.Export(service.ExportFilters{
		SchoolID: ctx.Query("schoolId"),
		Series:   ctx.Query("series"),
		Grade:    ctx.Query("grade"),
	})
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", "attachment; filename="+filename)
	ctx.Data(200, util.MimeXLSX, buf.Bytes())
}
