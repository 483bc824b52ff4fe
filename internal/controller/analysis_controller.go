package controller

import (
	"bytes"
	"errors"
	"io"
	"strconv"

	"pedagogia_backend/internal/model"
	"pedagogia_backend/internal/service"
	"pedagogia_backend/internal/util"
	"pedagogia_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AnalysisController struct {
	Oracle            *service.OracleService
	Storage           *service.StorageService
	AssessmentService *service.AssessmentService
}

func NewAnalysisController(
	oracle *service.OracleService,
	storage *service.StorageService,
	assessmentService *service.AssessmentService,
) *AnalysisController {
	return &AnalysisController{
		Oracle:            oracle,
		Storage:           storage,
		AssessmentService: assessmentService,
	}
}

func readUpload(ctx *gin.Context, field string) ([]byte, string, string, error) {
	fileHeader, err := ctx.FormFile(field)
	if err != nil {
		return nil, "", "", err
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", "", err
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", "", err
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = util.MimeOctetStream
	}
	return data, fileHeader.Filename, contentType, nil
}

// @Summary Analisa o desenho de uma criança e classifica a fase
// @Tags analise
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Foto do desenho"
// @Param studentCode formData string true "Código do aluno"
// @Param age formData int false "Idade aproximada em anos"
// @Param period formData string false "Período; quando presente, a sondagem é gravada"
// @Success 200 {object} util.Response
// @Router /api/analysis/drawing [post]
func (c *AnalysisController) AnalyzeDrawing(ctx *gin.Context) {
	data, filename, contentType, err := readUpload(ctx, "image")
	if err != nil {
		util.BadRequest(ctx, "imagem ausente ou ilegível")
		return
	}
	studentCode := ctx.PostForm("studentCode")
	if studentCode == "" {
		util.BadRequest(ctx, "studentCode é obrigatório")
		return
	}
	age, _ := strconv.Atoi(ctx.DefaultPostForm("age", "5"))

	imageURL, err := c.Storage.SaveEvidence(ctx.Request.Context(), studentCode, filename, contentType, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		if errors.Is(err, util.ErrUnsupportedFileType) {
			util.BadRequest(ctx, err.Error())
			return
		}
		// Evidência é acessória; a análise segue sem ela.
		logger.Log.Warn("Evidence upload failed", zap.Error(err))
		imageURL = ""
	}

	analysis, err := c.Oracle.AnalyzeDrawing(ctx.Request.Context(), data, contentType, age)
	if err != nil {
		if errors.Is(err, util.ErrOracleExhausted) {
			util.Error(ctx, 503, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	var saved *model.AssessmentResult
	if period := ctx.PostForm("period"); period != "" {
		saved, err = c.AssessmentService.UpsertPeriodAssessment(ctx.Request.Context(), model.AssessmentResult{
			StudentID:             studentCode,
			Type:                  model.AssessmentDrawing,
			Period:                period,
			Phase:                 analysis.Phase,
			ImageURL:              imageURL,
			Confidence:            analysis.Confidence,
			Summary:               analysis.Summary,
			Reasoning:             analysis.Reasoning,
			RecommendedActivities: analysis.RecommendedActivities,
			Markers:               analysis.Markers,
		})
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
	}

	util.Success(ctx, gin.H{
		"analysis":   analysis,
		"imageUrl":   imageURL,
		"assessment": saved,
	})
}

type analyzeWritingRequest struct {
	StudentCode string                  `json:"studentCode" binding:"required"`
	Period      string                  `json:"period"`
	Samples     []service.WritingSample `json:"samples" binding:"required,min=1"`
}

// @Summary Analisa palavras escritas e classifica a fase de alfabetização
// @Tags analise
// @Accept json
// @Produce json
// @Param body body analyzeWritingRequest true "Palavras ditadas e produzidas"
// @Success 200 {object} util.Response
// @Router /api/analysis/writing [post]
func (c *AnalysisController) AnalyzeWriting(ctx *gin.Context) {
	var body analyzeWritingRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	analysis, err := c.Oracle.AnalyzeWriting(ctx.Request.Context(), body.Samples)
	if err != nil {
		if errors.Is(err, util.ErrOracleExhausted) {
			util.Error(ctx, 503, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	var saved *model.AssessmentResult
	if body.Period != "" {
		saved, err = c.AssessmentService.UpsertPeriodAssessment(ctx.Request.Context(), model.AssessmentResult{
			StudentID:  body.StudentCode,
			Type:       model.AssessmentWriting,
			Period:     body.Period,
			Phase:      analysis.Phase,
			Confidence: analysis.Confidence,
			Summary:    analysis.Summary,
			Reasoning:  analysis.Reasoning,
		})
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
	}

	util.Success(ctx, gin.H{
		"analysis":   analysis,
		"assessment": saved,
	})
}

// @Summary Transcreve a escrita manuscrita de uma foto
// @Tags analise
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Foto da escrita"
// @Success 200 {object} util.Response
// @Router /api/analysis/transcribe [post]
func (c *AnalysisController) Transcribe(ctx *gin.Context) {
	data, _, contentType, err := readUpload(ctx, "image")
	if err != nil {
		util.BadRequest(ctx, "imagem ausente ou ilegível")
		return
	}
	words, err := c.Oracle.ExtractHandwrittenText(ctx.Request.Context(), data, contentType)
	if err != nil {
		if errors.Is(err, util.ErrOracleExhausted) {
			util.Error(ctx, 503, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"words": words})
}
