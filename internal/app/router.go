package app

import (
	"pedagogia_backend/docs"
	"pedagogia_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)
		api.GET("/phases", c.health.Phases)

		api.GET("/students", c.student.List)
		api.POST("/students", c.student.Create)
		api.DELETE("/students", c.student.DeleteAll)
		api.GET("/students/:code", c.student.Get)
		api.PUT("/students/:code", c.student.Update)
		api.DELETE("/students/:code", c.student.Delete)

		api.GET("/assessments", c.assessment.List)
		api.GET("/students/:code/assessments", c.assessment.ListByStudent)
		api.POST("/students/:code/assessments", c.assessment.RecordAdHoc)
		api.PUT("/students/:code/assessments", c.assessment.Upsert)
		api.DELETE("/students/:code/assessments", c.assessment.Clear)

		api.GET("/dashboard", c.dashboard.Get)
		api.GET("/reports/tabular", c.report.Tabular)
		api.GET("/reports/narrative", c.report.Narrative)
		api.POST("/students/:code/report", c.report.StudentNarrative)

		api.POST("/analysis/drawing", c.analysis.AnalyzeDrawing)
		api.POST("/analysis/writing", c.analysis.AnalyzeWriting)
		api.POST("/analysis/transcribe", c.analysis.Transcribe)

		api.POST("/import", c.importExport.Import)
		api.GET("/export", c.importExport.Export)

		api.GET("/schools", c.school.List)
		api.POST("/schools", c.school.Create)
		api.PUT("/schools/:code", c.school.Rename)
		api.DELETE("/schools/:code", c.school.Delete)

		api.GET("/grades", c.grade.List)
		api.POST("/grades", c.grade.Create)
		api.PUT("/grades/:name", c.grade.Rename)
		api.DELETE("/grades/:name", c.grade.Delete)

		api.GET("/series", c.series.List)
		api.POST("/series", c.series.Create)
		api.PUT("/series/:name", c.series.Rename)
		api.DELETE("/series/:name", c.series.Delete)
	}
}
