package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pedagogia_backend/internal/config"
	"pedagogia_backend/internal/controller"
	"pedagogia_backend/internal/model"
	"pedagogia_backend/internal/repository"
	"pedagogia_backend/internal/service"
	"pedagogia_backend/pkg/configwatcher"
	"pedagogia_backend/pkg/database"
	"pedagogia_backend/pkg/logger"
	"pedagogia_backend/pkg/monitoring"
	"pedagogia_backend/pkg/security"
	"pedagogia_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	student    *repository.StudentRepository
	assessment *repository.AssessmentRepository
	school     *repository.SchoolRepository
	grade      *repository.GradeRepository
	series     *repository.SeriesRepository
}

type services struct {
	student    *service.StudentService
	assessment *service.AssessmentService
	dashboard  *service.DashboardService
	report     *service.ReportService
	importer   *service.ImportService
	exporter   *service.ExportService
	oracle     *service.OracleService
	storage    *service.StorageService
	school     *service.SchoolService
	grade      *service.GradeService
	series     *service.SeriesService
}

type controllers struct {
	student      *controller.StudentController
	assessment   *controller.AssessmentController
	dashboard    *controller.DashboardController
	report       *controller.ReportController
	analysis     *controller.AnalysisController
	importExport *controller.ImportExportController
	school       *controller.SchoolController
	grade        *controller.GradeController
	series       *controller.SeriesController
	health       *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		student:    repository.NewStudentRepository(db),
		assessment: repository.NewAssessmentRepository(db),
		school:     repository.NewSchoolRepository(db),
		grade:      repository.NewGradeRepository(db),
		series:     repository.NewSeriesRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	storage, err := service.NewStorageService(&cfg.Storage)
	if err != nil {
		return nil, err
	}

	s := &services{storage: storage}
	s.oracle = service.NewOracleService(cfg.Oracle)
	s.assessment = service.NewAssessmentService(repos.assessment, repos.student, rdb)
	s.student = service.NewStudentService(repos.student, repos.assessment, rdb)
	s.dashboard = service.NewDashboardService(repos.student, repos.assessment, rdb,
		time.Duration(cfg.Redis.DashboardTTLSeconds)*time.Second)
	s.report = service.NewReportService(repos.student, repos.assessment, s.dashboard, s.oracle)
	s.importer = service.NewImportService(repos.student, repos.school, repos.grade, repos.series)
	s.exporter = service.NewExportService(repos.student, repos.school, repos.grade, repos.series)
	s.school = service.NewSchoolService(repos.school, repos.student)
	s.grade = service.NewGradeService(repos.grade, repos.student)
	s.series = service.NewSeriesService(repos.series, repos.student)
	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		student:      controller.NewStudentController(s.student, s.assessment),
		assessment:   controller.NewAssessmentController(s.assessment),
		dashboard:    controller.NewDashboardController(s.dashboard),
		report:       controller.NewReportController(s.report),
		analysis:     controller.NewAnalysisController(s.oracle, s.storage, s.assessment),
		importExport: controller.NewImportExportController(s.importer, s.exporter),
		school:       controller.NewSchoolController(s.school),
		grade:        controller.NewGradeController(s.grade),
		series:       controller.NewSeriesController(s.series),
		health:       controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	windowMinutes := cfg.RateLimit.WindowMinutes
	if windowMinutes <= 0 {
		windowMinutes = 1
	}
	router.Use(security.RateLimiter(maxRequests, time.Duration(windowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg.Server.Mode)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	controllers := app.initControllers(services, db)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("period", func(fl validator.FieldLevel) bool {
			return model.ValidPeriod(fl.Field().String())
		})
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("pedagogia-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	// Recarga quente da janela de cache do painel e da chave do oráculo.
	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		services.dashboard.CacheTTL = time.Duration(newCfg.Redis.DashboardTTLSeconds) * time.Second
		logger.Log.Info("Runtime config applied")
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
