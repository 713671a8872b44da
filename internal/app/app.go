package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hiregate_backend/internal/config"
	"hiregate_backend/internal/controller"
	"hiregate_backend/internal/proctor"
	"hiregate_backend/internal/repository"
	"hiregate_backend/internal/service"
	"hiregate_backend/pkg/configwatcher"
	"hiregate_backend/pkg/database"
	"hiregate_backend/pkg/logger"
	"hiregate_backend/pkg/monitoring"
	"hiregate_backend/pkg/security"
	"hiregate_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

type repositories struct {
	user        *repository.UserRepository
	job         *repository.JobRepository
	application *repository.ApplicationRepository
	exam        *repository.ExamRepository
	credential  *repository.CredentialRepository
	result      *repository.ResultRepository
	termination *repository.TerminationRepository
}

type services struct {
	auth        *service.AuthService
	job         *service.JobService
	application *service.ApplicationService
	exam        *service.ExamService
	email       *service.EmailService
	invite      *service.InviteService
	examSession *service.ExamSessionService
	result      *service.ResultService
}

type controllers struct {
	auth        *controller.AuthController
	job         *controller.JobController
	application *controller.ApplicationController
	exam        *controller.ExamController
	invite      *controller.InviteController
	result      *controller.ResultController
	session     *controller.SessionController
	health      *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		job:         repository.NewJobRepository(db),
		application: repository.NewApplicationRepository(db),
		exam:        repository.NewExamRepository(db),
		credential:  repository.NewCredentialRepository(db),
		result:      repository.NewResultRepository(db),
		termination: repository.NewTerminationRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	storage, err := service.NewStorageProvider(&cfg.Storage)
	if err != nil {
		logger.Log.Fatal("Failed to initialize storage provider", zap.Error(err))
	}

	var sensor proctor.FaceSensor
	if cfg.Proctor.DetectorEndpoint != "" {
		sensor = proctor.NewHTTPSensor(cfg.Proctor.DetectorEndpoint, cfg.Proctor.MinConfidence)
		logger.Log.Info("Face detector configured",
			zap.String("endpoint", cfg.Proctor.DetectorEndpoint))
	} else {
		sensor = proctor.StubSensor{}
		logger.Log.Warn("No face detector endpoint configured, proctoring runs in degraded mode")
	}

	email := service.NewEmailService(&cfg.SMTP, cfg.Exam.BaseURL)
	exam := service.NewExamService(repos.exam, rdb, &cfg.Exam)

	return &services{
		auth:        service.NewAuthService(repos.user, cfg),
		job:         service.NewJobService(repos.job),
		application: service.NewApplicationService(repos.application, repos.job, repos.exam, storage),
		exam:        exam,
		email:       email,
		invite:      service.NewInviteService(repos.application, repos.credential, email),
		examSession: service.NewExamSessionService(repos.credential, repos.result, repos.termination, exam, sensor, cfg),
		result:      service.NewResultService(repos.result, repos.termination, repos.application, repos.job, email),
	}
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		job:         controller.NewJobController(s.job, s.application),
		application: controller.NewApplicationController(s.application, repos.credential),
		exam:        controller.NewExamController(s.exam),
		invite:      controller.NewInviteController(s.invite),
		result:      controller.NewResultController(s.result),
		session:     controller.NewSessionController(s.examSession, s.exam),
		health:      controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}
	router.Use(monitoring.MetricsMiddleware())
}

// watchProctorConfig feeds config file edits into the live session service
// so thresholds and the window policy change without a restart.
func (a *App) watchProctorConfig(configDir string) {
	go configwatcher.WatchConfig(configDir+"/config.yaml", func(cfg *config.Config) {
		a.services.examSession.ApplyProctorConfig(cfg.Proctor)
		logger.Log.Info("Proctoring config reloaded",
			zap.Int("maxNoFaceChecks", cfg.Proctor.MaxNoFaceChecks),
			zap.Int("maxMultiFaceChecks", cfg.Proctor.MaxMultiFaceChecks),
			zap.Int("maxNoFaceWarnings", cfg.Proctor.MaxNoFaceWarnings),
			zap.Bool("windowFailOpen", cfg.Proctor.WindowFailOpen))
	})
}

func NewApp(cfg *config.Config, configDir string) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, exam paper cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	svcs := app.initServices(repos, cfg, rdb)
	app.services = svcs
	ctrls := app.initControllers(svcs, repos, db)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("hiregate-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, ctrls, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.watchProctorConfig(configDir)

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
