package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/controller"
	"exam_prep_backend/internal/middleware"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/service"
	"exam_prep_backend/pkg/database"
	"exam_prep_backend/pkg/logger"
	"exam_prep_backend/pkg/monitoring"
	"exam_prep_backend/pkg/security"
	"exam_prep_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	question     *repository.QuestionRepository
	wrong        *repository.WrongQuestionRepository
	answer       *repository.UserAnswerRepository
	progress     *repository.ProgressRepository
	practiceTask *repository.PracticeTaskRepository
	analysis     *repository.AnalysisRepository
	inviteCode   *repository.InviteCodeRepository
}

type services struct {
	ai         *service.AIService
	question   *service.QuestionService
	wrong      *service.WrongQuestionService
	practice   *service.PracticeService
	progress   *service.ProgressService
	analysis   *service.AnalysisService
	inviteCode *service.InviteCodeService
}

type controllers struct {
	question   *controller.QuestionController
	wrong      *controller.WrongQuestionController
	practice   *controller.PracticeController
	progress   *controller.ProgressController
	analysis   *controller.AnalysisController
	inviteCode *controller.InviteCodeController
	health     *controller.HealthController
}

// RegisterConfigCallback 配置热更新回调，配置文件变化时依次调用
func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 配置热更新入口，由 configwatcher 触发
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		question:     repository.NewQuestionRepository(db),
		wrong:        repository.NewWrongQuestionRepository(db),
		answer:       repository.NewUserAnswerRepository(db),
		progress:     repository.NewProgressRepository(db),
		practiceTask: repository.NewPracticeTaskRepository(db),
		analysis:     repository.NewAnalysisRepository(db),
		inviteCode:   repository.NewInviteCodeRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.ai = service.NewAIService(cfg.AI)
	s.question = service.NewQuestionService(repos.question)
	s.wrong = service.NewWrongQuestionService(repos.wrong)
	s.practice = service.NewPracticeService(
		repos.question,
		repos.answer,
		repos.wrong,
		repos.progress,
		repos.practiceTask,
		db,
	)
	s.progress = service.NewProgressService(repos.progress, repos.answer, repos.wrong, repos.question)
	s.analysis = service.NewAnalysisService(repos.wrong, repos.analysis, s.ai, rdb)
	s.inviteCode = service.NewInviteCodeService(repos.inviteCode)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		question:   controller.NewQuestionController(s.question),
		wrong:      controller.NewWrongQuestionController(s.wrong),
		practice:   controller.NewPracticeController(s.practice),
		progress:   controller.NewProgressController(s.progress),
		analysis:   controller.NewAnalysisController(s.analysis),
		inviteCode: controller.NewInviteCodeController(s.inviteCode),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.RequestID())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 10000
	}
	windowMinutes := cfg.RateLimit.WindowMinutes
	if windowMinutes <= 0 {
		windowMinutes = 1
	}
	router.Use(security.RateLimiter(maxRequests, time.Duration(windowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	// AI 配置热更新
	app.RegisterConfigCallback(func(newCfg *config.Config) {
		services.ai.UpdateConfig(newCfg.AI)
	})

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("exam-prep-platform", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

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

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
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
