package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"exam_ai_backend/internal/config"
	"exam_ai_backend/internal/controller"
	"exam_ai_backend/internal/repository"
	"exam_ai_backend/internal/service"
	"exam_ai_backend/pkg/configwatcher"
	"exam_ai_backend/pkg/coze"
	"exam_ai_backend/pkg/database"
	"exam_ai_backend/pkg/logger"
	"exam_ai_backend/pkg/monitoring"
	"exam_ai_backend/pkg/security"
	"exam_ai_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	ConfigPath      string
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)

	// 后台任务（限流清理、生成记录、配置监听）的生命周期
	ctx  context.Context
	stop context.CancelFunc
}

type repositories struct {
	question       *repository.QuestionRepository
	homework       *repository.HomeworkRepository
	workflowRecord *repository.WorkflowRecordRepository
	interrupt      *repository.InterruptRepository
}

type services struct {
	storage    *service.StorageService
	settings   *service.WorkflowSettings
	sync       *service.SyncService
	question   *service.QuestionService
	grading    *service.GradingService
	homework   *service.HomeworkService
	generation *service.GenerationService
	design     *service.DesignService
	notifier   *service.GenerationNotifier
	recorder   *service.GenerationRecorder
}

type controllers struct {
	generation *controller.GenerationController
	question   *controller.QuestionController
	student    *controller.StudentController
	submission *controller.SubmissionController
	homework   *controller.HomeworkController
	design     *controller.DesignController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) reloadConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	return &repositories{
		question:       repository.NewQuestionRepository(db),
		homework:       repository.NewHomeworkRepository(db),
		workflowRecord: repository.NewWorkflowRecordRepository(db),
		interrupt:      repository.NewInterruptRepository(rdb, cfg.Workflow.InterruptTTL),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	client := coze.NewClient(cfg.Workflow.BaseURL, cfg.Workflow.Token, &http.Client{})
	s.settings = service.NewWorkflowSettings(cfg.Workflow)

	// 工作流配置热更新：凭据写入客户端，其余字段在下一次调用时生效
	a.RegisterConfigCallback(func(newCfg *config.Config) {
		client.UpdateCredentials(newCfg.Workflow.BaseURL, newCfg.Workflow.Token)
		s.settings.Update(newCfg.Workflow)
		logger.Log.Info("Workflow settings reloaded",
			zap.String("exam_workflow_id", newCfg.Workflow.ExamWorkflowID),
			zap.String("design_workflow_id", newCfg.Workflow.DesignWorkflowID),
			zap.Duration("timeout", newCfg.Workflow.Timeout))
	})

	s.storage = service.NewStorageService(cfg)
	s.notifier = service.NewGenerationNotifier()
	s.recorder = service.NewGenerationRecorder(s.notifier, repos.workflowRecord)

	s.sync = service.NewSyncService(repos.question, cfg.Sync.MirrorLimit)
	s.question = service.NewQuestionService(repos.question, repos.homework)
	s.grading = service.NewGradingService(repos.question)
	s.homework = service.NewHomeworkService(repos.homework)
	s.generation = service.NewGenerationService(client, s.settings, s.sync, repos.interrupt, s.storage, s.notifier)
	s.design = service.NewDesignService(client, s.settings, repos.workflowRecord)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		generation: controller.NewGenerationController(s.generation),
		question:   controller.NewQuestionController(s.question),
		student:    controller.NewStudentController(s.question),
		submission: controller.NewSubmissionController(s.grading),
		homework:   controller.NewHomeworkController(s.homework),
		design:     controller.NewDesignController(s.design),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(a.ctx, security.LimiterOptions{
		MaxRequests: cfg.RateLimit.MaxRequests,
		Window:      time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute,
		SkipPaths:   []string{"/api/health", "/metrics"},
	}))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks 启动生成记录的消费者，ctx 结束时退出
func (a *App) startBackgroundTasks(ctx context.Context, s *services) {
	go s.recorder.Run(ctx)

	if a.ConfigPath == "" {
		return
	}
	go func() {
		path := filepath.Join(a.ConfigPath, "config.yaml")
		if err := configwatcher.WatchConfig(ctx, path, a.reloadConfig); err != nil {
			logger.Log.Error("Config watcher stopped", zap.Error(err))
		}
	}()
}

func NewApp(cfg *config.Config, configPath string) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// debug 模式或显式指定时执行迁移
	if cfg.ForceMigrate || cfg.Server.Mode == "debug" {
		if err := database.Migrate(db, cfg.Database.DBName); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	ctx, stop := context.WithCancel(context.Background())
	app := &App{
		Config:     cfg,
		ConfigPath: configPath,
		DB:         db,
		ctx:        ctx,
		stop:       stop,
	}
	if cfg.MigrateOnly {
		return app
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	app.Redis = rdb

	repos := app.initRepositories(db, rdb, cfg)
	services := app.initServices(repos, cfg)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("exam-ai-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	defer a.stop()
	a.startBackgroundTasks(a.ctx, a.services)

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	// 停止后台任务
	a.stop()

	if err := tracing.Shutdown(a.tracer, 5*time.Second); err != nil {
		logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}

	logger.Log.Info("Server exiting")
}
