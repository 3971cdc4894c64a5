package app

import (
	"context"
	"course_catalog_backend/internal/config"
	"course_catalog_backend/internal/controller"
	"course_catalog_backend/internal/repository"
	"course_catalog_backend/internal/service"
	"course_catalog_backend/internal/util"
	"course_catalog_backend/pkg/configwatcher"
	"course_catalog_backend/pkg/database"
	"course_catalog_backend/pkg/logger"
	"course_catalog_backend/pkg/monitoring"
	"course_catalog_backend/pkg/security"
	"course_catalog_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const configDir = "configs"

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user          *repository.UserRepository
	course        *repository.CourseRepository
	category      *repository.CategoryRepository
	lesson        *repository.LessonRepository
	lessonContent *repository.LessonContentRepository
	rating        *repository.RatingRepository
}

type services struct {
	storage  *service.StorageService
	course   *service.CourseService
	category *service.CategoryService
	lesson   *service.LessonService
	rating   *service.RatingService
}

type controllers struct {
	course   *controller.CourseController
	category *controller.CategoryController
	lesson   *controller.LessonController
	rating   *controller.RatingController
	health   *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func newSlugGenerator(cfg *config.CatalogConfig) *util.SlugGenerator {
	g := util.NewSlugGenerator(cfg.SlugMaxLength, cfg.SlugMaxAttempts)
	g.OnCollision = monitoring.SlugCollisions.Inc
	return g
}

// initRepositories 课程生命周期钩子按顺序执行：生成 slug、清理缩略图、清除缓存
func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, storage *service.StorageService, cfg *config.Config) *repositories {
	courses := repository.NewCourseRepository(db,
		repository.NewSlugHook(newSlugGenerator(&cfg.Catalog)),
		service.NewThumbnailHook(storage),
		service.NewCourseCacheHook(rdb),
	)
	return &repositories{
		user:          repository.NewUserRepository(db),
		course:        courses,
		category:      repository.NewCategoryRepository(db, courses),
		lesson:        repository.NewLessonRepository(db),
		lessonContent: repository.NewLessonContentRepository(db),
		rating:        repository.NewRatingRepository(db),
	}
}

func (a *App) initServices(repos *repositories, storage *service.StorageService, cfg *config.Config, rdb *redis.Client) *services {
	return &services{
		storage:  storage,
		course:   service.NewCourseService(repos.course, repos.category, repos.user, repos.rating, storage, rdb, &cfg.Catalog),
		category: service.NewCategoryService(repos.category, rdb),
		lesson:   service.NewLessonService(repos.lesson, repos.lessonContent, repos.course),
		rating:   service.NewRatingService(repos.rating, repos.course, rdb),
	}
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		course:   controller.NewCourseController(s.course, &a.Config.Catalog),
		category: controller.NewCategoryController(s.category),
		lesson:   controller.NewLessonController(s.lesson),
		rating:   controller.NewRatingController(s.rating),
		health:   controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// release 模式默认不迁移，需要时通过 -migrate 参数显式开启
	if cfg.Server.Mode != gin.ReleaseMode || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
		if cfg.Catalog.SeedDefaultValues {
			if err := database.SeedDefaultValues(db); err != nil {
				logger.Log.Error("Failed to seed default categories", zap.Error(err))
			}
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}
	if cfg.MigrateOnly {
		return app
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}
	app.Redis = rdb

	storage := service.NewStorageService(cfg)
	repos := app.initRepositories(db, rdb, storage, cfg)
	services := app.initServices(repos, storage, cfg, rdb)
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		logger.SetMode(newCfg.Server.Mode)
	})

	return app
}

func (a *App) watchConfig(ctx context.Context) {
	path := filepath.Join(configDir, "config.yaml")
	err := configwatcher.WatchConfig(ctx, path, func(newCfg *config.Config) {
		for _, cb := range a.configCallbacks {
			cb(newCfg)
		}
	})
	if err != nil {
		logger.Log.Error("Config watcher stopped", zap.Error(err))
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	go a.watchConfig(watchCtx)

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
	stopWatch()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Log.Info("Server exiting")
}
