package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learnify_backend/internal/config"
	"learnify_backend/internal/controller"
	"learnify_backend/internal/repository"
	"learnify_backend/internal/service"
	"learnify_backend/internal/util"
	"learnify_backend/pkg/configwatcher"
	"learnify_backend/pkg/database"
	"learnify_backend/pkg/logger"
	"learnify_backend/pkg/monitoring"
	"learnify_backend/pkg/security"
	"learnify_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
	cron     *cron.Cron
}

type repositories struct {
	user      *repository.UserRepository
	challenge *repository.ChallengeRepository
	project   *repository.ProjectRepository
	quiz      *repository.QuizRepository
	post      *repository.PostRepository
	skill     *repository.SkillRepository
}

type services struct {
	auth      *service.AuthService
	user      *service.UserService
	challenge *service.ChallengeService
	project   *service.ProjectService
	quiz      *service.QuizService
	community *service.CommunityService
	skill     *service.SkillService
	ai        *service.AIService
	storage   *service.StorageService
}

type controllers struct {
	auth      *controller.AuthController
	user      *controller.UserController
	challenge *controller.ChallengeController
	project   *controller.ProjectController
	quiz      *controller.QuizController
	community *controller.CommunityController
	skill     *controller.SkillController
	ai        *controller.AIController
	health    *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:      repository.NewUserRepository(db),
		challenge: repository.NewChallengeRepository(db),
		project:   repository.NewProjectRepository(db),
		quiz:      repository.NewQuizRepository(db),
		post:      repository.NewPostRepository(db),
		skill:     repository.NewSkillRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, rdb)
	s.challenge = service.NewChallengeService(repos.challenge, repos.user, db)
	s.project = service.NewProjectService(repos.project, repos.user, db)
	s.quiz = service.NewQuizService(repos.quiz, repos.user, db)
	s.community = service.NewCommunityService(repos.post, rdb)
	s.skill = service.NewSkillService(repos.skill)
	s.ai = service.NewAIService(cfg.AI)

	return s
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth, s.user),
		user:      controller.NewUserController(s.user, s.storage),
		challenge: controller.NewChallengeController(s.challenge, s.storage),
		project:   controller.NewProjectController(s.project),
		quiz:      controller.NewQuizController(s.quiz),
		community: controller.NewCommunityController(s.community),
		skill:     controller.NewSkillController(s.skill),
		ai:        controller.NewAIController(s.ai, repos.user),
		health:    controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startBackgroundTasks(s *services) {
	a.cron = cron.New()

	// 排行榜快照，启动后立即算一次，之后每小时刷新
	s.user.SnapshotLeaderboards(context.Background())
	if _, err := a.cron.AddFunc("@hourly", func() {
		s.user.SnapshotLeaderboards(context.Background())
	}); err != nil {
		logger.Log.Error("Failed to schedule leaderboard snapshot", zap.Error(err))
	}

	a.cron.Start()

	// 配置热更新：仅对可以运行时生效的字段做替换
	go configwatcher.WatchConfig("configs/config.yaml", a.Config, func(newCfg interface{}) {
		cfg, ok := newCfg.(*config.Config)
		if !ok {
			return
		}
		a.Config.AI = cfg.AI
		a.Config.RateLimit = cfg.RateLimit
		logger.Log.Info("Config reloaded")
	})
}

// shouldMigrate release 模式下默认不迁移，-migrate / -migrate-only 强制开启
func shouldMigrate(cfg *config.Config) bool {
	return cfg.ForceMigrate || cfg.Server.Mode != "release"
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, shouldMigrate(cfg))
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// Redis 只承载缓存和浏览量去重，连不上时降级运行
		logger.Log.Warn("Redis unavailable, running without cache", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	if cfg.MigrateOnly {
		return app
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, repos, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("learnify-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services)

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

	if a.cron != nil {
		a.cron.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
