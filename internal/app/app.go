package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	controller "learnhub/internal/controller/http"
	"learnhub/internal/entity"
	"learnhub/internal/model"
	"learnhub/internal/repo/persistent"
	"learnhub/internal/usecase"
	"learnhub/pkg/cache"
	"learnhub/pkg/config"
	"learnhub/pkg/database"
	"learnhub/pkg/jwt"
	"learnhub/pkg/logger"
	"learnhub/pkg/mailer"
	"learnhub/pkg/middleware"
	"learnhub/pkg/queue"
	"learnhub/pkg/response"
	"learnhub/pkg/s3"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "learnhub/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	s3Client    *s3.Client
	jwtService  *jwt.Service
	mailClient  *mailer.Client
	queueClient *queue.Client
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	if err := db.AutoMigrate(&model.UserModel{}, &model.CourseModel{}); err != nil {
		log.Error("Failed to run automigrations: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v (continuing without token revocation and rate limiting)", err)
		redisClient = nil
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		return nil, err
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v (emails will be sent inline)", err)
		queueClient = nil
	}

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		s3Client:    s3Client,
		jwtService:  jwt.NewService(cfg.JWTSecret),
		mailClient:  mailer.NewClient(cfg),
		queueClient: queueClient,
	}, nil
}

func (a *App) Run() error {
	// Repositories
	userRepo := persistent.NewUserRepository(a.db)
	courseRepo := persistent.NewCourseRepository(a.db)

	// Use cases
	var emailQueue usecase.EmailQueue
	if a.queueClient != nil {
		emailQueue = a.queueClient
	}
	userUseCase := usecase.NewUserUseCase(
		userRepo,
		a.jwtService,
		a.s3Client,
		a.mailClient,
		emailQueue,
		a.redisClient,
		a.log,
	)
	courseUseCase := usecase.NewCourseUseCase(courseRepo, a.log)

	// HTTP handlers
	userHandler := controller.NewUserHandler(userUseCase, a.cfg.UploadDir)
	courseHandler := controller.NewCourseHandler(courseUseCase)

	// Queued emails are rendered and delivered by this process
	if a.queueClient != nil {
		if err := a.queueClient.ConsumeEmailTasks(a.handleEmailTask); err != nil {
			a.log.Error("Failed to start email consumer: %v", err)
		}
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authRequired := middleware.AuthMiddleware(a.jwtService, a.redisClient)
	staffOnly := middleware.RequireRoles(entity.RoleAdmin, entity.RoleManager)
	loginLimit := middleware.RateLimitMiddleware(a.redisClient, 10, time.Minute)

	api := r.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("/register", loginLimit, userHandler.Register)
			users.POST("/login", loginLimit, userHandler.Login)
			users.POST("/logout", authRequired, userHandler.Logout)
			users.GET("", authRequired, staffOnly, userHandler.ListUsers)
			users.GET("/:id", authRequired, userHandler.GetUser)
			users.PATCH("/:id", authRequired, userHandler.UpdateProfile)
			users.DELETE("/:id", authRequired, staffOnly, userHandler.DeleteUser)
		}

		courses := api.Group("/courses")
		courses.Use(authRequired)
		{
			courses.GET("", courseHandler.ListCourses)
			courses.POST("", staffOnly, courseHandler.CreateCourse)
			courses.GET("/:id", courseHandler.GetCourse)
			courses.PATCH("/:id", staffOnly, courseHandler.UpdateCourse)
			courses.DELETE("/:id", staffOnly, courseHandler.DeleteCourse)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, response.Error("This route is not found"))
	})

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("LearnHub API starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) handleEmailTask(task map[string]interface{}) error {
	kind, _ := task["type"].(string)
	to, _ := task["to"].(string)
	username, _ := task["username"].(string)

	if to == "" {
		return fmt.Errorf("email task without recipient: %+v", task)
	}

	switch kind {
	case "welcome":
		return a.mailClient.SendWelcome(to, username)
	case "picture_updated":
		return a.mailClient.SendPictureUpdated(to, username)
	default:
		return fmt.Errorf("unknown email task type %q", kind)
	}
}

func (a *App) Wait() {
	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down LearnHub API...")
}

func (a *App) Shutdown() error {
	// The context is used to inform the server it has 5 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Close database connection
	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	// Close RabbitMQ connection
	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			a.log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	// Shutdown server
	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	a.log.Info("LearnHub API exited")
	return nil
}
