package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/projecta-dev/projecta-api/internal/config"
	"github.com/projecta-dev/projecta-api/internal/database"
	"github.com/projecta-dev/projecta-api/internal/handler"
	"github.com/projecta-dev/projecta-api/internal/middleware"
	"github.com/projecta-dev/projecta-api/internal/models"
	"github.com/projecta-dev/projecta-api/internal/repository"
	"github.com/projecta-dev/projecta-api/internal/router"
	"github.com/projecta-dev/projecta-api/internal/service"
	cloud "github.com/projecta-dev/projecta-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Student{},
		&models.Course{},
		&models.Group{},
		&models.Assessment{},
		&models.Question{},
		&models.QuestionOption{},
		&models.Answer{},
		&models.Score{},
		&models.Submission{},
		&models.Showcase{},
		&models.ActivityLog{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	// NATS is optional; the activity feed degrades to database-only.
	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = nats.Connect(cfg.NATSURL)
		if err != nil {
			logger.Warn().Err(err).Msg("nats unavailable, activity events will not be published")
		} else {
			defer natsConn.Close()
		}
	}

	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	assessmentRepo := repository.NewAssessmentRepository(db)
	scoreRepo := repository.NewScoreRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	showcaseRepo := repository.NewShowcaseRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	activityService := service.NewActivityService(activityRepo, natsConn, cfg.ActivitySubject, logger)
	gradingService := service.NewGradingService(assessmentRepo, scoreRepo, answerRepo, validate, activityService, logger)
	submissionService := service.NewSubmissionService(submissionRepo, assessmentRepo, validate, uploader, activityService, logger)
	assessmentService := service.NewAssessmentService(assessmentRepo, courseRepo, validate, logger)
	courseService := service.NewCourseService(courseRepo, validate, logger)
	studentService := service.NewStudentService(studentRepo, validate, logger)
	groupService := service.NewGroupService(groupRepo, courseRepo, studentRepo, validate, logger)
	showcaseService := service.NewShowcaseService(showcaseRepo, redisClient, cfg.ShowcaseCacheTTL, logger)
	dashboardService := service.NewDashboardService(assessmentRepo, redisClient, cfg.ScheduleCacheTTL, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		QuizHandler:         handler.NewQuizHandler(gradingService, logger),
		SubmissionHandler:   handler.NewSubmissionHandler(submissionService, logger),
		AssessmentHandler:   handler.NewAssessmentHandler(assessmentService, logger),
		CourseHandler:       handler.NewCourseHandler(courseService, logger),
		StudentHandler:      handler.NewStudentHandler(studentService, dashboardService, logger),
		GroupHandler:        handler.NewGroupHandler(groupService, logger),
		ShowcaseHandler:     handler.NewShowcaseHandler(showcaseService, logger),
		ActivityFeedHandler: handler.NewActivityFeedHandler(activityService, logger),
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
