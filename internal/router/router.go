package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/projecta-dev/projecta-api/internal/config"
	"github.com/projecta-dev/projecta-api/internal/handler"
	"github.com/projecta-dev/projecta-api/internal/middleware"
	"github.com/projecta-dev/projecta-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	QuizHandler         *handler.QuizHandler
	SubmissionHandler   *handler.SubmissionHandler
	AssessmentHandler   *handler.AssessmentHandler
	CourseHandler       *handler.CourseHandler
	StudentHandler      *handler.StudentHandler
	GroupHandler        *handler.GroupHandler
	ShowcaseHandler     *handler.ShowcaseHandler
	ActivityFeedHandler *handler.ActivityFeedHandler
	JWTMiddleware       fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	// Common v1 group for health & headers
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	// Assessments; quiz submission and result lookup live under the
	// same group so the submit route keeps its assessment id param.
	if deps.AssessmentHandler != nil {
		assessments := api.Group("/assessments", jwtMiddleware)
		deps.AssessmentHandler.Register(assessments)

		if deps.QuizHandler != nil {
			quizzes := assessments.Group("", middleware.RateLimit("quiz", 10, time.Minute))
			deps.QuizHandler.Register(quizzes)
		}
	}

	// Task submissions & manual grading
	if deps.SubmissionHandler != nil {
		submissions := api.Group("/submissions", jwtMiddleware)
		deps.SubmissionHandler.Register(submissions)
	}

	// Courses & project groups
	if deps.CourseHandler != nil {
		courses := api.Group("/courses", jwtMiddleware)
		deps.CourseHandler.Register(courses)
	}
	if deps.GroupHandler != nil {
		groups := api.Group("/groups", jwtMiddleware)
		deps.GroupHandler.Register(groups)
	}

	// Students & per-student schedule
	if deps.StudentHandler != nil {
		students := api.Group("/students", jwtMiddleware)
		deps.StudentHandler.Register(students)
	}

	// Public showcase feed stays readable without a token.
	if deps.ShowcaseHandler != nil {
		showcases := api.Group("/showcases")
		deps.ShowcaseHandler.Register(showcases)
	}

	// Activity feed is limited to teachers.
	if deps.ActivityFeedHandler != nil {
		activity := api.Group("/activity", jwtMiddleware, middleware.RequireRole("teacher", "admin"))
		deps.ActivityFeedHandler.Register(activity)
	}
}
