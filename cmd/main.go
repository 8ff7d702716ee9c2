package main

import (
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/logbookhq/logbook/config"
	"github.com/logbookhq/logbook/internal/api/v1/handlers"
	v1 "github.com/logbookhq/logbook/internal/api/v1/routes"
	"github.com/logbookhq/logbook/internal/api/v1/services"
	"github.com/logbookhq/logbook/internal/db"
	"github.com/logbookhq/logbook/internal/db/repos"
	"github.com/logbookhq/logbook/internal/interpreter"
	"github.com/logbookhq/logbook/internal/llm"
	"github.com/logbookhq/logbook/internal/logger"
)

func main() {
	// .env is optional; the environment wins when both are present
	_ = godotenv.Load()
	logger.InitializeAndConfigure()

	ssl := config.GetEnvBool("DB_SSL", false)
	database, err := db.New(db.Options{
		Host:       config.GetEnv("DB_HOST", ""),
		Port:       config.GetEnvInt("DB_PORT", 0),
		User:       config.GetEnv("DB_USER", ""),
		Password:   config.GetEnv("DB_PASSWORD", ""),
		DBName:     config.GetEnv("DB_NAME", ""),
		SSLEnabled: &ssl,
	})
	if err != nil {
		logger.Fatalf("failed to connect to the database: %v", err)
	}

	projectRepo := repos.NewProjectRepository(database)
	taskRepo := repos.NewTaskRepository(database)
	projectSvc := services.NewProjectService(projectRepo, taskRepo)
	taskSvc := services.NewTaskService(taskRepo, projectSvc)

	completer := llm.NewClient(llm.Options{
		APIKey: config.GetEnv("OPENAI_API_KEY", ""),
		Model:  config.GetEnv("OPENAI_MODEL", llm.DefaultModel),
	})
	engine := interpreter.NewEngine(projectSvc, taskSvc, completer, nil)

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})
	app.Use(fiberlogger.New())

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	v1.Register(app, v1.Handlers{
		Projects: handlers.NewProjectHandler(projectSvc),
		Tasks:    handlers.NewTaskHandler(taskSvc, projectSvc),
		Chat:     handlers.NewChatHandler(engine),
		Reports:  handlers.NewReportHandler(projectSvc),
	})

	logger.Fatal(app.Listen(":" + config.GetEnv("PORT", "8080")))
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
