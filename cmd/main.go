// cmd/main.go

package main

import (
	"context"
	"errors"
	"net/http"
	_ "time/tzdata"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v4/pgxpool"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/crewdesk/workforce-service/internal/audit"
	"github.com/crewdesk/workforce-service/internal/config"
	"github.com/crewdesk/workforce-service/internal/controllers"
	"github.com/crewdesk/workforce-service/internal/repositories"
	"github.com/crewdesk/workforce-service/internal/routes"
	"github.com/crewdesk/workforce-service/internal/scheduling"
	"github.com/crewdesk/workforce-service/internal/services"
	"github.com/crewdesk/workforce-service/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	runMigrations(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.Connect(ctx, cfg.DBUrl)
	if err != nil {
		utils.Logger.Fatal("Failed to connect to database:", err)
	}
	defer pool.Close()

	workerRepo := repositories.NewWorkerRepository(pool)
	projectRepo := repositories.NewProjectRepository(pool)
	attendanceRepo := repositories.NewAttendanceRepository(pool)
	taskRepo := repositories.NewTaskRepository(pool)
	auditRepo := repositories.NewTaskAuditRepository(pool)

	var auditClient *audit.Client
	var auditPublisher services.AuditPublisher
	if !cfg.AuditDisabled {
		auditClient, err = audit.NewClient(cfg.RabbitMQUrl)
		if err != nil {
			utils.Logger.Fatal("Failed to connect to RabbitMQ:", err)
		}
		defer auditClient.Close()
		auditPublisher = auditClient

		consumer := audit.NewConsumer(cfg.RabbitMQUrl, auditRepo)
		go func() {
			if err := consumer.Start(ctx); err != nil {
				utils.Logger.WithError(err).Error("Task audit consumer exited")
			}
		}()
	}

	dayLocks := scheduling.NewDayLocks()

	workerService := services.NewWorkerService(workerRepo)
	projectService := services.NewProjectService(projectRepo, taskRepo)
	attendanceService := services.NewAttendanceService(attendanceRepo, workerRepo)
	availabilityService := services.NewAvailabilityService(workerRepo, attendanceRepo, taskRepo)
	taskService := services.NewTaskService(taskRepo, workerRepo, projectRepo, attendanceRepo, dayLocks, auditPublisher)
	maintenanceService := services.NewMaintenanceService(taskRepo)

	healthController := controllers.NewHealthController(pool)
	workersController := controllers.NewWorkersController(workerService)
	projectsController := controllers.NewProjectsController(projectService)
	attendanceController := controllers.NewAttendanceController(attendanceService)
	availabilityController := controllers.NewAvailabilityController(availabilityService)
	tasksController := controllers.NewTasksController(taskService)

	router := mux.NewRouter()

	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)

	// WorkersAvailable must register before WorkersByID so "available"
	// is not captured as an {id}.
	router.HandleFunc(routes.WorkersAvailable, availabilityController.ListAvailableWorkersHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.WorkersBase, workersController.CreateWorkerHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.WorkersBase, workersController.ListWorkersHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.WorkersByID, workersController.GetWorkerHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.WorkersByID, workersController.UpdateWorkerHandler).Methods(http.MethodPatch, http.MethodPut)
	router.HandleFunc(routes.WorkerAttendance, attendanceController.ListWorkerAttendanceHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.WorkerAttendance, attendanceController.DeleteAttendanceHandler).Methods(http.MethodDelete)

	router.HandleFunc(routes.ProjectsBase, projectsController.CreateProjectHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.ProjectsBase, projectsController.ListProjectsHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.ProjectsByID, projectsController.GetProjectHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.ProjectsByID, projectsController.UpdateProjectHandler).Methods(http.MethodPatch, http.MethodPut)

	router.HandleFunc(routes.AttendanceBase, attendanceController.MarkAttendanceHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.AttendanceBase, attendanceController.ListAttendanceByDateHandler).Methods(http.MethodGet)

	router.HandleFunc(routes.TasksBase, tasksController.CreateTaskHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.TasksBase, tasksController.ListTasksHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.TasksByID, tasksController.GetTaskHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.TasksByID, tasksController.UpdateTaskHandler).Methods(http.MethodPut)
	router.HandleFunc(routes.TasksCancel, tasksController.CancelTaskHandler).Methods(http.MethodPost)

	c := cron.New()
	_, cronErr := c.AddFunc("5 0 * * *", maintenanceService.RunNightly)
	if cronErr != nil {
		utils.Logger.WithError(cronErr).Fatal("Failed to schedule nightly maintenance cron")
	}
	c.Start()
	defer c.Stop()

	co := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AppUrl},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("workforce-service failed to start:", err)
	}
}

func runMigrations(cfg *config.Config) {
	m, err := migrate.New(cfg.MigrationsPath, cfg.DBUrl)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize migrations:", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		utils.Logger.Fatal("Failed to apply migrations:", err)
	}
	utils.Logger.Info("Database migrations applied")
}
