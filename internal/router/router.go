package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker/internal/config"
	"github.com/yukikurage/task-tracker/internal/handlers"
	"github.com/yukikurage/task-tracker/internal/middleware"
	"github.com/yukikurage/task-tracker/internal/repository"
	"github.com/yukikurage/task-tracker/internal/services"
	"gorm.io/gorm"
)

// New wires repositories, services and handlers into a gin engine serving /api
func New(cfg *config.Config, db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		gin.Recovery(),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: cfg.AllowedOrigins}),
	)

	taskService := services.NewTaskService(repository.NewTaskRepository(db))
	taskHandler := handlers.NewTaskHandler(taskService)
	healthHandler := handlers.NewHealthHandler(db)

	api := r.Group("/api")
	{
		api.GET("/health", healthHandler.Health)

		tasks := api.Group("/tasks")
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/search", taskHandler.SearchTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.PUT("/:id/complete", taskHandler.CompleteTask)
			tasks.PUT("/:id/pending", taskHandler.ReopenTask)
		}
	}

	return r
}
