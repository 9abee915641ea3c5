package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker/internal/database"
	"github.com/yukikurage/task-tracker/internal/dto"
	apierrors "github.com/yukikurage/task-tracker/internal/errors"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health reports UP while the database answers a ping
func (h *HealthHandler) Health(c *gin.Context) {
	if err := database.Ping(h.db); err != nil {
		log.Printf("Health check failed: %v", err)
		apierrors.ServiceUnavailable(c, "Database is unreachable")
		return
	}

	c.JSON(http.StatusOK, dto.HealthDTO{
		Status:    "UP",
		Timestamp: time.Now().UnixMilli(),
		Message:   "Backend service is running",
	})
}
