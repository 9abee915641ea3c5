package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker/internal/dto"
	apierrors "github.com/yukikurage/task-tracker/internal/errors"
	"github.com/yukikurage/task-tracker/internal/middleware"
	"github.com/yukikurage/task-tracker/internal/models"
	"github.com/yukikurage/task-tracker/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns every task ordered by id
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks()
	if err != nil {
		respondServiceError(c, err, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns a single task
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(taskID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch task")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a task, defaulting status and attribution
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:         req.Title,
		Description:   req.Description,
		Status:        string(req.Status),
		DueDate:       req.DueDate,
		Remarks:       req.Remarks,
		CreatedBy:     req.CreatedBy,
		LastUpdatedBy: req.LastUpdatedBy,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to create task")
		return
	}

	log.Printf("Task saved successfully with ID: %d (request %s)", task.ID, middleware.GetRequestID(c))
	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask replaces the editable fields of a task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	input := services.UpdateTaskInput{
		Title:         req.Title,
		Description:   req.Description,
		Status:        string(req.Status),
		Remarks:       req.Remarks,
		LastUpdatedBy: req.LastUpdatedBy,
	}
	if req.DueDate != "" {
		input.DueDate = &req.DueDate
	}

	task, err := h.taskService.UpdateTask(taskID, input)
	if err != nil {
		respondServiceError(c, err, "Failed to update task")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask removes a task and answers 204
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(taskID); err != nil {
		respondServiceError(c, err, "Failed to delete task")
		return
	}

	log.Printf("Task with ID %d deleted", taskID)
	c.Status(http.StatusNoContent)
}

// CompleteTask marks a task DONE
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	h.changeStatus(c, h.taskService.MarkCompleted)
}

// ReopenTask marks a task TODO
func (h *TaskHandler) ReopenTask(c *gin.Context) {
	h.changeStatus(c, h.taskService.MarkPending)
}

// SearchTasks filters by title substring and status
func (h *TaskHandler) SearchTasks(c *gin.Context) {
	var filter dto.SearchFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid search parameters", err.Error())
		return
	}

	tasks, err := h.taskService.SearchTasks(services.SearchInput{
		Title:  filter.Title,
		Status: filter.Status,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to search tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

func (h *TaskHandler) changeStatus(c *gin.Context, apply func(uint64) (*models.Task, error)) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	task, err := apply(taskID)
	if err != nil {
		respondServiceError(c, err, "Failed to update task status")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

func parseTaskID(c *gin.Context) (uint64, bool) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || taskID == 0 {
		apierrors.BadRequestWithCode(c, apierrors.ErrCodeInvalidFormat, "Invalid task ID")
		return 0, false
	}
	return taskID, true
}

// respondServiceError maps service errors onto the APIError envelope
func respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found with id: "+c.Param("id"))
	case errors.Is(err, services.ErrTitleRequired):
		apierrors.BadRequestWithCode(c, apierrors.ErrCodeMissingField, err.Error())
	case errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidDueDate):
		apierrors.BadRequestWithCode(c, apierrors.ErrCodeInvalidFormat, err.Error())
	case errors.Is(err, services.ErrDescriptionTooLong),
		errors.Is(err, services.ErrRemarksTooLong):
		apierrors.BadRequest(c, err.Error())
	default:
		log.Printf("%s: %v", fallback, err)
		apierrors.InternalError(c, fallback)
	}
}
