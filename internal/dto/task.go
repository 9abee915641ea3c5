package dto

import (
	"github.com/yukikurage/task-tracker/internal/dates"
	"github.com/yukikurage/task-tracker/internal/models"
)

// TaskDTO is the task object exchanged with the backend.
// Timestamps use dates.WireLayout; DueDate is null when unset.
type TaskDTO struct {
	ID            uint64            `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Status        models.TaskStatus `json:"status"`
	DueDate       *string           `json:"dueDate"`
	Remarks       string            `json:"remarks"`
	CreatedBy     string            `json:"createdBy"`
	CreatedOn     string            `json:"createdOn"`
	LastUpdatedBy string            `json:"lastUpdatedBy"`
	LastUpdatedOn string            `json:"lastUpdatedOn"`
}

// CreateTaskRequest is the POST /tasks body: the full task minus the
// server-assigned id and timestamps.
type CreateTaskRequest struct {
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Status        models.TaskStatus `json:"status"`
	DueDate       *string           `json:"dueDate,omitempty"`
	Remarks       string            `json:"remarks"`
	CreatedBy     string            `json:"createdBy"`
	LastUpdatedBy string            `json:"lastUpdatedBy"`
}

// UpdateTaskRequest is the PUT /tasks/{id} body. Title and status are always
// sent; the remaining fields only when known.
type UpdateTaskRequest struct {
	Title         string            `json:"title"`
	Status        models.TaskStatus `json:"status"`
	Description   string            `json:"description,omitempty"`
	Remarks       string            `json:"remarks,omitempty"`
	LastUpdatedBy string            `json:"lastUpdatedBy,omitempty"`
	DueDate       string            `json:"dueDate,omitempty"`
}

// SearchFilter narrows GET /tasks/search. Empty fields impose no filter.
type SearchFilter struct {
	Title  string `form:"title"`
	Status string `form:"status"`
}

// HealthDTO is the GET /health body
type HealthDTO struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
	Message   string `json:"message"`
}

// Conversion functions

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:            task.ID,
		Title:         task.Title,
		Description:   task.Description,
		Status:        task.Status,
		Remarks:       task.Remarks,
		CreatedBy:     task.CreatedBy,
		CreatedOn:     dates.FormatWire(task.CreatedOn),
		LastUpdatedBy: task.LastUpdatedBy,
		LastUpdatedOn: dates.FormatWire(task.LastUpdatedOn),
	}

	if task.DueDate != nil {
		due := dates.FormatWire(*task.DueDate)
		dto.DueDate = &due
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks, never returning nil
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}
