package repository

import (
	"github.com/yukikurage/task-tracker/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id uint64) (*models.Task, error)

	// List retrieves tasks matching the filter, ordered by id
	List(filter TaskFilter) ([]models.Task, error)

	// Update saves every column of a task
	Update(task *models.Task) error

	// Delete removes a task permanently
	Delete(id uint64) error
}

// TaskFilter holds filtering options for listing tasks.
// Zero values mean "no filter".
type TaskFilter struct {
	// Title matches any task whose title contains it, ignoring case
	Title  string
	Status *models.TaskStatus
}
