package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yukikurage/task-tracker/internal/constants"
	"github.com/yukikurage/task-tracker/internal/dates"
	"github.com/yukikurage/task-tracker/internal/models"
	"github.com/yukikurage/task-tracker/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrTitleRequired      = errors.New("task title cannot be null or empty")
	ErrInvalidStatus      = errors.New("status must be one of TODO, IN_PROGRESS, DONE")
	ErrInvalidDueDate     = errors.New("dueDate is not a valid date")
	ErrDescriptionTooLong = fmt.Errorf("description cannot exceed %d characters", constants.MaxDescriptionLength)
	ErrRemarksTooLong     = fmt.Errorf("remarks cannot exceed %d characters", constants.MaxRemarksLength)
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	now      func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		now:      time.Now,
	}
}

// CreateTaskInput represents input for creating a task.
// DueDate and Status are raw strings as received on the wire.
type CreateTaskInput struct {
	Title         string
	Description   string
	Status        string
	DueDate       *string
	Remarks       string
	CreatedBy     string
	LastUpdatedBy string
}

// UpdateTaskInput represents input for updating a task. Description, DueDate
// and Remarks replace the stored values, so omitting them clears the field.
type UpdateTaskInput struct {
	Title         string
	Description   string
	Status        string
	DueDate       *string
	Remarks       string
	LastUpdatedBy string
}

// SearchInput holds the optional search filters
type SearchInput struct {
	Title  string
	Status string
}

// ListTasks returns every task ordered by id
func (s *TaskService) ListTasks() ([]models.Task, error) {
	tasks, err := s.taskRepo.List(repository.TaskFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a single task
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	return s.findTask(taskID)
}

// CreateTask validates input, applies defaults and stores a new task
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if err := checkLengths(input.Description, input.Remarks); err != nil {
		return nil, err
	}

	status := models.TaskStatusTodo
	if strings.TrimSpace(input.Status) != "" {
		parsed, ok := models.ParseTaskStatus(input.Status)
		if !ok {
			return nil, ErrInvalidStatus
		}
		status = parsed
	}

	dueDate, err := parseDueDate(input.DueDate)
	if err != nil {
		return nil, err
	}

	createdBy := input.CreatedBy
	if createdBy == "" {
		createdBy = constants.DefaultActor
	}
	lastUpdatedBy := input.LastUpdatedBy
	if lastUpdatedBy == "" {
		lastUpdatedBy = createdBy
	}

	now := s.timestamp()
	task := &models.Task{
		Title:         title,
		Description:   input.Description,
		Status:        status,
		DueDate:       dueDate,
		Remarks:       input.Remarks,
		CreatedOn:     now,
		LastUpdatedOn: now,
		CreatedBy:     createdBy,
		LastUpdatedBy: lastUpdatedBy,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTask overwrites the editable fields of an existing task.
// Status is only changed when provided.
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if err := checkLengths(input.Description, input.Remarks); err != nil {
		return nil, err
	}

	var status models.TaskStatus
	if strings.TrimSpace(input.Status) != "" {
		parsed, ok := models.ParseTaskStatus(input.Status)
		if !ok {
			return nil, ErrInvalidStatus
		}
		status = parsed
	}

	dueDate, err := parseDueDate(input.DueDate)
	if err != nil {
		return nil, err
	}

	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	task.Title = title
	task.Description = input.Description
	task.DueDate = dueDate
	task.Remarks = input.Remarks
	if status != "" {
		task.Status = status
	}
	task.LastUpdatedOn = s.timestamp()
	task.LastUpdatedBy = input.LastUpdatedBy
	if task.LastUpdatedBy == "" {
		task.LastUpdatedBy = constants.UpdateActor
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask permanently removes a task
func (s *TaskService) DeleteTask(taskID uint64) error {
	if err := s.taskRepo.Delete(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// MarkCompleted sets the task status to DONE
func (s *TaskService) MarkCompleted(taskID uint64) (*models.Task, error) {
	return s.setStatus(taskID, models.TaskStatusDone)
}

// MarkPending sets the task status back to TODO, whatever it was before
func (s *TaskService) MarkPending(taskID uint64) (*models.Task, error) {
	return s.setStatus(taskID, models.TaskStatusTodo)
}

// SearchTasks filters by a case-insensitive title substring and an exact status.
// Empty filters are ignored, so an empty search lists every task. A status
// outside the enum matches nothing.
func (s *TaskService) SearchTasks(input SearchInput) ([]models.Task, error) {
	filter := repository.TaskFilter{
		Title: strings.TrimSpace(input.Title),
	}
	if strings.TrimSpace(input.Status) != "" {
		status, ok := models.ParseTaskStatus(input.Status)
		if !ok {
			return []models.Task{}, nil
		}
		filter.Status = &status
	}

	tasks, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) setStatus(taskID uint64, status models.TaskStatus) (*models.Task, error) {
	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	task.Status = status
	task.LastUpdatedOn = s.timestamp()
	task.LastUpdatedBy = constants.StatusUpdateActor

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}
	return task, nil
}

func (s *TaskService) findTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// Wire timestamps carry whole seconds only.
func (s *TaskService) timestamp() time.Time {
	return s.now().Truncate(time.Second)
}

func parseDueDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, ok := dates.Parse(*raw)
	if !ok {
		return nil, ErrInvalidDueDate
	}
	return &t, nil
}

func checkLengths(description, remarks string) error {
	if utf8.RuneCountInString(description) > constants.MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	if utf8.RuneCountInString(remarks) > constants.MaxRemarksLength {
		return ErrRemarksTooLong
	}
	return nil
}
