// Package tasks is the task service used by UI code. It validates input and
// fills defaults before anything reaches the transport, converts due dates to
// the wire format, and rewraps transport failures with readable messages.
package tasks

import (
	"context"
	"log/slog"
	"strings"

	"github.com/yukikurage/task-tracker/internal/apiclient"
	"github.com/yukikurage/task-tracker/internal/config"
	"github.com/yukikurage/task-tracker/internal/constants"
	"github.com/yukikurage/task-tracker/internal/dates"
	"github.com/yukikurage/task-tracker/internal/dto"
	"github.com/yukikurage/task-tracker/internal/models"
)

// TaskAPI is the transport the service delegates to. *apiclient.Client implements it.
type TaskAPI interface {
	Health(ctx context.Context) error
	List(ctx context.Context) ([]dto.TaskDTO, error)
	GetByID(ctx context.Context, id uint64) (*dto.TaskDTO, error)
	Create(ctx context.Context, req dto.CreateTaskRequest) (*dto.TaskDTO, error)
	Update(ctx context.Context, id uint64, req dto.UpdateTaskRequest) (*dto.TaskDTO, error)
	Remove(ctx context.Context, id uint64) error
	Complete(ctx context.Context, id uint64) (*dto.TaskDTO, error)
	SetPending(ctx context.Context, id uint64) (*dto.TaskDTO, error)
	Search(ctx context.Context, filter dto.SearchFilter) ([]dto.TaskDTO, error)
}

var _ TaskAPI = (*apiclient.Client)(nil)

// Options tunes a Service
type Options struct {
	// DefaultActor is stamped as createdBy/lastUpdatedBy when the caller gives none.
	DefaultActor string
	// StrictDueDates rejects an unparseable due date instead of dropping it.
	StrictDueDates bool
	Logger         *slog.Logger
}

// TaskInput is what a create or edit form submits. DueDate may be in any
// format dates.Parse understands; Status may be empty.
type TaskInput struct {
	Title         string
	Description   string
	Status        string
	DueDate       string
	Remarks       string
	CreatedBy     string
	LastUpdatedBy string
}

type Service struct {
	api            TaskAPI
	defaultActor   string
	strictDueDates bool
	logger         *slog.Logger
}

// NewService creates a Service on top of api
func NewService(api TaskAPI, opts Options) *Service {
	actor := strings.TrimSpace(opts.DefaultActor)
	if actor == "" {
		actor = constants.DefaultActor
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		api:            api,
		defaultActor:   actor,
		strictDueDates: opts.StrictDueDates,
		logger:         logger.With("component", "tasks"),
	}
}

// NewFromConfig wires a Service to an apiclient.Client built from cfg
func NewFromConfig(cfg *config.Config, logger *slog.Logger) *Service {
	return NewService(apiclient.NewFromConfig(cfg, logger), Options{
		StrictDueDates: cfg.StrictDueDates,
		Logger:         logger,
	})
}

// Health checks that the backend is reachable
func (s *Service) Health(ctx context.Context) error {
	if err := s.api.Health(ctx); err != nil {
		return wrapf(err, "Health check failed")
	}
	return nil
}

// ListAll returns every task in backend order
func (s *Service) ListAll(ctx context.Context) ([]dto.TaskDTO, error) {
	tasks, err := s.api.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to get tasks", "error", err)
		return nil, wrapf(err, "Failed to get tasks")
	}
	return tasks, nil
}

func (s *Service) GetByID(ctx context.Context, id uint64) (*dto.TaskDTO, error) {
	task, err := s.api.GetByID(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to get task", "task_id", id, "error", err)
		return nil, wrapf(err, "Failed to get task %d", id)
	}
	return task, nil
}

// Create validates input, fills status and attribution defaults, and
// creates the task. The returned task carries the backend-assigned id.
func (s *Service) Create(ctx context.Context, input TaskInput) (*dto.TaskDTO, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, &ValidationError{Field: "title", Message: "title required"}
	}

	status, err := normalizeStatus(input.Status)
	if err != nil {
		return nil, err
	}

	dueDate, err := s.convertDueDate(ctx, input.DueDate)
	if err != nil {
		return nil, err
	}

	createdBy := strings.TrimSpace(input.CreatedBy)
	if createdBy == "" {
		createdBy = s.defaultActor
	}
	lastUpdatedBy := strings.TrimSpace(input.LastUpdatedBy)
	if lastUpdatedBy == "" {
		lastUpdatedBy = createdBy
	}

	req := dto.CreateTaskRequest{
		Title:         title,
		Description:   input.Description,
		Status:        status,
		Remarks:       input.Remarks,
		CreatedBy:     createdBy,
		LastUpdatedBy: lastUpdatedBy,
	}
	if dueDate != "" {
		req.DueDate = &dueDate
	}

	s.logger.DebugContext(ctx, "sending task data to API", "task", req)

	task, err := s.api.Create(ctx, req)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create task", "error", err)
		return nil, mutationError("create", err)
	}

	s.logger.InfoContext(ctx, "task created", "task_id", task.ID)
	return task, nil
}

// Update sends a minimal payload: title and status always; description,
// remarks and lastUpdatedBy only when non-empty; dueDate only when it
// converts to the wire format.
func (s *Service) Update(ctx context.Context, id uint64, input TaskInput) (*dto.TaskDTO, error) {
	if id == 0 {
		return nil, &ValidationError{Field: "id", Message: "task id required"}
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, &ValidationError{Field: "title", Message: "title required"}
	}

	status, err := normalizeStatus(input.Status)
	if err != nil {
		return nil, err
	}

	dueDate, err := s.convertDueDate(ctx, input.DueDate)
	if err != nil {
		return nil, err
	}

	req := dto.UpdateTaskRequest{
		Title:         title,
		Status:        status,
		Description:   input.Description,
		Remarks:       input.Remarks,
		LastUpdatedBy: strings.TrimSpace(input.LastUpdatedBy),
		DueDate:       dueDate,
	}

	s.logger.DebugContext(ctx, "updating task", "task_id", id, "task", req)

	task, err := s.api.Update(ctx, id, req)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to update task", "task_id", id, "error", err)
		return nil, mutationError("update", err)
	}

	return task, nil
}

// Delete removes the task and reports success; the deleted task is not returned.
func (s *Service) Delete(ctx context.Context, id uint64) (bool, error) {
	if id == 0 {
		return false, &ValidationError{Field: "id", Message: "task id required"}
	}
	if err := s.api.Remove(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete task", "task_id", id, "error", err)
		return false, wrapf(err, "Failed to delete task %d", id)
	}
	return true, nil
}

// MarkCompleted moves the task to DONE
func (s *Service) MarkCompleted(ctx context.Context, id uint64) (*dto.TaskDTO, error) {
	if id == 0 {
		return nil, &ValidationError{Field: "id", Message: "task id required"}
	}
	task, err := s.api.Complete(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to mark task as completed", "task_id", id, "error", err)
		return nil, wrapf(err, "Failed to mark task %d as completed", id)
	}
	return task, nil
}

// MarkPending reopens the task. The backend always reopens to TODO.
func (s *Service) MarkPending(ctx context.Context, id uint64) (*dto.TaskDTO, error) {
	if id == 0 {
		return nil, &ValidationError{Field: "id", Message: "task id required"}
	}
	task, err := s.api.SetPending(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to mark task as pending", "task_id", id, "error", err)
		return nil, wrapf(err, "Failed to mark task %d as pending", id)
	}
	return task, nil
}

// Search trims the filters and drops empty ones. No match is an empty slice.
func (s *Service) Search(ctx context.Context, filters dto.SearchFilter) ([]dto.TaskDTO, error) {
	filter := dto.SearchFilter{
		Title:  strings.TrimSpace(filters.Title),
		Status: strings.TrimSpace(filters.Status),
	}
	if status, ok := models.ParseTaskStatus(filter.Status); ok {
		filter.Status = string(status)
	}

	s.logger.DebugContext(ctx, "searching tasks", "title", filter.Title, "status", filter.Status)

	tasks, err := s.api.Search(ctx, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to search tasks", "error", err)
		return nil, wrapf(err, "Failed to search tasks")
	}
	if tasks == nil {
		tasks = []dto.TaskDTO{}
	}
	return tasks, nil
}

// convertDueDate returns "" for an absent date. An unparseable date is
// dropped, or rejected when strictDueDates is set.
func (s *Service) convertDueDate(ctx context.Context, raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}

	wire, ok := dates.ToWireFormat(raw)
	if ok {
		return wire, nil
	}

	if s.strictDueDates {
		return "", &ValidationError{Field: "dueDate", Message: "invalid due date: " + raw}
	}

	s.logger.WarnContext(ctx, "invalid date format, not including due date", "due_date", raw)
	return "", nil
}

func normalizeStatus(raw string) (models.TaskStatus, error) {
	if strings.TrimSpace(raw) == "" {
		return models.TaskStatusTodo, nil
	}
	status, ok := models.ParseTaskStatus(raw)
	if !ok {
		return "", &ValidationError{Field: "status", Message: "invalid status: " + raw}
	}
	return status, nil
}
