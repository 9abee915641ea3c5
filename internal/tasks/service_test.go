package tasks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-tracker/internal/apiclient"
	"github.com/yukikurage/task-tracker/internal/dto"
	"github.com/yukikurage/task-tracker/internal/models"
)

type fakeAPI struct {
	calls int

	healthFn   func() error
	listFn     func() ([]dto.TaskDTO, error)
	getFn      func(uint64) (*dto.TaskDTO, error)
	createFn   func(dto.CreateTaskRequest) (*dto.TaskDTO, error)
	updateFn   func(uint64, dto.UpdateTaskRequest) (*dto.TaskDTO, error)
	removeFn   func(uint64) error
	completeFn func(uint64) (*dto.TaskDTO, error)
	pendingFn  func(uint64) (*dto.TaskDTO, error)
	searchFn   func(dto.SearchFilter) ([]dto.TaskDTO, error)
}

func (f *fakeAPI) Health(context.Context) error {
	f.calls++
	return f.healthFn()
}
func (f *fakeAPI) List(context.Context) ([]dto.TaskDTO, error) {
	f.calls++
	return f.listFn()
}
func (f *fakeAPI) GetByID(_ context.Context, id uint64) (*dto.TaskDTO, error) {
	f.calls++
	return f.getFn(id)
}
func (f *fakeAPI) Create(_ context.Context, req dto.CreateTaskRequest) (*dto.TaskDTO, error) {
	f.calls++
	return f.createFn(req)
}
func (f *fakeAPI) Update(_ context.Context, id uint64, req dto.UpdateTaskRequest) (*dto.TaskDTO, error) {
	f.calls++
	return f.updateFn(id, req)
}
func (f *fakeAPI) Remove(_ context.Context, id uint64) error {
	f.calls++
	return f.removeFn(id)
}
func (f *fakeAPI) Complete(_ context.Context, id uint64) (*dto.TaskDTO, error) {
	f.calls++
	return f.completeFn(id)
}
func (f *fakeAPI) SetPending(_ context.Context, id uint64) (*dto.TaskDTO, error) {
	f.calls++
	return f.pendingFn(id)
}
func (f *fakeAPI) Search(_ context.Context, filter dto.SearchFilter) ([]dto.TaskDTO, error) {
	f.calls++
	return f.searchFn(filter)
}

func notFound(path string) error {
	return &apiclient.HTTPError{Method: http.MethodGet, Path: path, Status: http.StatusNotFound, Body: []byte(`{"code":"NOT_FOUND","message":"Task not found"}`)}
}

func TestCreate_BlankTitleMakesNoCall(t *testing.T) {
	for _, title := range []string{"", "   ", "\t\n"} {
		api := &fakeAPI{}
		svc := NewService(api, Options{})

		task, err := svc.Create(context.Background(), TaskInput{Title: title, Description: "d"})
		assert.Nil(t, task)

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "title", validationErr.Field)
		assert.Equal(t, "title required", validationErr.Error())
		assert.Zero(t, api.calls)
	}
}

func TestUpdate_InvalidInputMakesNoCall(t *testing.T) {
	tests := []struct {
		name  string
		id    uint64
		title string
		field string
	}{
		{"missing id", 0, "X", "id"},
		{"empty title", 5, "", "title"},
		{"whitespace title", 5, "   ", "title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{}
			svc := NewService(api, Options{})

			_, err := svc.Update(context.Background(), tt.id, TaskInput{Title: tt.title})

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
			assert.Zero(t, api.calls)
		})
	}
}

func TestCreate_AppliesDefaults(t *testing.T) {
	var sent dto.CreateTaskRequest
	api := &fakeAPI{createFn: func(req dto.CreateTaskRequest) (*dto.TaskDTO, error) {
		sent = req
		return &dto.TaskDTO{ID: 101, Title: req.Title, Status: req.Status, CreatedBy: req.CreatedBy, LastUpdatedBy: req.LastUpdatedBy}, nil
	}}
	svc := NewService(api, Options{})

	task, err := svc.Create(context.Background(), TaskInput{Title: "Buy milk"})
	require.NoError(t, err)

	assert.Equal(t, uint64(101), task.ID)
	assert.Equal(t, "Buy milk", sent.Title)
	assert.Equal(t, models.TaskStatusTodo, sent.Status)
	assert.Equal(t, "Company Admin", sent.CreatedBy)
	assert.Equal(t, "Company Admin", sent.LastUpdatedBy)
	assert.Nil(t, sent.DueDate)
}

func TestCreate_KeepsCallerValues(t *testing.T) {
	var sent dto.CreateTaskRequest
	api := &fakeAPI{createFn: func(req dto.CreateTaskRequest) (*dto.TaskDTO, error) {
		sent = req
		return &dto.TaskDTO{ID: 1}, nil
	}}
	svc := NewService(api, Options{DefaultActor: "Ops Bot"})

	_, err := svc.Create(context.Background(), TaskInput{
		Title:     "  Ship release  ",
		Status:    "in_progress",
		DueDate:   "2024-06-01T09:30",
		CreatedBy: "Dana",
		Remarks:   "blocked on QA",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ship release", sent.Title)
	assert.Equal(t, models.TaskStatusInProgress, sent.Status)
	require.NotNil(t, sent.DueDate)
	assert.Equal(t, "2024-06-01T09:30:00", *sent.DueDate)
	assert.Equal(t, "Dana", sent.CreatedBy)
	assert.Equal(t, "Dana", sent.LastUpdatedBy)
	assert.Equal(t, "blocked on QA", sent.Remarks)
}

func TestCreate_DefaultActorOption(t *testing.T) {
	var sent dto.CreateTaskRequest
	api := &fakeAPI{createFn: func(req dto.CreateTaskRequest) (*dto.TaskDTO, error) {
		sent = req
		return &dto.TaskDTO{ID: 1}, nil
	}}

	_, err := NewService(api, Options{DefaultActor: "Ops Bot"}).Create(context.Background(), TaskInput{Title: "x"})
	require.NoError(t, err)
	assert.Equal(t, "Ops Bot", sent.CreatedBy)
	assert.Equal(t, "Ops Bot", sent.LastUpdatedBy)
}

func TestCreate_InvalidStatusMakesNoCall(t *testing.T) {
	api := &fakeAPI{}
	_, err := NewService(api, Options{}).Create(context.Background(), TaskInput{Title: "x", Status: "BLOCKED"})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "status", validationErr.Field)
	assert.Zero(t, api.calls)
}

func TestCreate_InvalidDueDateIsDropped(t *testing.T) {
	var sent dto.CreateTaskRequest
	api := &fakeAPI{createFn: func(req dto.CreateTaskRequest) (*dto.TaskDTO, error) {
		sent = req
		return &dto.TaskDTO{ID: 1}, nil
	}}

	_, err := NewService(api, Options{}).Create(context.Background(), TaskInput{Title: "x", DueDate: "someday"})
	require.NoError(t, err)
	assert.Nil(t, sent.DueDate)
}

func TestUpdate_MinimalPayloadDropsBadDueDate(t *testing.T) {
	var (
		sentID uint64
		sent   dto.UpdateTaskRequest
	)
	api := &fakeAPI{updateFn: func(id uint64, req dto.UpdateTaskRequest) (*dto.TaskDTO, error) {
		sentID, sent = id, req
		return &dto.TaskDTO{ID: id, Title: req.Title, Status: req.Status}, nil
	}}

	task, err := NewService(api, Options{}).Update(context.Background(), 5, TaskInput{Title: "X", DueDate: "not-a-date"})
	require.NoError(t, err)

	assert.Equal(t, uint64(5), sentID)
	assert.Equal(t, dto.UpdateTaskRequest{Title: "X", Status: models.TaskStatusTodo}, sent)
	assert.Equal(t, uint64(5), task.ID)
}

func TestUpdate_IncludesKnownFields(t *testing.T) {
	var sent dto.UpdateTaskRequest
	api := &fakeAPI{updateFn: func(id uint64, req dto.UpdateTaskRequest) (*dto.TaskDTO, error) {
		sent = req
		return &dto.TaskDTO{ID: id}, nil
	}}

	_, err := NewService(api, Options{}).Update(context.Background(), 9, TaskInput{
		Title:         " Plan offsite ",
		Description:   "venue + agenda",
		Status:        "DONE",
		DueDate:       "2024-09-12T14:00",
		Remarks:       "booked",
		LastUpdatedBy: "Lee",
	})
	require.NoError(t, err)

	assert.Equal(t, dto.UpdateTaskRequest{
		Title:         "Plan offsite",
		Status:        models.TaskStatusDone,
		Description:   "venue + agenda",
		Remarks:       "booked",
		LastUpdatedBy: "Lee",
		DueDate:       "2024-09-12T14:00:00",
	}, sent)
}

func TestStrictDueDates(t *testing.T) {
	api := &fakeAPI{}
	svc := NewService(api, Options{StrictDueDates: true})

	_, err := svc.Update(context.Background(), 5, TaskInput{Title: "X", DueDate: "not-a-date"})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "dueDate", validationErr.Field)

	_, err = svc.Create(context.Background(), TaskInput{Title: "X", DueDate: "31/12/2024"})
	require.ErrorAs(t, err, &validationErr)
	assert.Zero(t, api.calls)
}

func TestCreate_ErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{
			name:    "structured body",
			err:     &apiclient.HTTPError{Status: http.StatusBadRequest, Body: []byte(`{"code":"INVALID_INPUT","message":"title is required"}`)},
			message: "Failed to create task: title is required",
		},
		{
			name:    "string body",
			err:     &apiclient.HTTPError{Status: http.StatusInternalServerError, Body: []byte(`Error creating task: disk full`)},
			message: "Failed to create task: Error creating task: disk full",
		},
		{
			name:    "empty body",
			err:     &apiclient.HTTPError{Status: http.StatusBadGateway},
			message: "Failed to create task: Unknown server error",
		},
		{
			name:    "unreachable",
			err:     &apiclient.TransportUnreachableError{Method: http.MethodPost, Path: "/tasks", Err: errors.New("connection refused")},
			message: "No response received from server. Check your network connection.",
		},
		{
			name:    "setup",
			err:     &apiclient.RequestSetupError{Method: http.MethodPost, Path: "/tasks", Err: errors.New("base URL is not configured")},
			message: "Error creating task: base URL is not configured",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{createFn: func(dto.CreateTaskRequest) (*dto.TaskDTO, error) { return nil, tt.err }}

			_, err := NewService(api, Options{}).Create(context.Background(), TaskInput{Title: "x"})
			require.Error(t, err)
			assert.Equal(t, tt.message, err.Error())
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestUpdate_ErrorMessage(t *testing.T) {
	api := &fakeAPI{updateFn: func(uint64, dto.UpdateTaskRequest) (*dto.TaskDTO, error) {
		return nil, &apiclient.HTTPError{Status: http.StatusNotFound, Body: []byte(`{"message":"Task not found with id: 5"}`)}
	}}

	_, err := NewService(api, Options{}).Update(context.Background(), 5, TaskInput{Title: "X"})
	require.Error(t, err)
	assert.Equal(t, "Failed to update task: Task not found with id: 5", err.Error())
	assert.ErrorIs(t, err, apiclient.ErrNotFound)
}

func TestGetByID_NotFound(t *testing.T) {
	api := &fakeAPI{getFn: func(id uint64) (*dto.TaskDTO, error) { return nil, notFound(fmt.Sprintf("/tasks/%d", id)) }}

	_, err := NewService(api, Options{}).GetByID(context.Background(), 999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to get task 999")

	var httpErr *apiclient.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.ErrorIs(t, err, apiclient.ErrNotFound)
}

func TestDelegatingOperations(t *testing.T) {
	boom := &apiclient.TransportUnreachableError{Method: http.MethodGet, Path: "/tasks", Err: errors.New("connection refused")}
	api := &fakeAPI{
		healthFn:   func() error { return boom },
		listFn:     func() ([]dto.TaskDTO, error) { return nil, boom },
		removeFn:   func(uint64) error { return boom },
		completeFn: func(uint64) (*dto.TaskDTO, error) { return nil, boom },
		pendingFn:  func(uint64) (*dto.TaskDTO, error) { return nil, boom },
		searchFn:   func(dto.SearchFilter) ([]dto.TaskDTO, error) { return nil, boom },
	}
	svc := NewService(api, Options{})
	ctx := context.Background()

	err := svc.Health(ctx)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "Health check failed")

	_, err = svc.ListAll(ctx)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "Failed to get tasks")

	ok, err := svc.Delete(ctx, 3)
	assert.False(t, ok)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "Failed to delete task 3")

	_, err = svc.MarkCompleted(ctx, 3)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "Failed to mark task 3 as completed")

	_, err = svc.MarkPending(ctx, 3)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "Failed to mark task 3 as pending")

	_, err = svc.Search(ctx, dto.SearchFilter{})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "Failed to search tasks")
}

func TestDelete_Success(t *testing.T) {
	var removed uint64
	api := &fakeAPI{removeFn: func(id uint64) error { removed = id; return nil }}

	ok, err := NewService(api, Options{}).Delete(context.Background(), 44)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(44), removed)
}

func TestStatusTransitions(t *testing.T) {
	api := &fakeAPI{
		completeFn: func(id uint64) (*dto.TaskDTO, error) {
			return &dto.TaskDTO{ID: id, Status: models.TaskStatusDone}, nil
		},
		pendingFn: func(id uint64) (*dto.TaskDTO, error) {
			return &dto.TaskDTO{ID: id, Status: models.TaskStatusTodo}, nil
		},
	}
	svc := NewService(api, Options{})

	done, err := svc.MarkCompleted(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusDone, done.Status)

	reopened, err := svc.MarkPending(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusTodo, reopened.Status)

	_, err = svc.MarkCompleted(context.Background(), 0)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 2, api.calls)
}

func TestSearch_NormalizesFilters(t *testing.T) {
	var got dto.SearchFilter
	api := &fakeAPI{searchFn: func(filter dto.SearchFilter) ([]dto.TaskDTO, error) {
		got = filter
		return nil, nil
	}}
	svc := NewService(api, Options{})

	tasks, err := svc.Search(context.Background(), dto.SearchFilter{Title: "  report ", Status: " done "})
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
	assert.Equal(t, dto.SearchFilter{Title: "report", Status: "DONE"}, got)

	_, err = svc.Search(context.Background(), dto.SearchFilter{Title: "   ", Status: ""})
	require.NoError(t, err)
	assert.Equal(t, dto.SearchFilter{}, got)
}
