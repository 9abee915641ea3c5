package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/yukikurage/task-tracker/internal/dto"
)

// Health succeeds when the backend is reachable and answers 2xx.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}

// List returns every task in the order the backend sends them.
func (c *Client) List(ctx context.Context) ([]dto.TaskDTO, error) {
	var tasks []dto.TaskDTO
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetByID fetches one task. A missing task yields an HTTPError matching ErrNotFound.
func (c *Client) GetByID(ctx context.Context, id uint64) (*dto.TaskDTO, error) {
	var task dto.TaskDTO
	if err := c.do(ctx, http.MethodGet, taskPath(id), nil, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) Create(ctx context.Context, req dto.CreateTaskRequest) (*dto.TaskDTO, error) {
	var task dto.TaskDTO
	if err := c.do(ctx, http.MethodPost, "/tasks", nil, req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) Update(ctx context.Context, id uint64, req dto.UpdateTaskRequest) (*dto.TaskDTO, error) {
	var task dto.TaskDTO
	if err := c.do(ctx, http.MethodPut, taskPath(id), nil, req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) Remove(ctx context.Context, id uint64) error {
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, nil, nil)
}

// Complete marks the task DONE and returns it.
func (c *Client) Complete(ctx context.Context, id uint64) (*dto.TaskDTO, error) {
	var task dto.TaskDTO
	if err := c.do(ctx, http.MethodPut, taskPath(id)+"/complete", nil, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// SetPending reopens the task and returns it.
func (c *Client) SetPending(ctx context.Context, id uint64) (*dto.TaskDTO, error) {
	var task dto.TaskDTO
	if err := c.do(ctx, http.MethodPut, taskPath(id)+"/pending", nil, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Search queries /tasks/search. Only non-empty filters are sent; an empty
// result is not an error.
func (c *Client) Search(ctx context.Context, filter dto.SearchFilter) ([]dto.TaskDTO, error) {
	query := url.Values{}
	if title := strings.TrimSpace(filter.Title); title != "" {
		query.Set("title", title)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query.Set("status", status)
	}

	var tasks []dto.TaskDTO
	if err := c.do(ctx, http.MethodGet, "/tasks/search", query, nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []dto.TaskDTO{}
	}
	return tasks, nil
}

func taskPath(id uint64) string {
	return fmt.Sprintf("/tasks/%d", id)
}
