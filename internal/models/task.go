package models

import (
	"strings"
	"time"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

// Valid reports whether s is one of the known statuses
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// ParseTaskStatus normalizes raw input ("done", " In_Progress ") into a TaskStatus
func ParseTaskStatus(raw string) (TaskStatus, bool) {
	status := TaskStatus(strings.ToUpper(strings.TrimSpace(raw)))
	return status, status.Valid()
}

// Task is deleted with a hard delete; there is no soft-delete column.
type Task struct {
	ID            uint64     `gorm:"primarykey" json:"id"`
	Title         string     `gorm:"not null" json:"title"`
	Description   string     `gorm:"size:1000" json:"description"`
	DueDate       *time.Time `gorm:"column:due_date" json:"due_date"`
	Status        TaskStatus `gorm:"type:varchar(20);not null;default:'TODO';index" json:"status"`
	Remarks       string     `gorm:"size:500" json:"remarks"`
	CreatedOn     time.Time  `gorm:"column:created_on;not null" json:"created_on"`
	LastUpdatedOn time.Time  `gorm:"column:last_updated_on;not null" json:"last_updated_on"`
	CreatedBy     string     `gorm:"column:created_by;not null" json:"created_by"`
	LastUpdatedBy string     `gorm:"column:last_updated_by;not null" json:"last_updated_by"`
}

func (Task) TableName() string {
	return "tasks"
}
