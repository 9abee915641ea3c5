package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskStatus_Valid(t *testing.T) {
	assert.True(t, TaskStatusTodo.Valid())
	assert.True(t, TaskStatusInProgress.Valid())
	assert.True(t, TaskStatusDone.Valid())
	assert.False(t, TaskStatus("").Valid())
	assert.False(t, TaskStatus("done").Valid())
	assert.False(t, TaskStatus("BLOCKED").Valid())
}

func TestParseTaskStatus(t *testing.T) {
	tests := []struct {
		raw    string
		want   TaskStatus
		wantOK bool
	}{
		{"TODO", TaskStatusTodo, true},
		{" in_progress ", TaskStatusInProgress, true},
		{"done", TaskStatusDone, true},
		{"", "", false},
		{"archived", "ARCHIVED", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseTaskStatus(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
