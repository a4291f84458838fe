package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompletionPercent(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      int
	}{
		{"no tasks", 0, 0, 0},
		{"none completed", 0, 4, 0},
		{"all completed", 4, 4, 100},
		{"half completed", 2, 4, 50},
		{"floors down", 1, 3, 33},
		{"floors two thirds", 2, 3, 66},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompletionPercent(tt.completed, tt.total)
			require.Equal(t, tt.want, got)
			require.GreaterOrEqual(t, got, 0)
			require.LessOrEqual(t, got, 100)
		})
	}
}

func TestProjectProgress(t *testing.T) {
	project := Project{Name: "empty"}
	require.Equal(t, 0, project.Progress())

	project.Tasks = []Task{
		{Title: "a", Status: TaskStatusPending},
		{Title: "b", Status: TaskStatusCompleted},
		{Title: "c", Status: TaskStatusCompleted},
	}
	require.Equal(t, 66, project.Progress())

	project.Tasks[0].Status = TaskStatusCompleted
	require.Equal(t, 100, project.Progress())
}

func TestRoleToggle(t *testing.T) {
	require.Equal(t, RoleAdmin, RoleUser.Toggle())
	require.Equal(t, RoleUser, RoleAdmin.Toggle())
}
