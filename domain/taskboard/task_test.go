package taskboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "snapboard-backend/pkg/errors"
)

func TestNewTask(t *testing.T) {
	t.Run("starts incomplete", func(t *testing.T) {
		due := time.Now().Add(48 * time.Hour)
		task, err := NewTask("board-1", "  Write report  ", &due, "user-1")
		require.NoError(t, err)

		assert.Equal(t, "Write report", task.Title())
		assert.Equal(t, "board-1", task.BoardID())
		assert.Equal(t, "user-1", task.AssigneeID())
		assert.False(t, task.IsCompleted())
		assert.Nil(t, task.CompletedAt())
	})

	t.Run("requires board and title", func(t *testing.T) {
		_, err := NewTask("", "title", nil, "")
		assert.True(t, pkgerrors.IsValidation(err))

		_, err = NewTask("board-1", "   ", nil, "")
		assert.True(t, pkgerrors.IsValidation(err))
	})
}

func TestSetCompleted(t *testing.T) {
	task, err := NewTask("board-1", "title", nil, "")
	require.NoError(t, err)

	t.Run("transition to complete sets the timestamp", func(t *testing.T) {
		task.SetCompleted(true)
		require.NotNil(t, task.CompletedAt())
		assert.True(t, task.IsCompleted())
	})

	t.Run("re-completing keeps the original timestamp", func(t *testing.T) {
		first := *task.CompletedAt()
		task.SetCompleted(true)
		require.NotNil(t, task.CompletedAt())
		assert.Equal(t, first, *task.CompletedAt())
	})

	t.Run("reopening clears the timestamp", func(t *testing.T) {
		task.SetCompleted(false)
		assert.False(t, task.IsCompleted())
		assert.Nil(t, task.CompletedAt())
	})
}

func TestTaskAssignment(t *testing.T) {
	task, err := NewTask("board-1", "title", nil, "")
	require.NoError(t, err)

	assert.False(t, task.IsAssigned())

	require.NoError(t, task.Assign("user-1"))
	assert.True(t, task.IsAssigned())
	assert.Equal(t, "user-1", task.AssigneeID())

	err = task.Assign("")
	assert.True(t, pkgerrors.IsValidation(err))

	task.Unassign()
	assert.False(t, task.IsAssigned())
}

func TestTaskRename(t *testing.T) {
	task, err := NewTask("board-1", "old title", nil, "")
	require.NoError(t, err)

	require.NoError(t, task.Rename("  new title  "))
	assert.Equal(t, "new title", task.Title())

	err = task.Rename("   ")
	assert.True(t, pkgerrors.IsValidation(err))
}
