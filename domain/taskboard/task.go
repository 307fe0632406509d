package taskboard

import (
	"strings"
	"time"

	"github.com/google/uuid"

	pkgerrors "snapboard-backend/pkg/errors"
)

// Task belongs to exactly one board. The completion timestamp is derived
// from the completed flag transition and is never set by callers directly.
type Task struct {
	id          string
	boardID     string
	title       string
	dueDate     *time.Time
	assigneeID  string
	completed   bool
	completedAt *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

// NewTask creates an incomplete task on a board. Assignee membership is
// checked by the task service, not here; the entity only requires the
// structural fields.
func NewTask(boardID, title string, dueDate *time.Time, assigneeID string) (*Task, error) {
	title = strings.TrimSpace(title)
	if boardID == "" {
		return nil, pkgerrors.NewValidationError("boardID cannot be empty")
	}
	if title == "" {
		return nil, pkgerrors.NewValidationError("task title cannot be empty")
	}

	now := time.Now()
	return &Task{
		id:         uuid.New().String(),
		boardID:    boardID,
		title:      title,
		dueDate:    dueDate,
		assigneeID: assigneeID,
		completed:  false,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructTask restores a task from repository data
func ReconstructTask(
	id, boardID, title string,
	dueDate *time.Time,
	assigneeID string,
	completed bool,
	completedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Task {
	return &Task{
		id:          id,
		boardID:     boardID,
		title:       title,
		dueDate:     dueDate,
		assigneeID:  assigneeID,
		completed:   completed,
		completedAt: completedAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (t *Task) ID() string              { return t.id }
func (t *Task) BoardID() string         { return t.boardID }
func (t *Task) Title() string           { return t.title }
func (t *Task) DueDate() *time.Time     { return t.dueDate }
func (t *Task) AssigneeID() string      { return t.assigneeID }
func (t *Task) IsCompleted() bool       { return t.completed }
func (t *Task) CompletedAt() *time.Time { return t.completedAt }
func (t *Task) CreatedAt() time.Time    { return t.createdAt }
func (t *Task) UpdatedAt() time.Time    { return t.updatedAt }

// IsAssigned reports whether the task has an assignee
func (t *Task) IsAssigned() bool {
	return t.assigneeID != ""
}

// Rename changes the task title. System-wide uniqueness is enforced by the
// task service and the repository's title claim, not here.
func (t *Task) Rename(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return pkgerrors.NewValidationError("task title cannot be empty")
	}
	t.title = title
	t.updatedAt = time.Now()
	return nil
}

// SetDueDate replaces the optional due date
func (t *Task) SetDueDate(dueDate *time.Time) {
	t.dueDate = dueDate
	t.updatedAt = time.Now()
}

// Assign sets the assignee
func (t *Task) Assign(userID string) error {
	if userID == "" {
		return pkgerrors.NewValidationError("assignee cannot be empty")
	}
	t.assigneeID = userID
	t.updatedAt = time.Now()
	return nil
}

// Unassign clears the assignee. Called directly and by the membership
// cascade when the assignee is revoked from the board.
func (t *Task) Unassign() {
	t.assigneeID = ""
	t.updatedAt = time.Now()
}

// SetCompleted applies the completed flag. The completion timestamp is
// set exactly when the flag transitions to true and cleared when the task
// returns to incomplete.
func (t *Task) SetCompleted(completed bool) {
	if completed && !t.completed {
		now := time.Now()
		t.completedAt = &now
	} else if !completed {
		t.completedAt = nil
	}
	t.completed = completed
	t.updatedAt = time.Now()
}
