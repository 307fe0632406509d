package handlers

import (
	"time"

	apptaskboard "snapboard-backend/application/taskboard"
	"snapboard-backend/domain/taskboard"
	"snapboard-backend/pkg/utils"
)

// BoardSummary is the wire shape of a board in listings
type BoardSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	CreatorID   string    `json:"creatorId"`
	TaskCount   int       `json:"taskCount"`
	MemberCount int       `json:"memberCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BoardDetail is the wire shape of a full board view
type BoardDetail struct {
	BoardSummary
	CreatorEmail string     `json:"creatorEmail"`
	Tasks        []TaskView `json:"tasks"`
}

// TaskView is the wire shape of a task; due date is a plain calendar day
type TaskView struct {
	ID          string     `json:"id"`
	BoardID     string     `json:"boardId"`
	Title       string     `json:"title"`
	DueDate     string     `json:"dueDate,omitempty"`
	AssigneeID  string     `json:"assigneeId,omitempty"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// UserView is the wire shape of a user in member listings
type UserView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func toBoardSummary(board *taskboard.Board) BoardSummary {
	return BoardSummary{
		ID:          board.ID(),
		Title:       board.Title(),
		CreatorID:   board.CreatorID(),
		TaskCount:   board.TaskCount(),
		MemberCount: board.MemberCount(),
		CreatedAt:   board.CreatedAt(),
	}
}

func toBoardSummaries(boards []*taskboard.Board) []BoardSummary {
	out := make([]BoardSummary, 0, len(boards))
	for _, b := range boards {
		out = append(out, toBoardSummary(b))
	}
	return out
}

func toBoardDetail(view *apptaskboard.BoardView) BoardDetail {
	return BoardDetail{
		BoardSummary: toBoardSummary(view.Board),
		CreatorEmail: view.Creator.Email(),
		Tasks:        toTaskViews(view.Tasks),
	}
}

func toTaskView(task *taskboard.Task) TaskView {
	view := TaskView{
		ID:          task.ID(),
		BoardID:     task.BoardID(),
		Title:       task.Title(),
		AssigneeID:  task.AssigneeID(),
		Completed:   task.IsCompleted(),
		CompletedAt: task.CompletedAt(),
		CreatedAt:   task.CreatedAt(),
		UpdatedAt:   task.UpdatedAt(),
	}
	if d := task.DueDate(); d != nil {
		view.DueDate = utils.FormatDate(*d)
	}
	return view
}

func toTaskViews(tasks []*taskboard.Task) []TaskView {
	out := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskView(t))
	}
	return out
}

func toUserViews(users []*taskboard.User) []UserView {
	out := make([]UserView, 0, len(users))
	for _, u := range users {
		out = append(out, UserView{ID: u.ID(), Email: u.Email()})
	}
	return out
}
