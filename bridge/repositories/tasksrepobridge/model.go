package tasksrepobridge

import "github.com/jrazmi/taskmanagement/core/repositories/tasksrepo"

// Failure messages. Clients match on this text.
const (
	msgListFailed   = "Error retrieving tasks"
	msgSaveFailed   = "Error creating task"
	msgDeleteFailed = "Error deleting task"
	msgNotFound     = "Task not found"
	msgInvalidID    = "Invalid Id"
)

// TaskInput is the body of an upsert or replace. The nested user of a task
// is read only and ignored on input. A missing or null title stays nil so
// the store rejects it.
type TaskInput struct {
	ID             int     `json:"id"`
	Title          *string `json:"title"`
	IsCompleted    bool    `json:"isCompleted"`
	AssignedUserID *int    `json:"assignedUserId"`
}

func (i TaskInput) toNewTask() tasksrepo.NewTask {
	return tasksrepo.NewTask{
		Title:          i.Title,
		IsCompleted:    i.IsCompleted,
		AssignedUserID: i.AssignedUserID,
	}
}
