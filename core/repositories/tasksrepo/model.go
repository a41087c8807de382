package tasksrepo

import "github.com/jrazmi/taskmanagement/core/repositories/usersrepo"

// Task is a stored task. User is the assigned user resolved through
// AssignedUserID, or nil when the task is unassigned.
type Task struct {
	ID             int             `json:"id"`
	Title          string          `json:"title"`
	IsCompleted    bool            `json:"isCompleted"`
	AssignedUserID *int            `json:"assignedUserId"`
	User           *usersrepo.User `json:"user"`
}

// NewTask holds every writable field of a task. It is used both to create a
// task and to replace one in full. A nil Title is written as NULL and
// rejected by the schema.
type NewTask struct {
	Title          *string
	IsCompleted    bool
	AssignedUserID *int
}
