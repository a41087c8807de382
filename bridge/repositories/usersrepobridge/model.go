package usersrepobridge

import "github.com/jrazmi/taskmanagement/core/repositories/usersrepo"

// Failure messages. Clients match on this text.
const (
	msgListFailed   = "Error retrieving users"
	msgSaveFailed   = "Error saving user"
	msgDeleteFailed = "Error deleting user"
	msgNotFound     = "User not found"
	msgInvalidID    = "Invalid Id"

	// Existing clients match the delete not found text, which names tasks.
	msgDeleteNotFound = "Task not found"
)

// UserInput is the body of an upsert or replace.
type UserInput struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (i UserInput) toNewUser() usersrepo.NewUser {
	return usersrepo.NewUser{
		Name:  i.Name,
		Email: i.Email,
	}
}
