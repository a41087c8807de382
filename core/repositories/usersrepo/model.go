package usersrepo

// User is a stored user profile.
type User struct {
	ID    int    `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`
}

// NewUser holds every writable field of a user. It is used both to create a
// user and to replace one in full.
type NewUser struct {
	Name  string
	Email string
}
