package models

// User is a stored user record. Lookup by email returns it as is, password
// included.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

// PublicUser is the projection returned by create and update. It never
// carries the password.
type PublicUser struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Public projects u to the fields safe to return to clients.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// MissingRequired reports whether any of the fields required to persist a
// user is empty.
func (u *User) MissingRequired() bool {
	return u.Email == "" || u.Username == "" || u.FirstName == "" || u.LastName == "" || u.Password == ""
}
