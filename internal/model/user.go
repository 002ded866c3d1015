package model

// RoleUser is the role stamped on every self-registered account.
const RoleUser = "user"

// User is an account record. PasswordHash is persisted but never rendered
// by the API; handlers respond with Public().
type User struct {
	ID           int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Email        string `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `json:"password" gorm:"column:password_hash;size:255;not null"`
	Role         string `json:"role" gorm:"size:50;not null;default:'user'"`
}

// PublicUser is the API view of a User.
type PublicUser struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Public strips the password hash.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Role: u.Role}
}

// PublicUsers maps Public over a list.
func PublicUsers(users []User) []PublicUser {
	out := make([]PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out
}
