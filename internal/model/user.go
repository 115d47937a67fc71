package model

import "time"

type User struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Bio       string     `json:"bio"`
	RoleID    *int64     `json:"role_id"` // nil until a role is assigned
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`

	// Populated on load when the role row is joined, not a separate column
	Role *Role `json:"role,omitempty"`
}

// HasRole reports whether the user currently holds the role with the given
// code. A user without a role holds none.
func (u *User) HasRole(code string) bool {
	return u.Role != nil && u.Role.Code == code
}

// IsStudent checks if the user holds the student role
func (u *User) IsStudent() bool {
	return u.HasRole(RoleCodeStudent)
}

// IsTeacher checks if the user holds the teacher role
func (u *User) IsTeacher() bool {
	return u.HasRole(RoleCodeTeacher)
}
