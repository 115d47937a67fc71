package model

import "time"

// Well-known role codes. Roles live in a lookup table rather than a closed
// enum because new roles may be added at runtime.
const (
	RoleCodeStudent = "STD"
	RoleCodeTeacher = "TCR"

	RoleNameStudent = "Student"
	RoleNameTeacher = "Teacher"
)

type Role struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}
