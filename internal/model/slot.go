package model

import (
	"time"

	"github.com/google/uuid"
)

type Slot struct {
	ID          int64      `json:"id"`
	TypeID      int64      `json:"type_id"`
	SubjectID   int64      `json:"subject_id"`
	TeacherID   int64      `json:"teacher_id"`
	MaxStudents int        `json:"max_students"`
	Notes       string     `json:"notes"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     time.Time  `json:"end_time"`
	IsActive    bool       `json:"is_active"`
	SeriesID    *uuid.UUID `json:"series_id"` // set when the slot was created as part of a weekly series
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`

	// Populated on load for convenience, not stored columns
	Teacher *User       `json:"teacher,omitempty"`
	Subject *Subject    `json:"subject,omitempty"`
	Type    *LessonType `json:"type,omitempty"`
}
