package model

import "time"

// Rating bounds for reviews
const (
	RatingMin = 1
	RatingMax = 5
)

type Review struct {
	ID        int64     `json:"id"`
	LessonID  int64     `json:"lesson_id"`
	StudentID int64     `json:"student_id"`
	TeacherID int64     `json:"teacher_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
