package model

import "time"

// Lesson is the confirmed booking produced by accepting a request. The store
// keeps at most one lesson per slot, which is what prevents double-booking.
type Lesson struct {
	ID          int64     `json:"id"`
	SlotID      int64     `json:"slot_id"`
	TeacherID   int64     `json:"teacher_id"`
	StudentID   int64     `json:"student_id"`
	ConfirmedAt time.Time `json:"confirmed_at"`

	Slot    *Slot `json:"slot,omitempty"`
	Teacher *User `json:"teacher,omitempty"`
	Student *User `json:"student,omitempty"`
}
