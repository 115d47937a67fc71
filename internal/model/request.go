package model

import "time"

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusAccepted RequestStatus = "accepted"
	RequestStatusRejected RequestStatus = "rejected"
)

// Request is a student's bid to book a slot. Status starts pending and moves
// exactly once to accepted or rejected, never back.
type Request struct {
	ID        int64         `json:"id"`
	SlotID    int64         `json:"slot_id"`
	StudentID int64         `json:"student_id"`
	Status    RequestStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt *time.Time    `json:"updated_at"`

	Slot    *Slot `json:"slot,omitempty"`
	Student *User `json:"student,omitempty"`
}

// IsPending checks if the request is still awaiting a decision
func (r *Request) IsPending() bool {
	return r.Status == RequestStatusPending
}

// IsAccepted checks if the request was accepted
func (r *Request) IsAccepted() bool {
	return r.Status == RequestStatusAccepted
}

// IsRejected checks if the request was rejected
func (r *Request) IsRejected() bool {
	return r.Status == RequestStatusRejected
}
