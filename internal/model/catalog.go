package model

// LessonType describes how a lesson is held: offline, online, hybrid.
type LessonType struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SubjectCategory groups subjects: Science, Humanities and so on.
type SubjectCategory struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Subject struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CategoryID  int64  `json:"category_id"`

	Category *SubjectCategory `json:"category,omitempty"`
}
