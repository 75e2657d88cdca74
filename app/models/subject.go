package models

// Subject is one scored subject belonging to a student record. Rows are
// cascade-deleted with their student.
type Subject struct {
	ID          int    `json:"id"`
	StudentID   int    `json:"student_id"`
	SubjectName string `json:"subject_name"`
	Marks       int    `json:"marks"`
	MaxMarks    int    `json:"max_marks"`
	Grade       string `json:"grade"`
}
