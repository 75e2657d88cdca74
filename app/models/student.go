package models

import "time"

// Student is one persisted marksheet record. Percentage, grade and remarks
// are derived from the subject rows at creation time and never updated.
type Student struct {
	ID               int        `json:"id"`
	Name             string     `json:"name"`
	RollNo           string     `json:"roll_no"`
	Branch           string     `json:"branch"`
	Semester         string     `json:"semester"`
	ExamType         string     `json:"exam_type"`
	TotalMarks       int        `json:"total_marks"`
	MaxMarks         int        `json:"max_marks"`
	Percentage       float64    `json:"percentage"`
	Grade            string     `json:"grade"`
	Remarks          string     `json:"remarks"`
	ClassTeacher     string     `json:"class_teacher,omitempty"`
	Principal        string     `json:"principal,omitempty"`
	IncludeSignature bool       `json:"include_signature"`
	IncludeSeal      bool       `json:"include_seal"`
	DateCreated      time.Time  `json:"date_created"`
	Subjects         []*Subject `json:"subjects,omitempty"`
}
