package model

import "time"

// ExamResult holds one final score per (applicant, exam). The composite
// unique index makes the write a conditional insert: a second submission
// fails with a duplicate-key error instead of double-writing.
type ExamResult struct {
	BaseModel
	ApplicantEmail string    `gorm:"uniqueIndex:idx_result_email_exam;size:100;not null" json:"applicantEmail"`
	ExamID         string    `gorm:"uniqueIndex:idx_result_email_exam;type:varchar(36);not null" json:"examId"`
	JobID          string    `gorm:"index;type:varchar(36)" json:"jobId"`
	ScorePercent   float64   `json:"scorePercent"`
	TotalQuestions int       `json:"totalQuestions"`
	SubmittedAt    time.Time `json:"submittedAt"`
}

func (ExamResult) TableName() string {
	return "exam_results"
}
