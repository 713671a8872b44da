package model

import "time"

// Termination is an append-only ledger entry. Any row with Blocked=true for
// an (email, exam) pair denies access until an admin restore flips it off.
type Termination struct {
	UUIDBase
	ApplicantEmail string     `gorm:"index:idx_term_email_exam;size:100;not null" json:"applicantEmail"`
	ExamID         string     `gorm:"index:idx_term_email_exam;type:varchar(36);not null" json:"examId"`
	Reason         string     `gorm:"size:64;not null" json:"reason"`
	ScoreAtExit    float64    `json:"scoreAtExit"`
	TerminatedAt   time.Time  `json:"terminatedAt"`
	Blocked        bool       `gorm:"default:true" json:"blocked"`
	RestoredAt     *time.Time `json:"restoredAt,omitempty"`
}

func (Termination) TableName() string {
	return "exam_terminations"
}
