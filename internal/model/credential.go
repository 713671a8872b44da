package model

import "time"

type SendStatus string

const (
	SendSuccess SendStatus = "SUCCESS"
	SendFailed  SendStatus = "FAIL"
)

// ExamCredential is a one-time generated password tied to (email, examID),
// issued by email. Authentication always checks the most recently sent one.
type ExamCredential struct {
	BaseModel
	ApplicantEmail    string     `gorm:"index:idx_cred_email_exam;size:100;not null" json:"applicantEmail"`
	ExamID            string     `gorm:"index:idx_cred_email_exam;type:varchar(36);not null" json:"examId"`
	JobID             string     `gorm:"index;type:varchar(36)" json:"jobId"`
	GeneratedPassword string     `gorm:"size:64;not null" json:"-"`
	SentStatus        SendStatus `gorm:"size:10" json:"sentStatus"`
	SentAt            time.Time  `json:"sentAt"`
}

func (ExamCredential) TableName() string {
	return "exam_credentials"
}
