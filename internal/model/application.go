package model

import "time"

type JobApplication struct {
	UUIDBase
	JobID          string    `gorm:"index;type:varchar(36);not null" json:"jobId"`
	ApplicantEmail string    `gorm:"index;size:100;not null" json:"applicantEmail"`
	ApplicantName  string    `gorm:"size:100" json:"applicantName"`
	CollegeName    string    `gorm:"size:255" json:"collegeName"`
	CGPA           string    `gorm:"size:10" json:"cgpa"`
	ResumeObject   string    `gorm:"size:255" json:"resumeObject"`
	AppliedAt      time.Time `json:"appliedAt"`
}

func (JobApplication) TableName() string {
	return "job_applications"
}
