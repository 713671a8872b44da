package model

type JobPosting struct {
	UUIDBase
	JobTitle    string `gorm:"size:255;not null" json:"jobTitle"`
	Department  string `gorm:"size:100" json:"department"`
	Location    string `gorm:"size:100" json:"location"`
	Description string `gorm:"type:text" json:"description"`
	// LastDate is the application closing date in YYYY-MM-DD form. A missing
	// or malformed value keeps the posting open.
	LastDate string `gorm:"size:10" json:"lastDate"`
}

func (JobPosting) TableName() string {
	return "job_postings"
}
