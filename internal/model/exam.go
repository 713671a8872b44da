package model

import "time"

type Exam struct {
	UUIDBase
	JobID           string     `gorm:"index;type:varchar(36);not null" json:"jobId"`
	Title           string     `gorm:"size:255;not null" json:"title"`
	StartTime       *time.Time `json:"startTime"`
	EndTime         *time.Time `json:"endTime"`
	DurationMinutes int        `gorm:"default:0" json:"durationMinutes"`
	Questions       []Question `gorm:"foreignKey:ExamID" json:"questions,omitempty"`
}

func (Exam) TableName() string {
	return "exams"
}

type Question struct {
	UUIDBase
	ExamID  string `gorm:"index;type:varchar(36);not null" json:"examId"`
	Subject string `gorm:"size:50" json:"subject"`
	Text    string `gorm:"type:text;not null" json:"text"`
	OptionA string `gorm:"type:text" json:"optionA"`
	OptionB string `gorm:"type:text" json:"optionB"`
	OptionC string `gorm:"type:text" json:"optionC"`
	OptionD string `gorm:"type:text" json:"optionD"`
	// CorrectAnswer is only serialized on admin paths; candidate paper views
	// use CandidateQuestion instead.
	CorrectAnswer string `gorm:"size:10" json:"correctAnswer"`
}

func (Question) TableName() string {
	return "questions"
}

// CandidateQuestion is the answer-stripped view served to test takers.
type CandidateQuestion struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	OptionA string `json:"optionA"`
	OptionB string `json:"optionB"`
	OptionC string `json:"optionC"`
	OptionD string `json:"optionD"`
}

func (q Question) CandidateView() CandidateQuestion {
	return CandidateQuestion{
		ID:      q.ID,
		Subject: q.Subject,
		Text:    q.Text,
		OptionA: q.OptionA,
		OptionB: q.OptionB,
		OptionC: q.OptionC,
		OptionD: q.OptionD,
	}
}
