package repository

import (
	"hiregate_backend/internal/model"

	"gorm.io/gorm"
)

type CredentialRepository struct {
	DB *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) *CredentialRepository {
	return &CredentialRepository{DB: db}
}

func (r *CredentialRepository) Create(cred *model.ExamCredential) error {
	return r.DB.Create(cred).Error
}

// FindLatest returns the most recently sent credential for the pair. Resent
// invitations invalidate earlier passwords by ordering, not deletion.
func (r *CredentialRepository) FindLatest(email, examID string) (*model.ExamCredential, error) {
	var cred model.ExamCredential
	err := r.DB.Where("applicant_email = ? AND exam_id = ?", email, examID).
		Order("sent_at desc").
		First(&cred).Error
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

func (r *CredentialRepository) FindByExam(examID string) ([]model.ExamCredential, error) {
	var creds []model.ExamCredential
	err := r.DB.Where("exam_id = ?", examID).Order("sent_at desc").Find(&creds).Error
	if err != nil {
		return nil, err
	}
	return creds, nil
}

// SentStatusByEmail maps each applicant email to the status of its latest
// credential for the exam.
func (r *CredentialRepository) SentStatusByEmail(examID string) (map[string]model.SendStatus, error) {
	creds, err := r.FindByExam(examID)
	if err != nil {
		return nil, err
	}
	statuses := make(map[string]model.SendStatus)
	for _, c := range creds {
		if _, seen := statuses[c.ApplicantEmail]; !seen {
			statuses[c.ApplicantEmail] = c.SentStatus
		}
	}
	return statuses, nil
}
