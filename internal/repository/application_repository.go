package repository

import (
	"hiregate_backend/internal/model"

	"gorm.io/gorm"
)

type ApplicationRepository struct {
	DB *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{DB: db}
}

func (r *ApplicationRepository) Create(app *model.JobApplication) error {
	return r.DB.Create(app).Error
}

func (r *ApplicationRepository) FindByID(id string) (*model.JobApplication, error) {
	var app model.JobApplication
	err := r.DB.Where("id = ?", id).First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepository) FindByJob(jobID string) ([]model.JobApplication, error) {
	var apps []model.JobApplication
	err := r.DB.Where("job_id = ?", jobID).Order("applied_at asc").Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *ApplicationRepository) FindByEmail(email string) ([]model.JobApplication, error) {
	var apps []model.JobApplication
	err := r.DB.Where("applicant_email = ?", email).Order("applied_at desc").Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *ApplicationRepository) Exists(email, jobID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.JobApplication{}).
		Where("applicant_email = ? AND job_id = ?", email, jobID).
		Count(&count).Error
	return count > 0, err
}

// AppliedJobIDs returns the set of job IDs the applicant already applied to.
func (r *ApplicationRepository) AppliedJobIDs(email string) (map[string]bool, error) {
	var ids []string
	err := r.DB.Model(&model.JobApplication{}).
		Where("applicant_email = ?", email).
		Pluck("job_id", &ids).Error
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
