package repository

import (
	"hiregate_backend/internal/model"

	"gorm.io/gorm"
)

type JobRepository struct {
	DB *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{DB: db}
}

func (r *JobRepository) Create(job *model.JobPosting) error {
	return r.DB.Create(job).Error
}

func (r *JobRepository) FindByID(id string) (*model.JobPosting, error) {
	var job model.JobPosting
	err := r.DB.Where("id = ?", id).First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *JobRepository) FindAll() ([]model.JobPosting, error) {
	var jobs []model.JobPosting
	err := r.DB.Order("created_at desc").Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *JobRepository) Update(job *model.JobPosting) error {
	return r.DB.Save(job).Error
}

func (r *JobRepository) Delete(id string) error {
	return r.DB.Where("id = ?", id).Delete(&model.JobPosting{}).Error
}
