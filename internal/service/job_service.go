package service

import (
	"errors"
	"time"

	"hiregate_backend/internal/model"
	"hiregate_backend/internal/repository"
	"hiregate_backend/internal/util"

	"gorm.io/gorm"
)

const lastDateLayout = "2006-01-02"

type JobService struct {
	JobRepo *repository.JobRepository
}

func NewJobService(jobRepo *repository.JobRepository) *JobService {
	return &JobService{JobRepo: jobRepo}
}

func (s *JobService) Create(job *model.JobPosting) error {
	return s.JobRepo.Create(job)
}

func (s *JobService) Get(id string) (*model.JobPosting, error) {
	job, err := s.JobRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrJobNotFound
	}
	return job, err
}

func (s *JobService) Update(job *model.JobPosting) error {
	return s.JobRepo.Update(job)
}

func (s *JobService) Delete(id string) error {
	return s.JobRepo.Delete(id)
}

// IsOpen reports whether the posting still accepts applications today. A
// missing or unparseable closing date keeps the posting open.
func IsOpen(job model.JobPosting, today time.Time) bool {
	if job.LastDate == "" {
		return true
	}
	last, err := time.Parse(lastDateLayout, job.LastDate)
	if err != nil {
		return true
	}
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	return !last.Before(day)
}

// ListSplit partitions all postings into open and past by closing date.
func (s *JobService) ListSplit() (open, past []model.JobPosting, err error) {
	jobs, err := s.JobRepo.FindAll()
	if err != nil {
		return nil, nil, err
	}

	today := time.Now()
	open = make([]model.JobPosting, 0, len(jobs))
	past = make([]model.JobPosting, 0)
	for _, job := range jobs {
		if IsOpen(job, today) {
			open = append(open, job)
		} else {
			past = append(past, job)
		}
	}
	return open, past, nil
}
