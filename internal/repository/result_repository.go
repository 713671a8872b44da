package repository

import (
	"errors"

	"hiregate_backend/internal/model"
	"hiregate_backend/internal/util"

	"gorm.io/gorm"
)

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

// Create is a conditional insert: the composite unique index on
// (applicant_email, exam_id) turns a repeat submission into a duplicate-key
// error, surfaced as ErrAlreadySubmitted. No read-then-write window.
func (r *ResultRepository) Create(result *model.ExamResult) error {
	err := r.DB.Create(result).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return util.ErrAlreadySubmitted
	}
	return err
}

func (r *ResultRepository) Exists(email, examID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ExamResult{}).
		Where("applicant_email = ? AND exam_id = ?", email, examID).
		Count(&count).Error
	return count > 0, err
}

func (r *ResultRepository) FindByEmailAndExam(email, examID string) (*model.ExamResult, error) {
	var result model.ExamResult
	err := r.DB.Where("applicant_email = ? AND exam_id = ?", email, examID).
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListByExam returns results best-score-first, submission time as tiebreak.
func (r *ResultRepository) ListByExam(examID string) ([]model.ExamResult, error) {
	var results []model.ExamResult
	err := r.DB.Where("exam_id = ?", examID).
		Order("score_percent desc, submitted_at asc").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
