package repository

import (
	"time"

	"hiregate_backend/internal/model"

	"gorm.io/gorm"
)

type TerminationRepository struct {
	DB *gorm.DB
}

func NewTerminationRepository(db *gorm.DB) *TerminationRepository {
	return &TerminationRepository{DB: db}
}

func (r *TerminationRepository) Create(t *model.Termination) error {
	return r.DB.Create(t).Error
}

func (r *TerminationRepository) FindByID(id string) (*model.Termination, error) {
	var t model.Termination
	err := r.DB.Where("id = ?", id).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// HasBlocked reports whether any blocking entry exists for the pair.
func (r *TerminationRepository) HasBlocked(email, examID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Termination{}).
		Where("applicant_email = ? AND exam_id = ? AND blocked = ?", email, examID, true).
		Count(&count).Error
	return count > 0, err
}

func (r *TerminationRepository) ListBlockedByExam(examID string) ([]model.Termination, error) {
	var terms []model.Termination
	err := r.DB.Where("exam_id = ? AND blocked = ?", examID, true).
		Order("terminated_at desc").
		Find(&terms).Error
	if err != nil {
		return nil, err
	}
	return terms, nil
}

func (r *TerminationRepository) ListByExam(examID string) ([]model.Termination, error) {
	var terms []model.Termination
	err := r.DB.Where("exam_id = ?", examID).Order("terminated_at desc").Find(&terms).Error
	if err != nil {
		return nil, err
	}
	return terms, nil
}

// Restore lifts the block on a single ledger entry.
func (r *TerminationRepository) Restore(id string) error {
	now := time.Now()
	return r.DB.Model(&model.Termination{}).Where("id = ?", id).
		Updates(map[string]interface{}{"blocked": false, "restored_at": now}).Error
}

// RestorePair lifts every block held against the pair, so a restored
// candidate is not still denied by an older entry.
func (r *TerminationRepository) RestorePair(email, examID string) error {
	now := time.Now()
	return r.DB.Model(&model.Termination{}).
		Where("applicant_email = ? AND exam_id = ? AND blocked = ?", email, examID, true).
		Updates(map[string]interface{}{"blocked": false, "restored_at": now}).Error
}
