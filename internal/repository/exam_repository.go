package repository

import (
	"hiregate_backend/internal/model"

	"gorm.io/gorm"
)

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

// CreateWithQuestions writes the exam and its question batch in one
// transaction so a half-created paper never becomes visible.
func (r *ExamRepository) CreateWithQuestions(exam *model.Exam, questions []model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(exam).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].ExamID = exam.ID
		}
		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ExamRepository) FindByID(id string) (*model.Exam, error) {
	var exam model.Exam
	err := r.DB.Where("id = ?", id).First(&exam).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *ExamRepository) FindByIDWithQuestions(id string) (*model.Exam, error) {
	var exam model.Exam
	err := r.DB.Preload("Questions").Where("id = ?", id).First(&exam).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *ExamRepository) FindAll() ([]model.Exam, error) {
	var exams []model.Exam
	err := r.DB.Order("created_at desc").Find(&exams).Error
	if err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *ExamRepository) FindByJob(jobID string) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.DB.Where("job_id = ?", jobID).Order("created_at desc").Find(&exams).Error
	if err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *ExamRepository) CountQuestions(examID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("exam_id = ?", examID).Count(&count).Error
	return count, err
}
