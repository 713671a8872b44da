package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hiregate_backend/internal/config"
	"hiregate_backend/internal/model"
	"hiregate_backend/internal/proctor"
	"hiregate_backend/internal/repository"
	"hiregate_backend/internal/util"
	"hiregate_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ExamService struct {
	ExamRepo *repository.ExamRepository
	Redis    *redis.Client
	CacheTTL time.Duration
}

func NewExamService(examRepo *repository.ExamRepository, rdb *redis.Client, cfg *config.ExamConfig) *ExamService {
	ttl := cfg.PaperCacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ExamService{ExamRepo: examRepo, Redis: rdb, CacheTTL: ttl}
}

type CreateExamInput struct {
	JobID           string           `json:"jobId" binding:"required"`
	Title           string           `json:"title" binding:"required"`
	StartTime       *time.Time       `json:"startTime"`
	EndTime         *time.Time       `json:"endTime"`
	DurationMinutes int              `json:"durationMinutes"`
	Questions       []model.Question `json:"questions" binding:"required,min=1"`
}

func (s *ExamService) Create(in CreateExamInput) (*model.Exam, error) {
	exam := &model.Exam{
		JobID:           in.JobID,
		Title:           in.Title,
		StartTime:       in.StartTime,
		EndTime:         in.EndTime,
		DurationMinutes: in.DurationMinutes,
	}
	if err := s.ExamRepo.CreateWithQuestions(exam, in.Questions); err != nil {
		return nil, err
	}
	return exam, nil
}

func (s *ExamService) Get(id string) (*model.Exam, error) {
	exam, err := s.ExamRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrExamNotFound
	}
	return exam, err
}

func (s *ExamService) List() ([]model.Exam, error) {
	return s.ExamRepo.FindAll()
}

func (s *ExamService) ListByJob(jobID string) ([]model.Exam, error) {
	return s.ExamRepo.FindByJob(jobID)
}

func paperCacheKey(examID string) string {
	return fmt.Sprintf("exam:paper:%s", examID)
}

// GetPaper returns the full paper (answers included) through a read-through
// redis cache. Cache failures fall back to the database silently.
func (s *ExamService) GetPaper(ctx context.Context, examID string) (*model.Exam, error) {
	key := paperCacheKey(examID)
	if s.Redis != nil {
		if raw, err := s.Redis.Get(ctx, key).Result(); err == nil {
			var exam model.Exam
			if err := json.Unmarshal([]byte(raw), &exam); err == nil {
				return &exam, nil
			}
		}
	}

	exam, err := s.ExamRepo.FindByIDWithQuestions(examID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrExamNotFound
	}
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if raw, err := json.Marshal(exam); err == nil {
			if err := s.Redis.Set(ctx, key, raw, s.CacheTTL).Err(); err != nil {
				logger.Log.Warn("exam paper cache write failed",
					zap.String("examId", examID), zap.Error(err))
			}
		}
	}
	return exam, nil
}

// CandidatePaper strips correct answers from the cached paper.
func (s *ExamService) CandidatePaper(ctx context.Context, examID string) (*model.Exam, []model.CandidateQuestion, error) {
	exam, err := s.GetPaper(ctx, examID)
	if err != nil {
		return nil, nil, err
	}
	if len(exam.Questions) == 0 {
		return nil, nil, util.ErrEmptyPaper
	}

	questions := make([]model.CandidateQuestion, 0, len(exam.Questions))
	for _, q := range exam.Questions {
		questions = append(questions, q.CandidateView())
	}
	return exam, questions, nil
}

// Window exposes exam time windows to the proctor gate. Read failures other
// than not-found degrade to an empty window so the fail-open policy decides.
func (s *ExamService) Window(examID string) (proctor.Window, bool) {
	exam, err := s.ExamRepo.FindByID(examID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return proctor.Window{}, false
	}
	if err != nil {
		logger.Log.Warn("exam window lookup failed", zap.String("examId", examID), zap.Error(err))
		return proctor.Window{}, true
	}
	return proctor.Window{Start: exam.StartTime, End: exam.EndTime}, true
}
