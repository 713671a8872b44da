package service

import (
	"sort"

	"hiregate_backend/internal/model"
	"hiregate_backend/internal/repository"
	"hiregate_backend/pkg/logger"

	"go.uber.org/zap"
)

type ResultService struct {
	ResultRepo *repository.ResultRepository
	TermRepo   *repository.TerminationRepository
	AppRepo    *repository.ApplicationRepository
	JobRepo    *repository.JobRepository
	Email      *EmailService
}

func NewResultService(resultRepo *repository.ResultRepository, termRepo *repository.TerminationRepository,
	appRepo *repository.ApplicationRepository, jobRepo *repository.JobRepository, email *EmailService) *ResultService {
	return &ResultService{
		ResultRepo: resultRepo,
		TermRepo:   termRepo,
		AppRepo:    appRepo,
		JobRepo:    jobRepo,
		Email:      email,
	}
}

// RankedResult is one admin results row: score plus rank, candidate details
// and any termination held against the pair.
type RankedResult struct {
	Rank           int     `json:"rank"`
	ApplicantEmail string  `json:"applicantEmail"`
	ApplicantName  string  `json:"applicantName"`
	CollegeName    string  `json:"collegeName"`
	ScorePercent   float64 `json:"scorePercent"`
	TotalQuestions int     `json:"totalQuestions"`
	SubmittedAt    string  `json:"submittedAt"`
	Terminated     bool    `json:"terminated"`
	TerminationID  string  `json:"terminationId,omitempty"`
	Reason         string  `json:"reason,omitempty"`
}

type ListFilter struct {
	MinPercent     float64
	TopN           int
	TerminatedOnly bool
}

// ListByExam merges submitted results with the termination ledger, ranks by
// score, and applies shortlist filters.
func (s *ResultService) ListByExam(examID string, f ListFilter) ([]RankedResult, error) {
	results, err := s.ResultRepo.ListByExam(examID)
	if err != nil {
		return nil, err
	}

	terms, err := s.TermRepo.ListByExam(examID)
	if err != nil {
		logger.Log.Warn("termination list failed", zap.String("examId", examID), zap.Error(err))
		terms = nil
	}
	termByEmail := make(map[string]model.Termination, len(terms))
	for _, t := range terms {
		// Keep the newest blocking entry per candidate.
		if existing, ok := termByEmail[t.ApplicantEmail]; !ok || (!existing.Blocked && t.Blocked) {
			termByEmail[t.ApplicantEmail] = t
		}
	}

	names := s.applicantNames(results)

	rows := make([]RankedResult, 0, len(results))
	seen := make(map[string]bool, len(results))
	for _, r := range results {
		seen[r.ApplicantEmail] = true
		row := RankedResult{
			ApplicantEmail: r.ApplicantEmail,
			ApplicantName:  names[r.ApplicantEmail].name,
			CollegeName:    names[r.ApplicantEmail].college,
			ScorePercent:   r.ScorePercent,
			TotalQuestions: r.TotalQuestions,
			SubmittedAt:    r.SubmittedAt.Format("2006-01-02 15:04:05"),
		}
		if t, ok := termByEmail[r.ApplicantEmail]; ok && t.Blocked {
			row.Terminated = true
			row.TerminationID = t.ID
			row.Reason = t.Reason
		}
		rows = append(rows, row)
	}

	// Terminated candidates without a submitted result still appear, with
	// the score captured at termination.
	for _, t := range terms {
		if seen[t.ApplicantEmail] || !t.Blocked {
			continue
		}
		seen[t.ApplicantEmail] = true
		rows = append(rows, RankedResult{
			ApplicantEmail: t.ApplicantEmail,
			ApplicantName:  names[t.ApplicantEmail].name,
			CollegeName:    names[t.ApplicantEmail].college,
			ScorePercent:   t.ScoreAtExit,
			SubmittedAt:    t.TerminatedAt.Format("2006-01-02 15:04:05"),
			Terminated:     true,
			TerminationID:  t.ID,
			Reason:         t.Reason,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].ScorePercent > rows[j].ScorePercent
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}

	filtered := make([]RankedResult, 0, len(rows))
	for _, row := range rows {
		if f.TerminatedOnly && !row.Terminated {
			continue
		}
		if row.ScorePercent < f.MinPercent {
			continue
		}
		filtered = append(filtered, row)
	}
	if f.TopN > 0 && len(filtered) > f.TopN {
		filtered = filtered[:f.TopN]
	}
	return filtered, nil
}

type nameInfo struct {
	name    string
	college string
}

func (s *ResultService) applicantNames(results []model.ExamResult) map[string]nameInfo {
	names := make(map[string]nameInfo)
	jobID := ""
	if len(results) > 0 {
		jobID = results[0].JobID
	}
	if jobID == "" {
		return names
	}
	apps, err := s.AppRepo.FindByJob(jobID)
	if err != nil {
		return names
	}
	for _, app := range apps {
		names[app.ApplicantEmail] = nameInfo{name: app.ApplicantName, college: app.CollegeName}
	}
	return names
}

// Restore lifts the block on a termination entry and notifies the candidate.
func (s *ResultService) Restore(terminationID string) (*model.Termination, error) {
	term, err := s.TermRepo.FindByID(terminationID)
	if err != nil {
		return nil, err
	}

	if err := s.TermRepo.RestorePair(term.ApplicantEmail, term.ExamID); err != nil {
		return nil, err
	}

	if err := s.Email.SendRestoration(term.ApplicantEmail, term.ExamID); err != nil {
		logger.Log.Error("restoration email failed",
			zap.String("email", term.ApplicantEmail), zap.Error(err))
	}
	return s.TermRepo.FindByID(terminationID)
}

type DecisionInput struct {
	ExamID   string   `json:"examId" binding:"required"`
	Selected []string `json:"selected"`
	Rejected []string `json:"rejected"`
}

// SendDecisions emails outcome notifications to scored candidates.
func (s *ResultService) SendDecisions(in DecisionInput) (*SendReport, error) {
	jobTitle := s.jobTitleForExam(in.ExamID)

	report := &SendReport{}
	for _, email := range in.Selected {
		if err := s.Email.SendSelected(email, jobTitle); err != nil {
			logger.Log.Error("decision email failed", zap.String("email", email), zap.Error(err))
			report.Failed++
		} else {
			report.Sent++
		}
	}
	for _, email := range in.Rejected {
		if err := s.Email.SendRejected(email, jobTitle); err != nil {
			logger.Log.Error("decision email failed", zap.String("email", email), zap.Error(err))
			report.Failed++
		} else {
			report.Sent++
		}
	}
	return report, nil
}

func (s *ResultService) jobTitleForExam(examID string) string {
	results, err := s.ResultRepo.ListByExam(examID)
	if err != nil || len(results) == 0 {
		return "the role"
	}
	job, err := s.JobRepo.FindByID(results[0].JobID)
	if err != nil {
		return "the role"
	}
	return job.JobTitle
}
