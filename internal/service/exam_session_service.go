package service

import (
	"context"
	"math"
	"sync"
	"time"

	"hiregate_backend/internal/config"
	"hiregate_backend/internal/model"
	"hiregate_backend/internal/proctor"
	"hiregate_backend/internal/repository"
	"hiregate_backend/internal/util"
	"hiregate_backend/pkg/logger"
	"hiregate_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// ExamSessionService drives the candidate flow: one-time credential login,
// gated stage progression, face polling, violation handling and submission.
type ExamSessionService struct {
	CredRepo   *repository.CredentialRepository
	ResultRepo *repository.ResultRepository
	TermRepo   *repository.TerminationRepository
	Exams      *ExamService
	Sensor     proctor.FaceSensor
	Sessions   *proctor.Store
	Cfg        *config.Config

	mu         sync.RWMutex
	thresholds proctor.Thresholds
	gate       *proctor.Gate
}

func NewExamSessionService(credRepo *repository.CredentialRepository, resultRepo *repository.ResultRepository,
	termRepo *repository.TerminationRepository, exams *ExamService,
	sensor proctor.FaceSensor, cfg *config.Config) *ExamSessionService {

	s := &ExamSessionService{
		CredRepo:   credRepo,
		ResultRepo: resultRepo,
		TermRepo:   termRepo,
		Exams:      exams,
		Sensor:     sensor,
		Sessions:   proctor.NewStore(),
		Cfg:        cfg,
	}
	s.gate = &proctor.Gate{
		Ledger:         ledgerAdapter{termRepo},
		Results:        resultAdapter{resultRepo},
		Windows:        exams,
		WindowFailOpen: cfg.Proctor.WindowFailOpen,
	}
	s.thresholds = proctor.Thresholds{
		MaxNoFaceChecks:    cfg.Proctor.MaxNoFaceChecks,
		MaxMultiFaceChecks: cfg.Proctor.MaxMultiFaceChecks,
		MaxNoFaceWarnings:  cfg.Proctor.MaxNoFaceWarnings,
	}
	return s
}

// ApplyProctorConfig swaps thresholds and window policy at runtime, fed by
// the config watcher.
func (s *ExamSessionService) ApplyProctorConfig(p config.ProctorConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.thresholds = proctor.Thresholds{
		MaxNoFaceChecks:    p.MaxNoFaceChecks,
		MaxMultiFaceChecks: p.MaxMultiFaceChecks,
		MaxNoFaceWarnings:  p.MaxNoFaceWarnings,
	}
	s.gate.WindowFailOpen = p.WindowFailOpen
}

func (s *ExamSessionService) currentThresholds() proctor.Thresholds {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.thresholds
}

// ledgerAdapter degrades lookup failures to "not blocked" so a database
// blip does not lock a live candidate out mid-flow.
type ledgerAdapter struct {
	repo *repository.TerminationRepository
}

func (a ledgerAdapter) Blocked(email, examID string) bool {
	blocked, err := a.repo.HasBlocked(email, examID)
	if err != nil {
		logger.Log.Warn("termination ledger lookup failed",
			zap.String("email", email), zap.String("examId", examID), zap.Error(err))
		return false
	}
	return blocked
}

type resultAdapter struct {
	repo *repository.ResultRepository
}

func (a resultAdapter) Exists(email, examID string) bool {
	exists, err := a.repo.Exists(email, examID)
	if err != nil {
		logger.Log.Warn("result lookup failed",
			zap.String("email", email), zap.String("examId", examID), zap.Error(err))
		return false
	}
	return exists
}

// Authenticate checks the blocked ledger before credentials: a terminated
// candidate gets the permanent denial message even with a wrong password.
func (s *ExamSessionService) Authenticate(email, password, examID string) (string, error) {
	if s.gate.Ledger.Blocked(email, examID) {
		return "", util.ErrAccessBlocked
	}

	cred, err := s.CredRepo.FindLatest(email, examID)
	if err != nil || cred.GeneratedPassword != password {
		return "", util.ErrInvalidCredentials
	}

	s.Sessions.Create(email, examID)
	return util.GenerateCandidateJWT(email, examID, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

// Guard runs the full entry gate and, on success, advances the session to
// the requested stage.
func (s *ExamSessionService) Guard(email, examID string, stage proctor.Stage) proctor.GateDecision {
	sess, ok := s.Sessions.Snapshot(email, examID)
	s.mu.RLock()
	d := s.gate.Check(sess, ok, examID)
	s.mu.RUnlock()
	if !d.Allow {
		if d.Reason == proctor.DenyBlocked || d.Reason == proctor.DenyAlreadySubmitted {
			s.Sessions.Remove(email, examID)
		}
		return d
	}
	s.Sessions.Advance(email, examID, stage)
	return d
}

// PollResult is the wire response for one face check.
type PollResult struct {
	FaceDetected  bool   `json:"faceDetected"`
	MultipleFaces bool   `json:"multipleFaces"`
	Message       string `json:"message"`
	Terminate     bool   `json:"terminate"`
	NoFaceCount   int    `json:"noFaceCount"`
	WarningCount  int    `json:"warningCount"`
}

// PollFace processes one captured frame. Pre-check probes report detection
// without touching counters; degraded (no-sensor) mode resets counters each
// tick and always passes.
func (s *ExamSessionService) PollFace(ctx context.Context, email, examID string, image []byte, isPreCheck bool, currentScore float64) (*PollResult, error) {
	if _, ok := s.Sessions.Snapshot(email, examID); !ok {
		return nil, util.ErrSessionExpired
	}

	if !s.Sensor.Available() {
		s.Sessions.ResetCounters(email, examID)
		monitoring.FaceChecks.WithLabelValues("degraded").Inc()
		return &PollResult{FaceDetected: true, Message: "Face Detected"}, nil
	}

	faces, err := s.Sensor.CountFaces(ctx, image)
	if err != nil {
		// An unreachable detector counts as zero faces, same as an
		// undecodable frame.
		logger.Log.Warn("face detector call failed", zap.Error(err))
		faces = 0
	}

	if isPreCheck {
		monitoring.FaceChecks.WithLabelValues(outcomeLabel(faces)).Inc()
		return &PollResult{
			FaceDetected:  faces == 1,
			MultipleFaces: faces > 1,
			Message:       precheckMessage(faces),
		}, nil
	}

	d, firstTermination, found := s.Sessions.Tick(email, examID, faces, s.currentThresholds())
	if !found {
		return nil, util.ErrSessionExpired
	}
	monitoring.FaceChecks.WithLabelValues(outcomeLabel(faces)).Inc()

	sess, _ := s.Sessions.Snapshot(email, examID)
	res := &PollResult{
		FaceDetected:  d.FaceDetected,
		MultipleFaces: d.MultipleFaces,
		Message:       d.Message,
		Terminate:     d.Terminate,
		NoFaceCount:   sess.ConsecutiveNoFace,
		WarningCount:  sess.NoFaceWarnings,
	}

	if firstTermination {
		s.recordTermination(email, examID, d.Reason, currentScore)
		s.Sessions.Remove(email, examID)
	}
	return res, nil
}

func outcomeLabel(faces int) string {
	switch {
	case faces == 1:
		return "face"
	case faces > 1:
		return "multiple_faces"
	default:
		return "no_face"
	}
}

func precheckMessage(faces int) string {
	switch {
	case faces == 1:
		return "Face Detected"
	case faces > 1:
		return "Multiple faces detected. Please be alone for the exam."
	default:
		return "No face detected. Adjust your camera and lighting."
	}
}

// ReportViolation terminates immediately on a client-reported breach
// (tab switch, fullscreen exit, devtools).
func (s *ExamSessionService) ReportViolation(email, examID, violationType string, currentScore float64) error {
	if _, ok := s.Sessions.Snapshot(email, examID); !ok {
		return util.ErrSessionExpired
	}

	reason := string(proctor.ReasonClientSide)
	if violationType != "" {
		reason = violationType
	}
	s.recordTermination(email, examID, proctor.Reason(reason), currentScore)
	s.Sessions.Remove(email, examID)
	return nil
}

func (s *ExamSessionService) recordTermination(email, examID string, reason proctor.Reason, score float64) {
	monitoring.Terminations.WithLabelValues(string(reason)).Inc()
	term := &model.Termination{
		ApplicantEmail: email,
		ExamID:         examID,
		Reason:         string(reason),
		ScoreAtExit:    score,
		TerminatedAt:   time.Now(),
		Blocked:        true,
	}
	if err := s.TermRepo.Create(term); err != nil {
		logger.Log.Error("termination ledger write failed",
			zap.String("email", email), zap.String("examId", examID),
			zap.String("reason", string(reason)), zap.Error(err))
	}
}

// scorePaper counts exact answer matches and rounds the percentage to two
// decimals. An empty paper scores zero.
func scorePaper(questions []model.Question, answers map[string]string) (raw int, percent float64) {
	for _, q := range questions {
		if ans, ok := answers[q.ID]; ok && ans == q.CorrectAnswer {
			raw++
		}
	}
	if len(questions) == 0 {
		return 0, 0.0
	}
	percent = math.Round(float64(raw)/float64(len(questions))*100*100) / 100
	return raw, percent
}

type SubmitResult struct {
	Percentage     float64 `json:"percentage"`
	TotalQuestions int     `json:"totalQuestions"`
}

// Submit scores the paper and writes the result as a single conditional
// insert. A concurrent or repeated submit surfaces ErrAlreadySubmitted from
// the unique index, never a second row.
// The time window is deliberately not re-checked here: a window that
// closes while the candidate is mid-exam must not void their answers.
func (s *ExamSessionService) Submit(ctx context.Context, email, examID string, answers map[string]string) (*SubmitResult, error) {
	sess, ok := s.Sessions.Snapshot(email, examID)
	if !ok {
		return nil, util.ErrSessionExpired
	}
	if sess.ExamID != examID {
		return nil, util.ErrWrongExam
	}
	if s.gate.Ledger.Blocked(email, examID) {
		s.Sessions.Remove(email, examID)
		return nil, util.ErrAccessBlocked
	}

	exam, err := s.Exams.GetPaper(ctx, examID)
	if err != nil {
		return nil, err
	}

	_, percent := scorePaper(exam.Questions, answers)
	result := &model.ExamResult{
		ApplicantEmail: email,
		ExamID:         examID,
		JobID:          exam.JobID,
		ScorePercent:   percent,
		TotalQuestions: len(exam.Questions),
		SubmittedAt:    time.Now(),
	}
	if err := s.ResultRepo.Create(result); err != nil {
		return nil, err
	}

	monitoring.Submissions.Inc()
	s.Sessions.Remove(email, examID)
	return &SubmitResult{Percentage: percent, TotalQuestions: len(exam.Questions)}, nil
}

func (s *ExamSessionService) Logout(email, examID string) {
	s.Sessions.Remove(email, examID)
}
