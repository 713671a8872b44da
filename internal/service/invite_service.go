package service

import (
	"time"

	"hiregate_backend/internal/model"
	"hiregate_backend/internal/repository"
	"hiregate_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type InviteService struct {
	AppRepo  *repository.ApplicationRepository
	CredRepo *repository.CredentialRepository
	Email    *EmailService
}

func NewInviteService(appRepo *repository.ApplicationRepository, credRepo *repository.CredentialRepository,
	email *EmailService) *InviteService {
	return &InviteService{AppRepo: appRepo, CredRepo: credRepo, Email: email}
}

// Invitation pairs an applicant with a freshly generated one-time password.
// The password only becomes valid once Send records it as a credential.
type Invitation struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type PreparedInvites struct {
	ExamID      string       `json:"examId"`
	JobID       string       `json:"jobId"`
	Subject     string       `json:"subject"`
	Body        string       `json:"body"`
	Invitations []Invitation `json:"invitations"`
}

// Prepare generates a password per applicant of the job and a default email
// template the admin can edit before sending. Nothing is persisted here.
func (s *InviteService) Prepare(jobID, examID string) (*PreparedInvites, error) {
	apps, err := s.AppRepo.FindByJob(jobID)
	if err != nil {
		return nil, err
	}

	invites := make([]Invitation, 0, len(apps))
	for _, app := range apps {
		invites = append(invites, Invitation{
			Email:    app.ApplicantEmail,
			Name:     app.ApplicantName,
			Password: uuid.New().String()[:8],
		})
	}

	return &PreparedInvites{
		ExamID:      examID,
		JobID:       jobID,
		Subject:     "Your Online Assessment Invitation",
		Body:        DefaultInvitationBody,
		Invitations: invites,
	}, nil
}

type SendReport struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// Send emails each invitation and records the credential with its outcome.
// A failed send still records the row so the admin view shows FAIL, but a
// FAIL credential authenticates like any other; resending supersedes it.
func (s *InviteService) Send(in PreparedInvites) (*SendReport, error) {
	report := &SendReport{}
	for _, inv := range in.Invitations {
		status := model.SendSuccess
		if err := s.Email.SendInvitation(inv.Email, in.ExamID, inv.Password, in.Subject, in.Body); err != nil {
			logger.Log.Error("invitation email failed",
				zap.String("email", inv.Email), zap.String("examId", in.ExamID), zap.Error(err))
			status = model.SendFailed
			report.Failed++
		} else {
			report.Sent++
		}

		cred := &model.ExamCredential{
			ApplicantEmail:    inv.Email,
			ExamID:            in.ExamID,
			JobID:             in.JobID,
			GeneratedPassword: inv.Password,
			SentStatus:        status,
			SentAt:            time.Now(),
		}
		if err := s.CredRepo.Create(cred); err != nil {
			return report, err
		}
	}
	return report, nil
}
