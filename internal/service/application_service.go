package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"hiregate_backend/internal/model"
	"hiregate_backend/internal/repository"
	"hiregate_backend/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxResumeSize = 5 << 20

type ApplicationService struct {
	AppRepo  *repository.ApplicationRepository
	JobRepo  *repository.JobRepository
	ExamRepo *repository.ExamRepository
	Storage  StorageProvider
}

func NewApplicationService(appRepo *repository.ApplicationRepository, jobRepo *repository.JobRepository,
	examRepo *repository.ExamRepository, storage StorageProvider) *ApplicationService {
	return &ApplicationService{
		AppRepo:  appRepo,
		JobRepo:  jobRepo,
		ExamRepo: examRepo,
		Storage:  storage,
	}
}

type ApplyInput struct {
	Email       string
	Name        string
	CollegeName string
	CGPA        string
	JobID       string
}

// Apply validates the resume, stores it, and records the application. One
// application per (email, job).
func (s *ApplicationService) Apply(ctx context.Context, in ApplyInput, resume *multipart.FileHeader) (*model.JobApplication, error) {
	if _, err := s.JobRepo.FindByID(in.JobID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrJobNotFound
		}
		return nil, err
	}

	applied, err := s.AppRepo.Exists(in.Email, in.JobID)
	if err != nil {
		return nil, err
	}
	if applied {
		return nil, util.ErrAlreadyApplied
	}

	if resume.Size > maxResumeSize {
		return nil, fmt.Errorf("resume exceeds the 5MB limit")
	}
	if !strings.HasSuffix(strings.ToLower(resume.Filename), ".pdf") {
		return nil, fmt.Errorf("resume must be a PDF file")
	}

	file, err := resume.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	// Cheap content check on top of the extension.
	head := make([]byte, 5)
	if _, err := io.ReadFull(file, head); err != nil || !bytes.HasPrefix(head, []byte("%PDF-")) {
		return nil, fmt.Errorf("resume must be a PDF file")
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	object := fmt.Sprintf("resumes/%s/%s.pdf", in.JobID, uuid.New().String())
	if err := s.Storage.Upload(ctx, object, file, resume.Size, "application/pdf"); err != nil {
		return nil, err
	}

	app := &model.JobApplication{
		JobID:          in.JobID,
		ApplicantEmail: in.Email,
		ApplicantName:  in.Name,
		CollegeName:    in.CollegeName,
		CGPA:           in.CGPA,
		ResumeObject:   object,
		AppliedAt:      time.Now(),
	}
	if err := s.AppRepo.Create(app); err != nil {
		return nil, err
	}
	return app, nil
}

// ApplicantStatus is one row of the admin per-job applicant view, the
// application merged with its invitation send status.
type ApplicantStatus struct {
	model.JobApplication
	SentStatus model.SendStatus `json:"sentStatus"`
}

func (s *ApplicationService) ListByJob(jobID string, credRepo *repository.CredentialRepository, examID string) ([]ApplicantStatus, error) {
	apps, err := s.AppRepo.FindByJob(jobID)
	if err != nil {
		return nil, err
	}

	statuses := map[string]model.SendStatus{}
	if examID != "" {
		if m, err := credRepo.SentStatusByEmail(examID); err == nil {
			statuses = m
		}
	}

	out := make([]ApplicantStatus, 0, len(apps))
	for _, app := range apps {
		out = append(out, ApplicantStatus{JobApplication: app, SentStatus: statuses[app.ApplicantEmail]})
	}
	return out, nil
}

// MyApplication is an applicant's own application joined with whether an
// exam has been scheduled for the job.
type MyApplication struct {
	model.JobApplication
	JobTitle     string `json:"jobTitle"`
	ExamAssigned bool   `json:"examAssigned"`
}

func (s *ApplicationService) ListMine(email string) ([]MyApplication, error) {
	apps, err := s.AppRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}

	out := make([]MyApplication, 0, len(apps))
	for _, app := range apps {
		row := MyApplication{JobApplication: app}
		if job, err := s.JobRepo.FindByID(app.JobID); err == nil {
			row.JobTitle = job.JobTitle
		}
		if exams, err := s.ExamRepo.FindByJob(app.JobID); err == nil && len(exams) > 0 {
			row.ExamAssigned = true
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *ApplicationService) OpenResume(ctx context.Context, applicationID string) (io.ReadCloser, error) {
	app, err := s.AppRepo.FindByID(applicationID)
	if err != nil {
		return nil, err
	}
	return s.Storage.Open(ctx, app.ResumeObject)
}
