package service

import (
	"fmt"
	"net/smtp"
	"strings"

	"hiregate_backend/internal/config"
	"hiregate_backend/pkg/logger"

	"go.uber.org/zap"
)

// EmailService sends transactional mail over SMTP. With no SMTP user
// configured it runs in dev mode: messages are logged instead of sent and
// every send reports success.
type EmailService struct {
	Cfg     *config.SMTPConfig
	BaseURL string
	devMode bool
}

func NewEmailService(cfg *config.SMTPConfig, examBaseURL string) *EmailService {
	dev := cfg.User == "" || cfg.Password == ""
	if dev {
		logger.Log.Warn("SMTP credentials not configured, email service running in dev mode")
	}
	return &EmailService{Cfg: cfg, BaseURL: examBaseURL, devMode: dev}
}

func (s *EmailService) send(to, subject, body string) error {
	if s.devMode {
		logger.Log.Info("dev mode email",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.String("body", body))
		return nil
	}

	from := s.Cfg.From
	if from == "" {
		from = s.Cfg.User
	}

	msg := strings.Join([]string{
		"From: " + from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", s.Cfg.Host, s.Cfg.Port)
	auth := smtp.PlainAuth("", s.Cfg.User, s.Cfg.Password, s.Cfg.Host)
	return smtp.SendMail(addr, auth, from, []string{to}, []byte(msg))
}

// SendInvitation delivers one-time exam credentials. body may carry the
// admin-edited template; {password} and {link} placeholders are filled in
// per recipient.
func (s *EmailService) SendInvitation(to, examID, password, subject, body string) error {
	if subject == "" {
		subject = "Your Online Assessment Invitation"
	}
	link := fmt.Sprintf("%s?examId=%s", s.BaseURL, examID)
	if body == "" {
		body = DefaultInvitationBody
	}
	body = strings.ReplaceAll(body, "{password}", password)
	body = strings.ReplaceAll(body, "{link}", link)
	body = strings.ReplaceAll(body, "{email}", to)
	return s.send(to, subject, body)
}

const DefaultInvitationBody = `Dear Candidate,

You have been shortlisted for the next stage of our recruitment process: an online assessment.

Exam link: {link}
Login email: {email}
One-time password: {password}

Please ensure you are alone in a well-lit room with a working webcam. The test is proctored; leaving the camera view or the presence of additional people will terminate the exam.

Best of luck,
Recruitment Team`

func (s *EmailService) SendSelected(to, jobTitle string) error {
	body := fmt.Sprintf(`Dear Candidate,

Congratulations! Based on your assessment performance you have been shortlisted for the %s position. Our team will contact you shortly with the next steps.

Best regards,
Recruitment Team`, jobTitle)
	return s.send(to, "Assessment Result: Congratulations", body)
}

func (s *EmailService) SendRejected(to, jobTitle string) error {
	body := fmt.Sprintf(`Dear Candidate,

Thank you for taking the assessment for the %s position. After careful review we will not be moving forward with your application at this time. We encourage you to apply for future openings.

Best regards,
Recruitment Team`, jobTitle)
	return s.send(to, "Assessment Result Update", body)
}

// SendRestoration tells a terminated candidate their exam access is back.
func (s *EmailService) SendRestoration(to, examID string) error {
	link := fmt.Sprintf("%s?examId=%s", s.BaseURL, examID)
	body := fmt.Sprintf(`Dear Candidate,

Your exam access has been restored by the administrator. You may log in again with your original credentials and retake the assessment:

%s

Please make sure your face stays visible to the camera for the whole test.

Best regards,
Recruitment Team`, link)
	return s.send(to, "Exam Access Restored", body)
}
