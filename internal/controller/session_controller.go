package controller

import (
	"encoding/base64"
	"errors"
	"strings"

	"hiregate_backend/internal/proctor"
	"hiregate_backend/internal/service"
	"hiregate_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// SessionController serves the candidate exam flow: credential login, the
// gated stages, face polling, violation reporting and submission.
type SessionController struct {
	Sessions    *service.ExamSessionService
	ExamService *service.ExamService
}

func NewSessionController(sessions *service.ExamSessionService, examService *service.ExamService) *SessionController {
	return &SessionController{Sessions: sessions, ExamService: examService}
}

type CandidateLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	ExamID   string `json:"examId" binding:"required"`
}

func (c *SessionController) Login(ctx *gin.Context) {
	var req CandidateLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Email, password and exam ID are all required.")
		return
	}

	token, err := c.Sessions.Authenticate(req.Email, req.Password, req.ExamID)
	if err != nil {
		if errors.Is(err, util.ErrAccessBlocked) {
			util.Forbidden(ctx, "Access Denied: Your exam access has been terminated.")
		} else {
			util.Error(ctx, 401, "Invalid credentials for this exam.")
		}
		return
	}

	util.Success(ctx, gin.H{"token": token, "examId": req.ExamID})
}

func denyResponse(ctx *gin.Context, d proctor.GateDecision) {
	switch d.Reason {
	case proctor.DenyNoSession:
		util.Error(ctx, 401, d.Message)
	case proctor.DenyAlreadySubmitted:
		util.Conflict(ctx, d.Message)
	case proctor.DenyExamNotFound:
		util.Error(ctx, 404, d.Message)
	default:
		util.Forbidden(ctx, d.Message)
	}
}

// candidateIdentity pulls email and examID from the token claims. The token
// pins the exam, so a candidate token can never reach another exam's routes.
func candidateIdentity(ctx *gin.Context) (email, examID string, ok bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil || claims.ExamID == "" {
		util.Unauthorized(ctx)
		return "", "", false
	}
	return claims.Email, claims.ExamID, true
}

func (c *SessionController) PreCheck(ctx *gin.Context) {
	email, examID, ok := candidateIdentity(ctx)
	if !ok {
		return
	}

	if d := c.Sessions.Guard(email, examID, proctor.StagePreCheck); !d.Allow {
		denyResponse(ctx, d)
		return
	}

	util.Success(ctx, gin.H{
		"stage":            proctor.StagePreCheck.String(),
		"proctoringActive": c.Sessions.Sensor.Available(),
	})
}

func (c *SessionController) Instructions(ctx *gin.Context) {
	email, examID, ok := candidateIdentity(ctx)
	if !ok {
		return
	}

	if d := c.Sessions.Guard(email, examID, proctor.StageInstructions); !d.Allow {
		denyResponse(ctx, d)
		return
	}

	exam, err := c.ExamService.Get(examID)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, gin.H{
		"stage":           proctor.StageInstructions.String(),
		"title":           exam.Title,
		"durationMinutes": exam.DurationMinutes,
	})
}

// Paper enters the exam and serves the answer-stripped question set.
func (c *SessionController) Paper(ctx *gin.Context) {
	email, examID, ok := candidateIdentity(ctx)
	if !ok {
		return
	}

	if d := c.Sessions.Guard(email, examID, proctor.StageInExam); !d.Allow {
		denyResponse(ctx, d)
		return
	}

	exam, questions, err := c.ExamService.CandidatePaper(ctx.Request.Context(), examID)
	if err != nil {
		if errors.Is(err, util.ErrExamNotFound) || errors.Is(err, util.ErrEmptyPaper) {
			util.Error(ctx, 404, "Exam paper not found. Contact the administrator.")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"examId":          exam.ID,
		"title":           exam.Title,
		"durationMinutes": exam.DurationMinutes,
		"questions":       questions,
	})
}

type PollRequest struct {
	ImageData    string  `json:"imageData"`
	IsPreCheck   bool    `json:"isPreCheck"`
	CurrentScore float64 `json:"currentScore"`
}

// decodeFrame accepts both raw base64 and data-URL payloads. Anything
// undecodable becomes an empty frame, which the sensor sees as no face.
func decodeFrame(data string) []byte {
	if i := strings.Index(data, ","); i >= 0 && strings.HasPrefix(data, "data:") {
		data = data[i+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil
	}
	return raw
}

func (c *SessionController) PollFace(ctx *gin.Context) {
	email, examID, ok := candidateIdentity(ctx)
	if !ok {
		return
	}

	var req PollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.Sessions.PollFace(ctx.Request.Context(), email, examID, decodeFrame(req.ImageData), req.IsPreCheck, req.CurrentScore)
	if err != nil {
		util.Error(ctx, 401, "Please log in to start your test.")
		return
	}
	util.Success(ctx, res)
}

type ViolationRequest struct {
	ViolationType string  `json:"violationType"`
	CurrentScore  float64 `json:"currentScore"`
}

func (c *SessionController) ReportViolation(ctx *gin.Context) {
	email, examID, ok := candidateIdentity(ctx)
	if !ok {
		return
	}

	var req ViolationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Sessions.ReportViolation(email, examID, req.ViolationType, req.CurrentScore); err != nil {
		util.Error(ctx, 401, "Please log in to start your test.")
		return
	}
	util.Success(ctx, gin.H{"terminate": true, "message": "Exam terminated due to a reported violation."})
}

type SubmitRequest struct {
	Answers map[string]string `json:"answers" binding:"required"`
}

func (c *SessionController) Submit(ctx *gin.Context) {
	email, examID, ok := candidateIdentity(ctx)
	if !ok {
		return
	}

	var req SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.Sessions.Submit(ctx.Request.Context(), email, examID, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAlreadySubmitted):
			util.Conflict(ctx, "You have already submitted this exam. Access is denied.")
		case errors.Is(err, util.ErrAccessBlocked):
			util.Forbidden(ctx, "Access Denied: Your exam access has been terminated.")
		case errors.Is(err, util.ErrSessionExpired), errors.Is(err, util.ErrWrongExam):
			util.Error(ctx, 401, "Please log in to start your test.")
		case errors.Is(err, util.ErrExamNotFound):
			util.Error(ctx, 404, "Exam paper not found. Contact the administrator.")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, res)
}

func (c *SessionController) Logout(ctx *gin.Context) {
	email, examID, ok := candidateIdentity(ctx)
	if !ok {
		return
	}
	c.Sessions.Logout(email, examID)
	util.Success(ctx, gin.H{"loggedOut": true})
}
