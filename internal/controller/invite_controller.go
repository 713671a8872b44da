package controller

import (
	"hiregate_backend/internal/service"
	"hiregate_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type InviteController struct {
	InviteService *service.InviteService
}

func NewInviteController(inviteService *service.InviteService) *InviteController {
	return &InviteController{InviteService: inviteService}
}

type PrepareRequest struct {
	JobID  string `json:"jobId" binding:"required"`
	ExamID string `json:"examId" binding:"required"`
}

// Prepare generates one-time passwords and a draft email for every
// applicant of the job. Nothing is stored or sent until Send.
func (c *InviteController) Prepare(ctx *gin.Context) {
	var req PrepareRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	prepared, err := c.InviteService.Prepare(req.JobID, req.ExamID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, prepared)
}

// Send emails the (possibly admin-edited) invitations and records each
// credential with its delivery status.
func (c *InviteController) Send(ctx *gin.Context) {
	var req service.PreparedInvites
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.ExamID == "" || len(req.Invitations) == 0 {
		util.BadRequest(ctx, "examId and invitations are required")
		return
	}

	report, err := c.InviteService.Send(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, report)
}
