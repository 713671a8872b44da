package controller

import (
	"errors"
	"io"
	"strings"

	"hiregate_backend/internal/repository"
	"hiregate_backend/internal/service"
	"hiregate_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ApplicationController struct {
	AppService *service.ApplicationService
	CredRepo   *repository.CredentialRepository
}

func NewApplicationController(appService *service.ApplicationService, credRepo *repository.CredentialRepository) *ApplicationController {
	return &ApplicationController{AppService: appService, CredRepo: credRepo}
}

// Apply handles the multipart application form with its resume upload.
func (c *ApplicationController) Apply(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	jobID := ctx.PostForm("jobId")
	if jobID == "" {
		util.BadRequest(ctx, "jobId is required")
		return
	}

	resume, err := ctx.FormFile("resume")
	if err != nil {
		util.BadRequest(ctx, "resume file is required")
		return
	}

	in := service.ApplyInput{
		Email:       claims.Email,
		Name:        ctx.PostForm("name"),
		CollegeName: ctx.PostForm("collegeName"),
		CGPA:        ctx.PostForm("cgpa"),
		JobID:       jobID,
	}

	app, err := c.AppService.Apply(ctx.Request.Context(), in, resume)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrJobNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAlreadyApplied):
			util.Conflict(ctx, "You have already applied for this job")
		case strings.Contains(err.Error(), "resume"):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, app)
}

func (c *ApplicationController) ListMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	apps, err := c.AppService.ListMine(claims.Email)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, apps)
}

// ListByJob is the admin applicant view for one job, each row merged with
// the invitation status of the exam named in the query.
func (c *ApplicationController) ListByJob(ctx *gin.Context) {
	jobID := ctx.Param("id")
	examID := ctx.Query("examId")

	rows, err := c.AppService.ListByJob(jobID, c.CredRepo, examID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// DownloadResume streams the stored PDF. Admin only.
func (c *ApplicationController) DownloadResume(ctx *gin.Context) {
	reader, err := c.AppService.OpenResume(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	defer reader.Close()

	ctx.Header("Content-Type", "application/pdf")
	ctx.Header("Content-Disposition", "inline; filename=resume.pdf")
	io.Copy(ctx.Writer, reader)
}
