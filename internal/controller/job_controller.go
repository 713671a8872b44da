package controller

import (
	"errors"

	"hiregate_backend/internal/model"
	"hiregate_backend/internal/service"
	"hiregate_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type JobController struct {
	JobService *service.JobService
	AppService *service.ApplicationService
}

func NewJobController(jobService *service.JobService, appService *service.ApplicationService) *JobController {
	return &JobController{JobService: jobService, AppService: appService}
}

type JobRequest struct {
	JobTitle    string `json:"jobTitle" binding:"required"`
	Department  string `json:"department"`
	Location    string `json:"location"`
	Description string `json:"description"`
	LastDate    string `json:"lastDate"`
}

func (c *JobController) Create(ctx *gin.Context) {
	var req JobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	job := &model.JobPosting{
		JobTitle:    req.JobTitle,
		Department:  req.Department,
		Location:    req.Location,
		Description: req.Description,
		LastDate:    req.LastDate,
	}
	if err := c.JobService.Create(job); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, job)
}

// List returns postings split into open and past by closing date. For an
// authenticated applicant, open postings carry their applied flag.
func (c *JobController) List(ctx *gin.Context) {
	open, past, err := c.JobService.ListSplit()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	applied := map[string]bool{}
	if claims := util.GetUserFromContext(ctx); claims != nil && claims.Role == model.Applicant {
		if set, err := c.AppService.AppRepo.AppliedJobIDs(claims.Email); err == nil {
			applied = set
		}
	}

	type jobView struct {
		model.JobPosting
		Applied bool `json:"applied"`
	}
	openViews := make([]jobView, 0, len(open))
	for _, job := range open {
		openViews = append(openViews, jobView{JobPosting: job, Applied: applied[job.ID]})
	}

	util.Success(ctx, gin.H{"open": openViews, "past": past})
}

func (c *JobController) Get(ctx *gin.Context) {
	job, err := c.JobService.Get(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrJobNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, job)
}

func (c *JobController) Update(ctx *gin.Context) {
	job, err := c.JobService.Get(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrJobNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	var req JobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	job.JobTitle = req.JobTitle
	job.Department = req.Department
	job.Location = req.Location
	job.Description = req.Description
	job.LastDate = req.LastDate

	if err := c.JobService.Update(job); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, job)
}

func (c *JobController) Delete(ctx *gin.Context) {
	if err := c.JobService.Delete(ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}
