package controller

import (
	"errors"

	"hiregate_backend/internal/service"
	"hiregate_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	ExamService *service.ExamService
}

func NewExamController(examService *service.ExamService) *ExamController {
	return &ExamController{ExamService: examService}
}

// Create writes the exam and its question batch atomically.
func (c *ExamController) Create(ctx *gin.Context) {
	var req service.CreateExamInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exam, err := c.ExamService.Create(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, exam)
}

func (c *ExamController) List(ctx *gin.Context) {
	if jobID := ctx.Query("jobId"); jobID != "" {
		exams, err := c.ExamService.ListByJob(jobID)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		util.Success(ctx, exams)
		return
	}

	exams, err := c.ExamService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, exams)
}

// GetPaper returns the full paper including correct answers. Admin only.
func (c *ExamController) GetPaper(ctx *gin.Context) {
	exam, err := c.ExamService.GetPaper(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrExamNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, exam)
}
