package controller

import (
	"strconv"

	"hiregate_backend/internal/service"
	"hiregate_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ResultController struct {
	ResultService *service.ResultService
}

func NewResultController(resultService *service.ResultService) *ResultController {
	return &ResultController{ResultService: resultService}
}

// List returns ranked results for an exam. Query params: min_percent,
// top_n, terminated (true shows only terminated candidates).
func (c *ResultController) List(ctx *gin.Context) {
	filter := service.ListFilter{}
	if v := ctx.Query("min_percent"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPercent = f
		}
	}
	if v := ctx.Query("top_n"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.TopN = n
		}
	}
	filter.TerminatedOnly = ctx.Query("terminated") == "true"

	rows, err := c.ResultService.ListByExam(ctx.Param("id"), filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// Restore lifts a termination block and notifies the candidate.
func (c *ResultController) Restore(ctx *gin.Context) {
	term, err := c.ResultService.Restore(ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, term)
}

// SendDecisions emails selected/rejected notifications.
func (c *ResultController) SendDecisions(ctx *gin.Context) {
	var req service.DecisionInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	report, err := c.ResultService.SendDecisions(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, report)
}
