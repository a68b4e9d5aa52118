package handler

import (
	"AiBeiTongServer/consts"
	"AiBeiTongServer/internal/dto"
	"AiBeiTongServer/internal/middleware"
	"AiBeiTongServer/internal/service"
	"AiBeiTongServer/pkg/result"

	"github.com/gin-gonic/gin"
)

// JobHandler 职位处理器
type JobHandler struct {
	jobService service.JobService
}

// NewJobHandler 创建职位处理器
func NewJobHandler(jobService service.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// ListJobs 职位列表（发布时间倒序），支持 keyword/location 筛选
func (h *JobHandler) ListJobs(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	var req dto.ListJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}
	if req.Limit == 0 {
		req.Limit = 20
	}

	views, err := h.jobService.ListJobs(ctx, &req)
	if err != nil {
		failWithError(c, ctx, "获取职位列表", err)
		return
	}
	result.Success(c, views)
}

// GetJob 职位详情
func (h *JobHandler) GetJob(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	jobUUID := c.Param("uuid")
	if jobUUID == "" {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	view, err := h.jobService.GetJob(ctx, jobUUID)
	if err != nil {
		failWithError(c, ctx, "获取职位详情", err)
		return
	}
	result.Success(c, view)
}

// CreateJob 发布职位接口
// @Summary 发布职位
// @Tags 职位接口
// @Accept json
// @Produce json
// @Param request body dto.CreateJobRequest true "发布职位请求"
// @Success 200 {object} dto.JobView
// @Router /api/v1/auth/job [post]
func (h *JobHandler) CreateJob(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	view, err := h.jobService.CreateJob(ctx, userUUID, &req)
	if err != nil {
		failWithError(c, ctx, "发布职位", err)
		return
	}
	result.Success(c, view)
}

// ApplyJob 投递职位
// @Summary 投递职位
// @Tags 职位接口
// @Accept json
// @Produce json
// @Param uuid path string true "职位UUID"
// @Param request body dto.ApplyJobRequest true "投递请求"
// @Success 200 {object} dto.ApplyJobResponse
// @Router /api/v1/auth/job/{uuid}/apply [post]
func (h *JobHandler) ApplyJob(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := currentUser(c)
	if !ok {
		return
	}
	jobUUID := c.Param("uuid")
	if jobUUID == "" {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	var req dto.ApplyJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	resp, err := h.jobService.ApplyJob(ctx, userUUID, jobUUID, &req)
	if err != nil {
		failWithError(c, ctx, "投递职位", err)
		return
	}
	result.Success(c, resp)
}
