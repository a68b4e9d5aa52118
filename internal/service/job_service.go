package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"AiBeiTongServer/consts"
	"AiBeiTongServer/internal/converter"
	"AiBeiTongServer/internal/dto"
	"AiBeiTongServer/internal/repository"
	"AiBeiTongServer/model"
	"AiBeiTongServer/pkg/async"
	"AiBeiTongServer/pkg/errs"
	"AiBeiTongServer/pkg/logger"
	"AiBeiTongServer/pkg/mailer"
	"AiBeiTongServer/pkg/util"

	"gorm.io/datatypes"
)

// jobServiceImpl 职位服务实现
type jobServiceImpl struct {
	jobRepo  repository.IJobRepository
	userRepo repository.IUserRepository
	mail     mailer.Mailer
}

// NewJobService 创建职位服务实例
func NewJobService(jobRepo repository.IJobRepository, userRepo repository.IUserRepository, mail mailer.Mailer) JobService {
	return &jobServiceImpl{jobRepo: jobRepo, userRepo: userRepo, mail: mail}
}

// ListJobs 职位列表，支持关键词与地点筛选
func (s *jobServiceImpl) ListJobs(ctx context.Context, req *dto.ListJobsRequest) ([]*dto.JobView, error) {
	jobs, err := s.jobRepo.List(ctx, req.Keyword, req.Location, req.Limit, req.Offset)
	if err != nil {
		logger.Error(ctx, "查询职位列表失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}

	publisherUUIDs := make([]string, 0, len(jobs))
	for _, j := range jobs {
		publisherUUIDs = append(publisherUUIDs, j.UserUuid)
	}
	publishers, err := s.userRepo.BatchGetByUUIDs(ctx, publisherUUIDs)
	if err != nil {
		logger.Error(ctx, "批量查询发布人失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}
	publisherMap := make(map[string]*model.UserInfo, len(publishers))
	for _, u := range publishers {
		publisherMap[u.Uuid] = u
	}

	views := make([]*dto.JobView, 0, len(jobs))
	for _, j := range jobs {
		views = append(views, converter.JobToView(j, publisherMap[j.UserUuid]))
	}
	return views, nil
}

// GetJob 职位详情
func (s *jobServiceImpl) GetJob(ctx context.Context, jobUUID string) (*dto.JobView, error) {
	job, err := s.loadJob(ctx, jobUUID)
	if err != nil {
		return nil, err
	}

	publisher, err := s.userRepo.GetByUUID(ctx, job.UserUuid)
	if err != nil {
		logger.Warn(ctx, "查询发布人失败", logger.ErrorField("error", err))
	}
	return converter.JobToView(job, publisher), nil
}

// CreateJob 发布职位
func (s *jobServiceImpl) CreateJob(ctx context.Context, userUUID string, req *dto.CreateJobRequest) (*dto.JobView, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Company) == "" {
		return nil, errs.New(consts.CodeJobContentEmpty)
	}

	job := &model.Job{
		Uuid:         util.GenPrefixedID("job"),
		UserUuid:     userUUID,
		Title:        req.Title,
		Company:      req.Company,
		Location:     req.Location,
		Salary:       req.Salary,
		Description:  req.Description,
		Requirements: datatypes.JSON(converter.StringsToJSON(req.Requirements)),
		Tags:         datatypes.JSON(converter.StringsToJSON(req.Tags)),
		ContactEmail: req.ContactEmail,
	}
	created, err := s.jobRepo.Create(ctx, job)
	if err != nil {
		logger.Error(ctx, "发布职位失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}

	publisher, err := s.userRepo.GetByUUID(ctx, userUUID)
	if err != nil {
		logger.Warn(ctx, "查询发布人失败", logger.ErrorField("error", err))
	}

	logger.Info(ctx, "发布职位",
		logger.String("job", created.Uuid),
		logger.String("user", userUUID),
		logger.String("title", created.Title),
	)
	return converter.JobToView(created, publisher), nil
}

// ApplyJob 投递职位
// 业务流程：
//  1. 职位存在且未投递过
//  2. 落投递记录
//  3. 异步给发布方邮箱发通知，失败只记日志
func (s *jobServiceImpl) ApplyJob(ctx context.Context, userUUID, jobUUID string, req *dto.ApplyJobRequest) (*dto.ApplyJobResponse, error) {
	job, err := s.loadJob(ctx, jobUUID)
	if err != nil {
		return nil, err
	}

	applied, err := s.jobRepo.HasApplied(ctx, jobUUID, userUUID)
	if err != nil {
		logger.Error(ctx, "查询投递记录失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}
	if applied {
		return nil, errs.New(consts.CodeJobApplyRepeat)
	}

	app := &model.JobApplication{
		Uuid:     util.GenPrefixedID("app"),
		JobUuid:  jobUUID,
		UserUuid: userUUID,
		Resume:   req.Resume,
		Message:  req.Message,
	}
	created, err := s.jobRepo.CreateApplication(ctx, app)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, errs.New(consts.CodeJobApplyRepeat)
		}
		logger.Error(ctx, "创建投递记录失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}

	// 3. 异步通知招聘方，不阻塞投递主流程
	if job.ContactEmail != "" {
		applicant, err := s.userRepo.GetByUUID(ctx, userUUID)
		if err != nil {
			logger.Warn(ctx, "查询投递人失败", logger.ErrorField("error", err))
		}
		s.notifyPublisher(ctx, job, applicant, req)
	}

	logger.Info(ctx, "投递职位",
		logger.String("job", jobUUID),
		logger.String("user", userUUID),
		logger.String("application", created.Uuid),
	)
	return &dto.ApplyJobResponse{ApplicationUUID: created.Uuid}, nil
}

// notifyPublisher 投递通知邮件（协程池异步发送）
func (s *jobServiceImpl) notifyPublisher(ctx context.Context, job *model.Job, applicant *model.UserInfo, req *dto.ApplyJobRequest) {
	applicantName := "匿名用户"
	if applicant != nil {
		applicantName = applicant.Nickname
	}
	subject := fmt.Sprintf("新的职位投递: %s", job.Title)
	body := fmt.Sprintf(
		"<p><b>%s</b> 投递了职位 <b>%s</b>（%s）。</p><p>附言: %s</p>",
		html.EscapeString(applicantName),
		html.EscapeString(job.Title),
		html.EscapeString(job.Company),
		html.EscapeString(req.Message),
	)
	to := job.ContactEmail

	async.RunSafe(ctx, func(runCtx context.Context) {
		if err := s.mail.Send(to, subject, body); err != nil {
			logger.Error(runCtx, "发送投递通知邮件失败",
				logger.ErrorField("error", err),
				logger.String("job", job.Uuid),
				logger.String("to", to),
			)
		}
	}, 0)
}

func (s *jobServiceImpl) loadJob(ctx context.Context, jobUUID string) (*model.Job, error) {
	job, err := s.jobRepo.GetByUUID(ctx, jobUUID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, errs.New(consts.CodeJobNotFound)
		}
		logger.Error(ctx, "查询职位失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}
	return job, nil
}
