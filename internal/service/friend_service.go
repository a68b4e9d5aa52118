package service

import (
	"context"
	"errors"

	"AiBeiTongServer/consts"
	"AiBeiTongServer/internal/converter"
	"AiBeiTongServer/internal/dto"
	"AiBeiTongServer/internal/repository"
	"AiBeiTongServer/model"
	"AiBeiTongServer/pkg/errs"
	"AiBeiTongServer/pkg/logger"
	"AiBeiTongServer/pkg/util"
)

// friendServiceImpl 社交关系服务实现
type friendServiceImpl struct {
	userRepo     repository.IUserRepository
	relationRepo repository.IRelationRepository
	requestRepo  repository.IFriendRequestRepository
}

// NewFriendService 创建社交关系服务实例
func NewFriendService(
	userRepo repository.IUserRepository,
	relationRepo repository.IRelationRepository,
	requestRepo repository.IFriendRequestRepository,
) FriendService {
	return &friendServiceImpl{
		userRepo:     userRepo,
		relationRepo: relationRepo,
		requestRepo:  requestRepo,
	}
}

// SendFriendRequest 发送好友申请
// 业务流程：
//  1. 校验目标用户与当前关系
//  2. 落一条 pending 申请，等对方处理
func (s *friendServiceImpl) SendFriendRequest(ctx context.Context, fromUUID string, req *dto.SendFriendRequestRequest) (*dto.FriendStatusResponse, error) {
	if fromUUID == req.ToUUID {
		return nil, errs.New(consts.CodeCannotAddSelf)
	}

	target, err := s.userRepo.GetByUUID(ctx, req.ToUUID)
	if err != nil {
		logger.Error(ctx, "查询用户失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}
	if target == nil {
		return nil, errs.New(consts.CodeUserNotFound)
	}

	// 任一方向拉黑都不允许加好友
	for _, pair := range [][2]string{{fromUUID, req.ToUUID}, {req.ToUUID, fromUUID}} {
		blocked, err := s.relationRepo.IsBlocked(ctx, pair[0], pair[1])
		if err != nil {
			logger.Error(ctx, "查询黑名单失败", logger.ErrorField("error", err))
			return nil, errs.New(consts.CodeInternalError)
		}
		if blocked {
			return nil, errs.New(consts.CodePermissionDeny)
		}
	}

	isFriend, err := s.relationRepo.IsFriend(ctx, fromUUID, req.ToUUID)
	if err != nil {
		logger.Error(ctx, "查询好友关系失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}
	if isFriend {
		return nil, errs.New(consts.CodeAlreadyFriend)
	}

	pending, err := s.requestRepo.GetPendingBetween(ctx, fromUUID, req.ToUUID)
	if err != nil {
		logger.Error(ctx, "查询好友申请失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}
	if pending != nil {
		return nil, errs.New(consts.CodeFriendRequestSent)
	}

	// 2. 落 pending 申请。
	// require_friend_verify 只是资料里的展示开关，加好友一律走申请，
	// 等对方 accept 才建立关系
	request := &model.FriendRequest{
		Uuid:     util.GenPrefixedID("fr"),
		FromUuid: fromUUID,
		ToUuid:   req.ToUUID,
		Message:  req.Message,
		Status:   model.RequestStatusPending,
	}
	if _, err := s.requestRepo.Create(ctx, request); err != nil {
		logger.Error(ctx, "创建好友申请失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}

	logger.Info(ctx, "发送好友申请",
		logger.String("from", fromUUID), logger.String("to", req.ToUUID))
	return &dto.FriendStatusResponse{Status: dto.FriendStatusPending}, nil
}

// AcceptFriendRequest 同意申请
func (s *friendServiceImpl) AcceptFriendRequest(ctx context.Context, userUUID, requestUUID string) error {
	request, err := s.loadPendingRequest(ctx, userUUID, requestUUID)
	if err != nil {
		return err
	}

	if err := s.requestRepo.UpdateStatus(ctx, requestUUID, model.RequestStatusAccepted); err != nil {
		logger.Error(ctx, "更新申请状态失败", logger.ErrorField("error", err))
		return errs.New(consts.CodeInternalError)
	}
	if err := s.relationRepo.CreateFriendPair(ctx, request.FromUuid, request.ToUuid); err != nil {
		logger.Error(ctx, "建立好友关系失败", logger.ErrorField("error", err))
		return errs.New(consts.CodeInternalError)
	}

	logger.Info(ctx, "同意好友申请",
		logger.String("request", requestUUID),
		logger.String("from", request.FromUuid),
		logger.String("to", request.ToUuid),
	)
	return nil
}

// RejectFriendRequest 拒绝申请
func (s *friendServiceImpl) RejectFriendRequest(ctx context.Context, userUUID, requestUUID string) error {
	if _, err := s.loadPendingRequest(ctx, userUUID, requestUUID); err != nil {
		return err
	}

	if err := s.requestRepo.UpdateStatus(ctx, requestUUID, model.RequestStatusRejected); err != nil {
		logger.Error(ctx, "更新申请状态失败", logger.ErrorField("error", err))
		return errs.New(consts.CodeInternalError)
	}
	logger.Info(ctx, "拒绝好友申请", logger.String("request", requestUUID))
	return nil
}

// loadPendingRequest 加载待处理申请并校验归属（只有接收方能处理）。
func (s *friendServiceImpl) loadPendingRequest(ctx context.Context, userUUID, requestUUID string) (*model.FriendRequest, error) {
	request, err := s.requestRepo.GetByUUID(ctx, requestUUID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, errs.New(consts.CodeFriendRequestAbsent)
		}
		logger.Error(ctx, "查询好友申请失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}
	if request.ToUuid != userUUID {
		return nil, errs.New(consts.CodePermissionDeny)
	}
	if request.Status != model.RequestStatusPending {
		return nil, errs.New(consts.CodeFriendRequestAbsent)
	}
	return request, nil
}

// GetPendingRequests 查询收到的待处理申请
func (s *friendServiceImpl) GetPendingRequests(ctx context.Context, userUUID string) ([]*dto.FriendRequestView, error) {
	requests, err := s.requestRepo.GetPendingByTo(ctx, userUUID)
	if err != nil {
		logger.Error(ctx, "查询好友申请失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}

	fromUUIDs := make([]string, 0, len(requests))
	for _, r := range requests {
		fromUUIDs = append(fromUUIDs, r.FromUuid)
	}
	users, err := s.userRepo.BatchGetByUUIDs(ctx, fromUUIDs)
	if err != nil {
		logger.Error(ctx, "批量查询用户失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}
	userMap := make(map[string]*model.UserInfo, len(users))
	for _, u := range users {
		userMap[u.Uuid] = u
	}

	views := make([]*dto.FriendRequestView, 0, len(requests))
	for _, r := range requests {
		views = append(views, converter.FriendRequestToView(r, userMap[r.FromUuid]))
	}
	return views, nil
}

// RemoveContact 删除好友（双向）
func (s *friendServiceImpl) RemoveContact(ctx context.Context, userUUID, peerUUID string) error {
	isFriend, err := s.relationRepo.IsFriend(ctx, userUUID, peerUUID)
	if err != nil {
		logger.Error(ctx, "查询好友关系失败", logger.ErrorField("error", err))
		return errs.New(consts.CodeInternalError)
	}
	if !isFriend {
		return errs.New(consts.CodeNotFriend)
	}

	if err := s.relationRepo.DeleteFriendPair(ctx, userUUID, peerUUID); err != nil {
		logger.Error(ctx, "解除好友关系失败", logger.ErrorField("error", err))
		return errs.New(consts.CodeInternalError)
	}
	logger.Info(ctx, "删除好友",
		logger.String("user", userUUID), logger.String("peer", peerUUID))
	return nil
}

// GetContacts 查询联系人列表
func (s *friendServiceImpl) GetContacts(ctx context.Context, userUUID string) ([]*dto.UserView, error) {
	uuids, err := s.relationRepo.GetContactUUIDs(ctx, userUUID)
	if err != nil {
		logger.Error(ctx, "查询联系人失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}
	return s.batchUserViews(ctx, uuids)
}

// CheckFriendStatus 查询关系状态，优先级: friend > pending(任一方向) > none
func (s *friendServiceImpl) CheckFriendStatus(ctx context.Context, userUUID, peerUUID string) (*dto.FriendStatusResponse, error) {
	isFriend, err := s.relationRepo.IsFriend(ctx, userUUID, peerUUID)
	if err != nil {
		logger.Error(ctx, "查询好友关系失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}
	if isFriend {
		return &dto.FriendStatusResponse{Status: dto.FriendStatusFriend}, nil
	}

	for _, pair := range [][2]string{{userUUID, peerUUID}, {peerUUID, userUUID}} {
		pending, err := s.requestRepo.GetPendingBetween(ctx, pair[0], pair[1])
		if err != nil {
			logger.Error(ctx, "查询好友申请失败", logger.ErrorField("error", err))
			return nil, errs.New(consts.CodeInternalError)
		}
		if pending != nil {
			return &dto.FriendStatusResponse{Status: dto.FriendStatusPending}, nil
		}
	}

	return &dto.FriendStatusResponse{Status: dto.FriendStatusNone}, nil
}

// Block 拉黑。若是好友先解除好友关系。
func (s *friendServiceImpl) Block(ctx context.Context, userUUID, peerUUID string) error {
	blocked, err := s.relationRepo.IsBlocked(ctx, userUUID, peerUUID)
	if err != nil {
		logger.Error(ctx, "查询黑名单失败", logger.ErrorField("error", err))
		return errs.New(consts.CodeInternalError)
	}
	if blocked {
		return errs.New(consts.CodeAlreadyBlocked)
	}

	isFriend, err := s.relationRepo.IsFriend(ctx, userUUID, peerUUID)
	if err != nil {
		logger.Error(ctx, "查询好友关系失败", logger.ErrorField("error", err))
		return errs.New(consts.CodeInternalError)
	}
	if isFriend {
		if err := s.relationRepo.DeleteFriendPair(ctx, userUUID, peerUUID); err != nil {
			logger.Error(ctx, "解除好友关系失败", logger.ErrorField("error", err))
			return errs.New(consts.CodeInternalError)
		}
	}

	if err := s.relationRepo.Block(ctx, userUUID, peerUUID); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return errs.New(consts.CodeAlreadyBlocked)
		}
		logger.Error(ctx, "拉黑失败", logger.ErrorField("error", err))
		return errs.New(consts.CodeInternalError)
	}

	logger.Info(ctx, "拉黑用户",
		logger.String("user", userUUID), logger.String("peer", peerUUID))
	return nil
}

// Unblock 取消拉黑（幂等）
func (s *friendServiceImpl) Unblock(ctx context.Context, userUUID, peerUUID string) error {
	if err := s.relationRepo.Unblock(ctx, userUUID, peerUUID); err != nil {
		logger.Error(ctx, "取消拉黑失败", logger.ErrorField("error", err))
		return errs.New(consts.CodeInternalError)
	}
	return nil
}

// GetBlockedUsers 查询黑名单
func (s *friendServiceImpl) GetBlockedUsers(ctx context.Context, userUUID string) ([]*dto.UserView, error) {
	uuids, err := s.relationRepo.GetBlockedUUIDs(ctx, userUUID)
	if err != nil {
		logger.Error(ctx, "查询黑名单失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}
	return s.batchUserViews(ctx, uuids)
}

func (s *friendServiceImpl) batchUserViews(ctx context.Context, uuids []string) ([]*dto.UserView, error) {
	users, err := s.userRepo.BatchGetByUUIDs(ctx, uuids)
	if err != nil {
		logger.Error(ctx, "批量查询用户失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}
	views := make([]*dto.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, converter.UserToBrief(u))
	}
	return views, nil
}
