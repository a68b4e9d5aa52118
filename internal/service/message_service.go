package service

import (
	"context"
	"errors"
	"time"

	"AiBeiTongServer/consts"
	"AiBeiTongServer/internal/converter"
	"AiBeiTongServer/internal/dto"
	"AiBeiTongServer/internal/repository"
	"AiBeiTongServer/model"
	"AiBeiTongServer/pkg/errs"
	"AiBeiTongServer/pkg/logger"
	"AiBeiTongServer/pkg/util"
)

// messageServiceImpl 消息服务实现
type messageServiceImpl struct {
	messageRepo     repository.IMessageRepository
	userRepo        repository.IUserRepository
	relationRepo    repository.IRelationRepository
	interactionRepo repository.IInteractionRepository
}

// NewMessageService 创建消息服务实例
func NewMessageService(
	messageRepo repository.IMessageRepository,
	userRepo repository.IUserRepository,
	relationRepo repository.IRelationRepository,
	interactionRepo repository.IInteractionRepository,
) MessageService {
	return &messageServiceImpl{
		messageRepo:     messageRepo,
		userRepo:        userRepo,
		relationRepo:    relationRepo,
		interactionRepo: interactionRepo,
	}
}

// SendMessage 发送消息
// 业务流程：
//  1. 校验接收方存在
//  2. 被接收方拉黑则拒绝
//  3. 落库并返回视图
func (s *messageServiceImpl) SendMessage(ctx context.Context, fromUUID string, req *dto.SendMessageRequest) (*dto.MessageView, error) {
	if fromUUID == req.ToUUID {
		return nil, errs.New(consts.CodeMessageSendFail)
	}

	peer, err := s.userRepo.GetByUUID(ctx, req.ToUUID)
	if err != nil {
		logger.Error(ctx, "查询接收方失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}
	if peer == nil {
		return nil, errs.New(consts.CodeUserNotFound)
	}

	blocked, err := s.relationRepo.IsBlocked(ctx, req.ToUUID, fromUUID)
	if err != nil {
		logger.Error(ctx, "查询黑名单失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}
	if blocked {
		return nil, errs.New(consts.CodePermissionDeny)
	}

	msg := &model.Message{
		Uuid:     util.GenPrefixedID("m"),
		FromUuid: fromUUID,
		ToUuid:   req.ToUUID,
		Content:  req.Content,
		Type:     model.MessageTypeText,
	}
	created, err := s.messageRepo.Create(ctx, msg)
	if err != nil {
		logger.Error(ctx, "消息落库失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeMessageSendFail)
	}

	logger.Info(ctx, "发送消息",
		logger.String("message", created.Uuid),
		logger.String("from", fromUUID),
		logger.String("to", req.ToUUID),
	)
	return converter.MessageToView(created), nil
}

// GetMessages 两人会话消息（时间正序）
func (s *messageServiceImpl) GetMessages(ctx context.Context, userUUID, peerUUID string, limit int) ([]*dto.MessageView, error) {
	msgs, err := s.messageRepo.ListBetween(ctx, userUUID, peerUUID, limit)
	if err != nil {
		logger.Error(ctx, "查询消息失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}

	views := make([]*dto.MessageView, 0, len(msgs))
	for _, m := range msgs {
		views = append(views, converter.MessageToView(m))
	}
	return views, nil
}

// RecallMessage 撤回消息（仅发送方，发出 2 分钟内）
func (s *messageServiceImpl) RecallMessage(ctx context.Context, userUUID, messageUUID string) error {
	msg, err := s.loadMessage(ctx, messageUUID)
	if err != nil {
		return err
	}
	if msg.FromUuid != userUUID {
		return errs.New(consts.CodeMessageNotOwned)
	}
	if time.Since(msg.CreatedAt) > model.RecallWindow {
		return errs.New(consts.CodeRecallWindowExpired)
	}

	if err := s.messageRepo.Recall(ctx, messageUUID); err != nil {
		logger.Error(ctx, "撤回消息失败", logger.ErrorField("error", err))
		return errs.New(consts.CodeInternalError)
	}
	logger.Info(ctx, "撤回消息",
		logger.String("message", messageUUID), logger.String("user", userUUID))
	return nil
}

// DeleteMessage 删除消息（仅发送方）
func (s *messageServiceImpl) DeleteMessage(ctx context.Context, userUUID, messageUUID string) error {
	msg, err := s.loadMessage(ctx, messageUUID)
	if err != nil {
		return err
	}
	if msg.FromUuid != userUUID {
		return errs.New(consts.CodeMessageNotOwned)
	}

	if err := s.messageRepo.Delete(ctx, messageUUID); err != nil {
		logger.Error(ctx, "删除消息失败", logger.ErrorField("error", err))
		return errs.New(consts.CodeInternalError)
	}
	return nil
}

// GetConversations 会话列表
// 对端集合只从消息推导，没聊过的人不出现（置顶了也一样）。
// 排序规则：置顶会话在前（按置顶时间倒序，新置顶在最前），
// 其余会话按最新消息时间倒序。
func (s *messageServiceImpl) GetConversations(ctx context.Context, userUUID string) ([]*dto.ConversationView, error) {
	// 1. 每个对端的最新一条消息，已按消息时间倒序
	msgs, err := s.messageRepo.ListLatestByPeer(ctx, userUUID)
	if err != nil {
		logger.Error(ctx, "查询消息失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}

	lastByPeer := make(map[string]*model.Message, len(msgs))
	peerOrder := make([]string, 0, len(msgs))
	for _, m := range msgs {
		peer := m.ToUuid
		if peer == userUUID {
			peer = m.FromUuid
		}
		if _, ok := lastByPeer[peer]; !ok {
			lastByPeer[peer] = m
			peerOrder = append(peerOrder, peer)
		}
	}

	// 2. 置顶列表（已按置顶时间倒序）
	pins, err := s.interactionRepo.ListPins(ctx, userUUID)
	if err != nil {
		logger.Error(ctx, "查询置顶失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}
	pinnedSet := make(map[string]struct{}, len(pins))
	for _, p := range pins {
		pinnedSet[p.PeerUuid] = struct{}{}
	}

	// 3. 置顶在前，其余保持最新消息倒序
	ordered := make([]string, 0, len(peerOrder))
	for _, p := range pins {
		if _, ok := lastByPeer[p.PeerUuid]; ok {
			ordered = append(ordered, p.PeerUuid)
		}
	}
	for _, peer := range peerOrder {
		if _, ok := pinnedSet[peer]; !ok {
			ordered = append(ordered, peer)
		}
	}

	// 4. 批量取对端用户并组装
	users, err := s.userRepo.BatchGetByUUIDs(ctx, ordered)
	if err != nil {
		logger.Error(ctx, "批量查询用户失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}
	userMap := make(map[string]*model.UserInfo, len(users))
	for _, u := range users {
		userMap[u.Uuid] = u
	}

	views := make([]*dto.ConversationView, 0, len(ordered))
	for _, peer := range ordered {
		user, ok := userMap[peer]
		if !ok {
			continue
		}
		_, pinned := pinnedSet[peer]
		views = append(views, &dto.ConversationView{
			Peer:        converter.UserToBrief(user),
			LastMessage: converter.MessageToView(lastByPeer[peer]),
			Pinned:      pinned,
		})
	}
	return views, nil
}

func (s *messageServiceImpl) loadMessage(ctx context.Context, messageUUID string) (*model.Message, error) {
	msg, err := s.messageRepo.GetByUUID(ctx, messageUUID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, errs.New(consts.CodeMessageNotFound)
		}
		logger.Error(ctx, "查询消息失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}
	return msg, nil
}
