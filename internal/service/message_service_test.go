package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"AiBeiTongServer/consts"
	"AiBeiTongServer/internal/dto"
	"AiBeiTongServer/internal/repository"
	"AiBeiTongServer/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageServiceSendMessage(t *testing.T) {
	initServiceTest()

	t.Run("cannot_message_self", func(t *testing.T) {
		svc := NewMessageService(&fakeMessageRepo{}, &fakeUserRepo{}, &fakeRelationRepo{}, &fakeInteractionRepo{})
		view, err := svc.SendMessage(context.Background(), "u_1", &dto.SendMessageRequest{ToUUID: "u_1", Content: "hi"})
		require.Nil(t, view)
		requireBizCode(t, err, consts.CodeMessageSendFail)
	})

	t.Run("peer_not_found", func(t *testing.T) {
		svc := NewMessageService(&fakeMessageRepo{}, &fakeUserRepo{
			getByUUIDFn: func(_ context.Context, _ string) (*model.UserInfo, error) {
				return nil, nil
			},
		}, &fakeRelationRepo{}, &fakeInteractionRepo{})
		_, err := svc.SendMessage(context.Background(), "u_1", &dto.SendMessageRequest{ToUUID: "u_ghost", Content: "hi"})
		requireBizCode(t, err, consts.CodeUserNotFound)
	})

	t.Run("blocked_by_recipient", func(t *testing.T) {
		svc := NewMessageService(&fakeMessageRepo{}, &fakeUserRepo{}, &fakeRelationRepo{
			isBlockedFn: func(_ context.Context, userUUID, peerUUID string) (bool, error) {
				// 接收方视角：u_2 是否拉黑了 u_1
				assert.Equal(t, "u_2", userUUID)
				assert.Equal(t, "u_1", peerUUID)
				return true, nil
			},
		}, &fakeInteractionRepo{})
		_, err := svc.SendMessage(context.Background(), "u_1", &dto.SendMessageRequest{ToUUID: "u_2", Content: "hi"})
		requireBizCode(t, err, consts.CodePermissionDeny)
	})

	t.Run("success", func(t *testing.T) {
		var created *model.Message
		svc := NewMessageService(&fakeMessageRepo{
			createFn: func(_ context.Context, msg *model.Message) (*model.Message, error) {
				created = msg
				return msg, nil
			},
		}, &fakeUserRepo{}, &fakeRelationRepo{}, &fakeInteractionRepo{})

		view, err := svc.SendMessage(context.Background(), "u_1", &dto.SendMessageRequest{ToUUID: "u_2", Content: "明天见"})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(created.Uuid, "m_"))
		assert.Equal(t, model.MessageTypeText, created.Type)
		assert.Equal(t, "u_1", view.FromUUID)
		assert.Equal(t, "u_2", view.ToUUID)
		assert.Equal(t, "text", view.Type)
	})
}

func TestMessageServiceRecall(t *testing.T) {
	initServiceTest()

	t.Run("not_found", func(t *testing.T) {
		svc := NewMessageService(&fakeMessageRepo{
			getByUUIDFn: func(_ context.Context, _ string) (*model.Message, error) {
				return nil, repository.ErrRecordNotFound
			},
		}, &fakeUserRepo{}, &fakeRelationRepo{}, &fakeInteractionRepo{})
		requireBizCode(t, svc.RecallMessage(context.Background(), "u_1", "m_x"), consts.CodeMessageNotFound)
	})

	t.Run("only_sender_can_recall", func(t *testing.T) {
		svc := NewMessageService(&fakeMessageRepo{
			getByUUIDFn: func(_ context.Context, uuid string) (*model.Message, error) {
				return &model.Message{Uuid: uuid, FromUuid: "u_2", CreatedAt: time.Now()}, nil
			},
		}, &fakeUserRepo{}, &fakeRelationRepo{}, &fakeInteractionRepo{})
		requireBizCode(t, svc.RecallMessage(context.Background(), "u_1", "m_1"), consts.CodeMessageNotOwned)
	})

	t.Run("window_expired", func(t *testing.T) {
		svc := NewMessageService(&fakeMessageRepo{
			getByUUIDFn: func(_ context.Context, uuid string) (*model.Message, error) {
				return &model.Message{
					Uuid: uuid, FromUuid: "u_1",
					CreatedAt: time.Now().Add(-model.RecallWindow - time.Second),
				}, nil
			},
		}, &fakeUserRepo{}, &fakeRelationRepo{}, &fakeInteractionRepo{})
		requireBizCode(t, svc.RecallMessage(context.Background(), "u_1", "m_1"), consts.CodeRecallWindowExpired)
	})

	t.Run("within_window", func(t *testing.T) {
		var recalled string
		svc := NewMessageService(&fakeMessageRepo{
			getByUUIDFn: func(_ context.Context, uuid string) (*model.Message, error) {
				return &model.Message{Uuid: uuid, FromUuid: "u_1", CreatedAt: time.Now().Add(-time.Minute)}, nil
			},
			recallFn: func(_ context.Context, uuid string) error {
				recalled = uuid
				return nil
			},
		}, &fakeUserRepo{}, &fakeRelationRepo{}, &fakeInteractionRepo{})

		require.NoError(t, svc.RecallMessage(context.Background(), "u_1", "m_1"))
		assert.Equal(t, "m_1", recalled)
	})
}

func TestMessageServiceDelete(t *testing.T) {
	initServiceTest()

	t.Run("only_sender_can_delete", func(t *testing.T) {
		svc := NewMessageService(&fakeMessageRepo{
			getByUUIDFn: func(_ context.Context, uuid string) (*model.Message, error) {
				return &model.Message{Uuid: uuid, FromUuid: "u_2", Type: model.MessageTypeText}, nil
			},
		}, &fakeUserRepo{}, &fakeRelationRepo{}, &fakeInteractionRepo{})
		requireBizCode(t, svc.DeleteMessage(context.Background(), "u_1", "m_1"), consts.CodeMessageNotOwned)
	})

	t.Run("sender_deletes_without_recalling_first", func(t *testing.T) {
		var deleted string
		svc := NewMessageService(&fakeMessageRepo{
			getByUUIDFn: func(_ context.Context, uuid string) (*model.Message, error) {
				return &model.Message{Uuid: uuid, FromUuid: "u_1", Type: model.MessageTypeText}, nil
			},
			deleteFn: func(_ context.Context, uuid string) error {
				deleted = uuid
				return nil
			},
		}, &fakeUserRepo{}, &fakeRelationRepo{}, &fakeInteractionRepo{})

		require.NoError(t, svc.DeleteMessage(context.Background(), "u_1", "m_1"))
		assert.Equal(t, "m_1", deleted)
	})

	t.Run("recalled_message_deleted", func(t *testing.T) {
		var deleted string
		svc := NewMessageService(&fakeMessageRepo{
			getByUUIDFn: func(_ context.Context, uuid string) (*model.Message, error) {
				return &model.Message{Uuid: uuid, FromUuid: "u_1", Type: model.MessageTypeRecalled}, nil
			},
			deleteFn: func(_ context.Context, uuid string) error {
				deleted = uuid
				return nil
			},
		}, &fakeUserRepo{}, &fakeRelationRepo{}, &fakeInteractionRepo{})

		require.NoError(t, svc.DeleteMessage(context.Background(), "u_1", "m_1"))
		assert.Equal(t, "m_1", deleted)
	})
}

func TestMessageServiceGetConversations(t *testing.T) {
	initServiceTest()

	now := time.Now()

	// 每个对端各一条最新消息，倒序：u_2 最新、u_3 其次、u_4 最旧
	msgs := []*model.Message{
		{Uuid: "m_3", FromUuid: "u_2", ToUuid: "u_1", Content: "最新", CreatedAt: now},
		{Uuid: "m_2", FromUuid: "u_1", ToUuid: "u_3", Content: "次新", CreatedAt: now.Add(-time.Minute)},
		{Uuid: "m_1", FromUuid: "u_4", ToUuid: "u_1", Content: "最旧", CreatedAt: now.Add(-time.Hour)},
	}

	t.Run("pinned_first_then_latest_desc", func(t *testing.T) {
		svc := NewMessageService(&fakeMessageRepo{
			listLatestByPeerFn: func(_ context.Context, userUUID string) ([]*model.Message, error) {
				assert.Equal(t, "u_1", userUUID)
				return msgs, nil
			},
		}, &fakeUserRepo{}, &fakeRelationRepo{}, &fakeInteractionRepo{
			listPinsFn: func(_ context.Context, _ string) ([]*model.PinnedChat, error) {
				return []*model.PinnedChat{{UserUuid: "u_1", PeerUuid: "u_4"}}, nil
			},
		})

		views, err := svc.GetConversations(context.Background(), "u_1")
		require.NoError(t, err)
		require.Len(t, views, 3)

		// 置顶的 u_4 排第一，其余按最新消息倒序
		assert.Equal(t, "u_4", views[0].Peer.UUID)
		assert.True(t, views[0].Pinned)
		assert.Equal(t, "u_2", views[1].Peer.UUID)
		assert.False(t, views[1].Pinned)
		assert.Equal(t, "u_3", views[2].Peer.UUID)
		assert.Equal(t, "m_3", views[1].LastMessage.UUID)
	})

	t.Run("pinned_peer_without_messages_skipped", func(t *testing.T) {
		svc := NewMessageService(&fakeMessageRepo{
			listLatestByPeerFn: func(_ context.Context, _ string) ([]*model.Message, error) {
				return msgs, nil
			},
		}, &fakeUserRepo{}, &fakeRelationRepo{}, &fakeInteractionRepo{
			listPinsFn: func(_ context.Context, _ string) ([]*model.PinnedChat, error) {
				// u_9 被置顶但从没聊过，不该出现在会话列表里
				return []*model.PinnedChat{
					{UserUuid: "u_1", PeerUuid: "u_9"},
					{UserUuid: "u_1", PeerUuid: "u_3"},
				}, nil
			},
		})

		views, err := svc.GetConversations(context.Background(), "u_1")
		require.NoError(t, err)
		require.Len(t, views, 3)
		assert.Equal(t, "u_3", views[0].Peer.UUID)
		assert.True(t, views[0].Pinned)
		require.NotNil(t, views[0].LastMessage)
		assert.Equal(t, "m_2", views[0].LastMessage.UUID)
		assert.Equal(t, "u_2", views[1].Peer.UUID)
		assert.Equal(t, "u_4", views[2].Peer.UUID)
	})

	t.Run("unknown_peer_skipped", func(t *testing.T) {
		svc := NewMessageService(&fakeMessageRepo{
			listLatestByPeerFn: func(_ context.Context, _ string) ([]*model.Message, error) {
				return msgs, nil
			},
		}, &fakeUserRepo{
			batchGetFn: func(_ context.Context, uuids []string) ([]*model.UserInfo, error) {
				// u_4 已注销，查不到
				users := make([]*model.UserInfo, 0, len(uuids))
				for _, u := range uuids {
					if u == "u_4" {
						continue
					}
					users = append(users, &model.UserInfo{Uuid: u, Nickname: u})
				}
				return users, nil
			},
		}, &fakeRelationRepo{}, &fakeInteractionRepo{})

		views, err := svc.GetConversations(context.Background(), "u_1")
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, "u_2", views[0].Peer.UUID)
		assert.Equal(t, "u_3", views[1].Peer.UUID)
	})
}
