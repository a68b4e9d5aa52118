package service

import (
	"context"
	"errors"
	"testing"

	"AiBeiTongServer/consts"
	"AiBeiTongServer/internal/dto"
	"AiBeiTongServer/internal/repository"
	"AiBeiTongServer/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendServiceSendFriendRequest(t *testing.T) {
	initServiceTest()

	t.Run("cannot_add_self", func(t *testing.T) {
		svc := NewFriendService(&fakeUserRepo{}, &fakeRelationRepo{}, &fakeRequestRepo{})
		resp, err := svc.SendFriendRequest(context.Background(), "u_1", &dto.SendFriendRequestRequest{ToUUID: "u_1"})
		require.Nil(t, resp)
		requireBizCode(t, err, consts.CodeCannotAddSelf)
	})

	t.Run("target_not_found", func(t *testing.T) {
		svc := NewFriendService(&fakeUserRepo{
			getByUUIDFn: func(_ context.Context, _ string) (*model.UserInfo, error) {
				return nil, nil
			},
		}, &fakeRelationRepo{}, &fakeRequestRepo{})
		resp, err := svc.SendFriendRequest(context.Background(), "u_1", &dto.SendFriendRequestRequest{ToUUID: "u_ghost"})
		require.Nil(t, resp)
		requireBizCode(t, err, consts.CodeUserNotFound)
	})

	t.Run("blocked_either_direction", func(t *testing.T) {
		svc := NewFriendService(&fakeUserRepo{}, &fakeRelationRepo{
			isBlockedFn: func(_ context.Context, userUUID, peerUUID string) (bool, error) {
				// 对方拉黑了我
				return userUUID == "u_2" && peerUUID == "u_1", nil
			},
		}, &fakeRequestRepo{})
		resp, err := svc.SendFriendRequest(context.Background(), "u_1", &dto.SendFriendRequestRequest{ToUUID: "u_2"})
		require.Nil(t, resp)
		requireBizCode(t, err, consts.CodePermissionDeny)
	})

	t.Run("already_friend", func(t *testing.T) {
		svc := NewFriendService(&fakeUserRepo{}, &fakeRelationRepo{
			isFriendFn: func(_ context.Context, _, _ string) (bool, error) { return true, nil },
		}, &fakeRequestRepo{})
		resp, err := svc.SendFriendRequest(context.Background(), "u_1", &dto.SendFriendRequestRequest{ToUUID: "u_2"})
		require.Nil(t, resp)
		requireBizCode(t, err, consts.CodeAlreadyFriend)
	})

	t.Run("pending_already_sent", func(t *testing.T) {
		svc := NewFriendService(&fakeUserRepo{}, &fakeRelationRepo{}, &fakeRequestRepo{
			getPendingBetweenFn: func(_ context.Context, fromUUID, toUUID string) (*model.FriendRequest, error) {
				assert.Equal(t, "u_1", fromUUID)
				assert.Equal(t, "u_2", toUUID)
				return &model.FriendRequest{Uuid: "fr_1"}, nil
			},
		})
		resp, err := svc.SendFriendRequest(context.Background(), "u_1", &dto.SendFriendRequestRequest{ToUUID: "u_2"})
		require.Nil(t, resp)
		requireBizCode(t, err, consts.CodeFriendRequestSent)
	})

	t.Run("no_verify_target_still_gets_pending_request", func(t *testing.T) {
		// 对方关掉验证开关也不改变流程：先落申请，关系等 accept 才建立
		var created *model.FriendRequest
		svc := NewFriendService(&fakeUserRepo{
			getByUUIDFn: func(_ context.Context, uuid string) (*model.UserInfo, error) {
				return &model.UserInfo{Uuid: uuid, RequireFriendVerify: false}, nil
			},
		}, &fakeRelationRepo{
			createFriendPairFn: func(_ context.Context, _, _ string) error {
				t.Fatal("发申请阶段不应建立好友关系")
				return nil
			},
		}, &fakeRequestRepo{
			createFn: func(_ context.Context, req *model.FriendRequest) (*model.FriendRequest, error) {
				created = req
				return req, nil
			},
		})

		resp, err := svc.SendFriendRequest(context.Background(), "u_1", &dto.SendFriendRequestRequest{ToUUID: "u_2"})
		require.NoError(t, err)
		assert.Equal(t, dto.FriendStatusPending, resp.Status)
		require.NotNil(t, created)
		assert.Equal(t, model.RequestStatusPending, created.Status)
	})

	t.Run("verify_required_creates_pending_request", func(t *testing.T) {
		var created *model.FriendRequest
		svc := NewFriendService(&fakeUserRepo{
			getByUUIDFn: func(_ context.Context, uuid string) (*model.UserInfo, error) {
				return &model.UserInfo{Uuid: uuid, RequireFriendVerify: true}, nil
			},
		}, &fakeRelationRepo{}, &fakeRequestRepo{
			createFn: func(_ context.Context, req *model.FriendRequest) (*model.FriendRequest, error) {
				created = req
				return req, nil
			},
		})

		resp, err := svc.SendFriendRequest(context.Background(), "u_1", &dto.SendFriendRequestRequest{
			ToUUID: "u_2", Message: "我是昂山",
		})
		require.NoError(t, err)
		assert.Equal(t, dto.FriendStatusPending, resp.Status)
		require.NotNil(t, created)
		assert.Equal(t, "u_1", created.FromUuid)
		assert.Equal(t, "u_2", created.ToUuid)
		assert.Equal(t, "我是昂山", created.Message)
		assert.Equal(t, model.RequestStatusPending, created.Status)
	})
}

func TestFriendServiceHandleRequest(t *testing.T) {
	initServiceTest()

	pending := &model.FriendRequest{
		Uuid: "fr_1", FromUuid: "u_2", ToUuid: "u_1", Status: model.RequestStatusPending,
	}

	t.Run("request_absent", func(t *testing.T) {
		svc := NewFriendService(&fakeUserRepo{}, &fakeRelationRepo{}, &fakeRequestRepo{
			getByUUIDFn: func(_ context.Context, _ string) (*model.FriendRequest, error) {
				return nil, repository.ErrRecordNotFound
			},
		})
		requireBizCode(t, svc.AcceptFriendRequest(context.Background(), "u_1", "fr_x"), consts.CodeFriendRequestAbsent)
	})

	t.Run("only_recipient_can_handle", func(t *testing.T) {
		svc := NewFriendService(&fakeUserRepo{}, &fakeRelationRepo{}, &fakeRequestRepo{
			getByUUIDFn: func(_ context.Context, _ string) (*model.FriendRequest, error) {
				return pending, nil
			},
		})
		requireBizCode(t, svc.AcceptFriendRequest(context.Background(), "u_3", "fr_1"), consts.CodePermissionDeny)
	})

	t.Run("already_handled", func(t *testing.T) {
		svc := NewFriendService(&fakeUserRepo{}, &fakeRelationRepo{}, &fakeRequestRepo{
			getByUUIDFn: func(_ context.Context, _ string) (*model.FriendRequest, error) {
				return &model.FriendRequest{Uuid: "fr_1", ToUuid: "u_1", Status: model.RequestStatusAccepted}, nil
			},
		})
		requireBizCode(t, svc.AcceptFriendRequest(context.Background(), "u_1", "fr_1"), consts.CodeFriendRequestAbsent)
	})

	t.Run("accept_updates_status_and_creates_pair", func(t *testing.T) {
		var statusSet int8 = -1
		var pairCreated bool
		svc := NewFriendService(&fakeUserRepo{}, &fakeRelationRepo{
			createFriendPairFn: func(_ context.Context, userUUID, peerUUID string) error {
				pairCreated = true
				assert.Equal(t, "u_2", userUUID)
				assert.Equal(t, "u_1", peerUUID)
				return nil
			},
		}, &fakeRequestRepo{
			getByUUIDFn: func(_ context.Context, _ string) (*model.FriendRequest, error) {
				return pending, nil
			},
			updateStatusFn: func(_ context.Context, uuid string, status int8) error {
				assert.Equal(t, "fr_1", uuid)
				statusSet = status
				return nil
			},
		})

		require.NoError(t, svc.AcceptFriendRequest(context.Background(), "u_1", "fr_1"))
		assert.Equal(t, model.RequestStatusAccepted, statusSet)
		assert.True(t, pairCreated)
	})

	t.Run("reject_only_updates_status", func(t *testing.T) {
		var statusSet int8 = -1
		svc := NewFriendService(&fakeUserRepo{}, &fakeRelationRepo{
			createFriendPairFn: func(_ context.Context, _, _ string) error {
				t.Fatal("reject 不应建立好友关系")
				return nil
			},
		}, &fakeRequestRepo{
			getByUUIDFn: func(_ context.Context, _ string) (*model.FriendRequest, error) {
				return pending, nil
			},
			updateStatusFn: func(_ context.Context, _ string, status int8) error {
				statusSet = status
				return nil
			},
		})

		require.NoError(t, svc.RejectFriendRequest(context.Background(), "u_1", "fr_1"))
		assert.Equal(t, model.RequestStatusRejected, statusSet)
	})
}

func TestFriendServiceRemoveContact(t *testing.T) {
	initServiceTest()

	t.Run("not_friend", func(t *testing.T) {
		svc := NewFriendService(&fakeUserRepo{}, &fakeRelationRepo{}, &fakeRequestRepo{})
		requireBizCode(t, svc.RemoveContact(context.Background(), "u_1", "u_2"), consts.CodeNotFriend)
	})

	t.Run("deletes_pair", func(t *testing.T) {
		var deleted bool
		svc := NewFriendService(&fakeUserRepo{}, &fakeRelationRepo{
			isFriendFn: func(_ context.Context, _, _ string) (bool, error) { return true, nil },
			deleteFriendPairFn: func(_ context.Context, userUUID, peerUUID string) error {
				deleted = true
				assert.Equal(t, "u_1", userUUID)
				assert.Equal(t, "u_2", peerUUID)
				return nil
			},
		}, &fakeRequestRepo{})

		require.NoError(t, svc.RemoveContact(context.Background(), "u_1", "u_2"))
		assert.True(t, deleted)
	})
}

func TestFriendServiceCheckFriendStatus(t *testing.T) {
	initServiceTest()

	t.Run("friend_wins", func(t *testing.T) {
		svc := NewFriendService(&fakeUserRepo{}, &fakeRelationRepo{
			isFriendFn: func(_ context.Context, _, _ string) (bool, error) { return true, nil },
		}, &fakeRequestRepo{})
		resp, err := svc.CheckFriendStatus(context.Background(), "u_1", "u_2")
		require.NoError(t, err)
		assert.Equal(t, dto.FriendStatusFriend, resp.Status)
	})

	t.Run("pending_reverse_direction_counts", func(t *testing.T) {
		svc := NewFriendService(&fakeUserRepo{}, &fakeRelationRepo{}, &fakeRequestRepo{
			getPendingBetweenFn: func(_ context.Context, fromUUID, toUUID string) (*model.FriendRequest, error) {
				// 只有对方发给我的方向有 pending
				if fromUUID == "u_2" && toUUID == "u_1" {
					return &model.FriendRequest{Uuid: "fr_1"}, nil
				}
				return nil, nil
			},
		})
		resp, err := svc.CheckFriendStatus(context.Background(), "u_1", "u_2")
		require.NoError(t, err)
		assert.Equal(t, dto.FriendStatusPending, resp.Status)
	})

	t.Run("none", func(t *testing.T) {
		svc := NewFriendService(&fakeUserRepo{}, &fakeRelationRepo{}, &fakeRequestRepo{})
		resp, err := svc.CheckFriendStatus(context.Background(), "u_1", "u_2")
		require.NoError(t, err)
		assert.Equal(t, dto.FriendStatusNone, resp.Status)
	})
}

func TestFriendServiceBlock(t *testing.T) {
	initServiceTest()

	t.Run("already_blocked", func(t *testing.T) {
		svc := NewFriendService(&fakeUserRepo{}, &fakeRelationRepo{
			isBlockedFn: func(_ context.Context, _, _ string) (bool, error) { return true, nil },
		}, &fakeRequestRepo{})
		requireBizCode(t, svc.Block(context.Background(), "u_1", "u_2"), consts.CodeAlreadyBlocked)
	})

	t.Run("blocking_friend_unfriends_first", func(t *testing.T) {
		var unfriended, blocked bool
		svc := NewFriendService(&fakeUserRepo{}, &fakeRelationRepo{
			isFriendFn: func(_ context.Context, _, _ string) (bool, error) { return true, nil },
			deleteFriendPairFn: func(_ context.Context, _, _ string) error {
				unfriended = true
				return nil
			},
			blockFn: func(_ context.Context, userUUID, peerUUID string) error {
				blocked = true
				require.True(t, unfriended, "拉黑前必须先解除好友关系")
				assert.Equal(t, "u_1", userUUID)
				assert.Equal(t, "u_2", peerUUID)
				return nil
			},
		}, &fakeRequestRepo{})

		require.NoError(t, svc.Block(context.Background(), "u_1", "u_2"))
		assert.True(t, blocked)
	})

	t.Run("duplicate_block_row", func(t *testing.T) {
		svc := NewFriendService(&fakeUserRepo{}, &fakeRelationRepo{
			blockFn: func(_ context.Context, _, _ string) error {
				return repository.ErrDuplicateKey
			},
		}, &fakeRequestRepo{})
		requireBizCode(t, svc.Block(context.Background(), "u_1", "u_2"), consts.CodeAlreadyBlocked)
	})

	t.Run("unblock_idempotent", func(t *testing.T) {
		svc := NewFriendService(&fakeUserRepo{}, &fakeRelationRepo{}, &fakeRequestRepo{})
		require.NoError(t, svc.Unblock(context.Background(), "u_1", "u_2"))
	})
}

func TestFriendServiceLists(t *testing.T) {
	initServiceTest()

	t.Run("get_contacts", func(t *testing.T) {
		svc := NewFriendService(&fakeUserRepo{}, &fakeRelationRepo{
			getContactUUIDsFn: func(_ context.Context, _ string) ([]string, error) {
				return []string{"u_2", "u_3"}, nil
			},
		}, &fakeRequestRepo{})

		views, err := svc.GetContacts(context.Background(), "u_1")
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, "u_2", views[0].UUID)
	})

	t.Run("pending_requests_hydrates_senders", func(t *testing.T) {
		svc := NewFriendService(&fakeUserRepo{}, &fakeRelationRepo{}, &fakeRequestRepo{
			getPendingByToFn: func(_ context.Context, toUUID string) ([]*model.FriendRequest, error) {
				assert.Equal(t, "u_1", toUUID)
				return []*model.FriendRequest{
					{Uuid: "fr_1", FromUuid: "u_2", ToUuid: "u_1", Message: "hi"},
				}, nil
			},
		})

		views, err := svc.GetPendingRequests(context.Background(), "u_1")
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "fr_1", views[0].UUID)
		require.NotNil(t, views[0].From)
		assert.Equal(t, "u_2", views[0].From.UUID)
	})

	t.Run("list_error", func(t *testing.T) {
		svc := NewFriendService(&fakeUserRepo{}, &fakeRelationRepo{
			getBlockedUUIDsFn: func(_ context.Context, _ string) ([]string, error) {
				return nil, errors.New("db failed")
			},
		}, &fakeRequestRepo{})
		views, err := svc.GetBlockedUsers(context.Background(), "u_1")
		require.Nil(t, views)
		requireBizCode(t, err, consts.CodeInternalError)
	})
}
