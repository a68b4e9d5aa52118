package service

import (
	"context"
	"testing"
	"time"

	"AiBeiTongServer/consts"
	"AiBeiTongServer/internal/dto"
	"AiBeiTongServer/internal/repository"
	"AiBeiTongServer/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInteractionServiceToggleFavorite(t *testing.T) {
	initServiceTest()

	svc := NewInteractionService(&fakeInteractionRepo{
		toggleFavoriteFn: func(_ context.Context, userUUID, itemUUID, itemType string) (bool, error) {
			assert.Equal(t, "u_1", userUUID)
			assert.Equal(t, "p_1", itemUUID)
			assert.Equal(t, "post", itemType)
			return true, nil
		},
	}, &fakeUserRepo{}, &fakePostRepo{}, &fakeJobRepo{})

	resp, err := svc.ToggleFavorite(context.Background(), "u_1", &dto.ToggleFavoriteRequest{
		ItemUUID: "p_1", ItemType: "post",
	})
	require.NoError(t, err)
	assert.True(t, resp.Favorited)
}

func TestInteractionServiceGetFavorites(t *testing.T) {
	initServiceTest()

	now := time.Now()

	t.Run("hydrates_post_and_job_items", func(t *testing.T) {
		svc := NewInteractionService(&fakeInteractionRepo{
			listFavoritesFn: func(_ context.Context, _ string) ([]*model.FavoriteItem, error) {
				return []*model.FavoriteItem{
					{UserUuid: "u_1", ItemUuid: "p_1", ItemType: "post", CreatedAt: now},
					{UserUuid: "u_1", ItemUuid: "job_1", ItemType: "job", CreatedAt: now},
				}, nil
			},
		}, &fakeUserRepo{}, &fakePostRepo{
			getByUUIDFn: func(_ context.Context, uuid string) (*model.Post, error) {
				return &model.Post{Uuid: uuid, UserUuid: "u_2", Content: "招聘"}, nil
			},
		}, &fakeJobRepo{
			getByUUIDFn: func(_ context.Context, uuid string) (*model.Job, error) {
				return &model.Job{Uuid: uuid, UserUuid: "u_3", Title: "司机"}, nil
			},
		})

		views, err := svc.GetFavorites(context.Background(), "u_1")
		require.NoError(t, err)
		require.Len(t, views, 2)

		require.NotNil(t, views[0].Post)
		assert.Equal(t, "p_1", views[0].Post.UUID)
		assert.Equal(t, "u_2", views[0].Post.Author.UUID)
		assert.Nil(t, views[0].Job)
		assert.Equal(t, now.UnixMilli(), views[0].CreatedAt)

		require.NotNil(t, views[1].Job)
		assert.Equal(t, "司机", views[1].Job.Title)
		assert.Nil(t, views[1].Post)
	})

	t.Run("deleted_items_skipped", func(t *testing.T) {
		svc := NewInteractionService(&fakeInteractionRepo{
			listFavoritesFn: func(_ context.Context, _ string) ([]*model.FavoriteItem, error) {
				return []*model.FavoriteItem{
					{UserUuid: "u_1", ItemUuid: "p_gone", ItemType: "post", CreatedAt: now},
					{UserUuid: "u_1", ItemUuid: "job_1", ItemType: "job", CreatedAt: now},
				}, nil
			},
		}, &fakeUserRepo{}, &fakePostRepo{
			getByUUIDFn: func(_ context.Context, _ string) (*model.Post, error) {
				return nil, repository.ErrRecordNotFound
			},
		}, &fakeJobRepo{})

		views, err := svc.GetFavorites(context.Background(), "u_1")
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "job_1", views[0].ItemUUID)
	})
}

func TestInteractionServiceTogglePin(t *testing.T) {
	initServiceTest()

	t.Run("peer_not_found", func(t *testing.T) {
		svc := NewInteractionService(&fakeInteractionRepo{}, &fakeUserRepo{
			getByUUIDFn: func(_ context.Context, _ string) (*model.UserInfo, error) {
				return nil, nil
			},
		}, &fakePostRepo{}, &fakeJobRepo{})
		resp, err := svc.TogglePin(context.Background(), "u_1", &dto.TogglePinRequest{PeerUUID: "u_ghost"})
		require.Nil(t, resp)
		requireBizCode(t, err, consts.CodeUserNotFound)
	})

	t.Run("toggle", func(t *testing.T) {
		svc := NewInteractionService(&fakeInteractionRepo{
			togglePinFn: func(_ context.Context, userUUID, peerUUID string) (bool, error) {
				assert.Equal(t, "u_1", userUUID)
				assert.Equal(t, "u_2", peerUUID)
				return true, nil
			},
		}, &fakeUserRepo{}, &fakePostRepo{}, &fakeJobRepo{})

		resp, err := svc.TogglePin(context.Background(), "u_1", &dto.TogglePinRequest{PeerUUID: "u_2"})
		require.NoError(t, err)
		assert.True(t, resp.Pinned)
	})
}
