package service

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"testing"
	"time"

	"AiBeiTongServer/consts"
	"AiBeiTongServer/internal/dto"
	"AiBeiTongServer/model"
	"AiBeiTongServer/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestUserServiceGetUser(t *testing.T) {
	initServiceTest()

	t.Run("not_found", func(t *testing.T) {
		svc := NewUserService(&fakeUserRepo{
			getByUUIDFn: func(_ context.Context, _ string) (*model.UserInfo, error) {
				return nil, nil
			},
		}, &fakeAuthRepo{}, &fakeRelationRepo{}, nil)

		view, err := svc.GetUser(context.Background(), "u_1", "u_ghost")
		require.Nil(t, view)
		requireBizCode(t, err, consts.CodeUserNotFound)
	})

	t.Run("self_includes_privacy_and_contacts", func(t *testing.T) {
		svc := NewUserService(&fakeUserRepo{
			getByUUIDFn: func(_ context.Context, uuid string) (*model.UserInfo, error) {
				return &model.UserInfo{Uuid: uuid, Nickname: "me", Phone: "0912345"}, nil
			},
		}, &fakeAuthRepo{}, &fakeRelationRepo{
			getContactUUIDsFn: func(_ context.Context, _ string) ([]string, error) {
				return []string{"u_2", "u_3"}, nil
			},
		}, nil)

		view, err := svc.GetUser(context.Background(), "u_1", "u_1")
		require.NoError(t, err)
		require.NotNil(t, view.Privacy)
		assert.Equal(t, []string{"u_2", "u_3"}, view.Contacts)
	})

	t.Run("other_user_hides_private_fields", func(t *testing.T) {
		svc := NewUserService(&fakeUserRepo{
			getByUUIDFn: func(_ context.Context, uuid string) (*model.UserInfo, error) {
				return &model.UserInfo{Uuid: uuid, Nickname: "peer"}, nil
			},
		}, &fakeAuthRepo{}, &fakeRelationRepo{}, nil)

		view, err := svc.GetUser(context.Background(), "u_1", "u_2")
		require.NoError(t, err)
		assert.Nil(t, view.Privacy)
		assert.Nil(t, view.Contacts)
	})
}

func TestUserServiceUpdateProfileUsernameThrottle(t *testing.T) {
	initServiceTest()

	t.Run("within_30_days_rejected_with_remaining_days", func(t *testing.T) {
		lastChange := time.Now().Add(-10 * 24 * time.Hour)
		svc := NewUserService(&fakeUserRepo{
			getByUUIDFn: func(_ context.Context, uuid string) (*model.UserInfo, error) {
				return &model.UserInfo{Uuid: uuid, Username: "old", LastUsernameChange: &lastChange}, nil
			},
		}, &fakeAuthRepo{}, &fakeRelationRepo{}, nil)

		view, err := svc.UpdateProfile(context.Background(), "u_1", &dto.UpdateProfileRequest{Username: strPtr("new")})
		require.Nil(t, view)
		requireBizCode(t, err, consts.CodeUsernameRateLimited)

		// 剩余 20 天整，消息里要带具体天数
		remaining := UsernameChangeInterval - time.Since(lastChange)
		days := int(math.Ceil(remaining.Hours() / 24))
		assert.Equal(t, fmt.Sprintf("账号修改过于频繁，请%d天后再试", days), errs.MessageOf(err))
	})

	t.Run("after_30_days_allowed_and_timestamp_written", func(t *testing.T) {
		lastChange := time.Now().Add(-31 * 24 * time.Hour)
		var updates map[string]interface{}
		svc := NewUserService(&fakeUserRepo{
			getByUUIDFn: func(_ context.Context, uuid string) (*model.UserInfo, error) {
				return &model.UserInfo{Uuid: uuid, Username: "old", LastUsernameChange: &lastChange}, nil
			},
			updateProfileFn: func(_ context.Context, _ string, u map[string]interface{}) error {
				updates = u
				return nil
			},
		}, &fakeAuthRepo{}, &fakeRelationRepo{}, nil)

		_, err := svc.UpdateProfile(context.Background(), "u_1", &dto.UpdateProfileRequest{Username: strPtr("new")})
		require.NoError(t, err)
		assert.Equal(t, "new", updates["username"])
		assert.Contains(t, updates, "last_username_change")
	})

	t.Run("same_username_not_throttled", func(t *testing.T) {
		lastChange := time.Now().Add(-time.Hour)
		var updates map[string]interface{}
		svc := NewUserService(&fakeUserRepo{
			getByUUIDFn: func(_ context.Context, uuid string) (*model.UserInfo, error) {
				return &model.UserInfo{Uuid: uuid, Username: "same", LastUsernameChange: &lastChange}, nil
			},
			updateProfileFn: func(_ context.Context, _ string, u map[string]interface{}) error {
				updates = u
				return nil
			},
		}, &fakeAuthRepo{}, &fakeRelationRepo{}, nil)

		_, err := svc.UpdateProfile(context.Background(), "u_1", &dto.UpdateProfileRequest{
			Username: strPtr("same"),
			Bio:      strPtr("新简介"),
		})
		require.NoError(t, err)
		assert.NotContains(t, updates, "username")
		assert.Equal(t, "新简介", updates["bio"])
	})

	t.Run("username_taken", func(t *testing.T) {
		svc := NewUserService(&fakeUserRepo{
			getByUUIDFn: func(_ context.Context, uuid string) (*model.UserInfo, error) {
				return &model.UserInfo{Uuid: uuid, Username: "old"}, nil
			},
		}, &fakeAuthRepo{
			existsByUsernameFn: func(_ context.Context, _ string) (bool, error) {
				return true, nil
			},
		}, &fakeRelationRepo{}, nil)

		view, err := svc.UpdateProfile(context.Background(), "u_1", &dto.UpdateProfileRequest{Username: strPtr("taken")})
		require.Nil(t, view)
		requireBizCode(t, err, consts.CodeUserAlreadyExist)
	})
}

func TestUserServiceUpdatePrivacyMergesKeys(t *testing.T) {
	initServiceTest()

	var updates map[string]interface{}
	svc := NewUserService(&fakeUserRepo{
		updateProfileFn: func(_ context.Context, _ string, u map[string]interface{}) error {
			updates = u
			return nil
		},
	}, &fakeAuthRepo{}, &fakeRelationRepo{}, nil)

	// 只传一个键，其余键不应出现在更新里
	_, err := svc.UpdatePrivacy(context.Background(), "u_1", &dto.UpdatePrivacyRequest{
		RequireFriendVerify: boolPtr(false),
	})
	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, false, updates["require_friend_verify"])
}

func TestUserServiceSearchExcludesSelf(t *testing.T) {
	initServiceTest()

	svc := NewUserService(&fakeUserRepo{
		searchFn: func(_ context.Context, keyword string, limit int) ([]*model.UserInfo, error) {
			assert.Equal(t, "au", keyword)
			assert.Equal(t, 20, limit)
			return []*model.UserInfo{
				{Uuid: "u_1", Nickname: "me"},
				{Uuid: "u_2", Nickname: "aung"},
			}, nil
		},
	}, &fakeAuthRepo{}, &fakeRelationRepo{}, nil)

	views, err := svc.SearchUsers(context.Background(), "u_1", "au", 20)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "u_2", views[0].UUID)
}

func TestUserServiceUploadAvatar(t *testing.T) {
	initServiceTest()

	t.Run("bad_extension", func(t *testing.T) {
		svc := NewUserService(&fakeUserRepo{}, &fakeAuthRepo{}, &fakeRelationRepo{}, &fakeStorage{})
		resp, err := svc.UploadAvatar(context.Background(), "u_1", "evil.exe", "application/octet-stream", 100, strings.NewReader("x"))
		require.Nil(t, resp)
		requireBizCode(t, err, consts.CodeUploadTypeError)
	})

	t.Run("too_large", func(t *testing.T) {
		svc := NewUserService(&fakeUserRepo{}, &fakeAuthRepo{}, &fakeRelationRepo{}, &fakeStorage{})
		resp, err := svc.UploadAvatar(context.Background(), "u_1", "pic.png", "image/png", 6<<20, strings.NewReader("x"))
		require.Nil(t, resp)
		requireBizCode(t, err, consts.CodeUploadTooLarge)
	})

	t.Run("storage_unavailable", func(t *testing.T) {
		svc := NewUserService(&fakeUserRepo{}, &fakeAuthRepo{}, &fakeRelationRepo{}, nil)
		resp, err := svc.UploadAvatar(context.Background(), "u_1", "pic.png", "image/png", 100, strings.NewReader("x"))
		require.Nil(t, resp)
		requireBizCode(t, err, consts.CodeInternalError)
	})

	t.Run("success_updates_avatar", func(t *testing.T) {
		var savedURL string
		svc := NewUserService(&fakeUserRepo{
			updateAvatarFn: func(_ context.Context, userUUID, avatar string) error {
				assert.Equal(t, "u_1", userUUID)
				savedURL = avatar
				return nil
			},
		}, &fakeAuthRepo{}, &fakeRelationRepo{}, &fakeStorage{
			uploadFn: func(_ context.Context, objectName string, _ io.Reader, size int64, contentType string) (string, error) {
				assert.True(t, strings.HasPrefix(objectName, "avatar/u_1/"))
				assert.True(t, strings.HasSuffix(objectName, ".png"))
				assert.Equal(t, int64(100), size)
				assert.Equal(t, "image/png", contentType)
				return "http://cdn/" + objectName, nil
			},
		})

		resp, err := svc.UploadAvatar(context.Background(), "u_1", "pic.png", "image/png", 100, strings.NewReader("x"))
		require.NoError(t, err)
		assert.Equal(t, savedURL, resp.Avatar)
	})

	t.Run("background_writes_profile_field", func(t *testing.T) {
		var updates map[string]interface{}
		svc := NewUserService(&fakeUserRepo{
			updateProfileFn: func(_ context.Context, _ string, u map[string]interface{}) error {
				updates = u
				return nil
			},
		}, &fakeAuthRepo{}, &fakeRelationRepo{}, &fakeStorage{
			uploadFn: func(_ context.Context, objectName string, _ io.Reader, _ int64, _ string) (string, error) {
				assert.True(t, strings.HasPrefix(objectName, "background/u_1/"))
				return "http://cdn/" + objectName, nil
			},
		})

		resp, err := svc.UploadBackground(context.Background(), "u_1", "bg.jpg", "image/jpeg", 100, strings.NewReader("x"))
		require.NoError(t, err)
		assert.Equal(t, updates["background_image"], resp.BackgroundImage)
	})
}
