package service

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"AiBeiTongServer/config"
	"AiBeiTongServer/model"
	"AiBeiTongServer/pkg/errs"
	"AiBeiTongServer/pkg/jwtauth"
	"AiBeiTongServer/pkg/logger"
	"AiBeiTongServer/pkg/util"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var serviceTestOnce sync.Once

func initServiceTest() {
	serviceTestOnce.Do(func() {
		logger.ReplaceGlobal(zap.NewNop())
		util.InitSnowflake(1)
		jwtauth.Init(config.JWTConfig{
			Secret:       "test-secret",
			Issuer:       "test",
			AccessExpire: time.Hour,
		})
	})
}

func requireBizCode(t *testing.T, err error, wantCode int32) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, wantCode, errs.CodeOf(err))
}

// ==================== 认证 ====================

type fakeAuthRepo struct {
	getByUsernameFn     func(context.Context, string) (*model.UserInfo, error)
	existsByUsernameFn  func(context.Context, string) (bool, error)
	createFn            func(context.Context, *model.UserInfo) (*model.UserInfo, error)
	storeAccessTokenFn  func(context.Context, string, string, string, time.Duration) error
	getAccessTokenFn    func(context.Context, string, string) (string, error)
	deleteAccessTokenFn func(context.Context, string, string) error
}

func (f *fakeAuthRepo) GetByUsername(ctx context.Context, username string) (*model.UserInfo, error) {
	if f.getByUsernameFn == nil {
		return nil, nil
	}
	return f.getByUsernameFn(ctx, username)
}

func (f *fakeAuthRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if f.existsByUsernameFn == nil {
		return false, nil
	}
	return f.existsByUsernameFn(ctx, username)
}

func (f *fakeAuthRepo) Create(ctx context.Context, user *model.UserInfo) (*model.UserInfo, error) {
	if f.createFn == nil {
		return user, nil
	}
	return f.createFn(ctx, user)
}

func (f *fakeAuthRepo) StoreAccessToken(ctx context.Context, userUUID, deviceID, token string, expire time.Duration) error {
	if f.storeAccessTokenFn == nil {
		return nil
	}
	return f.storeAccessTokenFn(ctx, userUUID, deviceID, token, expire)
}

func (f *fakeAuthRepo) GetAccessToken(ctx context.Context, userUUID, deviceID string) (string, error) {
	if f.getAccessTokenFn == nil {
		return "", nil
	}
	return f.getAccessTokenFn(ctx, userUUID, deviceID)
}

func (f *fakeAuthRepo) DeleteAccessToken(ctx context.Context, userUUID, deviceID string) error {
	if f.deleteAccessTokenFn == nil {
		return nil
	}
	return f.deleteAccessTokenFn(ctx, userUUID, deviceID)
}

// ==================== 用户 ====================

type fakeUserRepo struct {
	getByUUIDFn     func(context.Context, string) (*model.UserInfo, error)
	batchGetFn      func(context.Context, []string) ([]*model.UserInfo, error)
	updateProfileFn func(context.Context, string, map[string]interface{}) error
	updateAvatarFn  func(context.Context, string, string) error
	searchFn        func(context.Context, string, int) ([]*model.UserInfo, error)
}

func (f *fakeUserRepo) GetByUUID(ctx context.Context, uuid string) (*model.UserInfo, error) {
	if f.getByUUIDFn == nil {
		return &model.UserInfo{Uuid: uuid, Nickname: uuid}, nil
	}
	return f.getByUUIDFn(ctx, uuid)
}

func (f *fakeUserRepo) BatchGetByUUIDs(ctx context.Context, uuids []string) ([]*model.UserInfo, error) {
	if f.batchGetFn == nil {
		users := make([]*model.UserInfo, 0, len(uuids))
		for _, u := range uuids {
			users = append(users, &model.UserInfo{Uuid: u, Nickname: u})
		}
		return users, nil
	}
	return f.batchGetFn(ctx, uuids)
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, userUUID string, updates map[string]interface{}) error {
	if f.updateProfileFn == nil {
		return nil
	}
	return f.updateProfileFn(ctx, userUUID, updates)
}

func (f *fakeUserRepo) UpdateAvatar(ctx context.Context, userUUID, avatar string) error {
	if f.updateAvatarFn == nil {
		return nil
	}
	return f.updateAvatarFn(ctx, userUUID, avatar)
}

func (f *fakeUserRepo) Search(ctx context.Context, keyword string, limit int) ([]*model.UserInfo, error) {
	if f.searchFn == nil {
		return nil, nil
	}
	return f.searchFn(ctx, keyword, limit)
}

// ==================== 关系 ====================

type fakeRelationRepo struct {
	createFriendPairFn func(context.Context, string, string) error
	deleteFriendPairFn func(context.Context, string, string) error
	isFriendFn         func(context.Context, string, string) (bool, error)
	getContactUUIDsFn  func(context.Context, string) ([]string, error)
	blockFn            func(context.Context, string, string) error
	unblockFn          func(context.Context, string, string) error
	isBlockedFn        func(context.Context, string, string) (bool, error)
	getBlockedUUIDsFn  func(context.Context, string) ([]string, error)
}

func (f *fakeRelationRepo) CreateFriendPair(ctx context.Context, userUUID, peerUUID string) error {
	if f.createFriendPairFn == nil {
		return nil
	}
	return f.createFriendPairFn(ctx, userUUID, peerUUID)
}

func (f *fakeRelationRepo) DeleteFriendPair(ctx context.Context, userUUID, peerUUID string) error {
	if f.deleteFriendPairFn == nil {
		return nil
	}
	return f.deleteFriendPairFn(ctx, userUUID, peerUUID)
}

func (f *fakeRelationRepo) IsFriend(ctx context.Context, userUUID, peerUUID string) (bool, error) {
	if f.isFriendFn == nil {
		return false, nil
	}
	return f.isFriendFn(ctx, userUUID, peerUUID)
}

func (f *fakeRelationRepo) GetContactUUIDs(ctx context.Context, userUUID string) ([]string, error) {
	if f.getContactUUIDsFn == nil {
		return []string{}, nil
	}
	return f.getContactUUIDsFn(ctx, userUUID)
}

func (f *fakeRelationRepo) Block(ctx context.Context, userUUID, peerUUID string) error {
	if f.blockFn == nil {
		return nil
	}
	return f.blockFn(ctx, userUUID, peerUUID)
}

func (f *fakeRelationRepo) Unblock(ctx context.Context, userUUID, peerUUID string) error {
	if f.unblockFn == nil {
		return nil
	}
	return f.unblockFn(ctx, userUUID, peerUUID)
}

func (f *fakeRelationRepo) IsBlocked(ctx context.Context, userUUID, peerUUID string) (bool, error) {
	if f.isBlockedFn == nil {
		return false, nil
	}
	return f.isBlockedFn(ctx, userUUID, peerUUID)
}

func (f *fakeRelationRepo) GetBlockedUUIDs(ctx context.Context, userUUID string) ([]string, error) {
	if f.getBlockedUUIDsFn == nil {
		return []string{}, nil
	}
	return f.getBlockedUUIDsFn(ctx, userUUID)
}

// ==================== 好友申请 ====================

type fakeRequestRepo struct {
	createFn            func(context.Context, *model.FriendRequest) (*model.FriendRequest, error)
	getByUUIDFn         func(context.Context, string) (*model.FriendRequest, error)
	getPendingByToFn    func(context.Context, string) ([]*model.FriendRequest, error)
	getPendingBetweenFn func(context.Context, string, string) (*model.FriendRequest, error)
	updateStatusFn      func(context.Context, string, int8) error
}

func (f *fakeRequestRepo) Create(ctx context.Context, req *model.FriendRequest) (*model.FriendRequest, error) {
	if f.createFn == nil {
		return req, nil
	}
	return f.createFn(ctx, req)
}

func (f *fakeRequestRepo) GetByUUID(ctx context.Context, uuid string) (*model.FriendRequest, error) {
	if f.getByUUIDFn == nil {
		return nil, nil
	}
	return f.getByUUIDFn(ctx, uuid)
}

func (f *fakeRequestRepo) GetPendingByTo(ctx context.Context, toUUID string) ([]*model.FriendRequest, error) {
	if f.getPendingByToFn == nil {
		return nil, nil
	}
	return f.getPendingByToFn(ctx, toUUID)
}

func (f *fakeRequestRepo) GetPendingBetween(ctx context.Context, fromUUID, toUUID string) (*model.FriendRequest, error) {
	if f.getPendingBetweenFn == nil {
		return nil, nil
	}
	return f.getPendingBetweenFn(ctx, fromUUID, toUUID)
}

func (f *fakeRequestRepo) UpdateStatus(ctx context.Context, uuid string, status int8) error {
	if f.updateStatusFn == nil {
		return nil
	}
	return f.updateStatusFn(ctx, uuid, status)
}

// ==================== 帖子 ====================

type fakePostRepo struct {
	createFn            func(context.Context, *model.Post) (*model.Post, error)
	getByUUIDFn         func(context.Context, string) (*model.Post, error)
	listFn              func(context.Context, int, int) ([]*model.Post, error)
	listByUserFn        func(context.Context, string, int) ([]*model.Post, error)
	deleteFn            func(context.Context, string) error
	addCommentFn        func(context.Context, *model.Comment) (*model.Comment, error)
	getCommentFn        func(context.Context, string) (*model.Comment, error)
	deleteCommentFn     func(context.Context, string) error
	listCommentsFn      func(context.Context, string) ([]*model.Comment, error)
	toggleLikeFn        func(context.Context, string, string) (bool, int, error)
	listLikeUserUUIDsFn func(context.Context, string) ([]string, error)
}

func (f *fakePostRepo) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	if f.createFn == nil {
		return post, nil
	}
	return f.createFn(ctx, post)
}

func (f *fakePostRepo) GetByUUID(ctx context.Context, uuid string) (*model.Post, error) {
	if f.getByUUIDFn == nil {
		return &model.Post{Uuid: uuid}, nil
	}
	return f.getByUUIDFn(ctx, uuid)
}

func (f *fakePostRepo) List(ctx context.Context, limit, offset int) ([]*model.Post, error) {
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(ctx, limit, offset)
}

func (f *fakePostRepo) ListByUser(ctx context.Context, userUUID string, limit int) ([]*model.Post, error) {
	if f.listByUserFn == nil {
		return nil, nil
	}
	return f.listByUserFn(ctx, userUUID, limit)
}

func (f *fakePostRepo) Delete(ctx context.Context, uuid string) error {
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(ctx, uuid)
}

func (f *fakePostRepo) AddComment(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	if f.addCommentFn == nil {
		return comment, nil
	}
	return f.addCommentFn(ctx, comment)
}

func (f *fakePostRepo) GetComment(ctx context.Context, uuid string) (*model.Comment, error) {
	if f.getCommentFn == nil {
		return nil, nil
	}
	return f.getCommentFn(ctx, uuid)
}

func (f *fakePostRepo) DeleteComment(ctx context.Context, uuid string) error {
	if f.deleteCommentFn == nil {
		return nil
	}
	return f.deleteCommentFn(ctx, uuid)
}

func (f *fakePostRepo) ListComments(ctx context.Context, postUUID string) ([]*model.Comment, error) {
	if f.listCommentsFn == nil {
		return nil, nil
	}
	return f.listCommentsFn(ctx, postUUID)
}

func (f *fakePostRepo) ToggleLike(ctx context.Context, postUUID, userUUID string) (bool, int, error) {
	if f.toggleLikeFn == nil {
		return false, 0, nil
	}
	return f.toggleLikeFn(ctx, postUUID, userUUID)
}

func (f *fakePostRepo) ListLikeUserUUIDs(ctx context.Context, postUUID string) ([]string, error) {
	if f.listLikeUserUUIDsFn == nil {
		return nil, nil
	}
	return f.listLikeUserUUIDsFn(ctx, postUUID)
}

// ==================== 互动 ====================

type fakeInteractionRepo struct {
	toggleFavoriteFn func(context.Context, string, string, string) (bool, error)
	listFavoritesFn  func(context.Context, string) ([]*model.FavoriteItem, error)
	togglePinFn      func(context.Context, string, string) (bool, error)
	listPinsFn       func(context.Context, string) ([]*model.PinnedChat, error)
}

func (f *fakeInteractionRepo) ToggleFavorite(ctx context.Context, userUUID, itemUUID, itemType string) (bool, error) {
	if f.toggleFavoriteFn == nil {
		return false, nil
	}
	return f.toggleFavoriteFn(ctx, userUUID, itemUUID, itemType)
}

func (f *fakeInteractionRepo) ListFavorites(ctx context.Context, userUUID string) ([]*model.FavoriteItem, error) {
	if f.listFavoritesFn == nil {
		return nil, nil
	}
	return f.listFavoritesFn(ctx, userUUID)
}

func (f *fakeInteractionRepo) TogglePin(ctx context.Context, userUUID, peerUUID string) (bool, error) {
	if f.togglePinFn == nil {
		return false, nil
	}
	return f.togglePinFn(ctx, userUUID, peerUUID)
}

func (f *fakeInteractionRepo) ListPins(ctx context.Context, userUUID string) ([]*model.PinnedChat, error) {
	if f.listPinsFn == nil {
		return nil, nil
	}
	return f.listPinsFn(ctx, userUUID)
}

// ==================== 消息 ====================

type fakeMessageRepo struct {
	createFn           func(context.Context, *model.Message) (*model.Message, error)
	getByUUIDFn        func(context.Context, string) (*model.Message, error)
	listBetweenFn      func(context.Context, string, string, int) ([]*model.Message, error)
	listLatestByPeerFn func(context.Context, string) ([]*model.Message, error)
	recallFn           func(context.Context, string) error
	deleteFn           func(context.Context, string) error
}

func (f *fakeMessageRepo) Create(ctx context.Context, msg *model.Message) (*model.Message, error) {
	if f.createFn == nil {
		return msg, nil
	}
	return f.createFn(ctx, msg)
}

func (f *fakeMessageRepo) GetByUUID(ctx context.Context, uuid string) (*model.Message, error) {
	if f.getByUUIDFn == nil {
		return nil, nil
	}
	return f.getByUUIDFn(ctx, uuid)
}

func (f *fakeMessageRepo) ListBetween(ctx context.Context, userUUID, peerUUID string, limit int) ([]*model.Message, error) {
	if f.listBetweenFn == nil {
		return nil, nil
	}
	return f.listBetweenFn(ctx, userUUID, peerUUID, limit)
}

func (f *fakeMessageRepo) ListLatestByPeer(ctx context.Context, userUUID string) ([]*model.Message, error) {
	if f.listLatestByPeerFn == nil {
		return nil, nil
	}
	return f.listLatestByPeerFn(ctx, userUUID)
}

func (f *fakeMessageRepo) Recall(ctx context.Context, uuid string) error {
	if f.recallFn == nil {
		return nil
	}
	return f.recallFn(ctx, uuid)
}

func (f *fakeMessageRepo) Delete(ctx context.Context, uuid string) error {
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(ctx, uuid)
}

// ==================== 职位 ====================

type fakeJobRepo struct {
	createFn            func(context.Context, *model.Job) (*model.Job, error)
	getByUUIDFn         func(context.Context, string) (*model.Job, error)
	listFn              func(context.Context, string, string, int, int) ([]*model.Job, error)
	createApplicationFn func(context.Context, *model.JobApplication) (*model.JobApplication, error)
	hasAppliedFn        func(context.Context, string, string) (bool, error)
}

func (f *fakeJobRepo) Create(ctx context.Context, job *model.Job) (*model.Job, error) {
	if f.createFn == nil {
		return job, nil
	}
	return f.createFn(ctx, job)
}

func (f *fakeJobRepo) GetByUUID(ctx context.Context, uuid string) (*model.Job, error) {
	if f.getByUUIDFn == nil {
		return &model.Job{Uuid: uuid}, nil
	}
	return f.getByUUIDFn(ctx, uuid)
}

func (f *fakeJobRepo) List(ctx context.Context, keyword, location string, limit, offset int) ([]*model.Job, error) {
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(ctx, keyword, location, limit, offset)
}

func (f *fakeJobRepo) CreateApplication(ctx context.Context, app *model.JobApplication) (*model.JobApplication, error) {
	if f.createApplicationFn == nil {
		return app, nil
	}
	return f.createApplicationFn(ctx, app)
}

func (f *fakeJobRepo) HasApplied(ctx context.Context, jobUUID, userUUID string) (bool, error) {
	if f.hasAppliedFn == nil {
		return false, nil
	}
	return f.hasAppliedFn(ctx, jobUUID, userUUID)
}

// ==================== 外设 ====================

type fakeMailer struct {
	sendFn func(to, subject, htmlBody string) error
}

func (f *fakeMailer) Send(to, subject, htmlBody string) error {
	if f.sendFn == nil {
		return nil
	}
	return f.sendFn(to, subject, htmlBody)
}

type fakeStorage struct {
	uploadFn func(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	removeFn func(ctx context.Context, objectName string) error
}

func (f *fakeStorage) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if f.uploadFn == nil {
		return "http://storage/" + objectName, nil
	}
	return f.uploadFn(ctx, objectName, reader, size, contentType)
}

func (f *fakeStorage) Remove(ctx context.Context, objectName string) error {
	if f.removeFn == nil {
		return nil
	}
	return f.removeFn(ctx, objectName)
}

type fakeGenerator struct {
	generateTextFn func(ctx context.Context, prompt string) (string, error)
	generateJSONFn func(ctx context.Context, prompt string) (string, error)
}

func (f *fakeGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	if f.generateTextFn == nil {
		return "", nil
	}
	return f.generateTextFn(ctx, prompt)
}

func (f *fakeGenerator) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	if f.generateJSONFn == nil {
		return "{}", nil
	}
	return f.generateJSONFn(ctx, prompt)
}
