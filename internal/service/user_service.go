package service

import (
	"context"
	"errors"
	"io"
	"math"
	"path"
	"strings"
	"time"

	"AiBeiTongServer/consts"
	"AiBeiTongServer/internal/converter"
	"AiBeiTongServer/internal/dto"
	"AiBeiTongServer/internal/repository"
	"AiBeiTongServer/pkg/errs"
	"AiBeiTongServer/pkg/logger"
	"AiBeiTongServer/pkg/minio"
	"AiBeiTongServer/pkg/util"
)

// UsernameChangeInterval 登录名修改间隔
const UsernameChangeInterval = 30 * 24 * time.Hour

// 头像上传限制
const (
	avatarMaxSize = 5 << 20 // 5MB
)

var avatarAllowedExt = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".webp": {}, ".gif": {},
}

// userServiceImpl 用户服务实现
type userServiceImpl struct {
	userRepo     repository.IUserRepository
	authRepo     repository.IAuthRepository
	relationRepo repository.IRelationRepository
	storage      minio.ObjectStorage
}

// NewUserService 创建用户服务实例
func NewUserService(
	userRepo repository.IUserRepository,
	authRepo repository.IAuthRepository,
	relationRepo repository.IRelationRepository,
	storage minio.ObjectStorage,
) UserService {
	return &userServiceImpl{
		userRepo:     userRepo,
		authRepo:     authRepo,
		relationRepo: relationRepo,
		storage:      storage,
	}
}

// GetUser 查询用户
func (s *userServiceImpl) GetUser(ctx context.Context, selfUUID, targetUUID string) (*dto.UserView, error) {
	user, err := s.userRepo.GetByUUID(ctx, targetUUID)
	if err != nil {
		logger.Error(ctx, "查询用户失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}
	if user == nil {
		return nil, errs.New(consts.CodeUserNotFound)
	}

	isSelf := selfUUID == targetUUID
	var contacts []string
	if isSelf {
		contacts, err = s.relationRepo.GetContactUUIDs(ctx, selfUUID)
		if err != nil {
			logger.Warn(ctx, "查询联系人失败，降级为空列表", logger.ErrorField("error", err))
			contacts = []string{}
		}
	}
	return converter.UserToView(user, isSelf, contacts), nil
}

// UpdateProfile 更新资料
// 业务流程：
//  1. 改 username 时检查 30 天间隔与重名
//  2. 只更新传入的键
//  3. 返回最新视图
func (s *userServiceImpl) UpdateProfile(ctx context.Context, userUUID string, req *dto.UpdateProfileRequest) (*dto.UserView, error) {
	user, err := s.userRepo.GetByUUID(ctx, userUUID)
	if err != nil {
		logger.Error(ctx, "查询用户失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}
	if user == nil {
		return nil, errs.New(consts.CodeUserNotFound)
	}

	updates := make(map[string]interface{})

	// 1. username 特殊处理：30 天限改一次
	if req.Username != nil && *req.Username != user.Username {
		if user.LastUsernameChange != nil {
			elapsed := time.Since(*user.LastUsernameChange)
			if elapsed < UsernameChangeInterval {
				remaining := UsernameChangeInterval - elapsed
				days := int(math.Ceil(remaining.Hours() / 24))
				return nil, errs.Newf(consts.CodeUsernameRateLimited, "账号修改过于频繁，请%d天后再试", days)
			}
		}
		exists, err := s.authRepo.ExistsByUsername(ctx, *req.Username)
		if err != nil {
			logger.Error(ctx, "检查登录名失败", logger.ErrorField("error", err))
			return nil, errs.New(consts.CodeInternalError)
		}
		if exists {
			return nil, errs.New(consts.CodeUserAlreadyExist)
		}
		updates["username"] = *req.Username
		updates["last_username_change"] = time.Now()
	}

	// 2. 其余字段按传入更新
	if req.Nickname != nil {
		updates["nickname"] = *req.Nickname
	}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.BackgroundImage != nil {
		updates["background_image"] = *req.BackgroundImage
	}

	if len(updates) > 0 {
		if err := s.userRepo.UpdateProfile(ctx, userUUID, updates); err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return nil, errs.New(consts.CodeUserAlreadyExist)
			}
			logger.Error(ctx, "更新资料失败", logger.ErrorField("error", err))
			return nil, errs.New(consts.CodeInternalError)
		}
	}

	return s.GetUser(ctx, userUUID, userUUID)
}

// UpdatePrivacy 逐键合并隐私设置，未传的键保持原值
func (s *userServiceImpl) UpdatePrivacy(ctx context.Context, userUUID string, req *dto.UpdatePrivacyRequest) (*dto.UserView, error) {
	updates := make(map[string]interface{})
	if req.AllowStrangerView10 != nil {
		updates["allow_stranger_view10"] = *req.AllowStrangerView10
	}
	if req.RequireFriendVerify != nil {
		updates["require_friend_verify"] = *req.RequireFriendVerify
	}
	if req.VisibleToSearch != nil {
		updates["visible_to_search"] = *req.VisibleToSearch
	}

	if len(updates) > 0 {
		if err := s.userRepo.UpdateProfile(ctx, userUUID, updates); err != nil {
			logger.Error(ctx, "更新隐私设置失败", logger.ErrorField("error", err))
			return nil, errs.New(consts.CodeInternalError)
		}
	}

	return s.GetUser(ctx, userUUID, userUUID)
}

// SearchUsers 搜索用户，自己不出现在结果里
func (s *userServiceImpl) SearchUsers(ctx context.Context, selfUUID, keyword string, limit int) ([]*dto.UserView, error) {
	users, err := s.userRepo.Search(ctx, keyword, limit)
	if err != nil {
		logger.Error(ctx, "搜索用户失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}

	views := make([]*dto.UserView, 0, len(users))
	for _, u := range users {
		if u.Uuid == selfUUID {
			continue
		}
		views = append(views, converter.UserToBrief(u))
	}
	return views, nil
}

// UploadAvatar 上传头像
// 业务流程：
//  1. 校验类型与大小
//  2. 上传对象存储
//  3. 更新资料并返回 URL
func (s *userServiceImpl) UploadAvatar(ctx context.Context, userUUID, filename, contentType string, size int64, reader io.Reader) (*dto.UploadAvatarResponse, error) {
	avatarURL, err := s.uploadImage(ctx, userUUID, "avatar", filename, contentType, size, reader)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateAvatar(ctx, userUUID, avatarURL); err != nil {
		logger.Error(ctx, "更新头像失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}
	return &dto.UploadAvatarResponse{Avatar: avatarURL}, nil
}

// UploadBackground 上传主页背景图，校验规则与头像一致
func (s *userServiceImpl) UploadBackground(ctx context.Context, userUUID, filename, contentType string, size int64, reader io.Reader) (*dto.UploadBackgroundResponse, error) {
	backgroundURL, err := s.uploadImage(ctx, userUUID, "background", filename, contentType, size, reader)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateProfile(ctx, userUUID, map[string]interface{}{
		"background_image": backgroundURL,
	}); err != nil {
		logger.Error(ctx, "更新背景图失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}
	return &dto.UploadBackgroundResponse{BackgroundImage: backgroundURL}, nil
}

// uploadImage 校验图片并传对象存储，返回访问 URL
func (s *userServiceImpl) uploadImage(ctx context.Context, userUUID, prefix, filename, contentType string, size int64, reader io.Reader) (string, error) {
	// 对象存储初始化失败时为 nil（降级启动）
	if s.storage == nil {
		return "", errs.New(consts.CodeInternalError)
	}

	ext := strings.ToLower(path.Ext(filename))
	if _, ok := avatarAllowedExt[ext]; !ok {
		return "", errs.New(consts.CodeUploadTypeError)
	}
	if size <= 0 || size > avatarMaxSize {
		return "", errs.New(consts.CodeUploadTooLarge)
	}

	objectName := prefix + "/" + userUUID + "/" + util.GenIDString() + ext
	url, err := s.storage.Upload(ctx, objectName, reader, size, contentType)
	if err != nil {
		logger.Error(ctx, "上传图片失败", logger.ErrorField("error", err))
		return "", errs.New(consts.CodeInternalError)
	}
	return url, nil
}
