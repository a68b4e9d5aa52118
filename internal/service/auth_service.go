package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"AiBeiTongServer/consts"
	"AiBeiTongServer/internal/converter"
	"AiBeiTongServer/internal/dto"
	"AiBeiTongServer/internal/repository"
	"AiBeiTongServer/model"
	"AiBeiTongServer/pkg/errs"
	"AiBeiTongServer/pkg/jwtauth"
	"AiBeiTongServer/pkg/logger"
	"AiBeiTongServer/pkg/util"

	"golang.org/x/crypto/bcrypt"
)

// 注册默认值
const (
	defaultTitle    = "新用户"
	defaultBio      = "这个人很懒，什么都没写"
	defaultLocation = "缅甸"
	defaultDeviceID = "web"
)

// authServiceImpl 认证服务实现
type authServiceImpl struct {
	authRepo     repository.IAuthRepository
	relationRepo repository.IRelationRepository
}

// NewAuthService 创建认证服务实例
func NewAuthService(authRepo repository.IAuthRepository, relationRepo repository.IRelationRepository) AuthService {
	return &authServiceImpl{authRepo: authRepo, relationRepo: relationRepo}
}

// Register 用户注册
// 业务流程：
//  1. 检查登录名是否被占用
//  2. 创建用户（默认资料 + 默认隐私设置）
//  3. 返回用户视图
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	logger.Info(ctx, "用户注册请求", logger.String("username", req.Username))

	// 1. 登录名查重
	exists, err := s.authRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		logger.Error(ctx, "检查登录名失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}
	if exists {
		return nil, errs.New(consts.CodeUserAlreadyExist)
	}

	// 2. 创建用户
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error(ctx, "生成密码哈希失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}

	nickname := req.Nickname
	if nickname == "" {
		nickname = req.Username
	}

	user := &model.UserInfo{
		Uuid:     util.GenPrefixedID("u"),
		Username: req.Username,
		Password: string(hashedPassword),
		Nickname: nickname,
		Avatar:   defaultAvatarURL(nickname),
		Title:    defaultTitle,
		Bio:      defaultBio,
		Location: defaultLocation,

		AllowStrangerView10: true,
		RequireFriendVerify: true,
		VisibleToSearch:     true,
	}

	created, err := s.authRepo.Create(ctx, user)
	if err != nil {
		// 并发注册同名时唯一索引兜底
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, errs.New(consts.CodeUserAlreadyExist)
		}
		logger.Error(ctx, "创建用户失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}

	logger.Info(ctx, "用户注册成功",
		logger.String("user_uuid", created.Uuid),
		logger.String("username", created.Username),
	)
	return &dto.RegisterResponse{
		User: converter.UserToView(created, true, []string{}),
	}, nil
}

// Login 密码登录
// 业务流程：
//  1. 查询用户并比对密码
//  2. 签发 JWT 并写入 Redis（Redis 里有才算有效，支持服务端吊销）
//  3. 返回 Token 与用户视图
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	logger.Info(ctx, "用户登录请求", logger.String("username", req.Username))

	// 1. 查询用户
	user, err := s.authRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		logger.Error(ctx, "查询用户失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}
	if user == nil {
		// 不区分"用户不存在"和"密码错误"，避免撞库探测
		return nil, errs.New(consts.CodePasswordError)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errs.New(consts.CodePasswordError)
	}

	// 2. 签发 Token
	deviceID := req.DeviceID
	if deviceID == "" {
		deviceID = defaultDeviceID
	}
	token, err := jwtauth.GenerateToken(user.Uuid, deviceID)
	if err != nil {
		logger.Error(ctx, "签发 Token 失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}
	expire := jwtauth.AccessExpire()
	if err := s.authRepo.StoreAccessToken(ctx, user.Uuid, deviceID, token, expire); err != nil {
		logger.Error(ctx, "存储 Token 失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}

	// 3. 组装响应
	contacts, err := s.relationRepo.GetContactUUIDs(ctx, user.Uuid)
	if err != nil {
		logger.Warn(ctx, "查询联系人失败，降级为空列表", logger.ErrorField("error", err))
		contacts = []string{}
	}

	logger.Info(ctx, "用户登录成功",
		logger.String("user_uuid", user.Uuid),
		logger.String("device_id", deviceID),
	)
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(expire.Seconds()),
		User:        converter.UserToView(user, true, contacts),
	}, nil
}

// Logout 登出，删除 Redis 里的 Token
func (s *authServiceImpl) Logout(ctx context.Context, userUUID, deviceID string) error {
	if deviceID == "" {
		deviceID = defaultDeviceID
	}
	if err := s.authRepo.DeleteAccessToken(ctx, userUUID, deviceID); err != nil {
		logger.Error(ctx, "删除 Token 失败", logger.ErrorField("error", err))
		return errs.New(consts.CodeInternalError)
	}
	logger.Info(ctx, "用户登出", logger.String("user_uuid", userUUID))
	return nil
}

// defaultAvatarURL 用昵称做种子生成默认头像
func defaultAvatarURL(seed string) string {
	return fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/svg?seed=%s", url.QueryEscape(seed))
}
