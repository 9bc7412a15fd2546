package user

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/geektext/internal/domain/user"
	"github.com/xiebiao/geektext/internal/infrastructure/persistence/redis"
	apperrors "github.com/xiebiao/geektext/pkg/errors"
	"github.com/xiebiao/geektext/pkg/jwt"
)

// LoginUseCase 用户登录用例
// 设计说明：
// 1. 验证用户名密码
// 2. 生成JWT Token对
// 3. 保存会话到Redis
type LoginUseCase struct {
	userService  user.Service
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessionStore *redis.SessionStore,
) *LoginUseCase {
	return &LoginUseCase{
		userService:  userService,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string
	Password string
	IP       string
}

// LoginResult 登录结果
type LoginResult struct {
	User   *user.User
	Tokens *jwt.TokenPair
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	// 1. 验证用户名密码（调用领域服务）
	u, err := uc.userService.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	// 2. 生成JWT Token对
	tokens, err := uc.jwtManager.GenerateToken(u.ID, u.Username, u.IsAdmin)
	if err != nil {
		return nil, err
	}

	// 3. 保存会话到Redis，会话有效期 = Refresh Token有效期
	// 鉴权要求会话存在，保存失败时登录失败
	sess := redis.Session{ID: tokens.SessionID, UserID: u.ID, Username: u.Username, LoginAt: time.Now(), IP: req.IP}
	if err := uc.sessionStore.SaveSession(ctx, sess, uc.jwtManager.RefreshTokenExpire()); err != nil {
		zap.L().Warn("保存会话失败", zap.Uint("user_id", u.ID), zap.Error(err))
		return nil, err
	}

	zap.L().Info("用户登录", zap.Uint("user_id", u.ID), zap.String("session_id", tokens.SessionID))
	return &LoginResult{User: u, Tokens: tokens}, nil
}

// RefreshUseCase 刷新Access Token用例
// 1. 验证Refresh Token（类型必须是refresh）
// 2. 会话必须仍然存在（登出后Refresh Token失效）
// 3. 重新加载用户，新Token使用数据库中的用户名和管理员标记
type RefreshUseCase struct {
	userRepo     user.Repository
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
}

// NewRefreshUseCase 创建刷新用例
func NewRefreshUseCase(userRepo user.Repository, jwtManager *jwt.Manager, sessionStore *redis.SessionStore) *RefreshUseCase {
	return &RefreshUseCase{
		userRepo:     userRepo,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// Execute 用Refresh Token换取新的Access Token，返回的TokenPair不含Refresh Token
func (uc *RefreshUseCase) Execute(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := uc.jwtManager.ParseToken(refreshToken, jwt.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	if _, err := uc.sessionStore.GetSession(ctx, claims.UserID, claims.SessionID); err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			return nil, apperrors.ErrSessionRevoked
		}
		return nil, err
	}

	u, err := uc.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, err
	}

	return uc.jwtManager.RefreshAccessToken(claims, u.Username, u.IsAdmin)
}

// LogoutUseCase 用户登出用例
type LogoutUseCase struct {
	sessionStore *redis.SessionStore
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(sessionStore *redis.SessionStore) *LogoutUseCase {
	return &LogoutUseCase{sessionStore: sessionStore}
}

// Execute 执行登出
// 删除会话后同一次登录的Refresh Token随之失效
// Access Token另外加入黑名单直到它自然过期
func (uc *LogoutUseCase) Execute(ctx context.Context, claims *jwt.Claims, accessToken string) error {
	if err := uc.sessionStore.DeleteSession(ctx, claims.UserID, claims.SessionID); err != nil {
		return err
	}
	return uc.sessionStore.AddToBlacklist(ctx, accessToken, jwt.Remaining(claims))
}
