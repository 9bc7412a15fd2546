package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/geektext/internal/domain/user"
	"github.com/xiebiao/geektext/internal/infrastructure/persistence/redis"
	apperrors "github.com/xiebiao/geektext/pkg/errors"
	"github.com/xiebiao/geektext/pkg/jwt"
	"github.com/xiebiao/geektext/pkg/response"
)

// Context中的键
const (
	principalKey = "principal"
	claimsKey    = "claims"
	tokenKey     = "access_token"
)

// AuthMiddleware JWT认证中间件
// 设计说明：
// 1. 从Header提取Token
// 2. 检查Token黑名单
// 3. 验证Token有效性，只接受Access Token
// 4. Token对应的会话必须存在（登出后整个会话失效）
// 5. 从数据库重新加载用户，is_admin以数据库为准（Token中的只是签发时的快照）
// 6. 将认证主体注入Context
type AuthMiddleware struct {
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
	userRepo     user.Repository
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, sessionStore *redis.SessionStore, userRepo user.Repository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
		userRepo:     userRepo,
	}
}

// RequireAuth 要求登录
// 使用方式：
//
//	authorized := r.Group("/api/v1")
//	authorized.Use(authMiddleware.RequireAuth())
//	authorized.GET("/users", handler.ListUsers)
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 从Header提取Token
		// 格式：Authorization: Bearer <token>
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, apperrors.ErrUnauthorized)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.Abort(c, apperrors.ErrInvalidToken)
			return
		}
		tokenString := parts[1]

		// 2. 检查Token是否在黑名单中（用户已登出或Token被强制失效）
		revoked, err := m.sessionStore.IsInBlacklist(c.Request.Context(), tokenString)
		if err != nil {
			response.Abort(c, err)
			return
		}
		if revoked {
			response.Abort(c, apperrors.ErrSessionRevoked)
			return
		}

		// 3. 验证Token并解析Claims（自动处理ErrTokenExpired、ErrInvalidToken）
		// Refresh Token的typ不是access，在这里被拒绝
		claims, err := m.jwtManager.ParseToken(tokenString, jwt.TokenTypeAccess)
		if err != nil {
			response.Abort(c, err)
			return
		}

		// 4. 会话检查
		if _, err := m.sessionStore.GetSession(c.Request.Context(), claims.UserID, claims.SessionID); err != nil {
			if errors.Is(err, apperrors.ErrUnauthorized) {
				err = apperrors.ErrSessionRevoked
			}
			response.Abort(c, err)
			return
		}

		// 5. 重新加载用户（用户可能已被删除，或管理员权限已变化）
		u, err := m.userRepo.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				err = apperrors.ErrInvalidToken
			}
			response.Abort(c, err)
			return
		}

		// 6. 注入Context
		c.Set(principalKey, user.PrincipalOf(u))
		c.Set(claimsKey, claims)
		c.Set(tokenKey, tokenString)
		c.Next()
	}
}

// Require 授权检查，必须放在RequireAuth之后
// ownerParam是路径中用户名参数的名字（访问账户类操作使用），其它操作传空串
func Require(action user.Action, ownerParam string) gin.HandlerFunc {
	return func(c *gin.Context) {
		op := user.Operation{Action: action}
		if ownerParam != "" {
			op.Owner = c.Param(ownerParam)
		}
		if err := user.Authorize(GetPrincipal(c), op); err != nil {
			response.Abort(c, err)
			return
		}
		c.Next()
	}
}

// =========================================
// Context辅助函数（供Handler使用）
// =========================================

// GetPrincipal 当前认证主体，未登录返回nil
func GetPrincipal(c *gin.Context) *user.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(*user.Principal); ok {
			return p
		}
	}
	return nil
}

// GetClaims 当前请求的Token Claims
func GetClaims(c *gin.Context) *jwt.Claims {
	if v, ok := c.Get(claimsKey); ok {
		if claims, ok := v.(*jwt.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetToken 当前请求的Access Token原文
func GetToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}

// MustGetPrincipal 获取认证主体（不存在则panic）
// 说明：用于已经通过RequireAuth中间件的Handler
func MustGetPrincipal(c *gin.Context) *user.Principal {
	p := GetPrincipal(c)
	if p == nil {
		panic("principal not found in context")
	}
	return p
}
