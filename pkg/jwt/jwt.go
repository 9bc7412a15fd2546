package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/xiebiao/geektext/pkg/errors"
)

const issuer = "geektext"

// Token类型，鉴权只接受Access Token，刷新只接受Refresh Token
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Manager JWT管理器
// 双Token机制：Access Token（短期，API鉴权）+ Refresh Token（长期，刷新Access Token）
type Manager struct {
	secret             string
	accessTokenExpire  time.Duration
	refreshTokenExpire time.Duration
}

// NewManager 创建JWT管理器
func NewManager(secret string, accessTokenExpire, refreshTokenExpire time.Duration) *Manager {
	return &Manager{
		secret:             secret,
		accessTokenExpire:  accessTokenExpire,
		refreshTokenExpire: refreshTokenExpire,
	}
}

// Claims 自定义JWT Claims
// 注意：IsAdmin只是签发时的快照，鉴权时以数据库中的用户记录为准
// SessionID把同一次登录签发的两个Token绑定到Redis会话，会话删除后两者都失效
type Claims struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username,omitempty"`
	IsAdmin   bool   `json:"is_admin,omitempty"`
	SessionID string `json:"sid"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenPair Token对（Access + Refresh）
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // Access Token过期时间（秒）
	SessionID    string `json:"-"`
}

// RefreshTokenExpire Refresh Token有效期（会话TTL与之一致）
func (m *Manager) RefreshTokenExpire() time.Duration {
	return m.refreshTokenExpire
}

// GenerateToken 生成Token对，每次登录分配新的会话ID
func (m *Manager) GenerateToken(userID uint, username string, isAdmin bool) (*TokenPair, error) {
	now := time.Now()
	sessionID := uuid.NewString()

	access, err := m.signAccess(userID, username, isAdmin, sessionID, now)
	if err != nil {
		return nil, err
	}

	// Refresh Token只包含UserID和会话ID
	refresh, err := m.sign(Claims{
		UserID:           userID,
		SessionID:        sessionID,
		TokenType:        TokenTypeRefresh,
		RegisteredClaims: m.registered(userID, now, m.refreshTokenExpire),
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "生成Refresh Token失败")
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(m.accessTokenExpire.Seconds()),
		SessionID:    sessionID,
	}, nil
}

// ParseToken 解析并验证Token（签名、exp、nbf、类型）
// tokenType不匹配时返回ErrInvalidToken
func (m *Manager) ParseToken(tokenString, tokenType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("非法的签名算法: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.TokenType != tokenType {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

// RefreshAccessToken 用已验证的Refresh Token换取新的Access Token，会话ID保持不变
// username和isAdmin由调用方从数据库重新读取，避免沿用旧快照
func (m *Manager) RefreshAccessToken(refresh *Claims, username string, isAdmin bool) (*TokenPair, error) {
	if refresh == nil || refresh.TokenType != TokenTypeRefresh {
		return nil, apperrors.ErrInvalidToken
	}

	access, err := m.signAccess(refresh.UserID, username, isAdmin, refresh.SessionID, time.Now())
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken: access,
		ExpiresIn:   int64(m.accessTokenExpire.Seconds()),
		SessionID:   refresh.SessionID,
	}, nil
}

// Remaining Token剩余有效期（用于黑名单TTL）
func Remaining(claims *Claims) time.Duration {
	if claims == nil || claims.ExpiresAt == nil {
		return 0
	}
	d := time.Until(claims.ExpiresAt.Time)
	if d < 0 {
		return 0
	}
	return d
}

func (m *Manager) registered(userID uint, now time.Time, ttl time.Duration) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		Issuer:    issuer,
		Subject:   fmt.Sprintf("%d", userID),
	}
}

func (m *Manager) signAccess(userID uint, username string, isAdmin bool, sessionID string, now time.Time) (string, error) {
	token, err := m.sign(Claims{
		UserID:           userID,
		Username:         username,
		IsAdmin:          isAdmin,
		SessionID:        sessionID,
		TokenType:        TokenTypeAccess,
		RegisteredClaims: m.registered(userID, now, m.accessTokenExpire),
	})
	if err != nil {
		return "", apperrors.Wrap(err, "生成Access Token失败")
	}
	return token, nil
}

func (m *Manager) sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.secret))
}
