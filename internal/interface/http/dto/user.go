package dto

import (
	"github.com/xiebiao/geektext/internal/domain/book"
	"github.com/xiebiao/geektext/internal/domain/user"
	"github.com/xiebiao/geektext/pkg/jwt"
)

// RegisterRequest HTTP层注册请求
// 说明：密码强度（8-20位，字母+数字）由领域服务校验
type RegisterRequest struct {
	Username  string `json:"username" binding:"required,max=50" example:"alice"`
	Password  string `json:"password" binding:"required" example:"secret123"`
	FirstName string `json:"first_name" binding:"max=50" example:"Alice"`
	LastName  string `json:"last_name" binding:"max=50" example:"Liddell"`
}

// LoginRequest HTTP登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// RefreshRequest 刷新Access Token请求
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UserResponse 用户响应（不包含密码）
type UserResponse struct {
	ID        uint   `json:"id" example:"1"`
	Username  string `json:"username" example:"alice"`
	FirstName string `json:"first_name" example:"Alice"`
	LastName  string `json:"last_name" example:"Liddell"`
	IsAdmin   bool   `json:"is_admin" example:"false"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ProfileResponse 用户资料，内嵌心愿单和购物车中的图书
// 用户还没有心愿单（购物车）时对应字段为null
type ProfileResponse struct {
	UserResponse
	Wishlist     []*BookResponse `json:"wishlist"`
	ShoppingCart []*BookResponse `json:"shopping_cart"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	User         *UserResponse `json:"user"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    int64         `json:"expires_in"` // Access Token过期时间（秒）
}

// RefreshResponse 刷新结果，Refresh Token保持不变
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// NewUserResponse 领域实体 → HTTP响应
func NewUserResponse(u *user.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsAdmin:   u.IsAdmin,
		CreatedAt: formatTime(u.CreatedAt),
		UpdatedAt: formatTime(u.UpdatedAt),
	}
}

// NewUserList 用户列表
func NewUserList(users []*user.User) []*UserResponse {
	list := make([]*UserResponse, len(users))
	for i, u := range users {
		list[i] = NewUserResponse(u)
	}
	return list
}

// NewProfileResponse 用户及其心愿单、购物车
func NewProfileResponse(u *user.User, wishlistBooks, cartBooks []*book.Book) *ProfileResponse {
	resp := &ProfileResponse{UserResponse: *NewUserResponse(u)}
	if wishlistBooks != nil {
		resp.Wishlist = NewBookList(wishlistBooks)
	}
	if cartBooks != nil {
		resp.ShoppingCart = NewBookList(cartBooks)
	}
	return resp
}

// NewLoginResponse 登录响应
func NewLoginResponse(u *user.User, tokens *jwt.TokenPair) *LoginResponse {
	return &LoginResponse{
		User:         NewUserResponse(u),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
	}
}

// NewRefreshResponse 刷新响应
func NewRefreshResponse(tokens *jwt.TokenPair) *RefreshResponse {
	return &RefreshResponse{
		AccessToken: tokens.AccessToken,
		ExpiresIn:   tokens.ExpiresIn,
	}
}
