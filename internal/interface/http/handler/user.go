package handler

import (
	"github.com/gin-gonic/gin"

	userapp "github.com/xiebiao/geektext/internal/application/user"
	"github.com/xiebiao/geektext/internal/domain/user"
	"github.com/xiebiao/geektext/internal/interface/http/dto"
	"github.com/xiebiao/geektext/internal/interface/http/middleware"
	"github.com/xiebiao/geektext/pkg/response"
)

// UserHandler 用户HTTP处理器
// 职责：
// 1. 解析HTTP请求参数
// 2. 调用Application层用例
// 3. 返回HTTP响应
type UserHandler struct {
	registerUseCase *userapp.RegisterUseCase
	loginUseCase    *userapp.LoginUseCase
	logoutUseCase   *userapp.LogoutUseCase
	refreshUseCase  *userapp.RefreshUseCase
	profileUseCase  *userapp.ProfileUseCase
}

// NewUserHandler 创建用户处理器
func NewUserHandler(
	registerUseCase *userapp.RegisterUseCase,
	loginUseCase *userapp.LoginUseCase,
	logoutUseCase *userapp.LogoutUseCase,
	refreshUseCase *userapp.RefreshUseCase,
	profileUseCase *userapp.ProfileUseCase,
) *UserHandler {
	return &UserHandler{
		registerUseCase: registerUseCase,
		loginUseCase:    loginUseCase,
		logoutUseCase:   logoutUseCase,
		refreshUseCase:  refreshUseCase,
		profileUseCase:  profileUseCase,
	}
}

// Register 用户注册
// @Summary      用户注册
// @Description  用户名唯一，密码8-20位且同时包含字母和数字
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "注册信息"
// @Success      201 {object} response.Response{data=dto.UserResponse}
// @Failure      400 {object} response.Response "参数错误或密码强度不足"
// @Failure      409 {object} response.Response "用户名已存在"
// @Router       /api/v1/users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := bindCreate(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	u, err := h.registerUseCase.Execute(c.Request.Context(), userapp.RegisterRequest{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewUserResponse(u))
}

// Login 用户登录
// @Summary      用户登录
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录信息"
// @Success      200 {object} response.Response{data=dto.LoginResponse}
// @Failure      401 {object} response.Response "用户名或密码错误"
// @Router       /api/v1/users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := bindCreate(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), userapp.LoginRequest{
		Username: req.Username,
		Password: req.Password,
		IP:       c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewLoginResponse(result.User, result.Tokens))
}

// Refresh 刷新Access Token
// @Summary      刷新Access Token
// @Description  会话仍然有效时签发新的Access Token，管理员标记从数据库重新读取
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.RefreshRequest true "Refresh Token"
// @Success      200 {object} response.Response{data=dto.RefreshResponse}
// @Failure      401 {object} response.Response "Token无效或会话已失效"
// @Router       /api/v1/users/refresh [post]
func (h *UserHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := bindCreate(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	tokens, err := h.refreshUseCase.Execute(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewRefreshResponse(tokens))
}

// Logout 退出登录
// @Summary      退出登录
// @Description  删除会话（同一次登录的Refresh Token随之失效）并把当前Access Token加入黑名单
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/users/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.logoutUseCase.Execute(c.Request.Context(), middleware.GetClaims(c), middleware.GetToken(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ListUsers 用户列表
// @Summary      用户列表（管理员）
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]dto.UserResponse}
// @Failure      403 {object} response.Response "无权限"
// @Router       /api/v1/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.profileUseCase.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewUserList(users))
}

// GetProfile 用户资料
// @Summary      用户资料
// @Description  附带心愿单和购物车中的图书，本人或管理员可访问
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Param        username path string true "用户名"
// @Success      200 {object} response.Response{data=dto.ProfileResponse}
// @Failure      403 {object} response.Response "无权限"
// @Failure      404 {object} response.Response "用户不存在"
// @Router       /api/v1/users/{username} [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	p, err := h.profileUseCase.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewProfileResponse(p.User, p.WishlistBooks, p.CartBooks))
}

// UpdateProfile 部分更新用户资料
// @Summary      更新用户资料
// @Description  可修改first_name、last_name、password；username等字段被忽略
// @Tags         用户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username path string     true "用户名"
// @Param        request  body user.Patch true "要修改的字段"
// @Success      200 {object} response.Response{data=dto.ProfileResponse}
// @Failure      400 {object} response.Response "参数错误、未知字段或密码强度不足"
// @Failure      404 {object} response.Response "用户不存在"
// @Router       /api/v1/users/{username} [patch]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var patch user.Patch
	if err := bindPatch(c, user.PatchFields, user.PatchIgnored, &patch); err != nil {
		response.Error(c, err)
		return
	}

	p, err := h.profileUseCase.Update(c.Request.Context(), c.Param("username"), patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewProfileResponse(p.User, p.WishlistBooks, p.CartBooks))
}

// DeleteUser 删除用户
// @Summary      删除用户
// @Description  返回删除前的资料；心愿单、购物车、评分、评论一并删除
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Param        username path string true "用户名"
// @Success      200 {object} response.Response{data=dto.ProfileResponse}
// @Failure      404 {object} response.Response "用户不存在"
// @Router       /api/v1/users/{username} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	p, err := h.profileUseCase.Delete(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewProfileResponse(p.User, p.WishlistBooks, p.CartBooks))
}
