package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/geektext/internal/application/shopping"
	"github.com/xiebiao/geektext/internal/interface/http/dto"
	"github.com/xiebiao/geektext/pkg/response"
)

// ShoppingHandler 心愿单与购物车HTTP处理器
// 路径中的:username由middleware.Require校验（本人或管理员）
type ShoppingHandler struct {
	wishlistUseCase   *shopping.WishlistUseCase
	cartUseCase       *shopping.CartUseCase
	moveToCartUseCase *shopping.MoveToCartUseCase
}

// NewShoppingHandler 创建处理器
func NewShoppingHandler(
	wishlistUseCase *shopping.WishlistUseCase,
	cartUseCase *shopping.CartUseCase,
	moveToCartUseCase *shopping.MoveToCartUseCase,
) *ShoppingHandler {
	return &ShoppingHandler{
		wishlistUseCase:   wishlistUseCase,
		cartUseCase:       cartUseCase,
		moveToCartUseCase: moveToCartUseCase,
	}
}

func wishlistResponse(v *shopping.WishlistView) *dto.CollectionResponse {
	return dto.NewCollectionResponse(v.Wishlist.ID, v.Owner, v.Wishlist.CreatedAt, v.Books)
}

func cartResponse(v *shopping.CartView) *dto.CollectionResponse {
	return dto.NewCollectionResponse(v.Cart.ID, v.Owner, v.Cart.CreatedAt, v.Books)
}

// CreateWishlist 创建心愿单
// @Summary      创建心愿单
// @Description  已存在时返回现有心愿单
// @Tags         心愿单
// @Produce      json
// @Security     BearerAuth
// @Param        username path string true "用户名"
// @Success      201 {object} response.Response{data=dto.CollectionResponse}
// @Failure      404 {object} response.Response "用户不存在"
// @Router       /api/v1/users/{username}/wishlist [post]
func (h *ShoppingHandler) CreateWishlist(c *gin.Context) {
	v, err := h.wishlistUseCase.Create(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, wishlistResponse(v))
}

// GetWishlist 查看心愿单
// @Summary      查看心愿单
// @Tags         心愿单
// @Produce      json
// @Security     BearerAuth
// @Param        username path string true "用户名"
// @Success      200 {object} response.Response{data=dto.CollectionResponse}
// @Failure      404 {object} response.Response "用户或心愿单不存在"
// @Router       /api/v1/users/{username}/wishlist [get]
func (h *ShoppingHandler) GetWishlist(c *gin.Context) {
	v, err := h.wishlistUseCase.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, wishlistResponse(v))
}

// AddToWishlist 加入心愿单
// @Summary      加入心愿单
// @Description  心愿单不存在时自动创建；重复加入不报错
// @Tags         心愿单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username path string             true "用户名"
// @Param        request  body dto.AddBookRequest true "图书ISBN"
// @Success      200 {object} response.Response{data=dto.CollectionResponse}
// @Failure      404 {object} response.Response "用户或图书不存在"
// @Router       /api/v1/users/{username}/wishlist/books [post]
func (h *ShoppingHandler) AddToWishlist(c *gin.Context) {
	var req dto.AddBookRequest
	if err := bindCreate(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	v, err := h.wishlistUseCase.AddBook(c.Request.Context(), c.Param("username"), req.ISBN)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, wishlistResponse(v))
}

// MoveToCart 心愿单中的图书移入购物车
// @Summary      移入购物车
// @Description  在一个事务中把图书从心愿单移到购物车，购物车不存在时自动创建
// @Tags         心愿单
// @Produce      json
// @Security     BearerAuth
// @Param        username path string true "用户名"
// @Param        isbn     path string true "ISBN"
// @Success      200 {object} response.Response{data=dto.MoveResponse}
// @Failure      400 {object} response.Response "没有心愿单或图书不在心愿单中"
// @Failure      404 {object} response.Response "用户或图书不存在"
// @Router       /api/v1/users/{username}/wishlist/books/{isbn} [delete]
func (h *ShoppingHandler) MoveToCart(c *gin.Context) {
	res, err := h.moveToCartUseCase.Execute(c.Request.Context(), c.Param("username"), c.Param("isbn"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.MoveResponse{
		CartID: res.Cart.ID,
		Book:   dto.NewBookResponse(res.Book),
	})
}

// CreateCart 创建购物车
// @Summary      创建购物车
// @Description  已存在时返回现有购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Param        username path string true "用户名"
// @Success      201 {object} response.Response{data=dto.CollectionResponse}
// @Failure      404 {object} response.Response "用户不存在"
// @Router       /api/v1/users/{username}/cart [post]
func (h *ShoppingHandler) CreateCart(c *gin.Context) {
	v, err := h.cartUseCase.Create(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, cartResponse(v))
}

// GetCart 查看购物车
// @Summary      查看购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Param        username path string true "用户名"
// @Success      200 {object} response.Response{data=dto.CollectionResponse}
// @Failure      404 {object} response.Response "用户或购物车不存在"
// @Router       /api/v1/users/{username}/cart [get]
func (h *ShoppingHandler) GetCart(c *gin.Context) {
	v, err := h.cartUseCase.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, cartResponse(v))
}

// AddToCart 加入购物车
// @Summary      加入购物车
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username path string             true "用户名"
// @Param        request  body dto.AddBookRequest true "图书ISBN"
// @Success      200 {object} response.Response{data=dto.CollectionResponse}
// @Failure      404 {object} response.Response "用户或图书不存在"
// @Router       /api/v1/users/{username}/cart/books [post]
func (h *ShoppingHandler) AddToCart(c *gin.Context) {
	var req dto.AddBookRequest
	if err := bindCreate(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	v, err := h.cartUseCase.AddBook(c.Request.Context(), c.Param("username"), req.ISBN)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, cartResponse(v))
}

// RemoveFromCart 从购物车移除
// @Summary      从购物车移除
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Param        username path string true "用户名"
// @Param        isbn     path string true "ISBN"
// @Success      200 {object} response.Response{data=dto.CollectionResponse}
// @Failure      400 {object} response.Response "图书不在购物车中"
// @Router       /api/v1/users/{username}/cart/books/{isbn} [delete]
func (h *ShoppingHandler) RemoveFromCart(c *gin.Context) {
	v, err := h.cartUseCase.RemoveBook(c.Request.Context(), c.Param("username"), c.Param("isbn"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, cartResponse(v))
}
