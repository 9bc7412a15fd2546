package handler

import (
	"github.com/gin-gonic/gin"

	reviewapp "github.com/xiebiao/geektext/internal/application/review"
	"github.com/xiebiao/geektext/internal/interface/http/dto"
	"github.com/xiebiao/geektext/internal/interface/http/middleware"
	"github.com/xiebiao/geektext/pkg/response"
)

// ReviewHandler 评分评论HTTP处理器
type ReviewHandler struct {
	reviewUseCase *reviewapp.ReviewUseCase
}

// NewReviewHandler 创建处理器
func NewReviewHandler(reviewUseCase *reviewapp.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{reviewUseCase: reviewUseCase}
}

// RateBook 评分
// @Summary      给图书评分
// @Description  1-5分，同一用户重复评分会覆盖上一次
// @Tags         评分评论
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        isbn    path string         true "ISBN"
// @Param        request body dto.RateRequest true "评分"
// @Success      201 {object} response.Response{data=dto.RateResponse}
// @Failure      400 {object} response.Response "评分超出范围"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{isbn}/ratings [post]
func (h *ReviewHandler) RateBook(c *gin.Context) {
	var req dto.RateRequest
	if err := bindCreate(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	principal := middleware.MustGetPrincipal(c)
	r, summary, err := h.reviewUseCase.Rate(c.Request.Context(), principal.UserID, c.Param("isbn"), req.Rating)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewRateResponse(r, summary))
}

// ListRatings 图书评分
// @Summary      图书的全部评分
// @Tags         评分评论
// @Produce      json
// @Param        isbn path string true "ISBN"
// @Success      200 {object} response.Response{data=dto.RatingsResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{isbn}/ratings [get]
func (h *ReviewHandler) ListRatings(c *gin.Context) {
	v, err := h.reviewUseCase.Ratings(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewRatingsResponse(v.Book.ISBN, v.Ratings, v.Summary))
}

// CommentBook 评论
// @Summary      评论图书
// @Tags         评分评论
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        isbn    path string            true "ISBN"
// @Param        request body dto.CommentRequest true "评论"
// @Success      201 {object} response.Response{data=dto.CommentResponse}
// @Failure      400 {object} response.Response "评论为空或超长"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{isbn}/comments [post]
func (h *ReviewHandler) CommentBook(c *gin.Context) {
	var req dto.CommentRequest
	if err := bindCreate(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	principal := middleware.MustGetPrincipal(c)
	comment, err := h.reviewUseCase.Comment(c.Request.Context(), principal.UserID, c.Param("isbn"), req.Comment)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewCommentResponse(comment))
}

// ListComments 图书评论
// @Summary      图书的全部评论
// @Tags         评分评论
// @Produce      json
// @Param        isbn path string true "ISBN"
// @Success      200 {object} response.Response{data=dto.CommentsResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{isbn}/comments [get]
func (h *ReviewHandler) ListComments(c *gin.Context) {
	v, err := h.reviewUseCase.Comments(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewCommentsResponse(v.Book.ISBN, v.Comments))
}
