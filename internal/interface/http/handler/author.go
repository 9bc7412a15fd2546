package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/geektext/internal/application/catalog"
	"github.com/xiebiao/geektext/internal/domain/author"
	"github.com/xiebiao/geektext/internal/interface/http/dto"
	"github.com/xiebiao/geektext/pkg/response"
)

// AuthorHandler 作者HTTP处理器
type AuthorHandler struct {
	authorUseCase *catalog.AuthorUseCase
}

// NewAuthorHandler 创建作者处理器
func NewAuthorHandler(authorUseCase *catalog.AuthorUseCase) *AuthorHandler {
	return &AuthorHandler{authorUseCase: authorUseCase}
}

// CreateAuthor 创建作者
// @Summary      创建作者
// @Tags         作者
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateAuthorRequest true "作者信息"
// @Success      201 {object} response.Response{data=dto.AuthorResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/authors [post]
func (h *AuthorHandler) CreateAuthor(c *gin.Context) {
	var req dto.CreateAuthorRequest
	if err := bindCreate(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	a, err := h.authorUseCase.Create(c.Request.Context(), catalog.CreateAuthorRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Publisher: req.Publisher,
		Bio:       req.Bio,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewAuthorResponse(a))
}

// ListAuthors 作者列表
// @Summary      作者列表
// @Description  同时提供first_name和last_name时按姓名查找，返回作者及其图书
// @Tags         作者
// @Produce      json
// @Param        first_name query string false "名"
// @Param        last_name  query string false "姓"
// @Success      200 {object} response.Response{data=[]dto.AuthorResponse}
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /api/v1/authors [get]
func (h *AuthorHandler) ListAuthors(c *gin.Context) {
	var req dto.FindAuthorRequest
	if err := bindQuery(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	if req.ByName() {
		found, err := h.authorUseCase.FindByName(c.Request.Context(), req.FirstName, req.LastName)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, dto.NewAuthorDetailResponse(found.Author, found.Books))
		return
	}

	authors, err := h.authorUseCase.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewAuthorList(authors))
}

// GetAuthor 作者详情
// @Summary      作者详情（带图书）
// @Tags         作者
// @Produce      json
// @Param        id path int true "作者ID"
// @Success      200 {object} response.Response{data=dto.AuthorDetailResponse}
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /api/v1/authors/{id} [get]
func (h *AuthorHandler) GetAuthor(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	found, err := h.authorUseCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewAuthorDetailResponse(found.Author, found.Books))
}

// AuthorBooks 作者的图书
// @Summary      作者的图书
// @Tags         作者
// @Produce      json
// @Param        id path int true "作者ID"
// @Success      200 {object} response.Response{data=dto.AuthorBooksResponse}
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /api/v1/authors/{id}/books [get]
func (h *AuthorHandler) AuthorBooks(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	found, err := h.authorUseCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewAuthorBooksResponse(found.Author, found.Books))
}

// UpdateAuthor 部分更新作者
// @Summary      更新作者
// @Tags         作者
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int          true "作者ID"
// @Param        request body author.Patch true "要修改的字段"
// @Success      200 {object} response.Response{data=dto.AuthorResponse}
// @Failure      400 {object} response.Response "参数错误、未知字段"
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /api/v1/authors/{id} [patch]
func (h *AuthorHandler) UpdateAuthor(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var patch author.Patch
	if err := bindPatch(c, author.PatchFields, author.PatchIgnored, &patch); err != nil {
		response.Error(c, err)
		return
	}

	a, err := h.authorUseCase.Update(c.Request.Context(), id, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewAuthorResponse(a))
}

// DeleteAuthor 删除作者
// @Summary      删除作者
// @Description  返回删除前的作者；其图书保留，author_id置空
// @Tags         作者
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "作者ID"
// @Success      200 {object} response.Response{data=dto.AuthorResponse}
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /api/v1/authors/{id} [delete]
func (h *AuthorHandler) DeleteAuthor(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	a, err := h.authorUseCase.Delete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewAuthorResponse(a))
}
