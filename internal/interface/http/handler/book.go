package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/geektext/internal/application/catalog"
	"github.com/xiebiao/geektext/internal/domain/book"
	"github.com/xiebiao/geektext/internal/interface/http/dto"
	"github.com/xiebiao/geektext/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	publishBookUseCase *catalog.PublishBookUseCase
	getBookUseCase     *catalog.GetBookUseCase
	updateBookUseCase  *catalog.UpdateBookUseCase
	deleteBookUseCase  *catalog.DeleteBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	publishBookUseCase *catalog.PublishBookUseCase,
	getBookUseCase *catalog.GetBookUseCase,
	updateBookUseCase *catalog.UpdateBookUseCase,
	deleteBookUseCase *catalog.DeleteBookUseCase,
) *BookHandler {
	return &BookHandler{
		publishBookUseCase: publishBookUseCase,
		getBookUseCase:     getBookUseCase,
		updateBookUseCase:  updateBookUseCase,
		deleteBookUseCase:  deleteBookUseCase,
	}
}

// CreateBook 创建图书
// @Summary      创建图书
// @Description  管理员上架图书；作者用author_id引用，或用first_name+last_name内联（不存在则创建）
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误、未知字段、ISBN或日期格式错误、作者不存在"
// @Failure      401 {object} response.Response "未登录"
// @Failure      403 {object} response.Response "无权限"
// @Failure      409 {object} response.Response "ISBN已存在"
// @Router       /api/v1/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := bindCreate(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.publishBookUseCase.Execute(c.Request.Context(), catalog.PublishBookRequest{
		Fields:          req.Fields(),
		AuthorFirstName: req.FirstName,
		AuthorLastName:  req.LastName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.NewBookResponse(b))
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  分页查询图书，keyword匹配书名、类型、出版社
// @Tags         图书
// @Produce      json
// @Param        page      query int    false "页码" default(1)
// @Param        page_size query int    false "每页数量" default(20)
// @Param        keyword   query string false "关键词"
// @Param        genre     query string false "类型"
// @Param        sort_by   query string false "排序" Enums(price_asc, price_desc, copies_sold_desc, created_at_desc)
// @Success      200 {object} response.Response{data=response.PageData{list=[]dto.BookResponse}}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var req dto.ListBooksRequest
	if err := bindQuery(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	books, total, params, err := h.getBookUseCase.List(c.Request.Context(), req.Params())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, dto.NewBookList(books), total, params.Page, params.PageSize)
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        isbn path string true "ISBN"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{isbn} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	b, err := h.getBookUseCase.Execute(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBookResponse(b))
}

// UpdateBook 部分更新图书
// @Summary      更新图书
// @Description  只修改请求体中出现的字段；isbn、id和关系字段被忽略；author_id为null表示解除作者
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        isbn    path string     true "ISBN"
// @Param        request body book.Patch true "要修改的字段"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误、未知字段、作者不存在"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{isbn} [patch]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	var patch book.Patch
	if err := bindPatch(c, book.PatchFields, book.PatchIgnored, &patch); err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.updateBookUseCase.Execute(c.Request.Context(), c.Param("isbn"), patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBookResponse(b))
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Description  返回删除前的图书；心愿单、购物车中的该书以及评分评论一并删除
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        isbn path string true "ISBN"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{isbn} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	b, err := h.deleteBookUseCase.Execute(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBookResponse(b))
}
