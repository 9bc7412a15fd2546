package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/geektext/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, h gin.HandlerFunc) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	r := gin.New()
	r.GET("/x", h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestSuccess(t *testing.T) {
	w, resp := serve(t, func(c *gin.Context) { Success(c, gin.H{"a": 1}) })
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, resp.Code)
	assert.Equal(t, "success", resp.Message)
}

func TestError_StatusFromCode(t *testing.T) {
	w, resp := serve(t, func(c *gin.Context) {
		Error(c, apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在"))
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.ErrCodeBookNotFound, resp.Code)
	assert.Nil(t, resp.Data)
}

func TestError_HidesInternalCause(t *testing.T) {
	w, resp := serve(t, func(c *gin.Context) {
		Error(c, apperrors.Wrap(errors.New("dial tcp 10.0.0.1:3306: refused"), "查询图书失败"))
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "查询图书失败", resp.Message)
	assert.NotContains(t, w.Body.String(), "10.0.0.1")
}

func TestNewPageData(t *testing.T) {
	p := NewPageData([]int{1, 2}, 21, 1, 10)
	assert.Equal(t, 3, p.TotalPages)

	p = NewPageData([]int{}, 0, 1, 0)
	assert.Equal(t, 0, p.TotalPages)
}
