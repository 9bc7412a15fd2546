package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/geektext/pkg/errors"
	"github.com/xiebiao/geektext/pkg/validator"
)

// bindCreate 严格解码创建请求并校验binding规则
// 请求体中出现未声明的字段 → UnknownField
func bindCreate(c *gin.Context, dst interface{}) error {
	data, err := c.GetRawData()
	if err != nil {
		return apperrors.ErrBindError.WithCause(err)
	}
	if err := validator.DecodeStrict(data, dst); err != nil {
		return err
	}
	return validator.Struct(dst)
}

// bindPatch 解码部分更新请求
// allowed之外的字段 → UnknownField，ignored中的字段静默丢弃
func bindPatch(c *gin.Context, allowed, ignored []string, dst interface{}) error {
	data, err := c.GetRawData()
	if err != nil {
		return apperrors.ErrBindError.WithCause(err)
	}
	return validator.DecodePatch(data, validator.PatchRule{Allowed: allowed, Ignored: ignored}, dst)
}

// bindQuery 绑定并校验query参数
func bindQuery(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindQuery(dst); err != nil {
		return validator.Translate(err)
	}
	return nil
}

// idParam 解析路径中的数字ID
func idParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.Newf(apperrors.ErrCodeInvalidParams, "%s必须是正整数", name)
	}
	return uint(id), nil
}
