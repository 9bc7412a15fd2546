package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/xiebiao/geektext/pkg/errors"
)

// tagName 与gin binding使用同一个tag，DTO上只写一套规则
const tagName = "binding"

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName(tagName)
	if err := RegisterCustom(v); err != nil {
		panic(err)
	}
	return v
}

// RegisterCustom 注册自定义规则和字段命名
// gin的binding引擎也需要调用一次，query参数绑定才能使用相同的规则
func RegisterCustom(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return ""
	})

	// date: 日期字符串必须能被ParseDate解析
	return v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})
}

// Engine 返回内部的validator实例
func Engine() *validator.Validate {
	return validate
}

// Struct 校验结构体，返回第一个失败字段对应的AppError
func Struct(s interface{}) error {
	return Translate(validate.Struct(s))
}

// Translate 把validator（包括gin binding）的校验错误转换为AppError
func Translate(err error) error {
	if err == nil {
		return nil
	}
	if apperrors.IsAppError(err) {
		return err
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperrors.ErrInvalidParams.WithCause(err)
	}
	return translateFieldError(verrs[0])
}

func translateFieldError(fe validator.FieldError) *apperrors.AppError {
	field := fe.Field()
	numeric := isNumeric(fe.Kind())

	switch fe.Tag() {
	case "required":
		return apperrors.Newf(apperrors.ErrCodeInvalidParams, "%s不能为空", field)
	case "max":
		if numeric {
			return apperrors.Newf(apperrors.ErrCodeInvalidParams, "%s不能大于%s", field, fe.Param())
		}
		return apperrors.Newf(apperrors.ErrCodeInvalidParams, "%s长度不能超过%s", field, fe.Param())
	case "min":
		if numeric {
			return apperrors.Newf(apperrors.ErrCodeInvalidParams, "%s不能小于%s", field, fe.Param())
		}
		return apperrors.Newf(apperrors.ErrCodeInvalidParams, "%s长度不能少于%s", field, fe.Param())
	case "gte":
		return apperrors.Newf(apperrors.ErrCodeInvalidParams, "%s不能小于%s", field, fe.Param())
	case "lte":
		return apperrors.Newf(apperrors.ErrCodeInvalidParams, "%s不能大于%s", field, fe.Param())
	case "oneof":
		return apperrors.Newf(apperrors.ErrCodeInvalidParams, "%s必须是[%s]之一", field, fe.Param())
	case "date":
		return apperrors.Newf(apperrors.ErrCodeInvalidFormat, "%s日期格式不正确", field)
	default:
		return apperrors.Newf(apperrors.ErrCodeInvalidParams, "%s不合法", field)
	}
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
