package user

import (
	apperrors "github.com/xiebiao/geektext/pkg/errors"
)

// Principal 当前请求的认证主体
// 每个请求从数据库重新加载，IsAdmin总是最新值
type Principal struct {
	UserID   uint
	Username string
	IsAdmin  bool
}

// PrincipalOf 由用户实体构造认证主体
func PrincipalOf(u *User) *Principal {
	return &Principal{UserID: u.ID, Username: u.Username, IsAdmin: u.IsAdmin}
}

// Action 受保护的操作类型
type Action string

const (
	ActionManageCatalog Action = "catalog:manage" // 增删改图书和作者
	ActionListUsers     Action = "users:list"     // 查看全部用户
	ActionAccessAccount Action = "account:access" // 访问某个用户的资料、心愿单、购物车
	ActionReview        Action = "book:review"    // 评分和评论
)

// Operation 一次待授权的操作
// Owner是被访问账户的用户名，仅ActionAccessAccount使用
type Operation struct {
	Action Action
	Owner  string
}

// Authorize 判断主体能否执行操作，nil表示允许
// 未认证返回ErrUnauthorized，已认证但无权限返回ErrForbidden
func Authorize(p *Principal, op Operation) error {
	if p == nil {
		return apperrors.ErrUnauthorized
	}
	if p.IsAdmin {
		return nil
	}

	switch op.Action {
	case ActionReview:
		return nil
	case ActionAccessAccount:
		if op.Owner != "" && op.Owner == p.Username {
			return nil
		}
	}
	return apperrors.ErrForbidden
}
