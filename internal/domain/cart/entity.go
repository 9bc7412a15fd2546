package cart

import (
	"time"
)

// ShoppingCart 购物车
// 每个用户最多一个（user_id唯一），与图书是多对多关系（cart_books关联表）
type ShoppingCart struct {
	ID        uint
	UserID    uint
	CreatedAt time.Time
}

// New 为用户创建购物车
func New(userID uint) *ShoppingCart {
	return &ShoppingCart{UserID: userID, CreatedAt: time.Now()}
}
