package wishlist

import (
	"time"
)

// Wishlist 心愿单
// 每个用户最多一个（user_id唯一），与图书是多对多关系（wishlist_books关联表）
type Wishlist struct {
	ID        uint
	UserID    uint
	CreatedAt time.Time
}

// New 为用户创建心愿单
func New(userID uint) *Wishlist {
	return &Wishlist{UserID: userID, CreatedAt: time.Now()}
}
