package gormdb

import (
	"time"
)

// AuthorModel GORM作者模型
type AuthorModel struct {
	ID        uint      `gorm:"primaryKey"`
	FirstName string    `gorm:"index:idx_author_name;size:50;not null;comment:名"`
	LastName  string    `gorm:"index:idx_author_name;size:50;not null;comment:姓"`
	Publisher string    `gorm:"size:50;comment:出版社"`
	Bio       string    `gorm:"size:500;comment:简介"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (AuthorModel) TableName() string {
	return "authors"
}

// BookModel GORM图书模型
// 设计说明:
// 1. ISBN有唯一索引,防止重复
// 2. price不设数据库默认值，否则显式写入的0会被替换成默认值
// 3. 作者被删除时author_id置空(ON DELETE SET NULL)
// 4. 硬删除，删除后ISBN可以复用
// 5. 出版日期按UTC零点写入，MySQL连接需使用loc=UTC
type BookModel struct {
	ID            uint         `gorm:"primaryKey"`
	ISBN          string       `gorm:"uniqueIndex;size:20;not null;comment:ISBN号"`
	Title         string       `gorm:"index:idx_search;size:100;not null;comment:书名"`
	Description   string       `gorm:"size:500;not null;comment:图书描述"`
	Genre         string       `gorm:"index;size:100;not null;comment:类型"`
	Publisher     string       `gorm:"size:100;comment:出版社"`
	Price         int          `gorm:"index:idx_list;not null;comment:价格"`
	CopiesSold    int          `gorm:"not null;comment:销量"`
	DatePublished *time.Time   `gorm:"type:date;comment:出版日期"`
	AuthorID      *uint        `gorm:"index;comment:作者ID"`
	Author        *AuthorModel `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	CreatedAt     time.Time    `gorm:"index:idx_list;comment:创建时间"`
	UpdatedAt     time.Time    `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// UserModel GORM用户模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/user/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
type UserModel struct {
	ID        uint      `gorm:"primaryKey"`
	Username  string    `gorm:"uniqueIndex;size:50;not null;comment:用户名"`
	FirstName string    `gorm:"size:50;comment:名"`
	LastName  string    `gorm:"size:50;comment:姓"`
	Password  string    `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	IsAdmin   bool      `gorm:"not null;comment:是否管理员"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// WishlistModel GORM心愿单模型，user_id唯一保证每个用户最多一个
type WishlistModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex;not null;comment:用户ID"`
	User      UserModel `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
}

// TableName 指定表名
func (WishlistModel) TableName() string {
	return "wishlists"
}

// CartModel GORM购物车模型
type CartModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex;not null;comment:用户ID"`
	User      UserModel `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
}

// TableName 指定表名
func (CartModel) TableName() string {
	return "shopping_carts"
}

// WishlistBookModel 心愿单与图书的多对多关联
type WishlistBookModel struct {
	WishlistID uint          `gorm:"primaryKey;comment:心愿单ID"`
	BookID     uint          `gorm:"primaryKey;index;comment:图书ID"`
	Wishlist   WishlistModel `gorm:"constraint:OnDelete:CASCADE"`
	Book       BookModel     `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time     `gorm:"comment:加入时间"`
}

// TableName 指定表名
func (WishlistBookModel) TableName() string {
	return "wishlist_books"
}

// CartBookModel 购物车与图书的多对多关联
type CartBookModel struct {
	CartID    uint      `gorm:"primaryKey;comment:购物车ID"`
	BookID    uint      `gorm:"primaryKey;index;comment:图书ID"`
	Cart      CartModel `gorm:"constraint:OnDelete:CASCADE"`
	Book      BookModel `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"comment:加入时间"`
}

// TableName 指定表名
func (CartBookModel) TableName() string {
	return "cart_books"
}

// RatingModel GORM评分模型，(book_id, user_id)唯一
type RatingModel struct {
	ID        uint      `gorm:"primaryKey"`
	BookID    uint      `gorm:"uniqueIndex:idx_rating_book_user;not null;comment:图书ID"`
	UserID    uint      `gorm:"uniqueIndex:idx_rating_book_user;index;not null;comment:用户ID"`
	Book      BookModel `gorm:"constraint:OnDelete:CASCADE"`
	User      UserModel `gorm:"constraint:OnDelete:CASCADE"`
	Value     int       `gorm:"column:rating;not null;comment:评分(1-5)"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (RatingModel) TableName() string {
	return "ratings"
}

// CommentModel GORM评论模型
type CommentModel struct {
	ID        uint      `gorm:"primaryKey"`
	BookID    uint      `gorm:"index;not null;comment:图书ID"`
	UserID    uint      `gorm:"index;not null;comment:用户ID"`
	Book      BookModel `gorm:"constraint:OnDelete:CASCADE"`
	User      UserModel `gorm:"constraint:OnDelete:CASCADE"`
	Text      string    `gorm:"column:comment_text;size:200;not null;comment:评论内容"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
}

// TableName 指定表名
func (CommentModel) TableName() string {
	return "comments"
}
