package gormdb

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "github.com/xiebiao/geektext/pkg/errors"
)

// membership 心愿单/购物车共用的关联表操作
// ownerColumn是心愿单或购物车ID所在的列，row构造关联表模型
type membership struct {
	db          *gorm.DB
	table       string
	ownerColumn string
	row         func(ownerID, bookID uint) interface{}
}

var (
	wishlistBooks = membership{
		table:       "wishlist_books",
		ownerColumn: "wishlist_id",
		row: func(ownerID, bookID uint) interface{} {
			return &WishlistBookModel{WishlistID: ownerID, BookID: bookID}
		},
	}
	cartBooks = membership{
		table:       "cart_books",
		ownerColumn: "cart_id",
		row: func(ownerID, bookID uint) interface{} {
			return &CartBookModel{CartID: ownerID, BookID: bookID}
		},
	}
)

func (m membership) with(db *gorm.DB) membership {
	m.db = db
	return m
}

// add 插入关联，已存在时忽略
func (m membership) add(ctx context.Context, ownerID, bookID uint) error {
	err := dbFrom(ctx, m.db).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(m.row(ownerID, bookID)).Error
	if err != nil {
		return storageError(err, nil, "添加图书失败")
	}
	return nil
}

// remove 删除关联，返回是否删除了记录
func (m membership) remove(ctx context.Context, ownerID, bookID uint) (bool, error) {
	result := dbFrom(ctx, m.db).
		Where(m.ownerColumn+" = ? AND book_id = ?", ownerID, bookID).
		Delete(m.row(0, 0))
	if result.Error != nil {
		return false, apperrors.Wrap(result.Error, "移除图书失败")
	}
	return result.RowsAffected > 0, nil
}

func (m membership) has(ctx context.Context, ownerID, bookID uint) (bool, error) {
	var count int64
	err := dbFrom(ctx, m.db).Model(m.row(0, 0)).
		Where(m.ownerColumn+" = ? AND book_id = ?", ownerID, bookID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, "查询图书关联失败")
	}
	return count > 0, nil
}

// books 按加入顺序返回图书
func (m membership) books(ctx context.Context, ownerID uint) ([]BookModel, error) {
	var models []BookModel
	err := dbFrom(ctx, m.db).Model(&BookModel{}).
		Joins("JOIN "+m.table+" ON "+m.table+".book_id = books.id").
		Where(m.table+"."+m.ownerColumn+" = ?", ownerID).
		Order(m.table + ".created_at ASC").
		Order("books.id ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return models, nil
}
