package gormdb

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/geektext/internal/domain/user"
	apperrors "github.com/xiebiao/geektext/pkg/errors"
)

// userRepository 用户仓储实现
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := toUserModel(u)

	// 用户名唯一性由UNIQUE索引保证，冲突时转换为业务错误
	if err := dbFrom(ctx, r.db).Omit(clause.Associations).Create(model).Error; err != nil {
		return storageError(err, user.ErrUsernameDuplicate, "创建用户失败")
	}

	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找用户
func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var model UserModel
	if err := dbFrom(ctx, r.db).First(&model, id).Error; err != nil {
		return nil, notFoundOr(err, user.ErrUserNotFound, "查询用户失败")
	}
	return toUserEntity(&model), nil
}

// FindByUsername 根据用户名查找用户
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var model UserModel
	if err := dbFrom(ctx, r.db).Where("username = ?", username).First(&model).Error; err != nil {
		return nil, notFoundOr(err, user.ErrUserNotFound, "查询用户失败")
	}
	return toUserEntity(&model), nil
}

// List 全部用户
func (r *userRepository) List(ctx context.Context) ([]*user.User, error) {
	var models []UserModel
	if err := dbFrom(ctx, r.db).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询用户列表失败")
	}

	users := make([]*user.User, len(models))
	for i := range models {
		users[i] = toUserEntity(&models[i])
	}
	return users, nil
}

// Update 更新用户信息（用户名和管理员标记不在更新范围内）
// 调用方已在同一事务中查到该用户；MySQL的RowsAffected只统计实际变化的行，不能用来判断是否存在
func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	model := toUserModel(u)
	result := dbFrom(ctx, r.db).Model(model).
		Select("first_name", "last_name", "password", "updated_at").
		Updates(model)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新用户失败")
	}

	u.UpdatedAt = model.UpdatedAt
	return nil
}

// SetAdmin 设置管理员标记，调用方先按用户名查到用户
func (r *userRepository) SetAdmin(ctx context.Context, id uint, isAdmin bool) error {
	err := dbFrom(ctx, r.db).Model(&UserModel{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_admin": isAdmin, "updated_at": time.Now().UTC()}).Error
	if err != nil {
		return apperrors.Wrap(err, "更新管理员标记失败")
	}
	return nil
}

// Delete 删除用户及其心愿单、购物车、评分和评论
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return dbFrom(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		wishlists := tx.Model(&WishlistModel{}).Select("id").Where("user_id = ?", id)
		if err := tx.Where("wishlist_id IN (?)", wishlists).Delete(&WishlistBookModel{}).Error; err != nil {
			return apperrors.Wrap(err, "删除心愿单图书失败")
		}
		carts := tx.Model(&CartModel{}).Select("id").Where("user_id = ?", id)
		if err := tx.Where("cart_id IN (?)", carts).Delete(&CartBookModel{}).Error; err != nil {
			return apperrors.Wrap(err, "删除购物车图书失败")
		}

		for _, m := range []interface{}{&WishlistModel{}, &CartModel{}, &RatingModel{}, &CommentModel{}} {
			if err := tx.Where("user_id = ?", id).Delete(m).Error; err != nil {
				return apperrors.Wrap(err, "删除用户关联数据失败")
			}
		}

		result := tx.Delete(&UserModel{}, id)
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "删除用户失败")
		}
		if result.RowsAffected == 0 {
			return user.ErrUserNotFound
		}
		return nil
	})
}

func toUserModel(u *user.User) *UserModel {
	return &UserModel{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Password:  u.Password,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserEntity(model *UserModel) *user.User {
	return &user.User{
		ID:        model.ID,
		Username:  model.Username,
		FirstName: model.FirstName,
		LastName:  model.LastName,
		Password:  model.Password,
		IsAdmin:   model.IsAdmin,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
