package author

import (
	"context"
)

// Repository 作者仓储接口
type Repository interface {
	// Create 创建作者，回填ID
	Create(ctx context.Context, author *Author) error

	// FindByID 不存在时返回ErrAuthorNotFound
	FindByID(ctx context.Context, id uint) (*Author, error)

	// FindByName 按(first_name, last_name)查找，同名时返回最早创建的一个
	FindByName(ctx context.Context, firstName, lastName string) (*Author, error)

	// List 按ID升序返回全部作者
	List(ctx context.Context) ([]*Author, error)

	// Update 保存已修改的实体
	Update(ctx context.Context, author *Author) error

	// Delete 删除作者，并把其图书的author_id置空
	Delete(ctx context.Context, id uint) error
}
