package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/geektext/internal/domain/user"
)

// AdminUseCase 授予或收回管理员权限
// 只通过命令行调用，HTTP接口不开放
type AdminUseCase struct {
	userRepo user.Repository
}

// NewAdminUseCase 创建用例
func NewAdminUseCase(userRepo user.Repository) *AdminUseCase {
	return &AdminUseCase{userRepo: userRepo}
}

// Execute 设置用户的管理员标记
// 下一个请求起生效，不需要重新登录
func (uc *AdminUseCase) Execute(ctx context.Context, username string, isAdmin bool) (*user.User, error) {
	u, err := uc.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.SetAdmin(ctx, u.ID, isAdmin); err != nil {
		return nil, err
	}
	u.IsAdmin = isAdmin

	zap.L().Info("管理员标记已更新", zap.String("username", username), zap.Bool("is_admin", isAdmin))
	return u, nil
}
