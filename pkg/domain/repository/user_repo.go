package repository

import (
	"context"

	"github.com/xyhcode/pdfmark-app/pkg/domain/model"
)

// UserRepository 定义了用户数据操作的契约。
// 查询未命中时返回 (nil, nil)，错误仅表示存储层故障。
type UserRepository interface {
	// Create 持久化一个新用户，回填自增 ID
	Create(ctx context.Context, user *model.User) error

	// FindByID 根据用户ID查找用户
	FindByID(ctx context.Context, id uint) (*model.User, error)

	// FindByEmail 根据邮箱查找用户
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}
