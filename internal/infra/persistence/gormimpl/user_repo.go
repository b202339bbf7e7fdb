package gormimpl

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/xyhcode/pdfmark-app/pkg/domain/model"
	"github.com/xyhcode/pdfmark-app/pkg/domain/repository"
)

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository 是 UserRepository 的 GORM 实现的构造函数
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	po := userPO{
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&po).Error; err != nil {
		return fmt.Errorf("创建用户记录失败: %w", err)
	}
	user.ID = po.ID
	return nil
}

func (r *userRepo) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var po userPO
	err := r.db.WithContext(ctx).First(&po, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return po.toModel(), nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var po userPO
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return po.toModel(), nil
}
