package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xyhcode/pdfmark-app/internal/pkg/security"
	"github.com/xyhcode/pdfmark-app/pkg/constant"
	"github.com/xyhcode/pdfmark-app/pkg/domain/model"
	"github.com/xyhcode/pdfmark-app/pkg/domain/repository"
)

// AuthService 定义了注册登录相关的业务逻辑接口
type AuthService interface {
	// Register 注册新用户。密码哈希在这里显式完成，而不是藏在持久层的钩子里。
	Register(ctx context.Context, name, email, password string) (*model.User, error)

	// Login 校验邮箱和密码，成功返回用户
	Login(ctx context.Context, email, password string) (*model.User, error)

	// GetUserByID 通过用户ID获取用户信息
	GetUserByID(ctx context.Context, userID uint) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
}

// NewAuthService 是 authService 的构造函数
func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	// 邮箱统一转换为小写
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("数据库查询失败: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: 该邮箱已被注册", constant.ErrConflict)
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("密码哈希失败: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("数据库查询失败: %w", err)
	}
	// 用户不存在和密码错误返回同一个提示，不暴露邮箱是否已注册
	if user == nil || !security.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: 账号或密码错误", constant.ErrUnauthorized)
	}

	return user, nil
}

func (s *authService) GetUserByID(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, constant.ErrNotFound
	}
	return user, nil
}
