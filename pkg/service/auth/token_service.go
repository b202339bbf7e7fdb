package auth

import (
	"context"
	"fmt"
	"time"

	internal_auth "github.com/xyhcode/pdfmark-app/internal/pkg/auth"
	"github.com/xyhcode/pdfmark-app/pkg/constant"
	"github.com/xyhcode/pdfmark-app/pkg/domain/model"
	"github.com/xyhcode/pdfmark-app/pkg/domain/repository"
)

// TokenService 定义了会话令牌相关的业务逻辑接口
type TokenService interface {
	// GenerateSessionTokens 为用户签发一对访问/刷新令牌
	GenerateSessionTokens(ctx context.Context, user *model.User) (accessToken, refreshToken string, expires time.Time, err error)

	// ParseAccessToken 校验访问令牌并返回其中的用户信息
	ParseAccessToken(ctx context.Context, tokenStr string) (*internal_auth.CustomClaims, error)

	// RefreshSessionTokens 用刷新令牌换取一对新令牌
	RefreshSessionTokens(ctx context.Context, refreshToken string) (accessToken, newRefreshToken string, expires time.Time, err error)
}

type tokenService struct {
	secret   []byte
	userRepo repository.UserRepository
}

// NewTokenService 是 tokenService 的构造函数
func NewTokenService(secret []byte, userRepo repository.UserRepository) TokenService {
	return &tokenService{
		secret:   secret,
		userRepo: userRepo,
	}
}

func (s *tokenService) GenerateSessionTokens(ctx context.Context, user *model.User) (string, string, time.Time, error) {
	accessToken, err := internal_auth.GenerateToken(user.ID, user.Email, s.secret)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("生成访问令牌失败: %w", err)
	}

	refreshToken, err := internal_auth.GenerateRefreshToken(user.ID, s.secret)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("生成刷新令牌失败: %w", err)
	}

	expires := time.Now().Add(time.Minute * 15)
	return accessToken, refreshToken, expires, nil
}

func (s *tokenService) ParseAccessToken(ctx context.Context, tokenStr string) (*internal_auth.CustomClaims, error) {
	claims, err := internal_auth.ParseToken(tokenStr, s.secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", constant.ErrInvalidToken, err)
	}
	return claims, nil
}

func (s *tokenService) RefreshSessionTokens(ctx context.Context, refreshToken string) (string, string, time.Time, error) {
	claims, err := internal_auth.ParseToken(refreshToken, s.secret)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("%w: %v", constant.ErrInvalidToken, err)
	}

	// 刷新前确认用户仍然存在
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return "", "", time.Time{}, err
	}
	if user == nil {
		return "", "", time.Time{}, fmt.Errorf("%w: 用户不存在", constant.ErrInvalidToken)
	}

	return s.GenerateSessionTokens(ctx, user)
}
