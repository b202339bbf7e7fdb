package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xyhcode/pdfmark-app/pkg/constant"
	"github.com/xyhcode/pdfmark-app/pkg/domain/model"
)

type fakeUserRepo struct {
	users  map[uint]*model.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*model.User), nextID: 1}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	user.ID = r.nextID
	r.nextID++
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uint) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("注册成功后邮箱被规范化为小写", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepo())
		user, err := svc.Register(ctx, "李四", "  LiSi@Example.COM ", "password123")
		if err != nil {
			t.Fatalf("注册失败: %v", err)
		}
		if user.Email != "lisi@example.com" {
			t.Errorf("邮箱未规范化: %q", user.Email)
		}
		if user.ID == 0 {
			t.Error("注册后应回填 ID")
		}
		if user.PasswordHash == "password123" || user.PasswordHash == "" {
			t.Error("密码必须以哈希形式存储")
		}
	})

	t.Run("重复邮箱返回ErrConflict", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepo())
		if _, err := svc.Register(ctx, "甲", "same@example.com", "password1"); err != nil {
			t.Fatalf("首次注册失败: %v", err)
		}
		// 大小写不同也算同一个邮箱
		_, err := svc.Register(ctx, "乙", "SAME@example.com", "password2")
		if !errors.Is(err, constant.ErrConflict) {
			t.Errorf("期望 ErrConflict, got %v", err)
		}
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	if _, err := svc.Register(ctx, "王五", "wangwu@example.com", "correct-password"); err != nil {
		t.Fatalf("准备用户失败: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{"正确的邮箱和密码", "wangwu@example.com", "correct-password", false},
		{"邮箱大小写不敏感", "WangWu@Example.com", "correct-password", false},
		{"密码错误", "wangwu@example.com", "wrong-password", true},
		{"用户不存在", "nobody@example.com", "correct-password", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Login(ctx, tt.email, tt.password)
			if tt.wantErr {
				// 用户不存在和密码错误必须是同一个错误，不暴露邮箱是否已注册
				if !errors.Is(err, constant.ErrUnauthorized) {
					t.Errorf("期望 ErrUnauthorized, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("登录失败: %v", err)
			}
			if user.Email != "wangwu@example.com" {
				t.Errorf("返回的用户错误: %+v", user)
			}
		})
	}
}

func TestTokenService(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	secret := []byte("session-token-test-secret")
	tokenSvc := NewTokenService(secret, repo)

	user := &model.User{Name: "赵六", Email: "zhaoliu@example.com", PasswordHash: "h", CreatedAt: time.Now()}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("准备用户失败: %v", err)
	}

	t.Run("签发的访问令牌可解析回用户信息", func(t *testing.T) {
		access, refresh, expires, err := tokenSvc.GenerateSessionTokens(ctx, user)
		if err != nil {
			t.Fatalf("签发失败: %v", err)
		}
		if access == "" || refresh == "" {
			t.Fatal("令牌不应为空")
		}
		if !expires.After(time.Now()) {
			t.Error("过期时间应在未来")
		}

		claims, err := tokenSvc.ParseAccessToken(ctx, access)
		if err != nil {
			t.Fatalf("解析失败: %v", err)
		}
		if claims.UserID != user.ID || claims.Email != user.Email {
			t.Errorf("声明内容错误: %+v", claims)
		}
	})

	t.Run("无效令牌返回ErrInvalidToken", func(t *testing.T) {
		if _, err := tokenSvc.ParseAccessToken(ctx, "garbage"); !errors.Is(err, constant.ErrInvalidToken) {
			t.Errorf("期望 ErrInvalidToken, got %v", err)
		}
	})

	t.Run("刷新令牌可换取新令牌对", func(t *testing.T) {
		_, refresh, _, err := tokenSvc.GenerateSessionTokens(ctx, user)
		if err != nil {
			t.Fatalf("签发失败: %v", err)
		}

		newAccess, newRefresh, _, err := tokenSvc.RefreshSessionTokens(ctx, refresh)
		if err != nil {
			t.Fatalf("刷新失败: %v", err)
		}
		if newAccess == "" || newRefresh == "" {
			t.Error("新令牌不应为空")
		}
		claims, err := tokenSvc.ParseAccessToken(ctx, newAccess)
		if err != nil || claims.UserID != user.ID {
			t.Errorf("新访问令牌解析错误: claims=%v err=%v", claims, err)
		}
	})

	t.Run("用户已不存在时拒绝刷新", func(t *testing.T) {
		ghost := &model.User{Name: "幽灵", Email: "ghost@example.com", PasswordHash: "h", CreatedAt: time.Now()}
		if err := repo.Create(ctx, ghost); err != nil {
			t.Fatalf("准备用户失败: %v", err)
		}
		_, refresh, _, err := tokenSvc.GenerateSessionTokens(ctx, ghost)
		if err != nil {
			t.Fatalf("签发失败: %v", err)
		}
		delete(repo.users, ghost.ID)

		if _, _, _, err := tokenSvc.RefreshSessionTokens(ctx, refresh); !errors.Is(err, constant.ErrInvalidToken) {
			t.Errorf("期望 ErrInvalidToken, got %v", err)
		}
	})
}
