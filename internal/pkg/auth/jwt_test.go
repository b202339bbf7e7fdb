package auth

import (
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret-for-unit-tests")

	t.Run("访问令牌签发后可解析出用户信息", func(t *testing.T) {
		tokenStr, err := GenerateToken(42, "user@example.com", secret)
		if err != nil {
			t.Fatalf("签发失败: %v", err)
		}

		claims, err := ParseToken(tokenStr, secret)
		if err != nil {
			t.Fatalf("解析失败: %v", err)
		}
		if claims.UserID != 42 {
			t.Errorf("UserID: got %d, want 42", claims.UserID)
		}
		if claims.Email != "user@example.com" {
			t.Errorf("Email: got %q", claims.Email)
		}
		if claims.Issuer != issuer {
			t.Errorf("Issuer: got %q, want %q", claims.Issuer, issuer)
		}
	})

	t.Run("刷新令牌签发后可解析出用户ID", func(t *testing.T) {
		tokenStr, err := GenerateRefreshToken(7, secret)
		if err != nil {
			t.Fatalf("签发失败: %v", err)
		}
		claims, err := ParseToken(tokenStr, secret)
		if err != nil {
			t.Fatalf("解析失败: %v", err)
		}
		if claims.UserID != 7 {
			t.Errorf("UserID: got %d, want 7", claims.UserID)
		}
	})

	t.Run("密钥不匹配时解析失败", func(t *testing.T) {
		tokenStr, err := GenerateToken(1, "a@b.com", secret)
		if err != nil {
			t.Fatalf("签发失败: %v", err)
		}
		if _, err := ParseToken(tokenStr, []byte("another-secret")); err == nil {
			t.Error("用错误密钥解析应失败")
		}
	})

	t.Run("伪造的令牌解析失败", func(t *testing.T) {
		if _, err := ParseToken("not.a.token", secret); err == nil {
			t.Error("解析伪造令牌应失败")
		}
	})

	t.Run("空密钥直接拒绝", func(t *testing.T) {
		if _, err := GenerateToken(1, "a@b.com", nil); err == nil {
			t.Error("空密钥签发应失败")
		}
		if _, err := ParseToken("whatever", nil); err == nil {
			t.Error("空密钥解析应失败")
		}
	})
}
