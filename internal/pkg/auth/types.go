package auth

import "github.com/golang-jwt/jwt/v5"

// ClaimsKey 是用于在 gin.Context 中存储和检索用户信息结构体的键。
const ClaimsKey = "user_claims"

// CustomClaims 定义了 JWT 的自定义 Claims 结构体
type CustomClaims struct {
	UserID uint   `json:"user_id"` // 用户数据库ID
	Email  string `json:"email"`   // 用户邮箱
	jwt.RegisteredClaims
}
