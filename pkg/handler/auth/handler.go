package auth_handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	internal_auth "github.com/xyhcode/pdfmark-app/internal/pkg/auth"
	"github.com/xyhcode/pdfmark-app/pkg/constant"
	"github.com/xyhcode/pdfmark-app/pkg/response"
	"github.com/xyhcode/pdfmark-app/pkg/service/auth"
)

// AuthHandler 封装了所有认证相关的控制器方法
type AuthHandler struct {
	authSvc  auth.AuthService
	tokenSvc auth.TokenService
}

// NewAuthHandler 是 AuthHandler 的构造函数，用于依赖注入
func NewAuthHandler(authSvc auth.AuthService, tokenSvc auth.TokenService) *AuthHandler {
	return &AuthHandler{
		authSvc:  authSvc,
		tokenSvc: tokenSvc,
	}
}

// RegisterRequest 定义了注册请求的结构
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest 定义了登录请求的结构
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest 定义了刷新令牌请求的结构
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// UserInfoResponse 定义了返回给客户端的用户信息结构
type UserInfoResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Register 处理用户注册请求
// @Summary      用户注册
// @Description  通过姓名、邮箱和密码注册新用户
// @Tags         用户认证
// @Accept       json
// @Produce      json
// @Param        body  body      RegisterRequest  true  "注册信息"
// @Success      201   {object}  response.Response  "注册成功"
// @Failure      400   {object}  response.Response  "请求参数无效"
// @Failure      409   {object}  response.Response  "邮箱已被注册"
// @Failure      500   {object}  response.Response  "内部错误"
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "请求参数无效: "+err.Error())
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, constant.ErrConflict) {
			response.Fail(c, http.StatusConflict, err.Error())
		} else {
			response.Fail(c, http.StatusInternalServerError, "注册失败: "+err.Error())
		}
		return
	}

	response.SuccessWithStatus(c, http.StatusCreated, UserInfoResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, "注册成功")
}

// Login 处理用户登录请求
// @Summary      用户登录
// @Description  用户通过邮箱和密码进行登录
// @Tags         用户认证
// @Accept       json
// @Produce      json
// @Param        body  body      LoginRequest  true  "登录信息"
// @Success      200   {object}  response.Response  "登录成功"
// @Failure      400   {object}  response.Response  "邮箱或密码格式不正确"
// @Failure      401   {object}  response.Response  "认证失败"
// @Failure      500   {object}  response.Response  "内部错误"
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "邮箱或密码格式不正确")
		return
	}

	user, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, err.Error())
		return
	}

	accessToken, refreshToken, expires, err := h.tokenSvc.GenerateSessionTokens(c.Request.Context(), user)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "生成令牌失败: "+err.Error())
		return
	}

	response.Success(c, gin.H{
		"userInfo": UserInfoResponse{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		},
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"expires":      expires.Format(time.RFC3339),
	}, "登录成功")
}

// RefreshToken 处理刷新令牌请求
// @Summary      刷新令牌
// @Description  使用刷新令牌换取新的访问/刷新令牌对
// @Tags         用户认证
// @Accept       json
// @Produce      json
// @Param        body  body      RefreshTokenRequest  true  "刷新令牌"
// @Success      200   {object}  response.Response  "刷新成功"
// @Failure      400   {object}  response.Response  "请求参数无效"
// @Failure      401   {object}  response.Response  "无效令牌"
// @Router       /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "请求参数无效: "+err.Error())
		return
	}

	accessToken, refreshToken, expires, err := h.tokenSvc.RefreshSessionTokens(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, "无效或过期的刷新令牌")
		return
	}

	response.Success(c, gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"expires":      expires.Format(time.RFC3339),
	}, "令牌刷新成功")
}

// GetMe 返回当前登录用户的信息
// @Summary      获取当前用户
// @Description  返回访问令牌对应的用户信息
// @Tags         用户认证
// @Security     BearerAuth
// @Produce      json
// @Success      200   {object}  response.Response  "获取成功"
// @Failure      401   {object}  response.Response  "未授权"
// @Router       /auth/me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	claimsValue, exists := c.Get(internal_auth.ClaimsKey)
	if !exists {
		response.Fail(c, http.StatusUnauthorized, "无法获取用户认证信息")
		return
	}
	claims, ok := claimsValue.(*internal_auth.CustomClaims)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "用户认证信息格式不正确")
		return
	}

	user, err := h.authSvc.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, constant.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "用户不存在")
		} else {
			response.Fail(c, http.StatusInternalServerError, "获取用户信息失败: "+err.Error())
		}
		return
	}

	response.Success(c, UserInfoResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, "获取用户信息成功")
}
