// pkg/handler/pdf/handler.go
package pdf

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/xyhcode/pdfmark-app/internal/infra/storage"
	"github.com/xyhcode/pdfmark-app/internal/pkg/auth"
	pdf_service "github.com/xyhcode/pdfmark-app/pkg/service/pdf"
)

// PdfHandler 负责处理所有与文档相关的HTTP请求
type PdfHandler struct {
	pdfSvc pdf_service.PdfService
	store  storage.Driver
}

// NewHandler 是 PdfHandler 的构造函数。
// store 用于承担上传中间件的职责：把 multipart 流落盘为临时文件。
func NewHandler(pdfSvc pdf_service.PdfService, store storage.Driver) *PdfHandler {
	return &PdfHandler{
		pdfSvc: pdfSvc,
		store:  store,
	}
}

// getClaims 从 gin.Context 中取出认证中间件写入的用户信息
func getClaims(c *gin.Context) (*auth.CustomClaims, error) {
	claimsValue, exists := c.Get(auth.ClaimsKey)
	if !exists {
		return nil, errors.New("无法获取用户认证信息")
	}
	claims, ok := claimsValue.(*auth.CustomClaims)
	if !ok {
		return nil, errors.New("用户认证信息格式不正确")
	}
	return claims, nil
}
