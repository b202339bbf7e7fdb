// internal/infra/router/router.go
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/xyhcode/pdfmark-app/internal/app/middleware"
	auth_handler "github.com/xyhcode/pdfmark-app/pkg/handler/auth"
	highlight_handler "github.com/xyhcode/pdfmark-app/pkg/handler/highlight"
	pdf_handler "github.com/xyhcode/pdfmark-app/pkg/handler/pdf"
)

// Router 封装了应用的所有路由和其依赖的处理器。
type Router struct {
	authHandler      *auth_handler.AuthHandler
	pdfHandler       *pdf_handler.PdfHandler
	highlightHandler *highlight_handler.HighlightHandler
	mw               *middleware.Middleware
}

// NewRouter 是 Router 的构造函数，通过依赖注入接收所有处理器。
func NewRouter(
	authHandler *auth_handler.AuthHandler,
	pdfHandler *pdf_handler.PdfHandler,
	highlightHandler *highlight_handler.HighlightHandler,
	mw *middleware.Middleware,
) *Router {
	return &Router{
		authHandler:      authHandler,
		pdfHandler:       pdfHandler,
		highlightHandler: highlightHandler,
		mw:               mw,
	}
}

// Register 把所有路由挂到 gin 引擎上
func (r *Router) Register(engine *gin.Engine) {
	engine.Use(middleware.Cors())

	api := engine.Group("/api")

	// 认证路由
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/refresh", r.authHandler.RefreshToken)
		authGroup.GET("/me", r.mw.JWTAuth(), r.authHandler.GetMe)
	}

	// 文档路由，全部需要认证
	pdfGroup := api.Group("/pdfs", r.mw.JWTAuth())
	{
		pdfGroup.POST("/upload", r.pdfHandler.Upload)
		pdfGroup.GET("", r.pdfHandler.List)
		// download 必须先于 :uuid 注册，避免被参数路由吞掉
		pdfGroup.GET("/download/:uuid", r.pdfHandler.Download)
		pdfGroup.GET("/:uuid", r.pdfHandler.GetByUUID)
		pdfGroup.PUT("/:uuid/rename", r.pdfHandler.Rename)
		pdfGroup.DELETE("/:uuid", r.pdfHandler.Delete)
	}

	// 高亮路由，全部需要认证
	highlightGroup := api.Group("/highlights", r.mw.JWTAuth())
	{
		highlightGroup.POST("", r.highlightHandler.Create)
		highlightGroup.GET("/pdf/:uuid", r.highlightHandler.ListByPdf)
		highlightGroup.PUT("/:id", r.highlightHandler.Update)
		highlightGroup.DELETE("/:id", r.highlightHandler.Delete)
	}
}
