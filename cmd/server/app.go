// cmd/server/app.go
package server

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/xyhcode/pdfmark-app/internal/app/bootstrap"
	"github.com/xyhcode/pdfmark-app/internal/app/middleware"
	"github.com/xyhcode/pdfmark-app/internal/infra/persistence/database"
	"github.com/xyhcode/pdfmark-app/internal/infra/persistence/gormimpl"
	"github.com/xyhcode/pdfmark-app/internal/infra/router"
	"github.com/xyhcode/pdfmark-app/internal/infra/storage"
	"github.com/xyhcode/pdfmark-app/internal/pkg/utils"
	"github.com/xyhcode/pdfmark-app/pkg/config"
	auth_handler "github.com/xyhcode/pdfmark-app/pkg/handler/auth"
	highlight_handler "github.com/xyhcode/pdfmark-app/pkg/handler/highlight"
	pdf_handler "github.com/xyhcode/pdfmark-app/pkg/handler/pdf"
	"github.com/xyhcode/pdfmark-app/pkg/idgen"
	auth_service "github.com/xyhcode/pdfmark-app/pkg/service/auth"
	highlight_service "github.com/xyhcode/pdfmark-app/pkg/service/highlight"
	pdf_service "github.com/xyhcode/pdfmark-app/pkg/service/pdf"
)

// App 结构体，用于封装应用的所有核心组件
type App struct {
	cfg    *config.Config
	engine *gin.Engine
}

// NewApp 构建整个应用：配置 → 基础设施 → 仓库 → 服务 → 处理器 → 路由。
// 所有依赖在此处手动注入，保持构造顺序清晰可追踪。
func NewApp() (*App, func(), error) {
	// --- Phase 1: 加载外部配置 ---
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("加载配置失败: %w", err)
	}

	// --- Phase 2: 初始化基础设施 ---
	db, err := database.NewGormDB(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("创建数据库连接失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("获取底层数据库连接池失败: %w", err)
	}
	cleanup := func() {
		log.Println("执行清理操作：关闭数据库连接...")
		sqlDB.Close()
	}

	store, err := storage.NewLocalDriver(
		cfg.GetString(config.KeyStorageUploadDir),
		cfg.GetString(config.KeyStorageTempDir),
	)
	if err != nil {
		return nil, cleanup, fmt.Errorf("初始化本地存储失败: %w", err)
	}

	// --- Phase 3: 初始化数据仓库层 ---
	userRepo := gormimpl.NewUserRepository(db)
	pdfRepo := gormimpl.NewPdfRepository(db)
	highlightRepo := gormimpl.NewHighlightRepository(db)

	// --- Phase 4: 初始化应用引导程序 ---
	bootstrapper := bootstrap.NewBootstrapper(db)
	if err := bootstrapper.InitializeDatabase(); err != nil {
		return nil, cleanup, fmt.Errorf("数据库初始化失败: %w", err)
	}

	// --- Phase 5: 初始化业务逻辑层 ---
	jwtSecret := cfg.GetString(config.KeyJWTSecret)
	if jwtSecret == "" {
		// 未配置时生成随机密钥，仅当前进程有效，重启后所有令牌失效
		jwtSecret, err = utils.GenerateRandomString(32)
		if err != nil {
			return nil, cleanup, fmt.Errorf("生成 JWT 密钥失败: %w", err)
		}
		log.Println("警告: 未配置 JWT.Secret，已生成随机密钥（重启后已签发的令牌将全部失效）。")
	}

	tokenSvc := auth_service.NewTokenService([]byte(jwtSecret), userRepo)
	authSvc := auth_service.NewAuthService(userRepo)
	pdfSvc := pdf_service.NewService(pdfRepo, store, idgen.NewUUIDAllocator())
	highlightSvc := highlight_service.NewService(highlightRepo, pdfRepo)

	// --- Phase 6: 初始化处理器与中间件 ---
	mw := middleware.NewMiddleware(tokenSvc)
	authHandler := auth_handler.NewAuthHandler(authSvc, tokenSvc)
	pdfHandler := pdf_handler.NewHandler(pdfSvc, store)
	highlightHandler := highlight_handler.NewHandler(highlightSvc)

	// --- Phase 7: 配置 Gin 引擎并注册路由 ---
	if cfg.GetBool(config.KeyServerDebug) {
		gin.SetMode(gin.DebugMode)
		log.Println("运行模式: Debug (Gin 将打印详细路由日志)")
	} else {
		gin.SetMode(gin.ReleaseMode)
		log.Println("运行模式: Release (Gin 启动日志已禁用)")
	}

	engine := gin.Default()
	if err := engine.SetTrustedProxies([]string{"127.0.0.1", "::1", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}); err != nil {
		return nil, cleanup, fmt.Errorf("设置信任代理失败: %w", err)
	}
	engine.ForwardedByClientIP = true

	appRouter := router.NewRouter(authHandler, pdfHandler, highlightHandler, mw)
	appRouter.Register(engine)

	return &App{cfg: cfg, engine: engine}, cleanup, nil
}

func (a *App) Config() *config.Config {
	return a.cfg
}

func (a *App) Engine() *gin.Engine {
	return a.engine
}

func (a *App) Run() error {
	port := a.cfg.GetString(config.KeyServerPort)
	if port == "" {
		port = "8080"
	}
	fmt.Printf("应用程序启动成功，正在监听端口: %s\n", port)

	return a.engine.Run(":" + port)
}
