// internal/infra/persistence/database/database.go
package database

import (
	"fmt"
	"log"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/xyhcode/pdfmark-app/pkg/config"
)

// NewGormDB 根据配置连接数据库。默认使用 SQLite（纯 Go 驱动，无 cgo 依赖），
// 也支持 MySQL 和 PostgreSQL。
func NewGormDB(cfg *config.Config) (*gorm.DB, error) {
	dbType := cfg.GetString(config.KeyDBType)
	if dbType == "" {
		dbType = "sqlite"
	}

	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}
	if cfg.GetBool(config.KeyServerDebug) {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	}

	var dialector gorm.Dialector
	switch dbType {
	case "sqlite":
		name := cfg.GetString(config.KeyDBName)
		if name == "" {
			name = "data/pdfmark.db"
		}
		dialector = sqlite.Open(name)
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.GetString(config.KeyDBUser),
			cfg.GetString(config.KeyDBPassword),
			cfg.GetString(config.KeyDBHost),
			cfg.GetString(config.KeyDBPort),
			cfg.GetString(config.KeyDBName),
		)
		dialector = mysql.Open(dsn)
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.GetString(config.KeyDBHost),
			cfg.GetString(config.KeyDBUser),
			cfg.GetString(config.KeyDBPassword),
			cfg.GetString(config.KeyDBName),
			cfg.GetString(config.KeyDBPort),
		)
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("不支持的数据库类型: '%s'", dbType)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败 (类型: %s): %w", dbType, err)
	}

	log.Printf("数据库连接成功 (类型: %s)。", dbType)
	return db, nil
}
