package repository

import (
	"context"

	"github.com/xyhcode/pdfmark-app/pkg/domain/model"
)

// PdfRepository 定义了文档元数据的持久化契约。
//
// 所有按外部标识的查询都同时以 UUID 和 UserID 作为过滤条件：
// 归属校验发生在查询谓词里，而不是取出记录之后再比较，
// 不属于当前用户的记录从一开始就不会被载入内存。
// 查询未命中时返回 (nil, nil)。
type PdfRepository interface {
	// Create 持久化一条新的文档记录，回填自增 ID。
	// UUID 列带唯一约束，由存储引擎兜底保证外部标识不重复。
	Create(ctx context.Context, pdf *model.Pdf) error

	// FindByUUIDAndUser 按 (外部标识, 归属用户) 查找单条记录
	FindByUUIDAndUser(ctx context.Context, uuid string, userID uint) (*model.Pdf, error)

	// FindAllByUser 返回用户的全部文档，按上传时间倒序
	FindAllByUser(ctx context.Context, userID uint) ([]*model.Pdf, error)

	// UpdateOriginalName 只更新显示名，其余字段不可变
	UpdateOriginalName(ctx context.Context, id uint, originalName string) error

	// DeleteWithHighlights 在同一事务中删除文档记录及其全部高亮记录
	DeleteWithHighlights(ctx context.Context, id uint) error
}
