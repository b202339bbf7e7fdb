package repository

import (
	"context"

	"github.com/xyhcode/pdfmark-app/pkg/domain/model"
)

// HighlightRepository 定义了高亮记录的持久化契约。
// 与 PdfRepository 一样，按 ID 的查询总是附带 UserID 谓词，未命中返回 (nil, nil)。
type HighlightRepository interface {
	// Create 持久化一条新的高亮记录，回填自增 ID
	Create(ctx context.Context, hl *model.Highlight) error

	// FindByIDAndUser 按 (主键, 归属用户) 查找单条记录
	FindByIDAndUser(ctx context.Context, id uint, userID uint) (*model.Highlight, error)

	// FindAllByPdf 返回某文档下属于该用户的全部高亮，按创建时间倒序
	FindAllByPdf(ctx context.Context, pdfID uint, userID uint) ([]*model.Highlight, error)

	// Update 覆盖写入高亮的可变字段（位置、评论）
	Update(ctx context.Context, hl *model.Highlight) error

	// Delete 删除一条高亮记录
	Delete(ctx context.Context, id uint) error
}
