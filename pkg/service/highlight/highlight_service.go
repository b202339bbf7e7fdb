/*
 * @Description: 高亮/批注记录的业务逻辑
 */
package highlight

import (
	"context"
	"fmt"
	"time"

	"github.com/xyhcode/pdfmark-app/pkg/constant"
	"github.com/xyhcode/pdfmark-app/pkg/domain/model"
	"github.com/xyhcode/pdfmark-app/pkg/domain/repository"
)

// CreateParams 是创建高亮时调用方提供的字段
type CreateParams struct {
	PageNumber int
	Text       string
	Position   model.Position
	Comment    string
}

// UpdateParams 是高亮的可变字段。Position 为 nil 表示不修改位置。
type UpdateParams struct {
	Position model.Position
	Comment  *string
}

// HighlightService 定义了高亮相关的业务逻辑接口。
// 所有操作都以归属用户为过滤条件，跨用户访问与记录不存在统一返回 ErrNotFound。
type HighlightService interface {
	// Create 在指定文档上创建一条高亮。文档按外部标识在当前用户名下解析，
	// 解析不到（包括文档属于别人）直接返回 ErrNotFound。
	Create(ctx context.Context, ownerID uint, pdfExternalID string, params CreateParams) (*model.Highlight, error)

	// ListByPdf 返回某文档下的全部高亮，最新创建的在前
	ListByPdf(ctx context.Context, ownerID uint, pdfExternalID string) ([]*model.Highlight, error)

	// Update 修改高亮的位置或评论
	Update(ctx context.Context, ownerID uint, id uint, params UpdateParams) (*model.Highlight, error)

	// Delete 删除一条高亮
	Delete(ctx context.Context, ownerID uint, id uint) error
}

type service struct {
	highlightRepo repository.HighlightRepository
	pdfRepo       repository.PdfRepository
}

// NewService 是 HighlightService 的构造函数
func NewService(highlightRepo repository.HighlightRepository, pdfRepo repository.PdfRepository) HighlightService {
	return &service{
		highlightRepo: highlightRepo,
		pdfRepo:       pdfRepo,
	}
}

// resolvePdf 在当前用户名下解析文档，未命中返回 ErrNotFound
func (s *service) resolvePdf(ctx context.Context, ownerID uint, externalID string) (*model.Pdf, error) {
	pdf, err := s.pdfRepo.FindByUUIDAndUser(ctx, externalID, ownerID)
	if err != nil {
		return nil, err
	}
	if pdf == nil {
		return nil, constant.ErrNotFound
	}
	return pdf, nil
}

func (s *service) Create(ctx context.Context, ownerID uint, pdfExternalID string, params CreateParams) (*model.Highlight, error) {
	if params.PageNumber <= 0 {
		return nil, fmt.Errorf("%w: 页码必须为正整数", constant.ErrValidation)
	}
	if params.Text == "" {
		return nil, fmt.Errorf("%w: 高亮文本不能为空", constant.ErrValidation)
	}

	pdf, err := s.resolvePdf(ctx, ownerID, pdfExternalID)
	if err != nil {
		return nil, err
	}

	hl := &model.Highlight{
		UserID:     ownerID,
		PdfID:      pdf.ID,
		PageNumber: params.PageNumber,
		Text:       params.Text,
		Position:   params.Position,
		Comment:    params.Comment,
		CreatedAt:  time.Now(),
	}
	if err := s.highlightRepo.Create(ctx, hl); err != nil {
		return nil, err
	}
	return hl, nil
}

func (s *service) ListByPdf(ctx context.Context, ownerID uint, pdfExternalID string) ([]*model.Highlight, error) {
	pdf, err := s.resolvePdf(ctx, ownerID, pdfExternalID)
	if err != nil {
		return nil, err
	}
	return s.highlightRepo.FindAllByPdf(ctx, pdf.ID, ownerID)
}

func (s *service) Update(ctx context.Context, ownerID uint, id uint, params UpdateParams) (*model.Highlight, error) {
	hl, err := s.highlightRepo.FindByIDAndUser(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if hl == nil {
		return nil, constant.ErrNotFound
	}

	if params.Position != nil {
		hl.Position = params.Position
	}
	if params.Comment != nil {
		hl.Comment = *params.Comment
	}

	if err := s.highlightRepo.Update(ctx, hl); err != nil {
		return nil, err
	}
	return hl, nil
}

func (s *service) Delete(ctx context.Context, ownerID uint, id uint) error {
	hl, err := s.highlightRepo.FindByIDAndUser(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if hl == nil {
		return constant.ErrNotFound
	}
	return s.highlightRepo.Delete(ctx, hl.ID)
}
