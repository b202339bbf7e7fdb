package gormimpl

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/xyhcode/pdfmark-app/pkg/domain/model"
	"github.com/xyhcode/pdfmark-app/pkg/domain/repository"
)

type highlightRepo struct {
	db *gorm.DB
}

// NewHighlightRepository 是 HighlightRepository 的 GORM 实现的构造函数
func NewHighlightRepository(db *gorm.DB) repository.HighlightRepository {
	return &highlightRepo{db: db}
}

func (r *highlightRepo) Create(ctx context.Context, hl *model.Highlight) error {
	po := highlightPO{
		UserID:     hl.UserID,
		PdfID:      hl.PdfID,
		PageNumber: hl.PageNumber,
		Text:       hl.Text,
		Position:   hl.Position,
		Comment:    hl.Comment,
		AiSummary:  hl.AiSummary,
		Keywords:   hl.Keywords,
		VoiceNote:  hl.VoiceNote,
		CreatedAt:  hl.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&po).Error; err != nil {
		return fmt.Errorf("创建高亮记录失败: %w", err)
	}
	hl.ID = po.ID
	return nil
}

func (r *highlightRepo) FindByIDAndUser(ctx context.Context, id uint, userID uint) (*model.Highlight, error) {
	var po highlightPO
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询高亮失败: %w", err)
	}
	return po.toModel(), nil
}

func (r *highlightRepo) FindAllByPdf(ctx context.Context, pdfID uint, userID uint) ([]*model.Highlight, error) {
	var pos []highlightPO
	err := r.db.WithContext(ctx).
		Where("pdf_id = ? AND user_id = ?", pdfID, userID).
		Order("created_at DESC").
		Find(&pos).Error
	if err != nil {
		return nil, fmt.Errorf("查询高亮列表失败: %w", err)
	}

	result := make([]*model.Highlight, 0, len(pos))
	for i := range pos {
		result = append(result, pos[i].toModel())
	}
	return result, nil
}

func (r *highlightRepo) Update(ctx context.Context, hl *model.Highlight) error {
	err := r.db.WithContext(ctx).
		Model(&highlightPO{}).
		Where("id = ?", hl.ID).
		Updates(map[string]interface{}{
			"position": hl.Position,
			"comment":  hl.Comment,
		}).Error
	if err != nil {
		return fmt.Errorf("更新高亮记录失败: %w", err)
	}
	return nil
}

func (r *highlightRepo) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&highlightPO{}, id).Error; err != nil {
		return fmt.Errorf("删除高亮记录失败: %w", err)
	}
	return nil
}
