package gormimpl

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/xyhcode/pdfmark-app/pkg/domain/model"
	"github.com/xyhcode/pdfmark-app/pkg/domain/repository"
)

type pdfRepo struct {
	db *gorm.DB
}

// NewPdfRepository 是 PdfRepository 的 GORM 实现的构造函数
func NewPdfRepository(db *gorm.DB) repository.PdfRepository {
	return &pdfRepo{db: db}
}

func (r *pdfRepo) Create(ctx context.Context, pdf *model.Pdf) error {
	po := pdfPO{
		UserID:              pdf.UserID,
		OriginalName:        pdf.OriginalName,
		FileName:            pdf.FileName,
		UUID:                pdf.UUID,
		UploadDate:          pdf.UploadDate,
		EmbeddingsGenerated: pdf.EmbeddingsGenerated,
	}
	if err := r.db.WithContext(ctx).Create(&po).Error; err != nil {
		return fmt.Errorf("创建文档记录失败: %w", err)
	}
	pdf.ID = po.ID
	return nil
}

// FindByUUIDAndUser 归属校验直接落在查询谓词上，
// 不属于该用户的记录与不存在的记录在这里没有区别。
func (r *pdfRepo) FindByUUIDAndUser(ctx context.Context, uuid string, userID uint) (*model.Pdf, error) {
	var po pdfPO
	err := r.db.WithContext(ctx).
		Where("uuid = ? AND user_id = ?", uuid, userID).
		First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询文档失败: %w", err)
	}
	return po.toModel(), nil
}

func (r *pdfRepo) FindAllByUser(ctx context.Context, userID uint) ([]*model.Pdf, error) {
	var pos []pdfPO
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("upload_date DESC").
		Find(&pos).Error
	if err != nil {
		return nil, fmt.Errorf("查询文档列表失败: %w", err)
	}

	result := make([]*model.Pdf, 0, len(pos))
	for i := range pos {
		result = append(result, pos[i].toModel())
	}
	return result, nil
}

func (r *pdfRepo) UpdateOriginalName(ctx context.Context, id uint, originalName string) error {
	err := r.db.WithContext(ctx).
		Model(&pdfPO{}).
		Where("id = ?", id).
		Update("original_name", originalName).Error
	if err != nil {
		return fmt.Errorf("更新文档显示名失败: %w", err)
	}
	return nil
}

// DeleteWithHighlights 在同一事务中删除文档记录及其全部高亮，
// 避免留下引用已删除文档的孤儿高亮。
func (r *pdfRepo) DeleteWithHighlights(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pdf_id = ?", id).Delete(&highlightPO{}).Error; err != nil {
			return err
		}
		return tx.Delete(&pdfPO{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("删除文档记录失败: %w", err)
	}
	return nil
}
