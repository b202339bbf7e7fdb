// internal/infra/persistence/gormimpl/po.go
// 持久化对象（PO）定义与领域模型之间的转换。
// 领域层只认识 pkg/domain/model 里的纯结构体，GORM 标签收敛在本包内。
package gormimpl

import (
	"time"

	"gorm.io/gorm"

	"github.com/xyhcode/pdfmark-app/pkg/domain/model"
)

type userPO struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
}

func (userPO) TableName() string { return "users" }

type pdfPO struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       uint   `gorm:"index;not null"`
	OriginalName string `gorm:"not null"`
	FileName     string `gorm:"not null"`
	UUID         string `gorm:"uniqueIndex;not null"`
	UploadDate   time.Time
	// 为异步增强流程预留
	EmbeddingsGenerated bool `gorm:"default:false"`
}

func (pdfPO) TableName() string { return "pdfs" }

type highlightPO struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"index;not null"`
	PdfID      uint   `gorm:"index;not null"`
	PageNumber int    `gorm:"not null"`
	Text       string `gorm:"not null"`
	Position   model.Position `gorm:"type:json"`
	Comment    string
	AiSummary  string
	Keywords   model.StringList `gorm:"type:json"`
	VoiceNote  string
	CreatedAt  time.Time
}

func (highlightPO) TableName() string { return "highlights" }

// Migrate 同步数据库 Schema
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&userPO{}, &pdfPO{}, &highlightPO{})
}

func (po *userPO) toModel() *model.User {
	return &model.User{
		ID:           po.ID,
		Name:         po.Name,
		Email:        po.Email,
		PasswordHash: po.PasswordHash,
		CreatedAt:    po.CreatedAt,
	}
}

func (po *pdfPO) toModel() *model.Pdf {
	return &model.Pdf{
		ID:                  po.ID,
		UserID:              po.UserID,
		OriginalName:        po.OriginalName,
		FileName:            po.FileName,
		UUID:                po.UUID,
		UploadDate:          po.UploadDate,
		EmbeddingsGenerated: po.EmbeddingsGenerated,
	}
}

func (po *highlightPO) toModel() *model.Highlight {
	return &model.Highlight{
		ID:         po.ID,
		UserID:     po.UserID,
		PdfID:      po.PdfID,
		PageNumber: po.PageNumber,
		Text:       po.Text,
		Position:   po.Position,
		Comment:    po.Comment,
		AiSummary:  po.AiSummary,
		Keywords:   po.Keywords,
		VoiceNote:  po.VoiceNote,
		CreatedAt:  po.CreatedAt,
	}
}
