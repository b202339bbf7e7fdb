/*
 * @Description: 文档生命周期的核心业务逻辑（上传提交、解析、下载、重命名、删除）
 */
package pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"path/filepath"
	"time"

	"github.com/xyhcode/pdfmark-app/internal/infra/storage"
	"github.com/xyhcode/pdfmark-app/pkg/constant"
	"github.com/xyhcode/pdfmark-app/pkg/domain/model"
	"github.com/xyhcode/pdfmark-app/pkg/domain/repository"
	"github.com/xyhcode/pdfmark-app/pkg/idgen"
)

// PdfService 定义了文档相关的业务逻辑接口。
// 除 Upload 外的所有操作都以 (外部标识, 归属用户) 定位记录，
// 归属不匹配与记录不存在统一表现为 constant.ErrNotFound。
type PdfService interface {
	// Upload 把一个已落盘的临时文件提交为正式文档：
	// 分配外部标识 → 原子移动到上传目录 → 写入元数据。
	// 对调用方而言整个提交是全有或全无的。
	Upload(ctx context.Context, ownerID uint, tempPath, originalName string) (*model.Pdf, error)

	// List 返回用户的全部文档，最近上传的在前
	List(ctx context.Context, ownerID uint) ([]*model.Pdf, error)

	// Get 按外部标识返回单条文档元数据
	Get(ctx context.Context, ownerID uint, externalID string) (*model.Pdf, error)

	// Download 打开文档内容用于流式传输，调用方负责 Close。
	// 元数据存在而物理文件缺失时返回 constant.ErrFileMissing。
	Download(ctx context.Context, ownerID uint, externalID string) (*model.Pdf, io.ReadCloser, int64, error)

	// Rename 修改显示名。原始扩展名总是被重新拼接到新名字后面，
	// 存储文件名和外部标识不受影响，也不触碰文件系统。
	Rename(ctx context.Context, ownerID uint, externalID, newBaseName string) (*model.Pdf, error)

	// Delete 删除物理文件和元数据记录（先存储后元数据），同时级联删除该文档的高亮
	Delete(ctx context.Context, ownerID uint, externalID string) error
}

type service struct {
	pdfRepo   repository.PdfRepository
	store     storage.Driver
	allocator idgen.Allocator
}

// NewService 是 PdfService 的构造函数
func NewService(pdfRepo repository.PdfRepository, store storage.Driver, allocator idgen.Allocator) PdfService {
	return &service{
		pdfRepo:   pdfRepo,
		store:     store,
		allocator: allocator,
	}
}

func (s *service) Upload(ctx context.Context, ownerID uint, tempPath, originalName string) (*model.Pdf, error) {
	if tempPath == "" {
		return nil, constant.ErrMissingUpload
	}

	// 外部标识在这里显式分配，存储文件名只由它和原始扩展名推导，
	// 与显示名无关，因此后续重命名永远不需要移动文件。
	externalID := s.allocator.Allocate()
	storageKey := externalID + filepath.Ext(originalName)

	if err := s.store.Commit(tempPath, storageKey); err != nil {
		// 移动失败时不写任何元数据，临时文件留给上传中间件自己清理
		return nil, fmt.Errorf("提交文件到存储失败: %w", err)
	}

	pdf := &model.Pdf{
		UserID:       ownerID,
		OriginalName: originalName,
		FileName:     storageKey,
		UUID:         externalID,
		UploadDate:   time.Now(),
	}

	if err := s.pdfRepo.Create(ctx, pdf); err != nil {
		// 文件已就位但元数据写入失败：必须执行补偿删除，
		// 否则会留下一个没有任何记录指向的孤儿文件。
		if delErr := s.store.Delete(storageKey); delErr != nil {
			log.Printf("[完整性异常] 补偿删除文件 '%s' 失败: %v", storageKey, delErr)
		} else {
			log.Printf("[完整性异常] 元数据写入失败，已补偿删除文件 '%s'", storageKey)
		}
		return nil, fmt.Errorf("%w: %v", constant.ErrIntegrityFailure, err)
	}

	return pdf, nil
}

func (s *service) List(ctx context.Context, ownerID uint) ([]*model.Pdf, error) {
	return s.pdfRepo.FindAllByUser(ctx, ownerID)
}

// resolve 按 (外部标识, 归属用户) 定位记录，未命中统一返回 ErrNotFound
func (s *service) resolve(ctx context.Context, ownerID uint, externalID string) (*model.Pdf, error) {
	pdf, err := s.pdfRepo.FindByUUIDAndUser(ctx, externalID, ownerID)
	if err != nil {
		return nil, err
	}
	if pdf == nil {
		return nil, constant.ErrNotFound
	}
	return pdf, nil
}

func (s *service) Get(ctx context.Context, ownerID uint, externalID string) (*model.Pdf, error) {
	return s.resolve(ctx, ownerID, externalID)
}

func (s *service) Download(ctx context.Context, ownerID uint, externalID string) (*model.Pdf, io.ReadCloser, int64, error) {
	pdf, err := s.resolve(ctx, ownerID, externalID)
	if err != nil {
		return nil, nil, 0, err
	}

	reader, size, err := s.store.Open(pdf.FileName)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// 元数据和存储本应始终一致，出现分歧说明数据被外部篡改或损坏
			log.Printf("[完整性异常] 文档 '%s' 的元数据存在但物理文件 '%s' 缺失", pdf.UUID, pdf.FileName)
			return nil, nil, 0, fmt.Errorf("%w: %s", constant.ErrFileMissing, pdf.FileName)
		}
		return nil, nil, 0, fmt.Errorf("打开文档内容失败: %w", err)
	}

	return pdf, reader, size, nil
}

func (s *service) Rename(ctx context.Context, ownerID uint, externalID, newBaseName string) (*model.Pdf, error) {
	if newBaseName == "" {
		return nil, fmt.Errorf("%w: 新文件名不能为空", constant.ErrValidation)
	}

	pdf, err := s.resolve(ctx, ownerID, externalID)
	if err != nil {
		return nil, err
	}

	// 无论调用方给的新名字里带不带点号，都保留原始扩展名
	newName := newBaseName + filepath.Ext(pdf.OriginalName)
	if err := s.pdfRepo.UpdateOriginalName(ctx, pdf.ID, newName); err != nil {
		return nil, err
	}

	pdf.OriginalName = newName
	return pdf, nil
}

func (s *service) Delete(ctx context.Context, ownerID uint, externalID string) error {
	pdf, err := s.resolve(ctx, ownerID, externalID)
	if err != nil {
		return err
	}

	// 先删存储再删元数据：中途崩溃最多留下一条指向空文件的元数据记录，
	// 而不会留下无法被任何记录找到的文件。文件本就缺失时照常继续。
	if err := s.store.Delete(pdf.FileName); err != nil {
		return err
	}

	return s.pdfRepo.DeleteWithHighlights(ctx, pdf.ID)
}
