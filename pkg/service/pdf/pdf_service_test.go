package pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/xyhcode/pdfmark-app/internal/infra/storage"
	"github.com/xyhcode/pdfmark-app/pkg/constant"
	"github.com/xyhcode/pdfmark-app/pkg/domain/model"
)

// fakePdfRepo 是 PdfRepository 的内存实现，failCreate 用于模拟元数据写入失败
type fakePdfRepo struct {
	pdfs       map[uint]*model.Pdf
	nextID     uint
	failCreate bool
}

func newFakePdfRepo() *fakePdfRepo {
	return &fakePdfRepo{pdfs: make(map[uint]*model.Pdf), nextID: 1}
}

func (r *fakePdfRepo) Create(ctx context.Context, pdf *model.Pdf) error {
	if r.failCreate {
		return errors.New("模拟的数据库写入失败")
	}
	pdf.ID = r.nextID
	r.nextID++
	cp := *pdf
	r.pdfs[pdf.ID] = &cp
	return nil
}

func (r *fakePdfRepo) FindByUUIDAndUser(ctx context.Context, uuid string, userID uint) (*model.Pdf, error) {
	for _, p := range r.pdfs {
		if p.UUID == uuid && p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePdfRepo) FindAllByUser(ctx context.Context, userID uint) ([]*model.Pdf, error) {
	var result []*model.Pdf
	for _, p := range r.pdfs {
		if p.UserID == userID {
			cp := *p
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].UploadDate.After(result[j].UploadDate)
	})
	return result, nil
}

func (r *fakePdfRepo) UpdateOriginalName(ctx context.Context, id uint, originalName string) error {
	p, ok := r.pdfs[id]
	if !ok {
		return errors.New("记录不存在")
	}
	p.OriginalName = originalName
	return nil
}

func (r *fakePdfRepo) DeleteWithHighlights(ctx context.Context, id uint) error {
	delete(r.pdfs, id)
	return nil
}

// seqAllocator 生成可预期的外部标识，便于断言存储文件名
type seqAllocator struct {
	n int
}

func (a *seqAllocator) Allocate() string {
	a.n++
	return fmt.Sprintf("uuid-%04d", a.n)
}

type testEnv struct {
	svc     PdfService
	repo    *fakePdfRepo
	baseDir string
	tempDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	baseDir := filepath.Join(t.TempDir(), "uploads")
	tempDir := filepath.Join(t.TempDir(), "temp")
	store, err := storage.NewLocalDriver(baseDir, tempDir)
	if err != nil {
		t.Fatalf("初始化本地存储失败: %v", err)
	}
	repo := newFakePdfRepo()
	return &testEnv{
		svc:     NewService(repo, store, &seqAllocator{}),
		repo:    repo,
		baseDir: baseDir,
		tempDir: tempDir,
	}
}

// writeTemp 在临时目录落盘一个待提交的上传文件
func (e *testEnv) writeTemp(t *testing.T, content string) string {
	t.Helper()
	f, err := os.CreateTemp(e.tempDir, "upload-*.tmp")
	if err != nil {
		t.Fatalf("创建临时文件失败: %v", err)
	}
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("写入临时文件失败: %v", err)
	}
	f.Close()
	return f.Name()
}

func TestUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("上传成功后可按外部标识取回", func(t *testing.T) {
		env := newTestEnv(t)
		tempPath := env.writeTemp(t, "%PDF-1.4 测试内容")

		pdf, err := env.svc.Upload(ctx, 1, tempPath, "年度报告.pdf")
		if err != nil {
			t.Fatalf("上传失败: %v", err)
		}
		if pdf.OriginalName != "年度报告.pdf" {
			t.Errorf("显示名错误: got %q", pdf.OriginalName)
		}
		if pdf.FileName != pdf.UUID+".pdf" {
			t.Errorf("存储文件名应为 外部标识+扩展名: got %q, uuid %q", pdf.FileName, pdf.UUID)
		}
		if _, err := os.Stat(filepath.Join(env.baseDir, pdf.FileName)); err != nil {
			t.Errorf("提交后物理文件应存在: %v", err)
		}
		if _, err := os.Stat(tempPath); !os.IsNotExist(err) {
			t.Errorf("提交后临时文件应已被移走")
		}

		got, err := env.svc.Get(ctx, 1, pdf.UUID)
		if err != nil {
			t.Fatalf("取回失败: %v", err)
		}
		if got.ID != pdf.ID || got.OriginalName != pdf.OriginalName {
			t.Errorf("取回的记录与上传结果不一致: %+v vs %+v", got, pdf)
		}
	})

	t.Run("缺少临时文件路径时返回ErrMissingUpload", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.svc.Upload(ctx, 1, "", "a.pdf")
		if !errors.Is(err, constant.ErrMissingUpload) {
			t.Errorf("期望 ErrMissingUpload, got %v", err)
		}
	})

	t.Run("元数据写入失败时执行补偿删除", func(t *testing.T) {
		env := newTestEnv(t)
		env.repo.failCreate = true
		tempPath := env.writeTemp(t, "内容")

		_, err := env.svc.Upload(ctx, 1, tempPath, "a.pdf")
		if !errors.Is(err, constant.ErrIntegrityFailure) {
			t.Fatalf("期望 ErrIntegrityFailure, got %v", err)
		}

		// 上传目录里不允许留下孤儿文件
		entries, readErr := os.ReadDir(env.baseDir)
		if readErr != nil {
			t.Fatalf("读取上传目录失败: %v", readErr)
		}
		if len(entries) != 0 {
			t.Errorf("补偿删除后上传目录应为空, 实际有 %d 个文件", len(entries))
		}
	})
}

func TestRename(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		newBaseName string
		want        string
	}{
		{"普通重命名保留扩展名", "项目总结", "项目总结.pdf"},
		{"新名字带点号时仍拼接原扩展名", "final.v2", "final.v2.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			pdf, err := env.svc.Upload(ctx, 1, env.writeTemp(t, "x"), "原名.pdf")
			if err != nil {
				t.Fatalf("上传失败: %v", err)
			}
			oldFileName := pdf.FileName

			renamed, err := env.svc.Rename(ctx, 1, pdf.UUID, tt.newBaseName)
			if err != nil {
				t.Fatalf("重命名失败: %v", err)
			}
			if renamed.OriginalName != tt.want {
				t.Errorf("显示名: got %q, want %q", renamed.OriginalName, tt.want)
			}
			if renamed.FileName != oldFileName {
				t.Errorf("重命名不应改变存储文件名: got %q, want %q", renamed.FileName, oldFileName)
			}
			if _, err := os.Stat(filepath.Join(env.baseDir, oldFileName)); err != nil {
				t.Errorf("重命名不应触碰物理文件: %v", err)
			}
		})
	}

	t.Run("空名字返回ErrValidation", func(t *testing.T) {
		env := newTestEnv(t)
		pdf, _ := env.svc.Upload(ctx, 1, env.writeTemp(t, "x"), "a.pdf")
		_, err := env.svc.Rename(ctx, 1, pdf.UUID, "")
		if !errors.Is(err, constant.ErrValidation) {
			t.Errorf("期望 ErrValidation, got %v", err)
		}
	})
}

func TestOwnershipScoping(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	pdf, err := env.svc.Upload(ctx, 1, env.writeTemp(t, "x"), "私有文档.pdf")
	if err != nil {
		t.Fatalf("上传失败: %v", err)
	}

	// 其他用户对这条记录的任何操作都表现为记录不存在
	if _, err := env.svc.Get(ctx, 2, pdf.UUID); !errors.Is(err, constant.ErrNotFound) {
		t.Errorf("Get: 期望 ErrNotFound, got %v", err)
	}
	if _, err := env.svc.Rename(ctx, 2, pdf.UUID, "改名"); !errors.Is(err, constant.ErrNotFound) {
		t.Errorf("Rename: 期望 ErrNotFound, got %v", err)
	}
	if err := env.svc.Delete(ctx, 2, pdf.UUID); !errors.Is(err, constant.ErrNotFound) {
		t.Errorf("Delete: 期望 ErrNotFound, got %v", err)
	}

	// 归属用户自己访问不受影响
	if _, err := env.svc.Get(ctx, 1, pdf.UUID); err != nil {
		t.Errorf("归属用户访问失败: %v", err)
	}
}

func TestDownload(t *testing.T) {
	ctx := context.Background()

	t.Run("下载返回完整内容", func(t *testing.T) {
		env := newTestEnv(t)
		pdf, err := env.svc.Upload(ctx, 1, env.writeTemp(t, "%PDF-文档字节"), "a.pdf")
		if err != nil {
			t.Fatalf("上传失败: %v", err)
		}

		got, reader, size, err := env.svc.Download(ctx, 1, pdf.UUID)
		if err != nil {
			t.Fatalf("下载失败: %v", err)
		}
		defer reader.Close()

		data, err := io.ReadAll(reader)
		if err != nil {
			t.Fatalf("读取内容失败: %v", err)
		}
		if string(data) != "%PDF-文档字节" {
			t.Errorf("内容不一致: got %q", string(data))
		}
		if size != int64(len(data)) {
			t.Errorf("大小不一致: size=%d, len=%d", size, len(data))
		}
		if got.OriginalName != "a.pdf" {
			t.Errorf("元数据不一致: %+v", got)
		}
	})

	t.Run("物理文件缺失时返回ErrFileMissing", func(t *testing.T) {
		env := newTestEnv(t)
		pdf, err := env.svc.Upload(ctx, 1, env.writeTemp(t, "x"), "a.pdf")
		if err != nil {
			t.Fatalf("上传失败: %v", err)
		}

		// 模拟外部进程删掉了物理文件
		if err := os.Remove(filepath.Join(env.baseDir, pdf.FileName)); err != nil {
			t.Fatalf("删除物理文件失败: %v", err)
		}

		_, _, _, err = env.svc.Download(ctx, 1, pdf.UUID)
		if !errors.Is(err, constant.ErrFileMissing) {
			t.Errorf("期望 ErrFileMissing, got %v", err)
		}
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	pdf, err := env.svc.Upload(ctx, 1, env.writeTemp(t, "x"), "a.pdf")
	if err != nil {
		t.Fatalf("上传失败: %v", err)
	}

	if err := env.svc.Delete(ctx, 1, pdf.UUID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.baseDir, pdf.FileName)); !os.IsNotExist(err) {
		t.Errorf("删除后物理文件应不存在")
	}
	if _, err := env.svc.Get(ctx, 1, pdf.UUID); !errors.Is(err, constant.ErrNotFound) {
		t.Errorf("删除后元数据应不存在, got %v", err)
	}

	// 记录已不存在，重复删除表现为 ErrNotFound
	if err := env.svc.Delete(ctx, 1, pdf.UUID); !errors.Is(err, constant.ErrNotFound) {
		t.Errorf("重复删除: 期望 ErrNotFound, got %v", err)
	}
}

func TestList(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	names := []string{"第一份.pdf", "第二份.pdf", "第三份.pdf"}
	for _, name := range names {
		if _, err := env.svc.Upload(ctx, 1, env.writeTemp(t, "x"), name); err != nil {
			t.Fatalf("上传 %s 失败: %v", name, err)
		}
	}
	// 其他用户的文档不应出现在列表里
	if _, err := env.svc.Upload(ctx, 2, env.writeTemp(t, "x"), "别人的.pdf"); err != nil {
		t.Fatalf("上传失败: %v", err)
	}

	list, err := env.svc.List(ctx, 1)
	if err != nil {
		t.Fatalf("列表查询失败: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("期望 3 条记录, got %d", len(list))
	}
	// 最近上传的在前
	want := []string{"第三份.pdf", "第二份.pdf", "第一份.pdf"}
	for i, p := range list {
		if p.OriginalName != want[i] {
			t.Errorf("第 %d 条: got %q, want %q", i, p.OriginalName, want[i])
		}
	}
}
