package storage

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestDriver(t *testing.T) (*LocalDriver, string, string) {
	t.Helper()
	baseDir := filepath.Join(t.TempDir(), "uploads")
	tempDir := filepath.Join(t.TempDir(), "temp")
	d, err := NewLocalDriver(baseDir, tempDir)
	if err != nil {
		t.Fatalf("初始化失败: %v", err)
	}
	return d, baseDir, tempDir
}

func TestSaveTemp(t *testing.T) {
	d, _, tempDir := newTestDriver(t)

	tempPath, err := d.SaveTemp(strings.NewReader("上传流内容"))
	if err != nil {
		t.Fatalf("落盘失败: %v", err)
	}
	if filepath.Dir(tempPath) != tempDir {
		t.Errorf("临时文件应位于临时目录: %s", tempPath)
	}
	data, err := os.ReadFile(tempPath)
	if err != nil {
		t.Fatalf("读取临时文件失败: %v", err)
	}
	if string(data) != "上传流内容" {
		t.Errorf("内容不一致: %q", string(data))
	}
}

func TestCommit(t *testing.T) {
	d, baseDir, _ := newTestDriver(t)

	tempPath, err := d.SaveTemp(strings.NewReader("文档字节"))
	if err != nil {
		t.Fatalf("落盘失败: %v", err)
	}

	if err := d.Commit(tempPath, "abc-123.pdf"); err != nil {
		t.Fatalf("提交失败: %v", err)
	}
	if _, err := os.Stat(tempPath); !os.IsNotExist(err) {
		t.Errorf("提交后临时文件应已被移走")
	}
	data, err := os.ReadFile(filepath.Join(baseDir, "abc-123.pdf"))
	if err != nil {
		t.Fatalf("读取提交后的文件失败: %v", err)
	}
	if string(data) != "文档字节" {
		t.Errorf("内容不一致: %q", string(data))
	}
}

func TestOpen(t *testing.T) {
	d, _, _ := newTestDriver(t)

	t.Run("正常读取返回内容和大小", func(t *testing.T) {
		tempPath, _ := d.SaveTemp(strings.NewReader("一些内容"))
		if err := d.Commit(tempPath, "key.pdf"); err != nil {
			t.Fatalf("提交失败: %v", err)
		}

		reader, size, err := d.Open("key.pdf")
		if err != nil {
			t.Fatalf("打开失败: %v", err)
		}
		defer reader.Close()

		data, err := io.ReadAll(reader)
		if err != nil {
			t.Fatalf("读取失败: %v", err)
		}
		if string(data) != "一些内容" {
			t.Errorf("内容不一致: %q", string(data))
		}
		if size != int64(len(data)) {
			t.Errorf("大小不一致: size=%d, len=%d", size, len(data))
		}
	})

	t.Run("对象不存在时错误满足fs.ErrNotExist", func(t *testing.T) {
		_, _, err := d.Open("no-such-key.pdf")
		if err == nil {
			t.Fatal("期望报错")
		}
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("错误应可被识别为文件不存在: %v", err)
		}
	})
}

func TestDelete(t *testing.T) {
	d, baseDir, _ := newTestDriver(t)

	tempPath, _ := d.SaveTemp(strings.NewReader("x"))
	if err := d.Commit(tempPath, "to-delete.pdf"); err != nil {
		t.Fatalf("提交失败: %v", err)
	}

	if err := d.Delete("to-delete.pdf"); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if _, err := os.Stat(filepath.Join(baseDir, "to-delete.pdf")); !os.IsNotExist(err) {
		t.Errorf("删除后文件应不存在")
	}

	// 删除是幂等的，对象不存在时静默成功
	if err := d.Delete("to-delete.pdf"); err != nil {
		t.Errorf("重复删除不应报错: %v", err)
	}
}
