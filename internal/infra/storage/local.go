// internal/infra/storage/local.go
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Driver 是文档二进制内容的存储抽象：以存储文件名为键，
// 支持从临时文件提交、流式读取和删除。
type Driver interface {
	// SaveTemp 将上传流落盘为临时文件，返回临时文件路径。
	// 调用方在提交失败时不需要清理，临时目录由外部负责回收。
	SaveTemp(src io.Reader) (string, error)

	// Commit 将临时文件原子地移动到以 storageKey 为名的永久位置
	Commit(tempPath, storageKey string) error

	// Open 打开存储对象用于流式读取，同时返回字节大小。
	// 物理文件缺失时返回的错误满足 os.IsNotExist。
	Open(storageKey string) (io.ReadCloser, int64, error)

	// Delete 删除存储对象。对象不存在不视为错误（删除是幂等的）
	Delete(storageKey string) error
}

// LocalDriver 把文档保存在本机磁盘的单一目录下。
// 上传目录在启动时解析一次并注入进来，而不是从全局状态读取，
// 测试时可以为每个用例指定独立的临时目录。
type LocalDriver struct {
	baseDir string
	tempDir string
}

// NewLocalDriver 是 LocalDriver 的构造函数，确保目录存在
func NewLocalDriver(baseDir, tempDir string) (*LocalDriver, error) {
	if err := os.MkdirAll(baseDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("无法创建上传目录 '%s': %w", baseDir, err)
	}
	if err := os.MkdirAll(tempDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("无法创建临时目录 '%s': %w", tempDir, err)
	}
	return &LocalDriver{baseDir: baseDir, tempDir: tempDir}, nil
}

// copyFile 复制文件从 src 到 dst，用于跨文件系统的文件移动
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("无法打开源文件: %w", err)
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("无法创建目标文件: %w", err)
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return fmt.Errorf("复制文件内容失败: %w", err)
	}

	// 确保数据写入磁盘
	if err := destFile.Sync(); err != nil {
		return fmt.Errorf("同步文件到磁盘失败: %w", err)
	}

	return nil
}

// SaveTemp 把上传流写入临时目录下的一个新文件
func (d *LocalDriver) SaveTemp(src io.Reader) (string, error) {
	tempFile, err := os.CreateTemp(d.tempDir, "pdfmark-upload-*.tmp")
	if err != nil {
		return "", fmt.Errorf("无法在 '%s' 目录创建临时文件: %w", d.tempDir, err)
	}
	defer tempFile.Close()

	if _, err := io.Copy(tempFile, src); err != nil {
		os.Remove(tempFile.Name())
		return "", fmt.Errorf("写入临时文件失败: %w", err)
	}
	return tempFile.Name(), nil
}

// Commit 优先使用 rename（同一卷内是原子操作）；
// rename 失败（典型场景是临时目录和上传目录跨卷）时降级为复制后删除源文件。
func (d *LocalDriver) Commit(tempPath, storageKey string) error {
	dst := filepath.Join(d.baseDir, storageKey)

	if err := os.Rename(tempPath, dst); err != nil {
		if copyErr := copyFile(tempPath, dst); copyErr != nil {
			return fmt.Errorf("移动文件到 '%s' 失败: %w", dst, err)
		}
		// 复制成功后才删除源文件
		os.Remove(tempPath)
	}
	return nil
}

// Open 打开存储对象，调用方负责 Close
func (d *LocalDriver) Open(storageKey string) (io.ReadCloser, int64, error) {
	path := filepath.Join(d.baseDir, storageKey)

	info, err := os.Stat(path)
	if err != nil {
		return nil, 0, fmt.Errorf("无法访问物理文件 '%s': %w", path, err)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("无法打开物理文件 '%s': %w", path, err)
	}
	return file, info.Size(), nil
}

// Delete 删除存储对象，文件不存在时静默成功
func (d *LocalDriver) Delete(storageKey string) error {
	path := filepath.Join(d.baseDir, storageKey)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("删除物理文件 '%s' 失败: %w", path, err)
	}
	return nil
}
