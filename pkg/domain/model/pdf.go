package model

import "time"

// Pdf 是一份已上传文档的元数据记录。
//
// 三个名字各司其职，互不派生：
//   - OriginalName 是用户看到的显示名，重命名只改它；
//   - FileName 是服务器磁盘上的存储文件名，等于 UUID 加原始扩展名，创建后不再变化；
//   - UUID 是对外暴露的稳定标识，出现在所有 URL 中，与显示名和存储路径解耦。
type Pdf struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"user_id"`
	OriginalName string    `json:"originalName"`
	FileName     string    `json:"fileName"`
	UUID         string    `json:"uuid"`
	UploadDate   time.Time `json:"uploadDate"`

	// EmbeddingsGenerated 为将来的异步增强流程预留，目前没有任何操作读取它
	EmbeddingsGenerated bool `json:"embeddingsGenerated"`
}
