package constant

import "errors"

// 定义业务逻辑相关的标准错误
var (
	// ErrNotFound 表示资源未找到或不属于当前用户，由 Handler 转换为 404。
	// 归属不匹配与记录不存在刻意返回同一个错误，不向外部暴露资源是否存在。
	ErrNotFound = errors.New("资源未找到")

	// ErrMissingUpload 表示请求中没有携带文件，可以由 Handler 转换为 400
	ErrMissingUpload = errors.New("未上传任何文件")

	// ErrFileMissing 表示元数据存在但物理文件缺失，属于完整性异常，由 Handler 转换为 404 并记录异常日志
	ErrFileMissing = errors.New("服务器上的物理文件缺失")

	// ErrIntegrityFailure 表示上传只完成了一半并已执行补偿清理，由 Handler 转换为 500
	ErrIntegrityFailure = errors.New("上传未完整提交")

	// ErrValidation 表示请求参数未通过校验，可以由 Handler 转换为 400
	ErrValidation = errors.New("参数校验失败")

	// ErrConflict 表示资源冲突（如邮箱已被注册），可以由 Handler 转换为 409
	ErrConflict = errors.New("资源冲突")

	// ErrUnauthorized 表示未授权，可以由 Handler 转换为 401
	ErrUnauthorized = errors.New("未经授权的访问")

	// ErrInvalidToken 表示无效的令牌，可以由 Handler 转换为 401
	ErrInvalidToken = errors.New("无效令牌")

	// ErrInternalServer 表示服务器内部错误，可以由 Handler 转换为 500
	ErrInternalServer = errors.New("内部服务器错误")
)
