/*
 * @Description: 文档外部 ID 的分配器
 */
package idgen

import "github.com/google/uuid"

// Allocator 为上传的文档分配对外暴露的唯一标识。
// 标识在记录构造时由应用代码显式分配，而不是作为持久层的隐式默认值，
// 这样分配行为本身是可见、可注入、可测试的一步。
type Allocator interface {
	// Allocate 返回一个全新的外部标识。无共享状态，可被任意数量的请求并发调用。
	Allocate() string
}

// uuidAllocator 基于 UUID v4 实现 Allocator。
// 128 位随机量，生命周期内的碰撞概率按零对待。
type uuidAllocator struct{}

// NewUUIDAllocator 返回默认的 UUID v4 分配器
func NewUUIDAllocator() Allocator {
	return uuidAllocator{}
}

func (uuidAllocator) Allocate() string {
	return uuid.NewString()
}
