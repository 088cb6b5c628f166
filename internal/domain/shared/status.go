package shared

// RecordStatus 记录状态（软删除标记）
// 所有读路径必须显式过滤 StatusActive，不依赖ORM默认作用域
type RecordStatus string

const (
	StatusActive  RecordStatus = "active"
	StatusDeleted RecordStatus = "deleted"
)

// IsActive 是否为有效记录
func (s RecordStatus) IsActive() bool {
	return s == StatusActive
}

// Valid 是否为已定义的状态
func (s RecordStatus) Valid() bool {
	return s == StatusActive || s == StatusDeleted
}
