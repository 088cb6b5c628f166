package rdb

import (
	"time"
)

// 这里是infrastructure层的数据模型，带GORM tag；领域实体不依赖GORM
// 主键统一为UUID字符串

// UserModel 用户表
type UserModel struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Name         string    `gorm:"size:100;not null"`
	Email        string    `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	Role         string    `gorm:"size:16;not null;default:customer"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (UserModel) TableName() string {
	return "users"
}

// GenreModel 分类表
// active记录的名称唯一索引见migrateActiveUniques
type GenreModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"size:100;not null;index"`
	Status    string `gorm:"size:16;not null;default:active;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // 审计用，不参与查询过滤
}

func (GenreModel) TableName() string {
	return "genres"
}

// BookModel 图书表
// 价格以分为单位存储；active记录的书名唯一索引见migrateActiveUniques
type BookModel struct {
	ID              string      `gorm:"primaryKey;size:36"`
	Title           string      `gorm:"size:255;not null;index"`
	Writer          string      `gorm:"size:255;not null"`
	Publisher       string      `gorm:"size:255;not null"`
	PublicationYear int         `gorm:"not null"`
	Description     string      `gorm:"type:text"`
	Price           int64       `gorm:"not null;index"`
	StockQuantity   int         `gorm:"not null;default:0"`
	GenreID         string      `gorm:"size:36;not null;index"`
	Genre           *GenreModel `gorm:"foreignKey:GenreID"`
	Status          string      `gorm:"size:16;not null;default:active;index"`
	CreatedAt       time.Time   `gorm:"index"`
	UpdatedAt       time.Time
	DeletedAt       *time.Time
}

func (BookModel) TableName() string {
	return "books"
}

// OrderModel 订单表，与OrderItemModel一对多
type OrderModel struct {
	ID        string           `gorm:"primaryKey;size:36"`
	UserID    string           `gorm:"size:36;not null;index"`
	Items     []OrderItemModel `gorm:"foreignKey:OrderID"`
	CreatedAt time.Time        `gorm:"index"`
	UpdatedAt time.Time
}

func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel 订单明细表
// 不保存价格快照；Position记录请求中的顺序
type OrderItemModel struct {
	ID        string     `gorm:"primaryKey;size:36"`
	OrderID   string     `gorm:"size:36;not null;index"`
	BookID    string     `gorm:"size:36;not null;index"`
	Book      *BookModel `gorm:"foreignKey:BookID"`
	Quantity  int        `gorm:"not null"`
	Position  int        `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (OrderItemModel) TableName() string {
	return "order_items"
}
