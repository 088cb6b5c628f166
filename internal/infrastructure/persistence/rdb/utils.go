package rdb

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookshop/internal/domain/shared"
)

// isDuplicateError 判断是否为唯一索引冲突
// mysql: 1062 Duplicate entry；postgres: 23505 duplicate key；sqlite: UNIQUE constraint failed
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// likeEscape 转义LIKE通配符，配合 ESCAPE '!' 使用（sqlite没有默认转义符）
var likeEscape = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern 子串匹配用的小写模式
func containsPattern(s string) string {
	return "%" + likeEscape.Replace(strings.ToLower(s)) + "%"
}

// whereContains LOWER(col) LIKE '%s%'
func whereContains(q *gorm.DB, column, value string) *gorm.DB {
	return q.Where("LOWER("+column+") LIKE ? ESCAPE '!'", containsPattern(value))
}

// orderBy 列名来自白名单映射，最后按id排序保证分页稳定
func orderBy(q *gorm.DB, column string, order shared.SortOrder) *gorm.DB {
	desc := order.Desc()
	return q.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: desc})
}

// supportsRowLock sqlite没有 SELECT ... FOR UPDATE，靠单连接串行化
func supportsRowLock(db *gorm.DB) bool {
	return db.Dialector.Name() != "sqlite"
}

func activeStatus() string {
	return string(shared.StatusActive)
}

func toStatus(s string) shared.RecordStatus {
	return shared.RecordStatus(s)
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
