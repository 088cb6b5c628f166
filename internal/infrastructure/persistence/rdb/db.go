// Package rdb 关系型数据库持久化实现（GORM）
//
// 支持 mysql、postgres、sqlite 三种驱动。软删除通过status列表达，
// 所有读方法都显式带上 status = 'active' 条件，不使用 gorm.DeletedAt 默认作用域。
package rdb

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/xiebiao/bookshop/internal/infrastructure/config"
)

// NewDB 创建数据库连接，返回的cleanup负责关闭连接池
func NewDB(cfg *config.Config, log *slog.Logger) (*gorm.DB, func(), error) {
	dialector, err := openDialector(cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	logLevel := gormlogger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = gormlogger.Info // 开发环境打印SQL
	}

	loc := cfg.Database.Location()
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().In(loc)
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	if cfg.Database.Driver == config.DriverSQLite {
		// sqlite只允许一个写连接，串行化后事务语义与服务端数据库一致
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Info("database connected", slog.String("driver", cfg.Database.Driver))

	if cfg.Database.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			_ = sqlDB.Close()
			return nil, nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
	}

	cleanup := func() {
		if err := sqlDB.Close(); err != nil {
			log.Error("close database failed", slog.Any("error", err))
		}
	}
	return db, cleanup, nil
}

func openDialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	dsn := cfg.ConnectionString()
	switch cfg.Driver {
	case config.DriverMySQL:
		return mysql.Open(dsn), nil
	case config.DriverPostgres:
		return postgres.Open(dsn), nil
	case config.DriverSQLite:
		return sqlite.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
}

// AutoMigrate 自动迁移表结构
// 生产环境应使用版本化的迁移脚本
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&UserModel{},
		&GenreModel{},
		&BookModel{},
		&OrderModel{},
		&OrderItemModel{},
	)
	if err != nil {
		return err
	}
	return migrateActiveUniques(db)
}

// activeUnique active记录上忽略大小写的唯一约束，已删除的记录不参与
type activeUnique struct {
	model  any
	table  string
	column string
	size   int
}

var activeUniques = []activeUnique{
	{model: &GenreModel{}, table: "genres", column: "name", size: 100},
	{model: &BookModel{}, table: "books", column: "title", size: 255},
}

// migrateActiveUniques postgres和sqlite用部分索引；
// mysql不支持部分索引，用生成列（非active时为NULL）加唯一索引
func migrateActiveUniques(db *gorm.DB) error {
	for _, u := range activeUniques {
		index := fmt.Sprintf("uniq_%s_active_%s", u.table, u.column)

		if db.Dialector.Name() != "mysql" {
			stmt := fmt.Sprintf("CREATE UNIQUE INDEX IF NOT EXISTS %s ON %s (LOWER(%s)) WHERE status = 'active'",
				index, u.table, u.column)
			if err := db.Exec(stmt).Error; err != nil {
				return fmt.Errorf("create index %s: %w", index, err)
			}
			continue
		}

		m := db.Migrator()
		generated := "active_" + u.column
		if !m.HasColumn(u.model, generated) {
			stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s VARCHAR(%d) GENERATED ALWAYS AS "+
				"(IF(status = 'active', LOWER(%s), NULL)) STORED", u.table, generated, u.size, u.column)
			if err := db.Exec(stmt).Error; err != nil {
				return fmt.Errorf("add column %s.%s: %w", u.table, generated, err)
			}
		}
		if !m.HasIndex(u.model, index) {
			stmt := fmt.Sprintf("CREATE UNIQUE INDEX %s ON %s (%s)", index, u.table, generated)
			if err := db.Exec(stmt).Error; err != nil {
				return fmt.Errorf("create index %s: %w", index, err)
			}
		}
	}
	return nil
}

// Ping 健康检查用
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
