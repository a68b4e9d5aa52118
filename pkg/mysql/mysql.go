package mysql

import (
	"fmt"
	"time"

	"AiBeiTongServer/config"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

var global *gorm.DB

// DB 返回全局数据库实例（未初始化时为 nil）。
func DB() *gorm.DB { return global }

// ReplaceGlobal 设置全局数据库实例。
func ReplaceGlobal(db *gorm.DB) { global = db }

// Build 基于配置创建 gorm 实例。
// - TranslateError 开启后，唯一键冲突统一转成 gorm.ErrDuplicatedKey；
// - Replicas 非空时通过 dbresolver 做读写分离（写主库、读从库，轮询策略）。
func Build(cfg config.MySQLConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}

	db, err := gorm.Open(mysql.Open(cfg.DSN), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open mysql failed: %w", err)
	}

	if len(cfg.Replicas) > 0 {
		replicas := make([]gorm.Dialector, 0, len(cfg.Replicas))
		for _, dsn := range cfg.Replicas {
			replicas = append(replicas, mysql.Open(dsn))
		}
		err = db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RoundRobinPolicy(),
		}))
		if err != nil {
			return nil, fmt.Errorf("register dbresolver failed: %w", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	} else {
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return db, nil
}
