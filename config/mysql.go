package config

import "time"

// MySQLConfig 数据库配置。
// Replicas 非空时启用读写分离（写主库、读从库）。
type MySQLConfig struct {
	DSN             string        `json:"dsn" yaml:"dsn"`                         // 主库 DSN
	Replicas        []string      `json:"replicas" yaml:"replicas"`               // 从库 DSN 列表（可为空）
	MaxOpenConns    int           `json:"maxOpenConns" yaml:"maxOpenConns"`       // 最大连接数
	MaxIdleConns    int           `json:"maxIdleConns" yaml:"maxIdleConns"`       // 最大空闲连接数
	ConnMaxLifetime time.Duration `json:"connMaxLifetime" yaml:"connMaxLifetime"` // 连接最大存活时间
	LogSlowQuery    time.Duration `json:"logSlowQuery" yaml:"logSlowQuery"`       // 慢查询阈值
}

// DefaultMySQLConfig 返回本地开发的默认配置。
func DefaultMySQLConfig() MySQLConfig {
	return MySQLConfig{
		DSN:             envString("MYSQL_DSN", "root:root@tcp(127.0.0.1:3306)/aibeitong?charset=utf8mb4&parseTime=True&loc=Local"),
		MaxOpenConns:    envInt("MYSQL_MAX_OPEN_CONNS", 100),
		MaxIdleConns:    envInt("MYSQL_MAX_IDLE_CONNS", 10),
		ConnMaxLifetime: envDuration("MYSQL_CONN_MAX_LIFETIME", time.Hour),
		LogSlowQuery:    200 * time.Millisecond,
	}
}
