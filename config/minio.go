package config

import "time"

// MinIOConfig MinIO 对象存储配置（头像、帖子图片、个人背景图）。
type MinIOConfig struct {
	Endpoint        string `json:"endpoint" yaml:"endpoint"`               // MinIO 服务地址，如: localhost:9000
	AccessKeyID     string `json:"accessKeyId" yaml:"accessKeyId"`         // Access Key
	SecretAccessKey string `json:"secretAccessKey" yaml:"secretAccessKey"` // Secret Key
	UseSSL          bool   `json:"useSSL" yaml:"useSSL"`                   // 是否使用 HTTPS

	BucketName string `json:"bucketName" yaml:"bucketName"` // 默认存储桶名称
	Location   string `json:"location" yaml:"location"`     // Bucket 区域

	MaxFileSize   int64         `json:"maxFileSize" yaml:"maxFileSize"`     // 最大文件大小（字节）
	AllowedTypes  []string      `json:"allowedTypes" yaml:"allowedTypes"`   // 允许的文件类型
	UploadTimeout time.Duration `json:"uploadTimeout" yaml:"uploadTimeout"` // 上传超时时间

	PublicRead bool   `json:"publicRead" yaml:"publicRead"` // 是否公开读取
	BaseURL    string `json:"baseUrl" yaml:"baseUrl"`       // 返回给客户端的文件地址前缀

	MaxIdleConns        int           `json:"maxIdleConns" yaml:"maxIdleConns"`
	MaxIdleConnsPerHost int           `json:"maxIdleConnsPerHost" yaml:"maxIdleConnsPerHost"`
	IdleConnTimeout     time.Duration `json:"idleConnTimeout" yaml:"idleConnTimeout"`
}

// DefaultMinIOConfig 返回本地开发的默认配置。
func DefaultMinIOConfig() MinIOConfig {
	return MinIOConfig{
		Endpoint:        envString("MINIO_ENDPOINT", "localhost:9000"),
		AccessKeyID:     envString("MINIO_ACCESS_KEY", "minioadmin"),
		SecretAccessKey: envString("MINIO_SECRET_KEY", "minioadmin"),
		UseSSL:          envBool("MINIO_USE_SSL", false),

		BucketName: envString("MINIO_BUCKET", "aibeitong"),
		Location:   "ap-southeast-1",

		MaxFileSize:   10 * 1024 * 1024, // 10MB
		AllowedTypes:  []string{"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp"},
		UploadTimeout: 30 * time.Second,

		// 图片公开读，客户端直接拿 URL 展示
		PublicRead: true,
		BaseURL:    envString("MINIO_BASE_URL", "http://localhost:9000"),

		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
}
