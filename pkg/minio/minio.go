package minio

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"AiBeiTongServer/config"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStorage 对象存储抽象，Service 层只依赖这个接口，测试用假实现。
type ObjectStorage interface {
	// Upload 上传对象，返回可访问的 URL
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)

	// Remove 删除对象
	Remove(ctx context.Context, objectName string) error
}

// client MinIO 客户端封装
type client struct {
	mc  *miniogo.Client
	cfg config.MinIOConfig
}

// New 创建 MinIO 客户端并确保 bucket 存在。
func New(ctx context.Context, cfg config.MinIOConfig) (ObjectStorage, error) {
	transport := &http.Transport{
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
	}

	mc, err := miniogo.New(cfg.Endpoint, &miniogo.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure:    cfg.UseSSL,
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("minio: create client: %w", err)
	}

	exists, err := mc.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("minio: check bucket: %w", err)
	}
	if !exists {
		err = mc.MakeBucket(ctx, cfg.BucketName, miniogo.MakeBucketOptions{Region: cfg.Location})
		if err != nil {
			return nil, fmt.Errorf("minio: make bucket: %w", err)
		}
		if cfg.PublicRead {
			policy := fmt.Sprintf(`{
  "Version": "2012-10-17",
  "Statement": [
    {
      "Effect": "Allow",
      "Principal": {"AWS": ["*"]},
      "Action": ["s3:GetObject"],
      "Resource": ["arn:aws:s3:::%s/*"]
    }
  ]
}`, cfg.BucketName)
			if err := mc.SetBucketPolicy(ctx, cfg.BucketName, policy); err != nil {
				return nil, fmt.Errorf("minio: set bucket policy: %w", err)
			}
		}
	}

	return &client{mc: mc, cfg: cfg}, nil
}

// Upload 上传对象，带超时
func (c *client) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if c.cfg.UploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.UploadTimeout)
		defer cancel()
	}

	_, err := c.mc.PutObject(ctx, c.cfg.BucketName, objectName, reader, size, miniogo.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("minio: put object: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", c.cfg.BaseURL, c.cfg.BucketName, objectName), nil
}

// Remove 删除对象
func (c *client) Remove(ctx context.Context, objectName string) error {
	err := c.mc.RemoveObject(ctx, c.cfg.BucketName, objectName, miniogo.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("minio: remove object: %w", err)
	}
	return nil
}
