package scenedb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscredentials "github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	miniogo "github.com/minio/minio-go/v7"
	miniocredentials "github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hupe1980/scenedb/blobstore"
	"github.com/hupe1980/scenedb/blobstore/minio"
	"github.com/hupe1980/scenedb/blobstore/s3"
	"github.com/hupe1980/scenedb/config"
)

// OpenStore creates the blob store described by cfg.
//
// S3 credentials come from the default AWS chain unless an access key pair
// is configured. A custom endpoint switches S3 to path-style addressing.
func OpenStore(ctx context.Context, cfg config.StorageConfig) (blobstore.BlobStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Kind {
	case config.StorageLocal:
		return blobstore.NewLocalStore(cfg.Path), nil
	case config.StorageMemory:
		return blobstore.NewMemoryStore(), nil
	case config.StorageS3:
		return openS3(ctx, cfg)
	case config.StorageMinIO:
		return openMinIO(cfg)
	default:
		return nil, fmt.Errorf("unknown storage kind %q", cfg.Kind)
	}
}

func openS3(ctx context.Context, cfg config.StorageConfig) (blobstore.BlobStore, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			awscredentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return s3.NewStore(client, cfg.Bucket, cfg.Prefix), nil
}

func openMinIO(cfg config.StorageConfig) (blobstore.BlobStore, error) {
	client, err := miniogo.New(cfg.Endpoint, &miniogo.Options{
		Creds:  miniocredentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return minio.NewStore(client, cfg.Bucket, cfg.Prefix), nil
}
