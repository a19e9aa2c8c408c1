// Package s3backend implements storage.Backend against an S3-compatible
// object store, as an alternative to the local-root-filesystem backend.
package s3backend

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/Brijeshlakkad/Distributed-File-System/common"
)

// Config holds the connection settings for an S3-compatible bucket.
type Config struct {
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
	Region    string
}

// Backend implements storage.Backend by keying objects in a single bucket
// on the path's string form, stripped of its leading "/".
type Backend struct {
	client *s3.Client
	bucket string
}

// New builds a Backend against cfg, creating the bucket if it does not
// already exist.
func New(ctx context.Context, cfg Config) (*Backend, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(
		func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{URL: cfg.Endpoint, HostnameImmutable: true}, nil
		},
	)

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithEndpointResolverWithOptions(resolver),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: load aws config: %v", common.ErrIO, err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	b := &Backend{client: client, bucket: cfg.Bucket}
	if _, err := client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(cfg.Bucket)}); err != nil {
		if _, err := client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(cfg.Bucket)}); err != nil {
			return nil, fmt.Errorf("%w: bucket %s does not exist and cannot be created: %v", common.ErrIO, cfg.Bucket, err)
		}
	}
	return b, nil
}

func key(p common.Path) string {
	return strings.TrimPrefix(p.String(), "/")
}

func (b *Backend) Size(p common.Path) (int64, error) {
	ctx := context.Background()
	out, err := b.client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: aws.String(b.bucket), Key: aws.String(key(p))})
	if err != nil {
		return 0, fmt.Errorf("%w: %s", common.ErrNotFound, p)
	}
	if out.ContentLength == nil {
		return 0, nil
	}
	return *out.ContentLength, nil
}

func (b *Backend) Read(p common.Path, offset int64, length int) ([]byte, error) {
	size, err := b.Size(p)
	if err != nil {
		return nil, err
	}
	if offset < 0 || length < 0 || offset+int64(length) > size {
		return nil, fmt.Errorf("%w: offset=%d length=%d size=%d", common.ErrOutOfBounds, offset, length, size)
	}

	ctx := context.Background()
	input := &s3.GetObjectInput{Bucket: aws.String(b.bucket), Key: aws.String(key(p))}
	if length > 0 {
		input.Range = aws.String(fmt.Sprintf("bytes=%d-%d", offset, offset+int64(length)-1))
	}
	out, err := b.client.GetObject(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrIO, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrIO, err)
	}
	return data, nil
}

func (b *Backend) Write(p common.Path, offset int64, data []byte) error {
	if data == nil {
		return fmt.Errorf("%w: data must not be nil", common.ErrInvalidArgument)
	}
	if offset < 0 {
		return fmt.Errorf("%w: offset=%d", common.ErrOutOfBounds, offset)
	}
	size, err := b.Size(p)
	if err != nil {
		return err
	}

	existing, err := b.Read(p, 0, int(size))
	if err != nil {
		return err
	}
	needed := offset + int64(len(data))
	if needed > int64(len(existing)) {
		grown := make([]byte, needed)
		copy(grown, existing)
		existing = grown
	}
	copy(existing[offset:], data)

	ctx := context.Background()
	_, err = b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key(p)),
		Body:   strings.NewReader(string(existing)),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrIO, err)
	}
	return nil
}

func (b *Backend) Create(p common.Path) (bool, error) {
	if p.IsRoot() {
		return false, nil
	}
	if _, err := b.Size(p); err == nil {
		return false, nil
	}
	ctx := context.Background()
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key(p)),
		Body:   strings.NewReader(""),
	})
	if err != nil {
		return false, fmt.Errorf("%w: %v", common.ErrIO, err)
	}
	return true, nil
}

func (b *Backend) Delete(p common.Path) (bool, error) {
	if p.IsRoot() {
		return false, nil
	}
	prefix := key(p)
	ctx := context.Background()

	listed, err := b.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(b.bucket),
		Prefix: aws.String(prefix),
	})
	if err != nil {
		return false, fmt.Errorf("%w: %v", common.ErrIO, err)
	}
	objects := make([]types.ObjectIdentifier, 0, len(listed.Contents))
	for _, obj := range listed.Contents {
		// Keep only p itself and keys below p, not siblings sharing its prefix.
		if k := aws.ToString(obj.Key); k != prefix && !strings.HasPrefix(k, prefix+"/") {
			continue
		}
		objects = append(objects, types.ObjectIdentifier{Key: obj.Key})
	}
	if len(objects) == 0 {
		return false, nil
	}
	_, err = b.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(b.bucket),
		Delete: &types.Delete{Objects: objects},
	})
	if err != nil {
		return false, fmt.Errorf("%w: %v", common.ErrIO, err)
	}
	return true, nil
}

func (b *Backend) List() ([]common.Path, error) {
	ctx := context.Background()
	var out []common.Path
	paginator := s3.NewListObjectsV2Paginator(b.client, &s3.ListObjectsV2Input{Bucket: aws.String(b.bucket)})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrIO, err)
		}
		for _, obj := range page.Contents {
			p, err := common.NewPath("/" + aws.ToString(obj.Key))
			if err != nil {
				continue
			}
			out = append(out, p)
		}
	}
	return out, nil
}
