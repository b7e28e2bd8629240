package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	domain "github.com/bryanwahyu/scriptguard/internal/domain/review"
	"github.com/bryanwahyu/scriptguard/internal/infra/rubric"
)

const yamlContentType = "application/yaml"

// Store keeps rubric documents in a MinIO (or any S3 compatible) bucket.
type Store struct {
	client     *minio.Client
	bucketName string
	region     string
}

// Options configures New.
type Options struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	// CreateBucket makes the bucket when it does not exist yet.
	CreateBucket bool
}

// New connects to MinIO and checks the bucket.
func New(ctx context.Context, opts Options) (*Store, error) {
	cli, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := cli.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket %s: %w", opts.Bucket, err)
	}
	if !exists {
		if !opts.CreateBucket {
			return nil, fmt.Errorf("minio bucket %s does not exist", opts.Bucket)
		}
		if err := cli.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{Region: opts.Region}); err != nil {
			return nil, fmt.Errorf("minio make bucket %s: %w", opts.Bucket, err)
		}
	}

	return newStore(cli, opts.Bucket, opts.Region), nil
}

func newStore(cli *minio.Client, bucket, region string) *Store {
	return &Store{client: cli, bucketName: bucket, region: region}
}

// Fetch downloads and decodes the rubric stored at key.
func (s *Store) Fetch(ctx context.Context, key string) (domain.RubricDocument, error) {
	obj, err := s.client.GetObject(ctx, s.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return domain.RubricDocument{}, fmt.Errorf("get %s/%s: %w", s.bucketName, key, err)
	}
	defer obj.Close()

	doc, err := rubric.Decode(obj)
	if err != nil {
		return domain.RubricDocument{}, fmt.Errorf("get %s/%s: %w", s.bucketName, key, err)
	}
	return doc, nil
}

// Push uploads doc as YAML to key and returns the object URL.
func (s *Store) Push(ctx context.Context, key string, doc domain.RubricDocument) (string, error) {
	raw, err := rubric.Marshal(doc)
	if err != nil {
		return "", err
	}

	_, err = s.client.PutObject(ctx, s.bucketName, key, bytes.NewReader(raw), int64(len(raw)), minio.PutObjectOptions{
		ContentType: yamlContentType,
	})
	if err != nil {
		return "", fmt.Errorf("put %s/%s: %w", s.bucketName, key, err)
	}

	// Public URL; private buckets need a presigned one.
	u := *s.client.EndpointURL()
	u.Path = "/" + s.bucketName + "/" + key
	return u.String(), nil
}

// Source returns a rubric source reading key from the store.
func (s *Store) Source(key string) domain.RubricSource {
	return objectSource{store: s, key: key}
}

type objectSource struct {
	store *Store
	key   string
}

func (o objectSource) Load(ctx context.Context) (domain.RubricDocument, error) {
	return o.store.Fetch(ctx, o.key)
}
