package dataset

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/huangsam/pivotrend/internal/contract"
	"github.com/huangsam/pivotrend/schema"
	"github.com/rs/zerolog"
)

// S3Scheme prefixes dataset locations stored in S3.
const S3Scheme = "s3://"

// S3Source loads a dataset object from S3.
type S3Source struct {
	Client contract.ObjectGetter
	Bucket string
	Key    string
	Opts   DecodeOptions
}

var _ contract.DatasetSource = &S3Source{} // Compile-time check

// IsS3URI reports whether location points at S3.
func IsS3URI(location string) bool {
	return strings.HasPrefix(location, S3Scheme)
}

// ParseS3URI splits s3://bucket/key into its bucket and key.
func ParseS3URI(uri string) (bucket, key string, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", fmt.Errorf("invalid S3 location %q: %w", uri, err)
	}
	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if u.Scheme != "s3" || bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid S3 location %q: expected s3://bucket/key", uri)
	}
	return bucket, key, nil
}

// NewS3Source builds a source for uri using the default AWS credential chain.
func NewS3Source(ctx context.Context, uri string, opts DecodeOptions) (*S3Source, error) {
	bucket, key, err := ParseS3URI(uri)
	if err != nil {
		return nil, err
	}
	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	return &S3Source{Client: s3.NewFromConfig(awsCfg), Bucket: bucket, Key: key, Opts: opts}, nil
}

// Load implements the DatasetSource interface.
func (s *S3Source) Load(ctx context.Context) (*schema.Dataset, error) {
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get s3://%s/%s: %w", s.Bucket, s.Key, err)
	}
	defer func() { _ = out.Body.Close() }()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read s3://%s/%s: %w", s.Bucket, s.Key, err)
	}
	ds, err := Decode(s.Key, data, s.Opts)
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Debug().Str("bucket", s.Bucket).Str("key", s.Key).Int("rows", ds.RowCount()).Msg("dataset loaded from s3")
	return ds, nil
}
