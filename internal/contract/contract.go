// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/huangsam/pivotrend/schema"
)

// DatasetSource loads the columnar input of one update cycle.
// This allows the pipeline to be tested without files, buckets or databases.
type DatasetSource interface {
	Load(ctx context.Context) (*schema.Dataset, error)
}

// ObjectGetter is the subset of the S3 client used to fetch dataset objects.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// OutputWriter renders computed results in the configured output format.
type OutputWriter interface {
	// WritePivot renders the pivot table and its summary block.
	WritePivot(result *schema.PivotResult, cfg *Config) error

	// WriteBoxplot renders the boxplot partitions.
	WriteBoxplot(result *schema.BoxplotResult, cfg *Config) error

	// WriteTrend renders a standalone trend classification.
	WriteTrend(result *schema.TrendResult, cfg *Config) error
}
