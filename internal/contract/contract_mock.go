package contract

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/huangsam/pivotrend/schema"
	"github.com/stretchr/testify/mock"
)

// MockDatasetSource is a mock implementation of DatasetSource for testing.
type MockDatasetSource struct {
	mock.Mock
}

var _ DatasetSource = &MockDatasetSource{} // Compile-time check

// Load implements the DatasetSource interface.
func (m *MockDatasetSource) Load(ctx context.Context) (*schema.Dataset, error) {
	args := m.Called(ctx)
	ds, _ := args.Get(0).(*schema.Dataset)
	return ds, args.Error(1)
}

// MockObjectGetter is a mock implementation of ObjectGetter for testing.
type MockObjectGetter struct {
	mock.Mock
}

var _ ObjectGetter = &MockObjectGetter{} // Compile-time check

// GetObject implements the ObjectGetter interface.
func (m *MockObjectGetter) GetObject(ctx context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.GetObjectOutput)
	return out, args.Error(1)
}

// MockOutputWriter is a mock implementation of OutputWriter for testing.
type MockOutputWriter struct {
	mock.Mock
}

var _ OutputWriter = &MockOutputWriter{} // Compile-time check

// WritePivot implements the OutputWriter interface.
func (m *MockOutputWriter) WritePivot(result *schema.PivotResult, cfg *Config) error {
	return m.Called(result, cfg).Error(0)
}

// WriteBoxplot implements the OutputWriter interface.
func (m *MockOutputWriter) WriteBoxplot(result *schema.BoxplotResult, cfg *Config) error {
	return m.Called(result, cfg).Error(0)
}

// WriteTrend implements the OutputWriter interface.
func (m *MockOutputWriter) WriteTrend(result *schema.TrendResult, cfg *Config) error {
	return m.Called(result, cfg).Error(0)
}
