package dataset

import (
	"context"
	"fmt"
	"os"

	"github.com/huangsam/pivotrend/internal/contract"
	"github.com/huangsam/pivotrend/schema"
	"github.com/rs/zerolog"
)

// FileSource loads a dataset from a local file.
type FileSource struct {
	Path string
	Opts DecodeOptions
}

var _ contract.DatasetSource = &FileSource{} // Compile-time check

// Load implements the DatasetSource interface.
func (s *FileSource) Load(ctx context.Context) (*schema.Dataset, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}
	ds, err := Decode(s.Path, data, s.Opts)
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Debug().Str("path", s.Path).Int("rows", ds.RowCount()).Msg("dataset loaded from file")
	return ds, nil
}
