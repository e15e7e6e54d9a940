package ports

import (
	"context"

	"buret/domain/survey"
)

// TableReader loads a tabular file into memory.
// Implementations return FILE_ERROR for unreadable paths and PARSE_ERROR for malformed content.
type TableReader interface {
	Read(ctx context.Context, path string) (*survey.Table, error)
}
