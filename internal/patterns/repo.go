package patterns

import (
	"context"

	"github.com/rapidstack/rapid-insight/internal/models"
)

// StoreFunc adapts a function to the Store interface.
type StoreFunc func(ctx context.Context, assetID string, patterns []models.FaultPattern) error

// StorePatterns implements Store.
func (f StoreFunc) StorePatterns(ctx context.Context, assetID string, patterns []models.FaultPattern) error {
	return f(ctx, assetID, patterns)
}
