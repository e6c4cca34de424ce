package storage

import (
	"context"
	"fmt"
	"strings"
)

// ApplySchema executes the drop-and-create script produced by the schema
// emitter. It must complete before any row is inserted.
func ApplySchema(ctx context.Context, repo Repository, script string) error {
	if strings.TrimSpace(script) == "" {
		return fmt.Errorf("storage: empty DDL script")
	}
	if err := repo.Exec(ctx, script); err != nil {
		return fmt.Errorf("apply DDL: %w", err)
	}
	return nil
}
