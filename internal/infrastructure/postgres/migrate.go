package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate aplica en orden los scripts de migrations/. Son idempotentes (IF NOT EXISTS).
func Migrate(ctx context.Context, q Querier) ([]string, error) {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	sort.Strings(names)

	applied := make([]string, 0, len(names))
	for _, name := range names {
		script, err := migrationsFS.ReadFile(name)
		if err != nil {
			return applied, fmt.Errorf("migrate %s: %w", name, err)
		}
		if _, err := q.Exec(ctx, string(script)); err != nil {
			return applied, mapError("migrate "+name, err)
		}
		applied = append(applied, name)
	}
	return applied, nil
}
