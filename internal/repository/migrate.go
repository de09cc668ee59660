package repository

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migration is one embedded SQL file.
type Migration struct {
	Name string
	SQL  string
}

// Migrations returns the embedded migrations sorted by file name.
func Migrations() ([]Migration, error) {
	names, err := fs.Glob(migrationFS, "migrations/*.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(names)

	migrations := make([]Migration, 0, len(names))
	for _, name := range names {
		content, err := migrationFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		migrations = append(migrations, Migration{
			Name: strings.TrimPrefix(name, "migrations/"),
			SQL:  string(content),
		})
	}
	return migrations, nil
}

// Migrate executes every embedded migration in order. All statements are idempotent.
// onApplied, when set, is called after each file.
func (s *Store) Migrate(ctx context.Context, onApplied func(name string)) error {
	migrations, err := Migrations()
	if err != nil {
		return err
	}
	for _, m := range migrations {
		if err := s.db.WithContext(ctx).Exec(m.SQL).Error; err != nil {
			return fmt.Errorf("failed to execute %s: %w", m.Name, err)
		}
		if onApplied != nil {
			onApplied(m.Name)
		}
	}
	return nil
}
