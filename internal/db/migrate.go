package db

import (
	"context"
	"embed"
	"fmt"
	"strings"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate creates the schema if it does not exist yet.
func (d *DB) Migrate(ctx context.Context) error {
	raw, err := migrations.ReadFile("migrations/" + d.Driver + ".sql")
	if err != nil {
		return fmt.Errorf("no schema for driver %q: %w", d.Driver, err)
	}

	for _, stmt := range strings.Split(string(raw), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := d.SQL.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration statement failed: %w\n%s", err, stmt)
		}
	}
	return nil
}
