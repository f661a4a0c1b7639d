package store

import (
	"context"
	"embed"
	errs "errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrationFS embed.FS

const postgresMigrations = "migrations/postgres"

// Migrator handles DB schema migrations using golang-migrate.
type Migrator struct {
	dsn  string
	fsys fs.FS
	dir  string
}

func NewMigrator(dsn string) (*Migrator, error) {
	if dsn == "" {
		return nil, fmt.Errorf("missing DSN")
	}
	return &Migrator{dsn: dsn, fsys: migrationFS, dir: postgresMigrations}, nil
}

func (m *Migrator) Up(ctx context.Context) error {
	return m.run(ctx, func(mig *migrate.Migrate) error { return mig.Up() })
}

// Down rolls back a single migration.
func (m *Migrator) Down(ctx context.Context) error {
	return m.run(ctx, func(mig *migrate.Migrate) error { return mig.Steps(-1) })
}

func (m *Migrator) run(ctx context.Context, step func(*migrate.Migrate) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mig, closer, err := m.migrateInstance()
	if err != nil {
		return err
	}
	defer closer()
	if err := step(mig); err != nil {
		if errs.Is(err, migrate.ErrNoChange) {
			return ErrNoChange
		}
		return wrap(err, "migrate")
	}
	return nil
}

func (m *Migrator) migrateInstance() (*migrate.Migrate, func(), error) {
	src, err := iofs.New(m.fsys, m.dir)
	if err != nil {
		return nil, func() {}, wrap(err, "migration source")
	}
	mig, err := migrate.NewWithSourceInstance("iofs", src, m.dsn)
	if err != nil {
		return nil, func() {}, wrap(err, "migration instance")
	}
	return mig, func() { _, _ = mig.Close() }, nil
}
