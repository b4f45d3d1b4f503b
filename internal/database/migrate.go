package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"quiz-tutor/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations
var migrationsFS embed.FS

// Direction selects which half of each migration is applied.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// RunMigrations applies the embedded schema for driver.
// MySQL goes through golang-migrate; Oracle has no golang-migrate driver, so
// its files are executed in version order and already-existing objects are skipped.
func RunMigrations(ctx context.Context, db *sql.DB, driver string, dir Direction) error {
	switch driver {
	case DriverMySQL:
		return runMySQLMigrations(db, dir)
	case DriverOracle:
		return runOrderedMigrations(ctx, db, path.Join("migrations", DriverOracle), dir)
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}
}

func runMySQLMigrations(db *sql.DB, dir Direction) error {
	src, err := iofs.New(migrationsFS, path.Join("migrations", DriverMySQL))
	if err != nil {
		return fmt.Errorf("could not open embedded migrations: %w", err)
	}
	defer src.Close()

	driver, err := migratemysql.WithInstance(db, &migratemysql.Config{})
	if err != nil {
		return fmt.Errorf("could not create migrate driver: %w", err)
	}

	// m.Close is not called: it would close the caller's *sql.DB.
	m, err := migrate.NewWithInstance("iofs", src, DriverMySQL, driver)
	if err != nil {
		return fmt.Errorf("could not create migrator: %w", err)
	}

	if dir == Down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Get().Info("Migrations already up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("could not run migrations %s: %w", dir, err)
	}

	logger.Get().Info("Migrations completed successfully", zap.String("direction", string(dir)))
	return nil
}

// execer is the subset of *sql.DB used by runOrderedMigrations.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func runOrderedMigrations(ctx context.Context, db execer, dirName string, dir Direction) error {
	files, err := migrationFiles(migrationsFS, dirName, dir)
	if err != nil {
		return err
	}

	for _, name := range files {
		content, err := fs.ReadFile(migrationsFS, path.Join(dirName, name))
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", name, err)
		}

		stmt := strings.TrimSuffix(strings.TrimSpace(string(content)), ";")
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			if isAlreadyApplied(err, dir) {
				logger.Get().Info("Skipping already applied migration", zap.String("file", name))
				continue
			}
			return fmt.Errorf("could not execute migration %s: %w", name, err)
		}

		logger.Get().Info("Executed migration", zap.String("file", name))
	}

	logger.Get().Info("Migrations completed successfully", zap.String("direction", string(dir)))
	return nil
}

// migrationFiles lists the files for dir in application order:
// ascending for up, descending for down.
func migrationFiles(fsys fs.FS, dirName string, dir Direction) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dirName)
	if err != nil {
		return nil, fmt.Errorf("could not read migrations directory: %w", err)
	}

	suffix := "." + string(dir) + ".sql"
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		files = append(files, entry.Name())
	}

	sort.Strings(files)
	if dir == Down {
		sort.Sort(sort.Reverse(sort.StringSlice(files)))
	}
	return files, nil
}

// isAlreadyApplied recognizes Oracle's "object exists" (ORA-00955) on up and
// "object missing" (ORA-00942) on down.
func isAlreadyApplied(err error, dir Direction) bool {
	msg := err.Error()
	if dir == Down {
		return strings.Contains(msg, "ORA-00942")
	}
	return strings.Contains(msg, "ORA-00955")
}
